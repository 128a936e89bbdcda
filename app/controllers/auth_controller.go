package controllers

import (
	"encoding/json"
	"net/http"

	"linkboard/app/middleware"
	"linkboard/app/models"
	"linkboard/app/services"
)

// AuthController handles registration, login and session management
type AuthController struct {
	authService *services.AuthService
}

// NewAuthController creates a new AuthController
func NewAuthController(authService *services.AuthService) *AuthController {
	return &AuthController{authService: authService}
}

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// profileResponse is the public shape of a profile.
type profileResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	IsAdmin  bool   `json:"is_admin"`
}

func toProfileResponse(p *models.Profile) *profileResponse {
	return &profileResponse{ID: p.ID, Username: p.Username, IsAdmin: p.IsAdmin}
}

// Register handles POST /api/register
func (ac *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	var creds credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		sendJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}

	profile, err := ac.authService.Register(creds.Username, creds.Password)
	if err != nil {
		sendError(w, r, err)
		return
	}

	sendJSON(w, http.StatusCreated, toProfileResponse(profile))
}

// Login handles POST /api/login, issuing a bearer session token
func (ac *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var creds credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		sendJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}

	token, profile, err := ac.authService.Login(creds.Username, creds.Password)
	if err != nil {
		sendError(w, r, err)
		return
	}

	sendJSON(w, http.StatusOK, map[string]interface{}{
		"token":   token,
		"profile": toProfileResponse(profile),
	})
}

// Logout handles POST /api/logout. There is nothing to log out without a
// bearer token.
func (ac *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	token := middleware.BearerToken(r)
	if token == "" {
		sendError(w, r, models.ErrUnauthorized)
		return
	}
	if err := ac.authService.Logout(token); err != nil {
		sendError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Me handles GET /api/me: the signed-in caller's profile
func (ac *AuthController) Me(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFrom(r.Context())
	if identity == nil {
		sendError(w, r, models.ErrUnauthorized)
		return
	}
	sendJSON(w, http.StatusOK, toProfileResponse(identity))
}
