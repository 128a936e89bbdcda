package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	applog "linkboard/app/log"
	"linkboard/app/middleware"
	"linkboard/app/models"
	"linkboard/app/repositories"
	"linkboard/app/services"
)

// sendJSON writes data as a JSON response
func sendJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// sendError maps a domain error to an HTTP status and a JSON error body.
// Expected outcomes keep their taxonomy; anything else is a backing-store
// failure and is logged and reported as 500.
func sendError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *models.ValidationError
	switch {
	case errors.As(err, &verr):
		sendJSON(w, http.StatusBadRequest, map[string]string{
			"error": verr.Error(),
			"field": verr.Field,
		})
	case errors.Is(err, models.ErrUnauthorized):
		status := http.StatusUnauthorized
		if middleware.IdentityFrom(r.Context()) != nil {
			status = http.StatusForbidden
		}
		sendJSON(w, status, map[string]string{"error": err.Error()})
	case errors.Is(err, models.ErrInvalidTransition),
		errors.Is(err, models.ErrInvalidState):
		sendJSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
	case errors.Is(err, repositories.ErrNotFound):
		sendJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
	case errors.Is(err, services.ErrInvalidCredentials):
		sendJSON(w, http.StatusUnauthorized, map[string]string{"error": err.Error()})
	default:
		applog.Error.Printf("%s %s: %v", r.Method, r.URL.Path, err)
		sendJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}
