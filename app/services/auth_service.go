package services

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"linkboard/app/models"
	"linkboard/app/repositories"

	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned when login fails; it deliberately does
// not say whether the username or the password was wrong.
var ErrInvalidCredentials = errors.New("invalid username or password")

// AuthService owns registration, login and session-token resolution.
type AuthService struct {
	profileRepo repositories.ProfileRepository
	sessionRepo repositories.SessionRepository
}

// NewAuthService creates a new AuthService
func NewAuthService(profileRepo repositories.ProfileRepository, sessionRepo repositories.SessionRepository) *AuthService {
	return &AuthService{
		profileRepo: profileRepo,
		sessionRepo: sessionRepo,
	}
}

// Register creates a profile with a bcrypt-hashed password.
func (s *AuthService) Register(username, password string) (*models.Profile, error) {
	if len(password) < 8 {
		return nil, &models.ValidationError{Field: "password", Reason: "must be at least 8 characters"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %v", err)
	}

	profile := &models.Profile{
		Username:     strings.TrimSpace(username),
		PasswordHash: hash,
	}
	profile.BeforeCreate()

	if err := profile.Validate(); err != nil {
		return nil, err
	}
	if err := s.profileRepo.Insert(profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// Login verifies credentials and issues an opaque session token.
func (s *AuthService) Login(username, password string) (string, *models.Profile, error) {
	profile, err := s.profileRepo.GetByUsername(strings.TrimSpace(username))
	if errors.Is(err, repositories.ErrNotFound) {
		return "", nil, ErrInvalidCredentials
	}
	if err != nil {
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword(profile.PasswordHash, []byte(password)) != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := newSessionToken()
	if err != nil {
		return "", nil, err
	}
	if err := s.sessionRepo.Create(token, profile.ID); err != nil {
		return "", nil, err
	}
	return token, profile, nil
}

// Logout deletes the session token.
func (s *AuthService) Logout(token string) error {
	return s.sessionRepo.Delete(token)
}

// CurrentIdentity resolves a bearer token to its profile. An empty, unknown
// or orphaned token resolves to nil: the caller is anonymous.
func (s *AuthService) CurrentIdentity(token string) (*models.Profile, error) {
	if token == "" {
		return nil, nil
	}

	profileID, err := s.sessionRepo.GetProfileID(token)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	profile, err := s.profileRepo.GetByID(profileID)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return profile, nil
}

// newSessionToken returns 32 random bytes as URL-safe base64.
func newSessionToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate session token: %v", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
