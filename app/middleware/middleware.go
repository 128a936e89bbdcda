package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	applog "linkboard/app/log"
	"linkboard/app/models"
)

type contextKey string

const identityKey contextKey = "identity"

// IdentityResolver resolves a bearer session token to a profile. A nil
// profile with a nil error means the caller is anonymous.
type IdentityResolver interface {
	CurrentIdentity(token string) (*models.Profile, error)
}

// Logger logs information about each request
func Logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		applog.Info.Printf("%s %s took %s", r.Method, r.URL.Path, time.Since(start))
	})
}

// Recoverer recovers from panics and logs the error
func Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				applog.Error.Printf("panic serving %s %s: %v", r.Method, r.URL.Path, err)
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// ContentTypeJSON sets the Content-Type header to application/json
func ContentTypeJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}

// Authenticate resolves the request's bearer token, if any, and stores the
// profile on the request context. Anonymous requests pass through; handlers
// decide through the access policy what anonymous callers may do.
func Authenticate(resolver IdentityResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			profile, err := resolver.CurrentIdentity(BearerToken(r))
			if err != nil {
				applog.Error.Printf("identity resolution failed: %v", err)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(map[string]string{"error": "identity resolution failed"})
				return
			}
			if profile != nil {
				r = r.WithContext(context.WithValue(r.Context(), identityKey, profile))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// IdentityFrom returns the authenticated profile on ctx, nil for anonymous.
func IdentityFrom(ctx context.Context) *models.Profile {
	profile, _ := ctx.Value(identityKey).(*models.Profile)
	return profile
}

// BearerToken extracts the bearer token from the Authorization header, empty
// when absent.
func BearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}
