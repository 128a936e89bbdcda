package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"linkboard/app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeResolver struct {
	profiles map[string]*models.Profile
	err      error
}

func (r *fakeResolver) CurrentIdentity(token string) (*models.Profile, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.profiles[token], nil
}

func TestAuthenticate(t *testing.T) {
	alice := &models.Profile{ID: "u1", Username: "alice"}
	resolver := &fakeResolver{profiles: map[string]*models.Profile{"good-token": alice}}

	var seen *models.Profile
	handler := Authenticate(resolver)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = IdentityFrom(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("bearer token resolves", func(t *testing.T) {
		seen = nil
		req := httptest.NewRequest("GET", "/api/me", nil)
		req.Header.Set("Authorization", "Bearer good-token")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, seen)
		assert.Equal(t, "alice", seen.Username)
	})

	t.Run("no token is anonymous", func(t *testing.T) {
		seen = alice
		req := httptest.NewRequest("GET", "/api/posts", nil)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Nil(t, seen)
	})

	t.Run("unknown token is anonymous", func(t *testing.T) {
		seen = alice
		req := httptest.NewRequest("GET", "/api/posts", nil)
		req.Header.Set("Authorization", "Bearer wrong-token")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Nil(t, seen)
	})

	t.Run("resolver failure is a server error", func(t *testing.T) {
		broken := Authenticate(&fakeResolver{err: errors.New("store down")})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("handler must not run")
		}))
		req := httptest.NewRequest("GET", "/api/posts", nil)
		req.Header.Set("Authorization", "Bearer any")
		rec := httptest.NewRecorder()

		broken.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func TestBearerToken(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	assert.Equal(t, "", BearerToken(req))

	req.Header.Set("Authorization", "Bearer abc123")
	assert.Equal(t, "abc123", BearerToken(req))

	req.Header.Set("Authorization", "Basic abc123")
	assert.Equal(t, "", BearerToken(req))
}

func TestRecoverer(t *testing.T) {
	handler := Recoverer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))
	req := httptest.NewRequest("GET", "/", nil)
	rec := httptest.NewRecorder()

	assert.NotPanics(t, func() { handler.ServeHTTP(rec, req) })
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestContentTypeJSON(t *testing.T) {
	handler := ContentTypeJSON(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	req := httptest.NewRequest("GET", "/api/posts", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
}
