package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blogicum/internal/config"
)

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestAuthContext(t *testing.T) {
	cfg := &config.Config{JWTSecretKey: "test-secret"}

	capture := func(userID, username *string) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			*userID, _ = r.Context().Value(UserIDKey).(string)
			*username, _ = r.Context().Value(UsernameKey).(string)
		})
	}

	t.Run("valid cookie resolves the viewer", func(t *testing.T) {
		var userID, username string
		handler := AuthContext(cfg)(capture(&userID, &username))

		token := signToken(t, "test-secret", jwt.MapClaims{
			"userId":   "user-1",
			"username": "alice",
			"exp":      time.Now().Add(time.Hour).Unix(),
		})

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: SessionCookie, Value: token})
		handler.ServeHTTP(httptest.NewRecorder(), req)

		assert.Equal(t, "user-1", userID)
		assert.Equal(t, "alice", username)
	})

	t.Run("no cookie means anonymous", func(t *testing.T) {
		var userID, username string
		handler := AuthContext(cfg)(capture(&userID, &username))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		handler.ServeHTTP(httptest.NewRecorder(), req)

		assert.Empty(t, userID)
		assert.Empty(t, username)
	})

	t.Run("expired token degrades to anonymous", func(t *testing.T) {
		var userID, username string
		handler := AuthContext(cfg)(capture(&userID, &username))

		token := signToken(t, "test-secret", jwt.MapClaims{
			"userId":   "user-1",
			"username": "alice",
			"exp":      time.Now().Add(-time.Hour).Unix(),
		})

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: SessionCookie, Value: token})
		handler.ServeHTTP(httptest.NewRecorder(), req)

		assert.Empty(t, userID)
	})

	t.Run("token signed with another key degrades to anonymous", func(t *testing.T) {
		var userID, username string
		handler := AuthContext(cfg)(capture(&userID, &username))

		token := signToken(t, "other-secret", jwt.MapClaims{
			"userId":   "user-1",
			"username": "alice",
			"exp":      time.Now().Add(time.Hour).Unix(),
		})

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: SessionCookie, Value: token})
		handler.ServeHTTP(httptest.NewRecorder(), req)

		assert.Empty(t, userID)
	})
}
