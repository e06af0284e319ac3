package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feedbackform/feedback-backend/types"
)

var authTestSecret = strings.Repeat("k", 32)

func signHS256(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func identityProbe(captured *types.Identity) gin.HandlerFunc {
	return func(c *gin.Context) {
		*captured = IdentityFromContext(c)
		c.Status(http.StatusOK)
	}
}

func TestOptionalIdentity(t *testing.T) {
	t.Run("no token passes through anonymously", func(t *testing.T) {
		var got types.Identity
		r := gin.New()
		r.Use(ErrorHandler())
		r.GET("/", OptionalIdentity(authTestSecret), identityProbe(&got))

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, got.Subject)
	})

	t.Run("valid token sets the identity", func(t *testing.T) {
		var got types.Identity
		r := gin.New()
		r.Use(ErrorHandler())
		r.GET("/", OptionalIdentity(authTestSecret), identityProbe(&got))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+signHS256(t, authTestSecret, jwt.MapClaims{
			"sub":   "u1",
			"email": "u@example.com",
			"exp":   time.Now().Add(time.Hour).Unix(),
		}))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "u1", got.Subject)
		assert.Equal(t, "u@example.com", got.Email)
	})

	t.Run("invalid token is rejected", func(t *testing.T) {
		r := gin.New()
		r.Use(ErrorHandler())
		r.GET("/", OptionalIdentity(authTestSecret), func(c *gin.Context) { c.Status(http.StatusOK) })

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer garbage")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("token signed with the wrong key is rejected", func(t *testing.T) {
		r := gin.New()
		r.Use(ErrorHandler())
		r.GET("/", OptionalIdentity(authTestSecret), func(c *gin.Context) { c.Status(http.StatusOK) })

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+signHS256(t, strings.Repeat("x", 32), jwt.MapClaims{
			"sub": "u1",
			"exp": time.Now().Add(time.Hour).Unix(),
		}))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("no configured secret disables verification", func(t *testing.T) {
		var got types.Identity
		r := gin.New()
		r.Use(ErrorHandler())
		r.GET("/", OptionalIdentity(""), identityProbe(&got))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer anything")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, got.Subject)
	})
}

func TestRequireIdentity(t *testing.T) {
	t.Run("missing token is rejected", func(t *testing.T) {
		r := gin.New()
		r.Use(ErrorHandler())
		r.GET("/", RequireIdentity(authTestSecret), func(c *gin.Context) { c.Status(http.StatusOK) })

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("token without a subject is rejected", func(t *testing.T) {
		r := gin.New()
		r.Use(ErrorHandler())
		r.GET("/", RequireIdentity(authTestSecret), func(c *gin.Context) { c.Status(http.StatusOK) })

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+signHS256(t, authTestSecret, jwt.MapClaims{
			"exp": time.Now().Add(time.Hour).Unix(),
		}))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("expired token is rejected", func(t *testing.T) {
		r := gin.New()
		r.Use(ErrorHandler())
		r.GET("/", RequireIdentity(authTestSecret), func(c *gin.Context) { c.Status(http.StatusOK) })

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+signHS256(t, authTestSecret, jwt.MapClaims{
			"sub": "u1",
			"exp": time.Now().Add(-time.Hour).Unix(),
		}))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("no configured secret rejects everything", func(t *testing.T) {
		r := gin.New()
		r.Use(ErrorHandler())
		r.GET("/", RequireIdentity(""), func(c *gin.Context) { c.Status(http.StatusOK) })

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
