package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/feedbackform/feedback-backend/logger"
)

func init() {
	logger.IsTest = true
	gin.SetMode(gin.TestMode)
}

func newAdminTestRouter(token string) *gin.Engine {
	r := gin.New()
	r.Use(ErrorHandler())
	r.GET("/admin", AdminAuth(token), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func TestAdminAuth(t *testing.T) {
	t.Run("matching token passes", func(t *testing.T) {
		r := newAdminTestRouter("secret")
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		req.Header.Set(AdminTokenHeader, "secret")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("missing token is rejected", func(t *testing.T) {
		r := newAdminTestRouter("secret")
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.JSONEq(t, `{"ok":false,"error":"Unauthorized"}`, w.Body.String())
	})

	t.Run("wrong token is rejected", func(t *testing.T) {
		r := newAdminTestRouter("secret")
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		req.Header.Set(AdminTokenHeader, "guess")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("empty configured token disables the gate", func(t *testing.T) {
		r := newAdminTestRouter("")
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}
