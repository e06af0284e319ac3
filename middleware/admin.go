package middleware

import (
	"crypto/subtle"

	"github.com/gin-gonic/gin"

	apperrors "github.com/feedbackform/feedback-backend/errors"
)

// AdminTokenHeader carries the shared admin secret.
const AdminTokenHeader = "X-Admin-Token"

// AdminAuth gates administrative endpoints behind a shared-secret header.
// The comparison is constant-time. An empty configured token disables the
// gate entirely (the "optional admin token" mode).
func AdminAuth(token string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token == "" {
			c.Next()
			return
		}

		provided := c.GetHeader(AdminTokenHeader)
		if subtle.ConstantTimeCompare([]byte(provided), []byte(token)) != 1 {
			_ = c.Error(apperrors.AuthenticationFailed("Unauthorized"))
			c.Abort()
			return
		}

		c.Next()
	}
}
