package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/feedbackform/feedback-backend/errors"
	"github.com/feedbackform/feedback-backend/logger"
	"github.com/feedbackform/feedback-backend/types"
)

// ErrorHandler converts errors attached to the gin context into the uniform
// {ok:false, error:...} envelope. Handlers and middleware report failures via
// c.Error and rely on this middleware for the response.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		log := logger.GetLogger()

		if appError, ok := err.(*apperrors.AppError); ok {
			status := appError.GetHTTPStatus()
			log.Warnw("Request failed",
				"path", c.Request.URL.Path,
				"method", c.Request.Method,
				"status", status,
				"error_type", string(appError.Type),
				"error", appError.Error(),
			)

			msg := appError.Message
			// Validation and not-found details are safe to show callers.
			if appError.Detail != "" &&
				(appError.Type == apperrors.ValidationError || appError.Type == apperrors.NotFoundError) {
				msg = appError.Message + ": " + appError.Detail
			}
			c.JSON(status, types.ErrorBody{OK: false, Error: msg})
			return
		}

		if c.Errors.Last().Type == gin.ErrorTypeBind {
			log.Warnw("Request binding failed",
				"path", c.Request.URL.Path,
				"error", err,
			)
			c.JSON(http.StatusBadRequest, types.ErrorBody{OK: false, Error: "Invalid request body"})
			return
		}

		log.Errorw("Unexpected server error",
			"path", c.Request.URL.Path,
			"method", c.Request.Method,
			"error", err,
		)
		c.JSON(http.StatusInternalServerError, types.ErrorBody{OK: false, Error: "Internal server error"})
	}
}
