package middleware

import (
	"errors"
	"net/http"

	"contact-relay-backend/internal/delivery/http/response"
	"contact-relay-backend/pkg/apperror"
	"contact-relay-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		// Check if there are errors appended to the context
		if len(c.Errors) > 0 {
			err := c.Errors.Last().Err
			var appErr *apperror.AppError
			if errors.As(err, &appErr) {
				if appErr.Err != nil {
					// Provider/internal detail stays in operator logs only
					logger.Log.Error("request failed", "code", appErr.Code, "error", appErr.Err, "path", c.FullPath())
				}
				if len(appErr.Errors) > 0 {
					response.ValidationFailed(c, appErr.Errors)
					return
				}
				response.Error(c, appErr.Code, appErr.Message)
				return
			}

			// SECURITY: Never expose internal error details to clients.
			// Log the actual error server-side for debugging, but send a
			// generic message to the user to prevent information disclosure.
			logger.Log.Error("unhandled request error", "error", err, "path", c.FullPath())
			response.Error(c, http.StatusInternalServerError, "An unexpected error occurred. Please try again later.")
		}
	}
}
