package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/pageza/mealfinder/backend/internal/errors"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// Recovery turns a panic into a JSON 500 response.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				slog.Error("panic recovered", "component", "http", "panic", rec, "path", c.Request.URL.Path)
				c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal Server Error"})
			}
		}()
		c.Next()
	}
}

// ErrorHandler renders the last error attached with c.Error as JSON when
// the handler did not write a response itself.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		status := apperrors.HTTPStatusCode(err)
		message := http.StatusText(status)

		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			message = appErr.Message
		} else if status >= http.StatusInternalServerError {
			slog.Error("request failed", "component", "http", "error", err, "path", c.Request.URL.Path)
		}

		c.JSON(status, ErrorResponse{Error: message})
	}
}
