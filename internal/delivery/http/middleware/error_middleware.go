package middleware

import (
	"errors"
	"net/http"

	"go-interview-booking/internal/delivery/http/response"
	"go-interview-booking/pkg/apperror"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorHandler renders the last error a handler attached with c.Error
func ErrorHandler(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		var appErr *apperror.AppError
		if errors.As(err, &appErr) && appErr.Code < http.StatusInternalServerError {
			if appErr.Err != nil {
				logger.Info("request rejected",
					zap.Error(appErr.Err),
					zap.String("path", c.FullPath()),
					zap.String("request_id", c.GetString(KeyRequestID)),
				)
			}
			response.Error(c, appErr.Code, appErr.Message, appErr.Details)
			return
		}

		// Internal details stay in the log, the client gets a generic message
		logger.Error("request failed",
			zap.Error(err),
			zap.String("path", c.FullPath()),
			zap.String("request_id", c.GetString(KeyRequestID)),
		)
		code := http.StatusInternalServerError
		if appErr != nil {
			code = appErr.Code
		}
		response.Error(c, code, "An unexpected error occurred. Please try again later.", nil)
	}
}
