package middleware

import (
	"context"
	"errors"
	"net/http"
	"time"

	"go-interview-booking/pkg/apperror"

	"github.com/gin-gonic/gin"
)

// Timeout bounds the request context. Handlers that return after the
// deadline without writing get a 504. A non-positive d disables the bound.
func Timeout(d time.Duration) gin.HandlerFunc {
	if d <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), d)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)

		c.Next()

		if errors.Is(ctx.Err(), context.DeadlineExceeded) && !c.Writer.Written() {
			c.Error(apperror.New(apperror.KindStoreFailure, http.StatusGatewayTimeout, "Request timed out", ctx.Err()))
		}
	}
}
