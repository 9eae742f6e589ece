package middleware

import (
	"net/http"

	"go-interview-booking/pkg/apperror"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/semaphore"
)

// ConcurrencyLimit caps the number of requests in flight to protect the store.
// A non-positive max disables the cap.
func ConcurrencyLimit(max int64) gin.HandlerFunc {
	if max <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	sem := semaphore.NewWeighted(max)
	return func(c *gin.Context) {
		if err := sem.Acquire(c.Request.Context(), 1); err != nil {
			c.Error(apperror.New(apperror.KindStoreFailure, http.StatusServiceUnavailable, "Server busy. Please try again.", err))
			c.Abort()
			return
		}
		defer sem.Release(1)
		c.Next()
	}
}
