package middleware

import (
	"expertqa/internal/db"
	"expertqa/internal/metrics"
	"github.com/gin-gonic/gin"
)

// DBLease gives each request its own db.Lease. The connection is only
// checked out if a handler runs a statement, and goes back to the pool
// when the request finishes, including on panic.
func DBLease(acquire db.AcquireFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		lease := db.NewLease(acquire)
		defer func() {
			if lease.Acquired() {
				metrics.LeasesAcquired.Inc()
			}
			lease.Release()
		}()

		c.Request = c.Request.WithContext(db.WithLease(c.Request.Context(), lease))
		c.Next()
	}
}
