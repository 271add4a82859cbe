package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/helpdeskops/perf-api/internal/models"
	appErrors "github.com/helpdeskops/perf-api/pkg/errors"
	"github.com/helpdeskops/perf-api/pkg/response"
)

// ReportAccess restricts reporting routes to administrators and service
// heads. It expects JWT to have run first.
func ReportAccess() gin.HandlerFunc {
	return func(c *gin.Context) {
		claimsValue, exists := c.Get(ContextUserKey)
		if !exists {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}
		claims, ok := claimsValue.(*models.JWTClaims)
		if !ok || !claims.CanViewReports() {
			response.Error(c, appErrors.ErrForbidden)
			c.Abort()
			return
		}
		c.Next()
	}
}
