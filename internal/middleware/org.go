package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	appErrors "github.com/noah-isme/msa-adp-api/pkg/errors"
	"github.com/noah-isme/msa-adp-api/pkg/response"
)

// ContextOrgKey is the gin context key holding the resolved organization id.
const ContextOrgKey = "orgID"

// OrgHeader is the header the admin console sends to scope requests.
const OrgHeader = "X-Org-ID"

// OrgScope extracts the organization id from the request header. Every
// business route is org-scoped; requests without the header are rejected
// before they reach a handler.
func OrgScope() gin.HandlerFunc {
	return func(c *gin.Context) {
		orgID := strings.TrimSpace(c.GetHeader(OrgHeader))
		if orgID == "" {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "X-Org-ID header required"))
			c.Abort()
			return
		}
		c.Set(ContextOrgKey, orgID)
		c.Next()
	}
}
