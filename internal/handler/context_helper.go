package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/msa-adp-api/internal/middleware"
)

func orgFromContext(c *gin.Context) string {
	value, exists := c.Get(middleware.ContextOrgKey)
	if !exists {
		return ""
	}
	orgID, ok := value.(string)
	if !ok {
		return ""
	}
	return orgID
}
