package handlers

import (
	"taployalty/internal/utils"

	"github.com/gin-gonic/gin"
)

// merchantIDFromContext reads the merchant id the auth middleware stored on
// the request. Writes the 401 response itself when missing.
func merchantIDFromContext(c *gin.Context) (string, bool) {
	value, exists := c.Get("merchant_id")
	if !exists {
		utils.UnauthorizedResponse(c)
		return "", false
	}

	merchantID, ok := value.(string)
	if !ok || merchantID == "" {
		utils.UnauthorizedResponse(c)
		return "", false
	}

	return merchantID, true
}
