package routes

import (
	"taployalty/internal/handlers"

	"github.com/gin-gonic/gin"
)

// SetupAssistantRoutes sets up the assistant endpoints. Query requires
// auth; the proxy is mounted separately because the upstream function does
// its own auth on the relayed body.
func SetupAssistantRoutes(authed *gin.RouterGroup, open *gin.RouterGroup, assistantHandler *handlers.AssistantHandler) {
	authed.POST("/assistant/query", assistantHandler.Query)
	open.POST("/assistant/proxy", assistantHandler.Proxy)
}
