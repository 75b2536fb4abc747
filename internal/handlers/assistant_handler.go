package handlers

import (
	"bytes"
	"io"
	"net/http"
	"time"

	"taployalty/internal/models"
	"taployalty/internal/services"
	"taployalty/internal/utils"
	"taployalty/pkg/logger"

	"github.com/gin-gonic/gin"
)

type AssistantHandler struct {
	assistantService services.AssistantService
	proxyClient      *http.Client
	proxyTargetURL   string
	logger           *logger.Logger
}

func NewAssistantHandler(assistantService services.AssistantService, proxyTargetURL string, timeout time.Duration, log *logger.Logger) *AssistantHandler {
	return &AssistantHandler{
		assistantService: assistantService,
		proxyClient:      &http.Client{Timeout: timeout},
		proxyTargetURL:   proxyTargetURL,
		logger:           log,
	}
}

// Query asks the knowledge base on the merchant's behalf
func (h *AssistantHandler) Query(c *gin.Context) {
	merchantID, ok := merchantIDFromContext(c)
	if !ok {
		return
	}

	var request models.AssistantQueryRequest
	if err := c.ShouldBindJSON(&request); err != nil || request.Prompt == "" {
		utils.BadRequestResponse(c, "A prompt is required")
		return
	}

	answer, err := h.assistantService.Query(c.Request.Context(), merchantID, request.Prompt)
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "ASSISTANT_QUERY_FAILED", err.Error())
		return
	}

	utils.SuccessResponse(c, "Query answered", answer)
}

// Proxy relays the request body to the configured assistant function and
// returns whatever comes back, byte for byte and status for status. The
// error shape here is fixed: downstream clients match on the content field.
func (h *AssistantHandler) Proxy(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		h.proxyError(c, err)
		return
	}

	req, err := http.NewRequestWithContext(c.Request.Context(), http.MethodPost, h.proxyTargetURL, bytes.NewReader(body))
	if err != nil {
		h.proxyError(c, err)
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := h.proxyClient.Do(req)
	if err != nil {
		h.proxyError(c, err)
		return
	}
	defer resp.Body.Close()

	upstream, err := io.ReadAll(resp.Body)
	if err != nil {
		h.proxyError(c, err)
		return
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/json"
	}
	c.Data(resp.StatusCode, contentType, upstream)
}

func (h *AssistantHandler) proxyError(c *gin.Context, err error) {
	h.logger.WithError(err).Warn("assistant proxy request failed")
	c.JSON(http.StatusInternalServerError, gin.H{
		"content": "Error in proxy: " + err.Error(),
	})
}
