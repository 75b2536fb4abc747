package handlers

import (
	"net/http"

	"taployalty/internal/models"
	"taployalty/internal/services"
	"taployalty/internal/utils"

	"github.com/gin-gonic/gin"
)

type ActivityHandler struct {
	activityService services.ActivityService
}

func NewActivityHandler(activityService services.ActivityService) *ActivityHandler {
	return &ActivityHandler{
		activityService: activityService,
	}
}

// GetFeed returns the merged transaction/redemption feed with filters,
// date buckets and sorting applied
func (h *ActivityHandler) GetFeed(c *gin.Context) {
	merchantID, ok := merchantIDFromContext(c)
	if !ok {
		return
	}

	var filter models.ActivityFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		utils.BadRequestResponse(c, "Invalid filter: "+err.Error())
		return
	}

	items, err := h.activityService.GetFeed(c.Request.Context(), merchantID, &filter)
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "ACTIVITY_FETCH_FAILED", "Failed to get activity feed: "+err.Error())
		return
	}

	utils.SuccessResponseWithMeta(c, "Activity retrieved successfully", map[string]interface{}{
		"activity": items,
	}, &utils.Meta{Count: len(items)})
}
