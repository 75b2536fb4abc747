package handlers

import (
	"net/http"
	"strings"

	"taployalty/internal/models"
	"taployalty/internal/services"
	"taployalty/internal/utils"
	"taployalty/internal/validators"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type RewardHandler struct {
	rewardService services.RewardService
}

func NewRewardHandler(rewardService services.RewardService) *RewardHandler {
	return &RewardHandler{
		rewardService: rewardService,
	}
}

// CreateReward validates and saves a completed wizard draft
func (h *RewardHandler) CreateReward(c *gin.Context) {
	merchantID, ok := merchantIDFromContext(c)
	if !ok {
		return
	}

	var draft models.RewardDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	reward, err := h.rewardService.CreateReward(c.Request.Context(), merchantID, &draft)
	if err != nil {
		if strings.HasPrefix(err.Error(), "please fill in") {
			utils.BadRequestResponse(c, err.Error())
			return
		}
		utils.ErrorResponse(c, http.StatusInternalServerError, "REWARD_CREATE_FAILED", "Failed to create reward: "+err.Error())
		return
	}

	utils.CreatedResponse(c, "Reward created successfully", reward)
}

// UpdateReward recompiles the draft and overwrites the stored reward
func (h *RewardHandler) UpdateReward(c *gin.Context) {
	merchantID, ok := merchantIDFromContext(c)
	if !ok {
		return
	}

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid reward ID")
		return
	}

	var draft models.RewardDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	reward, err := h.rewardService.UpdateReward(c.Request.Context(), merchantID, id, &draft)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			utils.NotFoundResponse(c, "Reward")
			return
		}
		if strings.HasPrefix(err.Error(), "please fill in") {
			utils.BadRequestResponse(c, err.Error())
			return
		}
		utils.ErrorResponse(c, http.StatusInternalServerError, "REWARD_UPDATE_FAILED", "Failed to update reward: "+err.Error())
		return
	}

	utils.SuccessResponse(c, "Reward updated successfully", reward)
}

func (h *RewardHandler) GetReward(c *gin.Context) {
	merchantID, ok := merchantIDFromContext(c)
	if !ok {
		return
	}

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid reward ID")
		return
	}

	reward, err := h.rewardService.GetReward(c.Request.Context(), merchantID, id)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			utils.NotFoundResponse(c, "Reward")
			return
		}
		utils.ErrorResponse(c, http.StatusInternalServerError, "REWARD_FETCH_FAILED", "Failed to get reward: "+err.Error())
		return
	}

	utils.SuccessResponse(c, "Reward retrieved successfully", reward)
}

func (h *RewardHandler) DeleteReward(c *gin.Context) {
	merchantID, ok := merchantIDFromContext(c)
	if !ok {
		return
	}

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid reward ID")
		return
	}

	if err := h.rewardService.DeleteReward(c.Request.Context(), merchantID, id); err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "REWARD_DELETE_FAILED", "Failed to delete reward: "+err.Error())
		return
	}

	utils.SuccessResponse(c, "Reward deleted successfully", nil)
}

func (h *RewardHandler) ListRewards(c *gin.Context) {
	merchantID, ok := merchantIDFromContext(c)
	if !ok {
		return
	}

	params := utils.GetPaginationParams(c)
	rewards, total, err := h.rewardService.ListRewards(c.Request.Context(), merchantID, params)
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "REWARD_LIST_FAILED", "Failed to list rewards: "+err.Error())
		return
	}

	meta := &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
	}

	utils.SuccessResponseWithMeta(c, "Rewards retrieved successfully", map[string]interface{}{
		"rewards": rewards,
	}, meta)
}

// ValidateStep gates one wizard step; the draft and step name arrive
// together in the body
func (h *RewardHandler) ValidateStep(c *gin.Context) {
	var request struct {
		Step  validators.WizardStep `json:"step"`
		Draft models.RewardDraft    `json:"draft"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	result := h.rewardService.ValidateStep(&request.Draft, request.Step)
	utils.SuccessResponse(c, "Validation complete", result)
}

// PreviewReward compiles the draft without saving, for the review page
func (h *RewardHandler) PreviewReward(c *gin.Context) {
	merchantID, ok := merchantIDFromContext(c)
	if !ok {
		return
	}

	var draft models.RewardDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	preview := h.rewardService.PreviewReward(merchantID, &draft)
	utils.SuccessResponse(c, "Preview generated", preview)
}

// CreateIntroductoryReward creates a platform-funded welcome reward
func (h *RewardHandler) CreateIntroductoryReward(c *gin.Context) {
	merchantID, ok := merchantIDFromContext(c)
	if !ok {
		return
	}

	var request models.IntroductoryRewardRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	reward, err := h.rewardService.CreateIntroductoryReward(c.Request.Context(), merchantID, &request)
	if err != nil {
		if strings.Contains(err.Error(), "maximum") || strings.Contains(err.Error(), "exceed") {
			utils.BadRequestResponse(c, err.Error())
			return
		}
		if _, ok := err.(validators.ValidationErrors); ok {
			utils.BadRequestResponse(c, err.Error())
			return
		}
		utils.ErrorResponse(c, http.StatusInternalServerError, "REWARD_CREATE_FAILED", "Failed to create introductory reward: "+err.Error())
		return
	}

	utils.CreatedResponse(c, "Introductory reward created successfully", reward)
}
