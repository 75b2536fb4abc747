package routes

import (
	"taployalty/internal/handlers"

	"github.com/gin-gonic/gin"
)

// SetupRewardRoutes sets up routes for the reward definition engine
func SetupRewardRoutes(r *gin.RouterGroup, rewardHandler *handlers.RewardHandler) {
	rewards := r.Group("/rewards")
	{
		rewards.POST("", rewardHandler.CreateReward)
		rewards.GET("", rewardHandler.ListRewards)
		rewards.POST("/validate", rewardHandler.ValidateStep)
		rewards.POST("/preview", rewardHandler.PreviewReward)
		rewards.POST("/introductory", rewardHandler.CreateIntroductoryReward)
		rewards.GET("/:id", rewardHandler.GetReward)
		rewards.PUT("/:id", rewardHandler.UpdateReward)
		rewards.DELETE("/:id", rewardHandler.DeleteReward)
	}
}
