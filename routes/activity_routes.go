package routes

import (
	"taployalty/internal/handlers"

	"github.com/gin-gonic/gin"
)

// SetupActivityRoutes sets up the merged activity feed and customer routes
func SetupActivityRoutes(r *gin.RouterGroup, activityHandler *handlers.ActivityHandler, customerHandler *handlers.CustomerHandler) {
	r.GET("/activity", activityHandler.GetFeed)

	customers := r.Group("/customers")
	{
		customers.GET("", customerHandler.ListCustomers)
		customers.GET("/:id", customerHandler.GetCustomer)
	}
}
