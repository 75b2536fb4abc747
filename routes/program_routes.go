package routes

import (
	"taployalty/internal/handlers"

	"github.com/gin-gonic/gin"
)

// SetupProgramRoutes sets up routes for recurring loyalty programs
func SetupProgramRoutes(r *gin.RouterGroup, programHandler *handlers.ProgramHandler) {
	programs := r.Group("/programs")
	{
		programs.GET("", programHandler.ListPrograms)
		programs.POST("/coffee", programHandler.CreateCoffeeProgram)
		programs.POST("/voucher", programHandler.CreateVoucherProgram)
		programs.POST("/transaction", programHandler.CreateTransactionProgram)
		programs.POST("/cashback", programHandler.CreateCashbackProgram)
	}
}
