package handlers

import (
	"net/http"

	"taployalty/internal/models"
	"taployalty/internal/services"
	"taployalty/internal/utils"
	"taployalty/internal/validators"

	"github.com/gin-gonic/gin"
)

type ProgramHandler struct {
	programService services.ProgramService
}

func NewProgramHandler(programService services.ProgramService) *ProgramHandler {
	return &ProgramHandler{
		programService: programService,
	}
}

// CreateCoffeeProgram creates or replaces the merchant's coffee stamp card
func (h *ProgramHandler) CreateCoffeeProgram(c *gin.Context) {
	merchantID, ok := merchantIDFromContext(c)
	if !ok {
		return
	}

	var request models.CoffeeProgramRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	program, err := h.programService.CreateCoffeeProgram(c.Request.Context(), merchantID, &request)
	if err != nil {
		h.programError(c, err)
		return
	}

	utils.CreatedResponse(c, "Coffee program created successfully", program)
}

func (h *ProgramHandler) CreateVoucherProgram(c *gin.Context) {
	merchantID, ok := merchantIDFromContext(c)
	if !ok {
		return
	}

	var request models.VoucherProgramRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	program, err := h.programService.CreateVoucherProgram(c.Request.Context(), merchantID, &request)
	if err != nil {
		h.programError(c, err)
		return
	}

	utils.CreatedResponse(c, "Voucher program created successfully", program)
}

func (h *ProgramHandler) CreateTransactionProgram(c *gin.Context) {
	merchantID, ok := merchantIDFromContext(c)
	if !ok {
		return
	}

	var request models.TransactionProgramRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	program, err := h.programService.CreateTransactionProgram(c.Request.Context(), merchantID, &request)
	if err != nil {
		h.programError(c, err)
		return
	}

	utils.CreatedResponse(c, "Transaction program created successfully", program)
}

func (h *ProgramHandler) CreateCashbackProgram(c *gin.Context) {
	merchantID, ok := merchantIDFromContext(c)
	if !ok {
		return
	}

	var request models.CashbackProgramRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	program, err := h.programService.CreateCashbackProgram(c.Request.Context(), merchantID, &request)
	if err != nil {
		h.programError(c, err)
		return
	}

	utils.CreatedResponse(c, "Cashback program created successfully", program)
}

func (h *ProgramHandler) ListPrograms(c *gin.Context) {
	merchantID, ok := merchantIDFromContext(c)
	if !ok {
		return
	}

	programs, err := h.programService.ListPrograms(c.Request.Context(), merchantID)
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "PROGRAM_LIST_FAILED", "Failed to list programs: "+err.Error())
		return
	}

	utils.SuccessResponse(c, "Programs retrieved successfully", map[string]interface{}{
		"programs": programs,
	})
}

func (h *ProgramHandler) programError(c *gin.Context, err error) {
	if errs, ok := err.(validators.ValidationErrors); ok {
		details := make(map[string]string, len(errs))
		for _, e := range errs {
			details[e.Field] = e.Message
		}
		utils.ValidationErrorResponse(c, details)
		return
	}
	utils.ErrorResponse(c, http.StatusInternalServerError, "PROGRAM_SAVE_FAILED", "Failed to save program: "+err.Error())
}
