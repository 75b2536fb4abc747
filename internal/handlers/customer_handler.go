package handlers

import (
	"net/http"
	"strings"

	"taployalty/internal/services"
	"taployalty/internal/utils"

	"github.com/gin-gonic/gin"
)

type CustomerHandler struct {
	customerService services.CustomerService
}

func NewCustomerHandler(customerService services.CustomerService) *CustomerHandler {
	return &CustomerHandler{
		customerService: customerService,
	}
}

func (h *CustomerHandler) ListCustomers(c *gin.Context) {
	merchantID, ok := merchantIDFromContext(c)
	if !ok {
		return
	}

	params := utils.GetPaginationParams(c)
	customers, total, err := h.customerService.ListCustomers(c.Request.Context(), merchantID, params)
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "CUSTOMER_LIST_FAILED", "Failed to list customers: "+err.Error())
		return
	}

	meta := &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
	}

	utils.SuccessResponseWithMeta(c, "Customers retrieved successfully", map[string]interface{}{
		"customers": customers,
	}, meta)
}

func (h *CustomerHandler) GetCustomer(c *gin.Context) {
	merchantID, ok := merchantIDFromContext(c)
	if !ok {
		return
	}

	customer, err := h.customerService.GetCustomer(c.Request.Context(), merchantID, c.Param("id"))
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			utils.NotFoundResponse(c, "Customer")
			return
		}
		utils.ErrorResponse(c, http.StatusInternalServerError, "CUSTOMER_FETCH_FAILED", "Failed to get customer: "+err.Error())
		return
	}

	utils.SuccessResponse(c, "Customer retrieved successfully", customer)
}
