package services

import (
	"context"

	"taployalty/internal/models"
	"taployalty/internal/repositories/interfaces"
	"taployalty/internal/utils"
)

type CustomerService interface {
	GetCustomer(ctx context.Context, merchantID, customerID string) (*models.Customer, error)
	ListCustomers(ctx context.Context, merchantID string, params *utils.PaginationParams) ([]*models.Customer, int64, error)
}

type customerService struct {
	customerRepo interfaces.CustomerRepository
}

func NewCustomerService(customerRepo interfaces.CustomerRepository) CustomerService {
	return &customerService{customerRepo: customerRepo}
}

func (s *customerService) GetCustomer(ctx context.Context, merchantID, customerID string) (*models.Customer, error) {
	return s.customerRepo.GetByCustomerID(ctx, merchantID, customerID)
}

func (s *customerService) ListCustomers(ctx context.Context, merchantID string, params *utils.PaginationParams) ([]*models.Customer, int64, error) {
	return s.customerRepo.ListByMerchant(ctx, merchantID, params)
}
