package interfaces

import (
	"context"

	"taployalty/internal/models"
	"taployalty/internal/utils"
)

type CustomerRepository interface {
	GetByCustomerID(ctx context.Context, merchantID, customerID string) (*models.Customer, error)
	ListByMerchant(ctx context.Context, merchantID string, params *utils.PaginationParams) ([]*models.Customer, int64, error)
	// GetNames resolves customer ids to display names; unknown ids are
	// simply absent from the result.
	GetNames(ctx context.Context, merchantID string, customerIDs []string) (map[string]string, error)
}
