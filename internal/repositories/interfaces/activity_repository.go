package interfaces

import (
	"context"
	"time"

	"taployalty/internal/models"
)

// TransactionRepository reads purchase records for the activity feed.
// Transactions are written by the POS integration, never by this service.
type TransactionRepository interface {
	ListByMerchant(ctx context.Context, merchantID string, from, to time.Time) ([]*models.Transaction, error)
}

type RedemptionRepository interface {
	ListByMerchant(ctx context.Context, merchantID string, from, to time.Time) ([]*models.Redemption, error)
}
