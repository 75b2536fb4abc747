package interfaces

import (
	"context"

	"taployalty/internal/models"
	"taployalty/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RewardRepository persists compiled rewards. Every write lands in two
// places sharing the same id: the merchant-scoped collection the
// dashboard reads, and the flat collection the customer app reads. The
// two writes are not transactional; see the mongodb implementation.
type RewardRepository interface {
	Create(ctx context.Context, reward *models.Reward) (primitive.ObjectID, error)
	Overwrite(ctx context.Context, id primitive.ObjectID, reward *models.Reward) error
	GetByID(ctx context.Context, merchantID string, id primitive.ObjectID) (*models.Reward, error)
	Delete(ctx context.Context, merchantID string, id primitive.ObjectID) error
	ListByMerchant(ctx context.Context, merchantID string, params *utils.PaginationParams) ([]*models.Reward, int64, error)
	CountIntroductory(ctx context.Context, merchantID string) (int64, error)
}
