package interfaces

import (
	"context"

	"taployalty/internal/models"
	"taployalty/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type NoteRepository interface {
	Create(ctx context.Context, note *models.Note) (primitive.ObjectID, error)
	GetByID(ctx context.Context, merchantID string, id primitive.ObjectID) (*models.Note, error)
	ListByMerchant(ctx context.Context, merchantID string, params *utils.PaginationParams) ([]*models.Note, int64, error)
	Delete(ctx context.Context, merchantID string, id primitive.ObjectID) error
}
