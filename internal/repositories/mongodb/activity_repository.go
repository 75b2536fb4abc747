package mongodb

import (
	"context"
	"fmt"
	"time"

	"taployalty/internal/models"
	"taployalty/internal/repositories/interfaces"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type transactionRepository struct {
	collection *mongo.Collection
}

func NewTransactionRepository(db *mongo.Database) interfaces.TransactionRepository {
	return &transactionRepository{collection: db.Collection("transactions")}
}

func (r *transactionRepository) ListByMerchant(ctx context.Context, merchantID string, from, to time.Time) ([]*models.Transaction, error) {
	filter := dateRangeFilter(merchantID, from, to)

	cursor, err := r.collection.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to find transactions: %w", err)
	}
	defer cursor.Close(ctx)

	var transactions []*models.Transaction
	for cursor.Next(ctx) {
		var tx models.Transaction
		if err := cursor.Decode(&tx); err != nil {
			return nil, fmt.Errorf("failed to decode transaction: %w", err)
		}
		transactions = append(transactions, &tx)
	}

	return transactions, nil
}

type redemptionRepository struct {
	collection *mongo.Collection
}

func NewRedemptionRepository(db *mongo.Database) interfaces.RedemptionRepository {
	return &redemptionRepository{collection: db.Collection("redemptions")}
}

func (r *redemptionRepository) ListByMerchant(ctx context.Context, merchantID string, from, to time.Time) ([]*models.Redemption, error) {
	filter := dateRangeFilter(merchantID, from, to)

	cursor, err := r.collection.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to find redemptions: %w", err)
	}
	defer cursor.Close(ctx)

	var redemptions []*models.Redemption
	for cursor.Next(ctx) {
		var redemption models.Redemption
		if err := cursor.Decode(&redemption); err != nil {
			return nil, fmt.Errorf("failed to decode redemption: %w", err)
		}
		redemptions = append(redemptions, &redemption)
	}

	return redemptions, nil
}

func dateRangeFilter(merchantID string, from, to time.Time) bson.M {
	filter := bson.M{"merchant_id": merchantID}

	created := bson.M{}
	if !from.IsZero() {
		created["$gte"] = from
	}
	if !to.IsZero() {
		created["$lte"] = to
	}
	if len(created) > 0 {
		filter["created_at"] = created
	}

	return filter
}
