package mongodb

import (
	"context"
	"fmt"

	"taployalty/internal/models"
	"taployalty/internal/repositories/interfaces"
	"taployalty/internal/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type customerRepository struct {
	collection *mongo.Collection
	cache      CacheService
}

func NewCustomerRepository(db *mongo.Database, cache CacheService) interfaces.CustomerRepository {
	return &customerRepository{
		collection: db.Collection("customers"),
		cache:      cache,
	}
}

func (r *customerRepository) GetByCustomerID(ctx context.Context, merchantID, customerID string) (*models.Customer, error) {
	var customer models.Customer
	err := r.collection.FindOne(ctx, bson.M{
		"merchant_id": merchantID,
		"customer_id": customerID,
	}).Decode(&customer)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("customer not found")
		}
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}
	return &customer, nil
}

func (r *customerRepository) ListByMerchant(ctx context.Context, merchantID string, params *utils.PaginationParams) ([]*models.Customer, int64, error) {
	filter := bson.M{"merchant_id": merchantID}

	if params.Search != "" {
		searchFields := []string{"full_name", "email"}
		searchFilter := params.GetSearchFilter(searchFields)
		if len(searchFilter) > 0 {
			filter = bson.M{"$and": []bson.M{filter, searchFilter}}
		}
	}

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count customers: %w", err)
	}

	cursor, err := r.collection.Find(ctx, filter, params.GetSortOptions())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to find customers: %w", err)
	}
	defer cursor.Close(ctx)

	var customers []*models.Customer
	for cursor.Next(ctx) {
		var customer models.Customer
		if err := cursor.Decode(&customer); err != nil {
			return nil, 0, fmt.Errorf("failed to decode customer: %w", err)
		}
		customers = append(customers, &customer)
	}

	return customers, total, nil
}

func (r *customerRepository) GetNames(ctx context.Context, merchantID string, customerIDs []string) (map[string]string, error) {
	names := make(map[string]string, len(customerIDs))
	if len(customerIDs) == 0 {
		return names, nil
	}

	cursor, err := r.collection.Find(ctx, bson.M{
		"merchant_id": merchantID,
		"customer_id": bson.M{"$in": customerIDs},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to find customers: %w", err)
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var customer struct {
			CustomerID string `bson:"customer_id"`
			FullName   string `bson:"full_name"`
		}
		if err := cursor.Decode(&customer); err != nil {
			return nil, fmt.Errorf("failed to decode customer: %w", err)
		}
		names[customer.CustomerID] = customer.FullName
	}

	return names, nil
}
