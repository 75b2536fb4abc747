package mongodb

import (
	"context"
	"fmt"
	"time"

	"taployalty/internal/models"
	"taployalty/internal/repositories/interfaces"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type programRepository struct {
	collection *mongo.Collection
	cache      CacheService
}

func NewProgramRepository(db *mongo.Database, cache CacheService) interfaces.ProgramRepository {
	return &programRepository{
		collection: db.Collection("programs"),
		cache:      cache,
	}
}

// Upsert keeps exactly one program per (merchant, type); creating a new
// coffee program replaces the old one outright.
func (r *programRepository) Upsert(ctx context.Context, program *models.Program) error {
	if program.ID.IsZero() {
		program.ID = primitive.NewObjectID()
		program.CreatedAt = time.Now()
	}
	program.UpdatedAt = time.Now()

	filter := bson.M{
		"merchant_id": program.MerchantID,
		"type":        program.Type,
	}

	// Preserve the original id and created_at when replacing.
	var existing models.Program
	err := r.collection.FindOne(ctx, filter).Decode(&existing)
	if err == nil {
		program.ID = existing.ID
		program.CreatedAt = existing.CreatedAt
	} else if err != mongo.ErrNoDocuments {
		return fmt.Errorf("failed to look up existing program: %w", err)
	}

	opts := options.Replace().SetUpsert(true)
	if _, err := r.collection.ReplaceOne(ctx, filter, program, opts); err != nil {
		return fmt.Errorf("failed to upsert program: %w", err)
	}

	if r.cache != nil {
		r.cache.Delete(ctx, programCacheKey(program.MerchantID, program.Type))
	}

	return nil
}

func (r *programRepository) ListByMerchant(ctx context.Context, merchantID string) ([]*models.Program, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"merchant_id": merchantID},
		options.Find().SetSort(bson.D{{Key: "type", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to find programs: %w", err)
	}
	defer cursor.Close(ctx)

	var programs []*models.Program
	for cursor.Next(ctx) {
		var program models.Program
		if err := cursor.Decode(&program); err != nil {
			return nil, fmt.Errorf("failed to decode program: %w", err)
		}
		programs = append(programs, &program)
	}

	return programs, nil
}

func (r *programRepository) GetByType(ctx context.Context, merchantID string, programType models.ProgramType) (*models.Program, error) {
	cacheKey := programCacheKey(merchantID, programType)
	if r.cache != nil {
		var cached models.Program
		if err := r.cache.Get(ctx, cacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	var program models.Program
	err := r.collection.FindOne(ctx, bson.M{
		"merchant_id": merchantID,
		"type":        programType,
	}).Decode(&program)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("program not found")
		}
		return nil, fmt.Errorf("failed to get program: %w", err)
	}

	if r.cache != nil {
		r.cache.Set(ctx, cacheKey, program, 30*time.Minute)
	}

	return &program, nil
}

func programCacheKey(merchantID string, programType models.ProgramType) string {
	return fmt.Sprintf("program:%s:%s", merchantID, programType)
}
