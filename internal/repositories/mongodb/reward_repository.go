package mongodb

import (
	"context"
	"fmt"
	"time"

	"taployalty/internal/models"
	"taployalty/internal/repositories/interfaces"
	"taployalty/internal/utils"
	"taployalty/pkg/logger"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type rewardRepository struct {
	merchantRewards *mongo.Collection
	flatRewards     *mongo.Collection
	cache           CacheService
	logger          *logger.Logger
}

func NewRewardRepository(db *mongo.Database, cache CacheService, log *logger.Logger) interfaces.RewardRepository {
	return &rewardRepository{
		merchantRewards: db.Collection("merchant_rewards"),
		flatRewards:     db.Collection("rewards"),
		cache:           cache,
		logger:          log,
	}
}

// Create inserts the reward into the merchant-scoped collection, then
// mirrors it into the flat collection under the same id. There is no
// transaction across the two writes: if the mirror write fails the
// reward exists only in the merchant collection until the next
// overwrite. That window is inherited from the system this replaces and
// is surfaced in the logs rather than papered over.
func (r *rewardRepository) Create(ctx context.Context, reward *models.Reward) (primitive.ObjectID, error) {
	reward.ID = primitive.NewObjectID()

	_, err := r.merchantRewards.InsertOne(ctx, reward)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("failed to create reward: %w", err)
	}

	if err := r.mirrorToFlat(ctx, reward); err != nil {
		return reward.ID, err
	}

	return reward.ID, nil
}

// Overwrite replaces both documents with a freshly compiled record.
// Edits never merge: the wizard re-compiles the whole reward.
func (r *rewardRepository) Overwrite(ctx context.Context, id primitive.ObjectID, reward *models.Reward) error {
	reward.ID = id

	_, err := r.merchantRewards.ReplaceOne(
		ctx,
		bson.M{"_id": id, "merchant_id": reward.MerchantID},
		reward,
	)
	if err != nil {
		return fmt.Errorf("failed to update reward: %w", err)
	}

	r.invalidateCache(ctx, reward.MerchantID, id)

	return r.mirrorToFlat(ctx, reward)
}

func (r *rewardRepository) GetByID(ctx context.Context, merchantID string, id primitive.ObjectID) (*models.Reward, error) {
	cacheKey := rewardCacheKey(merchantID, id)
	if r.cache != nil {
		var cached models.Reward
		if err := r.cache.Get(ctx, cacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	var reward models.Reward
	err := r.merchantRewards.FindOne(ctx, bson.M{"_id": id, "merchant_id": merchantID}).Decode(&reward)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("reward not found")
		}
		return nil, fmt.Errorf("failed to get reward: %w", err)
	}

	if r.cache != nil && reward.Status == models.RewardStatusActive {
		r.cache.Set(ctx, cacheKey, reward, 30*time.Minute)
	}

	return &reward, nil
}

func (r *rewardRepository) Delete(ctx context.Context, merchantID string, id primitive.ObjectID) error {
	_, err := r.merchantRewards.DeleteOne(ctx, bson.M{"_id": id, "merchant_id": merchantID})
	if err != nil {
		return fmt.Errorf("failed to delete reward: %w", err)
	}

	r.invalidateCache(ctx, merchantID, id)

	if _, err := r.flatRewards.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		r.logger.WithError(err).WithField("reward_id", id.Hex()).
			Warn("reward removed from merchant collection but not from flat collection")
		return fmt.Errorf("failed to delete reward from flat collection: %w", err)
	}

	return nil
}

func (r *rewardRepository) ListByMerchant(ctx context.Context, merchantID string, params *utils.PaginationParams) ([]*models.Reward, int64, error) {
	filter := bson.M{"merchant_id": merchantID}

	if params.Search != "" {
		searchFields := []string{"reward_name", "description", "reward_summary"}
		searchFilter := params.GetSearchFilter(searchFields)
		if len(searchFilter) > 0 {
			filter = bson.M{"$and": []bson.M{filter, searchFilter}}
		}
	}

	total, err := r.merchantRewards.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count rewards: %w", err)
	}

	cursor, err := r.merchantRewards.Find(ctx, filter, params.GetSortOptions())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to find rewards: %w", err)
	}
	defer cursor.Close(ctx)

	var rewards []*models.Reward
	for cursor.Next(ctx) {
		var reward models.Reward
		if err := cursor.Decode(&reward); err != nil {
			return nil, 0, fmt.Errorf("failed to decode reward: %w", err)
		}
		rewards = append(rewards, &reward)
	}

	return rewards, total, nil
}

func (r *rewardRepository) CountIntroductory(ctx context.Context, merchantID string) (int64, error) {
	count, err := r.merchantRewards.CountDocuments(ctx, bson.M{
		"merchant_id":            merchantID,
		"is_introductory_reward": true,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to count introductory rewards: %w", err)
	}
	return count, nil
}

func (r *rewardRepository) mirrorToFlat(ctx context.Context, reward *models.Reward) error {
	opts := options.Replace().SetUpsert(true)
	_, err := r.flatRewards.ReplaceOne(ctx, bson.M{"_id": reward.ID}, reward, opts)
	if err != nil {
		r.logger.WithError(err).WithFields(map[string]interface{}{
			"reward_id":   reward.ID.Hex(),
			"merchant_id": reward.MerchantID,
		}).Warn("reward written to merchant collection but flat collection write failed")
		return fmt.Errorf("failed to mirror reward to flat collection: %w", err)
	}
	return nil
}

func (r *rewardRepository) invalidateCache(ctx context.Context, merchantID string, id primitive.ObjectID) {
	if r.cache != nil {
		r.cache.Delete(ctx, rewardCacheKey(merchantID, id))
	}
}

func rewardCacheKey(merchantID string, id primitive.ObjectID) string {
	return fmt.Sprintf("reward:%s:%s", merchantID, id.Hex())
}
