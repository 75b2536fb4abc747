package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"taployalty/internal/models"
	"taployalty/internal/repositories/interfaces"
	"taployalty/internal/utils"
	"taployalty/internal/validators"
	"taployalty/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type RewardService interface {
	CreateReward(ctx context.Context, merchantID string, draft *models.RewardDraft) (*models.Reward, error)
	UpdateReward(ctx context.Context, merchantID string, id primitive.ObjectID, draft *models.RewardDraft) (*models.Reward, error)
	GetReward(ctx context.Context, merchantID string, id primitive.ObjectID) (*models.Reward, error)
	DeleteReward(ctx context.Context, merchantID string, id primitive.ObjectID) error
	ListRewards(ctx context.Context, merchantID string, params *utils.PaginationParams) ([]*models.Reward, int64, error)

	ValidateStep(draft *models.RewardDraft, step validators.WizardStep) validators.StepValidation
	PreviewReward(merchantID string, draft *models.RewardDraft) *models.Reward

	CreateIntroductoryReward(ctx context.Context, merchantID string, req *models.IntroductoryRewardRequest) (*models.Reward, error)
}

type rewardService struct {
	rewardRepo interfaces.RewardRepository
	timezone   *time.Location
	logger     *logger.Logger
}

func NewRewardService(rewardRepo interfaces.RewardRepository, timezone *time.Location, log *logger.Logger) RewardService {
	if timezone == nil {
		timezone = time.UTC
	}
	return &rewardService{
		rewardRepo: rewardRepo,
		timezone:   timezone,
		logger:     log,
	}
}

// CreateReward runs the full save path: validate every gating step, compile
// the draft into the persisted record, then dual-write it.
func (s *rewardService) CreateReward(ctx context.Context, merchantID string, draft *models.RewardDraft) (*models.Reward, error) {
	if result := validators.ValidateRewardDraft(draft); !result.OK {
		return nil, fmt.Errorf("please fill in: %s", strings.Join(result.MissingFields, ", "))
	}

	reward := CompileReward(draft, merchantID, time.Now(), s.timezone)

	id, err := s.rewardRepo.Create(ctx, reward)
	if err != nil {
		return nil, err
	}
	reward.ID = id

	s.logger.WithFields(map[string]interface{}{
		"merchant_id": merchantID,
		"reward_id":   id.Hex(),
		"reward_type": string(reward.RewardTypeDetails.Type),
		"status":      string(reward.Status),
	}).Info("reward created")

	return reward, nil
}

// UpdateReward re-compiles the whole draft and overwrites both persisted
// documents. Edits never merge with the stored record.
func (s *rewardService) UpdateReward(ctx context.Context, merchantID string, id primitive.ObjectID, draft *models.RewardDraft) (*models.Reward, error) {
	if result := validators.ValidateRewardDraft(draft); !result.OK {
		return nil, fmt.Errorf("please fill in: %s", strings.Join(result.MissingFields, ", "))
	}

	existing, err := s.rewardRepo.GetByID(ctx, merchantID, id)
	if err != nil {
		return nil, err
	}

	reward := CompileReward(draft, merchantID, time.Now(), s.timezone)
	reward.CreatedAt = existing.CreatedAt

	// Redemption bookkeeping is owned by the redemption system; carry it
	// through the overwrite untouched.
	reward.RedemptionCount = existing.RedemptionCount
	reward.UniqueCustomersCount = existing.UniqueCustomersCount
	reward.LastRedeemedAt = existing.LastRedeemedAt
	reward.UniqueCustomerIDs = existing.UniqueCustomerIDs
	reward.IsIntroductoryReward = existing.IsIntroductoryReward
	reward.FundedBy = existing.FundedBy

	if err := s.rewardRepo.Overwrite(ctx, id, reward); err != nil {
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"merchant_id": merchantID,
		"reward_id":   id.Hex(),
	}).Info("reward updated")

	return reward, nil
}

func (s *rewardService) GetReward(ctx context.Context, merchantID string, id primitive.ObjectID) (*models.Reward, error) {
	return s.rewardRepo.GetByID(ctx, merchantID, id)
}

func (s *rewardService) DeleteReward(ctx context.Context, merchantID string, id primitive.ObjectID) error {
	if err := s.rewardRepo.Delete(ctx, merchantID, id); err != nil {
		return err
	}

	s.logger.WithFields(map[string]interface{}{
		"merchant_id": merchantID,
		"reward_id":   id.Hex(),
	}).Info("reward deleted")

	return nil
}

func (s *rewardService) ListRewards(ctx context.Context, merchantID string, params *utils.PaginationParams) ([]*models.Reward, int64, error) {
	return s.rewardRepo.ListByMerchant(ctx, merchantID, params)
}

func (s *rewardService) ValidateStep(draft *models.RewardDraft, step validators.WizardStep) validators.StepValidation {
	return validators.ValidateRewardStep(draft, step)
}

// PreviewReward compiles without persisting, backing the live summary and
// review page. The compiler is pure, so an incomplete draft still previews.
func (s *rewardService) PreviewReward(merchantID string, draft *models.RewardDraft) *models.Reward {
	return CompileReward(draft, merchantID, time.Now(), s.timezone)
}

// CreateIntroductoryReward creates a platform-funded welcome reward. A
// merchant gets a fixed quota of these; the value is capped because the
// platform, not the merchant, pays for the redemption.
func (s *rewardService) CreateIntroductoryReward(ctx context.Context, merchantID string, req *models.IntroductoryRewardRequest) (*models.Reward, error) {
	if err := validators.ValidateStruct(req); err != nil {
		return nil, err
	}
	if req.Type == models.IntroductoryTypeVoucher && req.VoucherAmount > utils.IntroductoryRewardMaxValue {
		return nil, fmt.Errorf("introductory reward value cannot exceed $%.0f", utils.IntroductoryRewardMaxValue)
	}

	count, err := s.rewardRepo.CountIntroductory(ctx, merchantID)
	if err != nil {
		return nil, err
	}
	if count >= utils.MaxIntroductoryRewards {
		return nil, fmt.Errorf("merchant already has the maximum of %d introductory rewards", utils.MaxIntroductoryRewards)
	}

	draft := introductoryDraft(req)
	reward := CompileReward(draft, merchantID, time.Now(), s.timezone)
	reward.IsIntroductoryReward = true
	reward.FundedBy = "tap"

	id, err := s.rewardRepo.Create(ctx, reward)
	if err != nil {
		return nil, err
	}
	reward.ID = id

	s.logger.WithFields(map[string]interface{}{
		"merchant_id": merchantID,
		"reward_id":   id.Hex(),
		"type":        string(req.Type),
	}).Info("introductory reward created")

	return reward, nil
}

// introductoryDraft shapes the request as a new-customer draft so the
// compiler applies the usual new-customer rules (free, no conditions).
func introductoryDraft(req *models.IntroductoryRewardRequest) *models.RewardDraft {
	draft := &models.RewardDraft{
		RewardName:       req.RewardName,
		Description:      req.Description,
		RewardVisibility: models.VisibilityNew,
		PIN:              req.PIN,
		IsActive:         true,
	}

	switch req.Type {
	case models.IntroductoryTypeFreeItem:
		draft.Type = models.RewardTypeFreeItem
		draft.FreeItem = &models.FreeItemDetails{
			ItemName:        req.ItemName,
			ItemDescription: req.ItemDescription,
		}
	case models.IntroductoryTypeVoucher:
		draft.Type = models.RewardTypeFixedDiscount
		draft.FixedDiscount = &models.FixedDiscountDetails{
			DiscountValue: models.NewFlexNumber(req.VoucherAmount),
		}
	}

	return draft
}
