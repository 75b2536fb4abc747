package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"taployalty/internal/models"
	"taployalty/internal/utils"
	"taployalty/internal/validators"
)

type fakeRewardRepo struct {
	created           []*models.Reward
	overwritten       map[primitive.ObjectID]*models.Reward
	existing          *models.Reward
	introductoryCount int64
	createErr         error
}

func newFakeRewardRepo() *fakeRewardRepo {
	return &fakeRewardRepo{overwritten: make(map[primitive.ObjectID]*models.Reward)}
}

func (f *fakeRewardRepo) Create(_ context.Context, reward *models.Reward) (primitive.ObjectID, error) {
	if f.createErr != nil {
		return primitive.NilObjectID, f.createErr
	}
	f.created = append(f.created, reward)
	return primitive.NewObjectID(), nil
}

func (f *fakeRewardRepo) Overwrite(_ context.Context, id primitive.ObjectID, reward *models.Reward) error {
	f.overwritten[id] = reward
	return nil
}

func (f *fakeRewardRepo) GetByID(_ context.Context, _ string, _ primitive.ObjectID) (*models.Reward, error) {
	if f.existing == nil {
		return nil, errors.New("reward not found")
	}
	return f.existing, nil
}

func (f *fakeRewardRepo) Delete(context.Context, string, primitive.ObjectID) error {
	return nil
}

func (f *fakeRewardRepo) ListByMerchant(context.Context, string, *utils.PaginationParams) ([]*models.Reward, int64, error) {
	return nil, 0, nil
}

func (f *fakeRewardRepo) CountIntroductory(context.Context, string) (int64, error) {
	return f.introductoryCount, nil
}

func newTestRewardService(t *testing.T, repo *fakeRewardRepo) RewardService {
	t.Helper()
	return NewRewardService(repo, time.UTC, newTestLogger(t))
}

func TestCreateRewardRejectsIncompleteDraft(t *testing.T) {
	repo := newFakeRewardRepo()
	svc := newTestRewardService(t, repo)

	draft := &models.RewardDraft{RewardName: "Half Price"}
	_, err := svc.CreateReward(context.Background(), "merchant-1", draft)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "please fill in: ")
	assert.Contains(t, err.Error(), "Description")
	assert.Empty(t, repo.created, "nothing persisted on validation failure")
}

func TestCreateRewardPersistsCompiledDraft(t *testing.T) {
	repo := newFakeRewardRepo()
	svc := newTestRewardService(t, repo)

	reward, err := svc.CreateReward(context.Background(), "merchant-1", baseDraft())
	require.NoError(t, err)
	require.Len(t, repo.created, 1)
	assert.False(t, reward.ID.IsZero())
	assert.Equal(t, "merchant-1", reward.MerchantID)
	assert.Equal(t, "Get a free Coffee", reward.RewardSummary)
}

func TestUpdateRewardCarriesRedemptionBookkeeping(t *testing.T) {
	redeemedAt := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	createdAt := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)

	repo := newFakeRewardRepo()
	repo.existing = &models.Reward{
		CreatedAt:            createdAt,
		RedemptionCount:      12,
		UniqueCustomersCount: 7,
		LastRedeemedAt:       &redeemedAt,
		UniqueCustomerIDs:    []string{"cust-1", "cust-2"},
		IsIntroductoryReward: true,
		FundedBy:             "tap",
	}
	svc := newTestRewardService(t, repo)

	id := primitive.NewObjectID()
	reward, err := svc.UpdateReward(context.Background(), "merchant-1", id, baseDraft())
	require.NoError(t, err)

	assert.Equal(t, createdAt, reward.CreatedAt)
	assert.Equal(t, 12, reward.RedemptionCount)
	assert.Equal(t, 7, reward.UniqueCustomersCount)
	assert.Equal(t, &redeemedAt, reward.LastRedeemedAt)
	assert.Equal(t, []string{"cust-1", "cust-2"}, reward.UniqueCustomerIDs)
	assert.True(t, reward.IsIntroductoryReward)
	assert.Equal(t, "tap", reward.FundedBy)
	assert.Contains(t, repo.overwritten, id)
}

func TestPreviewRewardDoesNotPersist(t *testing.T) {
	repo := newFakeRewardRepo()
	svc := newTestRewardService(t, repo)

	// Previews tolerate incomplete drafts.
	preview := svc.PreviewReward("merchant-1", &models.RewardDraft{Type: models.RewardTypeFreeItem})
	require.NotNil(t, preview)
	assert.Empty(t, repo.created)
}

func TestValidateStepDelegates(t *testing.T) {
	svc := newTestRewardService(t, newFakeRewardRepo())

	result := svc.ValidateStep(&models.RewardDraft{}, validators.StepBasicDetails)
	assert.False(t, result.OK)
	assert.Contains(t, result.MissingFields, "Reward Name")
}

func validIntroductoryRequest() *models.IntroductoryRewardRequest {
	return &models.IntroductoryRewardRequest{
		Type:          models.IntroductoryTypeVoucher,
		RewardName:    "Welcome Voucher",
		Description:   "A little something for your first visit",
		PIN:           "4321",
		VoucherAmount: 25,
	}
}

func TestCreateIntroductoryRewardVoucher(t *testing.T) {
	repo := newFakeRewardRepo()
	svc := newTestRewardService(t, repo)

	reward, err := svc.CreateIntroductoryReward(context.Background(), "merchant-1", validIntroductoryRequest())
	require.NoError(t, err)

	assert.True(t, reward.IsIntroductoryReward)
	assert.Equal(t, "tap", reward.FundedBy)
	assert.True(t, reward.NewCustomerOnly)
	assert.Equal(t, 0, reward.PointsCost)
	assert.Empty(t, reward.Conditions)
	assert.Equal(t, models.RewardTypeFixedDiscount, reward.RewardTypeDetails.Type)
	assert.Equal(t, 25.0, reward.RewardTypeDetails.DiscountValue)
}

func TestCreateIntroductoryRewardFreeItem(t *testing.T) {
	repo := newFakeRewardRepo()
	svc := newTestRewardService(t, repo)

	req := &models.IntroductoryRewardRequest{
		Type:        models.IntroductoryTypeFreeItem,
		RewardName:  "Welcome Coffee",
		Description: "A free coffee on your first visit",
		PIN:         "4321",
		ItemName:    "Flat White",
	}

	reward, err := svc.CreateIntroductoryReward(context.Background(), "merchant-1", req)
	require.NoError(t, err)
	assert.Equal(t, models.RewardTypeFreeItem, reward.RewardTypeDetails.Type)
	assert.Equal(t, "Flat White", reward.RewardTypeDetails.ItemName)
	assert.Equal(t, "Get a free Flat White", reward.RewardSummary)
}

func TestCreateIntroductoryRewardValueCap(t *testing.T) {
	svc := newTestRewardService(t, newFakeRewardRepo())

	req := validIntroductoryRequest()
	req.VoucherAmount = utils.IntroductoryRewardMaxValue + 1

	_, err := svc.CreateIntroductoryReward(context.Background(), "merchant-1", req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot exceed")
}

func TestCreateIntroductoryRewardQuota(t *testing.T) {
	repo := newFakeRewardRepo()
	repo.introductoryCount = utils.MaxIntroductoryRewards
	svc := newTestRewardService(t, repo)

	_, err := svc.CreateIntroductoryReward(context.Background(), "merchant-1", validIntroductoryRequest())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "maximum")
	assert.Empty(t, repo.created)
}

func TestCreateIntroductoryRewardValidation(t *testing.T) {
	svc := newTestRewardService(t, newFakeRewardRepo())

	req := validIntroductoryRequest()
	req.PIN = "12345"

	_, err := svc.CreateIntroductoryReward(context.Background(), "merchant-1", req)
	require.Error(t, err)

	var verrs validators.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "redemption_pin", verrs[0].Tag)
}
