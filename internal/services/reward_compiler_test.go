package services

import (
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taployalty/internal/models"
)

func melbourne(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Australia/Melbourne")
	require.NoError(t, err)
	return loc
}

func baseDraft() *models.RewardDraft {
	return &models.RewardDraft{
		RewardName:       "Free Coffee",
		Description:      "A free coffee on us",
		Type:             models.RewardTypeFreeItem,
		RewardVisibility: models.VisibilityAll,
		PIN:              "1234",
		PointsCost:       models.NewFlexNumber(100),
		IsActive:         true,
		FreeItem:         &models.FreeItemDetails{ItemName: "Coffee"},
	}
}

func TestGenerateRewardSummary(t *testing.T) {
	tests := []struct {
		name  string
		draft *models.RewardDraft
		want  string
	}{
		{
			name: "percentage discount default target",
			draft: &models.RewardDraft{
				Type: models.RewardTypePercentageDiscount,
				PercentageDiscount: &models.PercentageDiscountDetails{
					DiscountValue: models.NewFlexNumber(10),
				},
			},
			want: "Get 10% off your purchase",
		},
		{
			name: "percentage discount with target",
			draft: &models.RewardDraft{
				Type: models.RewardTypePercentageDiscount,
				PercentageDiscount: &models.PercentageDiscountDetails{
					DiscountValue: models.NewFlexNumber(12.5),
					AppliesTo:     "hot drinks",
				},
			},
			want: "Get 12.5% off hot drinks",
		},
		{
			name: "fixed discount with minimum purchase",
			draft: &models.RewardDraft{
				Type: models.RewardTypeFixedDiscount,
				FixedDiscount: &models.FixedDiscountDetails{
					DiscountValue:   models.NewFlexNumber(5),
					MinimumPurchase: models.NewFlexNumber(20),
				},
			},
			want: "$5 off when you spend $20 or more",
		},
		{
			name: "fixed discount without minimum purchase",
			draft: &models.RewardDraft{
				Type: models.RewardTypeFixedDiscount,
				FixedDiscount: &models.FixedDiscountDetails{
					DiscountValue: models.NewFlexNumber(5),
				},
			},
			want: "$5 off your purchase",
		},
		{
			name: "free item",
			draft: &models.RewardDraft{
				Type:     models.RewardTypeFreeItem,
				FreeItem: &models.FreeItemDetails{ItemName: "Muffin"},
			},
			want: "Get a free Muffin",
		},
		{
			name: "free item with description",
			draft: &models.RewardDraft{
				Type: models.RewardTypeFreeItem,
				FreeItem: &models.FreeItemDetails{
					ItemName:        "Muffin",
					ItemDescription: "choc chip",
				},
			},
			want: "Get a free Muffin (choc chip)",
		},
		{
			name: "bundle offer free bonus",
			draft: &models.RewardDraft{
				Type: models.RewardTypeBundleOffer,
				BundleOffer: &models.BundleOfferDetails{
					RequiredPurchase:   "2 coffees",
					BonusItem:          "a muffin",
					BundleDiscountType: models.BundleDiscountFree,
				},
			},
			want: "Buy 2 coffees, get a muffin free",
		},
		{
			name: "bundle offer percentage bonus",
			draft: &models.RewardDraft{
				Type: models.RewardTypeBundleOffer,
				BundleOffer: &models.BundleOfferDetails{
					RequiredPurchase:    "2 coffees",
					BonusItem:           "a muffin",
					BundleDiscountType:  models.BundleDiscountPercentage,
					BundleDiscountValue: models.NewFlexNumber(50),
				},
			},
			want: "Buy 2 coffees, get a muffin 50% off",
		},
		{
			name: "bundle offer fixed bonus",
			draft: &models.RewardDraft{
				Type: models.RewardTypeBundleOffer,
				BundleOffer: &models.BundleOfferDetails{
					RequiredPurchase:    "2 coffees",
					BonusItem:           "a muffin",
					BundleDiscountType:  models.BundleDiscountFixed,
					BundleDiscountValue: models.NewFlexNumber(2),
				},
			},
			want: "Buy 2 coffees, get a muffin $2 off",
		},
		{
			name:  "unknown type falls back",
			draft: &models.RewardDraft{Type: models.RewardType("mystery")},
			want:  "Reward",
		},
		{
			name:  "missing sub-form does not panic",
			draft: &models.RewardDraft{Type: models.RewardTypePercentageDiscount},
			want:  "Get % off your purchase",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GenerateRewardSummary(tt.draft))
		})
	}
}

func TestBuildConditionsOrder(t *testing.T) {
	draft := baseDraft()
	draft.Conditions = models.DraftConditions{
		MinimumTransactions:  models.NewFlexNumber(3),
		MaximumTransactions:  models.NewFlexNumber(10),
		MinimumLifetimeSpend: models.NewFlexNumber(150),
		MinimumPointsBalance: models.NewFlexNumber(200),
		DaysSinceJoined:      models.NewFlexNumber(30),
		MembershipLevel:      models.MembershipGold,
	}

	conditions := BuildConditions(draft)
	require.Len(t, conditions, 6)

	wantOrder := []models.ConditionType{
		models.ConditionMinimumTransactions,
		models.ConditionMaximumTransactions,
		models.ConditionMinimumLifetimeSpend,
		models.ConditionMinimumPointsBalance,
		models.ConditionDaysSinceJoined,
		models.ConditionMembershipLevel,
	}
	for i, c := range conditions {
		assert.Equal(t, wantOrder[i], c.Type)
	}

	assert.Equal(t, 3, conditions[0].Value)
	assert.Equal(t, 150.0, conditions[2].Value)
	assert.Equal(t, "Gold", conditions[5].Value)
}

func TestBuildConditionsNewCustomerSupersedes(t *testing.T) {
	draft := baseDraft()
	draft.RewardVisibility = models.VisibilityNew
	draft.Conditions.MinimumTransactions = models.NewFlexNumber(5)
	draft.Conditions.MembershipLevel = models.MembershipSilver

	conditions := BuildConditions(draft)
	assert.NotNil(t, conditions)
	assert.Empty(t, conditions)
}

func TestBuildConditionsUnsetFieldsOmitted(t *testing.T) {
	draft := baseDraft()
	draft.Conditions.MinimumLifetimeSpend = models.NewFlexNumber(100)

	conditions := BuildConditions(draft)
	require.Len(t, conditions, 1)
	assert.Equal(t, models.ConditionMinimumLifetimeSpend, conditions[0].Type)
}

func TestBuildLimitationsCustomerLimitFloor(t *testing.T) {
	tests := []struct {
		name  string
		limit models.FlexNumber
		want  int
	}{
		{"unset defaults to one", models.FlexNumber{}, 1},
		{"zero clamps to one", models.NewFlexNumber(0), 1},
		{"negative clamps to one", models.NewFlexNumber(-4), 1},
		{"garbage string is unset", models.FlexFromString("lots"), 1},
		{"explicit value kept", models.NewFlexNumber(5), 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			draft := baseDraft()
			draft.Limitations.PerCustomerLimit = tt.limit

			limitations := BuildLimitations(draft)
			require.NotEmpty(t, limitations)

			last := limitations[len(limitations)-1]
			assert.Equal(t, models.LimitationCustomerLimit, last.Type)
			assert.Equal(t, tt.want, last.Value)
		})
	}
}

func TestBuildLimitationsRestrictionsGatedByToggles(t *testing.T) {
	draft := baseDraft()
	draft.Limitations = models.DraftLimitations{
		TotalRedemptionLimit: models.NewFlexNumber(500),
		StartTime:            "09:00",
		EndTime:              "17:00",
		DayRestrictions:      []int{1, 2, 3},
		DateRestrictionStart: "2026-01-01",
		DateRestrictionEnd:   "2026-06-30",
	}

	// Toggles off: the time and date entries must not leak through.
	limitations := BuildLimitations(draft)
	require.Len(t, limitations, 2)
	assert.Equal(t, models.LimitationTotalRedemptionLimit, limitations[0].Type)
	assert.Equal(t, models.LimitationCustomerLimit, limitations[1].Type)

	draft.Limitations.UseTimeRestrictions = true
	draft.Limitations.UseDateRestrictions = true

	limitations = BuildLimitations(draft)
	types := make([]models.LimitationType, 0, len(limitations))
	for _, l := range limitations {
		types = append(types, l.Type)
	}
	assert.Equal(t, []models.LimitationType{
		models.LimitationTotalRedemptionLimit,
		models.LimitationStartTime,
		models.LimitationEndTime,
		models.LimitationDayRestrictions,
		models.LimitationDateRestrictionStart,
		models.LimitationDateRestrictionEnd,
		models.LimitationCustomerLimit,
	}, types)
}

func TestResolveActivePeriod(t *testing.T) {
	loc := melbourne(t)

	t.Run("disabled period is nil", func(t *testing.T) {
		draft := baseDraft()
		draft.ActivePeriod = &models.ActivePeriodInput{StartDate: "2026-01-01", EndDate: "2026-02-01"}
		assert.Nil(t, ResolveActivePeriod(draft, loc))
	})

	t.Run("missing input is nil", func(t *testing.T) {
		draft := baseDraft()
		draft.HasActivePeriod = true
		assert.Nil(t, ResolveActivePeriod(draft, loc))
	})

	t.Run("missing end date is nil", func(t *testing.T) {
		draft := baseDraft()
		draft.HasActivePeriod = true
		draft.ActivePeriod = &models.ActivePeriodInput{StartDate: "2026-01-01"}
		assert.Nil(t, ResolveActivePeriod(draft, loc))
	})

	t.Run("unparsable date is nil", func(t *testing.T) {
		draft := baseDraft()
		draft.HasActivePeriod = true
		draft.ActivePeriod = &models.ActivePeriodInput{StartDate: "01/01/2026", EndDate: "2026-02-01"}
		assert.Nil(t, ResolveActivePeriod(draft, loc))
	})

	t.Run("end instant extends to end of minute", func(t *testing.T) {
		draft := baseDraft()
		draft.HasActivePeriod = true
		draft.ActivePeriod = &models.ActivePeriodInput{
			StartDate: "2026-01-01",
			StartTime: "09:00",
			EndDate:   "2026-01-31",
			EndTime:   "17:30",
		}

		period := ResolveActivePeriod(draft, loc)
		require.NotNil(t, period)
		assert.Equal(t, time.Date(2026, 1, 1, 9, 0, 0, 0, loc), period.StartDate)
		assert.Equal(t, time.Date(2026, 1, 31, 17, 30, 59, int(999*time.Millisecond), loc), period.EndDate)
	})

	t.Run("missing times default to midnight", func(t *testing.T) {
		draft := baseDraft()
		draft.HasActivePeriod = true
		draft.ActivePeriod = &models.ActivePeriodInput{StartDate: "2026-01-01", EndDate: "2026-01-31"}

		period := ResolveActivePeriod(draft, loc)
		require.NotNil(t, period)
		assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, loc), period.StartDate)
		assert.Equal(t, time.Date(2026, 1, 31, 0, 0, 59, int(999*time.Millisecond), loc), period.EndDate)
	})
}

func TestCompileRewardActivePeriodGating(t *testing.T) {
	loc := melbourne(t)

	draft := baseDraft()
	draft.HasActivePeriod = true
	draft.ActivePeriod = &models.ActivePeriodInput{
		StartDate: "2026-03-01",
		StartTime: "09:00",
		EndDate:   "2026-03-31",
		EndTime:   "17:00",
	}

	tests := []struct {
		name       string
		now        time.Time
		wantActive bool
	}{
		{"before window", time.Date(2026, 2, 28, 12, 0, 0, 0, loc), false},
		{"at window start", time.Date(2026, 3, 1, 9, 0, 0, 0, loc), true},
		{"inside window", time.Date(2026, 3, 15, 12, 0, 0, 0, loc), true},
		{"inside final minute", time.Date(2026, 3, 31, 17, 0, 30, 0, loc), true},
		{"after window", time.Date(2026, 4, 1, 0, 0, 0, 0, loc), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reward := CompileReward(draft, "merchant-1", tt.now, loc)
			assert.Equal(t, tt.wantActive, reward.IsActive)
			if tt.wantActive {
				assert.Equal(t, models.RewardStatusActive, reward.Status)
			} else {
				assert.Equal(t, models.RewardStatusInactive, reward.Status)
			}
		})
	}

	t.Run("toggle off beats an open window", func(t *testing.T) {
		off := baseDraft()
		off.IsActive = false
		reward := CompileReward(off, "merchant-1", time.Date(2026, 3, 15, 12, 0, 0, 0, loc), loc)
		assert.False(t, reward.IsActive)
		assert.Equal(t, models.RewardStatusInactive, reward.Status)
	})
}

func TestCompileRewardNewCustomersOnly(t *testing.T) {
	loc := melbourne(t)
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, loc)

	draft := baseDraft()
	draft.RewardVisibility = models.VisibilityNew
	draft.PointsCost = models.NewFlexNumber(500)
	draft.Conditions.MinimumTransactions = models.NewFlexNumber(3)
	draft.DelayedVisibility = true
	draft.DelayedVisibilityType = "transactions"
	draft.DelayedVisibilityTransactions = models.NewFlexNumber(5)

	reward := CompileReward(draft, "merchant-1", now, loc)

	assert.True(t, reward.NewCustomerOnly)
	assert.True(t, reward.FirstPurchaseRequired)
	assert.Equal(t, 0, reward.PointsCost, "introductory rewards are free to redeem")
	assert.Empty(t, reward.Conditions)
	assert.Nil(t, reward.DelayedVisibility)
	assert.Equal(t, "global", reward.RewardVisibility)
}

func TestCompileRewardVisibilityMapping(t *testing.T) {
	loc := melbourne(t)
	now := time.Now()

	tests := []struct {
		input string
		want  string
	}{
		{models.VisibilityAll, "global"},
		{models.VisibilityNew, "global"},
		{models.VisibilitySpecific, "specific"},
		{models.VisibilityConditional, "conditional"},
		{"", "conditional"},
	}

	for _, tt := range tests {
		draft := baseDraft()
		draft.RewardVisibility = tt.input
		reward := CompileReward(draft, "merchant-1", now, loc)
		assert.Equal(t, tt.want, reward.RewardVisibility, "input %q", tt.input)
	}
}

func TestCompileRewardSpecificCustomers(t *testing.T) {
	draft := baseDraft()
	draft.RewardVisibility = models.VisibilitySpecific
	draft.SpecificCustomerIDs = []string{"cust-1", "cust-2"}

	reward := CompileReward(draft, "merchant-1", time.Now(), time.UTC)
	assert.Equal(t, []string{"cust-1", "cust-2"}, reward.Customers)
	assert.Equal(t, []string{"cust-1", "cust-2"}, reward.UniqueCustomerIDs)
}

func TestCompileRewardPointsCost(t *testing.T) {
	draft := baseDraft()
	draft.PointsCost = models.NewFlexNumber(250)
	reward := CompileReward(draft, "merchant-1", time.Now(), time.UTC)
	assert.Equal(t, 250, reward.PointsCost)

	draft.PointsCost = models.FlexNumber{}
	reward = CompileReward(draft, "merchant-1", time.Now(), time.UTC)
	assert.Equal(t, 0, reward.PointsCost)

	draft.PointsCost = models.NewFlexNumber(-10)
	reward = CompileReward(draft, "merchant-1", time.Now(), time.UTC)
	assert.Equal(t, 0, reward.PointsCost)
}

func TestCompileRewardIsPure(t *testing.T) {
	loc := melbourne(t)
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, loc)

	draft := baseDraft()
	draft.Conditions.MinimumTransactions = models.NewFlexNumber(2)
	draft.Limitations.TotalRedemptionLimit = models.NewFlexNumber(100)

	before := *draft
	first := CompileReward(draft, "merchant-1", now, loc)
	second := CompileReward(draft, "merchant-1", now, loc)

	assert.Equal(t, before, *draft, "compiling must not mutate the draft")
	assert.True(t, reflect.DeepEqual(first, second), "same inputs must compile identically")
}

func TestCompileRewardBookkeepingDefaults(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	reward := CompileReward(baseDraft(), "merchant-1", now, time.UTC)

	assert.Equal(t, "merchant-1", reward.MerchantID)
	assert.Equal(t, "points", reward.ProgramType)
	assert.Equal(t, 0, reward.RedemptionCount)
	assert.Equal(t, 0, reward.UniqueCustomersCount)
	assert.NotNil(t, reward.Customers)
	assert.NotNil(t, reward.UniqueCustomerIDs)
	assert.Nil(t, reward.LastRedeemedAt)
	assert.Equal(t, now, reward.CreatedAt)
	assert.Equal(t, now, reward.UpdatedAt)
	assert.Equal(t, "Get a free Coffee", reward.RewardSummary)
}
