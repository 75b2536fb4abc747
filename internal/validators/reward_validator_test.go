package validators

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"taployalty/internal/models"
)

func completeDraft(rewardType models.RewardType) *models.RewardDraft {
	draft := &models.RewardDraft{
		RewardName:       "Free Coffee",
		Description:      "A free coffee for regulars",
		Type:             rewardType,
		RewardVisibility: models.VisibilityAll,
		PIN:              "1234",
		PointsCost:       models.NewFlexNumber(100),
	}

	switch rewardType {
	case models.RewardTypePercentageDiscount:
		draft.PercentageDiscount = &models.PercentageDiscountDetails{
			DiscountValue: models.NewFlexNumber(10),
		}
	case models.RewardTypeFixedDiscount:
		draft.FixedDiscount = &models.FixedDiscountDetails{
			DiscountValue:   models.NewFlexNumber(5),
			MinimumPurchase: models.NewFlexNumber(20),
		}
	case models.RewardTypeFreeItem:
		draft.FreeItem = &models.FreeItemDetails{ItemName: "Muffin"}
	case models.RewardTypeBundleOffer:
		draft.BundleOffer = &models.BundleOfferDetails{
			RequiredPurchase:   "2 coffees",
			BonusItem:          "a muffin",
			BundleDiscountType: models.BundleDiscountFree,
		}
	}

	return draft
}

func TestValidateRewardStepBasicDetails(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*models.RewardDraft)
		wantOK      bool
		wantMissing []string
	}{
		{
			name:   "complete draft passes",
			mutate: func(d *models.RewardDraft) {},
			wantOK: true,
		},
		{
			name: "empty draft lists every field",
			mutate: func(d *models.RewardDraft) {
				*d = models.RewardDraft{}
			},
			wantOK:      false,
			wantMissing: []string{"Reward Name", "Description", "Reward Type", "4-digit PIN", "Points Cost"},
		},
		{
			name:        "whitespace name is missing",
			mutate:      func(d *models.RewardDraft) { d.RewardName = "   " },
			wantOK:      false,
			wantMissing: []string{"Reward Name"},
		},
		{
			name:        "short pin is missing",
			mutate:      func(d *models.RewardDraft) { d.PIN = "123" },
			wantOK:      false,
			wantMissing: []string{"4-digit PIN"},
		},
		{
			name:        "non-numeric pin is missing",
			mutate:      func(d *models.RewardDraft) { d.PIN = "12ab" },
			wantOK:      false,
			wantMissing: []string{"4-digit PIN"},
		},
		{
			name:        "unset points cost is missing",
			mutate:      func(d *models.RewardDraft) { d.PointsCost = models.FlexNumber{} },
			wantOK:      false,
			wantMissing: []string{"Points Cost"},
		},
		{
			name:   "zero points cost is acceptable",
			mutate: func(d *models.RewardDraft) { d.PointsCost = models.NewFlexNumber(0) },
			wantOK: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			draft := completeDraft(models.RewardTypeFreeItem)
			tt.mutate(draft)

			result := ValidateRewardStep(draft, StepBasicDetails)
			assert.Equal(t, tt.wantOK, result.OK)
			assert.Equal(t, tt.wantMissing, result.MissingFields)
		})
	}
}

func TestValidateRewardStepTypeDetails(t *testing.T) {
	tests := []struct {
		name        string
		draft       *models.RewardDraft
		wantMissing []string
	}{
		{
			name: "percentage discount without value",
			draft: &models.RewardDraft{
				Type:               models.RewardTypePercentageDiscount,
				PercentageDiscount: &models.PercentageDiscountDetails{},
			},
			wantMissing: []string{"Discount Value"},
		},
		{
			name:        "percentage discount without sub-form",
			draft:       &models.RewardDraft{Type: models.RewardTypePercentageDiscount},
			wantMissing: []string{"Discount Value"},
		},
		{
			name:        "fixed discount missing both fields",
			draft:       &models.RewardDraft{Type: models.RewardTypeFixedDiscount},
			wantMissing: []string{"Discount Value", "Minimum Purchase"},
		},
		{
			name: "fixed discount missing minimum purchase only",
			draft: &models.RewardDraft{
				Type: models.RewardTypeFixedDiscount,
				FixedDiscount: &models.FixedDiscountDetails{
					DiscountValue: models.NewFlexNumber(5),
				},
			},
			wantMissing: []string{"Minimum Purchase"},
		},
		{
			name: "free item with blank name",
			draft: &models.RewardDraft{
				Type:     models.RewardTypeFreeItem,
				FreeItem: &models.FreeItemDetails{ItemName: "  "},
			},
			wantMissing: []string{"Item Name"},
		},
		{
			name:        "bundle offer missing everything",
			draft:       &models.RewardDraft{Type: models.RewardTypeBundleOffer},
			wantMissing: []string{"Required Purchase", "Bonus Item"},
		},
		{
			name: "discounted bundle requires a value",
			draft: &models.RewardDraft{
				Type: models.RewardTypeBundleOffer,
				BundleOffer: &models.BundleOfferDetails{
					RequiredPurchase:   "2 coffees",
					BonusItem:          "a muffin",
					BundleDiscountType: models.BundleDiscountPercentage,
				},
			},
			wantMissing: []string{"Bundle Discount Value"},
		},
		{
			name: "free bundle needs no value",
			draft: &models.RewardDraft{
				Type: models.RewardTypeBundleOffer,
				BundleOffer: &models.BundleOfferDetails{
					RequiredPurchase:   "2 coffees",
					BonusItem:          "a muffin",
					BundleDiscountType: models.BundleDiscountFree,
				},
			},
			wantMissing: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ValidateRewardStep(tt.draft, StepReview)
			assert.Equal(t, tt.wantMissing, result.MissingFields)
			assert.Equal(t, len(tt.wantMissing) == 0, result.OK)
		})
	}
}

func TestValidateRewardStepUngatedSteps(t *testing.T) {
	empty := &models.RewardDraft{}

	for _, step := range []WizardStep{StepVisibility, StepConditions, StepLimitations, WizardStep("unknown")} {
		result := ValidateRewardStep(empty, step)
		assert.True(t, result.OK, "step %s has no hard gate", step)
		assert.Empty(t, result.MissingFields)
	}
}

func TestValidateRewardDraftCombinesSteps(t *testing.T) {
	draft := &models.RewardDraft{
		RewardName: "Half Price",
		Type:       models.RewardTypePercentageDiscount,
	}

	result := ValidateRewardDraft(draft)
	assert.False(t, result.OK)
	assert.Equal(t,
		[]string{"Description", "4-digit PIN", "Points Cost", "Discount Value"},
		result.MissingFields)

	complete := completeDraft(models.RewardTypeBundleOffer)
	assert.True(t, ValidateRewardDraft(complete).OK)
}

func TestValidateStructRedemptionPIN(t *testing.T) {
	type pinHolder struct {
		PIN string `validate:"required,redemption_pin"`
	}

	assert.Nil(t, ValidateStruct(pinHolder{PIN: "0042"}))

	errs := ValidateStruct(pinHolder{PIN: "12345"})
	assert.Len(t, errs, 1)
	assert.Equal(t, "redemption_pin", errs[0].Tag)
}

func TestIsValidRedemptionPIN(t *testing.T) {
	assert.True(t, IsValidRedemptionPIN("1234"))
	assert.True(t, IsValidRedemptionPIN("0000"))
	assert.False(t, IsValidRedemptionPIN("123"))
	assert.False(t, IsValidRedemptionPIN("12345"))
	assert.False(t, IsValidRedemptionPIN("12a4"))
	assert.False(t, IsValidRedemptionPIN(""))
}
