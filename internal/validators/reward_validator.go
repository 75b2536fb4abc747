package validators

import (
	"strings"

	"taployalty/internal/models"
)

// WizardStep identifies one page of the reward creation wizard.
type WizardStep string

const (
	StepBasicDetails WizardStep = "basicDetails"
	StepVisibility   WizardStep = "visibility"
	StepConditions   WizardStep = "conditions"
	StepLimitations  WizardStep = "limitations"
	StepReview       WizardStep = "review"
)

// StepValidation is the gate result for one wizard step. MissingFields
// holds the user-facing labels of everything still required, joined by
// the caller into a single message.
type StepValidation struct {
	OK            bool     `json:"ok"`
	MissingFields []string `json:"missingFields,omitempty"`
}

// ValidateRewardStep checks whether the draft may advance past step. It
// is a total function over the draft: unknown steps and steps without
// hard gating simply pass.
func ValidateRewardStep(draft *models.RewardDraft, step WizardStep) StepValidation {
	switch step {
	case StepBasicDetails:
		return validateBasicDetails(draft)
	case StepReview:
		return validateTypeDetails(draft)
	default:
		return StepValidation{OK: true}
	}
}

// ValidateRewardDraft runs every gating step, used before the final save.
func ValidateRewardDraft(draft *models.RewardDraft) StepValidation {
	result := validateBasicDetails(draft)
	typeResult := validateTypeDetails(draft)
	result.MissingFields = append(result.MissingFields, typeResult.MissingFields...)
	result.OK = result.OK && typeResult.OK
	return result
}

func validateBasicDetails(draft *models.RewardDraft) StepValidation {
	var missing []string

	if strings.TrimSpace(draft.RewardName) == "" {
		missing = append(missing, "Reward Name")
	}
	if strings.TrimSpace(draft.Description) == "" {
		missing = append(missing, "Description")
	}
	if strings.TrimSpace(string(draft.Type)) == "" {
		missing = append(missing, "Reward Type")
	}
	if !IsValidRedemptionPIN(strings.TrimSpace(draft.PIN)) {
		missing = append(missing, "4-digit PIN")
	}
	if !draft.PointsCost.IsSet() {
		missing = append(missing, "Points Cost")
	}

	return StepValidation{OK: len(missing) == 0, MissingFields: missing}
}

// validateTypeDetails enforces the save-time required fields of the
// selected reward type.
func validateTypeDetails(draft *models.RewardDraft) StepValidation {
	var missing []string

	switch draft.Type {
	case models.RewardTypePercentageDiscount:
		if draft.PercentageDiscount == nil || !draft.PercentageDiscount.DiscountValue.IsSet() {
			missing = append(missing, "Discount Value")
		}

	case models.RewardTypeFixedDiscount:
		if draft.FixedDiscount == nil || !draft.FixedDiscount.DiscountValue.IsSet() {
			missing = append(missing, "Discount Value")
		}
		if draft.FixedDiscount == nil || !draft.FixedDiscount.MinimumPurchase.IsSet() {
			missing = append(missing, "Minimum Purchase")
		}

	case models.RewardTypeFreeItem:
		if draft.FreeItem == nil || strings.TrimSpace(draft.FreeItem.ItemName) == "" {
			missing = append(missing, "Item Name")
		}

	case models.RewardTypeBundleOffer:
		bundle := draft.BundleOffer
		if bundle == nil || strings.TrimSpace(bundle.RequiredPurchase) == "" {
			missing = append(missing, "Required Purchase")
		}
		if bundle == nil || strings.TrimSpace(bundle.BonusItem) == "" {
			missing = append(missing, "Bonus Item")
		}
		if bundle != nil && bundle.BundleDiscountType != models.BundleDiscountFree && !bundle.BundleDiscountValue.IsSet() {
			missing = append(missing, "Bundle Discount Value")
		}
	}

	return StepValidation{OK: len(missing) == 0, MissingFields: missing}
}
