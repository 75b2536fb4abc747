package services

import (
	"fmt"
	"time"

	"taployalty/internal/models"
)

// The compiler turns a completed wizard draft into the persisted reward
// record. Every function here is pure and total: missing sub-fields
// degrade to empty strings and zero-like defaults instead of failing, so
// the same code can back both live previews and the final save. Hard
// validation is the validator's job, not the compiler's.

const timeOfDayLayout = "15:04"
const calendarDateLayout = "2006-01-02"

// CompileReward derives the persisted record from a draft. now supplies
// the active-period check and the bookkeeping timestamps; loc is the
// reference timezone active-period wall times are interpreted in.
func CompileReward(draft *models.RewardDraft, merchantID string, now time.Time, loc *time.Location) *models.Reward {
	if loc == nil {
		loc = time.UTC
	}

	period := ResolveActivePeriod(draft, loc)

	isActive := draft.IsActive
	if period != nil {
		if now.Before(period.StartDate) || now.After(period.EndDate) {
			isActive = false
		}
	}

	status := models.RewardStatusInactive
	if isActive {
		status = models.RewardStatusActive
	}

	pointsCost := 0
	if !draft.IsNewCustomersOnly() && draft.PointsCost.IsSet() && draft.PointsCost.Float64() > 0 {
		pointsCost = draft.PointsCost.Int()
	}

	reward := &models.Reward{
		MerchantID:            merchantID,
		RewardName:            draft.RewardName,
		Description:           draft.Description,
		ProgramType:           "points",
		PointsCost:            pointsCost,
		RewardVisibility:      persistedVisibility(draft.RewardVisibility),
		NewCustomerOnly:       draft.IsNewCustomersOnly(),
		FirstPurchaseRequired: draft.IsNewCustomersOnly(),
		RewardTypeDetails:     buildTypeDetails(draft),
		DelayedVisibility:     buildDelayedVisibility(draft),
		Conditions:            BuildConditions(draft),
		Limitations:           BuildLimitations(draft),
		PIN:                   draft.PIN,
		IsActive:              isActive,
		Status:                status,
		HasActivePeriod:       draft.HasActivePeriod,
		ActivePeriod:          period,
		RewardSummary:         GenerateRewardSummary(draft),
		Customers:             []string{},
		RedemptionCount:       0,
		UniqueCustomersCount:  0,
		UniqueCustomerIDs:     []string{},
		CreatedAt:             now,
		UpdatedAt:             now,
	}

	if draft.RewardVisibility == models.VisibilitySpecific && len(draft.SpecificCustomerIDs) > 0 {
		reward.Customers = append([]string{}, draft.SpecificCustomerIDs...)
		reward.UniqueCustomerIDs = append([]string{}, draft.SpecificCustomerIDs...)
	}

	return reward
}

// BuildConditions emits the condition array in a fixed insertion order so
// compiles are reproducible. Targeting new customers supersedes the whole
// general condition set: the record carries the new-customer flags
// instead and no conditions are emitted.
func BuildConditions(draft *models.RewardDraft) []models.Condition {
	conditions := []models.Condition{}

	if draft.IsNewCustomersOnly() {
		return conditions
	}

	c := draft.Conditions

	if c.MinimumTransactions.IsSet() {
		conditions = append(conditions, models.Condition{
			Type:  models.ConditionMinimumTransactions,
			Value: c.MinimumTransactions.Int(),
		})
	}
	if c.MaximumTransactions.IsSet() {
		conditions = append(conditions, models.Condition{
			Type:  models.ConditionMaximumTransactions,
			Value: c.MaximumTransactions.Int(),
		})
	}
	if c.MinimumLifetimeSpend.IsSet() {
		conditions = append(conditions, models.Condition{
			Type:  models.ConditionMinimumLifetimeSpend,
			Value: c.MinimumLifetimeSpend.Float64(),
		})
	}
	if c.MinimumPointsBalance.IsSet() {
		conditions = append(conditions, models.Condition{
			Type:  models.ConditionMinimumPointsBalance,
			Value: c.MinimumPointsBalance.Float64(),
		})
	}
	if c.DaysSinceJoined.IsSet() {
		conditions = append(conditions, models.Condition{
			Type:  models.ConditionDaysSinceJoined,
			Value: c.DaysSinceJoined.Int(),
		})
	}
	if c.MembershipLevel != "" {
		conditions = append(conditions, models.Condition{
			Type:  models.ConditionMembershipLevel,
			Value: string(c.MembershipLevel),
		})
	}

	return conditions
}

// BuildLimitations emits the limitation array. The customerLimit entry is
// mandatory and floor-clamped to 1 regardless of input.
func BuildLimitations(draft *models.RewardDraft) []models.Limitation {
	limitations := []models.Limitation{}
	l := draft.Limitations

	if l.TotalRedemptionLimit.IsSet() {
		limitations = append(limitations, models.Limitation{
			Type:  models.LimitationTotalRedemptionLimit,
			Value: l.TotalRedemptionLimit.Int(),
		})
	}

	if l.UseTimeRestrictions {
		if l.StartTime != "" {
			limitations = append(limitations, models.Limitation{
				Type:  models.LimitationStartTime,
				Value: l.StartTime,
			})
		}
		if l.EndTime != "" {
			limitations = append(limitations, models.Limitation{
				Type:  models.LimitationEndTime,
				Value: l.EndTime,
			})
		}
		if len(l.DayRestrictions) > 0 {
			limitations = append(limitations, models.Limitation{
				Type:  models.LimitationDayRestrictions,
				Value: l.DayRestrictions,
			})
		}
	}

	if l.UseDateRestrictions {
		if l.DateRestrictionStart != "" {
			limitations = append(limitations, models.Limitation{
				Type:  models.LimitationDateRestrictionStart,
				Value: l.DateRestrictionStart,
			})
		}
		if l.DateRestrictionEnd != "" {
			limitations = append(limitations, models.Limitation{
				Type:  models.LimitationDateRestrictionEnd,
				Value: l.DateRestrictionEnd,
			})
		}
	}

	perCustomer := 1
	if l.PerCustomerLimit.IsSet() && l.PerCustomerLimit.Int() > 1 {
		perCustomer = l.PerCustomerLimit.Int()
	}
	limitations = append(limitations, models.Limitation{
		Type:  models.LimitationCustomerLimit,
		Value: perCustomer,
	})

	return limitations
}

// ResolveActivePeriod combines the draft's calendar dates and times of
// day into instants in loc. The end instant is extended to :59.999 of its
// minute so the chosen end time is inclusive. Returns nil when the period
// is disabled or either bound is missing or unparsable.
func ResolveActivePeriod(draft *models.RewardDraft, loc *time.Location) *models.ActivePeriod {
	if !draft.HasActivePeriod || draft.ActivePeriod == nil {
		return nil
	}
	p := draft.ActivePeriod
	if p.StartDate == "" || p.EndDate == "" {
		return nil
	}

	start, err := combineDateTime(p.StartDate, p.StartTime, loc, false)
	if err != nil {
		return nil
	}
	end, err := combineDateTime(p.EndDate, p.EndTime, loc, true)
	if err != nil {
		return nil
	}

	return &models.ActivePeriod{StartDate: start, EndDate: end}
}

func combineDateTime(dateStr, timeStr string, loc *time.Location, endOfMinute bool) (time.Time, error) {
	date, err := time.ParseInLocation(calendarDateLayout, dateStr, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", dateStr, err)
	}

	hour, minute := 0, 0
	if timeStr != "" {
		tod, err := time.Parse(timeOfDayLayout, timeStr)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid time %q: %w", timeStr, err)
		}
		hour, minute = tod.Hour(), tod.Minute()
	}

	sec, nsec := 0, 0
	if endOfMinute {
		sec, nsec = 59, int(999*time.Millisecond)
	}

	return time.Date(date.Year(), date.Month(), date.Day(), hour, minute, sec, nsec, loc), nil
}

// GenerateRewardSummary renders the one-line human-readable summary shown
// on the review step and stored on the record. Unknown types fall back to
// the literal "Reward".
func GenerateRewardSummary(draft *models.RewardDraft) string {
	switch draft.Type {
	case models.RewardTypePercentageDiscount:
		d := draft.PercentageDiscount
		if d == nil {
			d = &models.PercentageDiscountDetails{}
		}
		summary := fmt.Sprintf("Get %s%% off", d.DiscountValue.String())
		if d.AppliesTo != "" {
			return summary + " " + d.AppliesTo
		}
		return summary + " your purchase"

	case models.RewardTypeFixedDiscount:
		d := draft.FixedDiscount
		if d == nil {
			d = &models.FixedDiscountDetails{}
		}
		summary := fmt.Sprintf("$%s off", d.DiscountValue.String())
		if d.MinimumPurchase.IsSet() && d.MinimumPurchase.Float64() > 0 {
			return summary + fmt.Sprintf(" when you spend $%s or more", d.MinimumPurchase.String())
		}
		return summary + " your purchase"

	case models.RewardTypeFreeItem:
		d := draft.FreeItem
		if d == nil {
			d = &models.FreeItemDetails{}
		}
		summary := "Get a free " + d.ItemName
		if d.ItemDescription != "" {
			return summary + " (" + d.ItemDescription + ")"
		}
		return summary

	case models.RewardTypeBundleOffer:
		d := draft.BundleOffer
		if d == nil {
			d = &models.BundleOfferDetails{}
		}
		summary := fmt.Sprintf("Buy %s, get %s", d.RequiredPurchase, d.BonusItem)
		switch d.BundleDiscountType {
		case models.BundleDiscountFree:
			summary += " free"
		case models.BundleDiscountPercentage:
			summary += fmt.Sprintf(" %s%% off", d.BundleDiscountValue.String())
		case models.BundleDiscountFixed:
			summary += fmt.Sprintf(" $%s off", d.BundleDiscountValue.String())
		}
		return summary

	default:
		return "Reward"
	}
}

func persistedVisibility(v string) string {
	switch v {
	case models.VisibilityAll, models.VisibilityNew:
		return "global"
	case models.VisibilitySpecific:
		return "specific"
	default:
		return "conditional"
	}
}

func buildDelayedVisibility(draft *models.RewardDraft) *models.DelayedVisibility {
	if draft.IsNewCustomersOnly() || !draft.DelayedVisibility {
		return nil
	}
	if draft.DelayedVisibilityType == "transactions" {
		return &models.DelayedVisibility{
			Type:  models.DelayedVisibilityTransactions,
			Value: draft.DelayedVisibilityTransactions.Float64(),
		}
	}
	return &models.DelayedVisibility{
		Type:  models.DelayedVisibilitySpend,
		Value: draft.DelayedVisibilitySpend.Float64(),
	}
}

func buildTypeDetails(draft *models.RewardDraft) models.RewardTypeDetails {
	details := models.RewardTypeDetails{Type: draft.Type}

	switch draft.Type {
	case models.RewardTypePercentageDiscount:
		if d := draft.PercentageDiscount; d != nil {
			details.DiscountValue = d.DiscountValue.Float64()
			details.AppliesTo = d.AppliesTo
		}
		details.DiscountType = "percentage"
		if details.AppliesTo == "" {
			details.AppliesTo = "Any purchase"
		}

	case models.RewardTypeFixedDiscount:
		if d := draft.FixedDiscount; d != nil {
			details.DiscountValue = d.DiscountValue.Float64()
			details.MinimumPurchase = d.MinimumPurchase.Float64()
		}
		details.DiscountType = "fixed"

	case models.RewardTypeFreeItem:
		if d := draft.FreeItem; d != nil {
			details.ItemName = d.ItemName
			details.ItemDescription = d.ItemDescription
		}

	case models.RewardTypeBundleOffer:
		if d := draft.BundleOffer; d != nil {
			details.RequiredPurchase = d.RequiredPurchase
			details.BonusItem = d.BonusItem
			details.BundleDiscountType = d.BundleDiscountType
			if d.BundleDiscountType != models.BundleDiscountFree {
				details.BundleDiscountValue = d.BundleDiscountValue.Float64()
			}
		}
	}

	return details
}
