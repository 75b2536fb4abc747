package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type RewardType string
type RewardStatus string
type MembershipLevel string

const (
	RewardTypePercentageDiscount RewardType = "percentageDiscount"
	RewardTypeFixedDiscount      RewardType = "fixedDiscount"
	RewardTypeFreeItem           RewardType = "freeItem"
	RewardTypeBundleOffer        RewardType = "bundleOffer"

	RewardStatusActive   RewardStatus = "active"
	RewardStatusInactive RewardStatus = "inactive"

	MembershipBronze MembershipLevel = "Bronze"
	MembershipSilver MembershipLevel = "Silver"
	MembershipGold   MembershipLevel = "Gold"
)

// Visibility values as entered in the wizard. The persisted record maps
// "all" and "new" to "global" (new-customer targeting is carried by the
// NewCustomerOnly flag instead).
const (
	VisibilityAll         = "all"
	VisibilityNew         = "new"
	VisibilitySpecific    = "specific"
	VisibilityConditional = "conditional"
)

type ConditionType string

const (
	ConditionMinimumTransactions  ConditionType = "minimumTransactions"
	ConditionMaximumTransactions  ConditionType = "maximumTransactions"
	ConditionMinimumLifetimeSpend ConditionType = "minimumLifetimeSpend"
	ConditionMinimumPointsBalance ConditionType = "minimumPointsBalance"
	ConditionDaysSinceJoined      ConditionType = "daysSinceJoined"
	ConditionMembershipLevel      ConditionType = "membershipLevel"
)

type LimitationType string

const (
	LimitationTotalRedemptionLimit LimitationType = "totalRedemptionLimit"
	LimitationStartTime            LimitationType = "startTime"
	LimitationEndTime              LimitationType = "endTime"
	LimitationDayRestrictions      LimitationType = "dayRestrictions"
	LimitationDateRestrictionStart LimitationType = "dateRestrictionStart"
	LimitationDateRestrictionEnd   LimitationType = "dateRestrictionEnd"
	LimitationCustomerLimit        LimitationType = "customerLimit"
)

// Condition gates who may redeem a reward. Value is an int, float64 or
// string depending on Type; consumers treat the array as a set.
type Condition struct {
	Type  ConditionType `json:"type" bson:"type"`
	Value interface{}   `json:"value" bson:"value"`
}

// Limitation caps how and when a reward may be redeemed.
type Limitation struct {
	Type  LimitationType `json:"type" bson:"type"`
	Value interface{}    `json:"value" bson:"value"`
}

type DelayedVisibilityBasis string

const (
	DelayedVisibilityTransactions DelayedVisibilityBasis = "totaltransactions"
	DelayedVisibilitySpend        DelayedVisibilityBasis = "totalLifetimeSpend"
)

// DelayedVisibility hides a reward until the customer crosses a milestone.
type DelayedVisibility struct {
	Type  DelayedVisibilityBasis `json:"type" bson:"type"`
	Value float64                `json:"value" bson:"value"`
}

// Type-specific sub-forms of the wizard. Only the variant matching the
// draft's Type is consulted; the rest are ignored.

type PercentageDiscountDetails struct {
	DiscountValue FlexNumber `json:"discountValue"`
	AppliesTo     string     `json:"appliesTo"`
}

type FixedDiscountDetails struct {
	DiscountValue   FlexNumber `json:"discountValue"`
	MinimumPurchase FlexNumber `json:"minimumPurchase"`
}

type FreeItemDetails struct {
	ItemName        string `json:"itemName"`
	ItemDescription string `json:"itemDescription"`
}

type BundleDiscountType string

const (
	BundleDiscountFree       BundleDiscountType = "free"
	BundleDiscountPercentage BundleDiscountType = "percentage"
	BundleDiscountFixed      BundleDiscountType = "fixed"
)

type BundleOfferDetails struct {
	RequiredPurchase    string             `json:"requiredPurchase"`
	BonusItem           string             `json:"bonusItem"`
	BundleDiscountType  BundleDiscountType `json:"bundleDiscountType"`
	BundleDiscountValue FlexNumber         `json:"bundleDiscountValue"`
}

// DraftConditions mirrors the conditions step of the wizard. Unset numeric
// fields mean "no condition of that kind".
type DraftConditions struct {
	UseTransactionRequirements bool            `json:"useTransactionRequirements"`
	UseSpendingRequirements    bool            `json:"useSpendingRequirements"`
	UseTimeRequirements        bool            `json:"useTimeRequirements"`
	UseMembershipRequirements  bool            `json:"useMembershipRequirements"`
	MinimumTransactions        FlexNumber      `json:"minimumTransactions"`
	MaximumTransactions        FlexNumber      `json:"maximumTransactions"`
	DaysSinceJoined            FlexNumber      `json:"daysSinceJoined"`
	MinimumLifetimeSpend       FlexNumber      `json:"minimumLifetimeSpend"`
	MinimumPointsBalance       FlexNumber      `json:"minimumPointsBalance"`
	MembershipLevel            MembershipLevel `json:"membershipLevel"`
	NewCustomer                bool            `json:"newCustomer"`
}

// DraftLimitations mirrors the limitations step of the wizard.
type DraftLimitations struct {
	TotalRedemptionLimit FlexNumber `json:"totalRedemptionLimit"`
	PerCustomerLimit     FlexNumber `json:"perCustomerLimit"`
	UseTimeRestrictions  bool       `json:"useTimeRestrictions"`
	StartTime            string     `json:"startTime"`
	EndTime              string     `json:"endTime"`
	DayRestrictions      []int      `json:"dayRestrictions"`
	UseDateRestrictions  bool       `json:"useDateRestrictions"`
	DateRestrictionStart string     `json:"dateRestrictionStart"`
	DateRestrictionEnd   string     `json:"dateRestrictionEnd"`
}

// ActivePeriodInput is the raw wizard input: calendar dates plus times of
// day, interpreted in the service's reference timezone when compiled.
type ActivePeriodInput struct {
	StartDate string `json:"startDate"` // 2006-01-02
	EndDate   string `json:"endDate"`
	StartTime string `json:"startTime"` // 15:04
	EndTime   string `json:"endTime"`
}

// ActivePeriod is the compiled window. EndDate includes the whole final
// minute (:59.999).
type ActivePeriod struct {
	StartDate time.Time `json:"startDate" bson:"start_date"`
	EndDate   time.Time `json:"endDate" bson:"end_date"`
}

// RewardDraft is the in-progress wizard state. It exists only on the
// request path; nothing is persisted until the draft is compiled.
type RewardDraft struct {
	RewardName       string     `json:"rewardName"`
	Description      string     `json:"description"`
	Type             RewardType `json:"type"`
	RewardVisibility string     `json:"rewardVisibility"`

	SpecificCustomerIDs   []string `json:"specificCustomerIds,omitempty"`
	SpecificCustomerNames []string `json:"specificCustomerNames,omitempty"`

	PIN        string     `json:"pin"`
	PointsCost FlexNumber `json:"pointsCost"`
	IsActive   bool       `json:"isActive"`

	DelayedVisibility             bool       `json:"delayedVisibility"`
	DelayedVisibilityType         string     `json:"delayedVisibilityType"` // transactions | spend
	DelayedVisibilityTransactions FlexNumber `json:"delayedVisibilityTransactions"`
	DelayedVisibilitySpend        FlexNumber `json:"delayedVisibilitySpend"`

	PercentageDiscount *PercentageDiscountDetails `json:"percentageDiscount,omitempty"`
	FixedDiscount      *FixedDiscountDetails      `json:"fixedDiscount,omitempty"`
	FreeItem           *FreeItemDetails           `json:"freeItem,omitempty"`
	BundleOffer        *BundleOfferDetails        `json:"bundleOffer,omitempty"`

	Conditions  DraftConditions  `json:"conditions"`
	Limitations DraftLimitations `json:"limitations"`

	HasActivePeriod bool               `json:"hasActivePeriod"`
	ActivePeriod    *ActivePeriodInput `json:"activePeriod,omitempty"`
}

// IsNewCustomersOnly reports whether the draft targets first-purchase
// customers, which supersedes the general condition set.
func (d *RewardDraft) IsNewCustomersOnly() bool {
	return d.RewardVisibility == VisibilityNew
}

type IntroductoryType string

const (
	IntroductoryTypeVoucher  IntroductoryType = "voucher"
	IntroductoryTypeFreeItem IntroductoryType = "freeItem"
)

// IntroductoryRewardRequest creates a platform-funded welcome reward for
// first-time customers. Vouchers are value-capped; the platform pays.
type IntroductoryRewardRequest struct {
	Type        IntroductoryType `json:"type" validate:"required,oneof=voucher freeItem"`
	RewardName  string           `json:"rewardName" validate:"required"`
	Description string           `json:"description" validate:"required"`
	PIN         string           `json:"pin" validate:"required,redemption_pin"`

	VoucherAmount float64 `json:"voucherAmount,omitempty" validate:"required_if=Type voucher,omitempty,gt=0"`

	ItemName        string `json:"itemName,omitempty" validate:"required_if=Type freeItem"`
	ItemDescription string `json:"itemDescription,omitempty"`
}

// RewardTypeDetails carries the type-specific fields of the persisted
// record. Fields irrelevant to Type are left at their zero value.
type RewardTypeDetails struct {
	Type                RewardType         `json:"type" bson:"type"`
	DiscountValue       float64            `json:"discountValue,omitempty" bson:"discount_value,omitempty"`
	DiscountType        string             `json:"discountType,omitempty" bson:"discount_type,omitempty"`
	AppliesTo           string             `json:"appliesTo,omitempty" bson:"applies_to,omitempty"`
	MinimumPurchase     float64            `json:"minimumPurchase,omitempty" bson:"minimum_purchase,omitempty"`
	ItemName            string             `json:"itemName,omitempty" bson:"item_name,omitempty"`
	ItemDescription     string             `json:"itemDescription,omitempty" bson:"item_description,omitempty"`
	RequiredPurchase    string             `json:"requiredPurchase,omitempty" bson:"required_purchase,omitempty"`
	BonusItem           string             `json:"bonusItem,omitempty" bson:"bonus_item,omitempty"`
	BundleDiscountType  BundleDiscountType `json:"bundleDiscountType,omitempty" bson:"bundle_discount_type,omitempty"`
	BundleDiscountValue float64            `json:"bundleDiscountValue,omitempty" bson:"bundle_discount_value,omitempty"`
}

// Reward is the persisted record, written once per compile to both the
// merchant-scoped collection and the flat rewards collection. The
// redemption counters are owned by the redemption system after creation.
type Reward struct {
	ID         primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	MerchantID string             `json:"merchantId" bson:"merchant_id"`

	RewardName  string `json:"rewardName" bson:"reward_name"`
	Description string `json:"description" bson:"description"`
	ProgramType string `json:"programtype" bson:"programtype"`

	PointsCost       int    `json:"pointsCost" bson:"points_cost"`
	RewardVisibility string `json:"rewardVisibility" bson:"reward_visibility"`
	NewCustomerOnly  bool   `json:"newcx" bson:"newcx"`
	FirstPurchaseRequired bool `json:"firstPurchaseRequired" bson:"first_purchase_required"`

	RewardTypeDetails RewardTypeDetails  `json:"rewardTypeDetails" bson:"reward_type_details"`
	DelayedVisibility *DelayedVisibility `json:"delayedVisibility" bson:"delayed_visibility"`

	Conditions  []Condition  `json:"conditions" bson:"conditions"`
	Limitations []Limitation `json:"limitations" bson:"limitations"`

	PIN string `json:"pin" bson:"pin"`

	IsActive bool         `json:"isActive" bson:"is_active"`
	Status   RewardStatus `json:"status" bson:"status"`

	HasActivePeriod bool          `json:"hasActivePeriod" bson:"has_active_period"`
	ActivePeriod    *ActivePeriod `json:"activePeriod" bson:"active_period"`

	RewardSummary string `json:"rewardSummary" bson:"reward_summary"`

	MinSpend  float64  `json:"minSpend" bson:"min_spend"`
	Reason    string   `json:"reason" bson:"reason"`
	Customers []string `json:"customers" bson:"customers"`

	RedemptionCount      int        `json:"redemptionCount" bson:"redemption_count"`
	UniqueCustomersCount int        `json:"uniqueCustomersCount" bson:"unique_customers_count"`
	LastRedeemedAt       *time.Time `json:"lastRedeemedAt" bson:"last_redeemed_at"`
	UniqueCustomerIDs    []string   `json:"uniqueCustomerIds" bson:"unique_customer_ids"`

	IsIntroductoryReward bool   `json:"isIntroductoryReward,omitempty" bson:"is_introductory_reward,omitempty"`
	FundedBy             string `json:"fundedBy,omitempty" bson:"funded_by,omitempty"`

	CreatedAt time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updated_at"`
}
