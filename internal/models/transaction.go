package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type TransactionStatus string

const (
	TransactionStatusCompleted TransactionStatus = "completed"
	TransactionStatusPending   TransactionStatus = "pending"
	TransactionStatusRefunded  TransactionStatus = "refunded"
)

// Transaction is a recorded purchase at the merchant. Written by the POS
// integration; this service only reads them for the activity feed.
type Transaction struct {
	ID         primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	MerchantID string             `json:"merchantId" bson:"merchant_id"`
	CustomerID string             `json:"customerId" bson:"customer_id"`

	Amount       float64           `json:"amount" bson:"amount"`
	PointsEarned int               `json:"pointsEarned" bson:"points_earned"`
	Status       TransactionStatus `json:"status" bson:"status"`
	Source       string            `json:"source" bson:"source"` // pos, manual, import

	CreatedAt time.Time `json:"createdAt" bson:"created_at"`
}

type RedemptionStatus string

const (
	RedemptionStatusSuccessful RedemptionStatus = "successful"
	RedemptionStatusDeclined   RedemptionStatus = "declined"
)

// Redemption records a customer cashing in a reward, confirmed in-store
// with the reward's staff PIN.
type Redemption struct {
	ID         primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	MerchantID string             `json:"merchantId" bson:"merchant_id"`
	CustomerID string             `json:"customerId" bson:"customer_id"`
	RewardID   string             `json:"rewardId" bson:"reward_id"`

	RewardName  string           `json:"rewardName" bson:"reward_name"`
	PointsSpent int              `json:"pointsSpent" bson:"points_spent"`
	Status      RedemptionStatus `json:"status" bson:"status"`

	CreatedAt time.Time `json:"createdAt" bson:"created_at"`
}
