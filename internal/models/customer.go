package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Customer is a loyalty member as seen by one merchant. The document id
// matches the customer's platform-wide uid so reward condition checks can
// join against transactions and redemptions.
type Customer struct {
	ID         primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	CustomerID string             `json:"customerId" bson:"customer_id"`
	MerchantID string             `json:"merchantId" bson:"merchant_id"`

	FullName string `json:"fullName" bson:"full_name"`
	Email    string `json:"email" bson:"email"`

	PointsBalance     int             `json:"pointsBalance" bson:"points_balance"`
	LifetimeSpend     float64         `json:"lifetimeSpend" bson:"lifetime_spend"`
	TotalTransactions int             `json:"totalTransactions" bson:"total_transactions"`
	MembershipLevel   MembershipLevel `json:"membershipLevel" bson:"membership_level"`
	TapCashBalance    float64         `json:"tapCashBalance" bson:"tap_cash_balance"`

	FirstTransactionAt *time.Time `json:"firstTransactionAt" bson:"first_transaction_at"`
	LastTransactionAt  *time.Time `json:"lastTransactionAt" bson:"last_transaction_at"`
	JoinedAt           time.Time  `json:"joinedAt" bson:"joined_at"`

	CreatedAt time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updated_at"`
}
