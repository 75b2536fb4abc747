package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ProgramType string

const (
	ProgramTypeCoffee      ProgramType = "coffee"
	ProgramTypeVoucher     ProgramType = "voucher"
	ProgramTypeTransaction ProgramType = "transaction"
	ProgramTypeCashback    ProgramType = "cashback"
)

// Program is a recurring loyalty program owned by a merchant. At most one
// active program per type exists per merchant; creating a new one
// replaces the previous.
type Program struct {
	ID         primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	MerchantID string             `json:"merchantId" bson:"merchant_id"`
	Type       ProgramType        `json:"type" bson:"type"`
	Name       string             `json:"name" bson:"name"`
	PIN        string             `json:"pin" bson:"pin"`
	IsActive   bool               `json:"isActive" bson:"is_active"`

	// Coffee program: a stamp card. Frequency stamps earn a free coffee,
	// repeated over Levels cards.
	FirstCoffeeFree bool `json:"firstCoffeeFree,omitempty" bson:"first_coffee_free,omitempty"`
	Frequency       int  `json:"frequency,omitempty" bson:"frequency,omitempty"`
	Levels          int  `json:"levels,omitempty" bson:"levels,omitempty"`

	// Voucher program: a recurring voucher triggered by cumulative spend.
	VoucherAmount  float64 `json:"voucherAmount,omitempty" bson:"voucher_amount,omitempty"`
	SpendThreshold float64 `json:"spendThreshold,omitempty" bson:"spend_threshold,omitempty"`

	// Transaction program: a reward every Nth transaction.
	TransactionInterval int    `json:"transactionInterval,omitempty" bson:"transaction_interval,omitempty"`
	RewardDescription   string `json:"rewardDescription,omitempty" bson:"reward_description,omitempty"`

	// Cashback program: flat percentage returned as Tap Cash.
	CashbackRate float64 `json:"cashbackRate,omitempty" bson:"cashback_rate,omitempty"`

	CreatedAt time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updated_at"`
}

// CoffeeProgramRequest creates or replaces a merchant's coffee program.
type CoffeeProgramRequest struct {
	PIN             string `json:"pin" validate:"required,redemption_pin"`
	FirstCoffeeFree bool   `json:"firstCoffeeFree"`
	Frequency       int    `json:"frequency" validate:"required,min=1,max=100"`
	Levels          int    `json:"levels" validate:"required,min=1,max=100"`
}

type VoucherProgramRequest struct {
	Name           string  `json:"name" validate:"required"`
	PIN            string  `json:"pin" validate:"required,redemption_pin"`
	VoucherAmount  float64 `json:"voucherAmount" validate:"required,gt=0"`
	SpendThreshold float64 `json:"spendThreshold" validate:"required,gt=0"`
}

type TransactionProgramRequest struct {
	Name                string `json:"name" validate:"required"`
	PIN                 string `json:"pin" validate:"required,redemption_pin"`
	TransactionInterval int    `json:"transactionInterval" validate:"required,min=1"`
	RewardDescription   string `json:"rewardDescription" validate:"required"`
}

type CashbackProgramRequest struct {
	Name         string  `json:"name" validate:"required"`
	CashbackRate float64 `json:"cashbackRate" validate:"required,gt=0,lte=100"`
}
