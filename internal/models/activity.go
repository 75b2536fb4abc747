package models

import "time"

type ActivityKind string

const (
	ActivityKindTransaction ActivityKind = "transaction"
	ActivityKindRedemption  ActivityKind = "redemption"
)

// DateBucket names a calendar range relative to "now" in the merchant's
// reference timezone. Buckets are calendar-day bounded, not rolling
// 24-hour windows.
type DateBucket string

const (
	BucketAll       DateBucket = "all"
	BucketToday     DateBucket = "today"
	BucketYesterday DateBucket = "yesterday"
	BucketThisWeek  DateBucket = "thisWeek"
	BucketLastWeek  DateBucket = "lastWeek"
	BucketThisMonth DateBucket = "thisMonth"
	BucketLastMonth DateBucket = "lastMonth"
	BucketCustom    DateBucket = "custom"
)

// ActivityItem is one row of the merged transaction/redemption feed.
type ActivityItem struct {
	ID           string       `json:"id"`
	Kind         ActivityKind `json:"kind"`
	CustomerID   string       `json:"customerId"`
	CustomerName string       `json:"customerName"`
	Amount       float64      `json:"amount,omitempty"`
	Points       int          `json:"points,omitempty"`
	RewardName   string       `json:"rewardName,omitempty"`
	Status       string       `json:"status"`
	OccurredAt   time.Time    `json:"occurredAt"`
}

// ActivityFilter narrows and orders the feed. Zero values mean "no
// restriction"; SortBy defaults to date descending.
type ActivityFilter struct {
	Search    string       `json:"search" form:"search"`
	Kind      ActivityKind `json:"kind" form:"kind"`
	Bucket    DateBucket   `json:"bucket" form:"bucket"`
	From      time.Time    `json:"from" form:"from" time_format:"2006-01-02"`
	To        time.Time    `json:"to" form:"to" time_format:"2006-01-02"`
	SortBy    string       `json:"sortBy" form:"sort_by"`       // date, amount, points, customer
	SortOrder string       `json:"sortOrder" form:"sort_order"` // asc, desc
}
