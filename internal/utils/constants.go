package utils

import "time"

// Application Constants
const (
	AppName    = "TapLoyalty"
	AppVersion = "1.0.0"

	// Default values
	DefaultLanguage = "en"
	DefaultCurrency = "AUD"
	DefaultTimeZone = "Australia/Melbourne"

	// Pagination
	DefaultPageSize = 20
	MaxPageSize     = 100
	MinPageSize     = 1

	// Rewards
	RewardCacheTTL           = 30 * time.Minute
	MaxRewardNameLength      = 100
	MaxDescriptionLength     = 500
	MinPerCustomerRedemption = 1

	// Introductory rewards are funded by the platform, so both their
	// number and their value are capped.
	MaxIntroductoryRewards     = 3
	IntroductoryRewardMaxValue = 50.0

	// Programs
	MaxCoffeeFrequency = 100
	MaxCoffeeLevels    = 100
	MaxCashbackRate    = 100.0

	// Activity feed
	ActivityNameBatchSize = 25

	// Assistant
	AssistantRequestTimeout = 30 * time.Second

	// File Upload
	MaxImageSize    = 5 * 1024 * 1024  // 5MB
	MaxDocumentSize = 10 * 1024 * 1024 // 10MB
	ThumbnailWidth  = 320

	// Rate Limiting
	DefaultRateLimit = 100
)

// HTTP Status Messages
const (
	StatusSuccess = "success"
	StatusError   = "error"
	StatusFailed  = "failed"
)

// Error Messages
const (
	ErrInvalidToken     = "invalid token"
	ErrTokenExpired     = "token expired"
	ErrInvalidInput     = "invalid input"
	ErrInternalServer   = "internal server error"
	ErrUnauthorized     = "unauthorized"
	ErrForbidden        = "forbidden"
	ErrNotFound         = "not found"
	ErrConflict         = "conflict"
	ErrValidationFailed = "validation failed"
	ErrFileUploadFailed = "file upload failed"
	ErrRewardNotFound   = "reward not found"
	ErrProgramNotFound  = "program not found"
	ErrCustomerNotFound = "customer not found"
)

// Cache Keys
const (
	CacheRewardPrefix    = "reward:"
	CacheProgramPrefix   = "program:"
	CacheCustomerPrefix  = "customer:"
	CacheRateLimitPrefix = "rate_limit:"
	CacheSessionPrefix   = "session:"
)

// File Types
var (
	AllowedImageTypes    = []string{"jpg", "jpeg", "png", "gif", "webp"}
	AllowedDocumentTypes = []string{"pdf", "doc", "docx", "txt", "csv", "xlsx"}
)
