package validators

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var validate *validator.Validate

func init() {
	validate = validator.New()

	// Register custom validation functions
	validate.RegisterValidation("object_id", validateObjectID)
	validate.RegisterValidation("redemption_pin", validateRedemptionPIN)
	validate.RegisterValidation("time_of_day", validateTimeOfDay)
	validate.RegisterValidation("weekday_index", validateWeekdayIndex)
	validate.RegisterValidation("membership_level", validateMembershipLevel)
}

// Common validation errors
var (
	ErrInvalidObjectID      = errors.New("invalid object ID format")
	ErrInvalidRedemptionPIN = errors.New("redemption PIN must be exactly 4 digits")
	ErrInvalidTimeOfDay     = errors.New("invalid time of day format")
	ErrInvalidWeekday       = errors.New("weekday index must be between 0 and 6")
	ErrInvalidMembership    = errors.New("invalid membership level")
)

// ValidationError represents a field validation error
type ValidationError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Value   string `json:"value"`
	Message string `json:"message"`
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	var messages []string
	for _, err := range v {
		messages = append(messages, fmt.Sprintf("%s: %s", err.Field, err.Message))
	}
	return strings.Join(messages, "; ")
}

// ValidateStruct validates a struct and returns detailed errors
func ValidateStruct(s interface{}) ValidationErrors {
	var validationErrors ValidationErrors

	err := validate.Struct(s)
	if err != nil {
		var fieldErrors validator.ValidationErrors
		if !errors.As(err, &fieldErrors) {
			// A nil or non-struct value yields an InvalidValidationError
			// instead of field errors. Report it rather than panic.
			return ValidationErrors{{
				Tag:     "struct",
				Message: "Invalid payload",
			}}
		}
		for _, fieldErr := range fieldErrors {
			validationError := ValidationError{
				Field:   fieldErr.Field(),
				Tag:     fieldErr.Tag(),
				Value:   fmt.Sprintf("%v", fieldErr.Value()),
				Message: getErrorMessage(fieldErr),
			}
			validationErrors = append(validationErrors, validationError)
		}
	}

	return validationErrors
}

func getErrorMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", err.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s", err.Field(), err.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", err.Field(), err.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", err.Field(), err.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s", err.Field(), err.Param())
	case "object_id":
		return "Invalid ID format"
	case "redemption_pin":
		return "Redemption PIN must be exactly 4 digits"
	case "time_of_day":
		return "Time must be in HH:MM format"
	case "weekday_index":
		return "Weekday must be between 0 (Sunday) and 6 (Saturday)"
	case "membership_level":
		return "Membership level must be Bronze, Silver or Gold"
	default:
		return fmt.Sprintf("Validation failed for %s", err.Field())
	}
}

var (
	pinRegex       = regexp.MustCompile(`^\d{4}$`)
	timeOfDayRegex = regexp.MustCompile(`^([0-1]?[0-9]|2[0-3]):[0-5][0-9]$`)
)

// Custom validation functions
func validateObjectID(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true // Let required tag handle empty values
	}
	_, err := primitive.ObjectIDFromHex(value)
	return err == nil
}

func validateRedemptionPIN(fl validator.FieldLevel) bool {
	return pinRegex.MatchString(fl.Field().String())
}

func validateTimeOfDay(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return timeOfDayRegex.MatchString(value)
}

func validateWeekdayIndex(fl validator.FieldLevel) bool {
	day := fl.Field().Int()
	return day >= 0 && day <= 6
}

func validateMembershipLevel(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	switch value {
	case "Bronze", "Silver", "Gold":
		return true
	}
	return false
}

// Helper functions for common validations
func IsValidRedemptionPIN(pin string) bool {
	return pinRegex.MatchString(pin)
}

func IsValidObjectID(id string) bool {
	_, err := primitive.ObjectIDFromHex(id)
	return err == nil
}

func SanitizeInput(input string) string {
	// Remove HTML tags and trim whitespace
	htmlRegex := regexp.MustCompile(`<[^>]*>`)
	cleaned := htmlRegex.ReplaceAllString(input, "")
	return strings.TrimSpace(cleaned)
}
