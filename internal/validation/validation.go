// Package validation provides input validation for the charge API.
package validation

import (
	"net/http"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"

	"payrouter/internal/risk"
)

// MaxRequestSize is the maximum request body size (1MB)
const MaxRequestSize = 1 << 20 // 1MB

// MaxStringLength is the maximum length for string fields
const MaxStringLength = 512

// emailRegex is a permissive shape check: one @, non-empty local part and
// domain with at least one dot. Deliverability is not our concern.
var emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// MinCurrencyLength is the shortest accepted currency code. Codes are
// at least three characters ("USD", "USDT"); no alphabet restriction.
const MinCurrencyLength = 3

// RequestSizeMiddleware limits request body size
func RequestSizeMiddleware(maxSize int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxSize)
		c.Next()
	}
}

// IsValidEmail checks if a string looks like an email address.
func IsValidEmail(s string) bool {
	return len(s) <= MaxStringLength && emailRegex.MatchString(s)
}

// IsValidCurrency checks if a string is an acceptable currency code.
func IsValidCurrency(s string) bool {
	return len(s) >= MinCurrencyLength && len(s) <= MaxStringLength
}

// SanitizeString removes dangerous characters and limits length
func SanitizeString(s string, maxLen int) string {
	s = strings.TrimSpace(s)
	if len(s) > maxLen {
		s = s[:maxLen]
	}
	s = strings.ReplaceAll(s, "\x00", "")
	return s
}

// ValidationError represents a validation error
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}
	return e[0].Field + ": " + e[0].Message
}

// Validate runs validators and collects every failure.
func Validate(validators ...func() *ValidationError) ValidationErrors {
	var errors ValidationErrors
	for _, v := range validators {
		if err := v(); err != nil {
			errors = append(errors, *err)
		}
	}
	return errors
}

// Required checks if a field is non-empty
func Required(field, value string) func() *ValidationError {
	return func() *ValidationError {
		if strings.TrimSpace(value) == "" {
			return &ValidationError{Field: field, Message: "is required"}
		}
		return nil
	}
}

// PositiveAmount checks that an integer amount is greater than zero.
func PositiveAmount(field string, value int64) func() *ValidationError {
	return func() *ValidationError {
		if value <= 0 {
			return &ValidationError{Field: field, Message: "must be greater than zero"}
		}
		return nil
	}
}

// ValidCurrency checks that a field is an acceptable currency code.
// Presence is checked separately with Required.
func ValidCurrency(field, value string) func() *ValidationError {
	return func() *ValidationError {
		if value == "" {
			return nil
		}
		if !IsValidCurrency(value) {
			return &ValidationError{Field: field, Message: "must be a currency code of at least three characters"}
		}
		return nil
	}
}

// ValidEmail checks that a field looks like an email address.
func ValidEmail(field, value string) func() *ValidationError {
	return func() *ValidationError {
		if value == "" {
			return nil
		}
		if !IsValidEmail(value) {
			return &ValidationError{Field: field, Message: "must be a valid email address"}
		}
		return nil
	}
}

// MaxLength checks if a field exceeds max length
func MaxLength(field, value string, max int) func() *ValidationError {
	return func() *ValidationError {
		if len(value) > max {
			return &ValidationError{Field: field, Message: "exceeds maximum length"}
		}
		return nil
	}
}

// ChargeRequest validates a full charge request and returns every failure
// so clients can fix the whole payload in one round trip.
func ChargeRequest(req risk.ChargeRequest) ValidationErrors {
	return Validate(
		PositiveAmount("amount", req.Amount),
		Required("currency", req.Currency),
		ValidCurrency("currency", req.Currency),
		Required("source", req.Source),
		MaxLength("source", req.Source, MaxStringLength),
		Required("email", req.Email),
		ValidEmail("email", req.Email),
	)
}
