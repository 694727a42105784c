package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

const (
	MaxTypeNameLength = 120
	MaxNotesLength    = 2000
	// MaxMovementAmount bounds a single entry amount.
	MaxMovementAmount = "1000000000000"
)

var maxMovementAmount = decimal.RequireFromString(MaxMovementAmount)

// ValidateTypeName validates a movement type name.
func ValidateTypeName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return NewValidationError("movement_type", "", "name", "name cannot be empty")
	}
	if len(name) > MaxTypeNameLength {
		return NewValidationError("movement_type", "", "name", "name is too long")
	}
	return nil
}

// ValidateAmount validates a movement or adjustment amount.
func ValidateAmount(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return NewValidationError("movement", "", "amount", "amount must be positive")
	}
	if amount.GreaterThan(maxMovementAmount) {
		return NewValidationError("movement", "", "amount", "amount exceeds maximum allowed")
	}
	return nil
}

// ValidatePagination clamps pagination parameters.
func ValidatePagination(limit, offset int) (int, int) {
	const maxPageSize = 1000
	const defaultPageSize = 50

	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
