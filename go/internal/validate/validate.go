// Package validate normalizes and rejects malformed caller input before any side effect.
//
// Every failure is an invalid_input *apperrors.Error naming the offending field.
package validate

import (
	"math"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/mcdev12/grouporder/go/internal/apperrors"
	"github.com/mcdev12/grouporder/go/internal/models"
)

// MaxEmailLength is the longest accepted email address.
const MaxEmailLength = 254

// MaxSafeQuantity bounds raw quantity input before rounding.
const MaxSafeQuantity = 1_000_000

var (
	uuidPattern  = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// NormalizeEmail trims and lowercases an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// IsUUID reports whether value is a canonical hyphenated UUID.
func IsUUID(value string) bool {
	return uuidPattern.MatchString(value)
}

// IsEmail reports whether an already normalized email is acceptable.
func IsEmail(email string) bool {
	if email == "" || len(email) > MaxEmailLength {
		return false
	}
	return emailPattern.MatchString(email)
}

// ID validates a canonical identifier field. label is the human name used in the message.
func ID(field, label, value string) (uuid.UUID, error) {
	value = strings.TrimSpace(value)
	if !IsUUID(value) {
		return uuid.Nil, apperrors.InvalidField(field, "A valid "+label+" is required.")
	}
	id, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, apperrors.InvalidField(field, "A valid "+label+" is required.")
	}
	return id, nil
}

// Email normalizes and validates an email field.
func Email(field, label, value string) (string, error) {
	email := NormalizeEmail(value)
	if !IsEmail(email) {
		return "", apperrors.InvalidField(field, "A valid "+label+" is required.")
	}
	return email, nil
}

// RoundQuantity checks that q is finite and within the safe range, then rounds it.
// The result is not clamped.
func RoundQuantity(field string, q float64) (int, error) {
	if math.IsNaN(q) || math.IsInf(q, 0) {
		return 0, apperrors.InvalidField(field, "Quantity must be a finite number.")
	}
	if math.Abs(q) > MaxSafeQuantity {
		return 0, apperrors.InvalidField(field, "Quantity is outside a safe numeric range.")
	}
	return int(math.Round(q)), nil
}

// ClampQuantity clamps n into [MinCartQuantity, MaxCartQuantity].
func ClampQuantity(n int) int {
	return min(models.MaxCartQuantity, max(models.MinCartQuantity, n))
}

// Quantity rounds and clamps q. 150 becomes 99, -5 becomes 1.
func Quantity(field string, q float64) (int, error) {
	n, err := RoundQuantity(field, q)
	if err != nil {
		return 0, err
	}
	return ClampQuantity(n), nil
}
