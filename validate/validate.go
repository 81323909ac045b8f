// Package validate holds the client-side field checks applied before any
// payload reaches the network.
package validate

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	serrors "github.com/sliceworks/pizzactl/errors"
)

var (
	emailRe = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	phoneRe = regexp.MustCompile(`^[+]?[(]?[0-9]{3}[)]?[-\s.]?[0-9]{3}[-\s.]?[0-9]{4,6}$`)

	digitRe   = regexp.MustCompile(`\d`)
	specialRe = regexp.MustCompile(`[!@#$%^&*(),.?":{}|<>]`)
	upperRe   = regexp.MustCompile(`[A-Z]`)
	lowerRe   = regexp.MustCompile(`[a-z]`)
)

// Required rejects empty or whitespace-only values.
func Required(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return serrors.NewValidation(field, "is required")
	}
	return nil
}

// Email checks basic address shape.
func Email(value string) error {
	if value == "" {
		return serrors.NewValidation("email", "is required")
	}
	if !emailRe.MatchString(strings.ToLower(value)) {
		return serrors.NewValidation("email", "must be a valid email address")
	}
	return nil
}

// Password scores value on length, digits, special characters and mixed
// case. It returns the strength (0-5) alongside the verdict: acceptable
// passwords are at least 8 characters with a score of 3 or more.
func Password(value string) (int, error) {
	if value == "" {
		return 0, serrors.NewValidation("password", "is required")
	}

	strength := 0
	hasMinLength := len(value) >= 8
	for _, ok := range []bool{
		hasMinLength,
		digitRe.MatchString(value),
		specialRe.MatchString(value),
		upperRe.MatchString(value),
		lowerRe.MatchString(value),
	} {
		if ok {
			strength++
		}
	}

	if !hasMinLength {
		return strength, serrors.NewValidation("password", "must be at least 8 characters")
	}
	if strength < 3 {
		return strength, serrors.NewValidation("password", "is too weak")
	}
	return strength, nil
}

// Phone accepts common international formats.
func Phone(value string) error {
	if value == "" {
		return serrors.NewValidation("phone", "is required")
	}
	if !phoneRe.MatchString(value) {
		return serrors.NewValidation("phone", "must be a valid phone number")
	}
	return nil
}

// Price parses value as a positive decimal amount.
func Price(value string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, serrors.NewValidation("price", "must be a number")
	}
	if !d.IsPositive() {
		return decimal.Zero, serrors.NewValidation("price", "must be greater than zero")
	}
	return d, nil
}
