package service

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"cardvault/internal/errors"
)

var (
	digitsOnly  = regexp.MustCompile(`^\d+$`)
	cvvPattern  = regexp.MustCompile(`^\d{3,4}$`)
	expiryRegex = regexp.MustCompile(`^(0[1-9]|1[0-2])/(\d{2})$`)
)

// CardValidator validates card input before anything touches the vault.
type CardValidator struct{}

// NewCardValidator creates a new card validator.
func NewCardValidator() *CardValidator {
	return &CardValidator{}
}

// NormalizeNumber strips spaces and dashes from a card number.
func (v *CardValidator) NormalizeNumber(cardNumber string) string {
	return strings.ReplaceAll(strings.ReplaceAll(cardNumber, " ", ""), "-", "")
}

// ValidateNumber checks that the card number is all digits, length 13-19.
// The number should be normalized first.
func (v *CardValidator) ValidateNumber(cardNumber string) error {
	if len(cardNumber) < 13 || len(cardNumber) > 19 || !digitsOnly.MatchString(cardNumber) {
		return errors.ErrInvalidCardNumber
	}
	return nil
}

// ValidateCVV checks that the CVV is 3-4 digits.
func (v *CardValidator) ValidateCVV(cvv string) error {
	if !cvvPattern.MatchString(cvv) {
		return errors.ErrInvalidCVV
	}
	return nil
}

// ValidateExpiry checks MM/YY format and that the date is not in the past.
func (v *CardValidator) ValidateExpiry(expiry string) error {
	m := expiryRegex.FindStringSubmatch(expiry)
	if m == nil {
		return errors.ErrInvalidExpiry
	}
	month, _ := strconv.Atoi(m[1])
	year, _ := strconv.Atoi(m[2])
	year += 2000

	// Valid through the end of the stated month. Compared as ordinals:
	// date arithmetic normalizes month-end days and misjudges the boundary.
	now := time.Now()
	if year < now.Year() || (year == now.Year() && month < int(now.Month())) {
		return errors.ErrInvalidExpiry
	}
	return nil
}

// LastFour returns the trailing four digits of a normalized card number.
func (v *CardValidator) LastFour(cardNumber string) string {
	if len(cardNumber) < 4 {
		return cardNumber
	}
	return cardNumber[len(cardNumber)-4:]
}
