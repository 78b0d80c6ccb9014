package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"cardvault/internal/errors"
)

func TestCardValidator_NormalizeNumber(t *testing.T) {
	v := NewCardValidator()

	assert.Equal(t, "4111111111111111", v.NormalizeNumber("4111 1111 1111 1111"))
	assert.Equal(t, "4111111111111111", v.NormalizeNumber("4111-1111-1111-1111"))
	assert.Equal(t, "4111111111111111", v.NormalizeNumber("4111111111111111"))
}

func TestCardValidator_ValidateNumber(t *testing.T) {
	v := NewCardValidator()

	tests := []struct {
		name   string
		number string
		valid  bool
	}{
		{"sixteen digits", "4111111111111111", true},
		{"thirteen digits", "4111111111111", true},
		{"nineteen digits", "4111111111111111111", true},
		{"too short", "411111111111", false},
		{"too long", "41111111111111111111", false},
		{"letters", "4111x11111111111", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateNumber(tt.number)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, errors.ErrInvalidCardNumber)
			}
		})
	}
}

func TestCardValidator_ValidateCVV(t *testing.T) {
	v := NewCardValidator()

	assert.NoError(t, v.ValidateCVV("123"))
	assert.NoError(t, v.ValidateCVV("1234"))
	assert.ErrorIs(t, v.ValidateCVV("12"), errors.ErrInvalidCVV)
	assert.ErrorIs(t, v.ValidateCVV("12345"), errors.ErrInvalidCVV)
	assert.ErrorIs(t, v.ValidateCVV("12a"), errors.ErrInvalidCVV)
	assert.ErrorIs(t, v.ValidateCVV(""), errors.ErrInvalidCVV)
}

func TestCardValidator_ValidateExpiry(t *testing.T) {
	v := NewCardValidator()

	now := time.Now()
	current := fmt.Sprintf("%02d/%02d", int(now.Month()), now.Year()%100)
	future := fmt.Sprintf("%02d/%02d", int(now.Month()), (now.Year()+3)%100)
	// Built from the first of the month so the subtraction cannot normalize
	// across a month boundary, whatever today's date is.
	prev := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -1, 0)
	lastMonth := fmt.Sprintf("%02d/%02d", int(prev.Month()), prev.Year()%100)

	assert.NoError(t, v.ValidateExpiry(current), "card is valid through its expiry month")
	assert.NoError(t, v.ValidateExpiry(future))
	assert.ErrorIs(t, v.ValidateExpiry(lastMonth), errors.ErrInvalidExpiry)

	assert.ErrorIs(t, v.ValidateExpiry("01/20"), errors.ErrInvalidExpiry)
	assert.ErrorIs(t, v.ValidateExpiry("13/30"), errors.ErrInvalidExpiry)
	assert.ErrorIs(t, v.ValidateExpiry("00/30"), errors.ErrInvalidExpiry)
	assert.ErrorIs(t, v.ValidateExpiry("1/30"), errors.ErrInvalidExpiry)
	assert.ErrorIs(t, v.ValidateExpiry("12-30"), errors.ErrInvalidExpiry)
	assert.ErrorIs(t, v.ValidateExpiry("12/2030"), errors.ErrInvalidExpiry)
	assert.ErrorIs(t, v.ValidateExpiry(""), errors.ErrInvalidExpiry)
}

func TestCardValidator_LastFour(t *testing.T) {
	v := NewCardValidator()

	assert.Equal(t, "1111", v.LastFour("4111111111111111"))
	assert.Equal(t, "123", v.LastFour("123"))
}
