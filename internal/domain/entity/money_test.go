package entity

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "github.com/localhy/credit-ledger/internal/domain/error"
)

func TestParseCurrencyAmount(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
		isValid  bool
	}{
		{"25.00", "25", true},
		{" 9.99 ", "9.99", true},
		{"0", "0", true},
		{"", "", false},
		{"-1.00", "", false},
		{"abc", "", false},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			d, err := ParseCurrencyAmount(tc.input)
			if !tc.isValid {
				assert.ErrorIs(t, err, errs.ErrInvalidAmount)
				return
			}
			require.NoError(t, err)
			assert.True(t, d.Equal(decimal.RequireFromString(tc.expected)), "got %s", d)
		})
	}
}

func TestCreditsForAmount(t *testing.T) {
	testCases := []struct {
		name        string
		amount      string
		rate        string
		expected    int64
		expectedErr error
	}{
		{"Whole units", "25.00", "1", 25, nil},
		{"Fraction truncated", "9.99", "1", 9, nil},
		{"Custom rate", "10.50", "2", 21, nil},
		{"Fractional rate", "3", "0.5", 1, nil},
		{"Below one credit", "0.99", "1", 0, errs.ErrInvalidAmount},
		{"Zero rate", "10", "0", 0, errs.ErrInvalidAmount},
		{"Overflow", "9223372036854775808", "1", 0, errs.ErrAmountOverflow},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			credits, err := CreditsForAmount(decimal.RequireFromString(tc.amount), decimal.RequireFromString(tc.rate))
			if tc.expectedErr != nil {
				assert.ErrorIs(t, err, tc.expectedErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, credits)
		})
	}
}
