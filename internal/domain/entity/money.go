package entity

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"

	errs "github.com/localhy/credit-ledger/internal/domain/error"
)

// DefaultExchangeRate is the number of credits one currency unit buys
var DefaultExchangeRate = decimal.NewFromInt(1)

var maxCredits = decimal.NewFromInt(math.MaxInt64)

// ParseCurrencyAmount parses a provider amount such as "25.00"
func ParseCurrencyAmount(amount string) (decimal.Decimal, error) {
	amount = strings.TrimSpace(amount)
	if amount == "" {
		return decimal.Zero, fmt.Errorf("%w: empty value", errs.ErrInvalidAmount)
	}

	d, err := decimal.NewFromString(amount)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %s", errs.ErrInvalidAmount, err.Error())
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: amount cannot be negative", errs.ErrInvalidAmount)
	}
	return d, nil
}

// CreditsForAmount converts a paid amount to credits, truncating any fraction.
// An amount that buys no whole credit is rejected.
func CreditsForAmount(amount, rate decimal.Decimal) (int64, error) {
	if !rate.IsPositive() {
		return 0, fmt.Errorf("%w: exchange rate must be positive", errs.ErrInvalidAmount)
	}
	if amount.IsNegative() {
		return 0, fmt.Errorf("%w: amount cannot be negative", errs.ErrInvalidAmount)
	}

	credits := amount.Mul(rate).Truncate(0)
	if credits.GreaterThan(maxCredits) {
		return 0, errs.ErrAmountOverflow
	}
	if !credits.IsPositive() {
		return 0, fmt.Errorf("%w: %s buys no credits", errs.ErrInvalidAmount, amount.String())
	}
	return credits.IntPart(), nil
}
