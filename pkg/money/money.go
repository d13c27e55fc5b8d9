// Package money converts between stored integer halalas and displayed SAR amounts.
package money

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// HalalasPerRiyal is the minor-unit factor of the Saudi riyal.
const HalalasPerRiyal = 100

// FromHalalas returns the SAR amount for an integer number of halalas.
func FromHalalas(halalas int64) decimal.Decimal {
	return decimal.NewFromInt(halalas).Shift(-2)
}

// ToHalalas converts a SAR amount to halalas, rounding half away from zero at the second decimal.
func ToHalalas(amount decimal.Decimal) (int64, error) {
	if amount.IsNegative() {
		return 0, fmt.Errorf("amount must not be negative: %s", amount.String())
	}
	return amount.Round(2).Shift(2).IntPart(), nil
}

// Format renders halalas as a fixed two-decimal SAR string.
func Format(halalas int64) string {
	return FromHalalas(halalas).StringFixed(2)
}
