package conv

import (
	"github.com/ericlagergren/decimal"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"
)

// TokenPrecision is the number of decimals of every fungible asset in the
// economy: token, stable coin and base currency all use 18.
const TokenPrecision uint8 = 18

// NewDecimalWithPrecision creates a decimal context wide enough for
// 256-bit unit amounts
func NewDecimalWithPrecision() *decimal.Big {
	d := decimal.WithPrecision(80)
	d.Context.RoundingMode = decimal.ToZero
	return d
}

// ToUnits converts a human decimal amount ("1.5") into smallest-denomination
// units at the given precision, truncating excess fractional digits
func ToUnits(amount string, precision uint8) (*uint256.Int, error) {
	d, ok := NewDecimalWithPrecision().SetString(amount)
	if !ok {
		return nil, errors.Errorf("invalid decimal amount %q", amount)
	}
	if d.Sign() < 0 {
		return nil, errors.Errorf("negative amount %q", amount)
	}
	scale := NewDecimalWithPrecision().SetMantScale(1, -int(precision))
	d.Mul(d, scale)
	scaled := d.Int(nil)
	units, overflow := uint256.FromBig(scaled)
	if overflow {
		return nil, errors.Errorf("amount %q out of range", amount)
	}
	return units, nil
}

// FromUnits converts smallest-denomination units back into a human decimal
// string at the given precision
func FromUnits(units *uint256.Int, precision uint8) string {
	d, _ := NewDecimalWithPrecision().SetString(units.Dec())
	scale := NewDecimalWithPrecision().SetMantScale(1, -int(precision))
	d.Quo(d, scale)
	return d.Reduce().String()
}
