// Package fees computes the platform fee retained on every money-moving event.
//
// All arithmetic is fixed-point (shopspring/decimal) and rounded to cents; no
// floating point value ever reaches an amount or a fee.
package fees

import (
	"fmt"
	"strings"

	"github.com/honeynil/CreatorMonetizationService/internal/models"
	pkgerrors "github.com/honeynil/CreatorMonetizationService/pkg/errors"
	"github.com/shopspring/decimal"
)

// Cents is the number of fractional digits money is stored with.
const Cents = 2

// Schedule is the platform fee configuration: Percent of the amount with a
// Minimum floor.
type Schedule struct {
	Percent decimal.Decimal
	Minimum decimal.Decimal
}

// DefaultSchedule is 5% with a $0.30 minimum.
func DefaultSchedule() Schedule {
	return Schedule{
		Percent: decimal.RequireFromString("5"),
		Minimum: decimal.RequireFromString("0.30"),
	}
}

func (s Schedule) Validate() error {
	if s.Percent.IsNegative() || s.Percent.GreaterThanOrEqual(decimal.NewFromInt(100)) {
		return fmt.Errorf("fee percent must be in [0, 100): %s", s.Percent)
	}
	if s.Minimum.IsNegative() {
		return fmt.Errorf("fee minimum must not be negative: %s", s.Minimum)
	}
	if !s.Minimum.Equal(s.Minimum.Truncate(Cents)) {
		return fmt.Errorf("fee minimum has more than %d fractional digits: %s", Cents, s.Minimum)
	}
	return nil
}

type Calculator struct {
	schedule Schedule
}

func NewCalculator(schedule Schedule) (*Calculator, error) {
	if err := schedule.Validate(); err != nil {
		return nil, err
	}
	return &Calculator{schedule: schedule}, nil
}

func (c *Calculator) Schedule() Schedule {
	return c.schedule
}

// ComputeFee returns max(round(amount * percent / 100, 2), minimum). Every
// transaction kind uses the same rule. The fee must stay strictly below the
// amount, so amounts at or under the minimum are rejected with ErrInvalidAmount.
func (c *Calculator) ComputeFee(amount decimal.Decimal, kind models.TransactionType) (decimal.Decimal, error) {
	if !kind.IsValid() {
		return decimal.Zero, pkgerrors.ErrInvalidTransactionType
	}
	if err := ValidateAmount(amount); err != nil {
		return decimal.Zero, err
	}

	fee := amount.Mul(c.schedule.Percent).Div(decimal.NewFromInt(100)).Round(Cents)
	if fee.LessThan(c.schedule.Minimum) {
		fee = c.schedule.Minimum
	}
	if fee.GreaterThanOrEqual(amount) {
		return decimal.Zero, fmt.Errorf("%w: amount %s does not cover the platform fee %s", pkgerrors.ErrInvalidAmount, amount.StringFixed(Cents), fee.StringFixed(Cents))
	}
	return fee, nil
}

// SellerEarnings is amount - fee.
func SellerEarnings(amount, fee decimal.Decimal) decimal.Decimal {
	return amount.Sub(fee)
}

// ValidateAmount accepts strictly positive amounts with at most two fractional digits.
func ValidateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("%w: amount must be positive", pkgerrors.ErrInvalidAmount)
	}
	if !amount.Equal(amount.Truncate(Cents)) {
		return fmt.Errorf("%w: amount %s has more than %d fractional digits", pkgerrors.ErrInvalidAmount, amount, Cents)
	}
	return nil
}

// ParseAmount parses a client-supplied decimal string such as "6.00".
func ParseAmount(raw string) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero, fmt.Errorf("%w: amount is required", pkgerrors.ErrInvalidAmount)
	}
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q is not a decimal amount", pkgerrors.ErrInvalidAmount, raw)
	}
	if err := ValidateAmount(amount); err != nil {
		return decimal.Zero, err
	}
	return amount, nil
}

// Rate returns numerator / denominator * 100 rounded to 2 places, or zero when
// the denominator is zero.
func Rate(numerator, denominator int64) decimal.Decimal {
	if denominator == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(numerator).
		Mul(decimal.NewFromInt(100)).
		Div(decimal.NewFromInt(denominator)).
		Round(Cents)
}
