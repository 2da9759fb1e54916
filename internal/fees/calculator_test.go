package fees

import (
	"testing"

	"github.com/honeynil/CreatorMonetizationService/internal/models"
	pkgerrors "github.com/honeynil/CreatorMonetizationService/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestCalculator_ComputeFee(t *testing.T) {
	calc, err := NewCalculator(DefaultSchedule())
	require.NoError(t, err)

	tests := []struct {
		name     string
		amount   string
		kind     models.TransactionType
		fee      string
		earnings string
	}{
		{"MinimumApplies", "6.00", models.TypeDocumentPurchase, "0.30", "5.70"},
		{"PercentApplies", "100.00", models.TypeDocumentPurchase, "5.00", "95.00"},
		{"TipUsesSameRule", "20.00", models.TypeTip, "1.00", "19.00"},
		{"SubscriptionPayment", "9.99", models.TypeSubscriptionPayment, "0.50", "9.49"},
		{"RoundsHalfUp", "12.30", models.TypeTip, "0.62", "11.68"},
		{"JustAboveMinimum", "0.31", models.TypeTip, "0.30", "0.01"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			fee, err := calc.ComputeFee(d(tc.amount), tc.kind)
			require.NoError(t, err)
			assert.Equal(t, tc.fee, fee.StringFixed(2))
			assert.Equal(t, tc.earnings, SellerEarnings(d(tc.amount), fee).StringFixed(2))
			assert.True(t, fee.LessThan(d(tc.amount)))
		})
	}
}

func TestCalculator_ComputeFeeIsDeterministic(t *testing.T) {
	calc, err := NewCalculator(DefaultSchedule())
	require.NoError(t, err)

	first, err := calc.ComputeFee(d("47.13"), models.TypeDocumentPurchase)
	require.NoError(t, err)
	second, err := calc.ComputeFee(d("47.13"), models.TypeDocumentPurchase)
	require.NoError(t, err)
	assert.True(t, first.Equal(second))
}

func TestCalculator_ComputeFeeRejects(t *testing.T) {
	calc, err := NewCalculator(DefaultSchedule())
	require.NoError(t, err)

	t.Run("Zero", func(t *testing.T) {
		_, err := calc.ComputeFee(decimal.Zero, models.TypeTip)
		assert.ErrorIs(t, err, pkgerrors.ErrInvalidAmount)
	})

	t.Run("Negative", func(t *testing.T) {
		_, err := calc.ComputeFee(d("-5.00"), models.TypeTip)
		assert.ErrorIs(t, err, pkgerrors.ErrInvalidAmount)
	})

	t.Run("FeeWouldConsumeAmount", func(t *testing.T) {
		_, err := calc.ComputeFee(d("0.30"), models.TypeTip)
		assert.ErrorIs(t, err, pkgerrors.ErrInvalidAmount)
	})

	t.Run("SubCentPrecision", func(t *testing.T) {
		_, err := calc.ComputeFee(d("10.001"), models.TypeDocumentPurchase)
		assert.ErrorIs(t, err, pkgerrors.ErrInvalidAmount)
	})

	t.Run("UnknownKind", func(t *testing.T) {
		_, err := calc.ComputeFee(d("10.00"), models.TransactionType("gift"))
		assert.ErrorIs(t, err, pkgerrors.ErrInvalidTransactionType)
	})
}

func TestCalculator_CustomSchedule(t *testing.T) {
	calc, err := NewCalculator(Schedule{Percent: d("10"), Minimum: d("1.00")})
	require.NoError(t, err)

	fee, err := calc.ComputeFee(d("50.00"), models.TypeDocumentPurchase)
	require.NoError(t, err)
	assert.Equal(t, "5.00", fee.StringFixed(2))

	fee, err = calc.ComputeFee(d("5.00"), models.TypeDocumentPurchase)
	require.NoError(t, err)
	assert.Equal(t, "1.00", fee.StringFixed(2))
}

func TestNewCalculator_InvalidSchedule(t *testing.T) {
	_, err := NewCalculator(Schedule{Percent: d("100"), Minimum: d("0.30")})
	assert.Error(t, err)

	_, err = NewCalculator(Schedule{Percent: d("5"), Minimum: d("-1")})
	assert.Error(t, err)

	_, err = NewCalculator(Schedule{Percent: d("5"), Minimum: d("0.305")})
	assert.Error(t, err)
}

func TestParseAmount(t *testing.T) {
	amount, err := ParseAmount(" 6.00 ")
	require.NoError(t, err)
	assert.Equal(t, "6.00", amount.StringFixed(2))

	for _, raw := range []string{"", "abc", "0", "-1.00", "1.999"} {
		_, err := ParseAmount(raw)
		assert.ErrorIs(t, err, pkgerrors.ErrInvalidAmount, raw)
	}
}

func TestRate(t *testing.T) {
	assert.True(t, Rate(0, 0).IsZero())
	assert.True(t, Rate(5, 0).IsZero())
	assert.Equal(t, "33.33", Rate(1, 3).StringFixed(2))
	assert.Equal(t, "66.67", Rate(2, 3).StringFixed(2))
	assert.Equal(t, "100.00", Rate(4, 4).StringFixed(2))
}
