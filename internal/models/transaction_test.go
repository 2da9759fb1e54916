package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestStatusType_CanTransitionTo(t *testing.T) {
	allowed := map[StatusType][]StatusType{
		StatusPending:   {StatusSucceeded, StatusFailed},
		StatusSucceeded: {StatusRefunded},
	}
	all := []StatusType{StatusPending, StatusSucceeded, StatusFailed, StatusRefunded}

	for _, from := range all {
		for _, to := range all {
			want := false
			for _, a := range allowed[from] {
				if a == to {
					want = true
				}
			}
			assert.Equal(t, want, from.CanTransitionTo(to), "%s -> %s", from, to)
		}
	}
}

func TestTransaction_SellerEarnings(t *testing.T) {
	tx := &Transaction{Amount: decimal.RequireFromString("6.00"), PlatformFee: decimal.RequireFromString("0.30")}
	assert.Equal(t, "5.70", tx.SellerEarnings().StringFixed(2))
	assert.Equal(t, "5.00", tx.PlatformFeePercentage().StringFixed(2))
}

func TestTransactionFilter_Normalize(t *testing.T) {
	f := TransactionFilter{Page: 0, PerPage: 500, SortBy: "bogus"}.Normalize()
	assert.Equal(t, 1, f.Page)
	assert.Equal(t, MaxPerPage, f.PerPage)
	assert.Equal(t, SortRecent, f.SortBy)
	assert.Equal(t, 0, f.Offset())

	f = TransactionFilter{Page: 3}.Normalize()
	assert.Equal(t, DefaultPerPage, f.PerPage)
	assert.Equal(t, 40, f.Offset())
}
