package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestBillingCycle_EndDate(t *testing.T) {
	start := date(2024, time.January, 15)

	assert.Equal(t, date(2024, time.February, 15), CycleMonthly.EndDate(start))
	assert.Equal(t, date(2024, time.April, 15), CycleQuarterly.EndDate(start))
	assert.Equal(t, date(2025, time.January, 15), CycleYearly.EndDate(start))
}

func TestBillingCycle_EndDateClampsToMonthEnd(t *testing.T) {
	assert.Equal(t, date(2024, time.February, 29), CycleMonthly.EndDate(date(2024, time.January, 31)))
	assert.Equal(t, date(2023, time.February, 28), CycleMonthly.EndDate(date(2023, time.January, 31)))
	assert.Equal(t, date(2024, time.February, 29), CycleQuarterly.EndDate(date(2023, time.November, 30)))
	assert.Equal(t, date(2025, time.February, 28), CycleYearly.EndDate(date(2024, time.February, 29)))
	assert.Equal(t, date(2025, time.January, 31), CycleMonthly.EndDate(date(2024, time.December, 31)))
}

func TestSubscription_SetPeriodRecomputesEndDate(t *testing.T) {
	sub := &Subscription{BillingCycle: CycleMonthly}
	sub.SetPeriod(time.Date(2024, time.January, 15, 13, 45, 0, 0, time.UTC))
	assert.Equal(t, date(2024, time.January, 15), sub.StartDate)
	assert.Equal(t, date(2024, time.February, 15), sub.EndDate)

	sub.BillingCycle = CycleYearly
	sub.SetPeriod(sub.StartDate)
	assert.Equal(t, date(2025, time.January, 15), sub.EndDate)
}

func TestSubscription_DerivedReads(t *testing.T) {
	sub := &Subscription{StartDate: date(2024, time.January, 15), EndDate: date(2024, time.February, 15)}

	assert.False(t, sub.IsExpired(date(2024, time.February, 1)))
	assert.True(t, sub.IsExpired(date(2024, time.February, 16)))
	assert.Equal(t, 14, sub.DaysUntilRenewal(date(2024, time.February, 1)))
	assert.Equal(t, 0, sub.DaysUntilRenewal(date(2024, time.March, 1)))
}

func TestParseSubscriptionStatus(t *testing.T) {
	s, ok := ParseSubscriptionStatus("cancelled")
	assert.True(t, ok)
	assert.Equal(t, SubscriptionCanceled, s)

	s, ok = ParseSubscriptionStatus("Canceled")
	assert.True(t, ok)
	assert.Equal(t, SubscriptionCanceled, s)

	_, ok = ParseSubscriptionStatus("expired")
	assert.False(t, ok)
}

func TestBillingCycle_Interval(t *testing.T) {
	assert.Equal(t, RecurringInterval{Unit: "month", Count: 1}, CycleMonthly.Interval())
	assert.Equal(t, RecurringInterval{Unit: "month", Count: 3}, CycleQuarterly.Interval())
	assert.Equal(t, RecurringInterval{Unit: "year", Count: 1}, CycleYearly.Interval())
}
