package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Subscription struct {
	ID           int64              `json:"id"`
	SubscriberID int64              `json:"subscriber_id"`
	CreatorID    int64              `json:"creator_id"`
	MonthlyPrice decimal.Decimal    `json:"monthly_price"`
	BillingCycle BillingCycle       `json:"billing_cycle"`
	Status       SubscriptionStatus `json:"status"`
	StartDate    time.Time          `json:"start_date"`
	EndDate      time.Time          `json:"end_date"`
	CancelledAt  *time.Time         `json:"cancelled_at,omitempty"`
	ProcessorRef string             `json:"processor_ref,omitempty"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`

	// GatewayAttempts counts checkout attempts at the processor and keys each one.
	GatewayAttempts int `json:"-"`
}

// IsParticipant reports whether userID is the subscriber or the creator of the pair.
func (s *Subscription) IsParticipant(userID int64) bool {
	return s.SubscriberID == userID || s.CreatorID == userID
}

// CanRetryCheckout reports whether the processor never opened the subscription,
// so a new subscribe request may reuse the row.
func (s *Subscription) CanRetryCheckout() bool {
	if s.ProcessorRef != "" {
		return false
	}
	return s.Status == SubscriptionIncomplete || s.Status == SubscriptionCanceled
}

// IsExpired is derived, never stored.
func (s *Subscription) IsExpired(now time.Time) bool {
	return !s.EndDate.IsZero() && s.EndDate.Before(now)
}

// DaysUntilRenewal is floored at zero.
func (s *Subscription) DaysUntilRenewal(now time.Time) int {
	if s.EndDate.IsZero() {
		return 0
	}
	days := int(truncateDay(s.EndDate).Sub(truncateDay(now)).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

// SetPeriod sets the start date and recomputes the end date for the current cycle.
func (s *Subscription) SetPeriod(start time.Time) {
	s.StartDate = truncateDay(start)
	s.EndDate = s.BillingCycle.EndDate(s.StartDate)
}

type SubscriptionStatus string

const (
	SubscriptionIncomplete SubscriptionStatus = "incomplete"
	SubscriptionActive     SubscriptionStatus = "active"
	SubscriptionPastDue    SubscriptionStatus = "past_due"
	SubscriptionCanceled   SubscriptionStatus = "canceled"
	SubscriptionUnpaid     SubscriptionStatus = "unpaid"
)

func (s SubscriptionStatus) IsValid() bool {
	switch s {
	case SubscriptionIncomplete, SubscriptionActive, SubscriptionPastDue, SubscriptionCanceled, SubscriptionUnpaid:
		return true
	}
	return false
}

// ParseSubscriptionStatus accepts the British "cancelled" spelling as input; only
// "canceled" is ever stored.
func ParseSubscriptionStatus(raw string) (SubscriptionStatus, bool) {
	v := strings.ToLower(strings.TrimSpace(raw))
	if v == "cancelled" {
		v = string(SubscriptionCanceled)
	}
	s := SubscriptionStatus(v)
	return s, s.IsValid()
}

// BillingCycle is the recurrence interval of a subscription.
type BillingCycle string

const (
	CycleMonthly   BillingCycle = "monthly"
	CycleQuarterly BillingCycle = "quarterly"
	CycleYearly    BillingCycle = "yearly"
)

func (c BillingCycle) IsValid() bool {
	switch c {
	case CycleMonthly, CycleQuarterly, CycleYearly:
		return true
	}
	return false
}

// Months returns the cycle length in calendar months.
func (c BillingCycle) Months() int {
	switch c {
	case CycleQuarterly:
		return 3
	case CycleYearly:
		return 12
	default:
		return 1
	}
}

// EndDate adds the cycle length to start in calendar months. When the target
// month is shorter than the start day, the result is clamped to the last day of
// that month (Jan 31 + 1 month = Feb 29 in a leap year), so it never spills over.
func (c BillingCycle) EndDate(start time.Time) time.Time {
	return AddMonthsClamped(start, c.Months())
}

// Interval maps the cycle onto the processor's recurring interval.
func (c BillingCycle) Interval() RecurringInterval {
	switch c {
	case CycleQuarterly:
		return RecurringInterval{Unit: "month", Count: 3}
	case CycleYearly:
		return RecurringInterval{Unit: "year", Count: 1}
	default:
		return RecurringInterval{Unit: "month", Count: 1}
	}
}

type RecurringInterval struct {
	Unit  string `json:"interval"`
	Count int    `json:"interval_count"`
}

func AddMonthsClamped(t time.Time, months int) time.Time {
	y, m, d := t.Date()
	firstOfTarget := time.Date(y, m+time.Month(months), 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	last := daysIn(firstOfTarget.Year(), firstOfTarget.Month())
	if d > last {
		d = last
	}
	return time.Date(firstOfTarget.Year(), firstOfTarget.Month(), d, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// SubscriptionFilter narrows subscription listings.
type SubscriptionFilter struct {
	Status  SubscriptionStatus
	Expired bool
	SortBy  string
	Page    int
	PerPage int
}

const (
	SortExpiring  = "expiring"
	SortPriceHigh = "price_high"
	SortPriceLow  = "price_low"
)

func (f SubscriptionFilter) Normalize() SubscriptionFilter {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PerPage < 1 {
		f.PerPage = DefaultPerPage
	}
	if f.PerPage > MaxPerPage {
		f.PerPage = MaxPerPage
	}
	switch f.SortBy {
	case SortRecent, SortExpiring, SortPriceHigh, SortPriceLow:
	default:
		f.SortBy = SortRecent
	}
	return f
}

func (f SubscriptionFilter) Offset() int {
	return (f.Page - 1) * f.PerPage
}

// CreatorSubscriptionStats summarises a creator's subscriber base.
type CreatorSubscriptionStats struct {
	MonthlyRevenue    decimal.Decimal `json:"total_monthly_revenue"`
	ActiveSubscribers int64           `json:"total_subscribers"`
	NewThisMonth      int64           `json:"new_this_month"`
}
