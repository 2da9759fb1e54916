package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Transaction struct {
	ID            int64           `json:"id"`
	BuyerID       int64           `json:"buyer_id"`
	SellerID      int64           `json:"seller_id"`
	DocumentID    *int64          `json:"document_id,omitempty"`
	Tippable      *TippableRef    `json:"tippable,omitempty"`
	ProcessorRef  string          `json:"processor_ref"`
	ChargeRef     string          `json:"charge_ref,omitempty"`
	Amount        decimal.Decimal `json:"amount"`
	PlatformFee   decimal.Decimal `json:"platform_fee"`
	Status        StatusType      `json:"status"`
	Type          TransactionType `json:"transaction_type"`
	PaymentMethod string          `json:"payment_method,omitempty"`
	FailureReason string          `json:"failure_reason,omitempty"`
	RefundedAt    *time.Time      `json:"refunded_at,omitempty"`
	RefundReason  string          `json:"refund_reason,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// SellerEarnings is the amount remitted to the seller after the platform fee.
func (t *Transaction) SellerEarnings() decimal.Decimal {
	return t.Amount.Sub(t.PlatformFee)
}

// PlatformFeePercentage returns the fee as a percentage of the amount, rounded to 2 places.
func (t *Transaction) PlatformFeePercentage() decimal.Decimal {
	if t.Amount.IsZero() {
		return decimal.Zero
	}
	return t.PlatformFee.Div(t.Amount).Mul(decimal.NewFromInt(100)).Round(2)
}

func (t *Transaction) IsParticipant(userID int64) bool {
	return t.BuyerID == userID || t.SellerID == userID
}

type TransactionType string

const (
	TypeDocumentPurchase    TransactionType = "document_purchase"
	TypeTip                 TransactionType = "tip"
	TypeSubscriptionPayment TransactionType = "subscription_payment"
)

func (t TransactionType) IsValid() bool {
	switch t {
	case TypeDocumentPurchase, TypeTip, TypeSubscriptionPayment:
		return true
	}
	return false
}

type StatusType string

const (
	StatusPending   StatusType = "pending"
	StatusSucceeded StatusType = "succeeded"
	StatusFailed    StatusType = "failed"
	StatusRefunded  StatusType = "refunded"
)

func (s StatusType) IsValid() bool {
	switch s {
	case StatusPending, StatusSucceeded, StatusFailed, StatusRefunded:
		return true
	}
	return false
}

// CanTransitionTo reports whether the ledger state machine allows s -> next.
// pending -> succeeded|failed, succeeded -> refunded; everything else is terminal.
func (s StatusType) CanTransitionTo(next StatusType) bool {
	switch s {
	case StatusPending:
		return next == StatusSucceeded || next == StatusFailed
	case StatusSucceeded:
		return next == StatusRefunded
	}
	return false
}

// IsCommitted reports whether money moved for a transaction in this status.
func (s StatusType) IsCommitted() bool {
	return s == StatusSucceeded || s == StatusRefunded
}

// TippableKind is the closed set of entities a tip may reference.
type TippableKind string

const (
	TippableDocument   TippableKind = "document"
	TippableLiveStream TippableKind = "live_stream"
	TippableMessage    TippableKind = "message"
	TippablePost       TippableKind = "post"
)

func (k TippableKind) IsValid() bool {
	switch k {
	case TippableDocument, TippableLiveStream, TippableMessage, TippablePost:
		return true
	}
	return false
}

type TippableRef struct {
	Kind TippableKind `json:"kind"`
	ID   int64        `json:"id"`
}

// TransactionFilter narrows purchase and sales listings.
type TransactionFilter struct {
	Status  StatusType
	Type    TransactionType
	From    *time.Time
	To      *time.Time
	SortBy  string
	Page    int
	PerPage int
}

const (
	SortRecent     = "recent"
	SortAmountHigh = "amount_high"
	SortAmountLow  = "amount_low"

	DefaultPerPage = 20
	MaxPerPage     = 100
)

// Normalize fills in defaults and clamps paging values.
func (f TransactionFilter) Normalize() TransactionFilter {
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
	case SortRecent, SortAmountHigh, SortAmountLow:
	default:
		f.SortBy = SortRecent
	}
	return f
}

func (f TransactionFilter) Offset() int {
	return (f.Page - 1) * f.PerPage
}
