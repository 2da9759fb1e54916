package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type LedgerEventType string

const (
	EventTransactionSucceeded  LedgerEventType = "transaction.succeeded"
	EventTransactionFailed     LedgerEventType = "transaction.failed"
	EventTransactionRefunded   LedgerEventType = "transaction.refunded"
	EventSubscriptionActivated LedgerEventType = "subscription.activated"
	EventSubscriptionCanceled  LedgerEventType = "subscription.canceled"
	EventSubscriptionResumed   LedgerEventType = "subscription.reactivated"
	EventSubscriptionPastDue   LedgerEventType = "subscription.past_due"
	EventSubscriptionRenewed   LedgerEventType = "subscription.renewed"
	EventSubscriptionUnpaid    LedgerEventType = "subscription.unpaid"
)

// LedgerEvent is published after a ledger or subscription state change commits.
type LedgerEvent struct {
	EventID        string           `json:"event_id"`
	Type           LedgerEventType  `json:"type"`
	TransactionID  int64            `json:"transaction_id,omitempty"`
	SubscriptionID int64            `json:"subscription_id,omitempty"`
	BuyerID        int64            `json:"buyer_id,omitempty"`
	SellerID       int64            `json:"seller_id,omitempty"`
	Amount         *decimal.Decimal `json:"amount,omitempty"`
	PlatformFee    *decimal.Decimal `json:"platform_fee,omitempty"`
	Status         string           `json:"status"`
	OccurredAt     time.Time        `json:"occurred_at"`
}

type ProcessorEventType string

const (
	ProcessorChargeSucceeded     ProcessorEventType = "charge.succeeded"
	ProcessorChargeFailed        ProcessorEventType = "charge.failed"
	ProcessorInvoicePaid         ProcessorEventType = "invoice.paid"
	ProcessorInvoicePaymentFail  ProcessorEventType = "invoice.payment_failed"
	ProcessorSubscriptionUnpaid  ProcessorEventType = "subscription.unpaid"
	ProcessorSubscriptionDeleted ProcessorEventType = "subscription.deleted"
)

func (t ProcessorEventType) IsKnown() bool {
	switch t {
	case ProcessorChargeSucceeded, ProcessorChargeFailed, ProcessorInvoicePaid,
		ProcessorInvoicePaymentFail, ProcessorSubscriptionUnpaid, ProcessorSubscriptionDeleted:
		return true
	}
	return false
}

// BillingReasonCreate marks the invoice paid when a subscription is opened.
const BillingReasonCreate = "subscription_create"

// ProcessorEvent is a verified, normalised webhook notification from the processor.
type ProcessorEvent struct {
	ID              string             `json:"id"`
	Type            ProcessorEventType `json:"type"`
	IdempotencyKey  string             `json:"idempotency_key,omitempty"`
	ChargeRef       string             `json:"charge_ref,omitempty"`
	SubscriptionRef string             `json:"subscription_ref,omitempty"`
	// SubscriptionID is our id echoed back in the processor subscription's metadata.
	SubscriptionID  int64              `json:"subscription_id,omitempty"`
	InvoiceRef      string             `json:"invoice_ref,omitempty"`
	BillingReason   string             `json:"billing_reason,omitempty"`
	Amount          decimal.Decimal    `json:"amount"`
	PaymentMethod   string             `json:"payment_method,omitempty"`
	FailureReason   string             `json:"failure_reason,omitempty"`
	OccurredAt      time.Time          `json:"occurred_at"`
}
