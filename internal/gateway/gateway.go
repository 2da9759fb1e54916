// Package gateway abstracts the external payment processor.
//
// A returned error means the outcome is unknown (network failure, timeout,
// processor 5xx) and wraps ErrGatewayUnavailable. A definitive answer,
// including a decline, comes back in the result with Success == false.
// CancelSubscription and ReactivateSubscription have no result, so a rejection
// there wraps ErrPaymentDeclined.
package gateway

import (
	"context"

	"github.com/honeynil/CreatorMonetizationService/internal/models"
	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=gateway.go -destination=mocks/mock_gateway.go -package=mocks

type PaymentGateway interface {
	Charge(ctx context.Context, req ChargeRequest) (*ChargeResult, error)
	Refund(ctx context.Context, req RefundRequest) (*RefundResult, error)
	CreateSubscription(ctx context.Context, req SubscriptionRequest) (*SubscriptionResult, error)
	CancelSubscription(ctx context.Context, subscriptionRef string) error
	ReactivateSubscription(ctx context.Context, subscriptionRef string) error
}

type ChargeRequest struct {
	IdempotencyKey   string
	Amount           decimal.Decimal
	PaymentMethodRef string
	CustomerRef      string
	Metadata         map[string]string
}

type ChargeResult struct {
	Success          bool
	ProcessorRef     string
	MethodDescriptor string
	FailureReason    string
}

type RefundRequest struct {
	IdempotencyKey string
	ChargeRef      string
	Reason         string
	Metadata       map[string]string
}

type RefundResult struct {
	Success       bool
	ProcessorRef  string
	FailureReason string
}

type SubscriptionRequest struct {
	IdempotencyKey   string
	CustomerRef      string
	PaymentMethodRef string
	Price            decimal.Decimal
	Interval         models.RecurringInterval
	Description      string
	Metadata         map[string]string
}

type SubscriptionResult struct {
	Success         bool
	SubscriptionRef string
	FailureReason   string
}

// RefundReason maps a free-text reason onto the processor's closed set.
func RefundReason(reason string) string {
	switch reason {
	case "duplicate", "fraudulent":
		return reason
	default:
		return "requested_by_customer"
	}
}
