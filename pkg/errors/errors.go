package errors

import (
	"errors"
)

var (
	// Ledger
	ErrInvalidAmount             = errors.New("invalid amount")
	ErrSelfTransactionNotAllowed = errors.New("self transaction not allowed")
	ErrDuplicateTransaction      = errors.New("duplicate transaction")
	ErrInvalidStateTransition    = errors.New("invalid state transition")
	ErrNotRefundable             = errors.New("transaction is not refundable")
	ErrAlreadyRefunded           = errors.New("transaction already refunded")
	ErrUnauthorized              = errors.New("unauthorized")
	ErrNilTransaction            = errors.New("transaction is nil")
	ErrInvalidTransactionType    = errors.New("invalid transaction type")
	ErrInvalidTransactionStatus  = errors.New("invalid transaction status")
	ErrTransactionNotFound       = errors.New("transaction not found")

	// Subscriptions
	ErrNotACreator               = errors.New("user is not a creator")
	ErrAlreadySubscribed         = errors.New("already subscribed to this creator")
	ErrNotCancelled              = errors.New("subscription is not cancelled")
	ErrNilSubscription           = errors.New("subscription is nil")
	ErrInvalidBillingCycle       = errors.New("invalid billing cycle")
	ErrInvalidSubscriptionStatus = errors.New("invalid subscription status")
	ErrSubscriptionNotFound      = errors.New("subscription not found")

	// Gateway
	ErrGatewayUnavailable      = errors.New("payment gateway unavailable")
	ErrPaymentDeclined         = errors.New("payment declined")
	ErrInvalidWebhookSignature = errors.New("invalid webhook signature")
	ErrInvalidWebhookPayload   = errors.New("invalid webhook payload")
	ErrEventIgnored            = errors.New("processor event ignored")

	// Collaborators
	ErrUserNotFound     = errors.New("user not found")
	ErrDocumentNotFound = errors.New("document not found")
	ErrInvalidInput     = errors.New("invalid input")
)
