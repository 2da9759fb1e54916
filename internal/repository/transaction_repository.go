package repository

import (
	"context"
	"time"

	"github.com/honeynil/CreatorMonetizationService/internal/models"
)

//go:generate mockgen -source=transaction_repository.go -destination=mocks/mock_transaction_repository.go -package=mocks

// TransactionRepository persists ledger records. Status changes are
// compare-and-set on the current status and return ErrInvalidStateTransition
// when the row has already moved on.
type TransactionRepository interface {
	// Create inserts tx and returns ErrDuplicateTransaction when its processor
	// reference is already taken.
	Create(ctx context.Context, tx *models.Transaction) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Transaction, error)
	GetByProcessorRef(ctx context.Context, processorRef string) (*models.Transaction, error)
	// MarkSucceeded moves a pending transaction to succeeded and, for document
	// purchases, increments the document download counter in the same unit.
	MarkSucceeded(ctx context.Context, id int64, chargeRef, paymentMethod string) (*models.Transaction, error)
	MarkFailed(ctx context.Context, id int64, chargeRef, reason string) (*models.Transaction, error)
	// MarkRefunded moves a succeeded transaction to refunded and reverses the
	// download increment, floored at zero.
	MarkRefunded(ctx context.Context, id int64, reason string, refundedAt time.Time) (*models.Transaction, error)
	ListByBuyer(ctx context.Context, buyerID int64, filter models.TransactionFilter) ([]models.Transaction, int64, error)
	ListBySeller(ctx context.Context, sellerID int64, filter models.TransactionFilter) ([]models.Transaction, int64, error)
}
