package repository

import (
	"context"
	"database/sql"
	stderrors "errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/honeynil/CreatorMonetizationService/internal/models"
	pkgerrors "github.com/honeynil/CreatorMonetizationService/pkg/errors"
	"go.opentelemetry.io/otel/attribute"
)

const transactionTracer = "transaction-repository"

const transactionColumns = `id, buyer_id, seller_id, document_id, tippable_type, tippable_id, processor_ref, charge_ref, amount, platform_fee, status, transaction_type, payment_method, failure_reason, refunded_at, refund_reason, created_at, updated_at`

const insertTransactionQuery = `INSERT INTO transactions (buyer_id, seller_id, document_id, tippable_type, tippable_id, processor_ref, charge_ref, amount, platform_fee, status, transaction_type, payment_method) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12) RETURNING id, created_at, updated_at`

type PostgresTransactionRepository struct {
	db *sql.DB
}

func NewPostgresTransactionRepository(db *sql.DB) *PostgresTransactionRepository {
	return &PostgresTransactionRepository{db: db}
}

func (r *PostgresTransactionRepository) Create(ctx context.Context, tx *models.Transaction) (id int64, err error) {
	ctx, span, done := instrument(ctx, transactionTracer, "CreateTransaction")
	defer func() { done(err) }()

	if err = validateTransaction(tx); err != nil {
		slog.Error("invalid transaction", "method", "Create", "error", err)
		return 0, err
	}

	span.SetAttributes(
		attribute.Int64("buyer_id", tx.BuyerID),
		attribute.Int64("seller_id", tx.SellerID),
		attribute.String("amount", tx.Amount.StringFixed(2)),
		attribute.String("type", string(tx.Type)),
		attribute.String("status", string(tx.Status)),
	)

	dbTx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		slog.Error("failed to begin transaction", "method", "Create", "error", err)
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err = insertTransaction(ctx, dbTx, tx); err != nil {
		err = rollback(dbTx, "Create", err)
		slog.Error("failed to create transaction", "method", "Create", "processor_ref", tx.ProcessorRef, "buyer_id", tx.BuyerID, "seller_id", tx.SellerID, "error", err)
		return 0, err
	}

	if err = dbTx.Commit(); err != nil {
		slog.Error("failed to commit transaction", "method", "Create", "error", err)
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	slog.Info("transaction created", "method", "Create", "id", tx.ID, "processor_ref", tx.ProcessorRef, "type", tx.Type, "status", tx.Status)
	return tx.ID, nil
}

func insertTransaction(ctx context.Context, dbTx *sql.Tx, tx *models.Transaction) error {
	var tippableType sql.NullString
	var tippableID sql.NullInt64
	if tx.Tippable != nil {
		tippableType = nullString(string(tx.Tippable.Kind))
		tippableID = nullInt64(&tx.Tippable.ID)
	}

	err := dbTx.QueryRowContext(ctx, insertTransactionQuery,
		tx.BuyerID,
		tx.SellerID,
		nullInt64(tx.DocumentID),
		tippableType,
		tippableID,
		tx.ProcessorRef,
		nullString(tx.ChargeRef),
		tx.Amount,
		tx.PlatformFee,
		tx.Status,
		tx.Type,
		nullString(tx.PaymentMethod),
	).Scan(&tx.ID, &tx.CreatedAt, &tx.UpdatedAt)
	if err != nil {
		if constraint, ok := uniqueConstraint(err); ok {
			return fmt.Errorf("%w: processor_ref %q (%s)", pkgerrors.ErrDuplicateTransaction, tx.ProcessorRef, constraint)
		}
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

func validateTransaction(tx *models.Transaction) error {
	if tx == nil {
		return pkgerrors.ErrNilTransaction
	}
	if !tx.Type.IsValid() {
		return pkgerrors.ErrInvalidTransactionType
	}
	if !tx.Status.IsValid() {
		return pkgerrors.ErrInvalidTransactionStatus
	}
	if !tx.Amount.IsPositive() {
		return fmt.Errorf("%w: amount must be positive", pkgerrors.ErrInvalidAmount)
	}
	if tx.PlatformFee.IsNegative() || tx.PlatformFee.GreaterThanOrEqual(tx.Amount) {
		return fmt.Errorf("%w: platform fee must be in [0, amount)", pkgerrors.ErrInvalidAmount)
	}
	if tx.ProcessorRef == "" {
		return fmt.Errorf("%w: processor_ref is required", pkgerrors.ErrInvalidInput)
	}
	if tx.Tippable != nil && !tx.Tippable.Kind.IsValid() {
		return fmt.Errorf("%w: tippable kind %q", pkgerrors.ErrInvalidInput, tx.Tippable.Kind)
	}
	return nil
}

func (r *PostgresTransactionRepository) GetByID(ctx context.Context, id int64) (tx *models.Transaction, err error) {
	ctx, span, done := instrument(ctx, transactionTracer, "GetTransactionByID")
	span.SetAttributes(attribute.Int64("transaction_id", id))
	defer func() { done(err) }()

	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = $1`
	tx, err = scanTransaction(r.db.QueryRowContext(ctx, query, id))
	if stderrors.Is(err, sql.ErrNoRows) {
		slog.Warn("transaction not found", "method", "GetByID", "transaction_id", id)
		return nil, pkgerrors.ErrTransactionNotFound
	}
	if err != nil {
		slog.Error("failed to get transaction by id", "method", "GetByID", "transaction_id", id, "error", err)
		return nil, fmt.Errorf("failed to get transaction by id: %w", err)
	}
	return tx, nil
}

func (r *PostgresTransactionRepository) GetByProcessorRef(ctx context.Context, processorRef string) (tx *models.Transaction, err error) {
	ctx, span, done := instrument(ctx, transactionTracer, "GetTransactionByProcessorRef")
	span.SetAttributes(attribute.String("processor_ref", processorRef))
	defer func() { done(err) }()

	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE processor_ref = $1`
	tx, err = scanTransaction(r.db.QueryRowContext(ctx, query, processorRef))
	if stderrors.Is(err, sql.ErrNoRows) {
		slog.Warn("transaction not found", "method", "GetByProcessorRef", "processor_ref", processorRef)
		return nil, pkgerrors.ErrTransactionNotFound
	}
	if err != nil {
		slog.Error("failed to get transaction by processor ref", "method", "GetByProcessorRef", "processor_ref", processorRef, "error", err)
		return nil, fmt.Errorf("failed to get transaction by processor ref: %w", err)
	}
	return tx, nil
}

func (r *PostgresTransactionRepository) MarkSucceeded(ctx context.Context, id int64, chargeRef, paymentMethod string) (tx *models.Transaction, err error) {
	ctx, span, done := instrument(ctx, transactionTracer, "MarkTransactionSucceeded")
	span.SetAttributes(attribute.Int64("transaction_id", id))
	defer func() { done(err) }()

	dbTx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		slog.Error("failed to begin transaction", "method", "MarkSucceeded", "error", err)
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}

	query := `UPDATE transactions SET status = 'succeeded', charge_ref = COALESCE(NULLIF($2, ''), charge_ref), payment_method = NULLIF($3, ''), updated_at = NOW() WHERE id = $1 AND status = 'pending' RETURNING ` + transactionColumns
	tx, err = scanTransaction(dbTx.QueryRowContext(ctx, query, id, chargeRef, paymentMethod))
	if stderrors.Is(err, sql.ErrNoRows) {
		err = rollback(dbTx, "MarkSucceeded", fmt.Errorf("%w: transaction %d is not pending", pkgerrors.ErrInvalidStateTransition, id))
		slog.Warn("transaction not pending", "method", "MarkSucceeded", "transaction_id", id)
		return nil, err
	}
	if err != nil {
		err = rollback(dbTx, "MarkSucceeded", fmt.Errorf("failed to mark transaction succeeded: %w", err))
		slog.Error("failed to mark transaction succeeded", "method", "MarkSucceeded", "transaction_id", id, "error", err)
		return nil, err
	}

	if tx.Type == models.TypeDocumentPurchase && tx.DocumentID != nil {
		if _, err = dbTx.ExecContext(ctx, `UPDATE documents SET download_count = download_count + 1 WHERE id = $1`, *tx.DocumentID); err != nil {
			err = rollback(dbTx, "MarkSucceeded", fmt.Errorf("failed to increment download count: %w", err))
			slog.Error("failed to increment download count", "method", "MarkSucceeded", "document_id", *tx.DocumentID, "error", err)
			return nil, err
		}
	}

	if err = dbTx.Commit(); err != nil {
		slog.Error("failed to commit transaction", "method", "MarkSucceeded", "error", err)
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	slog.Info("transaction succeeded", "method", "MarkSucceeded", "transaction_id", id, "charge_ref", tx.ChargeRef)
	return tx, nil
}

func (r *PostgresTransactionRepository) MarkFailed(ctx context.Context, id int64, chargeRef, reason string) (tx *models.Transaction, err error) {
	ctx, span, done := instrument(ctx, transactionTracer, "MarkTransactionFailed")
	span.SetAttributes(attribute.Int64("transaction_id", id))
	defer func() { done(err) }()

	query := `UPDATE transactions SET status = 'failed', charge_ref = COALESCE(NULLIF($2, ''), charge_ref), failure_reason = NULLIF($3, ''), updated_at = NOW() WHERE id = $1 AND status = 'pending' RETURNING ` + transactionColumns
	tx, err = scanTransaction(r.db.QueryRowContext(ctx, query, id, chargeRef, reason))
	if stderrors.Is(err, sql.ErrNoRows) {
		slog.Warn("transaction not pending", "method", "MarkFailed", "transaction_id", id)
		return nil, fmt.Errorf("%w: transaction %d is not pending", pkgerrors.ErrInvalidStateTransition, id)
	}
	if err != nil {
		slog.Error("failed to mark transaction failed", "method", "MarkFailed", "transaction_id", id, "error", err)
		return nil, fmt.Errorf("failed to mark transaction failed: %w", err)
	}

	slog.Info("transaction failed", "method", "MarkFailed", "transaction_id", id, "reason", reason)
	return tx, nil
}

func (r *PostgresTransactionRepository) MarkRefunded(ctx context.Context, id int64, reason string, refundedAt time.Time) (tx *models.Transaction, err error) {
	ctx, span, done := instrument(ctx, transactionTracer, "MarkTransactionRefunded")
	span.SetAttributes(attribute.Int64("transaction_id", id))
	defer func() { done(err) }()

	dbTx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		slog.Error("failed to begin transaction", "method", "MarkRefunded", "error", err)
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}

	query := `UPDATE transactions SET status = 'refunded', refunded_at = $2, refund_reason = NULLIF($3, ''), updated_at = NOW() WHERE id = $1 AND status = 'succeeded' RETURNING ` + transactionColumns
	tx, err = scanTransaction(dbTx.QueryRowContext(ctx, query, id, refundedAt, reason))
	if stderrors.Is(err, sql.ErrNoRows) {
		err = rollback(dbTx, "MarkRefunded", fmt.Errorf("%w: transaction %d is not succeeded", pkgerrors.ErrInvalidStateTransition, id))
		slog.Warn("transaction not refundable", "method", "MarkRefunded", "transaction_id", id)
		return nil, err
	}
	if err != nil {
		err = rollback(dbTx, "MarkRefunded", fmt.Errorf("failed to mark transaction refunded: %w", err))
		slog.Error("failed to mark transaction refunded", "method", "MarkRefunded", "transaction_id", id, "error", err)
		return nil, err
	}

	if tx.Type == models.TypeDocumentPurchase && tx.DocumentID != nil {
		if _, err = dbTx.ExecContext(ctx, `UPDATE documents SET download_count = GREATEST(download_count - 1, 0) WHERE id = $1`, *tx.DocumentID); err != nil {
			err = rollback(dbTx, "MarkRefunded", fmt.Errorf("failed to decrement download count: %w", err))
			slog.Error("failed to decrement download count", "method", "MarkRefunded", "document_id", *tx.DocumentID, "error", err)
			return nil, err
		}
	}

	if err = dbTx.Commit(); err != nil {
		slog.Error("failed to commit transaction", "method", "MarkRefunded", "error", err)
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	slog.Info("transaction refunded", "method", "MarkRefunded", "transaction_id", id)
	return tx, nil
}

func (r *PostgresTransactionRepository) ListByBuyer(ctx context.Context, buyerID int64, filter models.TransactionFilter) ([]models.Transaction, int64, error) {
	return r.list(ctx, "ListTransactionsByBuyer", "buyer_id", buyerID, filter)
}

func (r *PostgresTransactionRepository) ListBySeller(ctx context.Context, sellerID int64, filter models.TransactionFilter) ([]models.Transaction, int64, error) {
	return r.list(ctx, "ListTransactionsBySeller", "seller_id", sellerID, filter)
}

func (r *PostgresTransactionRepository) list(ctx context.Context, method, column string, userID int64, filter models.TransactionFilter) (txs []models.Transaction, total int64, err error) {
	ctx, span, done := instrument(ctx, transactionTracer, method)
	span.SetAttributes(attribute.Int64(column, userID))
	defer func() { done(err) }()

	filter = filter.Normalize()
	where, args := transactionFilterClause(column, userID, filter)

	if err = r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM transactions WHERE `+where, args...).Scan(&total); err != nil {
		slog.Error("failed to count transactions", "method", method, column, userID, "error", err)
		return nil, 0, fmt.Errorf("failed to count transactions: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM transactions WHERE %s ORDER BY %s LIMIT $%d OFFSET $%d`,
		transactionColumns, where, transactionOrder(filter.SortBy), len(args)+1, len(args)+2)
	rows, err := r.db.QueryContext(ctx, query, append(args, filter.PerPage, filter.Offset())...)
	if err != nil {
		slog.Error("failed to list transactions", "method", method, column, userID, "error", err)
		return nil, 0, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	txs = make([]models.Transaction, 0, filter.PerPage)
	for rows.Next() {
		tx, scanErr := scanTransaction(rows)
		if scanErr != nil {
			err = fmt.Errorf("failed to scan transaction: %w", scanErr)
			return nil, 0, err
		}
		txs = append(txs, *tx)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate transactions: %w", err)
	}
	return txs, total, nil
}

func transactionFilterClause(column string, userID int64, filter models.TransactionFilter) (string, []any) {
	conds := []string{column + " = $1"}
	args := []any{userID}
	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	if filter.Status != "" {
		add("status = $%d", filter.Status)
	}
	if filter.Type != "" {
		add("transaction_type = $%d", filter.Type)
	}
	if filter.From != nil {
		add("created_at >= $%d", *filter.From)
	}
	if filter.To != nil {
		add("created_at < $%d", *filter.To)
	}
	return strings.Join(conds, " AND "), args
}

func transactionOrder(sortBy string) string {
	switch sortBy {
	case models.SortAmountHigh:
		return "amount DESC, id DESC"
	case models.SortAmountLow:
		return "amount ASC, id ASC"
	default:
		return "created_at DESC, id DESC"
	}
}

func scanTransaction(row rowScanner) (*models.Transaction, error) {
	var (
		tx            models.Transaction
		documentID    sql.NullInt64
		tippableType  sql.NullString
		tippableID    sql.NullInt64
		chargeRef     sql.NullString
		paymentMethod sql.NullString
		failureReason sql.NullString
		refundedAt    sql.NullTime
		refundReason  sql.NullString
	)
	err := row.Scan(
		&tx.ID,
		&tx.BuyerID,
		&tx.SellerID,
		&documentID,
		&tippableType,
		&tippableID,
		&tx.ProcessorRef,
		&chargeRef,
		&tx.Amount,
		&tx.PlatformFee,
		&tx.Status,
		&tx.Type,
		&paymentMethod,
		&failureReason,
		&refundedAt,
		&refundReason,
		&tx.CreatedAt,
		&tx.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if documentID.Valid {
		tx.DocumentID = &documentID.Int64
	}
	if tippableType.Valid && tippableID.Valid {
		tx.Tippable = &models.TippableRef{Kind: models.TippableKind(tippableType.String), ID: tippableID.Int64}
	}
	if refundedAt.Valid {
		tx.RefundedAt = &refundedAt.Time
	}
	tx.ChargeRef = chargeRef.String
	tx.PaymentMethod = paymentMethod.String
	tx.FailureReason = failureReason.String
	tx.RefundReason = refundReason.String
	return &tx, nil
}
