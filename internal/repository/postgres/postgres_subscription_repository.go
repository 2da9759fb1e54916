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

const subscriptionTracer = "subscription-repository"

const subscriptionColumns = `id, subscriber_id, creator_id, monthly_price, billing_cycle, status, start_date, end_date, cancelled_at, processor_ref, gateway_attempts, created_at, updated_at`

const updateSubscriptionQuery = `UPDATE subscriptions SET monthly_price = $2, billing_cycle = $3, status = $4, start_date = $5, end_date = $6, cancelled_at = $7, processor_ref = $8, gateway_attempts = $10, updated_at = NOW() WHERE id = $1 AND status = $9 RETURNING updated_at`

type PostgresSubscriptionRepository struct {
	db *sql.DB
}

func NewPostgresSubscriptionRepository(db *sql.DB) *PostgresSubscriptionRepository {
	return &PostgresSubscriptionRepository{db: db}
}

func (r *PostgresSubscriptionRepository) Create(ctx context.Context, sub *models.Subscription) (id int64, err error) {
	ctx, span, done := instrument(ctx, subscriptionTracer, "CreateSubscription")
	defer func() { done(err) }()

	if err = validateSubscription(sub); err != nil {
		slog.Error("invalid subscription", "method", "Create", "error", err)
		return 0, err
	}
	span.SetAttributes(
		attribute.Int64("subscriber_id", sub.SubscriberID),
		attribute.Int64("creator_id", sub.CreatorID),
		attribute.String("billing_cycle", string(sub.BillingCycle)),
	)

	query := `INSERT INTO subscriptions (subscriber_id, creator_id, monthly_price, billing_cycle, status, start_date, end_date, processor_ref, gateway_attempts) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id, created_at, updated_at`
	err = r.db.QueryRowContext(ctx, query,
		sub.SubscriberID,
		sub.CreatorID,
		sub.MonthlyPrice,
		sub.BillingCycle,
		sub.Status,
		sub.StartDate,
		sub.EndDate,
		nullString(sub.ProcessorRef),
		sub.GatewayAttempts,
	).Scan(&sub.ID, &sub.CreatedAt, &sub.UpdatedAt)
	if err != nil {
		if constraint, ok := uniqueConstraint(err); ok {
			err = fmt.Errorf("%w: subscriber %d, creator %d (%s)", pkgerrors.ErrAlreadySubscribed, sub.SubscriberID, sub.CreatorID, constraint)
			slog.Warn("subscription already exists", "method", "Create", "subscriber_id", sub.SubscriberID, "creator_id", sub.CreatorID)
			return 0, err
		}
		slog.Error("failed to create subscription", "method", "Create", "subscriber_id", sub.SubscriberID, "creator_id", sub.CreatorID, "error", err)
		return 0, fmt.Errorf("failed to create subscription: %w", err)
	}

	slog.Info("subscription created", "method", "Create", "id", sub.ID, "subscriber_id", sub.SubscriberID, "creator_id", sub.CreatorID, "status", sub.Status)
	return sub.ID, nil
}

func validateSubscription(sub *models.Subscription) error {
	if sub == nil {
		return pkgerrors.ErrNilSubscription
	}
	if !sub.BillingCycle.IsValid() {
		return pkgerrors.ErrInvalidBillingCycle
	}
	if !sub.Status.IsValid() {
		return pkgerrors.ErrInvalidSubscriptionStatus
	}
	if !sub.MonthlyPrice.IsPositive() {
		return fmt.Errorf("%w: monthly price must be positive", pkgerrors.ErrInvalidAmount)
	}
	if sub.SubscriberID == sub.CreatorID {
		return pkgerrors.ErrSelfTransactionNotAllowed
	}
	if !sub.EndDate.After(sub.StartDate) {
		return fmt.Errorf("%w: end date must follow start date", pkgerrors.ErrInvalidInput)
	}
	return nil
}

func (r *PostgresSubscriptionRepository) GetByID(ctx context.Context, id int64) (*models.Subscription, error) {
	return r.getOne(ctx, "GetSubscriptionByID", `id = $1`, id)
}

func (r *PostgresSubscriptionRepository) GetByPair(ctx context.Context, subscriberID, creatorID int64) (*models.Subscription, error) {
	return r.getOne(ctx, "GetSubscriptionByPair", `subscriber_id = $1 AND creator_id = $2`, subscriberID, creatorID)
}

func (r *PostgresSubscriptionRepository) GetByProcessorRef(ctx context.Context, processorRef string) (*models.Subscription, error) {
	return r.getOne(ctx, "GetSubscriptionByProcessorRef", `processor_ref = $1`, processorRef)
}

func (r *PostgresSubscriptionRepository) getOne(ctx context.Context, method, where string, args ...any) (sub *models.Subscription, err error) {
	ctx, _, done := instrument(ctx, subscriptionTracer, method)
	defer func() { done(err) }()

	query := `SELECT ` + subscriptionColumns + ` FROM subscriptions WHERE ` + where
	sub, err = scanSubscription(r.db.QueryRowContext(ctx, query, args...))
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, pkgerrors.ErrSubscriptionNotFound
	}
	if err != nil {
		slog.Error("failed to get subscription", "method", method, "args", args, "error", err)
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}
	return sub, nil
}

func (r *PostgresSubscriptionRepository) Update(ctx context.Context, sub *models.Subscription, expected models.SubscriptionStatus) (err error) {
	ctx, span, done := instrument(ctx, subscriptionTracer, "UpdateSubscription")
	defer func() { done(err) }()

	if err = validateSubscription(sub); err != nil {
		slog.Error("invalid subscription", "method", "Update", "error", err)
		return err
	}
	span.SetAttributes(
		attribute.Int64("subscription_id", sub.ID),
		attribute.String("from_status", string(expected)),
		attribute.String("to_status", string(sub.Status)),
	)

	err = updateSubscription(ctx, r.db.QueryRowContext, sub, expected)
	if err != nil {
		slog.Error("failed to update subscription", "method", "Update", "subscription_id", sub.ID, "expected", expected, "error", err)
		return err
	}

	slog.Info("subscription updated", "method", "Update", "subscription_id", sub.ID, "from", expected, "to", sub.Status)
	return nil
}

type queryRowFunc func(ctx context.Context, query string, args ...any) *sql.Row

func updateSubscription(ctx context.Context, queryRow queryRowFunc, sub *models.Subscription, expected models.SubscriptionStatus) error {
	err := queryRow(ctx, updateSubscriptionQuery,
		sub.ID,
		sub.MonthlyPrice,
		sub.BillingCycle,
		sub.Status,
		sub.StartDate,
		sub.EndDate,
		sub.CancelledAt,
		nullString(sub.ProcessorRef),
		expected,
		sub.GatewayAttempts,
	).Scan(&sub.UpdatedAt)
	if stderrors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: subscription %d is no longer %s", pkgerrors.ErrInvalidStateTransition, sub.ID, expected)
	}
	if err != nil {
		if constraint, ok := uniqueConstraint(err); ok {
			return fmt.Errorf("%w: %s", pkgerrors.ErrAlreadySubscribed, constraint)
		}
		return fmt.Errorf("failed to update subscription: %w", err)
	}
	return nil
}

func (r *PostgresSubscriptionRepository) RecordRenewal(ctx context.Context, sub *models.Subscription, expected models.SubscriptionStatus, payment *models.Transaction) (err error) {
	ctx, span, done := instrument(ctx, subscriptionTracer, "RecordSubscriptionRenewal")
	defer func() { done(err) }()

	if err = validateSubscription(sub); err != nil {
		return err
	}
	if err = validateTransaction(payment); err != nil {
		return err
	}
	span.SetAttributes(
		attribute.Int64("subscription_id", sub.ID),
		attribute.String("processor_ref", payment.ProcessorRef),
	)

	dbTx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		slog.Error("failed to begin transaction", "method", "RecordRenewal", "error", err)
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err = insertTransaction(ctx, dbTx, payment); err != nil {
		err = rollback(dbTx, "RecordRenewal", err)
		if stderrors.Is(err, pkgerrors.ErrDuplicateTransaction) {
			slog.Info("renewal already recorded", "method", "RecordRenewal", "subscription_id", sub.ID, "processor_ref", payment.ProcessorRef)
		} else {
			slog.Error("failed to record renewal payment", "method", "RecordRenewal", "subscription_id", sub.ID, "error", err)
		}
		return err
	}

	if err = updateSubscription(ctx, dbTx.QueryRowContext, sub, expected); err != nil {
		err = rollback(dbTx, "RecordRenewal", err)
		slog.Error("failed to advance subscription", "method", "RecordRenewal", "subscription_id", sub.ID, "error", err)
		return err
	}

	if err = dbTx.Commit(); err != nil {
		slog.Error("failed to commit transaction", "method", "RecordRenewal", "error", err)
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	slog.Info("subscription renewed", "method", "RecordRenewal", "subscription_id", sub.ID, "transaction_id", payment.ID, "end_date", sub.EndDate.Format(time.DateOnly))
	return nil
}

func (r *PostgresSubscriptionRepository) ListBySubscriber(ctx context.Context, subscriberID int64, filter models.SubscriptionFilter, now time.Time) ([]models.Subscription, int64, error) {
	return r.list(ctx, "ListSubscriptionsBySubscriber", "subscriber_id", subscriberID, filter, now)
}

func (r *PostgresSubscriptionRepository) ListByCreator(ctx context.Context, creatorID int64, filter models.SubscriptionFilter, now time.Time) ([]models.Subscription, int64, error) {
	return r.list(ctx, "ListSubscriptionsByCreator", "creator_id", creatorID, filter, now)
}

func (r *PostgresSubscriptionRepository) list(ctx context.Context, method, column string, userID int64, filter models.SubscriptionFilter, now time.Time) (subs []models.Subscription, total int64, err error) {
	ctx, span, done := instrument(ctx, subscriptionTracer, method)
	span.SetAttributes(attribute.Int64(column, userID))
	defer func() { done(err) }()

	filter = filter.Normalize()
	conds := []string{column + " = $1"}
	args := []any{userID}
	if filter.Status != "" {
		args = append(args, filter.Status)
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.Expired {
		args = append(args, now)
		conds = append(conds, fmt.Sprintf("end_date < $%d", len(args)))
	}
	where := strings.Join(conds, " AND ")

	if err = r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM subscriptions WHERE `+where, args...).Scan(&total); err != nil {
		slog.Error("failed to count subscriptions", "method", method, column, userID, "error", err)
		return nil, 0, fmt.Errorf("failed to count subscriptions: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM subscriptions WHERE %s ORDER BY %s LIMIT $%d OFFSET $%d`,
		subscriptionColumns, where, subscriptionOrder(filter.SortBy), len(args)+1, len(args)+2)
	rows, err := r.db.QueryContext(ctx, query, append(args, filter.PerPage, filter.Offset())...)
	if err != nil {
		slog.Error("failed to list subscriptions", "method", method, column, userID, "error", err)
		return nil, 0, fmt.Errorf("failed to list subscriptions: %w", err)
	}
	defer rows.Close()

	subs = make([]models.Subscription, 0, filter.PerPage)
	for rows.Next() {
		sub, scanErr := scanSubscription(rows)
		if scanErr != nil {
			err = fmt.Errorf("failed to scan subscription: %w", scanErr)
			return nil, 0, err
		}
		subs = append(subs, *sub)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate subscriptions: %w", err)
	}
	return subs, total, nil
}

func subscriptionOrder(sortBy string) string {
	switch sortBy {
	case models.SortExpiring:
		return "end_date ASC, id ASC"
	case models.SortPriceHigh:
		return "monthly_price DESC, id DESC"
	case models.SortPriceLow:
		return "monthly_price ASC, id ASC"
	default:
		return "created_at DESC, id DESC"
	}
}

func (r *PostgresSubscriptionRepository) CreatorStats(ctx context.Context, creatorID int64, since time.Time) (stats *models.CreatorSubscriptionStats, err error) {
	ctx, span, done := instrument(ctx, subscriptionTracer, "CreatorSubscriptionStats")
	span.SetAttributes(attribute.Int64("creator_id", creatorID))
	defer func() { done(err) }()

	query := `
		SELECT
			COALESCE(SUM(monthly_price) FILTER (WHERE status = 'active'), 0),
			COUNT(*) FILTER (WHERE status = 'active'),
			COUNT(*) FILTER (WHERE created_at >= $2)
		FROM subscriptions
		WHERE creator_id = $1
	`
	stats = &models.CreatorSubscriptionStats{}
	err = r.db.QueryRowContext(ctx, query, creatorID, since).Scan(&stats.MonthlyRevenue, &stats.ActiveSubscribers, &stats.NewThisMonth)
	if err != nil {
		slog.Error("failed to get creator stats", "method", "CreatorStats", "creator_id", creatorID, "error", err)
		return nil, fmt.Errorf("failed to get creator stats: %w", err)
	}
	return stats, nil
}

func scanSubscription(row rowScanner) (*models.Subscription, error) {
	var (
		sub          models.Subscription
		cancelledAt  sql.NullTime
		processorRef sql.NullString
	)
	err := row.Scan(
		&sub.ID,
		&sub.SubscriberID,
		&sub.CreatorID,
		&sub.MonthlyPrice,
		&sub.BillingCycle,
		&sub.Status,
		&sub.StartDate,
		&sub.EndDate,
		&cancelledAt,
		&processorRef,
		&sub.GatewayAttempts,
		&sub.CreatedAt,
		&sub.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if cancelledAt.Valid {
		sub.CancelledAt = &cancelledAt.Time
	}
	sub.ProcessorRef = processorRef.String
	return &sub, nil
}
