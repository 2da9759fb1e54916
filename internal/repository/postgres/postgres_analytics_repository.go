package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/honeynil/CreatorMonetizationService/internal/models"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
)

const analyticsTracer = "analytics-repository"

// PostgresAnalyticsRepository is read-only and only looks at committed rows.
type PostgresAnalyticsRepository struct {
	db *sql.DB
}

func NewPostgresAnalyticsRepository(db *sql.DB) *PostgresAnalyticsRepository {
	return &PostgresAnalyticsRepository{db: db}
}

func (r *PostgresAnalyticsRepository) MonthlyNetRevenue(ctx context.Context, creatorID int64, window models.Window) (months []models.MonthlyRevenue, err error) {
	ctx, span, done := instrument(ctx, analyticsTracer, "MonthlyNetRevenue")
	span.SetAttributes(attribute.Int64("creator_id", creatorID))
	defer func() { done(err) }()

	loc := window.Location
	if loc == nil {
		loc = time.UTC
	}

	query := `
		SELECT to_char(created_at AT TIME ZONE $2, 'YYYY-MM') AS month, SUM(amount - platform_fee)
		FROM transactions
		WHERE seller_id = $1 AND status = 'succeeded' AND created_at >= $3 AND created_at < $4
		GROUP BY month
		ORDER BY month
	`
	rows, err := r.db.QueryContext(ctx, query, creatorID, loc.String(), window.From, window.To)
	if err != nil {
		slog.Error("failed to query monthly revenue", "method", "MonthlyNetRevenue", "creator_id", creatorID, "error", err)
		return nil, fmt.Errorf("failed to query monthly revenue: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var m models.MonthlyRevenue
		if err = rows.Scan(&m.Month, &m.Net); err != nil {
			return nil, fmt.Errorf("failed to scan monthly revenue: %w", err)
		}
		months = append(months, m)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate monthly revenue: %w", err)
	}
	return months, nil
}

func (r *PostgresAnalyticsRepository) TopDocuments(ctx context.Context, creatorID int64, limit int) (docs []models.DocumentSales, err error) {
	ctx, span, done := instrument(ctx, analyticsTracer, "TopDocuments")
	span.SetAttributes(attribute.Int64("creator_id", creatorID), attribute.Int("limit", limit))
	defer func() { done(err) }()

	query := `
		SELECT d.id, d.title, COUNT(t.id) AS sales_count, SUM(t.amount - t.platform_fee) AS revenue
		FROM transactions t
		JOIN documents d ON d.id = t.document_id
		WHERE t.seller_id = $1 AND t.status = 'succeeded' AND t.transaction_type = 'document_purchase'
		GROUP BY d.id, d.title
		ORDER BY sales_count DESC, revenue DESC, d.id ASC
		LIMIT $2
	`
	rows, err := r.db.QueryContext(ctx, query, creatorID, limit)
	if err != nil {
		slog.Error("failed to query top documents", "method", "TopDocuments", "creator_id", creatorID, "error", err)
		return nil, fmt.Errorf("failed to query top documents: %w", err)
	}
	defer rows.Close()

	docs = make([]models.DocumentSales, 0, limit)
	for rows.Next() {
		var d models.DocumentSales
		if err = rows.Scan(&d.DocumentID, &d.Title, &d.SalesCount, &d.Revenue); err != nil {
			return nil, fmt.Errorf("failed to scan top document: %w", err)
		}
		docs = append(docs, d)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate top documents: %w", err)
	}
	return docs, nil
}

func (r *PostgresAnalyticsRepository) SalesCounts(ctx context.Context, creatorID int64) (counts *models.SalesCounts, err error) {
	ctx, span, done := instrument(ctx, analyticsTracer, "SalesCounts")
	span.SetAttributes(attribute.Int64("creator_id", creatorID))
	defer func() { done(err) }()

	query := `
		SELECT
			COUNT(*) FILTER (WHERE status = 'succeeded'),
			COUNT(*) FILTER (WHERE status = 'refunded')
		FROM transactions
		WHERE seller_id = $1 AND status IN ('succeeded', 'refunded')
	`
	counts = &models.SalesCounts{}
	if err = r.db.QueryRowContext(ctx, query, creatorID).Scan(&counts.Succeeded, &counts.Refunded); err != nil {
		slog.Error("failed to query sales counts", "method", "SalesCounts", "creator_id", creatorID, "error", err)
		return nil, fmt.Errorf("failed to query sales counts: %w", err)
	}
	return counts, nil
}

func (r *PostgresAnalyticsRepository) SalesTotals(ctx context.Context, creatorID int64) (totals *models.SalesTotals, err error) {
	ctx, span, done := instrument(ctx, analyticsTracer, "SalesTotals")
	span.SetAttributes(attribute.Int64("creator_id", creatorID))
	defer func() { done(err) }()

	query := `
		SELECT COALESCE(SUM(amount - platform_fee), 0), COUNT(*), COALESCE(AVG(amount), 0)
		FROM transactions
		WHERE seller_id = $1 AND status = 'succeeded'
	`
	totals = &models.SalesTotals{}
	if err = r.db.QueryRowContext(ctx, query, creatorID).Scan(&totals.NetRevenue, &totals.Transactions, &totals.AverageAmount); err != nil {
		slog.Error("failed to query sales totals", "method", "SalesTotals", "creator_id", creatorID, "error", err)
		return nil, fmt.Errorf("failed to query sales totals: %w", err)
	}
	totals.AverageAmount = totals.AverageAmount.Round(2)
	return totals, nil
}

func (r *PostgresAnalyticsRepository) PaymentMethodBreakdown(ctx context.Context, creatorID int64) (breakdown map[string]int64, err error) {
	ctx, span, done := instrument(ctx, analyticsTracer, "PaymentMethodBreakdown")
	span.SetAttributes(attribute.Int64("creator_id", creatorID))
	defer func() { done(err) }()

	query := `
		SELECT COALESCE(payment_method, 'unknown'), COUNT(*)
		FROM transactions
		WHERE seller_id = $1 AND status = 'succeeded'
		GROUP BY 1
	`
	rows, err := r.db.QueryContext(ctx, query, creatorID)
	if err != nil {
		slog.Error("failed to query payment methods", "method", "PaymentMethodBreakdown", "creator_id", creatorID, "error", err)
		return nil, fmt.Errorf("failed to query payment methods: %w", err)
	}
	defer rows.Close()

	breakdown = make(map[string]int64)
	for rows.Next() {
		var (
			method string
			count  int64
		)
		if err = rows.Scan(&method, &count); err != nil {
			return nil, fmt.Errorf("failed to scan payment method: %w", err)
		}
		breakdown[method] = count
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate payment methods: %w", err)
	}
	return breakdown, nil
}

func (r *PostgresAnalyticsRepository) DocumentTraffic(ctx context.Context, creatorID int64) (traffic *models.DocumentTraffic, err error) {
	ctx, span, done := instrument(ctx, analyticsTracer, "DocumentTraffic")
	span.SetAttributes(attribute.Int64("creator_id", creatorID))
	defer func() { done(err) }()

	query := `SELECT COALESCE(SUM(view_count), 0), COALESCE(SUM(download_count), 0) FROM documents WHERE owner_id = $1`
	traffic = &models.DocumentTraffic{}
	if err = r.db.QueryRowContext(ctx, query, creatorID).Scan(&traffic.Views, &traffic.Downloads); err != nil {
		slog.Error("failed to query document traffic", "method", "DocumentTraffic", "creator_id", creatorID, "error", err)
		return nil, fmt.Errorf("failed to query document traffic: %w", err)
	}
	return traffic, nil
}

func (r *PostgresAnalyticsRepository) PendingPayouts(ctx context.Context, creatorID int64, since time.Time) (total decimal.Decimal, err error) {
	ctx, span, done := instrument(ctx, analyticsTracer, "PendingPayouts")
	span.SetAttributes(attribute.Int64("creator_id", creatorID))
	defer func() { done(err) }()

	query := `
		SELECT COALESCE(SUM(amount - platform_fee), 0)
		FROM transactions
		WHERE seller_id = $1 AND status = 'succeeded' AND created_at >= $2
	`
	if err = r.db.QueryRowContext(ctx, query, creatorID, since).Scan(&total); err != nil {
		slog.Error("failed to query pending payouts", "method", "PendingPayouts", "creator_id", creatorID, "error", err)
		return decimal.Zero, fmt.Errorf("failed to query pending payouts: %w", err)
	}
	return total, nil
}
