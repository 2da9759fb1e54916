package service

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/honeynil/CreatorMonetizationService/internal/clock"
	"github.com/honeynil/CreatorMonetizationService/internal/fees"
	"github.com/honeynil/CreatorMonetizationService/internal/infrastructure/observability"
	"github.com/honeynil/CreatorMonetizationService/internal/infrastructure/redis"
	"github.com/honeynil/CreatorMonetizationService/internal/models"
	"github.com/honeynil/CreatorMonetizationService/internal/repository"
	pkgerrors "github.com/honeynil/CreatorMonetizationService/pkg/errors"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

//go:generate mockgen -source=analytics_service.go -destination=mocks/mock_analytics_service.go -package=mocks

const (
	DefaultTopDocuments  = 10
	MaxTopDocuments      = 100
	DefaultRevenueMonths = 12
	MaxRevenueMonths     = 60
	PendingPayoutWindow  = 7 * 24 * time.Hour
)

// AnalyticsService is read-only. Every figure is computed from succeeded or
// refunded transactions; pending and failed rows never count.
type AnalyticsService interface {
	RevenueReport(ctx context.Context, creatorID int64) (*models.RevenueReport, error)
	MonthlyRevenue(ctx context.Context, creatorID int64, from, to *time.Time) ([]models.MonthlyRevenue, error)
	TopDocuments(ctx context.Context, creatorID int64, limit int) ([]models.DocumentSales, error)
	RefundRate(ctx context.Context, creatorID int64) (decimal.Decimal, error)
	ConversionRate(ctx context.Context, creatorID int64) (*models.ConversionMetrics, error)
}

type analyticsService struct {
	analyticsRepo repository.AnalyticsRepository
	userRepo      repository.UserRepository
	cache         redis.RedisClient
	cacheTTL      time.Duration
	location      *time.Location
	clock         clock.Clock
}

func NewAnalyticsService(
	analyticsRepo repository.AnalyticsRepository,
	userRepo repository.UserRepository,
	cache redis.RedisClient,
	cacheTTL time.Duration,
	location *time.Location,
	clk clock.Clock,
) *analyticsService {
	if location == nil {
		location = time.UTC
	}
	return &analyticsService{
		analyticsRepo: analyticsRepo,
		userRepo:      userRepo,
		cache:         cache,
		cacheTTL:      cacheTTL,
		location:      location,
		clock:         clk,
	}
}

func (s *analyticsService) RevenueReport(ctx context.Context, creatorID int64) (*models.RevenueReport, error) {
	tracer := otel.Tracer("analytics-service")
	ctx, span := tracer.Start(ctx, "RevenueReport")
	defer span.End()
	span.SetAttributes(attribute.Int64("creator_id", creatorID))

	if err := s.requireCreator(ctx, creatorID); err != nil {
		span.RecordError(err)
		return nil, err
	}

	key := revenueReportKey(creatorID)
	cached, err := s.cache.Get(ctx, key)
	switch {
	case err == nil:
		var report models.RevenueReport
		if err := json.Unmarshal([]byte(cached), &report); err == nil {
			observability.AnalyticsCache.WithLabelValues("hit").Inc()
			return &report, nil
		}
		slog.Warn("discarding unreadable cached report", "method", "RevenueReport", "creator_id", creatorID)
	case stderrors.Is(err, redis.ErrKeyNotFound):
	default:
		slog.Warn("analytics cache unavailable", "method", "RevenueReport", "creator_id", creatorID, "error", err)
	}
	observability.AnalyticsCache.WithLabelValues("miss").Inc()

	report, err := s.buildReport(ctx, creatorID)
	if err != nil {
		span.SetStatus(codes.Error, "failed to build report")
		span.RecordError(err)
		return nil, err
	}

	if payload, err := json.Marshal(report); err == nil {
		if err := s.cache.Set(ctx, key, string(payload), s.cacheTTL); err != nil {
			slog.Warn("failed to cache revenue report", "method", "RevenueReport", "creator_id", creatorID, "error", err)
		}
	}
	return report, nil
}

func (s *analyticsService) buildReport(ctx context.Context, creatorID int64) (*models.RevenueReport, error) {
	now := s.clock.Now()

	window, err := s.window(nil, nil)
	if err != nil {
		return nil, err
	}
	monthly, err := s.monthly(ctx, creatorID, window)
	if err != nil {
		return nil, err
	}
	totals, err := s.analyticsRepo.SalesTotals(ctx, creatorID)
	if err != nil {
		return nil, err
	}
	top, err := s.analyticsRepo.TopDocuments(ctx, creatorID, DefaultTopDocuments)
	if err != nil {
		return nil, err
	}
	methods, err := s.analyticsRepo.PaymentMethodBreakdown(ctx, creatorID)
	if err != nil {
		return nil, err
	}
	counts, err := s.analyticsRepo.SalesCounts(ctx, creatorID)
	if err != nil {
		return nil, err
	}
	traffic, err := s.analyticsRepo.DocumentTraffic(ctx, creatorID)
	if err != nil {
		return nil, err
	}
	pending, err := s.analyticsRepo.PendingPayouts(ctx, creatorID, now.Add(-PendingPayoutWindow))
	if err != nil {
		return nil, err
	}

	return &models.RevenueReport{
		CreatorID:          creatorID,
		MonthlyRevenue:     monthly,
		TotalRevenue:       totals.NetRevenue,
		TotalTransactions:  totals.Transactions,
		AverageTransaction: totals.AverageAmount,
		TopDocuments:       top,
		PaymentMethods:     methods,
		RefundRate:         refundRate(counts),
		Conversion:         conversion(counts, traffic),
		PendingPayouts:     pending,
		GeneratedAt:        now,
	}, nil
}

func (s *analyticsService) MonthlyRevenue(ctx context.Context, creatorID int64, from, to *time.Time) ([]models.MonthlyRevenue, error) {
	tracer := otel.Tracer("analytics-service")
	ctx, span := tracer.Start(ctx, "MonthlyRevenue")
	defer span.End()
	span.SetAttributes(attribute.Int64("creator_id", creatorID))

	if err := s.requireCreator(ctx, creatorID); err != nil {
		span.RecordError(err)
		return nil, err
	}
	window, err := s.window(from, to)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return s.monthly(ctx, creatorID, window)
}

// window resolves the calendar months covered by [from, to] in the configured
// location. to is inclusive of its whole month; both default to the trailing
// twelve months ending with the current one.
func (s *analyticsService) window(from, to *time.Time) (models.Window, error) {
	now := s.clock.Now().In(s.location)
	end := monthStart(now).AddDate(0, 1, 0)
	if to != nil {
		end = monthStart(to.In(s.location)).AddDate(0, 1, 0)
	}
	start := end.AddDate(0, -DefaultRevenueMonths, 0)
	if from != nil {
		start = monthStart(from.In(s.location))
	}

	if !start.Before(end) {
		return models.Window{}, fmt.Errorf("%w: from must not be after to", pkgerrors.ErrInvalidInput)
	}
	if start.AddDate(0, MaxRevenueMonths, 0).Before(end) {
		return models.Window{}, fmt.Errorf("%w: window exceeds %d months", pkgerrors.ErrInvalidInput, MaxRevenueMonths)
	}
	return models.Window{From: start, To: end, Location: s.location}, nil
}

// monthly returns one entry per calendar month of the window, zero-filled.
func (s *analyticsService) monthly(ctx context.Context, creatorID int64, window models.Window) ([]models.MonthlyRevenue, error) {
	rows, err := s.analyticsRepo.MonthlyNetRevenue(ctx, creatorID, window)
	if err != nil {
		return nil, err
	}
	byMonth := make(map[string]decimal.Decimal, len(rows))
	for _, row := range rows {
		byMonth[row.Month] = row.Net
	}

	var months []models.MonthlyRevenue
	for m := window.From; m.Before(window.To); m = m.AddDate(0, 1, 0) {
		key := m.Format("2006-01")
		net, ok := byMonth[key]
		if !ok {
			net = decimal.Zero
		}
		months = append(months, models.MonthlyRevenue{Month: key, Net: net})
	}
	return months, nil
}

func (s *analyticsService) TopDocuments(ctx context.Context, creatorID int64, limit int) ([]models.DocumentSales, error) {
	tracer := otel.Tracer("analytics-service")
	ctx, span := tracer.Start(ctx, "TopDocuments")
	defer span.End()
	span.SetAttributes(attribute.Int64("creator_id", creatorID))

	if err := s.requireCreator(ctx, creatorID); err != nil {
		span.RecordError(err)
		return nil, err
	}
	if limit <= 0 {
		limit = DefaultTopDocuments
	}
	if limit > MaxTopDocuments {
		limit = MaxTopDocuments
	}
	return s.analyticsRepo.TopDocuments(ctx, creatorID, limit)
}

func (s *analyticsService) RefundRate(ctx context.Context, creatorID int64) (decimal.Decimal, error) {
	tracer := otel.Tracer("analytics-service")
	ctx, span := tracer.Start(ctx, "RefundRate")
	defer span.End()
	span.SetAttributes(attribute.Int64("creator_id", creatorID))

	if err := s.requireCreator(ctx, creatorID); err != nil {
		span.RecordError(err)
		return decimal.Zero, err
	}
	counts, err := s.analyticsRepo.SalesCounts(ctx, creatorID)
	if err != nil {
		span.RecordError(err)
		return decimal.Zero, err
	}
	return refundRate(counts), nil
}

func (s *analyticsService) ConversionRate(ctx context.Context, creatorID int64) (*models.ConversionMetrics, error) {
	tracer := otel.Tracer("analytics-service")
	ctx, span := tracer.Start(ctx, "ConversionRate")
	defer span.End()
	span.SetAttributes(attribute.Int64("creator_id", creatorID))

	if err := s.requireCreator(ctx, creatorID); err != nil {
		span.RecordError(err)
		return nil, err
	}
	counts, err := s.analyticsRepo.SalesCounts(ctx, creatorID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	traffic, err := s.analyticsRepo.DocumentTraffic(ctx, creatorID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	metrics := conversion(counts, traffic)
	return &metrics, nil
}

func (s *analyticsService) requireCreator(ctx context.Context, creatorID int64) error {
	user, err := s.userRepo.GetByID(ctx, creatorID)
	if err != nil {
		return err
	}
	if !user.IsCreator {
		return pkgerrors.ErrNotACreator
	}
	return nil
}

// refundRate is refunded / ever-succeeded. A refunded row was succeeded once,
// so the denominator counts both.
func refundRate(counts *models.SalesCounts) decimal.Decimal {
	return fees.Rate(counts.Refunded, counts.Succeeded+counts.Refunded)
}

func conversion(counts *models.SalesCounts, traffic *models.DocumentTraffic) models.ConversionMetrics {
	return models.ConversionMetrics{
		TotalViews:     traffic.Views,
		TotalDownloads: traffic.Downloads,
		ConversionRate: fees.Rate(counts.Succeeded, traffic.Views),
	}
}

func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}
