package repository

import (
	"context"
	"time"

	"github.com/honeynil/CreatorMonetizationService/internal/models"
	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=analytics_repository.go -destination=mocks/mock_analytics_repository.go -package=mocks

// AnalyticsRepository reads committed (succeeded or refunded) transactions only.
type AnalyticsRepository interface {
	// MonthlyNetRevenue returns months with at least one succeeded sale, keyed "YYYY-MM" in window.Location.
	MonthlyNetRevenue(ctx context.Context, creatorID int64, window models.Window) ([]models.MonthlyRevenue, error)
	TopDocuments(ctx context.Context, creatorID int64, limit int) ([]models.DocumentSales, error)
	SalesCounts(ctx context.Context, creatorID int64) (*models.SalesCounts, error)
	SalesTotals(ctx context.Context, creatorID int64) (*models.SalesTotals, error)
	PaymentMethodBreakdown(ctx context.Context, creatorID int64) (map[string]int64, error)
	DocumentTraffic(ctx context.Context, creatorID int64) (*models.DocumentTraffic, error)
	PendingPayouts(ctx context.Context, creatorID int64, since time.Time) (decimal.Decimal, error)
}
