package repository_test

import (
	"context"
	"fmt"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/honeynil/CreatorMonetizationService/internal/models"
	repository "github.com/honeynil/CreatorMonetizationService/internal/repository/postgres"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresAnalyticsRepository_MonthlyNetRevenue(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := repository.NewPostgresAnalyticsRepository(db)

	window := models.Window{
		From: time.Date(2023, time.December, 1, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC),
	}
	mock.ExpectQuery(regexp.QuoteMeta(`to_char(created_at AT TIME ZONE $2, 'YYYY-MM')`)).
		WithArgs(int64(2), "UTC", window.From, window.To).
		WillReturnRows(sqlmock.NewRows([]string{"month", "net"}).
			AddRow("2023-12", "11.40").
			AddRow("2024-01", "5.70"))

	months, err := repo.MonthlyNetRevenue(context.Background(), 2, window)
	require.NoError(t, err)
	require.Len(t, months, 2)
	assert.Equal(t, "2023-12", months[0].Month)
	assert.Equal(t, "5.70", months[1].Net.StringFixed(2))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresAnalyticsRepository_TopDocuments(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := repository.NewPostgresAnalyticsRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`JOIN documents d ON d.id = t.document_id`)).
		WithArgs(int64(2), 3).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "sales_count", "revenue"}).
			AddRow(int64(10), "Guide", int64(4), "22.80"))

	docs, err := repo.TopDocuments(context.Background(), 2, 3)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, int64(10), docs[0].DocumentID)
	assert.Equal(t, int64(4), docs[0].SalesCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresAnalyticsRepository_Aggregates(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := repository.NewPostgresAnalyticsRepository(db)
	ctx := context.Background()

	t.Run("SalesCounts", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`COUNT(*) FILTER (WHERE status = 'refunded')`)).
			WithArgs(int64(2)).
			WillReturnRows(sqlmock.NewRows([]string{"succeeded", "refunded"}).AddRow(int64(3), int64(1)))

		counts, err := repo.SalesCounts(ctx, 2)
		require.NoError(t, err)
		assert.Equal(t, models.SalesCounts{Succeeded: 3, Refunded: 1}, *counts)
	})

	t.Run("SalesTotalsRoundsTheAverage", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`COALESCE(AVG(amount), 0)`)).
			WithArgs(int64(2)).
			WillReturnRows(sqlmock.NewRows([]string{"net", "count", "avg"}).AddRow("17.10", int64(3), "6.3333333333"))

		totals, err := repo.SalesTotals(ctx, 2)
		require.NoError(t, err)
		assert.Equal(t, "17.10", totals.NetRevenue.StringFixed(2))
		assert.Equal(t, "6.33", totals.AverageAmount.String())
	})

	t.Run("PaymentMethodBreakdown", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`COALESCE(payment_method, 'unknown')`)).
			WithArgs(int64(2)).
			WillReturnRows(sqlmock.NewRows([]string{"method", "count"}).
				AddRow("Visa ending in 4242", int64(2)).
				AddRow("unknown", int64(1)))

		breakdown, err := repo.PaymentMethodBreakdown(ctx, 2)
		require.NoError(t, err)
		assert.Equal(t, map[string]int64{"Visa ending in 4242": 2, "unknown": 1}, breakdown)
	})

	t.Run("DocumentTraffic", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`FROM documents WHERE owner_id = $1`)).
			WithArgs(int64(2)).
			WillReturnRows(sqlmock.NewRows([]string{"views", "downloads"}).AddRow(int64(40), int64(2)))

		traffic, err := repo.DocumentTraffic(ctx, 2)
		require.NoError(t, err)
		assert.Equal(t, int64(40), traffic.Views)
	})

	t.Run("PendingPayoutsError", func(t *testing.T) {
		since := createdAt.AddDate(0, 0, -7)
		mock.ExpectQuery(regexp.QuoteMeta(`created_at >= $2`)).
			WithArgs(int64(2), since).
			WillReturnError(fmt.Errorf("database error"))

		total, err := repo.PendingPayouts(ctx, 2, since)
		require.Error(t, err)
		assert.True(t, total.IsZero())
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}
