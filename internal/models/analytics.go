package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Window is a half-open [From, To) reporting range evaluated in Location.
type Window struct {
	From     time.Time
	To       time.Time
	Location *time.Location
}

type MonthlyRevenue struct {
	Month string          `json:"month"`
	Net   decimal.Decimal `json:"net"`
}

type DocumentSales struct {
	DocumentID int64           `json:"document_id"`
	Title      string          `json:"title"`
	SalesCount int64           `json:"sales_count"`
	Revenue    decimal.Decimal `json:"revenue"`
}

// SalesCounts are the committed-transaction counters analytics is derived from.
type SalesCounts struct {
	Succeeded int64 `json:"succeeded"`
	Refunded  int64 `json:"refunded"`
}

type SalesTotals struct {
	NetRevenue    decimal.Decimal `json:"net_revenue"`
	Transactions  int64           `json:"transactions"`
	AverageAmount decimal.Decimal `json:"average_amount"`
}

type DocumentTraffic struct {
	Views     int64 `json:"views"`
	Downloads int64 `json:"downloads"`
}

type ConversionMetrics struct {
	TotalViews     int64           `json:"total_views"`
	TotalDownloads int64           `json:"total_downloads"`
	ConversionRate decimal.Decimal `json:"conversion_rate"`
}

type RevenueReport struct {
	CreatorID          int64             `json:"creator_id"`
	MonthlyRevenue     []MonthlyRevenue  `json:"monthly_revenue"`
	TotalRevenue       decimal.Decimal   `json:"total_revenue"`
	TotalTransactions  int64             `json:"total_transactions"`
	AverageTransaction decimal.Decimal   `json:"average_transaction"`
	TopDocuments       []DocumentSales   `json:"top_documents"`
	PaymentMethods     map[string]int64  `json:"payment_methods"`
	RefundRate         decimal.Decimal   `json:"refund_rate"`
	Conversion         ConversionMetrics `json:"conversion_metrics"`
	PendingPayouts     decimal.Decimal   `json:"pending_payouts"`
	GeneratedAt        time.Time         `json:"generated_at"`
}
