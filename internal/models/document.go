package models

import "github.com/shopspring/decimal"

// Document is the part of a stored document the ledger cares about: who owns it,
// what it costs, and the counters purchases and views move.
type Document struct {
	ID            int64           `json:"id"`
	OwnerID       int64           `json:"owner_id"`
	Title         string          `json:"title"`
	Price         decimal.Decimal `json:"price"`
	DownloadCount int64           `json:"download_count"`
	ViewCount     int64           `json:"view_count"`
}

func (d *Document) IsFree() bool {
	return !d.Price.IsPositive()
}
