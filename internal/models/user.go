package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// User is the ledger's read-only view of an identity owned by the identity service.
type User struct {
	ID                       int64
	Email                    string
	FullName                 string
	IsCreator                bool
	CustomerRef              string
	DefaultSubscriptionPrice decimal.NullDecimal
	CreatedAt                time.Time
}
