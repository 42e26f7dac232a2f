package service

import (
	"context"
	"time"
)

// StatementQuery describes one incoming-transfer lookup against the bank
// statement API.
type StatementQuery struct {
	AccountNumber string
	ReferenceCode string
	Amount        int64
	FromDate      time.Time
	ToDate        time.Time
}

// StatementService checks the receiving account's statement for a transfer
// matching the query. Implementations must honour context cancellation so
// callers can bound each lookup.
type StatementService interface {
	// CheckPayment reports whether a transfer with the query's amount and
	// reference code landed in the given window.
	CheckPayment(ctx context.Context, query StatementQuery) (bool, error)
}
