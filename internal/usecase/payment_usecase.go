package usecase

import (
	"context"

	"github.com/google/uuid"
)

// VerificationResult summarizes one verification pass over pending
// bank-transfer orders.
type VerificationResult struct {
	Checked   int `json:"checked"`
	Confirmed int `json:"confirmed"`
	Failed    int `json:"failed"`
}

// PaymentUsecase reconciles bank-transfer orders against the receiving
// account's statement.
type PaymentUsecase interface {
	// RunVerificationPass checks every recent unpaid bank-transfer order
	// and marks the ones whose transfer arrived. A lookup failure on one
	// order never aborts the pass.
	RunVerificationPass(ctx context.Context) (*VerificationResult, error)

	// VerifyOrder checks a single order on demand and reports whether it
	// is now paid.
	VerifyOrder(ctx context.Context, orderID uuid.UUID) (bool, error)
}
