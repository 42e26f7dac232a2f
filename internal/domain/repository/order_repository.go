package repository

import (
	"context"
	"errors"
	"time"

	"anha/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrOrderNotFound is a domain-specific error returned when an order is not found.
var ErrOrderNotFound = errors.New("order not found")

// OrderRepository defines the standard operations for order persistence.
//
// Orders are written by request handling (checkout, admin actions) and by the
// payment verification worker concurrently, so paid-state mutations must be
// atomic single-row updates.
type OrderRepository interface {
	// Create persists a new order with its frozen item list.
	Create(ctx context.Context, order *entity.Order) error

	// FindByID retrieves a single order by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)

	// FindByUserID returns a user's orders, newest first.
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Order, error)

	// FindAll returns every order, newest first.
	FindAll(ctx context.Context) ([]*entity.Order, error)

	// FindPendingBankTransfers returns unpaid bank-transfer orders created
	// after since, in creation order.
	FindPendingBankTransfers(ctx context.Context, since time.Time) ([]*entity.Order, error)

	// MarkPaid atomically flips an unpaid order to paid. It returns false
	// when the order was already paid, so two concurrent verifiers can
	// never both claim the flip.
	MarkPaid(ctx context.Context, id uuid.UUID, paidAt time.Time) (bool, error)

	// MarkDelivered records the delivery timestamp.
	MarkDelivered(ctx context.Context, id uuid.UUID, deliveredAt time.Time) error

	// Delete removes an order and its items.
	Delete(ctx context.Context, id uuid.UUID) error
}
