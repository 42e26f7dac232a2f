package impl

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"anha/config"
	"anha/internal/domain/entity"
	domainerrors "anha/internal/domain/errors"
	domainservice "anha/internal/domain/service"
	mockRepo "anha/internal/mocks/repository"
	mockService "anha/internal/mocks/service"
	"anha/internal/usecase"
)

func newPaymentService(t *testing.T) (usecase.PaymentUsecase, *mockRepo.MockOrderRepository, *mockService.MockStatementService) {
	orderRepo := mockRepo.NewMockOrderRepository(t)
	statements := mockService.NewMockStatementService(t)
	svc := NewPaymentService(PaymentServiceParams{
		OrderRepo:  orderRepo,
		Statements: statements,
		Config: &config.Config{Bank: &config.BankConfig{
			AccountNumber: "0123456789",
			Lookback:      7 * 24 * time.Hour,
			LookupTimeout: time.Second,
		}},
		Logger: newTestLogger(),
	})

	return svc, orderRepo, statements
}

func pendingOrder(total int64) *entity.Order {
	return &entity.Order{
		ID:            uuid.New(),
		UserID:        uuid.New(),
		PaymentMethod: entity.PaymentMethodBankTransfer,
		TotalPrice:    total,
		CreatedAt:     time.Now().Add(-time.Hour),
	}
}

func TestPaymentService_RunVerificationPass_ConfirmsMatchedOrders(t *testing.T) {
	svc, orderRepo, statements := newPaymentService(t)
	ctx := context.Background()

	paid := pendingOrder(175000)
	unpaid := pendingOrder(240000)

	orderRepo.EXPECT().FindPendingBankTransfers(ctx, mock.AnythingOfType("time.Time")).
		Return([]*entity.Order{paid, unpaid}, nil)

	statements.EXPECT().CheckPayment(mock.Anything, mock.MatchedBy(func(q domainservice.StatementQuery) bool {
		return q.ReferenceCode == paid.ReferenceCode() && q.Amount == paid.TotalPrice
	})).Return(true, nil)
	statements.EXPECT().CheckPayment(mock.Anything, mock.MatchedBy(func(q domainservice.StatementQuery) bool {
		return q.ReferenceCode == unpaid.ReferenceCode()
	})).Return(false, nil)

	orderRepo.EXPECT().MarkPaid(ctx, paid.ID, mock.AnythingOfType("time.Time")).Return(true, nil)

	result, err := svc.RunVerificationPass(ctx)

	require.NoError(t, err)
	assert.Equal(t, 2, result.Checked)
	assert.Equal(t, 1, result.Confirmed)
	assert.Equal(t, 0, result.Failed)
}

func TestPaymentService_RunVerificationPass_LookupFailureDoesNotAbort(t *testing.T) {
	svc, orderRepo, statements := newPaymentService(t)
	ctx := context.Background()

	broken := pendingOrder(100000)
	healthy := pendingOrder(50000)

	orderRepo.EXPECT().FindPendingBankTransfers(ctx, mock.AnythingOfType("time.Time")).
		Return([]*entity.Order{broken, healthy}, nil)

	statements.EXPECT().CheckPayment(mock.Anything, mock.MatchedBy(func(q domainservice.StatementQuery) bool {
		return q.ReferenceCode == broken.ReferenceCode()
	})).Return(false, errors.New("bank api down"))
	statements.EXPECT().CheckPayment(mock.Anything, mock.MatchedBy(func(q domainservice.StatementQuery) bool {
		return q.ReferenceCode == healthy.ReferenceCode()
	})).Return(true, nil)

	orderRepo.EXPECT().MarkPaid(ctx, healthy.ID, mock.AnythingOfType("time.Time")).Return(true, nil)

	result, err := svc.RunVerificationPass(ctx)

	require.NoError(t, err)
	assert.Equal(t, 2, result.Checked)
	assert.Equal(t, 1, result.Confirmed)
	assert.Equal(t, 1, result.Failed)
}

func TestPaymentService_RunVerificationPass_ConcurrentFlipNotDoubleCounted(t *testing.T) {
	svc, orderRepo, statements := newPaymentService(t)
	ctx := context.Background()

	order := pendingOrder(175000)

	orderRepo.EXPECT().FindPendingBankTransfers(ctx, mock.AnythingOfType("time.Time")).
		Return([]*entity.Order{order}, nil)
	statements.EXPECT().CheckPayment(mock.Anything, mock.Anything).Return(true, nil)
	orderRepo.EXPECT().MarkPaid(ctx, order.ID, mock.AnythingOfType("time.Time")).Return(false, nil)

	result, err := svc.RunVerificationPass(ctx)

	require.NoError(t, err)
	assert.Equal(t, 0, result.Confirmed)
}

func TestPaymentService_VerifyOrder_AlreadyPaid(t *testing.T) {
	svc, orderRepo, _ := newPaymentService(t)
	ctx := context.Background()
	orderID := uuid.New()

	orderRepo.EXPECT().FindByID(ctx, orderID).
		Return(&entity.Order{ID: orderID, PaymentMethod: entity.PaymentMethodBankTransfer, IsPaid: true}, nil)

	paid, err := svc.VerifyOrder(ctx, orderID)

	require.NoError(t, err)
	assert.True(t, paid)
}

func TestPaymentService_VerifyOrder_LookupErrorSurfaces(t *testing.T) {
	svc, orderRepo, statements := newPaymentService(t)
	ctx := context.Background()
	order := pendingOrder(175000)

	orderRepo.EXPECT().FindByID(ctx, order.ID).Return(order, nil)
	statements.EXPECT().CheckPayment(mock.Anything, mock.Anything).Return(false, errors.New("timeout"))

	_, err := svc.VerifyOrder(ctx, order.ID)

	require.Error(t, err)
	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "EXTERNAL_LOOKUP_FAILED", appErr.ErrorCode())
}

func TestPaymentService_VerifyOrder_NotBankTransfer(t *testing.T) {
	svc, orderRepo, _ := newPaymentService(t)
	ctx := context.Background()
	orderID := uuid.New()

	orderRepo.EXPECT().FindByID(ctx, orderID).
		Return(&entity.Order{ID: orderID, PaymentMethod: entity.PaymentMethodCOD}, nil)

	_, err := svc.VerifyOrder(ctx, orderID)

	assert.ErrorIs(t, err, domainerrors.ErrNotBankTransferOrder)
}

func TestPaymentService_VerifyOrder_ConfirmsAndMarksPaid(t *testing.T) {
	svc, orderRepo, statements := newPaymentService(t)
	ctx := context.Background()
	order := pendingOrder(175000)

	orderRepo.EXPECT().FindByID(ctx, order.ID).Return(order, nil)
	statements.EXPECT().CheckPayment(mock.Anything, mock.MatchedBy(func(q domainservice.StatementQuery) bool {
		return q.AccountNumber == "0123456789" && q.ReferenceCode == order.ReferenceCode()
	})).Return(true, nil)
	orderRepo.EXPECT().MarkPaid(ctx, order.ID, mock.AnythingOfType("time.Time")).Return(true, nil)

	paid, err := svc.VerifyOrder(ctx, order.ID)

	require.NoError(t, err)
	assert.True(t, paid)
}
