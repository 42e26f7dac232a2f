package impl

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"anha/internal/domain/entity"
	domainerrors "anha/internal/domain/errors"
	"anha/internal/domain/repository"
	mockRepo "anha/internal/mocks/repository"
	mockService "anha/internal/mocks/service"
	"anha/internal/usecase"
)

func newOrderService(t *testing.T) (usecase.OrderUsecase, *mockRepo.MockTransactionManager, *mockRepo.MockOrderRepository, *mockService.MockPaymentQRService) {
	txManager := mockRepo.NewMockTransactionManager(t)
	orderRepo := mockRepo.NewMockOrderRepository(t)
	qrService := mockService.NewMockPaymentQRService(t)
	svc := NewOrderService(OrderServiceParams{
		TxManager: txManager,
		OrderRepo: orderRepo,
		QRService: qrService,
		Logger:    newTestLogger(),
	})

	return svc, txManager, orderRepo, qrService
}

func checkoutInput(method entity.PaymentMethod) *usecase.PlaceOrderInput {
	return &usecase.PlaceOrderInput{
		ShippingAddress: usecase.ShippingAddressInput{
			FullName:    "Nguyễn Văn A",
			Address:     "12 Lê Lợi",
			Province:    "Thành phố Hồ Chí Minh",
			PhoneNumber: "0901234567",
		},
		PaymentMethod: string(method),
	}
}

func TestOrderService_PlaceOrder_FreezesCartAndComputesTotals(t *testing.T) {
	svc, txManager, _, _ := newOrderService(t)
	ctx := context.Background()
	userID := uuid.New()

	cart := &entity.Cart{UserID: userID}
	cart.Upsert(&entity.CartLine{ProductID: uuid.New(), Name: "Bia 333", UnitPrice: 60000, Quantity: 2, Unit: entity.SelectedUnit{Name: "Lốc", Ratio: 4}})
	cart.Upsert(&entity.CartLine{ProductID: uuid.New(), Name: "Nước mắm", UnitPrice: 55000, Quantity: 1, Unit: entity.SelectedUnit{Name: "Chai", Ratio: 1}})

	var created *entity.Order
	txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			factory := mockRepo.NewMockRepositoryFactory(t)
			cartRepo := mockRepo.NewMockCartRepository(t)
			orderRepo := mockRepo.NewMockOrderRepository(t)

			factory.EXPECT().NewCartRepository().Return(cartRepo)
			factory.EXPECT().NewOrderRepository().Return(orderRepo)

			cartRepo.EXPECT().Load(ctx, userID).Return(cart, nil)
			orderRepo.EXPECT().Create(ctx, mock.AnythingOfType("*entity.Order")).
				Run(func(ctx context.Context, order *entity.Order) {
					created = order
				}).
				Return(nil)
			cartRepo.EXPECT().Clear(ctx, userID).Return(nil)

			return fn(factory)
		})

	order, err := svc.PlaceOrder(ctx, userID, checkoutInput(entity.PaymentMethodBankTransfer))

	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, int64(175000), order.ItemsPrice)
	assert.Equal(t, int64(175000), order.TotalPrice)
	assert.Len(t, order.Items, 2)
	assert.False(t, order.IsPaid)
	assert.Equal(t, entity.PaymentMethodBankTransfer, order.PaymentMethod)
}

func TestOrderService_PlaceOrder_EmptyCart(t *testing.T) {
	svc, txManager, _, _ := newOrderService(t)
	ctx := context.Background()
	userID := uuid.New()

	txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			factory := mockRepo.NewMockRepositoryFactory(t)
			cartRepo := mockRepo.NewMockCartRepository(t)
			orderRepo := mockRepo.NewMockOrderRepository(t)

			factory.EXPECT().NewCartRepository().Return(cartRepo)
			factory.EXPECT().NewOrderRepository().Return(orderRepo)

			cartRepo.EXPECT().Load(ctx, userID).Return(&entity.Cart{UserID: userID}, nil)

			return fn(factory)
		})

	_, err := svc.PlaceOrder(ctx, userID, checkoutInput(entity.PaymentMethodCOD))

	assert.ErrorIs(t, err, domainerrors.ErrCartEmpty)
}

func TestOrderService_PlaceOrder_InvalidPaymentMethod(t *testing.T) {
	svc, _, _, _ := newOrderService(t)

	_, err := svc.PlaceOrder(context.Background(), uuid.New(), checkoutInput("Gold"))

	assert.ErrorIs(t, err, domainerrors.ErrInvalidPaymentMethod)
}

func TestOrderService_GetOrder_OwnershipHidesForeignOrders(t *testing.T) {
	svc, _, orderRepo, _ := newOrderService(t)
	ctx := context.Background()
	owner := uuid.New()
	stranger := uuid.New()
	orderID := uuid.New()

	orderRepo.EXPECT().FindByID(ctx, orderID).Return(&entity.Order{ID: orderID, UserID: owner}, nil)

	_, err := svc.GetOrder(ctx, stranger, false, orderID)

	assert.ErrorIs(t, err, domainerrors.ErrOrderNotFound)
}

func TestOrderService_GetOrder_AdminSeesAll(t *testing.T) {
	svc, _, orderRepo, _ := newOrderService(t)
	ctx := context.Background()
	orderID := uuid.New()

	orderRepo.EXPECT().FindByID(ctx, orderID).Return(&entity.Order{ID: orderID, UserID: uuid.New()}, nil)

	order, err := svc.GetOrder(ctx, uuid.New(), true, orderID)

	require.NoError(t, err)
	assert.Equal(t, orderID, order.ID)
}

func TestOrderService_MarkPaid_AlreadyPaid(t *testing.T) {
	svc, _, orderRepo, _ := newOrderService(t)
	ctx := context.Background()
	orderID := uuid.New()
	paidAt := time.Now()

	orderRepo.EXPECT().FindByID(ctx, orderID).Return(&entity.Order{ID: orderID, IsPaid: true, PaidAt: &paidAt}, nil)

	_, err := svc.MarkPaid(ctx, orderID)

	assert.ErrorIs(t, err, domainerrors.ErrOrderAlreadyPaid)
}

func TestOrderService_MarkPaid_Success(t *testing.T) {
	svc, _, orderRepo, _ := newOrderService(t)
	ctx := context.Background()
	orderID := uuid.New()

	orderRepo.EXPECT().FindByID(ctx, orderID).Return(&entity.Order{ID: orderID}, nil)
	orderRepo.EXPECT().MarkPaid(ctx, orderID, mock.AnythingOfType("time.Time")).Return(true, nil)

	order, err := svc.MarkPaid(ctx, orderID)

	require.NoError(t, err)
	assert.True(t, order.IsPaid)
	assert.NotNil(t, order.PaidAt)
}

func TestOrderService_PaymentQR_RejectsNonBankTransfer(t *testing.T) {
	svc, _, orderRepo, _ := newOrderService(t)
	ctx := context.Background()
	userID := uuid.New()
	orderID := uuid.New()

	orderRepo.EXPECT().FindByID(ctx, orderID).
		Return(&entity.Order{ID: orderID, UserID: userID, PaymentMethod: entity.PaymentMethodCOD}, nil)

	_, err := svc.PaymentQR(ctx, userID, false, orderID)

	assert.ErrorIs(t, err, domainerrors.ErrNotBankTransferOrder)
}

func TestOrderService_PaymentQR_RejectsPaidOrder(t *testing.T) {
	svc, _, orderRepo, _ := newOrderService(t)
	ctx := context.Background()
	userID := uuid.New()
	orderID := uuid.New()

	orderRepo.EXPECT().FindByID(ctx, orderID).
		Return(&entity.Order{ID: orderID, UserID: userID, PaymentMethod: entity.PaymentMethodBankTransfer, IsPaid: true}, nil)

	_, err := svc.PaymentQR(ctx, userID, false, orderID)

	assert.ErrorIs(t, err, domainerrors.ErrOrderAlreadyPaid)
}

func TestOrderService_PaymentQR_Success(t *testing.T) {
	svc, _, orderRepo, qrService := newOrderService(t)
	ctx := context.Background()
	userID := uuid.New()
	orderID := uuid.New()

	order := &entity.Order{ID: orderID, UserID: userID, PaymentMethod: entity.PaymentMethodBankTransfer, TotalPrice: 175000}
	orderRepo.EXPECT().FindByID(ctx, orderID).Return(order, nil)
	qrService.EXPECT().PaymentQR(order).Return([]byte{0x89, 0x50, 0x4e, 0x47}, nil)

	png, err := svc.PaymentQR(ctx, userID, false, orderID)

	require.NoError(t, err)
	assert.NotEmpty(t, png)
}
