package impl

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"

	deliverycontext "anha/internal/delivery/context"
	"anha/internal/domain/entity"
	domainerrors "anha/internal/domain/errors"
	"anha/internal/domain/pricing"
	"anha/internal/domain/repository"
	"anha/internal/domain/service"
	"anha/internal/usecase"
)

// orderService implements the OrderUsecase interface.
type orderService struct {
	txManager repository.TransactionManager
	orderRepo repository.OrderRepository
	qrService service.PaymentQRService
	logger    *slog.Logger
}

// OrderServiceParams holds dependencies for orderService, injected by Fx.
type OrderServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	OrderRepo repository.OrderRepository
	QRService service.PaymentQRService `optional:"true"`
	Logger    *slog.Logger
}

// NewOrderService is the constructor for orderService.
func NewOrderService(params OrderServiceParams) usecase.OrderUsecase {
	return &orderService{
		txManager: params.TxManager,
		orderRepo: params.OrderRepo,
		qrService: params.QRService,
		logger:    params.Logger,
	}
}

func (srv *orderService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// PlaceOrder freezes the user's cart into an order and clears the cart in
// one transaction. Totals are recomputed from the frozen lines so client
// figures never reach storage.
func (srv *orderService) PlaceOrder(ctx context.Context, userID uuid.UUID, input *usecase.PlaceOrderInput) (*entity.Order, error) {
	method := entity.PaymentMethod(input.PaymentMethod)
	if !method.IsValid() {
		return nil, domainerrors.ErrInvalidPaymentMethod
	}

	var placed *entity.Order
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		cartRepo := repoFactory.NewCartRepository()
		orderRepo := repoFactory.NewOrderRepository()

		cart, err := cartRepo.Load(ctx, userID)
		if err != nil {
			return errors.Wrap(err, "failed to load cart")
		}
		if len(cart.Lines) == 0 {
			return domainerrors.ErrCartEmpty
		}

		items := make([]entity.OrderItem, 0, len(cart.Lines))
		for _, line := range cart.Lines {
			items = append(items, entity.OrderItem{
				ProductID: line.ProductID,
				Name:      line.Name,
				Image:     line.Image,
				UnitPrice: line.UnitPrice,
				Quantity:  line.Quantity,
				Unit:      line.Unit,
			})
		}
		totals := pricing.ComputeTotals(items)

		now := time.Now()
		order := &entity.Order{
			ID:     uuid.New(),
			UserID: userID,
			Items:  items,
			ShippingAddress: entity.ShippingAddress{
				FullName:       input.ShippingAddress.FullName,
				Address:        input.ShippingAddress.Address,
				Ward:           input.ShippingAddress.Ward,
				District:       input.ShippingAddress.District,
				Province:       input.ShippingAddress.Province,
				PostalCode:     input.ShippingAddress.PostalCode,
				Country:        input.ShippingAddress.Country,
				PhoneNumber:    input.ShippingAddress.PhoneNumber,
				DeliveryMethod: input.ShippingAddress.DeliveryMethod,
			},
			PaymentMethod: method,
			ItemsPrice:    totals.ItemsPrice,
			TotalPrice:    totals.TotalPrice,
			CreatedAt:     now,
			UpdatedAt:     now,
		}

		if err := orderRepo.Create(ctx, order); err != nil {
			return errors.Wrap(err, "failed to create order")
		}
		if err := cartRepo.Clear(ctx, userID); err != nil {
			return errors.Wrap(err, "failed to clear cart")
		}

		placed = order

		return nil
	})
	if err != nil {
		var appErr domainerrors.AppError
		if errors.As(err, &appErr) {
			return nil, err
		}

		return nil, domainerrors.ErrTransactionFailed.WrapMessage("failed to place order")
	}

	srv.log(ctx).Info("Order placed",
		slog.String("orderID", placed.ID.String()),
		slog.String("userID", userID.String()),
		slog.String("paymentMethod", string(placed.PaymentMethod)),
		slog.Int64("totalPrice", placed.TotalPrice))

	return placed, nil
}

// GetOrder returns one order. Non-admin callers only see their own orders;
// someone else's order reads as not found rather than forbidden.
func (srv *orderService) GetOrder(ctx context.Context, callerID uuid.UUID, isAdmin bool, orderID uuid.UUID) (*entity.Order, error) {
	order, err := srv.findOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !isAdmin && order.UserID != callerID {
		return nil, domainerrors.ErrOrderNotFound
	}

	return order, nil
}

// ListMyOrders returns the caller's orders, newest first.
func (srv *orderService) ListMyOrders(ctx context.Context, userID uuid.UUID) ([]*entity.Order, error) {
	orders, err := srv.orderRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, domainerrors.ErrInternalError.WrapMessage("failed to list orders")
	}

	return orders, nil
}

// ListOrders returns every order, newest first.
func (srv *orderService) ListOrders(ctx context.Context) ([]*entity.Order, error) {
	orders, err := srv.orderRepo.FindAll(ctx)
	if err != nil {
		return nil, domainerrors.ErrInternalError.WrapMessage("failed to list orders")
	}

	return orders, nil
}

// MarkPaid flags an order as paid.
func (srv *orderService) MarkPaid(ctx context.Context, orderID uuid.UUID) (*entity.Order, error) {
	order, err := srv.findOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.IsPaid {
		return nil, domainerrors.ErrOrderAlreadyPaid
	}

	paidAt := time.Now()
	updated, err := srv.orderRepo.MarkPaid(ctx, orderID, paidAt)
	if err != nil {
		return nil, domainerrors.ErrInternalError.WrapMessage("failed to mark order paid")
	}
	if !updated {
		return nil, domainerrors.ErrOrderAlreadyPaid
	}

	order.IsPaid = true
	order.PaidAt = &paidAt

	srv.log(ctx).Info("Order marked paid", slog.String("orderID", orderID.String()))

	return order, nil
}

// MarkDelivered flags an order as delivered.
func (srv *orderService) MarkDelivered(ctx context.Context, orderID uuid.UUID) (*entity.Order, error) {
	order, err := srv.findOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	deliveredAt := time.Now()
	if err := srv.orderRepo.MarkDelivered(ctx, orderID, deliveredAt); err != nil {
		return nil, domainerrors.ErrInternalError.WrapMessage("failed to mark order delivered")
	}

	order.IsDelivered = true
	order.DeliveredAt = &deliveredAt

	srv.log(ctx).Info("Order marked delivered", slog.String("orderID", orderID.String()))

	return order, nil
}

// Delete removes an order.
func (srv *orderService) Delete(ctx context.Context, orderID uuid.UUID) error {
	if err := srv.orderRepo.Delete(ctx, orderID); err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return domainerrors.ErrOrderNotFound
		}

		return domainerrors.ErrInternalError.WrapMessage("failed to delete order")
	}

	srv.log(ctx).Info("Order deleted", slog.String("orderID", orderID.String()))

	return nil
}

// PaymentQR renders the transfer QR for an unpaid bank-transfer order.
func (srv *orderService) PaymentQR(ctx context.Context, callerID uuid.UUID, isAdmin bool, orderID uuid.UUID) ([]byte, error) {
	if srv.qrService == nil {
		return nil, domainerrors.ErrNotBankTransferOrder.WrapMessage("bank transfer is not configured")
	}

	order, err := srv.GetOrder(ctx, callerID, isAdmin, orderID)
	if err != nil {
		return nil, err
	}
	if order.PaymentMethod != entity.PaymentMethodBankTransfer {
		return nil, domainerrors.ErrNotBankTransferOrder
	}
	if order.IsPaid {
		return nil, domainerrors.ErrOrderAlreadyPaid
	}

	png, err := srv.qrService.PaymentQR(order)
	if err != nil {
		return nil, domainerrors.ErrInternalError.WrapMessage("failed to render payment QR")
	}

	return png, nil
}

func (srv *orderService) findOrder(ctx context.Context, orderID uuid.UUID) (*entity.Order, error) {
	order, err := srv.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, domainerrors.ErrOrderNotFound
		}

		return nil, domainerrors.ErrInternalError.WrapMessage("failed to find order")
	}

	return order, nil
}
