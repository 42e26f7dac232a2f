package impl

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"

	"anha/config"
	deliverycontext "anha/internal/delivery/context"
	"anha/internal/domain/entity"
	domainerrors "anha/internal/domain/errors"
	"anha/internal/domain/repository"
	"anha/internal/domain/service"
	"anha/internal/usecase"
)

const (
	defaultLookback      = 7 * 24 * time.Hour
	defaultLookupTimeout = 15 * time.Second
)

// paymentService implements the PaymentUsecase interface.
type paymentService struct {
	orderRepo     repository.OrderRepository
	statements    service.StatementService
	accountNumber string
	lookback      time.Duration
	lookupTimeout time.Duration
	logger        *slog.Logger
}

// PaymentServiceParams holds dependencies for paymentService, injected by Fx.
type PaymentServiceParams struct {
	fx.In

	OrderRepo  repository.OrderRepository
	Statements service.StatementService `optional:"true"`
	Config     *config.Config
	Logger     *slog.Logger
}

// NewPaymentService is the constructor for paymentService.
func NewPaymentService(params PaymentServiceParams) usecase.PaymentUsecase {
	srv := &paymentService{
		orderRepo:     params.OrderRepo,
		statements:    params.Statements,
		lookback:      defaultLookback,
		lookupTimeout: defaultLookupTimeout,
		logger:        params.Logger,
	}

	if params.Config != nil && params.Config.Bank != nil {
		bank := params.Config.Bank
		srv.accountNumber = bank.AccountNumber
		if bank.Lookback > 0 {
			srv.lookback = bank.Lookback
		}
		if bank.LookupTimeout > 0 {
			srv.lookupTimeout = bank.LookupTimeout
		}
	}

	return srv
}

func (srv *paymentService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// RunVerificationPass checks every unpaid bank-transfer order created inside
// the lookback window against the receiving account's statement. A lookup
// failure on one order is logged and the pass moves on; only failing to list
// the pending orders aborts the pass.
func (srv *paymentService) RunVerificationPass(ctx context.Context) (*usecase.VerificationResult, error) {
	if srv.statements == nil {
		return nil, domainerrors.ErrExternalLookup.WrapMessage("statement service is not configured")
	}

	since := time.Now().Add(-srv.lookback)
	pending, err := srv.orderRepo.FindPendingBankTransfers(ctx, since)
	if err != nil {
		return nil, domainerrors.ErrInternalError.WrapMessage("failed to list pending bank transfers")
	}

	result := &usecase.VerificationResult{}
	for _, order := range pending {
		result.Checked++

		paid, err := srv.checkOrder(ctx, order)
		if err != nil {
			result.Failed++
			srv.log(ctx).Error("Payment lookup failed",
				slog.String("orderID", order.ID.String()),
				slog.String("referenceCode", order.ReferenceCode()),
				slog.Any("error", err))

			continue
		}
		if !paid {
			continue
		}

		updated, err := srv.orderRepo.MarkPaid(ctx, order.ID, time.Now())
		if err != nil {
			result.Failed++
			srv.log(ctx).Error("Failed to mark order paid",
				slog.String("orderID", order.ID.String()),
				slog.Any("error", err))

			continue
		}
		if updated {
			result.Confirmed++
			srv.log(ctx).Info("Bank transfer confirmed",
				slog.String("orderID", order.ID.String()),
				slog.String("referenceCode", order.ReferenceCode()),
				slog.Int64("amount", order.TotalPrice))
		}
	}

	srv.log(ctx).Info("Verification pass finished",
		slog.Int("checked", result.Checked),
		slog.Int("confirmed", result.Confirmed),
		slog.Int("failed", result.Failed))

	return result, nil
}

// VerifyOrder checks a single order on demand and reports whether it is now
// paid. Unlike the background pass, a lookup failure here surfaces to the
// caller.
func (srv *paymentService) VerifyOrder(ctx context.Context, orderID uuid.UUID) (bool, error) {
	if srv.statements == nil {
		return false, domainerrors.ErrExternalLookup.WrapMessage("statement service is not configured")
	}

	order, err := srv.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return false, domainerrors.ErrOrderNotFound
		}

		return false, domainerrors.ErrInternalError.WrapMessage("failed to find order")
	}

	if order.PaymentMethod != entity.PaymentMethodBankTransfer {
		return false, domainerrors.ErrNotBankTransferOrder
	}
	if order.IsPaid {
		return true, nil
	}

	paid, err := srv.checkOrder(ctx, order)
	if err != nil {
		return false, domainerrors.ErrExternalLookup.WrapMessage("statement lookup failed")
	}
	if !paid {
		return false, nil
	}

	if _, err := srv.orderRepo.MarkPaid(ctx, order.ID, time.Now()); err != nil {
		return false, domainerrors.ErrInternalError.WrapMessage("failed to mark order paid")
	}

	srv.log(ctx).Info("Bank transfer confirmed",
		slog.String("orderID", order.ID.String()),
		slog.String("referenceCode", order.ReferenceCode()))

	return true, nil
}

// checkOrder queries the statement for one order under its own timeout so a
// slow bank API cannot stall the whole pass.
func (srv *paymentService) checkOrder(ctx context.Context, order *entity.Order) (bool, error) {
	lookupCtx, cancel := context.WithTimeout(ctx, srv.lookupTimeout)
	defer cancel()

	return srv.statements.CheckPayment(lookupCtx, service.StatementQuery{
		AccountNumber: srv.accountNumber,
		ReferenceCode: order.ReferenceCode(),
		Amount:        order.TotalPrice,
		FromDate:      order.CreatedAt,
		ToDate:        time.Now(),
	})
}
