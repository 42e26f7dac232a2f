package impl

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"

	deliverycontext "anha/internal/delivery/context"
	"anha/internal/domain/entity"
	domainerrors "anha/internal/domain/errors"
	"anha/internal/domain/pricing"
	"anha/internal/domain/repository"
	"anha/internal/usecase"
)

// cartService implements the CartUsecase interface.
type cartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	logger      *slog.Logger
}

// CartServiceParams holds dependencies for cartService, injected by Fx.
type CartServiceParams struct {
	fx.In

	CartRepo    repository.CartRepository
	ProductRepo repository.ProductRepository
	Logger      *slog.Logger
}

// NewCartService is the constructor for cartService.
func NewCartService(params CartServiceParams) usecase.CartUsecase {
	return &cartService{
		cartRepo:    params.CartRepo,
		productRepo: params.ProductRepo,
		logger:      params.Logger,
	}
}

func (srv *cartService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// GetCart returns the user's cart with freshly computed totals.
func (srv *cartService) GetCart(ctx context.Context, userID uuid.UUID) (*usecase.CartView, error) {
	cart, err := srv.cartRepo.Load(ctx, userID)
	if err != nil {
		return nil, domainerrors.ErrInternalError.WrapMessage("failed to load cart")
	}

	return cartView(cart), nil
}

// AddItem resolves the selected unit server-side and snapshots it into the
// cart. An existing (product, unit) line has its quantity replaced, not
// accumulated.
func (srv *cartService) AddItem(ctx context.Context, userID, productID uuid.UUID, unitName string, quantity int) (*usecase.CartView, error) {
	if quantity < 1 {
		return nil, domainerrors.ErrInvalidQuantity
	}

	product, err := srv.productRepo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, domainerrors.ErrProductNotFound
		}

		return nil, domainerrors.ErrInternalError.WrapMessage("failed to find product")
	}

	resolved, err := pricing.ResolveUnit(product, unitName)
	if err != nil {
		return nil, err
	}

	cart, err := srv.cartRepo.Load(ctx, userID)
	if err != nil {
		return nil, domainerrors.ErrInternalError.WrapMessage("failed to load cart")
	}

	cart.Upsert(&entity.CartLine{
		ProductID:    product.ID,
		Name:         product.Name,
		Image:        resolved.Image,
		UnitPrice:    resolved.UnitPrice,
		CountInStock: product.CountInStock,
		Quantity:     quantity,
		Unit: entity.SelectedUnit{
			Name:        resolved.Name,
			Ratio:       resolved.Ratio,
			Image:       resolved.Image,
			Description: resolved.Description,
		},
	})

	if err := srv.cartRepo.Save(ctx, cart); err != nil {
		return nil, domainerrors.ErrInternalError.WrapMessage("failed to save cart")
	}

	srv.log(ctx).Info("Cart line added",
		slog.String("userID", userID.String()),
		slog.String("productID", productID.String()),
		slog.String("unit", resolved.Name),
		slog.Int("quantity", quantity))

	return cartView(cart), nil
}

// RemoveItem drops the product's line. Removing an absent line is a no-op,
// not an error.
func (srv *cartService) RemoveItem(ctx context.Context, userID, productID uuid.UUID) (*usecase.CartView, error) {
	cart, err := srv.cartRepo.Load(ctx, userID)
	if err != nil {
		return nil, domainerrors.ErrInternalError.WrapMessage("failed to load cart")
	}

	if cart.Remove(productID) {
		if err := srv.cartRepo.Save(ctx, cart); err != nil {
			return nil, domainerrors.ErrInternalError.WrapMessage("failed to save cart")
		}
	}

	return cartView(cart), nil
}

// Clear empties the cart.
func (srv *cartService) Clear(ctx context.Context, userID uuid.UUID) error {
	if err := srv.cartRepo.Clear(ctx, userID); err != nil {
		return domainerrors.ErrInternalError.WrapMessage("failed to clear cart")
	}

	return nil
}

func cartView(cart *entity.Cart) *usecase.CartView {
	totals := pricing.ComputeTotals(cart.Lines)

	return &usecase.CartView{
		Lines:      cart.Lines,
		ItemsPrice: totals.ItemsPrice,
		TotalPrice: totals.TotalPrice,
	}
}
