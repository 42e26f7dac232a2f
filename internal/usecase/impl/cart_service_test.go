package impl

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"anha/internal/domain/entity"
	domainerrors "anha/internal/domain/errors"
	"anha/internal/domain/repository"
	mockRepo "anha/internal/mocks/repository"
	"anha/internal/usecase"
)

func newCartService(t *testing.T) (usecase.CartUsecase, *mockRepo.MockCartRepository, *mockRepo.MockProductRepository) {
	cartRepo := mockRepo.NewMockCartRepository(t)
	productRepo := mockRepo.NewMockProductRepository(t)
	svc := NewCartService(CartServiceParams{
		CartRepo:    cartRepo,
		ProductRepo: productRepo,
		Logger:      newTestLogger(),
	})

	return svc, cartRepo, productRepo
}

func beerProduct() *entity.Product {
	return &entity.Product{
		ID:    uuid.New(),
		Name:  "Bia 333",
		Image: "/images/bia333.jpg",
		Price: 240000,
		Units: []entity.Unit{
			{Name: "Thùng", Ratio: 1, IsDefault: true},
			{Name: "Lốc", Ratio: 4},
			{Name: "Lon", Ratio: 24},
		},
		CountInStock: 20,
	}
}

func TestCartService_AddItem_ResolvesUnitPrice(t *testing.T) {
	svc, cartRepo, productRepo := newCartService(t)
	ctx := context.Background()
	userID := uuid.New()
	product := beerProduct()

	productRepo.EXPECT().FindByID(ctx, product.ID).Return(product, nil)
	cartRepo.EXPECT().Load(ctx, userID).Return(&entity.Cart{UserID: userID}, nil)
	cartRepo.EXPECT().Save(ctx, mock.AnythingOfType("*entity.Cart")).Return(nil)

	view, err := svc.AddItem(ctx, userID, product.ID, "Lốc", 2)

	require.NoError(t, err)
	require.Len(t, view.Lines, 1)
	assert.Equal(t, int64(60000), view.Lines[0].UnitPrice)
	assert.Equal(t, "Lốc", view.Lines[0].Unit.Name)
	assert.Equal(t, int64(120000), view.ItemsPrice)
	assert.Equal(t, view.ItemsPrice, view.TotalPrice)
}

func TestCartService_AddItem_ReplacesQuantity(t *testing.T) {
	svc, cartRepo, productRepo := newCartService(t)
	ctx := context.Background()
	userID := uuid.New()
	product := beerProduct()

	existing := &entity.Cart{UserID: userID}
	existing.Upsert(&entity.CartLine{
		ProductID: product.ID,
		Name:      product.Name,
		UnitPrice: 60000,
		Quantity:  5,
		Unit:      entity.SelectedUnit{Name: "Lốc", Ratio: 4},
	})

	productRepo.EXPECT().FindByID(ctx, product.ID).Return(product, nil)
	cartRepo.EXPECT().Load(ctx, userID).Return(existing, nil)
	cartRepo.EXPECT().Save(ctx, mock.AnythingOfType("*entity.Cart")).Return(nil)

	view, err := svc.AddItem(ctx, userID, product.ID, "Lốc", 2)

	require.NoError(t, err)
	require.Len(t, view.Lines, 1)
	assert.Equal(t, 2, view.Lines[0].Quantity)
}

func TestCartService_AddItem_InvalidQuantity(t *testing.T) {
	svc, _, _ := newCartService(t)

	_, err := svc.AddItem(context.Background(), uuid.New(), uuid.New(), "Lốc", 0)

	assert.ErrorIs(t, err, domainerrors.ErrInvalidQuantity)
}

func TestCartService_AddItem_ProductNotFound(t *testing.T) {
	svc, _, productRepo := newCartService(t)
	ctx := context.Background()
	productID := uuid.New()

	productRepo.EXPECT().FindByID(ctx, productID).Return(nil, repository.ErrProductNotFound)

	_, err := svc.AddItem(ctx, uuid.New(), productID, "", 1)

	assert.ErrorIs(t, err, domainerrors.ErrProductNotFound)
}

func TestCartService_RemoveItem_AbsentLineIsNoop(t *testing.T) {
	svc, cartRepo, _ := newCartService(t)
	ctx := context.Background()
	userID := uuid.New()

	cartRepo.EXPECT().Load(ctx, userID).Return(&entity.Cart{UserID: userID}, nil)

	view, err := svc.RemoveItem(ctx, userID, uuid.New())

	require.NoError(t, err)
	assert.Empty(t, view.Lines)
}

func TestCartService_RemoveItem_SavesAfterRemoval(t *testing.T) {
	svc, cartRepo, _ := newCartService(t)
	ctx := context.Background()
	userID := uuid.New()
	productID := uuid.New()

	cart := &entity.Cart{UserID: userID}
	cart.Upsert(&entity.CartLine{
		ProductID: productID,
		UnitPrice: 10000,
		Quantity:  1,
		Unit:      entity.SelectedUnit{Name: "Lon", Ratio: 24},
	})

	cartRepo.EXPECT().Load(ctx, userID).Return(cart, nil)
	cartRepo.EXPECT().Save(ctx, cart).Return(nil)

	view, err := svc.RemoveItem(ctx, userID, productID)

	require.NoError(t, err)
	assert.Empty(t, view.Lines)
	assert.Equal(t, int64(0), view.TotalPrice)
}

func TestCartService_GetCart_ComputesTotals(t *testing.T) {
	svc, cartRepo, _ := newCartService(t)
	ctx := context.Background()
	userID := uuid.New()

	cart := &entity.Cart{UserID: userID}
	cart.Upsert(&entity.CartLine{ProductID: uuid.New(), UnitPrice: 10000, Quantity: 2, Unit: entity.SelectedUnit{Name: "Lon"}})
	cart.Upsert(&entity.CartLine{ProductID: uuid.New(), UnitPrice: 55000, Quantity: 1, Unit: entity.SelectedUnit{Name: "Lốc"}})

	cartRepo.EXPECT().Load(ctx, userID).Return(cart, nil)

	view, err := svc.GetCart(ctx, userID)

	require.NoError(t, err)
	assert.Equal(t, int64(75000), view.ItemsPrice)
	assert.Equal(t, int64(75000), view.TotalPrice)
}

func TestCartService_Clear(t *testing.T) {
	svc, cartRepo, _ := newCartService(t)
	ctx := context.Background()
	userID := uuid.New()

	cartRepo.EXPECT().Clear(ctx, userID).Return(nil)

	require.NoError(t, svc.Clear(ctx, userID))
}
