package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"anha/config"
	"anha/internal/domain/entity"
	domainerrors "anha/internal/domain/errors"
	"anha/internal/domain/repository"
	mockRepo "anha/internal/mocks/repository"
	"anha/internal/usecase"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newProductService(t *testing.T) (usecase.ProductUsecase, *mockRepo.MockProductRepository) {
	productRepo := mockRepo.NewMockProductRepository(t)
	svc := NewProductService(ProductServiceParams{
		ProductRepo: productRepo,
		Config:      &config.Config{Catalog: &config.CatalogConfig{PageSize: 12}},
		Logger:      newTestLogger(),
	})

	return svc, productRepo
}

func TestProductService_List_Pagination(t *testing.T) {
	svc, productRepo := newProductService(t)
	ctx := context.Background()

	products := []*entity.Product{{ID: uuid.New(), Name: "Bia 333"}}
	productRepo.EXPECT().Search(ctx, "bia", 2, 12).Return(products, int64(25), nil)

	page, err := svc.List(ctx, "bia", 2)

	require.NoError(t, err)
	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 3, page.Pages)
	assert.Equal(t, int64(25), page.Total)
	assert.Len(t, page.Products, 1)
}

func TestProductService_List_PageBelowOne(t *testing.T) {
	svc, productRepo := newProductService(t)
	ctx := context.Background()

	productRepo.EXPECT().Search(ctx, "", 1, 12).Return(nil, int64(0), nil)

	page, err := svc.List(ctx, "", 0)

	require.NoError(t, err)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 1, page.Pages)
}

func TestProductService_Get_NotFound(t *testing.T) {
	svc, productRepo := newProductService(t)
	ctx := context.Background()
	id := uuid.New()

	productRepo.EXPECT().FindByID(ctx, id).Return(nil, repository.ErrProductNotFound)

	_, err := svc.Get(ctx, id)

	assert.ErrorIs(t, err, domainerrors.ErrProductNotFound)
}

func TestProductService_GetByBarcode_Success(t *testing.T) {
	svc, productRepo := newProductService(t)
	ctx := context.Background()

	product := &entity.Product{ID: uuid.New(), Name: "Nước mắm"}
	productRepo.EXPECT().FindByBarcode(ctx, "8934567890123").Return(product, nil)

	got, err := svc.GetByBarcode(ctx, "8934567890123")

	require.NoError(t, err)
	assert.Equal(t, product.ID, got.ID)
}

func TestProductService_CreateSample_Success(t *testing.T) {
	svc, productRepo := newProductService(t)
	ctx := context.Background()

	productRepo.EXPECT().Create(ctx, mock.AnythingOfType("*entity.Product")).Return(nil)

	product, err := svc.CreateSample(ctx)

	require.NoError(t, err)
	assert.Equal(t, "Sản phẩm mẫu", product.Name)
	assert.NotEqual(t, uuid.Nil, product.ID)
}

func TestProductService_Update_NormalizesUnits(t *testing.T) {
	svc, productRepo := newProductService(t)
	ctx := context.Background()
	id := uuid.New()

	existing := &entity.Product{ID: id, Name: "Cũ"}
	productRepo.EXPECT().FindByID(ctx, id).Return(existing, nil)

	var saved *entity.Product
	productRepo.EXPECT().Update(ctx, mock.AnythingOfType("*entity.Product")).
		Run(func(ctx context.Context, product *entity.Product) {
			saved = product
		}).
		Return(nil)

	badPrice := int64(-5)
	input := &usecase.ProductInput{
		Name:  "Bia 333",
		Price: 240000,
		Units: []usecase.UnitInput{
			{Name: "Thùng", Ratio: 1, IsDefault: true},
			{Name: "Lon", Ratio: 0, Price: &badPrice},
			{Name: ""},
		},
	}

	updated, err := svc.Update(ctx, id, input)

	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, "Bia 333", updated.Name)
	require.Len(t, saved.Units, 2)
	assert.Equal(t, float64(1), saved.Units[1].Ratio)
	assert.Nil(t, saved.Units[1].Price)
}

func TestProductService_Update_NotFound(t *testing.T) {
	svc, productRepo := newProductService(t)
	ctx := context.Background()
	id := uuid.New()

	productRepo.EXPECT().FindByID(ctx, id).Return(nil, repository.ErrProductNotFound)

	_, err := svc.Update(ctx, id, &usecase.ProductInput{Name: "x"})

	assert.ErrorIs(t, err, domainerrors.ErrProductNotFound)
}

func TestProductService_Delete_RepoError(t *testing.T) {
	svc, productRepo := newProductService(t)
	ctx := context.Background()
	id := uuid.New()

	productRepo.EXPECT().Delete(ctx, id).Return(errors.New("boom"))

	err := svc.Delete(ctx, id)

	require.Error(t, err)
	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "INTERNAL_ERROR", appErr.ErrorCode())
}
