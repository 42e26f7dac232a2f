// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"

	"anha/config"
	deliverycontext "anha/internal/delivery/context"
	"anha/internal/domain/entity"
	domainerrors "anha/internal/domain/errors"
	"anha/internal/domain/pricing"
	"anha/internal/domain/repository"
	"anha/internal/usecase"
)

const defaultPageSize = 12

// productService implements the ProductUsecase interface.
type productService struct {
	productRepo repository.ProductRepository
	pageSize    int
	logger      *slog.Logger
}

// ProductServiceParams holds dependencies for productService, injected by Fx.
type ProductServiceParams struct {
	fx.In

	ProductRepo repository.ProductRepository
	Config      *config.Config
	Logger      *slog.Logger
}

// NewProductService is the constructor for productService.
func NewProductService(params ProductServiceParams) usecase.ProductUsecase {
	pageSize := defaultPageSize
	if params.Config != nil && params.Config.Catalog != nil && params.Config.Catalog.PageSize > 0 {
		pageSize = params.Config.Catalog.PageSize
	}

	return &productService{
		productRepo: params.ProductRepo,
		pageSize:    pageSize,
		logger:      params.Logger,
	}
}

func (srv *productService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// List returns one page of the catalog, optionally filtered by keyword.
func (srv *productService) List(ctx context.Context, keyword string, page int) (*usecase.ProductPage, error) {
	if page < 1 {
		page = 1
	}

	products, total, err := srv.productRepo.Search(ctx, keyword, page, srv.pageSize)
	if err != nil {
		return nil, domainerrors.ErrInternalError.WrapMessage("failed to search products")
	}

	pages := int(math.Ceil(float64(total) / float64(srv.pageSize)))
	if pages < 1 {
		pages = 1
	}

	return &usecase.ProductPage{
		Products: products,
		Page:     page,
		Pages:    pages,
		Total:    total,
	}, nil
}

// Get returns one product by ID.
func (srv *productService) Get(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	product, err := srv.productRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, domainerrors.ErrProductNotFound
		}

		return nil, domainerrors.ErrInternalError.WrapMessage("failed to find product")
	}

	return product, nil
}

// GetByBarcode returns one product by barcode.
func (srv *productService) GetByBarcode(ctx context.Context, barcode string) (*entity.Product, error) {
	product, err := srv.productRepo.FindByBarcode(ctx, barcode)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, domainerrors.ErrProductNotFound
		}

		return nil, domainerrors.ErrInternalError.WrapMessage("failed to find product by barcode")
	}

	return product, nil
}

// CreateSample creates a placeholder product the admin then edits in place.
func (srv *productService) CreateSample(ctx context.Context) (*entity.Product, error) {
	now := time.Now()
	product := &entity.Product{
		ID:          uuid.New(),
		Name:        "Sản phẩm mẫu",
		Image:       "/images/sample.jpg",
		Brand:       "Thương hiệu mẫu",
		Category:    "Danh mục mẫu",
		Description: "Mô tả mẫu",
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := srv.productRepo.Create(ctx, product); err != nil {
		return nil, domainerrors.ErrInternalError.WrapMessage("failed to create product")
	}

	srv.log(ctx).Info("Sample product created", slog.String("productID", product.ID.String()))

	return product, nil
}

// Update replaces a product's fields. Submitted units go through
// normalization first; anything dropped or coerced is logged.
func (srv *productService) Update(ctx context.Context, id uuid.UUID, input *usecase.ProductInput) (*entity.Product, error) {
	product, err := srv.productRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, domainerrors.ErrProductNotFound
		}

		return nil, domainerrors.ErrInternalError.WrapMessage("failed to find product")
	}

	units, issues := pricing.NormalizeUnits(unitsFromInput(input.Units))
	for _, issue := range issues {
		srv.log(ctx).Warn("Product unit normalized",
			slog.String("productID", id.String()),
			slog.String("issue", issue))
	}

	product.Name = input.Name
	product.Image = input.Image
	product.Brand = input.Brand
	product.Category = input.Category
	product.Description = input.Description
	product.Price = input.Price
	product.RetailPrice = input.RetailPrice
	product.CountInStock = input.CountInStock
	product.Barcode = input.Barcode
	product.Units = units
	product.UpdatedAt = time.Now()

	if err := srv.productRepo.Update(ctx, product); err != nil {
		return nil, domainerrors.ErrInternalError.WrapMessage("failed to update product")
	}

	return product, nil
}

// Delete removes a product.
func (srv *productService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := srv.productRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return domainerrors.ErrProductNotFound
		}

		return domainerrors.ErrInternalError.WrapMessage("failed to delete product")
	}

	srv.log(ctx).Info("Product deleted", slog.String("productID", id.String()))

	return nil
}

func unitsFromInput(inputs []usecase.UnitInput) []entity.Unit {
	units := make([]entity.Unit, 0, len(inputs))
	for _, in := range inputs {
		units = append(units, entity.Unit{
			Name:        in.Name,
			Ratio:       in.Ratio,
			Price:       in.Price,
			Image:       in.Image,
			Description: in.Description,
			IsDefault:   in.IsDefault,
			InStock:     in.InStock,
		})
	}

	return units
}
