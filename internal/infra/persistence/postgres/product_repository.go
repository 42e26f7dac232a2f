package postgres

import (
	"context"

	"anha/internal/domain/entity"
	domainerrors "anha/internal/domain/errors"
	"anha/internal/domain/repository"
	"anha/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// productRepository implements the domain's ProductRepository interface using GORM.
type productRepository struct {
	db *gorm.DB
}

// NewProductRepository is the constructor for productRepository.
func NewProductRepository(db *gorm.DB) repository.ProductRepository {
	return &productRepository{db: db}
}

func unitListOrder(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC, id ASC")
}

// FindByID retrieves a single product by its unique ID, preloading its unit list.
func (repo *productRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	var productM model.ProductModel
	err := repo.db.WithContext(ctx).
		Preload("Units", unitListOrder).
		First(&productM, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrProductNotFound
		}

		return nil, errors.Wrap(err, "failed to find product by id")
	}

	return toProductDomain(&productM), nil
}

// FindByBarcode retrieves a single product by its barcode.
func (repo *productRepository) FindByBarcode(ctx context.Context, barcode string) (*entity.Product, error) {
	var productM model.ProductModel
	err := repo.db.WithContext(ctx).
		Preload("Units", unitListOrder).
		First(&productM, "barcode = ?", barcode).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrProductNotFound
		}

		return nil, errors.Wrap(err, "failed to find product by barcode")
	}

	return toProductDomain(&productM), nil
}

// Search returns one page of products matching the keyword plus the total
// match count. An empty keyword matches everything.
func (repo *productRepository) Search(ctx context.Context, keyword string, page, pageSize int) ([]*entity.Product, int64, error) {
	countQuery := repo.db.WithContext(ctx).Model(&model.ProductModel{})
	listQuery := repo.db.WithContext(ctx).
		Preload("Units", unitListOrder).
		Order("created_at DESC, id ASC")

	if keyword != "" {
		pattern := "%" + keyword + "%"
		countQuery = countQuery.Where("name ILIKE ?", pattern)
		listQuery = listQuery.Where("name ILIKE ?", pattern)
	}

	var total int64
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to count products")
	}

	var productMs []*model.ProductModel
	err := listQuery.
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&productMs).Error
	if err != nil {
		return nil, 0, errors.Wrap(err, "failed to search products")
	}

	products := make([]*entity.Product, 0, len(productMs))
	for _, productM := range productMs {
		products = append(products, toProductDomain(productM))
	}

	return products, total, nil
}

// Create persists a new product with its unit list.
func (repo *productRepository) Create(ctx context.Context, product *entity.Product) error {
	productM := fromProductDomain(product)
	if productM.ID == uuid.Nil {
		productM.ID = uuid.New()
	}

	if err := repo.db.WithContext(ctx).Create(productM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrConflict.WrapMessage("barcode already exists")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create product")
	}

	product.ID = productM.ID
	product.CreatedAt = productM.CreatedAt
	product.UpdatedAt = productM.UpdatedAt

	return nil
}

// Update modifies an existing product, replacing its unit list wholesale.
func (repo *productRepository) Update(ctx context.Context, product *entity.Product) error {
	productM := fromProductDomain(product)

	err := repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.ProductModel{}).
			Where("id = ?", product.ID).
			Updates(map[string]any{
				"name":           productM.Name,
				"image":          productM.Image,
				"brand":          productM.Brand,
				"category":       productM.Category,
				"description":    productM.Description,
				"price":          productM.Price,
				"retail_price":   productM.RetailPrice,
				"count_in_stock": productM.CountInStock,
				"rating":         productM.Rating,
				"num_reviews":    productM.NumReviews,
				"barcode":        productM.Barcode,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return repository.ErrProductNotFound
		}

		if err := tx.Where("product_id = ?", product.ID).Delete(&model.UnitModel{}).Error; err != nil {
			return err
		}
		if len(productM.Units) > 0 {
			if err := tx.Create(productM.Units).Error; err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return repository.ErrProductNotFound
		}
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrConflict.WrapMessage("barcode already exists")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to update product")
	}

	return nil
}

// Delete removes a product and its units.
func (repo *productRepository) Delete(ctx context.Context, id uuid.UUID) error {
	err := repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", id).Delete(&model.UnitModel{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&model.ProductModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return repository.ErrProductNotFound
		}

		return nil
	})
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return repository.ErrProductNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to delete product")
	}

	return nil
}

func toProductDomain(productM *model.ProductModel) *entity.Product {
	units := make([]entity.Unit, 0, len(productM.Units))
	for _, unitM := range productM.Units {
		units = append(units, entity.Unit{
			Name:        unitM.Name,
			Ratio:       unitM.Ratio,
			Price:       unitM.Price,
			Image:       unitM.Image,
			Description: unitM.Description,
			IsDefault:   unitM.IsDefault,
			InStock:     unitM.InStock,
		})
	}

	return &entity.Product{
		ID:           productM.ID,
		Name:         productM.Name,
		Image:        productM.Image,
		Brand:        productM.Brand,
		Category:     productM.Category,
		Description:  productM.Description,
		Price:        productM.Price,
		RetailPrice:  productM.RetailPrice,
		CountInStock: productM.CountInStock,
		Rating:       productM.Rating,
		NumReviews:   productM.NumReviews,
		Barcode:      productM.Barcode,
		Units:        units,
		CreatedAt:    productM.CreatedAt,
		UpdatedAt:    productM.UpdatedAt,
	}
}

func fromProductDomain(product *entity.Product) *model.ProductModel {
	unitMs := make([]*model.UnitModel, 0, len(product.Units))
	for i, unit := range product.Units {
		unitMs = append(unitMs, &model.UnitModel{
			ProductID:   product.ID,
			Name:        unit.Name,
			Ratio:       unit.Ratio,
			Price:       unit.Price,
			Image:       unit.Image,
			Description: unit.Description,
			IsDefault:   unit.IsDefault,
			InStock:     unit.InStock,
			Position:    i,
		})
	}

	return &model.ProductModel{
		ID:           product.ID,
		Name:         product.Name,
		Image:        product.Image,
		Brand:        product.Brand,
		Category:     product.Category,
		Description:  product.Description,
		Price:        product.Price,
		RetailPrice:  product.RetailPrice,
		CountInStock: product.CountInStock,
		Rating:       product.Rating,
		NumReviews:   product.NumReviews,
		Barcode:      product.Barcode,
		Units:        unitMs,
	}
}
