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

// cartRepository implements the domain's CartRepository interface using GORM.
//
// The cart aggregate is always written back whole, so Save replaces the
// stored line set instead of diffing individual rows.
type cartRepository struct {
	db *gorm.DB
}

// NewCartRepository is the constructor for cartRepository.
func NewCartRepository(db *gorm.DB) repository.CartRepository {
	return &cartRepository{db: db}
}

// Load returns the user's cart. A user without stored lines gets an empty
// cart, never an error.
func (repo *cartRepository) Load(ctx context.Context, userID uuid.UUID) (*entity.Cart, error) {
	var lineMs []*model.CartLineModel
	err := repo.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&lineMs).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to load cart")
	}

	cart := &entity.Cart{UserID: userID}
	for _, lineM := range lineMs {
		cart.Lines = append(cart.Lines, toCartLineDomain(lineM))
	}

	return cart, nil
}

// Save replaces the stored line set with the cart's current lines.
func (repo *cartRepository) Save(ctx context.Context, cart *entity.Cart) error {
	err := repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", cart.UserID).Delete(&model.CartLineModel{}).Error; err != nil {
			return err
		}
		if len(cart.Lines) == 0 {
			return nil
		}

		lineMs := make([]*model.CartLineModel, 0, len(cart.Lines))
		for _, line := range cart.Lines {
			lineMs = append(lineMs, fromCartLineDomain(cart.UserID, line))
		}

		return tx.Create(lineMs).Error
	})
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to save cart")
	}

	return nil
}

// Clear drops every stored line for the user.
func (repo *cartRepository) Clear(ctx context.Context, userID uuid.UUID) error {
	err := repo.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&model.CartLineModel{}).Error
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to clear cart")
	}

	return nil
}

func toCartLineDomain(lineM *model.CartLineModel) *entity.CartLine {
	return &entity.CartLine{
		ProductID:    lineM.ProductID,
		Name:         lineM.Name,
		Image:        lineM.Image,
		UnitPrice:    lineM.UnitPrice,
		CountInStock: lineM.CountInStock,
		Quantity:     lineM.Quantity,
		Unit: entity.SelectedUnit{
			Name:        lineM.UnitName,
			Ratio:       lineM.UnitRatio,
			Image:       lineM.UnitImage,
			Description: lineM.UnitDescription,
		},
	}
}

func fromCartLineDomain(userID uuid.UUID, line *entity.CartLine) *model.CartLineModel {
	return &model.CartLineModel{
		UserID:          userID,
		ProductID:       line.ProductID,
		Name:            line.Name,
		Image:           line.Image,
		UnitPrice:       line.UnitPrice,
		CountInStock:    line.CountInStock,
		Quantity:        line.Quantity,
		UnitName:        line.Unit.Name,
		UnitRatio:       line.Unit.Ratio,
		UnitImage:       line.Unit.Image,
		UnitDescription: line.Unit.Description,
	}
}
