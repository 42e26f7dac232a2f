package postgres

import (
	"context"
	"time"

	"anha/internal/domain/entity"
	domainerrors "anha/internal/domain/errors"
	"anha/internal/domain/repository"
	"anha/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// orderRepository implements the domain's OrderRepository interface using GORM.
type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository is the constructor for orderRepository.
func NewOrderRepository(db *gorm.DB) repository.OrderRepository {
	return &orderRepository{db: db}
}

func orderItemListOrder(db *gorm.DB) *gorm.DB {
	return db.Order("id ASC")
}

// Create persists a new order with its frozen item list.
func (repo *orderRepository) Create(ctx context.Context, order *entity.Order) error {
	orderM := fromOrderDomain(order)
	if orderM.ID == uuid.Nil {
		orderM.ID = uuid.New()
		for _, itemM := range orderM.Items {
			itemM.OrderID = orderM.ID
		}
	}

	if err := repo.db.WithContext(ctx).Create(orderM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrOrderNotFound.WrapMessage("invalid order reference")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create order")
	}

	order.ID = orderM.ID
	order.CreatedAt = orderM.CreatedAt
	order.UpdatedAt = orderM.UpdatedAt

	return nil
}

// FindByID retrieves a single order by its unique ID, preloading its items.
func (repo *orderRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	var orderM model.OrderModel
	err := repo.db.WithContext(ctx).
		Preload("Items", orderItemListOrder).
		First(&orderM, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrOrderNotFound
		}

		return nil, errors.Wrap(err, "failed to find order by id")
	}

	return toOrderDomain(&orderM), nil
}

// FindByUserID returns a user's orders, newest first.
func (repo *orderRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Order, error) {
	var orderMs []*model.OrderModel
	err := repo.db.WithContext(ctx).
		Preload("Items", orderItemListOrder).
		Where("user_id = ?", userID).
		Order("created_at DESC, id ASC").
		Find(&orderMs).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to find orders by user id")
	}

	return toOrderDomainList(orderMs), nil
}

// FindAll returns every order, newest first.
func (repo *orderRepository) FindAll(ctx context.Context) ([]*entity.Order, error) {
	var orderMs []*model.OrderModel
	err := repo.db.WithContext(ctx).
		Preload("Items", orderItemListOrder).
		Order("created_at DESC, id ASC").
		Find(&orderMs).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to find orders")
	}

	return toOrderDomainList(orderMs), nil
}

// FindPendingBankTransfers returns unpaid bank-transfer orders created after
// since, oldest first.
func (repo *orderRepository) FindPendingBankTransfers(ctx context.Context, since time.Time) ([]*entity.Order, error) {
	var orderMs []*model.OrderModel
	err := repo.db.WithContext(ctx).
		Preload("Items", orderItemListOrder).
		Where("is_paid = ? AND payment_method = ? AND created_at >= ?",
			false, string(entity.PaymentMethodBankTransfer), since).
		Order("created_at ASC, id ASC").
		Find(&orderMs).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to find pending bank transfer orders")
	}

	return toOrderDomainList(orderMs), nil
}

// MarkPaid atomically flips an unpaid order to paid. The is_paid guard in the
// WHERE clause makes the flip single-winner under concurrent verifiers.
func (repo *orderRepository) MarkPaid(ctx context.Context, id uuid.UUID, paidAt time.Time) (bool, error) {
	result := repo.db.WithContext(ctx).
		Model(&model.OrderModel{}).
		Where("id = ? AND is_paid = ?", id, false).
		Updates(map[string]any{
			"is_paid": true,
			"paid_at": paidAt,
		})
	if result.Error != nil {
		return false, domainerrors.NewDatabaseExecuteError(result.Error, "failed to mark order paid")
	}

	return result.RowsAffected > 0, nil
}

// MarkDelivered records the delivery timestamp.
func (repo *orderRepository) MarkDelivered(ctx context.Context, id uuid.UUID, deliveredAt time.Time) error {
	result := repo.db.WithContext(ctx).
		Model(&model.OrderModel{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"is_delivered": true,
			"delivered_at": deliveredAt,
		})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to mark order delivered")
	}
	if result.RowsAffected == 0 {
		return repository.ErrOrderNotFound
	}

	return nil
}

// Delete removes an order and its items.
func (repo *orderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	err := repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).Delete(&model.OrderItemModel{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&model.OrderModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return repository.ErrOrderNotFound
		}

		return nil
	})
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return repository.ErrOrderNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to delete order")
	}

	return nil
}

func toOrderDomainList(orderMs []*model.OrderModel) []*entity.Order {
	orders := make([]*entity.Order, 0, len(orderMs))
	for _, orderM := range orderMs {
		orders = append(orders, toOrderDomain(orderM))
	}

	return orders
}

func toOrderDomain(orderM *model.OrderModel) *entity.Order {
	items := make([]entity.OrderItem, 0, len(orderM.Items))
	for _, itemM := range orderM.Items {
		items = append(items, entity.OrderItem{
			ProductID: itemM.ProductID,
			Name:      itemM.Name,
			Image:     itemM.Image,
			UnitPrice: itemM.UnitPrice,
			Quantity:  itemM.Quantity,
			Unit: entity.SelectedUnit{
				Name:        itemM.UnitName,
				Ratio:       itemM.UnitRatio,
				Image:       itemM.UnitImage,
				Description: itemM.UnitDescription,
			},
		})
	}

	return &entity.Order{
		ID:     orderM.ID,
		UserID: orderM.UserID,
		Items:  items,
		ShippingAddress: entity.ShippingAddress{
			FullName:       orderM.ShippingFullName,
			Address:        orderM.ShippingAddress,
			Ward:           orderM.ShippingWard,
			District:       orderM.ShippingDistrict,
			Province:       orderM.ShippingProvince,
			PostalCode:     orderM.ShippingPostalCode,
			Country:        orderM.ShippingCountry,
			PhoneNumber:    orderM.ShippingPhoneNumber,
			DeliveryMethod: orderM.ShippingDeliveryMethod,
		},
		PaymentMethod: entity.PaymentMethod(orderM.PaymentMethod),
		ItemsPrice:    orderM.ItemsPrice,
		TotalPrice:    orderM.TotalPrice,
		IsPaid:        orderM.IsPaid,
		PaidAt:        orderM.PaidAt,
		IsDelivered:   orderM.IsDelivered,
		DeliveredAt:   orderM.DeliveredAt,
		CreatedAt:     orderM.CreatedAt,
		UpdatedAt:     orderM.UpdatedAt,
	}
}

func fromOrderDomain(order *entity.Order) *model.OrderModel {
	itemMs := make([]*model.OrderItemModel, 0, len(order.Items))
	for _, item := range order.Items {
		itemMs = append(itemMs, &model.OrderItemModel{
			OrderID:         order.ID,
			ProductID:       item.ProductID,
			Name:            item.Name,
			Image:           item.Image,
			UnitPrice:       item.UnitPrice,
			Quantity:        item.Quantity,
			UnitName:        item.Unit.Name,
			UnitRatio:       item.Unit.Ratio,
			UnitImage:       item.Unit.Image,
			UnitDescription: item.Unit.Description,
		})
	}

	return &model.OrderModel{
		ID:                     order.ID,
		UserID:                 order.UserID,
		ShippingFullName:       order.ShippingAddress.FullName,
		ShippingAddress:        order.ShippingAddress.Address,
		ShippingWard:           order.ShippingAddress.Ward,
		ShippingDistrict:       order.ShippingAddress.District,
		ShippingProvince:       order.ShippingAddress.Province,
		ShippingPostalCode:     order.ShippingAddress.PostalCode,
		ShippingCountry:        order.ShippingAddress.Country,
		ShippingPhoneNumber:    order.ShippingAddress.PhoneNumber,
		ShippingDeliveryMethod: order.ShippingAddress.DeliveryMethod,
		PaymentMethod:          string(order.PaymentMethod),
		ItemsPrice:             order.ItemsPrice,
		TotalPrice:             order.TotalPrice,
		IsPaid:                 order.IsPaid,
		PaidAt:                 order.PaidAt,
		IsDelivered:            order.IsDelivered,
		DeliveredAt:            order.DeliveredAt,
		Items:                  itemMs,
	}
}
