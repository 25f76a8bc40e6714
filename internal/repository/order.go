package repository

import (
	"context"
	"time"

	"bookalink/internal/model"

	"gorm.io/gorm"
)

type OrderRepository interface {
	Create(ctx context.Context, order *model.Order) error
	FindByID(ctx context.Context, orderID string) (*model.Order, error)
	ListBySeller(ctx context.Context, sellerID string) ([]*model.Order, error)
	// MarkPaymentInitiated updates exactly the given order; it never guesses
	// the row from buyer email and item.
	MarkPaymentInitiated(ctx context.Context, orderID, method string) error
	UpdateStatus(ctx context.Context, sellerID, orderID string, status model.OrderStatus) error
}

type orderRepoImpl struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepoImpl{
		db: db,
	}
}

func (r *orderRepoImpl) Create(ctx context.Context, order *model.Order) error {
	return storeErr("create order", r.db.WithContext(ctx).Create(order).Error)
}

func (r *orderRepoImpl) FindByID(ctx context.Context, orderID string) (*model.Order, error) {
	var order model.Order
	err := r.db.WithContext(ctx).
		Where("id = ?", orderID).
		First(&order).Error

	if err != nil {
		return nil, storeErr("find order", err)
	}

	return &order, nil
}

func (r *orderRepoImpl) ListBySeller(ctx context.Context, sellerID string) ([]*model.Order, error) {
	var orders []*model.Order
	err := r.db.WithContext(ctx).
		Where("seller_id = ?", sellerID).
		Order("created_at DESC").
		Find(&orders).Error

	if err != nil {
		return nil, storeErr("list orders", err)
	}

	return orders, nil
}

func (r *orderRepoImpl) MarkPaymentInitiated(ctx context.Context, orderID, method string) error {
	result := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("id = ?", orderID).
		Updates(map[string]interface{}{
			"payment_method": method,
			"status":         model.OrderPaymentInitiated,
			"updated_at":     time.Now(),
		})

	if result.Error != nil {
		return storeErr("mark payment initiated", result.Error)
	}
	if result.RowsAffected == 0 {
		return storeErr("mark payment initiated", gorm.ErrRecordNotFound)
	}

	return nil
}

func (r *orderRepoImpl) UpdateStatus(ctx context.Context, sellerID, orderID string, status model.OrderStatus) error {
	result := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("id = ? AND seller_id = ?", orderID, sellerID).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return storeErr("update order status", result.Error)
	}
	if result.RowsAffected == 0 {
		return storeErr("update order status", gorm.ErrRecordNotFound)
	}

	return nil
}
