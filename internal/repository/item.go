package repository

import (
	"context"

	"bookalink/internal/model"

	"gorm.io/gorm"
)

type ItemRepository interface {
	Create(ctx context.Context, item *model.Item) error
	FindByID(ctx context.Context, itemID string) (*model.Item, error)
	ListBySeller(ctx context.Context, sellerID string) ([]*model.Item, error)
	ListAll(ctx context.Context) ([]*model.Item, error)
	Delete(ctx context.Context, sellerID, itemID string) error
}

type itemRepoImpl struct {
	db *gorm.DB
}

func NewItemRepository(db *gorm.DB) ItemRepository {
	return &itemRepoImpl{
		db: db,
	}
}

func (r *itemRepoImpl) Create(ctx context.Context, item *model.Item) error {
	return storeErr("create item", r.db.WithContext(ctx).Create(item).Error)
}

func (r *itemRepoImpl) FindByID(ctx context.Context, itemID string) (*model.Item, error) {
	var item model.Item
	err := r.db.WithContext(ctx).
		Where("id = ?", itemID).
		First(&item).Error

	if err != nil {
		return nil, storeErr("find item", err)
	}

	return &item, nil
}

func (r *itemRepoImpl) ListBySeller(ctx context.Context, sellerID string) ([]*model.Item, error) {
	var items []*model.Item
	err := r.db.WithContext(ctx).
		Where("seller_id = ?", sellerID).
		Find(&items).
		Error

	if err != nil {
		return nil, storeErr("list items", err)
	}

	return items, nil
}

func (r *itemRepoImpl) ListAll(ctx context.Context) ([]*model.Item, error) {
	var items []*model.Item
	err := r.db.WithContext(ctx).
		Preload("Seller", sellerSummary).
		Order("created_at DESC").
		Find(&items).
		Error

	if err != nil {
		return nil, storeErr("list all items", err)
	}

	return items, nil
}

func (r *itemRepoImpl) Delete(ctx context.Context, sellerID, itemID string) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND seller_id = ?", itemID, sellerID).
		Delete(&model.Item{})

	if result.Error != nil {
		return storeErr("delete item", result.Error)
	}
	if result.RowsAffected == 0 {
		return storeErr("delete item", gorm.ErrRecordNotFound)
	}

	return nil
}

// sellerSummary limits preloaded sellers to the fields listings display.
func sellerSummary(db *gorm.DB) *gorm.DB {
	return db.Select("id", "username", "name", "business_name", "profile_image")
}
