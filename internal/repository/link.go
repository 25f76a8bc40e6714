package repository

import (
	"context"

	"bookalink/internal/model"

	"gorm.io/gorm"
)

type LinkRepository interface {
	Create(ctx context.Context, link *model.Link) error
	FindByID(ctx context.Context, sellerID, linkID string) (*model.Link, error)
	// ListBySeller orders by position, then insertion time.
	ListBySeller(ctx context.Context, sellerID string) ([]*model.Link, error)
	Count(ctx context.Context, sellerID string) (int64, error)
	Delete(ctx context.Context, sellerID, linkID string) error
}

type linkRepoImpl struct {
	db *gorm.DB
}

func NewLinkRepository(db *gorm.DB) LinkRepository {
	return &linkRepoImpl{
		db: db,
	}
}

func (r *linkRepoImpl) Create(ctx context.Context, link *model.Link) error {
	return storeErr("create link", r.db.WithContext(ctx).Create(link).Error)
}

func (r *linkRepoImpl) FindByID(ctx context.Context, sellerID, linkID string) (*model.Link, error) {
	var link model.Link
	err := r.db.WithContext(ctx).
		Where("id = ? AND seller_id = ?", linkID, sellerID).
		First(&link).Error

	if err != nil {
		return nil, storeErr("find link", err)
	}

	return &link, nil
}

func (r *linkRepoImpl) ListBySeller(ctx context.Context, sellerID string) ([]*model.Link, error) {
	var links []*model.Link
	err := r.db.WithContext(ctx).
		Where("seller_id = ?", sellerID).
		Order("position ASC").
		Order("created_at ASC").
		Find(&links).
		Error

	if err != nil {
		return nil, storeErr("list links", err)
	}

	return links, nil
}

func (r *linkRepoImpl) Count(ctx context.Context, sellerID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Link{}).
		Where("seller_id = ?", sellerID).
		Count(&count).Error

	return count, storeErr("count links", err)
}

func (r *linkRepoImpl) Delete(ctx context.Context, sellerID, linkID string) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND seller_id = ?", linkID, sellerID).
		Delete(&model.Link{})

	if result.Error != nil {
		return storeErr("delete link", result.Error)
	}
	if result.RowsAffected == 0 {
		return storeErr("delete link", gorm.ErrRecordNotFound)
	}

	return nil
}
