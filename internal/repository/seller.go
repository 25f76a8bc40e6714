package repository

import (
	"context"
	"strings"

	"bookalink/internal/model"

	"gorm.io/gorm"
)

type SellerRepository interface {
	Create(ctx context.Context, seller *model.Seller) error
	FindByID(ctx context.Context, sellerID string) (*model.Seller, error)
	// FindByUsername returns every row matching username so callers can tell
	// a missing profile from an ambiguous one.
	FindByUsername(ctx context.Context, username string) ([]*model.Seller, error)
	UsernameTaken(ctx context.Context, username string) (bool, error)
	ListPublic(ctx context.Context) ([]*model.Seller, error)
	Update(ctx context.Context, sellerID string, fields map[string]interface{}) error
}

type sellerRepoImpl struct {
	db *gorm.DB
}

func NewSellerRepository(db *gorm.DB) SellerRepository {
	return &sellerRepoImpl{
		db: db,
	}
}

func (r *sellerRepoImpl) Create(ctx context.Context, seller *model.Seller) error {
	return storeErr("create seller", r.db.WithContext(ctx).Create(seller).Error)
}

func (r *sellerRepoImpl) FindByID(ctx context.Context, sellerID string) (*model.Seller, error) {
	var seller model.Seller
	err := r.db.WithContext(ctx).
		Where("id = ?", sellerID).
		First(&seller).Error
	if err != nil {
		return nil, storeErr("find seller", err)
	}

	return &seller, nil
}

func (r *sellerRepoImpl) FindByUsername(ctx context.Context, username string) ([]*model.Seller, error) {
	var sellers []*model.Seller
	err := r.db.WithContext(ctx).
		Where("username = ?", username).
		Limit(2).
		Find(&sellers).Error
	if err != nil {
		return nil, storeErr("find seller by username", err)
	}

	return sellers, nil
}

func (r *sellerRepoImpl) UsernameTaken(ctx context.Context, username string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Seller{}).
		Where("LOWER(username) = ?", strings.ToLower(username)).
		Count(&count).Error

	return count > 0, storeErr("check username", err)
}

func (r *sellerRepoImpl) ListPublic(ctx context.Context) ([]*model.Seller, error) {
	var sellers []*model.Seller
	err := r.db.WithContext(ctx).
		Where("username IS NOT NULL AND username <> ''").
		Order("created_at DESC").
		Find(&sellers).Error
	if err != nil {
		return nil, storeErr("list sellers", err)
	}

	return sellers, nil
}

func (r *sellerRepoImpl) Update(ctx context.Context, sellerID string, fields map[string]interface{}) error {
	result := r.db.
		WithContext(ctx).
		Model(&model.Seller{}).
		Where("id = ?", sellerID).
		Updates(fields)

	if result.Error != nil {
		return storeErr("update seller", result.Error)
	}

	if result.RowsAffected == 0 {
		return storeErr("update seller", gorm.ErrRecordNotFound)
	}

	return nil
}
