package repository

import (
	"context"

	"bookalink/internal/model"

	"gorm.io/gorm"
)

type ReviewRepository interface {
	ListBySeller(ctx context.Context, sellerID string) ([]*model.Review, error)
}

type reviewRepoImpl struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepoImpl{
		db: db,
	}
}

func (r *reviewRepoImpl) ListBySeller(ctx context.Context, sellerID string) ([]*model.Review, error) {
	var reviews []*model.Review
	err := r.db.WithContext(ctx).
		Where("seller_id = ?", sellerID).
		Order("created_at DESC").
		Find(&reviews).Error

	if err != nil {
		return nil, storeErr("list reviews", err)
	}

	return reviews, nil
}
