package repository

import (
	"context"
	"time"

	"bookalink/internal/model"

	"gorm.io/gorm"
)

type AnalyticsRepository interface {
	Append(ctx context.Context, sellerID string, eventType model.EventType, linkID string) error
	ListBySeller(ctx context.Context, sellerID string) ([]*model.AnalyticsEvent, error)
}

type analyticsRepositoryImpl struct {
	db *gorm.DB
}

func NewAnalyticsRepository(db *gorm.DB) AnalyticsRepository {
	return &analyticsRepositoryImpl{db: db}
}

func (r *analyticsRepositoryImpl) Append(ctx context.Context, sellerID string, eventType model.EventType, linkID string) error {
	return storeErr("append analytics event", r.db.WithContext(ctx).Create(&model.AnalyticsEvent{
		SellerID:  sellerID,
		EventType: eventType,
		LinkID:    linkID,
		Timestamp: time.Now(),
	}).Error)
}

func (r *analyticsRepositoryImpl) ListBySeller(ctx context.Context, sellerID string) ([]*model.AnalyticsEvent, error) {
	var events []*model.AnalyticsEvent
	err := r.db.WithContext(ctx).
		Where("seller_id = ?", sellerID).
		Find(&events).Error

	if err != nil {
		return nil, storeErr("list analytics events", err)
	}

	return events, nil
}
