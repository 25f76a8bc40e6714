package repository

import (
	"context"

	"bookalink/internal/model"

	"gorm.io/gorm"
)

type ServiceRepository interface {
	Create(ctx context.Context, service *model.Service) error
	FindByID(ctx context.Context, serviceID string) (*model.Service, error)
	ListBySeller(ctx context.Context, sellerID string) ([]*model.Service, error)
	ListAll(ctx context.Context) ([]*model.Service, error)
	Delete(ctx context.Context, sellerID, serviceID string) error
}

type serviceRepoImpl struct {
	db *gorm.DB
}

func NewServiceRepository(db *gorm.DB) ServiceRepository {
	return &serviceRepoImpl{
		db: db,
	}
}

func (r *serviceRepoImpl) Create(ctx context.Context, service *model.Service) error {
	return storeErr("create service", r.db.WithContext(ctx).Create(service).Error)
}

func (r *serviceRepoImpl) FindByID(ctx context.Context, serviceID string) (*model.Service, error) {
	var service model.Service
	err := r.db.WithContext(ctx).
		Where("id = ?", serviceID).
		First(&service).Error

	if err != nil {
		return nil, storeErr("find service", err)
	}

	return &service, nil
}

func (r *serviceRepoImpl) ListBySeller(ctx context.Context, sellerID string) ([]*model.Service, error) {
	var services []*model.Service
	err := r.db.WithContext(ctx).
		Where("seller_id = ?", sellerID).
		Find(&services).
		Error

	if err != nil {
		return nil, storeErr("list services", err)
	}

	return services, nil
}

func (r *serviceRepoImpl) ListAll(ctx context.Context) ([]*model.Service, error) {
	var services []*model.Service
	err := r.db.WithContext(ctx).
		Preload("Seller", sellerSummary).
		Order("created_at DESC").
		Find(&services).
		Error

	if err != nil {
		return nil, storeErr("list all services", err)
	}

	return services, nil
}

func (r *serviceRepoImpl) Delete(ctx context.Context, sellerID, serviceID string) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND seller_id = ?", serviceID, sellerID).
		Delete(&model.Service{})

	if result.Error != nil {
		return storeErr("delete service", result.Error)
	}
	if result.RowsAffected == 0 {
		return storeErr("delete service", gorm.ErrRecordNotFound)
	}

	return nil
}
