package service

import (
	"context"
	"fmt"

	"bookalink/internal/apperr"
	"bookalink/internal/model"
	"bookalink/internal/repository"
)

type OrderService interface {
	List(ctx context.Context, sellerID string) ([]*model.Order, error)
	// UpdateStatus lets a seller move one of their own orders along by hand.
	UpdateStatus(ctx context.Context, sellerID, orderID string, status model.OrderStatus) error
}

type orderServiceImpl struct {
	orderRepo repository.OrderRepository
}

func NewOrderService(orderRepo repository.OrderRepository) OrderService {
	return &orderServiceImpl{
		orderRepo: orderRepo,
	}
}

func (s *orderServiceImpl) List(ctx context.Context, sellerID string) ([]*model.Order, error) {
	orders, err := s.orderRepo.ListBySeller(ctx, sellerID)
	if err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []*model.Order{}
	}
	return orders, nil
}

func (s *orderServiceImpl) UpdateStatus(ctx context.Context, sellerID, orderID string, status model.OrderStatus) error {
	if !status.Valid() {
		return apperr.Invalid("status", fmt.Sprintf("unknown order status %q", status))
	}
	return s.orderRepo.UpdateStatus(ctx, sellerID, orderID, status)
}
