package service

import (
	"context"
	"fmt"

	"bookalink/internal/apperr"
	"bookalink/internal/booking"
	"bookalink/internal/metrics"
	"bookalink/internal/model"
	"bookalink/internal/repository"

	"github.com/sirupsen/logrus"
)

type BookingRequest struct {
	TargetType model.ItemType
	TargetID   string
	Contact    booking.Contact
}

// BookingState is the buyer-facing view of a flow after a step.
type BookingState struct {
	OrderID string           `json:"order_id,omitempty"`
	State   booking.State    `json:"state"`
	Outcome booking.Outcome  `json:"outcome,omitempty"`
	Message string           `json:"message,omitempty"`
	Amount  string           `json:"amount,omitempty"`
	Methods []booking.Method `json:"methods,omitempty"`
	Contact booking.Contact  `json:"contact"`
}

type BookingService interface {
	// Start runs the contact step for a seller's service or item.
	Start(ctx context.Context, username string, req BookingRequest) (*BookingState, error)
	// Pay runs the payment step for an order created by Start.
	Pay(ctx context.Context, orderID string, method model.PaymentMethod) (*booking.Action, error)
	// Back returns an order's flow to the contact step.
	Back(ctx context.Context, orderID string) (*BookingState, error)
}

type bookingServiceImpl struct {
	profiles    ProfileService
	sellerRepo  repository.SellerRepository
	serviceRepo repository.ServiceRepository
	itemRepo    repository.ItemRepository
	orderRepo   repository.OrderRepository
	log         logrus.FieldLogger
}

func NewBookingService(
	profiles ProfileService,
	sellerRepo repository.SellerRepository,
	serviceRepo repository.ServiceRepository,
	itemRepo repository.ItemRepository,
	orderRepo repository.OrderRepository,
	log logrus.FieldLogger,
) BookingService {
	return &bookingServiceImpl{
		profiles:    profiles,
		sellerRepo:  sellerRepo,
		serviceRepo: serviceRepo,
		itemRepo:    itemRepo,
		orderRepo:   orderRepo,
		log:         log,
	}
}

func (s *bookingServiceImpl) Start(ctx context.Context, username string, req BookingRequest) (*BookingState, error) {
	seller, err := s.profiles.Resolve(ctx, username)
	if err != nil {
		return nil, err
	}

	target, err := s.target(ctx, seller.ID, req.TargetType, req.TargetID)
	if err != nil {
		return nil, err
	}

	flow := booking.New(seller, target, s.orderRepo, s.log)
	if err := flow.Submit(ctx, req.Contact); err != nil {
		return nil, err
	}

	metrics.OrdersCreated.WithLabelValues(string(target.Type)).Inc()
	s.log.WithFields(logrus.Fields{
		"seller_id": seller.ID,
		"order_id":  flow.OrderID(),
		"item_type": target.Type,
	}).Info("order created")

	return stateOf(flow), nil
}

func (s *bookingServiceImpl) Pay(ctx context.Context, orderID string, method model.PaymentMethod) (*booking.Action, error) {
	flow, err := s.resume(ctx, orderID)
	if err != nil {
		return nil, err
	}

	action, err := flow.Select(ctx, method)
	if err != nil {
		return nil, err
	}

	metrics.PaymentHandoffs.WithLabelValues(string(method)).Inc()
	return action, nil
}

func (s *bookingServiceImpl) Back(ctx context.Context, orderID string) (*BookingState, error) {
	flow, err := s.resume(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := flow.Back(); err != nil {
		return nil, err
	}
	return stateOf(flow), nil
}

func (s *bookingServiceImpl) resume(ctx context.Context, orderID string) (*booking.Flow, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	seller, err := s.sellerRepo.FindByID(ctx, order.SellerID)
	if err != nil {
		return nil, err
	}
	return booking.Resume(seller, order, s.orderRepo, s.log)
}

func (s *bookingServiceImpl) target(ctx context.Context, sellerID string, kind model.ItemType, id string) (booking.Target, error) {
	switch kind {
	case model.ItemTypeService:
		svc, err := s.serviceRepo.FindByID(ctx, id)
		if err != nil {
			return booking.Target{}, err
		}
		if svc.SellerID != sellerID {
			return booking.Target{}, fmt.Errorf("service %s: %w", id, apperr.ErrNotFound)
		}
		return booking.ServiceTarget(svc), nil
	case model.ItemTypeItem:
		item, err := s.itemRepo.FindByID(ctx, id)
		if err != nil {
			return booking.Target{}, err
		}
		if item.SellerID != sellerID {
			return booking.Target{}, fmt.Errorf("item %s: %w", id, apperr.ErrNotFound)
		}
		return booking.ItemTarget(item), nil
	}
	return booking.Target{}, apperr.Invalid("item_type", fmt.Sprintf("unknown item type %q", kind))
}

func stateOf(flow *booking.Flow) *BookingState {
	state := &BookingState{
		OrderID: flow.OrderID(),
		State:   flow.State(),
		Outcome: flow.Outcome(),
		Message: flow.Message(),
		Contact: flow.Contact(),
	}
	if flow.State() == booking.PaymentSelection {
		state.Amount = flow.Target().Price.Decimal.StringFixed(2)
		state.Methods = flow.Methods()
	}
	return state
}
