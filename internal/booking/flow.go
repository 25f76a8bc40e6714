// Package booking drives a buyer from contact details to a payment hand-off
// for one service or item.
//
//	ContactInfo --Submit(priced)--> PaymentSelection --Select--> Closed(submitted)
//	ContactInfo --Submit(inquiry)--> Closed(submitted)
//	PaymentSelection --Back--> ContactInfo
//	any open state --Cancel--> Closed(cancelled)
//
// No money moves here: deep links open the buyer's payment app and the order
// row only records which method was picked.
package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"bookalink/internal/apperr"
	"bookalink/internal/model"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type State int

const (
	ContactInfo State = iota
	PaymentSelection
	Closed
)

func (s State) String() string {
	switch s {
	case ContactInfo:
		return "contact_info"
	case PaymentSelection:
		return "payment_selection"
	case Closed:
		return "closed"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

type Outcome string

const (
	OutcomeNone      Outcome = ""
	OutcomeSubmitted Outcome = "submitted"
	OutcomeCancelled Outcome = "cancelled"
)

const NoMethodsMessage = "No payment methods available yet. The seller will contact you with payment details."

var (
	ErrWrongState        = errors.New("action not allowed in current booking step")
	ErrMethodUnavailable = errors.New("payment method not available")
)

// Target is the service or item being booked.
type Target struct {
	ID    string
	Type  model.ItemType
	Name  string
	Price decimal.NullDecimal
}

func ServiceTarget(s *model.Service) Target {
	return Target{ID: s.ID, Type: model.ItemTypeService, Name: s.Name, Price: s.Price}
}

func ItemTarget(i *model.Item) Target {
	return Target{ID: i.ID, Type: model.ItemTypeItem, Name: i.Name, Price: decimal.NewNullDecimal(i.Price)}
}

// Payable reports whether the target carries a usable price. A zero price is
// treated like no price: the seller follows up.
func (t Target) Payable() bool {
	return t.Price.Valid && t.Price.Decimal.IsPositive()
}

type Contact struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone,omitempty"`
	Message string `json:"message,omitempty"`
}

// OrderWriter is the slice of the order store the flow writes through.
type OrderWriter interface {
	Create(ctx context.Context, order *model.Order) error
	MarkPaymentInitiated(ctx context.Context, orderID, method string) error
}

var validate = validator.New()

type Flow struct {
	seller *model.Seller
	target Target
	orders OrderWriter
	log    logrus.FieldLogger

	state   State
	outcome Outcome
	contact Contact
	orderID string
	message string
}

func New(seller *model.Seller, target Target, orders OrderWriter, log logrus.FieldLogger) *Flow {
	return &Flow{
		seller: seller,
		target: target,
		orders: orders,
		log:    log,
		state:  ContactInfo,
	}
}

// Resume rebuilds a flow sitting in PaymentSelection for an order persisted
// by an earlier Submit.
func Resume(seller *model.Seller, order *model.Order, orders OrderWriter, log logrus.FieldLogger) (*Flow, error) {
	if order.SellerID != seller.ID {
		return nil, fmt.Errorf("order %s: %w", order.ID, apperr.ErrNotFound)
	}

	target := Target{ID: order.ItemID, Type: order.ItemType, Name: order.ItemName, Price: order.ItemPrice}
	if !target.Payable() {
		return nil, fmt.Errorf("order %s has no price: %w", order.ID, ErrWrongState)
	}

	switch order.Status {
	case model.OrderPending, model.OrderPaymentInitiated:
	default:
		return nil, fmt.Errorf("order %s is %s: %w", order.ID, order.Status, ErrWrongState)
	}

	f := New(seller, target, orders, log)
	f.state = PaymentSelection
	f.orderID = order.ID
	f.contact = Contact{
		Name:    order.BuyerName,
		Email:   order.BuyerEmail,
		Phone:   order.BuyerPhone,
		Message: order.Notes,
	}
	if len(f.Methods()) == 0 {
		f.message = NoMethodsMessage
	}
	return f, nil
}

func (f *Flow) State() State { return f.state }

func (f *Flow) Outcome() Outcome { return f.outcome }

func (f *Flow) Contact() Contact { return f.contact }

// OrderID is the order created by Submit, empty before it.
func (f *Flow) OrderID() string { return f.orderID }

// Message is the buyer-facing notice for the current step, if any.
func (f *Flow) Message() string { return f.message }

func (f *Flow) Target() Target { return f.target }

// Submit validates contact details and persists a pending order snapshot.
// On any error the flow stays in ContactInfo with the entered details kept.
func (f *Flow) Submit(ctx context.Context, contact Contact) error {
	if f.state != ContactInfo {
		return ErrWrongState
	}

	contact.Name = strings.TrimSpace(contact.Name)
	contact.Email = strings.TrimSpace(contact.Email)
	f.contact = contact

	if contact.Name == "" {
		return apperr.Invalid("name", "please fill in your name")
	}
	if err := validate.Var(contact.Email, "required,email"); err != nil {
		return apperr.Invalid("email", "please enter a valid email")
	}

	order := &model.Order{
		ID:         uuid.NewString(),
		SellerID:   f.seller.ID,
		ItemID:     f.target.ID,
		ItemType:   f.target.Type,
		ItemName:   f.target.Name,
		ItemPrice:  f.target.Price,
		BuyerName:  contact.Name,
		BuyerEmail: contact.Email,
		BuyerPhone: contact.Phone,
		Notes:      contact.Message,
		Status:     model.OrderPending,
	}
	if err := f.orders.Create(ctx, order); err != nil {
		return err
	}
	f.orderID = order.ID

	if !f.target.Payable() {
		f.close(OutcomeSubmitted)
		f.message = fmt.Sprintf("Thank you! %s will contact you soon at %s", f.seller.DisplayName(), contact.Email)
		return nil
	}

	f.state = PaymentSelection
	f.message = ""
	if len(f.Methods()) == 0 {
		f.message = NoMethodsMessage
	}
	return nil
}

// Methods lists the seller's configured payment methods in display order.
func (f *Flow) Methods() []Method {
	var out []Method
	for _, m := range methods {
		if f.seller.PaymentHandles.Handle(m.Key) != "" {
			out = append(out, m)
		}
	}
	return out
}

// Select hands the buyer off to method. Deep-link methods then mark the order
// as payment_initiated on a best-effort basis: a failed update is logged and
// the action is still returned.
func (f *Flow) Select(ctx context.Context, method model.PaymentMethod) (*Action, error) {
	if f.state != PaymentSelection {
		return nil, ErrWrongState
	}

	handle := f.seller.PaymentHandles.Handle(method)
	if handle == "" {
		return nil, fmt.Errorf("%s: %w", method, ErrMethodUnavailable)
	}

	amount := f.target.Price.Decimal.StringFixed(2)
	action := &Action{Method: method, Amount: amount}

	if method == model.PaymentZelle {
		action.Instructions = ZelleInstructions(handle, amount, f.target.Name)
		f.close(OutcomeSubmitted)
		return action, nil
	}

	action.URL = DeepLink(method, handle, amount, f.note())
	if action.URL == "" {
		return nil, fmt.Errorf("%s: %w", method, ErrMethodUnavailable)
	}

	if err := f.orders.MarkPaymentInitiated(ctx, f.orderID, string(method)); err != nil {
		f.log.WithError(err).WithFields(logrus.Fields{
			"order_id": f.orderID,
			"method":   method,
		}).Warn("failed to record payment method")
	}

	f.close(OutcomeSubmitted)
	return action, nil
}

// Back returns to ContactInfo keeping the entered details.
func (f *Flow) Back() error {
	if f.state != PaymentSelection {
		return ErrWrongState
	}
	f.state = ContactInfo
	f.message = ""
	return nil
}

func (f *Flow) Cancel() {
	if f.state == Closed {
		return
	}
	f.close(OutcomeCancelled)
}

func (f *Flow) close(outcome Outcome) {
	f.state = Closed
	f.outcome = outcome
}

func (f *Flow) note() string {
	return f.target.Name + " - " + f.seller.DisplayName()
}
