package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderPending          OrderStatus = "pending"
	OrderPaymentInitiated OrderStatus = "payment_initiated"
	OrderCompleted        OrderStatus = "completed"
	OrderCancelled        OrderStatus = "cancelled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderPaymentInitiated, OrderCompleted, OrderCancelled:
		return true
	}
	return false
}

type ItemType string

const (
	ItemTypeService ItemType = "service"
	ItemTypeItem    ItemType = "item"
)

// Order snapshots the name and price of the booked service or item at write
// time; later catalog edits do not change it.
type Order struct {
	ID            string              `gorm:"primaryKey;size:36;not null" json:"id"`
	SellerID      string              `gorm:"size:36;index;not null" json:"seller_id"`
	ItemID        string              `gorm:"size:36;index;not null" json:"item_id"`
	ItemType      ItemType            `gorm:"size:16;not null" json:"item_type"`
	ItemName      string              `gorm:"size:255;not null" json:"item_name"`
	ItemPrice     decimal.NullDecimal `gorm:"type:decimal(10,2)" json:"item_price"`
	BuyerName     string              `gorm:"size:255;not null" json:"buyer_name"`
	BuyerEmail    string              `gorm:"size:255;index;not null" json:"buyer_email"`
	BuyerPhone    string              `gorm:"size:64" json:"buyer_phone,omitempty"`
	Notes         string              `gorm:"type:text" json:"notes,omitempty"`
	Status        OrderStatus         `gorm:"size:32;index;not null" json:"status"`
	PaymentMethod string              `gorm:"size:32" json:"payment_method,omitempty"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
}
