package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Service is a bookable offering. A null price means inquiry-only.
type Service struct {
	ID          string              `gorm:"primaryKey;size:36;not null" json:"id"`
	SellerID    string              `gorm:"size:36;index;not null" json:"seller_id"`
	Name        string              `gorm:"size:255;not null" json:"name"`
	Description string              `gorm:"type:text" json:"description"`
	Duration    int                 `gorm:"not null" json:"duration"` // minutes
	Price       decimal.NullDecimal `gorm:"type:decimal(10,2)" json:"price"`
	CreatedAt   time.Time           `json:"created_at"`

	Seller *Seller `gorm:"foreignKey:SellerID" json:"seller,omitempty"`
}

type Item struct {
	ID          string          `gorm:"primaryKey;size:36;not null" json:"id"`
	SellerID    string          `gorm:"size:36;index;not null" json:"seller_id"`
	Name        string          `gorm:"size:255;not null" json:"name"`
	Description string          `gorm:"type:text" json:"description"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	ImageURL    string          `gorm:"type:text" json:"image_url,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`

	Seller *Seller `gorm:"foreignKey:SellerID" json:"seller,omitempty"`
}

type Link struct {
	ID        string    `gorm:"primaryKey;size:36;not null" json:"id"`
	SellerID  string    `gorm:"size:36;index;not null" json:"seller_id"`
	Type      string    `gorm:"size:32;not null;default:custom" json:"type"`
	Label     string    `gorm:"size:255;not null" json:"label"`
	URL       string    `gorm:"type:text;not null" json:"url"`
	Position  int       `gorm:"not null" json:"position"`
	CreatedAt time.Time `json:"created_at"`
}

// Review is read-only for this service; rows are written elsewhere.
type Review struct {
	ID           string    `gorm:"primaryKey;size:36;not null" json:"id"`
	SellerID     string    `gorm:"size:36;index;not null" json:"seller_id"`
	ReviewerName string    `gorm:"size:255" json:"reviewer_name"`
	Rating       int       `gorm:"not null" json:"rating"`
	Comment      string    `gorm:"type:text" json:"comment"`
	CreatedAt    time.Time `json:"created_at"`
}
