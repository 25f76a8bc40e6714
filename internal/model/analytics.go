package model

import "time"

type EventType string

const (
	EventProfileView EventType = "profile_view"
	EventLinkClick   EventType = "link_click"
)

// AnalyticsEvent is append-only.
type AnalyticsEvent struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	SellerID  string    `gorm:"size:36;index;not null" json:"seller_id"`
	EventType EventType `gorm:"size:32;index;not null" json:"event_type"`
	LinkID    string    `gorm:"size:36" json:"link_id,omitempty"`
	Timestamp time.Time `gorm:"index;not null" json:"timestamp"`
}

func (AnalyticsEvent) TableName() string {
	return "analytics"
}
