package model

import (
	"time"

	"gorm.io/datatypes"
)

// Account is the identity record behind a seller. Its ID doubles as the
// seller ID.
type Account struct {
	ID           string            `gorm:"primaryKey;size:36;not null"`
	Email        string            `gorm:"size:255;uniqueIndex;not null"`
	PasswordHash string            `gorm:"size:255;not null"`
	Metadata     datatypes.JSONMap `gorm:"type:json"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Seller struct {
	ID           string `gorm:"primaryKey;size:36;not null" json:"id"`
	Username     string `gorm:"size:64;uniqueIndex;not null" json:"username"` // lowercase, [a-z0-9_]{3,}
	Name         string `gorm:"size:255" json:"name"`
	BusinessName string `gorm:"size:255" json:"business_name"`
	Email        string `gorm:"size:255" json:"email,omitempty"`
	Bio          string `gorm:"type:text" json:"bio"`
	ProfileImage string `gorm:"type:text" json:"profile_image"`
	Category     string `gorm:"size:64" json:"category"`
	ThemeColor   string `gorm:"size:16" json:"theme_color"`

	SocialHandles
	PaymentHandles

	Portfolio datatypes.JSONSlice[string] `gorm:"type:json" json:"portfolio"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DisplayName is the business name when set, the personal name otherwise.
func (s *Seller) DisplayName() string {
	if s.BusinessName != "" {
		return s.BusinessName
	}
	return s.Name
}

type SocialHandles struct {
	InstagramHandle string `gorm:"size:255" json:"instagram_handle"`
	TiktokHandle    string `gorm:"size:255" json:"tiktok_handle"`
	YoutubeHandle   string `gorm:"size:255" json:"youtube_handle"`
	TwitterHandle   string `gorm:"size:255" json:"twitter_handle"`
	FacebookURL     string `gorm:"size:255" json:"facebook_url"`
	LinkedinURL     string `gorm:"size:255" json:"linkedin_url"`
	PinterestHandle string `gorm:"size:255" json:"pinterest_handle"`
	SnapchatHandle  string `gorm:"size:255" json:"snapchat_handle"`
	TwitchHandle    string `gorm:"size:255" json:"twitch_handle"`
	SpotifyURL      string `gorm:"size:255" json:"spotify_url"`
}
