package dto

import "github.com/shopspring/decimal"

type SignupRequest struct {
	FullName        string `json:"full_name"`
	Username        string `json:"username"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type ProfileRequest struct {
	Name         string `json:"name"`
	BusinessName string `json:"business_name"`
	Bio          string `json:"bio"`
	ProfileImage string `json:"profile_image"`
}

type SocialRequest struct {
	InstagramHandle string `json:"instagram_handle"`
	TiktokHandle    string `json:"tiktok_handle"`
	YoutubeHandle   string `json:"youtube_handle"`
	TwitterHandle   string `json:"twitter_handle"`
	FacebookURL     string `json:"facebook_url"`
	LinkedinURL     string `json:"linkedin_url"`
	PinterestHandle string `json:"pinterest_handle"`
	SnapchatHandle  string `json:"snapchat_handle"`
	TwitchHandle    string `json:"twitch_handle"`
	SpotifyURL      string `json:"spotify_url"`
}

type PaymentsRequest struct {
	VenmoUsername   string `json:"venmo_username"`
	CashappUsername string `json:"cashapp_username"`
	PaypalEmail     string `json:"paypal_email"`
	ZelleEmail      string `json:"zelle_email"`
}

type ThemeRequest struct {
	Key string `json:"key" validate:"required"`
}

type ServiceRequest struct {
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Duration    int              `json:"duration"`
	Price       *decimal.Decimal `json:"price"`
}

type ItemRequest struct {
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	ImageURL    string           `json:"image_url"`
}

type LinkRequest struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

type PortfolioRequest struct {
	URL string `json:"url" validate:"required,url"`
}

type BookRequest struct {
	ItemType string `json:"item_type" validate:"required,oneof=service item"`
	ItemID   string `json:"item_id" validate:"required"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Message  string `json:"message"`
}

type PayRequest struct {
	Method string `json:"method" validate:"required,oneof=venmo cashapp paypal zelle"`
}

type StatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending payment_initiated completed cancelled"`
}

type UploadResponse struct {
	URL string `json:"url"`
}

type ErrorResponse struct {
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}
