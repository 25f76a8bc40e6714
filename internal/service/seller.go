package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"bookalink/internal/apperr"
	"bookalink/internal/auth"
	"bookalink/internal/model"
	"bookalink/internal/repository"
	"bookalink/internal/theme"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
)

const (
	MinPasswordLength = 6
	DefaultCategory   = "other"
)

var (
	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]{3,}$`)
	validate        = validator.New()
)

type RegisterInput struct {
	FullName        string
	Username        string
	Email           string
	Password        string
	ConfirmPassword string
}

type ProfileInput struct {
	Name         string
	BusinessName string
	Bio          string
	ProfileImage string
}

type SellerService interface {
	// Register creates the account and the seller row behind it.
	Register(ctx context.Context, in RegisterInput) (*auth.Session, *model.Seller, error)
	Get(ctx context.Context, sellerID string) (*model.Seller, error)
	UpdateProfile(ctx context.Context, sellerID string, in ProfileInput) (*model.Seller, error)
	UpdateSocial(ctx context.Context, sellerID string, handles model.SocialHandles) (*model.Seller, error)
	UpdatePayments(ctx context.Context, sellerID string, handles model.PaymentHandles) (*model.Seller, error)
	SetTheme(ctx context.Context, sellerID, key string, prefs theme.PreferenceStore) (theme.Context, error)
	AddPortfolioImage(ctx context.Context, sellerID, url string) ([]string, error)
	RemovePortfolioImage(ctx context.Context, sellerID string, index int) ([]string, error)
	ShareURL(username string) string
}

type sellerServiceImpl struct {
	sellerRepo repository.SellerRepository
	identity   auth.Provider
	themes     *theme.Registry
	baseURL    string
	log        logrus.FieldLogger
}

func NewSellerService(
	sellerRepo repository.SellerRepository,
	identity auth.Provider,
	themes *theme.Registry,
	baseURL string,
	log logrus.FieldLogger,
) SellerService {
	return &sellerServiceImpl{
		sellerRepo: sellerRepo,
		identity:   identity,
		themes:     themes,
		baseURL:    strings.TrimRight(baseURL, "/"),
		log:        log,
	}
}

// ValidateUsername checks the handle format only; availability is checked
// against the store by Register.
func ValidateUsername(username string) error {
	if len(username) < 3 {
		return apperr.Invalid("username", "username must be at least 3 characters")
	}
	if !usernamePattern.MatchString(username) {
		return apperr.Invalid("username", "username can only contain letters, numbers, and underscores")
	}
	return nil
}

func validateRegistration(in RegisterInput) error {
	if strings.TrimSpace(in.FullName) == "" {
		return apperr.Invalid("full_name", "please enter your name")
	}
	if err := validate.Var(in.Email, "required,email"); err != nil {
		return apperr.Invalid("email", "please enter a valid email")
	}
	if in.Password != in.ConfirmPassword {
		return apperr.Invalid("confirm_password", "passwords do not match")
	}
	if len(in.Password) < MinPasswordLength {
		return apperr.Invalid("password", fmt.Sprintf("password must be at least %d characters", MinPasswordLength))
	}
	return ValidateUsername(in.Username)
}

func (s *sellerServiceImpl) Register(ctx context.Context, in RegisterInput) (*auth.Session, *model.Seller, error) {
	in.Email = strings.TrimSpace(in.Email)
	if err := validateRegistration(in); err != nil {
		return nil, nil, err
	}

	username := strings.ToLower(in.Username)
	taken, err := s.sellerRepo.UsernameTaken(ctx, username)
	if err != nil {
		return nil, nil, err
	}
	if taken {
		return nil, nil, fmt.Errorf("username %q already taken: %w", username, apperr.ErrConflict)
	}

	session, err := s.identity.SignUp(ctx, in.Email, in.Password, map[string]interface{}{
		"full_name": in.FullName,
		"username":  username,
	})
	if err != nil {
		return nil, nil, err
	}

	seller := &model.Seller{
		ID:           session.Identity.UserID,
		Username:     username,
		Name:         in.FullName,
		BusinessName: in.FullName,
		Email:        session.Identity.Email,
		Category:     DefaultCategory,
		Portfolio:    datatypes.JSONSlice[string]{},
	}
	if err := s.sellerRepo.Create(ctx, seller); err != nil {
		return nil, nil, fmt.Errorf("create profile: %w", err)
	}

	s.log.WithFields(logrus.Fields{
		"seller_id": seller.ID,
		"username":  seller.Username,
	}).Info("seller registered")

	return session, seller, nil
}

func (s *sellerServiceImpl) Get(ctx context.Context, sellerID string) (*model.Seller, error) {
	return s.sellerRepo.FindByID(ctx, sellerID)
}

func (s *sellerServiceImpl) UpdateProfile(ctx context.Context, sellerID string, in ProfileInput) (*model.Seller, error) {
	fields := map[string]interface{}{
		"name":          strings.TrimSpace(in.Name),
		"business_name": strings.TrimSpace(in.BusinessName),
		"bio":           in.Bio,
		"profile_image": in.ProfileImage,
	}
	if err := s.sellerRepo.Update(ctx, sellerID, fields); err != nil {
		return nil, err
	}

	// the seller row is the source of truth; metadata is a mirror
	if err := s.identity.UpdateMetadata(ctx, sellerID, fields); err != nil {
		s.log.WithError(err).WithField("seller_id", sellerID).Warn("failed to update account metadata")
	}

	return s.sellerRepo.FindByID(ctx, sellerID)
}

func (s *sellerServiceImpl) UpdateSocial(ctx context.Context, sellerID string, h model.SocialHandles) (*model.Seller, error) {
	err := s.sellerRepo.Update(ctx, sellerID, map[string]interface{}{
		"instagram_handle": strings.TrimSpace(h.InstagramHandle),
		"tiktok_handle":    strings.TrimSpace(h.TiktokHandle),
		"youtube_handle":   strings.TrimSpace(h.YoutubeHandle),
		"twitter_handle":   strings.TrimSpace(h.TwitterHandle),
		"facebook_url":     strings.TrimSpace(h.FacebookURL),
		"linkedin_url":     strings.TrimSpace(h.LinkedinURL),
		"pinterest_handle": strings.TrimSpace(h.PinterestHandle),
		"snapchat_handle":  strings.TrimSpace(h.SnapchatHandle),
		"twitch_handle":    strings.TrimSpace(h.TwitchHandle),
		"spotify_url":      strings.TrimSpace(h.SpotifyURL),
	})
	if err != nil {
		return nil, err
	}
	return s.sellerRepo.FindByID(ctx, sellerID)
}

func (s *sellerServiceImpl) UpdatePayments(ctx context.Context, sellerID string, h model.PaymentHandles) (*model.Seller, error) {
	h.PaypalEmail = strings.TrimSpace(h.PaypalEmail)
	h.ZelleEmail = strings.TrimSpace(h.ZelleEmail)
	if err := validate.Var(h.PaypalEmail, "omitempty,email"); err != nil {
		return nil, apperr.Invalid("paypal_email", "please enter a valid email")
	}
	if err := validate.Var(h.ZelleEmail, "omitempty,email"); err != nil {
		return nil, apperr.Invalid("zelle_email", "please enter a valid email")
	}

	err := s.sellerRepo.Update(ctx, sellerID, map[string]interface{}{
		"venmo_username":   strings.TrimSpace(h.VenmoUsername),
		"cashapp_username": strings.TrimSpace(h.CashappUsername),
		"paypal_email":     h.PaypalEmail,
		"zelle_email":      h.ZelleEmail,
	})
	if err != nil {
		return nil, err
	}
	return s.sellerRepo.FindByID(ctx, sellerID)
}

// SetTheme stores the palette's primary color on the seller row, which is
// how public pages find it again, and applies it for the caller.
func (s *sellerServiceImpl) SetTheme(ctx context.Context, sellerID, key string, prefs theme.PreferenceStore) (theme.Context, error) {
	color, ok := s.themes.PrimaryColor(key)
	if !ok {
		return theme.Context{}, apperr.Invalid("theme", fmt.Sprintf("unknown theme %q", key))
	}

	if err := s.sellerRepo.Update(ctx, sellerID, map[string]interface{}{"theme_color": color}); err != nil {
		return theme.Context{}, err
	}

	applied, _ := s.themes.Apply(prefs, key)
	return applied, nil
}

func (s *sellerServiceImpl) AddPortfolioImage(ctx context.Context, sellerID, url string) ([]string, error) {
	if strings.TrimSpace(url) == "" {
		return nil, apperr.Invalid("url", "image url is required")
	}

	seller, err := s.sellerRepo.FindByID(ctx, sellerID)
	if err != nil {
		return nil, err
	}

	portfolio := append(datatypes.JSONSlice[string]{}, seller.Portfolio...)
	portfolio = append(portfolio, url)
	if err := s.sellerRepo.Update(ctx, sellerID, map[string]interface{}{"portfolio": portfolio}); err != nil {
		return nil, err
	}
	return portfolio, nil
}

func (s *sellerServiceImpl) RemovePortfolioImage(ctx context.Context, sellerID string, index int) ([]string, error) {
	seller, err := s.sellerRepo.FindByID(ctx, sellerID)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(seller.Portfolio) {
		return nil, fmt.Errorf("portfolio image %d: %w", index, apperr.ErrNotFound)
	}

	portfolio := datatypes.JSONSlice[string]{}
	for i, url := range seller.Portfolio {
		if i != index {
			portfolio = append(portfolio, url)
		}
	}
	if err := s.sellerRepo.Update(ctx, sellerID, map[string]interface{}{"portfolio": portfolio}); err != nil {
		return nil, err
	}
	return portfolio, nil
}

func (s *sellerServiceImpl) ShareURL(username string) string {
	return s.baseURL + "/" + username
}
