package service

import (
	"context"
	"testing"
	"time"

	"bookalink/internal/auth"
	"bookalink/internal/config"
	"bookalink/internal/model"
	"bookalink/internal/repository"
	"bookalink/internal/testutil"
	"bookalink/internal/theme"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type fixture struct {
	db        *gorm.DB
	accounts  repository.AccountRepository
	sellers   repository.SellerRepository
	services  repository.ServiceRepository
	items     repository.ItemRepository
	links     repository.LinkRepository
	orders    repository.OrderRepository
	analytics repository.AnalyticsRepository
	reviews   repository.ReviewRepository
	identity  auth.Provider
	themes    *theme.Registry
	log       *logrus.Logger
	hook      *test.Hook
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := testutil.NewDB(t)
	logger, hook := test.NewNullLogger()
	accounts := repository.NewAccountRepository(db)

	return &fixture{
		db:        db,
		accounts:  accounts,
		sellers:   repository.NewSellerRepository(db),
		services:  repository.NewServiceRepository(db),
		items:     repository.NewItemRepository(db),
		links:     repository.NewLinkRepository(db),
		orders:    repository.NewOrderRepository(db),
		analytics: repository.NewAnalyticsRepository(db),
		reviews:   repository.NewReviewRepository(db),
		identity:  auth.NewProvider(accounts, &config.Auth{JWTSecret: "test", TokenTTL: time.Hour}, auth.WithCost(bcrypt.MinCost)),
		themes:    theme.Default(),
		log:       logger,
		hook:      hook,
	}
}

func (f *fixture) sellerService() SellerService {
	return NewSellerService(f.sellers, f.identity, f.themes, "https://bookalink.test/", f.log)
}

func (f *fixture) catalogService() CatalogService {
	return NewCatalogService(f.sellers, f.services, f.items, f.links, f.log)
}

func (f *fixture) profileService() ProfileService {
	return NewProfileService(f.sellers, f.services, f.items, f.links, f.reviews, f.analytics, f.sellerService(), f.themes, f.log)
}

func (f *fixture) marketplaceService() MarketplaceService {
	return NewMarketplaceService(f.sellers, f.services, f.items, f.log)
}

func (f *fixture) bookingService() BookingService {
	return NewBookingService(f.profileService(), f.sellers, f.services, f.items, f.orders, f.log)
}

func (f *fixture) seller(t *testing.T, username string, opts ...func(*model.Seller)) *model.Seller {
	t.Helper()

	s := &model.Seller{
		ID:       uuid.NewString(),
		Username: username,
		Name:     username,
		Email:    username + "@example.com",
	}
	for _, opt := range opts {
		opt(s)
	}
	require.NoError(t, f.sellers.Create(context.Background(), s))
	return s
}
