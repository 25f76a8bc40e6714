package service

import (
	"context"
	"strings"

	"bookalink/internal/model"
	"bookalink/internal/repository"

	"github.com/sirupsen/logrus"
	"golang.org/x/text/cases"
)

type Facet string

const (
	FacetAll      Facet = "all"
	FacetServices Facet = "services"
	FacetProducts Facet = "products"
)

// ParseFacet maps unknown or empty values to FacetAll.
func ParseFacet(s string) Facet {
	switch Facet(strings.ToLower(s)) {
	case FacetServices:
		return FacetServices
	case FacetProducts:
		return FacetProducts
	}
	return FacetAll
}

// Marketplace is an unpaginated snapshot of every public listing.
type Marketplace struct {
	SellerCount int              `json:"seller_count"`
	Services    []*model.Service `json:"services"`
	Items       []*model.Item    `json:"items"`
}

type MarketplaceService interface {
	Load(ctx context.Context) *Marketplace
	Search(ctx context.Context, query string, facet Facet) *Marketplace
}

type marketplaceServiceImpl struct {
	sellerRepo  repository.SellerRepository
	serviceRepo repository.ServiceRepository
	itemRepo    repository.ItemRepository
	log         logrus.FieldLogger
}

func NewMarketplaceService(
	sellerRepo repository.SellerRepository,
	serviceRepo repository.ServiceRepository,
	itemRepo repository.ItemRepository,
	log logrus.FieldLogger,
) MarketplaceService {
	return &marketplaceServiceImpl{
		sellerRepo:  sellerRepo,
		serviceRepo: serviceRepo,
		itemRepo:    itemRepo,
		log:         log,
	}
}

// Load never fails: a section that cannot be read is logged and left empty.
func (s *marketplaceServiceImpl) Load(ctx context.Context) *Marketplace {
	m := &Marketplace{
		Services: []*model.Service{},
		Items:    []*model.Item{},
	}

	if sellers, err := s.sellerRepo.ListPublic(ctx); err != nil {
		s.log.WithError(err).Warn("failed to load marketplace sellers")
	} else {
		m.SellerCount = len(sellers)
	}
	if services, err := s.serviceRepo.ListAll(ctx); err != nil {
		s.log.WithError(err).Warn("failed to load marketplace services")
	} else {
		m.Services = services
	}
	if items, err := s.itemRepo.ListAll(ctx); err != nil {
		s.log.WithError(err).Warn("failed to load marketplace items")
	} else {
		m.Items = items
	}

	return m
}

func (s *marketplaceServiceImpl) Search(ctx context.Context, query string, facet Facet) *Marketplace {
	return Filter(s.Load(ctx), query, facet)
}

// Filter keeps listings whose name, description, seller name or seller
// business name contains query under Unicode case folding, and whose kind
// matches facet.
func Filter(m *Marketplace, query string, facet Facet) *Marketplace {
	// a Caser holds state and is not safe for concurrent use
	fold := cases.Fold()
	needle := fold.String(strings.TrimSpace(query))

	out := &Marketplace{
		SellerCount: m.SellerCount,
		Services:    []*model.Service{},
		Items:       []*model.Item{},
	}

	if facet == FacetAll || facet == FacetServices {
		for _, svc := range m.Services {
			if matches(fold, needle, svc.Name, svc.Description, svc.Seller) {
				out.Services = append(out.Services, svc)
			}
		}
	}
	if facet == FacetAll || facet == FacetProducts {
		for _, item := range m.Items {
			if matches(fold, needle, item.Name, item.Description, item.Seller) {
				out.Items = append(out.Items, item)
			}
		}
	}

	return out
}

func matches(fold cases.Caser, needle, name, description string, seller *model.Seller) bool {
	if needle == "" {
		return true
	}

	fields := []string{name, description}
	if seller != nil {
		fields = append(fields, seller.Name, seller.BusinessName)
	}
	for _, f := range fields {
		if f != "" && strings.Contains(fold.String(f), needle) {
			return true
		}
	}
	return false
}
