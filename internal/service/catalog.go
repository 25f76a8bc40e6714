package service

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"bookalink/internal/apperr"
	"bookalink/internal/model"
	"bookalink/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type ServiceInput struct {
	Name        string
	Description string
	Duration    int
	// Price is nil for inquiry-only services.
	Price *decimal.Decimal
}

type ItemInput struct {
	Name        string
	Description string
	Price       *decimal.Decimal
	ImageURL    string
}

type LinkInput struct {
	Label string
	URL   string
}

// Catalog is everything a seller edits from the dashboard.
type Catalog struct {
	Seller    *model.Seller    `json:"seller"`
	Services  []*model.Service `json:"services"`
	Items     []*model.Item    `json:"items"`
	Links     []*model.Link    `json:"links"`
	Portfolio []string         `json:"portfolio"`
}

type CatalogService interface {
	Catalog(ctx context.Context, sellerID string) (*Catalog, error)
	AddService(ctx context.Context, sellerID string, in ServiceInput) (*model.Service, error)
	DeleteService(ctx context.Context, sellerID, serviceID string) error
	AddItem(ctx context.Context, sellerID string, in ItemInput) (*model.Item, error)
	DeleteItem(ctx context.Context, sellerID, itemID string) error
	// AddLink appends the link after the seller's existing ones.
	AddLink(ctx context.Context, sellerID string, in LinkInput) (*model.Link, error)
	DeleteLink(ctx context.Context, sellerID, linkID string) error
}

type catalogServiceImpl struct {
	sellerRepo  repository.SellerRepository
	serviceRepo repository.ServiceRepository
	itemRepo    repository.ItemRepository
	linkRepo    repository.LinkRepository
	log         logrus.FieldLogger
}

func NewCatalogService(
	sellerRepo repository.SellerRepository,
	serviceRepo repository.ServiceRepository,
	itemRepo repository.ItemRepository,
	linkRepo repository.LinkRepository,
	log logrus.FieldLogger,
) CatalogService {
	return &catalogServiceImpl{
		sellerRepo:  sellerRepo,
		serviceRepo: serviceRepo,
		itemRepo:    itemRepo,
		linkRepo:    linkRepo,
		log:         log,
	}
}

func (s *catalogServiceImpl) Catalog(ctx context.Context, sellerID string) (*Catalog, error) {
	seller, err := s.sellerRepo.FindByID(ctx, sellerID)
	if err != nil {
		return nil, err
	}

	log := s.log.WithField("seller_id", sellerID)
	out := &Catalog{
		Seller:    seller,
		Services:  []*model.Service{},
		Items:     []*model.Item{},
		Links:     []*model.Link{},
		Portfolio: append([]string{}, seller.Portfolio...),
	}

	if services, err := s.serviceRepo.ListBySeller(ctx, sellerID); err != nil {
		log.WithError(err).Warn("failed to load services")
	} else {
		out.Services = services
	}
	if items, err := s.itemRepo.ListBySeller(ctx, sellerID); err != nil {
		log.WithError(err).Warn("failed to load items")
	} else {
		out.Items = items
	}
	if links, err := s.linkRepo.ListBySeller(ctx, sellerID); err != nil {
		log.WithError(err).Warn("failed to load links")
	} else {
		out.Links = links
	}

	return out, nil
}

func (s *catalogServiceImpl) AddService(ctx context.Context, sellerID string, in ServiceInput) (*model.Service, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, apperr.Invalid("name", "please fill in service name")
	}
	if in.Duration <= 0 {
		return nil, apperr.Invalid("duration", "duration must be greater than zero")
	}

	service := &model.Service{
		ID:          uuid.NewString(),
		SellerID:    sellerID,
		Name:        name,
		Description: in.Description,
		Duration:    in.Duration,
	}
	if in.Price != nil {
		if in.Price.IsNegative() {
			return nil, apperr.Invalid("price", "price cannot be negative")
		}
		service.Price = decimal.NewNullDecimal(in.Price.Round(2))
	}

	if err := s.serviceRepo.Create(ctx, service); err != nil {
		return nil, err
	}
	return service, nil
}

func (s *catalogServiceImpl) DeleteService(ctx context.Context, sellerID, serviceID string) error {
	return s.serviceRepo.Delete(ctx, sellerID, serviceID)
}

func (s *catalogServiceImpl) AddItem(ctx context.Context, sellerID string, in ItemInput) (*model.Item, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, apperr.Invalid("name", "please fill in item name")
	}
	if in.Price == nil {
		return nil, apperr.Invalid("price", "please enter a price")
	}
	if in.Price.IsNegative() {
		return nil, apperr.Invalid("price", "price cannot be negative")
	}

	item := &model.Item{
		ID:          uuid.NewString(),
		SellerID:    sellerID,
		Name:        name,
		Description: in.Description,
		Price:       in.Price.Round(2),
		ImageURL:    strings.TrimSpace(in.ImageURL),
	}
	if err := s.itemRepo.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *catalogServiceImpl) DeleteItem(ctx context.Context, sellerID, itemID string) error {
	return s.itemRepo.Delete(ctx, sellerID, itemID)
}

func (s *catalogServiceImpl) AddLink(ctx context.Context, sellerID string, in LinkInput) (*model.Link, error) {
	label := strings.TrimSpace(in.Label)
	if label == "" {
		return nil, apperr.Invalid("label", "please fill in a label")
	}
	target := strings.TrimSpace(in.URL)
	if err := checkLinkURL(target); err != nil {
		return nil, err
	}

	count, err := s.linkRepo.Count(ctx, sellerID)
	if err != nil {
		return nil, err
	}

	link := &model.Link{
		ID:       uuid.NewString(),
		SellerID: sellerID,
		Type:     "custom",
		Label:    label,
		URL:      target,
		Position: int(count),
	}
	if err := s.linkRepo.Create(ctx, link); err != nil {
		return nil, err
	}
	return link, nil
}

func (s *catalogServiceImpl) DeleteLink(ctx context.Context, sellerID, linkID string) error {
	return s.linkRepo.Delete(ctx, sellerID, linkID)
}

func checkLinkURL(raw string) error {
	if raw == "" {
		return apperr.Invalid("url", "please fill in a url")
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return apperr.Invalid("url", fmt.Sprintf("%q is not an http(s) url", raw))
	}
	return nil
}
