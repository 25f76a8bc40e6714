package service

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"bookalink/internal/apperr"
	"bookalink/internal/metrics"
	"bookalink/internal/model"
	"bookalink/internal/repository"
	"bookalink/internal/theme"

	"github.com/sirupsen/logrus"
)

const DefaultLinkEmoji = "🔗"

type LinkView struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Text  string `json:"text"`
	Emoji string `json:"emoji"`
	URL   string `json:"url"`
}

type ReviewSummary struct {
	Count   int     `json:"count"`
	Average float64 `json:"average"`
	// Breakdown maps 5..1 stars to the number of reviews with that rating.
	Breakdown map[int]int `json:"breakdown"`
}

type Profile struct {
	Seller        *model.Seller    `json:"seller"`
	Services      []*model.Service `json:"services"`
	Items         []*model.Item    `json:"items"`
	Links         []LinkView       `json:"links"`
	Portfolio     []string         `json:"portfolio"`
	Reviews       []*model.Review  `json:"reviews"`
	ReviewSummary ReviewSummary    `json:"review_summary"`
	Theme         theme.Context    `json:"theme"`
	ShareURL      string           `json:"share_url"`
}

type ProfileService interface {
	// Render loads a seller's public page and records a profile view.
	Render(ctx context.Context, username string, prefs theme.PreferenceStore) (*Profile, error)
	// RecordLinkClick records a click and returns where the link points.
	RecordLinkClick(ctx context.Context, username, linkID string) (string, error)
	// Resolve finds exactly one seller by username.
	Resolve(ctx context.Context, username string) (*model.Seller, error)
}

type profileServiceImpl struct {
	sellerRepo    repository.SellerRepository
	serviceRepo   repository.ServiceRepository
	itemRepo      repository.ItemRepository
	linkRepo      repository.LinkRepository
	reviewRepo    repository.ReviewRepository
	analyticsRepo repository.AnalyticsRepository
	sellers       SellerService
	themes        *theme.Registry
	log           logrus.FieldLogger
}

func NewProfileService(
	sellerRepo repository.SellerRepository,
	serviceRepo repository.ServiceRepository,
	itemRepo repository.ItemRepository,
	linkRepo repository.LinkRepository,
	reviewRepo repository.ReviewRepository,
	analyticsRepo repository.AnalyticsRepository,
	sellers SellerService,
	themes *theme.Registry,
	log logrus.FieldLogger,
) ProfileService {
	return &profileServiceImpl{
		sellerRepo:    sellerRepo,
		serviceRepo:   serviceRepo,
		itemRepo:      itemRepo,
		linkRepo:      linkRepo,
		reviewRepo:    reviewRepo,
		analyticsRepo: analyticsRepo,
		sellers:       sellers,
		themes:        themes,
		log:           log,
	}
}

func (s *profileServiceImpl) Resolve(ctx context.Context, username string) (*model.Seller, error) {
	matches, err := s.sellerRepo.FindByUsername(ctx, strings.ToLower(username))
	if err != nil {
		return nil, err
	}

	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("seller %q: %w", username, apperr.ErrNotFound)
	case 1:
		return matches[0], nil
	default:
		return nil, fmt.Errorf("seller %q: %w", username, apperr.ErrAmbiguous)
	}
}

func (s *profileServiceImpl) Render(ctx context.Context, username string, prefs theme.PreferenceStore) (*Profile, error) {
	seller, err := s.Resolve(ctx, username)
	if err != nil {
		return nil, err
	}

	log := s.log.WithField("seller_id", seller.ID)
	public := *seller
	public.Email = ""

	p := &Profile{
		Seller:    &public,
		Services:  []*model.Service{},
		Items:     []*model.Item{},
		Links:     []LinkView{},
		Portfolio: append([]string{}, seller.Portfolio...),
		Reviews:   []*model.Review{},
		Theme:     s.themes.ForSeller(prefs, seller.ThemeColor),
		ShareURL:  s.sellers.ShareURL(seller.Username),
	}

	if services, err := s.serviceRepo.ListBySeller(ctx, seller.ID); err != nil {
		log.WithError(err).Warn("failed to load services")
	} else {
		p.Services = services
	}
	if items, err := s.itemRepo.ListBySeller(ctx, seller.ID); err != nil {
		log.WithError(err).Warn("failed to load items")
	} else {
		p.Items = items
	}
	if links, err := s.linkRepo.ListBySeller(ctx, seller.ID); err != nil {
		log.WithError(err).Warn("failed to load links")
	} else {
		for _, l := range links {
			p.Links = append(p.Links, newLinkView(l))
		}
	}
	if reviews, err := s.reviewRepo.ListBySeller(ctx, seller.ID); err != nil {
		log.WithError(err).Warn("failed to load reviews")
	} else {
		p.Reviews = reviews
	}
	p.ReviewSummary = SummarizeReviews(p.Reviews)

	if err := s.analyticsRepo.Append(ctx, seller.ID, model.EventProfileView, ""); err != nil {
		log.WithError(err).Warn("failed to record profile view")
	} else {
		metrics.ProfileViews.Inc()
	}

	return p, nil
}

func (s *profileServiceImpl) RecordLinkClick(ctx context.Context, username, linkID string) (string, error) {
	seller, err := s.Resolve(ctx, username)
	if err != nil {
		return "", err
	}

	link, err := s.linkRepo.FindByID(ctx, seller.ID, linkID)
	if err != nil {
		return "", err
	}

	if err := s.analyticsRepo.Append(ctx, seller.ID, model.EventLinkClick, link.ID); err != nil {
		s.log.WithError(err).WithFields(logrus.Fields{
			"seller_id": seller.ID,
			"link_id":   link.ID,
		}).Warn("failed to record link click")
	} else {
		metrics.LinkClicks.Inc()
	}

	return link.URL, nil
}

func SummarizeReviews(reviews []*model.Review) ReviewSummary {
	summary := ReviewSummary{Breakdown: map[int]int{5: 0, 4: 0, 3: 0, 2: 0, 1: 0}}

	total := 0
	for _, r := range reviews {
		if r.Rating < 1 || r.Rating > 5 {
			continue
		}
		summary.Count++
		summary.Breakdown[r.Rating]++
		total += r.Rating
	}
	if summary.Count > 0 {
		avg := float64(total) / float64(summary.Count)
		summary.Average = float64(int(avg*10+0.5)) / 10
	}
	return summary
}

func newLinkView(l *model.Link) LinkView {
	emoji, text := SplitEmoji(l.Label)
	if emoji == "" {
		emoji = DefaultLinkEmoji
	}
	return LinkView{ID: l.ID, Label: l.Label, Text: text, Emoji: emoji, URL: l.URL}
}

// SplitEmoji returns the first emoji in label and the label with every emoji
// removed. Multi-rune emoji sequences keep only their first rune.
func SplitEmoji(label string) (string, string) {
	var first string
	var b strings.Builder
	for _, r := range label {
		if isEmoji(r) {
			if first == "" {
				first = string(r)
			}
			continue
		}
		if r == '\u200d' || r == '\ufe0f' {
			continue
		}
		b.WriteRune(r)
	}
	return first, strings.TrimSpace(b.String())
}

var emojiRanges = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x2300, Hi: 0x23ff, Stride: 1},
		{Lo: 0x2600, Hi: 0x27bf, Stride: 1},
		{Lo: 0x2b00, Hi: 0x2bff, Stride: 1},
	},
	R32: []unicode.Range32{
		{Lo: 0x1f000, Hi: 0x1faff, Stride: 1},
	},
}

func isEmoji(r rune) bool {
	return unicode.Is(emojiRanges, r)
}
