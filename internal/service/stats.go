package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"bookalink/internal/config"
	"bookalink/internal/metrics"
	"bookalink/internal/model"
	"bookalink/internal/repository"

	"github.com/robfig/cron/v3"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type Stats struct {
	TotalOrders  int             `json:"total_orders"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
	ProfileViews int             `json:"profile_views"`
	LinkClicks   int             `json:"link_clicks"`
	TodayViews   int             `json:"today_views"`
	WeekViews    int             `json:"week_views"`
	MonthViews   int             `json:"month_views"`
	ComputedAt   time.Time       `json:"computed_at"`
}

// ComputeStats aggregates a seller's orders and analytics as of now. Today and
// month boundaries are taken in now's location; the week is the trailing
// seven days.
func ComputeStats(orders []*model.Order, events []*model.AnalyticsEvent, now time.Time) Stats {
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	weekStart := now.Add(-7 * 24 * time.Hour)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	stats := Stats{
		TotalOrders:  len(orders),
		TotalRevenue: decimal.Zero,
		ComputedAt:   now,
	}
	for _, o := range orders {
		if o.ItemPrice.Valid {
			stats.TotalRevenue = stats.TotalRevenue.Add(o.ItemPrice.Decimal)
		}
	}

	for _, e := range events {
		switch e.EventType {
		case model.EventLinkClick:
			stats.LinkClicks++
		case model.EventProfileView:
			stats.ProfileViews++
			if !e.Timestamp.Before(todayStart) {
				stats.TodayViews++
			}
			if !e.Timestamp.Before(weekStart) {
				stats.WeekViews++
			}
			if !e.Timestamp.Before(monthStart) {
				stats.MonthViews++
			}
		}
	}

	return stats
}

type StatsService interface {
	// Get returns the cached snapshot when it is fresher than the refresh
	// interval, otherwise computes one. The seller is then kept warm by
	// Refresh until it stops asking for the watch TTL.
	Get(ctx context.Context, sellerID string) Stats
	// Refresh recomputes every watched seller's snapshot.
	Refresh(ctx context.Context)
}

type statsServiceImpl struct {
	orderRepo     repository.OrderRepository
	analyticsRepo repository.AnalyticsRepository
	interval      time.Duration
	watchTTL      time.Duration
	now           func() time.Time
	log           logrus.FieldLogger

	mu        sync.Mutex
	watched   map[string]time.Time
	snapshots map[string]Stats
}

func NewStatsService(
	orderRepo repository.OrderRepository,
	analyticsRepo repository.AnalyticsRepository,
	cfg *config.Stats,
	now func() time.Time,
	log logrus.FieldLogger,
) StatsService {
	if now == nil {
		now = time.Now
	}
	return &statsServiceImpl{
		orderRepo:     orderRepo,
		analyticsRepo: analyticsRepo,
		interval:      cfg.Interval,
		watchTTL:      cfg.WatchTTL,
		now:           now,
		log:           log,
		watched:       map[string]time.Time{},
		snapshots:     map[string]Stats{},
	}
}

func (s *statsServiceImpl) Get(ctx context.Context, sellerID string) Stats {
	now := s.now()

	s.mu.Lock()
	s.watched[sellerID] = now
	snap, ok := s.snapshots[sellerID]
	s.mu.Unlock()

	if ok && now.Sub(snap.ComputedAt) < s.interval {
		return snap
	}
	return s.compute(ctx, sellerID, now)
}

func (s *statsServiceImpl) Refresh(ctx context.Context) {
	now := s.now()

	s.mu.Lock()
	var sellers []string
	for id, seen := range s.watched {
		if now.Sub(seen) > s.watchTTL {
			delete(s.watched, id)
			delete(s.snapshots, id)
			continue
		}
		sellers = append(sellers, id)
	}
	s.mu.Unlock()

	for _, id := range sellers {
		if ctx.Err() != nil {
			return
		}
		s.compute(ctx, id, now)
	}
}

// compute never fails: a collection that cannot be read counts as empty.
func (s *statsServiceImpl) compute(ctx context.Context, sellerID string, now time.Time) Stats {
	log := s.log.WithField("seller_id", sellerID)
	result := "ok"

	orders, err := s.orderRepo.ListBySeller(ctx, sellerID)
	if err != nil {
		log.WithError(err).Warn("failed to load orders for stats")
		result = "partial"
	}
	events, err := s.analyticsRepo.ListBySeller(ctx, sellerID)
	if err != nil {
		log.WithError(err).Warn("failed to load analytics for stats")
		result = "partial"
	}
	metrics.StatsRefreshes.WithLabelValues(result).Inc()

	stats := ComputeStats(orders, events, now)

	s.mu.Lock()
	s.snapshots[sellerID] = stats
	s.mu.Unlock()

	return stats
}

// StatsRefresher runs StatsService.Refresh on a fixed interval. A tick that
// fires while the previous refresh is still running is skipped.
type StatsRefresher struct {
	cron *cron.Cron
}

func NewStatsRefresher(stats StatsService, interval time.Duration, log logrus.FieldLogger) (*StatsRefresher, error) {
	if interval < time.Second {
		return nil, fmt.Errorf("stats refresh interval %s is below one second", interval)
	}

	logger := cron.PrintfLogger(log)
	c := cron.New(
		cron.WithLogger(logger),
		cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
	)

	_, err := c.AddFunc(fmt.Sprintf("@every %s", interval), func() {
		stats.Refresh(context.Background())
	})
	if err != nil {
		return nil, fmt.Errorf("schedule stats refresh: %w", err)
	}

	return &StatsRefresher{cron: c}, nil
}

func (r *StatsRefresher) Start() {
	r.cron.Start()
}

// Stop halts scheduling; the returned context is done once a running refresh
// finishes.
func (r *StatsRefresher) Stop() context.Context {
	return r.cron.Stop()
}
