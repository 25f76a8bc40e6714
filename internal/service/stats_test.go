package service

import (
	"context"
	"testing"
	"time"

	"bookalink/internal/config"
	"bookalink/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeStats(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	orders := []*model.Order{
		{ItemPrice: decimal.NewNullDecimal(decimal.RequireFromString("12.50"))},
		{ItemPrice: decimal.NewNullDecimal(decimal.RequireFromString("40"))},
		{},
	}
	events := []*model.AnalyticsEvent{
		{EventType: model.EventProfileView, Timestamp: now.Add(-time.Hour)},
		{EventType: model.EventProfileView, Timestamp: now.Add(-3 * 24 * time.Hour)},
		{EventType: model.EventProfileView, Timestamp: now.Add(-8 * 24 * time.Hour)},
		{EventType: model.EventProfileView, Timestamp: time.Date(2026, 2, 27, 0, 0, 0, 0, time.UTC)},
		{EventType: model.EventLinkClick, Timestamp: now},
		{EventType: model.EventLinkClick, Timestamp: now},
	}

	stats := ComputeStats(orders, events, now)

	assert.Equal(t, 3, stats.TotalOrders)
	assert.Equal(t, "52.50", stats.TotalRevenue.StringFixed(2))
	assert.Equal(t, 4, stats.ProfileViews)
	assert.Equal(t, 2, stats.LinkClicks)
	assert.Equal(t, 1, stats.TodayViews)
	assert.Equal(t, 2, stats.WeekViews)
	assert.Equal(t, 3, stats.MonthViews)
}

func TestComputeStats_Empty(t *testing.T) {
	stats := ComputeStats(nil, nil, time.Now())

	assert.Zero(t, stats.TotalOrders)
	assert.True(t, stats.TotalRevenue.IsZero())
}

func TestStatsService_CachesWithinInterval(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	seller := f.seller(t, "alice")

	clock := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	svc := NewStatsService(f.orders, f.analytics, &config.Stats{Interval: 30 * time.Second, WatchTTL: time.Minute}, func() time.Time { return clock }, f.log)

	assert.Zero(t, svc.Get(ctx, seller.ID).ProfileViews)

	require.NoError(t, f.analytics.Append(ctx, seller.ID, model.EventProfileView, ""))

	clock = clock.Add(10 * time.Second)
	assert.Zero(t, svc.Get(ctx, seller.ID).ProfileViews, "served from snapshot")

	clock = clock.Add(30 * time.Second)
	assert.Equal(t, 1, svc.Get(ctx, seller.ID).ProfileViews)
}

func TestStatsService_RefreshWatchedSellers(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	alice := f.seller(t, "alice")

	clock := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	svc := NewStatsService(f.orders, f.analytics, &config.Stats{Interval: time.Hour, WatchTTL: time.Minute}, func() time.Time { return clock }, f.log)

	svc.Get(ctx, alice.ID)
	require.NoError(t, f.orders.Create(ctx, &model.Order{
		ID: uuid.NewString(), SellerID: alice.ID, ItemID: "i", ItemType: model.ItemTypeItem, ItemName: "Mug",
		ItemPrice: decimal.NewNullDecimal(decimal.NewFromInt(10)), BuyerName: "Bob", BuyerEmail: "bob@x.com", Status: model.OrderPending,
	}))

	clock = clock.Add(30 * time.Second)
	svc.Refresh(ctx)
	assert.Equal(t, 1, svc.Get(ctx, alice.ID).TotalOrders, "refresh updated the snapshot")
}

func TestStatsService_RefreshDropsIdleSellers(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	alice := f.seller(t, "alice")

	clock := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	impl := NewStatsService(f.orders, f.analytics, &config.Stats{Interval: time.Hour, WatchTTL: time.Minute}, func() time.Time { return clock }, f.log).(*statsServiceImpl)

	impl.Get(ctx, alice.ID)
	clock = clock.Add(2 * time.Minute)
	impl.Refresh(ctx)

	impl.mu.Lock()
	defer impl.mu.Unlock()
	assert.Empty(t, impl.watched)
	assert.Empty(t, impl.snapshots)
}

type countingStats struct {
	calls   chan struct{}
	release chan struct{}
}

func (c *countingStats) Get(context.Context, string) Stats { return Stats{} }

func (c *countingStats) Refresh(context.Context) {
	c.calls <- struct{}{}
	<-c.release
}

func TestStatsRefresher_SkipsOverlappingTicks(t *testing.T) {
	stats := &countingStats{calls: make(chan struct{}, 10), release: make(chan struct{})}
	refresher, err := NewStatsRefresher(stats, time.Second, newFixture(t).log)
	require.NoError(t, err)

	refresher.Start()

	select {
	case <-stats.calls:
	case <-time.After(3 * time.Second):
		t.Fatal("refresh never ran")
	}

	// the first refresh is still blocked, so the next ticks are skipped
	time.Sleep(2500 * time.Millisecond)
	assert.Len(t, stats.calls, 0)

	close(stats.release)
	<-refresher.Stop().Done()
}

func TestNewStatsRefresher_BadInterval(t *testing.T) {
	_, err := NewStatsRefresher(&countingStats{}, -time.Second, newFixture(t).log)
	assert.Error(t, err)
}
