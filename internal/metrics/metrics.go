package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds the storefront's collectors.
	Registry = prometheus.NewRegistry()

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "bookalink",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "route", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "bookalink",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10),
		},
		[]string{"method", "route"},
	)

	ProfileViews = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "bookalink",
			Subsystem: "profile",
			Name:      "views_total",
			Help:      "Public profile renders.",
		},
	)

	LinkClicks = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "bookalink",
			Subsystem: "profile",
			Name:      "link_clicks_total",
			Help:      "Tracked link clicks.",
		},
	)

	OrdersCreated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "bookalink",
			Subsystem: "booking",
			Name:      "orders_created_total",
			Help:      "Orders persisted by the booking flow.",
		},
		[]string{"item_type"},
	)

	PaymentHandoffs = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "bookalink",
			Subsystem: "booking",
			Name:      "payment_handoffs_total",
			Help:      "Buyers handed off to a payment method.",
		},
		[]string{"method"},
	)

	Uploads = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "bookalink",
			Subsystem: "upload",
			Name:      "images_total",
			Help:      "Image upload attempts by result.",
		},
		[]string{"result"},
	)

	StatsRefreshes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "bookalink",
			Subsystem: "stats",
			Name:      "refreshes_total",
			Help:      "Dashboard stats recomputations by result.",
		},
		[]string{"result"},
	)
)

func init() {
	Registry.MustRegister(
		httpRequests,
		httpDuration,
		ProfileViews,
		LinkClicks,
		OrdersCreated,
		PaymentHandoffs,
		Uploads,
		StatsRefreshes,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
}

// Handler exposes the registered metrics.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// ObserveRequest records one handled HTTP request. route is the matched
// route pattern, not the raw path.
func ObserveRequest(method, route string, status int, seconds float64) {
	httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	httpDuration.WithLabelValues(method, route).Observe(seconds)
}
