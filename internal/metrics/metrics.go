// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "pantry_hub"

var (
	once sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route, method and status code.",
		},
		[]string{"route", "method", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"route"},
	)

	notificationsCreated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_created_total",
			Help:      "Expiry notifications written, by status.",
		},
		[]string{"status"},
	)

	notifierRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifier_runs_total",
			Help:      "Expiry notifier runs by outcome.",
		},
		[]string{"outcome"},
	)

	recipeCache = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "recipe_cache_requests_total",
			Help:      "Recipe cache lookups by result.",
		},
		[]string{"result"},
	)

	rateLimited = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rate_limited_requests_total",
			Help:      "Requests rejected by the rate limiter.",
		},
	)
)

// Register registers Prometheus metrics. Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(
			httpRequests,
			httpDuration,
			notificationsCreated,
			notifierRuns,
			recipeCache,
			rateLimited,
		)
	})
}

// ObserveHTTP records one served request.
func ObserveHTTP(route, method string, status int, elapsed time.Duration) {
	httpRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	httpDuration.WithLabelValues(route).Observe(elapsed.Seconds())
}

// AddNotifications counts notifications written for a status.
func AddNotifications(status string, n int) {
	if n > 0 {
		notificationsCreated.WithLabelValues(status).Add(float64(n))
	}
}

// IncNotifierRun counts a notifier run; outcome is "success", "retry" or "failure".
func IncNotifierRun(outcome string) {
	notifierRuns.WithLabelValues(outcome).Inc()
}

// IncRecipeCache counts a recipe cache lookup; result is "hit", "miss" or "error".
func IncRecipeCache(result string) {
	recipeCache.WithLabelValues(result).Inc()
}

// IncRateLimited counts a rejected request.
func IncRateLimited() {
	rateLimited.Inc()
}
