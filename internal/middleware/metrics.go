package middleware

import (
	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by command name.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pulse_redis_errors_total",
		Help: "Total number of Redis errors by command",
	}, []string{"command"})

	// FeedCacheHits counts feed page cache lookups by outcome.
	FeedCacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pulse_feed_cache_lookups_total",
		Help: "Feed page cache lookups by outcome (hit/miss)",
	}, []string{"outcome"})
)

// InitMetrics creates the Prometheus middleware for the given service name.
func InitMetrics(service string) *fiberprometheus.FiberPrometheus {
	return fiberprometheus.New(service)
}

// MetricsMiddleware returns the Fiber handler that records request metrics.
func MetricsMiddleware(prom *fiberprometheus.FiberPrometheus) fiber.Handler {
	return prom.Middleware
}
