// Package metrics holds the Prometheus collectors for the API and the
// recipe pipeline. A nil *Collector is valid and records nothing.
package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "ginraidee"

type Collector struct {
	httpRequests       *prometheus.CounterVec
	httpDuration       *prometheus.HistogramVec
	recipeResults      *prometheus.CounterVec
	providerFailures   *prometheus.CounterVec
	inventoryMutations *prometheus.CounterVec
}

func NewCollector(reg prometheus.Registerer) *Collector {
	factory := promauto.With(reg)
	return &Collector{
		httpRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		httpDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "HTTP request latency",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		recipeResults: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "recipe",
				Name:      "results_total",
				Help:      "Recipe results by variant and source",
			},
			[]string{"variant", "source"},
		),
		providerFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "recipe",
				Name:      "provider_failures_total",
				Help:      "Failed completion calls per provider",
			},
			[]string{"provider"},
		),
		inventoryMutations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "inventory",
				Name:      "mutations_total",
				Help:      "Inventory writes by operation",
			},
			[]string{"operation"},
		),
	}
}

func (c *Collector) ObserveRecipe(variant, source string) {
	if c == nil {
		return
	}
	c.recipeResults.WithLabelValues(variant, source).Inc()
}

func (c *Collector) ObserveProviderFailure(provider string) {
	if c == nil {
		return
	}
	c.providerFailures.WithLabelValues(provider).Inc()
}

func (c *Collector) ObserveMutation(operation string) {
	if c == nil {
		return
	}
	c.inventoryMutations.WithLabelValues(operation).Inc()
}

// Middleware records request counts and latency keyed by route pattern.
func (c *Collector) Middleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		if c == nil {
			return ctx.Next()
		}
		start := time.Now()
		err := ctx.Next()

		status := ctx.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		route := ctx.Route().Path
		c.httpRequests.WithLabelValues(ctx.Method(), route, strconv.Itoa(status)).Inc()
		c.httpDuration.WithLabelValues(ctx.Method(), route).Observe(time.Since(start).Seconds())
		return err
	}
}

// Handler exposes g in the Prometheus text format.
func Handler(g prometheus.Gatherer) fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(g, promhttp.HandlerOpts{}))
}
