package metrics

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectorCounts(t *testing.T) {
	c := NewCollector(prometheus.NewRegistry())

	c.ObserveRecipe("craving", "fallback")
	c.ObserveRecipe("craving", "fallback")
	c.ObserveProviderFailure("azure")
	c.ObserveMutation("create")

	assert.Equal(t, 2.0, testutil.ToFloat64(c.recipeResults.WithLabelValues("craving", "fallback")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.providerFailures.WithLabelValues("azure")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.inventoryMutations.WithLabelValues("create")))
}

func TestNilCollectorIsNoop(t *testing.T) {
	var c *Collector
	assert.NotPanics(t, func() {
		c.ObserveRecipe("inventory", "generated")
		c.ObserveProviderFailure("openai")
		c.ObserveMutation("delete")
	})
}

func TestMiddlewareAndHandler(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	app := fiber.New()
	app.Use(c.Middleware())
	app.Get("/ping", func(ctx *fiber.Ctx) error { return ctx.SendString("pong") })
	app.Get("/metrics", Handler(reg))

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/ping", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	assert.Equal(t, 1.0, testutil.ToFloat64(c.httpRequests.WithLabelValues("GET", "/ping", "200")))

	resp, err = app.Test(httptest.NewRequest(fiber.MethodGet, "/metrics", nil))
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "ginraidee_http_requests_total")
}
