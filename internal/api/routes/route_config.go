package routes

import (
	"Ginraidee/internal/api/handlers"
	"Ginraidee/internal/middleware"
	"Ginraidee/pkg/jwt"
	"Ginraidee/pkg/metrics"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
)

type Config struct {
	App              *fiber.App
	UserHandler      handlers.UserHandler
	InventoryHandler handlers.InventoryHandler
	RecipeHandler    handlers.RecipeHandler
	Middleware       middleware.Middleware
	JWTService       jwt.JWTService
	Metrics          *metrics.Collector
	Gatherer         prometheus.Gatherer
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.App.Use(c.Metrics.Middleware())
	c.Auth()
	c.Inventory()
	c.Recipes()
	c.GuestRoute()
}

func (c *Config) Auth() {
	auth := c.App.Group("/api/v1/auth")
	{
		auth.Post("/register", c.UserHandler.Register)
		auth.Post("/login", c.UserHandler.Login)
		auth.Post("/refresh", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.RefreshToken)
	}
}

func (c *Config) Inventory() {
	inventory := c.App.Group("/api/v1/inventory", c.Middleware.AuthMiddleware(c.JWTService))
	inventory.Get("/stats", c.InventoryHandler.GetStats)
	inventory.Get("/expiring/soon", c.InventoryHandler.GetExpiringSoon)
	inventory.Get("/by-date/:date", c.InventoryHandler.GetItemsByDate)

	inventory.Post("", c.InventoryHandler.AddItem)
	inventory.Get("", c.InventoryHandler.GetItems)
	inventory.Get("/:id", c.InventoryHandler.GetItem)
	inventory.Put("/:id", c.InventoryHandler.UpdateItem)
	inventory.Delete("/:id", c.InventoryHandler.DeleteItem)
}

func (c *Config) Recipes() {
	recipes := c.App.Group("/api/v1/recipes", c.Middleware.AuthMiddleware(c.JWTService))
	recipes.Post("/generate", c.RecipeHandler.GenerateRecipe)
	recipes.Post("/suggest", c.RecipeHandler.SuggestRecipes)
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
	c.App.Get("/api/v1/catalog", c.InventoryHandler.GetCatalog)
	if c.Gatherer != nil {
		c.App.Get("/metrics", metrics.Handler(c.Gatherer))
	}
}
