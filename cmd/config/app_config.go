package config

import (
	"Ginraidee/domain"
	"Ginraidee/internal/api/handlers"
	"Ginraidee/internal/api/presenters"
	"Ginraidee/internal/api/routes"
	"Ginraidee/internal/middleware"
	"Ginraidee/internal/utils"
	"Ginraidee/pkg/inventory"
	"Ginraidee/pkg/jwt"
	"Ginraidee/pkg/llm"
	"Ginraidee/pkg/metrics"
	"Ginraidee/pkg/prompt"
	"Ginraidee/pkg/recipe"
	"Ginraidee/pkg/user"
	"context"
	"errors"
	"io"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AppOptions carries what NewApp cannot read from configuration.
type AppOptions struct {
	Logger    *zap.Logger
	Completer llm.ChatCompleter
	Registry  *prometheus.Registry
	AccessLog io.Writer
	Now       func() time.Time
	// RateLimit is requests per second per client; zero disables it.
	RateLimit int
}

func NewApp(db *gorm.DB, opts AppOptions) (*fiber.App, error) {
	utils.InitValidator()
	validator := utils.Validate

	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	registry := opts.Registry
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	completer := opts.Completer
	if completer == nil {
		var err error
		completer, err = llm.New(LLMConfig())
		if err != nil {
			return nil, err
		}
	}
	log.Info("recipe provider selected", zap.String("provider", completer.Name()))

	app := fiber.New(fiber.Config{
		AppName:      "Ginraidee",
		ErrorHandler: errorHandler(log),
	})
	app.Use(recover.New())

	if opts.AccessLog != nil {
		app.Use(logger.New(logger.Config{
			TimeFormat: "2006-01-02 15:04:05",
			TimeZone:   "Asia/Bangkok",
			Output:     opts.AccessLog,
		}))
	}
	if opts.RateLimit > 0 {
		app.Use(limiter.New(limiter.Config{
			Max:        opts.RateLimit,
			Expiration: 1 * time.Second,
		}))
	}

	collector := metrics.NewCollector(registry)
	guestUserID := utils.GetConfig("GUEST_USER_ID")
	middlewares := middleware.NewMiddleware(guestUserID)

	// Repository
	userRepository := user.NewUserRepository(db)
	inventoryRepository := inventory.NewInventoryRepository(db)

	// Service
	secret := utils.GetConfig("JWT_SECRET")
	if secret == "" {
		return nil, jwt.ErrMissingSecret
	}
	jwtService := jwt.NewJWTService(secret)
	userService := user.NewUserService(userRepository, jwtService, log.Named("user"))
	inventoryService := inventory.NewInventoryService(inventoryRepository, collector, log.Named("inventory"), opts.Now)
	orchestrator := recipe.NewOrchestrator(completer, prompt.NewBuilder(), log.Named("recipe"),
		recipe.WithMetrics(collector),
		recipe.WithTimeout(60*time.Second),
	)
	recipeService := recipe.NewRecipeService(inventoryService, orchestrator, opts.Now)

	if guestUserID != "" {
		if err := userService.EnsureGuest(context.Background(), guestUserID); err != nil {
			return nil, err
		}
	}

	// Handler
	userHandler := handlers.NewUserHandler(userService, validator)
	inventoryHandler := handlers.NewInventoryHandler(inventoryService, validator)
	recipeHandler := handlers.NewRecipeHandler(recipeService, validator)

	// routes
	routesConfig := routes.Config{
		App:              app,
		UserHandler:      userHandler,
		InventoryHandler: inventoryHandler,
		RecipeHandler:    recipeHandler,
		Middleware:       middlewares,
		JWTService:       jwtService,
		Metrics:          collector,
		Gatherer:         registry,
	}
	routesConfig.Setup()
	return app, nil
}

// errorHandler answers errors no handler turned into a response, such as
// unmatched routes and recovered panics, with the usual envelope.
func errorHandler(log *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		var fe *fiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
		}
		if code >= fiber.StatusInternalServerError {
			log.Error("request failed", zap.String("path", c.Path()), zap.Error(err))
		}
		return presenters.ErrorResponse(c, code, domain.MessageFailedProcessRequest, err)
	}
}

// OpenAccessLog opens ./logs/app.log for the HTTP access log.
func OpenAccessLog() (*os.File, error) {
	if err := os.MkdirAll("./logs", os.ModePerm); err != nil {
		return nil, err
	}
	return os.OpenFile("./logs/app.log", os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
}

func LLMConfig() llm.Config {
	return llm.Config{
		Provider:        utils.GetConfig("LLM_PROVIDER"),
		AzureEndpoint:   utils.GetConfig("AZURE_OPENAI_ENDPOINT"),
		AzureAPIKey:     utils.GetConfig("AZURE_OPENAI_API_KEY"),
		AzureDeployment: utils.GetConfig("AZURE_OPENAI_DEPLOYMENT_NAME"),
		OpenAIAPIKey:    utils.GetConfig("OPENAI_API_KEY"),
		OpenAIBaseURL:   utils.GetConfig("OPENAI_BASE_URL"),
		OpenAIModel:     utils.GetConfig("OPENAI_MODEL"),
	}
}
