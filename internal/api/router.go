package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/kawuz/coffee-shop-api/internal/api/handler"
	"github.com/kawuz/coffee-shop-api/internal/api/middleware"
	"github.com/kawuz/coffee-shop-api/internal/core/ports"
	"github.com/kawuz/coffee-shop-api/internal/core/service"
	"github.com/kawuz/coffee-shop-api/internal/infrastructure/config"
	mongodb "github.com/kawuz/coffee-shop-api/internal/infrastructure/db/mongo"
	redisdb "github.com/kawuz/coffee-shop-api/internal/infrastructure/db/redis"
)

// Dependencies carries the externally constructed collaborators the router
// wires into handlers.
type Dependencies struct {
	Mongo   *mongo.Database
	Redis   *redis.Client
	Tokens  ports.TokenIssuer
	Captcha ports.CaptchaVerifier
	Mailer  ports.OrderNotifier
	Logger  zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg *config.Config, deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("kawuz"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(deps.Mongo)
	productRepo := mongodb.NewProductRepository(deps.Mongo)
	topCache := redisdb.NewTopSellersCache(deps.Redis)

	credentials := CredentialVerifierFor(cfg.PasswordScheme)
	authService := service.NewAuthService(userRepo, deps.Captcha, credentials, deps.Tokens, deps.Logger)
	orderService := service.NewOrderService(productRepo, userRepo, deps.Mailer, deps.Logger)
	catalogService := service.NewCatalogService(productRepo, topCache, deps.Logger)

	authHandler := handler.NewAuthHandler(authService, cfg.CookieSecure)
	orderHandler := handler.NewOrderHandler(orderService)
	productHandler := handler.NewProductHandler(catalogService)

	sessionAuth := middleware.Auth(deps.Tokens, "order.notLoggedIn")
	adminAuth := middleware.Auth(deps.Tokens, "auth.notLoggedIn")
	adminOnly := middleware.RequireAdmin(userRepo)

	// --- Auth routes ---
	auth := e.Group("/api/auth")
	auth.POST("/login", authHandler.Login)
	auth.POST("/logout", authHandler.Logout)
	auth.GET("/me", authHandler.Me)
	auth.POST("/register", authHandler.Register)

	// --- Order routes (session cookie required) ---
	e.POST("/api/order/create", orderHandler.Create, sessionAuth)

	// --- Catalog routes ---
	e.GET("/api/products", productHandler.List)
	e.GET("/api/product/top10", productHandler.TopSellers)
	e.GET("/api/product/search", productHandler.Search)
	e.GET("/api/product/:id", productHandler.Get)
	e.POST("/api/product", productHandler.Create, adminAuth, adminOnly)
	e.PUT("/api/product/:id", productHandler.Update, adminAuth, adminOnly)
	e.DELETE("/api/product/:id", productHandler.Delete, adminAuth, adminOnly)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.Mongo, deps.Redis)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}

// CredentialVerifierFor maps the configured password scheme to a strategy.
// Unknown values fall back to plain comparison, the legacy default.
func CredentialVerifierFor(scheme string) ports.CredentialVerifier {
	if scheme == "bcrypt" {
		return service.BcryptCredentials{}
	}
	return service.PlainCredentials{}
}
