package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/NagulmeeraShaik7/products-api/internal/api/handler"
	"github.com/NagulmeeraShaik7/products-api/internal/api/middleware"
	"github.com/NagulmeeraShaik7/products-api/internal/core/domain"
	"github.com/NagulmeeraShaik7/products-api/internal/core/service"
	mongodb "github.com/NagulmeeraShaik7/products-api/internal/infrastructure/db/mongo"
	redisdb "github.com/NagulmeeraShaik7/products-api/internal/infrastructure/db/redis"
	"github.com/NagulmeeraShaik7/products-api/internal/infrastructure/queue"

	_ "github.com/NagulmeeraShaik7/products-api/docs"
)

// Options carries the runtime settings the router needs.
type Options struct {
	JWTSecret string
	TokenTTL  time.Duration
	// Workers is the number of order-event dispatcher workers.
	// Zero selects the dispatcher default.
	Workers int
}

// NewRouter builds the Echo instance with all routes registered and returns
// it together with the order-event dispatcher (started by the caller).
func NewRouter(db *mongo.Database, rdb *redis.Client, log zerolog.Logger, opts Options) (*echo.Echo, *queue.Dispatcher) {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.CORS())
	e.Use(echoprometheus.NewMiddleware("products_api"))

	// --- Dependencies ---
	authRepo := mongodb.NewAuthRepository(db)
	authService := service.NewAuthService(authRepo, opts.JWTSecret, opts.TokenTTL)
	authHandler := handler.NewAuthHandler(authService)

	productRepo := mongodb.NewProductRepository(db)
	productService := service.NewProductService(productRepo, log)
	productHandler := handler.NewProductHandler(productService)

	orderRepo := mongodb.NewOrderRepository(db)
	dedup := redisdb.NewDedupChecker(rdb)
	orderService := service.NewOrderService(orderRepo, productRepo, dedup, log)
	dispatcher := queue.NewDispatcher(opts.Workers, orderService, log)
	orderHandler := handler.NewOrderHandler(orderService, dispatcher)

	authn := middleware.Auth(opts.JWTSecret, log)
	adminOnly := middleware.RequireRole(domain.RoleAdmin)

	// --- Auth routes ---
	e.POST("/api/auth/register", authHandler.Register)
	e.POST("/api/auth/login", authHandler.Login)

	// --- Product routes ---
	products := e.Group("/api/products", authn)
	products.GET("", productHandler.List)
	products.POST("", productHandler.Create, adminOnly)
	products.PUT("/:id", productHandler.Update, adminOnly)
	products.DELETE("/:id", productHandler.Delete, adminOnly)

	// --- Order routes ---
	orders := e.Group("/api/orders", authn)
	orders.POST("", orderHandler.Place)
	orders.GET("/:id", orderHandler.Get)
	orders.POST("/events", orderHandler.ReceiveEvent, adminOnly)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?

	// --- Operability ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e, dispatcher
}
