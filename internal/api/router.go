package api

import (
	"database/sql"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/bookstore/bookstore-backend/docs" // swagger spec registration
	"github.com/bookstore/bookstore-backend/internal/api/handler"
	"github.com/bookstore/bookstore-backend/internal/api/middleware"
	"github.com/bookstore/bookstore-backend/internal/core/domain"
	"github.com/bookstore/bookstore-backend/internal/core/ports"
	"github.com/bookstore/bookstore-backend/internal/core/service"
	"github.com/bookstore/bookstore-backend/internal/infrastructure/config"
	redisdb "github.com/bookstore/bookstore-backend/internal/infrastructure/db/redis"
	"github.com/bookstore/bookstore-backend/internal/infrastructure/db/sqlite"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// rdb may be nil; Redis-backed login throttling is then disabled.
func NewRouter(db *sql.DB, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("bookstore"))

	// --- Dependencies ---
	userRepo := sqlite.NewUserRepository(db)
	roleRepo := sqlite.NewRoleRepository(db)
	bookRepo := sqlite.NewBookRepository(db)
	orderRepo := sqlite.NewOrderRepository(db)

	tokenService := service.NewJWTTokenService(cfg.JWTSecret, cfg.JWTTTL)
	authService := service.NewAuthService(userRepo, roleRepo, service.NewBcryptHasher(), tokenService)
	bookService := service.NewBookService(bookRepo)
	orderService := service.NewOrderService(orderRepo, bookRepo, userRepo)

	var throttle ports.LoginThrottle
	if rdb != nil {
		throttle = redisdb.NewLoginThrottle(rdb, cfg.Throttle.LoginLimit, cfg.Throttle.LoginWindow)
	}

	authHandler := handler.NewAuthHandler(authService, throttle)
	bookHandler := handler.NewBookHandler(bookService)
	orderHandler := handler.NewOrderHandler(orderService)

	authRequired := middleware.Auth(tokenService)
	adminOnly := middleware.RequireRole(domain.RoleAdmin)

	// --- API routes ---
	v1 := e.Group("/api/v1")

	v1.POST("/auth/register", authHandler.Register)
	v1.POST("/auth/login", authHandler.Login)

	books := v1.Group("/books")
	books.GET("", bookHandler.List)
	books.GET("/search", bookHandler.Search)
	books.GET("/available", bookHandler.Available)
	books.GET("/category/:category", bookHandler.ByCategory)
	books.GET("/:id", bookHandler.Get)
	books.POST("", bookHandler.Create, authRequired, adminOnly)
	books.PUT("/:id", bookHandler.Update, authRequired, adminOnly)
	books.DELETE("/:id", bookHandler.Delete, authRequired, adminOnly)

	orders := v1.Group("/orders", authRequired)
	orders.POST("", orderHandler.Place)
	orders.GET("", orderHandler.List)
	orders.GET("/:id", orderHandler.Get)

	// --- Operational endpoints ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
