package server

import (
	"fmt"
	"net/http"
	"time"

	"graceshopper/internal/config"
	"graceshopper/internal/database"
	custommiddleware "graceshopper/internal/middleware"
	"graceshopper/internal/repository"
	"graceshopper/internal/service"
	"graceshopper/internal/transport"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Server struct {
	*http.Server
	config      *config.Config
	logger      *zap.Logger
	dbService   *database.Service
	redisClient *redis.Client
}

func NewServer(cfg *config.Config, logger *zap.Logger, dbService *database.Service, redisClient *redis.Client) *Server {
	db := dbService.DB()

	// Create router
	router := chi.NewRouter()

	// Add basic middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Compress(5))
	router.Use(custommiddleware.ErrorHandlingMiddleware(logger))
	router.Use(custommiddleware.LoggingMiddleware(logger))
	router.Use(custommiddleware.MetricsMiddleware())
	router.Use(custommiddleware.CORSMiddleware(nil, cfg.Server.Env != "production"))

	if redisClient != nil {
		router.Use(custommiddleware.RateLimitMiddleware(redisClient, custommiddleware.RateLimitConfig{
			RequestsPerWindow: cfg.RateLimit.RequestsPerMinute,
			Window:            time.Minute,
			KeyPrefix:         "graceshopper:ratelimit",
		}, logger))
	}

	// Operational endpoints
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		custommiddleware.RespondWithJSON(w, http.StatusOK, map[string]any{
			"status":   "ok",
			"database": dbService.Health(r.Context()),
		})
	})
	router.Handle("/metrics", promhttp.Handler())

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	orderProductRepo := repository.NewOrderProductRepository(db)
	reviewRepo := repository.NewReviewRepository(db)

	// Initialize services
	authService := service.NewAuthService(userRepo, cfg.JWT.Secret, cfg.JWT.RegisterExpiry, cfg.JWT.LoginExpiry)
	userService := service.NewUserService(userRepo, orderRepo, reviewRepo)
	productService := service.NewProductService(productRepo)
	orderService := service.NewOrderService(orderRepo, orderProductRepo, productRepo)
	reviewService := service.NewReviewService(reviewRepo, productRepo)

	// Initialize handlers
	userHandler := transport.NewUserHandler(authService, userService, logger)
	productHandler := transport.NewProductHandler(productService, reviewService, logger)
	orderHandler := transport.NewOrderHandler(orderService, logger)
	orderProductHandler := transport.NewOrderProductHandler(orderService, logger)

	// Create guards
	requireUser := custommiddleware.RequireUser(cfg.JWT.Secret, logger)
	requireAdmin := custommiddleware.RequireAdmin(logger)

	// Register routes
	userHandler.RegisterRoutes(router, requireUser, requireAdmin)
	productHandler.RegisterRoutes(router, requireUser, requireAdmin)
	orderHandler.RegisterRoutes(router, requireUser, requireAdmin)
	orderProductHandler.RegisterRoutes(router, requireUser)

	server := &Server{
		Server: &http.Server{
			Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
			Handler:      router,
			IdleTimeout:  time.Minute,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		config:      cfg,
		logger:      logger,
		dbService:   dbService,
		redisClient: redisClient,
	}

	return server
}

func (s *Server) Close() error {
	s.logger.Info("Closing server resources")

	if s.dbService != nil {
		if err := s.dbService.Close(); err != nil {
			s.logger.Error("Failed to close database connection", zap.Error(err))
		}
	}

	if s.redisClient != nil {
		if err := s.redisClient.Close(); err != nil {
			s.logger.Error("Failed to close redis client", zap.Error(err))
		}
	}

	s.logger.Sync()
	return nil
}
