package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/OldStager01/fatigue-monitor/api/handlers"
	"github.com/OldStager01/fatigue-monitor/api/middleware"
	"github.com/OldStager01/fatigue-monitor/api/websocket"
	"github.com/OldStager01/fatigue-monitor/internal/auth"
	"github.com/OldStager01/fatigue-monitor/internal/events"
	"github.com/OldStager01/fatigue-monitor/internal/metrics"
	"github.com/OldStager01/fatigue-monitor/internal/service"
	"github.com/OldStager01/fatigue-monitor/pkg/config"
	"github.com/OldStager01/fatigue-monitor/pkg/database"
	"github.com/OldStager01/fatigue-monitor/pkg/database/queries"
	"github.com/gin-gonic/gin"
)

const maxBodyBytes = 4 << 20 // telemetry batches

type Server struct {
	router     *gin.Engine
	httpServer *http.Server
	config     *config.Config
	db         *database.DB
	authSvc    *auth.Service
	prediction *service.PredictionService
	bus        *events.EventBus
	publisher  *events.Publisher
	wsHub      *websocket.Hub
	wsBridge   *websocket.EventBridge
}

func NewServer(cfg *config.Config, db *database.DB, prediction *service.PredictionService, bus *events.EventBus, publisher *events.Publisher) *Server {
	if cfg.App.Mode == "development" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	authSvc := auth.NewService(cfg.API.JWTSecret, cfg.API.JWTDuration, cfg.API.JWTIssuer)
	wsHub := websocket.NewHub(&cfg.WebSocket)

	s := &Server{
		router:     router,
		config:     cfg,
		db:         db,
		authSvc:    authSvc,
		prediction: prediction,
		bus:        bus,
		publisher:  publisher,
		wsHub:      wsHub,
	}

	s.setupMiddleware()
	s.setupRoutes()

	go wsHub.Run()

	// Forward pipeline events to subscribed websocket clients
	if bus != nil {
		s.wsBridge = websocket.NewEventBridge(wsHub, bus.SubscribeAll())
		s.wsBridge.Start()
	}

	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(gin.Recovery())
	s.router.Use(middleware.SecurityHeaders())
	s.router.Use(middleware.CORS(middleware.CORSFromConfig(s.config.API.CORS)))
	s.router.Use(middleware.RequestLogger())
	s.router.Use(middleware.TraceID())
	s.router.Use(middleware.RequestSizeLimit(maxBodyBytes))

	rateLimiter := middleware.NewRateLimiter(s.config.API.RateLimit, time.Minute)
	s.router.Use(middleware.RateLimit(rateLimiter))
}

func (s *Server) setupRoutes() {
	// Repositories
	userRepo := queries.NewUserRepository(s.db.DB)
	deviceRepo := queries.NewDeviceRepository(s.db.DB)
	usageRepo := queries.NewUsageRepository(s.db.DB)

	// Handlers
	healthHandler := handlers.NewHealthHandler(s.db)
	authHandler := handlers.NewAuthHandler(userRepo, s.authSvc)
	usageHandler := handlers.NewUsageHandler(usageRepo, deviceRepo, s.publisher, &s.config.API)
	predictionHandler := handlers.NewPredictionHandler(s.prediction)
	insightsHandler := handlers.NewInsightsHandler()
	deviceHandler := handlers.NewDeviceHandler(deviceRepo)

	// Public routes
	s.router.GET("/health", healthHandler.Health)
	s.router.GET("/health/ready", healthHandler.Ready)
	s.router.GET("/health/live", healthHandler.Live)

	if s.config.Prometheus.Enabled {
		s.router.GET("/metrics", gin.WrapH(metrics.Handler()))
	}

	// Auth routes
	authGroup := s.router.Group("/auth")
	authGroup.Use(middleware.AuthRateLimiter())
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
	}

	// WebSocket route
	s.router.GET("/ws", websocket.ServeWebSocket(s.wsHub))

	// Protected routes
	protected := s.router.Group("/")
	protected.Use(middleware.JWTAuth(s.authSvc))
	{
		// Usage ingestion and readback
		protected.POST("/usage/laptop", usageHandler.IngestLaptop)
		protected.POST("/usage/mobile", usageHandler.IngestMobile)
		protected.GET("/usage/recent", usageHandler.GetRecent)
		protected.GET("/usage/totals", usageHandler.GetTotals)

		// Predictions
		protected.POST("/predictions/predict", predictionHandler.Predict)
		protected.GET("/predictions/history", predictionHandler.History)
		protected.GET("/predictions/latest", predictionHandler.Latest)

		// Insights
		protected.GET("/insights/features", insightsHandler.Features)

		// Devices
		protected.GET("/devices", deviceHandler.List)
		protected.POST("/devices", deviceHandler.Register)
		protected.GET("/devices/:id", deviceHandler.Get)
		protected.DELETE("/devices/:id", deviceHandler.Delete)
	}
}

func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.config.API.Port)

	idleTimeout := s.config.API.IdleTimeout
	if idleTimeout <= 0 {
		idleTimeout = 60 * time.Second
	}

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  s.config.API.ReadTimeout,
		WriteTimeout: s.config.API.WriteTimeout,
		IdleTimeout:  idleTimeout,
	}

	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.wsBridge != nil {
		s.wsBridge.Stop()
	}

	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) Router() *gin.Engine {
	return s.router
}

func (s *Server) WebSocketHub() *websocket.Hub {
	return s.wsHub
}
