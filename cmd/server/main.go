package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/lattencreative/studio-backend/internal/config"
	"github.com/lattencreative/studio-backend/internal/database"
	"github.com/lattencreative/studio-backend/internal/events"
	"github.com/lattencreative/studio-backend/internal/handlers"
	"github.com/lattencreative/studio-backend/internal/middleware"
	"github.com/lattencreative/studio-backend/internal/services"
	"github.com/lattencreative/studio-backend/pkg/jwt"
)

var version = "1.0.0"

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	logger.Info("Starting Latten Creative studio backend")
	logger.Infof("Version: %s", version)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load configuration: %v", err)
	}

	logLevel, err := logrus.ParseLevel(cfg.Server.LogLevel)
	if err != nil {
		logger.Warn("Invalid log level, using INFO")
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	// Initialize database connection
	logger.Info("Connecting to database...")
	db, err := database.NewConnection(cfg.Database)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	logger.Info("Database connection established")

	// Initialize Redis for the rate limiter. Optional: without it the
	// limiter passes everything through.
	var redisClient *redis.Client
	if cfg.Redis.URL != "" {
		opts, err := redis.ParseURL(cfg.Redis.URL)
		if err != nil {
			logger.Fatalf("Invalid Redis URL: %v", err)
		}
		redisClient = redis.NewClient(opts)
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			logger.WithError(err).Warn("Redis unreachable, rate limiting disabled")
			redisClient = nil
		} else {
			logger.Info("Redis connection established")
			defer redisClient.Close()
		}
	}

	// Initialize repositories
	bookingRepo := database.NewBookingRepository(db)
	contactRepo := database.NewContactRepository(db)
	clientRepo := database.NewClientRepository(db)
	projectRepo := database.NewProjectRepository(db)
	activityRepo := database.NewActivityLogRepository(db)
	adminUserRepo := database.NewAdminUserRepository(db)

	// Initialize services
	logger.Info("Initializing services...")
	jwtService := jwt.NewService(
		cfg.JWT.Secret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
	)
	stripeService := services.NewStripeService(cfg.Stripe, logger)
	activityService := services.NewActivityService(activityRepo, logger)
	publisher := events.NewPublisher(cfg.AMQP.URL, logger)
	if publisher.Enabled() {
		logger.Info("Booking event publishing enabled")
	}

	// Initialize handlers
	bookingHandler := handlers.NewBookingHandler(bookingRepo, activityService, publisher, logger)
	checkoutHandler := handlers.NewCheckoutHandler(bookingRepo, stripeService, activityService, publisher, cfg.App, logger)
	webhookHandler := handlers.NewWebhookHandler(bookingRepo, stripeService, activityService, publisher, logger)
	contactHandler := handlers.NewContactHandler(contactRepo, activityService, logger)
	adminAuthHandler := handlers.NewAdminAuthHandler(adminUserRepo, jwtService, logger)
	adminBookingHandler := handlers.NewAdminBookingHandler(bookingRepo, clientRepo, projectRepo, activityService, logger)
	clientHandler := handlers.NewClientHandler(clientRepo, activityService, logger)
	projectHandler := handlers.NewProjectHandler(projectRepo, clientRepo, activityService, logger)
	activityHandler := handlers.NewActivityHandler(activityService, logger)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestLogger(logger))

	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORS.AllowedOrigins,
		AllowMethods:     cfg.CORS.AllowedMethods,
		AllowHeaders:     cfg.CORS.AllowedHeaders,
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/health", healthCheckHandler(db))

	rateLimiter := middleware.RateLimit(cfg.RateLimit, redisClient, logger)

	// Public API
	v1 := router.Group("/api/v1")
	{
		v1.POST("/bookings", rateLimiter, bookingHandler.CreateBooking)
		v1.POST("/checkout", rateLimiter, checkoutHandler.CreateSession)
		v1.POST("/contact", rateLimiter, contactHandler.CreateContact)
		v1.GET("/availability", bookingHandler.GetAvailability)

		// Stripe retries on failure, never rate limit this.
		v1.POST("/webhooks/stripe", webhookHandler.HandleStripeEvent)

		auth := v1.Group("/admin/auth")
		{
			auth.POST("/login", adminAuthHandler.Login)
			auth.POST("/refresh", adminAuthHandler.Refresh)
		}

		// Dashboard API (protected)
		admin := v1.Group("/admin")
		admin.Use(middleware.AuthMiddleware(jwtService))
		{
			admin.GET("/bookings", adminBookingHandler.ListBookings)
			admin.GET("/bookings/:id", adminBookingHandler.GetBooking)
			admin.PATCH("/bookings/:id/status", adminBookingHandler.UpdateStatus)
			admin.DELETE("/bookings/:id", adminBookingHandler.DeleteBooking)
			admin.POST("/bookings/:id/convert", adminBookingHandler.ConvertToClient)

			admin.GET("/contacts", contactHandler.ListContacts)

			admin.POST("/clients", clientHandler.CreateClient)
			admin.GET("/clients", clientHandler.ListClients)
			admin.GET("/clients/:id", clientHandler.GetClient)
			admin.PUT("/clients/:id", clientHandler.UpdateClient)

			admin.POST("/projects", projectHandler.CreateProject)
			admin.GET("/projects", projectHandler.ListProjects)
			admin.GET("/projects/:id", projectHandler.GetProject)
			admin.PATCH("/projects/:id/status", projectHandler.UpdateStatus)

			admin.GET("/activity", activityHandler.ListRecent)
		}
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Infof("Server starting on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Errorf("Server forced to shutdown: %v", err)
	}

	logger.Info("Server exited successfully")
}

// requestLogger middleware for logging HTTP requests
func requestLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		latency := time.Since(start)

		fields := logrus.Fields{
			"status":     c.Writer.Status(),
			"method":     c.Request.Method,
			"path":       path,
			"query":      c.Request.URL.RawQuery,
			"ip":         c.ClientIP(),
			"latency_ms": latency.Milliseconds(),
			"user_agent": c.Request.UserAgent(),
		}

		entry := logger.WithFields(fields)

		switch {
		case len(c.Errors) > 0:
			entry.Error(c.Errors.String())
		case c.Writer.Status() >= 500:
			entry.Error("Request failed")
		case c.Writer.Status() >= 400:
			entry.Warn("Request rejected")
		default:
			entry.Info("Request completed")
		}
	}
}

// healthCheckHandler reports service and database health
func healthCheckHandler(db database.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "unhealthy",
				"error":  "database unreachable",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": version,
		})
	}
}
