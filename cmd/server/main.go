package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"

	"github.com/carbonx/carbonx-api/internal/auth"
	"github.com/carbonx/carbonx-api/internal/catalog"
	"github.com/carbonx/carbonx-api/internal/config"
	"github.com/carbonx/carbonx-api/internal/database"
	"github.com/carbonx/carbonx-api/internal/portfolio"
	"github.com/carbonx/carbonx-api/internal/reports"
	"github.com/carbonx/carbonx-api/internal/trading"
	"github.com/carbonx/carbonx-api/pkg/middleware"

	"github.com/gin-gonic/gin"
)

// init configures the application logging based on environment settings
// In development mode, it enables pretty printing with timestamps
// Debug logging can be enabled via DEBUG environment variable
func init() {
	// Configure pretty logging for development
	if os.Getenv("ENV") != "production" {
		output := zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: time.RFC3339,
		}
		zlog.Logger = zerolog.New(output).With().Timestamp().Logger()
	}

	// Set global log level
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if os.Getenv("DEBUG") == "true" {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
}

// main initializes and runs the carbon trading API server with graceful
// shutdown support
func main() {
	cfg := config.Load()

	// Initialize database
	db, err := database.NewDatabase(cfg.DBPath)
	if err != nil {
		zlog.Fatal().Err(err).Msg("Failed to initialize database")
	}

	// Initialize router
	router := gin.Default()

	// Initialize services and handlers
	authService := auth.NewService(cfg.JWTSecret)
	authHandlers := auth.NewGinHandlers(authService)
	// Register test credentials
	authService.RegisterAPICredentials(auth.TestAPIKey, auth.TestAPISecret)

	catalogService := catalog.NewService(db)
	catalogHandlers := catalog.NewGinHandlers(catalogService)

	portfolioService := portfolio.NewService(db, catalogService)
	portfolioHandlers := portfolio.NewGinHandlers(portfolioService)

	tradingService := trading.NewService(db, catalogService, portfolioService, cfg.TreesPerCredit)
	tradingHandlers := trading.NewGinHandlers(tradingService)

	reportsService := reports.NewService(db)
	reportsHandlers := reports.NewGinHandlers(reportsService)

	// Setup middleware
	router.Use(middleware.RateLimit())

	// Setup API routes
	setupRoutes(router, cfg.JWTSecret, authHandlers, catalogHandlers, portfolioHandlers, tradingHandlers, reportsHandlers)

	// Create server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	// Graceful shutdown setup
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zlog.Fatal().Err(err).Msg("listen")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zlog.Info().Msg("Shutting down server...")

	// Give outstanding operations 5 seconds to complete
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlog.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	zlog.Info().Msg("Server exiting")
}

// setupRoutes configures all API endpoints and their handlers
// Market data and reports are public; the portfolio, order history and trade
// execution routes require a JWT whose client ID selects the account.
func setupRoutes(
	router *gin.Engine,
	jwtSecret string,
	authHandlers *auth.GinHandlers,
	catalogHandlers *catalog.GinHandlers,
	portfolioHandlers *portfolio.GinHandlers,
	tradingHandlers *trading.GinHandlers,
	reportsHandlers *reports.GinHandlers,
) {
	v1 := router.Group("/api/v1")
	{
		// Auth routes
		authGroup := v1.Group("/auth")
		{
			authGroup.POST("/token", authHandlers.GenerateTokenHandler())
		}

		// Public market data routes
		v1.GET("/projects", catalogHandlers.GetProjectsHandler())
		v1.GET("/projects/:project_id", catalogHandlers.GetProjectHandler())
		v1.GET("/stats", catalogHandlers.GetMarketStatsHandler())
		v1.GET("/news", catalogHandlers.GetNewsHandler())
		v1.GET("/reports", reportsHandlers.GetReportsHandler())
		v1.GET("/reports/:report_id", reportsHandlers.GetReportHandler())

		// Account routes
		account := v1.Group("")
		account.Use(middleware.JWTAuth(jwtSecret))
		{
			account.GET("/portfolio", portfolioHandlers.GetPortfolioHandler())
			account.GET("/orders", tradingHandlers.ListOrdersHandler())
			account.GET("/orders/export", tradingHandlers.ExportOrdersHandler())
			account.GET("/orders/:order_id", tradingHandlers.GetOrderHandler())
			account.POST("/trade", tradingHandlers.ExecuteTradeHandler())
		}
	}
}
