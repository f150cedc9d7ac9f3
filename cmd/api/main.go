package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"financecontroll/internal/config"
	"financecontroll/internal/handlers"
	"financecontroll/internal/logger"
	"financecontroll/internal/middleware"
	"financecontroll/internal/repositories"
	"financecontroll/internal/storage"
	"financecontroll/internal/validator"
)

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Storage manager: the mode store remembers the chosen backend across
	// restarts. The manager starts with no adapter until a mode is selected.
	store := storage.NewModeStore(appConfig.StateDir)
	manager := storage.NewManager(store, appConfig.LocalDBPath)
	defer func() {
		if err := manager.Close(); err != nil {
			log.Warnf("failed to close storage: %v", err)
		}
	}()

	if err := selectStorage(appConfig, manager); err != nil {
		return fmt.Errorf("failed to bring up storage: %w", err)
	}
	if mode, ok := manager.Mode(); ok {
		log.Infof("Storage mode: %s", mode)
	} else {
		log.Infof("No storage mode selected; waiting for a mode switch request")
	}

	// Repositories share the manager as their query handle, so they survive
	// mode switches without reconstruction.
	portfolioRepo := repositories.NewPortfolioRepository(manager)
	assetRepo := repositories.NewAssetRepository(manager)
	transactionRepo := repositories.NewTransactionRepository(manager, assetRepo)
	valuationRepo := repositories.NewValuationRepository(manager, assetRepo)
	exchangeRateRepo := repositories.NewExchangeRateRepository(manager)

	// Initialize handlers
	portfolioHandler := handlers.NewPortfolioHandler(portfolioRepo)
	assetHandler := handlers.NewAssetHandler(assetRepo)
	transactionHandler := handlers.NewTransactionHandler(transactionRepo)
	valuationHandler := handlers.NewValuationHandler(valuationRepo)
	exchangeRateHandler := handlers.NewExchangeRateHandler(exchangeRateRepo)
	storageHandler := handlers.NewStorageHandler(manager)

	// Initialize Gin router
	validator.Register()
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Health check endpoint
	router.GET("/api/health", storageHandler.Health)

	// API v1 group
	v1 := router.Group("/api/v1")

	// Storage mode lifecycle
	st := v1.Group("/storage")
	st.GET("/mode", storageHandler.GetMode)
	st.POST("/mode", storageHandler.SwitchMode)
	st.GET("/export", storageHandler.Export)
	st.POST("/import", storageHandler.Import)

	// Portfolio routes
	portfolios := v1.Group("/portfolios")
	portfolios.GET("", portfolioHandler.List)
	portfolios.POST("", portfolioHandler.Create)
	portfolios.GET("/:id", portfolioHandler.Get)
	portfolios.PUT("/:id", portfolioHandler.Update)
	portfolios.DELETE("/:id", portfolioHandler.Delete)
	portfolios.POST("/:id/archive", portfolioHandler.Archive)
	portfolios.POST("/:id/unarchive", portfolioHandler.Unarchive)

	// Asset routes
	assets := v1.Group("/assets")
	assets.GET("", assetHandler.List)
	assets.POST("", assetHandler.Create)
	assets.GET("/:id", assetHandler.Get)
	assets.PUT("/:id", assetHandler.Update)
	assets.DELETE("/:id", assetHandler.Delete)

	// Transaction routes
	transactions := v1.Group("/transactions")
	transactions.GET("", transactionHandler.List)
	transactions.POST("", transactionHandler.Create)
	transactions.GET("/:id", transactionHandler.Get)
	transactions.PUT("/:id", transactionHandler.Update)
	transactions.DELETE("/:id", transactionHandler.Delete)
	transactions.GET("/summary/:assetId", transactionHandler.Summary)

	// Valuation routes
	valuations := v1.Group("/valuations")
	valuations.GET("", valuationHandler.List)
	valuations.POST("", valuationHandler.Create)
	valuations.GET("/:id", valuationHandler.Get)
	valuations.PUT("/:id", valuationHandler.Update)
	valuations.DELETE("/:id", valuationHandler.Delete)
	valuations.GET("/latest/:assetId", valuationHandler.Latest)

	// Exchange rate routes
	rates := v1.Group("/exchange-rates")
	rates.GET("", exchangeRateHandler.List)
	rates.GET("/lookup", exchangeRateHandler.Find)
	rates.POST("", exchangeRateHandler.Upsert)
	rates.DELETE("/:id", exchangeRateHandler.Delete)

	log.Infof("Starting financecontroll backend server on port %s", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}

// selectStorage brings up a backend at boot: an explicit STORAGE_MODE wins,
// otherwise the persisted choice from the mode store is restored. With
// neither, the server starts without a backend and waits for a switch.
func selectStorage(cfg *config.Config, manager *storage.Manager) error {
	if cfg.StorageMode != "" {
		return manager.SwitchMode(storage.Config{
			Mode:             storage.Mode(cfg.StorageMode),
			ConnectionString: cfg.DatabaseURL,
			SupabaseURL:      cfg.SupabaseURL,
			SupabaseAnonKey:  cfg.SupabaseAnonKey,
			LocalPath:        cfg.LocalDBPath,
		})
	}

	_, err := manager.Restore()
	return err
}
