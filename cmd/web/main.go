package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-storefront/api/handlers"
	"go-storefront/internal/config"
	"go-storefront/internal/logger"
	"go-storefront/internal/services"
	"go-storefront/internal/session"
	"go-storefront/internal/storage/sqlite"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	log, err := logger.New(logger.Options{
		Production: cfg.Production(),
		Level:      cfg.LogLevel,
		Filename:   cfg.LogFile,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	for _, name := range cfg.InsecureDefaults() {
		log.Warn("using built-in default secret, set it in the environment", zap.String("var", name))
	}

	store, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		log.Fatal("open catalog", zap.String("path", cfg.DBPath), zap.Error(err))
	}
	defer store.Close()
	if cfg.SeedDemo {
		seeded, err := store.SeedDemo(context.Background())
		if err != nil {
			log.Fatal("seed catalog", zap.Error(err))
		}
		if seeded {
			log.Info("seeded demo products", zap.Int("count", len(sqlite.DemoProducts)))
		}
	}

	router, err := setupRouter(cfg, store, log)
	if err != nil {
		log.Fatal("setup router", zap.Error(err))
	}

	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("server starting", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("server forced to shutdown", zap.Error(err))
		return
	}

	log.Info("server shutdown complete")
}

func setupRouter(cfg *config.Config, store services.ProductStore, log *zap.Logger) (*gin.Engine, error) {
	if cfg.Production() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize services
	productService := services.NewProductService(store, log)
	cartService := services.NewCartService(store)
	orderService := services.NewOrderService(cartService, log)
	adminService := services.NewAdminService(cfg.AdminPassword, log)
	assetService, err := services.NewAssetService(cfg.UploadDir, cfg.MaxUploadBytes, log)
	if err != nil {
		return nil, err
	}
	sessions := session.NewStore(cfg.SecretKey, cfg.Production(), log)

	// Initialize handlers
	productHandler := handlers.NewProductHandler(productService, sessions)
	cartHandler := handlers.NewCartHandler(cartService, productService, sessions)
	orderHandler := handlers.NewOrderHandler(orderService, sessions)
	adminHandler := handlers.NewAdminHandler(adminService, productService, assetService, sessions)

	tmpl, err := handlers.Templates()
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	router := gin.New()
	router.Use(handlers.RequestLogger(log))
	router.Use(handlers.Recovery(log))
	router.SetHTMLTemplate(tmpl)
	router.MaxMultipartMemory = cfg.MaxUploadBytes

	router.Static("/static", cfg.StaticDir)
	router.Static(handlers.UploadsPath, cfg.UploadDir)

	// Storefront
	router.GET("/", productHandler.Index)
	router.GET("/product/:id", productHandler.Detail)

	// Cart routes
	cart := router.Group("/cart")
	{
		cart.GET("", cartHandler.View)
		cart.POST("/add/:id", cartHandler.Add)
		cart.POST("/remove/:id", cartHandler.Remove)
	}

	// Checkout
	router.GET("/checkout", orderHandler.CheckoutForm)
	router.POST("/checkout", orderHandler.PlaceOrder)

	// Admin routes
	admin := router.Group("/admin")
	{
		admin.GET("", adminHandler.LoginForm)
		admin.POST("", adminHandler.Login)
		admin.GET("/products", adminHandler.Products)
		admin.GET("/products/export.csv", adminHandler.ExportProducts)
		admin.POST("/products/add", handlers.LimitBody(cfg.MaxUploadBytes), adminHandler.AddProduct)
		admin.POST("/products/:id/delete", adminHandler.DeleteProduct)
	}

	// Health check
	router.GET("/api/health", productHandler.HealthCheck)

	// Debug endpoints in development
	if gin.Mode() != gin.ReleaseMode {
		router.GET("/debug/metrics", productHandler.Metrics)
	}

	return router, nil
}
