package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ndewijer/Investment-Admin-Console/internal/api"
	"github.com/ndewijer/Investment-Admin-Console/internal/config"
	"github.com/ndewijer/Investment-Admin-Console/internal/database"
	"github.com/ndewijer/Investment-Admin-Console/internal/kvstore"
	"github.com/ndewijer/Investment-Admin-Console/internal/pricefeed"
	"github.com/ndewijer/Investment-Admin-Console/internal/repository"
	"github.com/ndewijer/Investment-Admin-Console/internal/service"
	"github.com/ndewijer/Investment-Admin-Console/internal/session"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Open database connection
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	log.Printf("Connected to database: %s", cfg.Database.Path)

	// Create the record store
	var store kvstore.Store = kvstore.NewSQLiteStore(db)
	if cfg.Database.EncryptionKey != "" {
		encrypted, err := kvstore.NewEncryptedStore(store, cfg.Database.EncryptionKey)
		if err != nil {
			log.Fatalf("Failed to configure store encryption: %v", err)
		}
		store = encrypted
		log.Println("Store encryption enabled")
	}

	recordRepo := repository.NewRecordRepository(store)

	// Create the price feed
	prices := pricefeed.NewBuffer()
	priceSource := pricefeed.NewCoinGeckoClient(cfg.PriceFeed.URL, cfg.PriceFeed.Coin, cfg.PriceFeed.Currency)
	poller := pricefeed.NewPoller(priceSource, prices, cfg.PriceFeed.Interval)

	sessions := session.NewManager(cfg.Admin.Password, recordRepo, poller)

	// Create services
	systemService := service.NewSystemService(db)
	dashboardService := service.NewDashboardService(sessions)
	investmentService := service.NewInvestmentService(sessions)

	// Create router
	router := api.NewRouter(systemService, sessions, dashboardService, investmentService, prices, cfg)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Starting server on %s", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	// Stop the price feed with the session
	sessions.Logout()

	log.Println("Server exited")
}
