package main

import (
	"context"
	"event-scanner-service/config"
	"event-scanner-service/metrics"
	"event-scanner-service/router"
	"event-scanner-service/store"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

// Read-only HTTP API over the persisted event store.
func main() {
	cfg := config.Load()

	metrics.Init("event-scanner-service", "1.0.0", getEnv("ENVIRONMENT", "development"))

	eventStore := store.New(cfg.DataFile)
	r := router.Setup(eventStore)

	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	go func() {
		log.Printf("Event API server starting on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server:", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down event API server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Event API server stopped")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
