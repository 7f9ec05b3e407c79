package main

import (
	"context"
	"event-scanner-service/config"
	"event-scanner-service/metrics"
	"event-scanner-service/scanner"
	"event-scanner-service/store"
	"event-scanner-service/worker"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// NATS-driven scan worker with a periodic scheduler.
func main() {
	log.Println("Starting scan worker service...")

	cfg := config.Load()

	metrics.Init("event-scanner-worker", "1.0.0", getEnv("ENVIRONMENT", "development"))

	var archive *store.Archive
	if cfg.MongoURI != "" {
		mongoClient, err := mongo.Connect(context.Background(), options.Client().ApplyURI(cfg.MongoURI))
		if err != nil {
			log.Fatal("Failed to connect to MongoDB:", err)
		}
		defer mongoClient.Disconnect(context.Background())
		archive = store.NewArchive(mongoClient.Database("eventsdb"))
		log.Println("Connected to MongoDB")
	}

	sc := scanner.New(cfg, archive)

	w, err := worker.NewWorker(cfg, sc)
	if err != nil {
		log.Fatal("Failed to create worker:", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := w.Start(ctx); err != nil {
		log.Fatal("Failed to start worker:", err)
	}

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down scan worker...")
	w.Stop()
	log.Println("Scan worker stopped")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
