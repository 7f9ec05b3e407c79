package main

import (
	"context"
	"event-scanner-service/config"
	"event-scanner-service/scanner"
	"event-scanner-service/store"
	"log"
	"os"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// One-shot batch scan: fetch comments, extract events, merge into the JSON
// store and exit. Intended to run periodically via an external scheduler.
func main() {
	log.Println("Starting event scan...")

	cfg := config.Load()

	var archive *store.Archive
	if cfg.MongoURI != "" {
		mongoClient, err := mongo.Connect(context.Background(), options.Client().ApplyURI(cfg.MongoURI))
		if err != nil {
			log.Printf("[WARN] Failed to connect to MongoDB, archive disabled: %v", err)
		} else {
			defer mongoClient.Disconnect(context.Background())
			archive = store.NewArchive(mongoClient.Database("eventsdb"))
			log.Println("Connected to MongoDB archive")
		}
	}

	sc := scanner.New(cfg, archive)

	result, err := sc.Run(context.Background(), scanner.OptionsFromConfig(cfg))
	if err != nil {
		log.Printf("[ERROR] Scan failed: %v", err)
		os.Exit(1)
	}

	log.Printf("Scan complete: %d comments fetched, %d events extracted, %d added",
		result.CommentsFetched, result.EventsExtracted, result.EventsAdded)
}
