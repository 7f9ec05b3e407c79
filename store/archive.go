package store

import (
	"context"
	"event-scanner-service/model"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Archive mirrors extracted events into MongoDB for querying outside the
// flat-file store. It is an additive sink: the JSON store stays the source
// of truth and archive failures never fail a scan.
type Archive struct {
	db *mongo.Database
}

func NewArchive(db *mongo.Database) *Archive {
	a := &Archive{db: db}
	a.ensureIndexes()
	return a
}

func (a *Archive) ensureIndexes() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	collection := a.db.Collection("events")

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "commentId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "extractedAt", Value: -1}},
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		log.Printf("Warning: Failed to create indexes: %v", err)
	}
}

// ArchiveEvents upserts event records keyed by comment id.
func (a *Archive) ArchiveEvents(ctx context.Context, events []model.EventRecord) (int, error) {
	if len(events) == 0 {
		return 0, nil
	}

	collection := a.db.Collection("events")

	var operations []mongo.WriteModel
	for _, event := range events {
		operation := mongo.NewReplaceOneModel().
			SetFilter(bson.M{"commentId": event.CommentID}).
			SetReplacement(event).
			SetUpsert(true)

		operations = append(operations, operation)
	}

	opts := options.BulkWrite().SetOrdered(false)

	result, err := collection.BulkWrite(ctx, operations, opts)
	if err != nil {
		log.Printf("[ERROR] Bulk write failed: %v", err)
		return 0, err
	}

	stored := int(result.UpsertedCount + result.ModifiedCount)
	log.Printf("[INFO] Archived events: %d upserted, %d modified, %d total processed",
		result.UpsertedCount, result.ModifiedCount, len(operations))

	return stored, nil
}
