package bookingsRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bookingops/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Save replaces the stored copy of the record, inserting it when new.
func (r *MongoBookingRepo) Save(ctx context.Context, record models.BookingRecord) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	_, err := r.coll.ReplaceOne(ctx, bson.M{"id": record.ID}, record, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("upsert booking record %s: %w", record.ID, err)
	}
	return nil
}

// LoadAll returns every stored record, newest first.
func (r *MongoBookingRepo) LoadAll(ctx context.Context) ([]models.BookingRecord, error) {
	ctx, cancel := newContext(ctx, 30*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []models.BookingRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// GetByID returns the stored copy of one record, or nil when absent.
func (r *MongoBookingRepo) GetByID(ctx context.Context, id string) (*models.BookingRecord, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	var record models.BookingRecord
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&record)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}
