package bookingsRepo

import (
	"context"
	"fmt"
	"time"

	"bookingops/models"

	"go.mongodb.org/mongo-driver/mongo"
)

const collectionName = "booking_records"

// BookingRecordRepository persists booking records with their embedded audit trail.
type BookingRecordRepository interface {
	Save(ctx context.Context, record models.BookingRecord) error
	LoadAll(ctx context.Context) ([]models.BookingRecord, error)
	GetByID(ctx context.Context, id string) (*models.BookingRecord, error)
}

// MongoBookingRepo implements BookingRecordRepository using MongoDB.
type MongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo binds the repository to db and makes sure its indexes exist.
func NewMongoBookingRepo(db *mongo.Database) (*MongoBookingRepo, error) {
	repo := &MongoBookingRepo{coll: db.Collection(collectionName)}
	if err := repo.ensureIndexes(); err != nil {
		return nil, fmt.Errorf("booking records: %w", err)
	}
	return repo, nil
}

// newContext creates a context with the given timeout.
func newContext(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, timeout)
}
