package booking

import (
	"context"
	"time"

	"bookingops/models"
)

// Persister is the durable backing for the store. Save is called with the store's
// per-record lock held; LoadAll is only used while hydrating.
type Persister interface {
	Save(ctx context.Context, record models.BookingRecord) error
	LoadAll(ctx context.Context) ([]models.BookingRecord, error)
}

// Clock supplies wall time to the store.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// ClockFunc adapts a function to Clock.
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }
