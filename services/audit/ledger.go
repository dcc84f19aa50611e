package audit

import (
	"context"
	"sort"

	"bookingops/models"
)

// RecordSource is the committed view the ledger reads from.
type RecordSource interface {
	List(ctx context.Context) []models.BookingRecord
	Get(ctx context.Context, id string) (models.BookingRecord, error)
}

// FeedEntry is an audit entry tagged with the record it belongs to.
type FeedEntry struct {
	models.AuditLogEntry
	BookingID string `json:"bookingId"`
}

// Ledger derives the global audit feed and per-record trails from committed records.
type Ledger struct {
	source RecordSource
}

func NewLedger(source RecordSource) *Ledger {
	return &Ledger{source: source}
}

// Recent returns at most n entries across every record, newest first. Equal
// timestamps are ordered by entry id descending.
func (l *Ledger) Recent(ctx context.Context, n int) []FeedEntry {
	if n <= 0 {
		return []FeedEntry{}
	}

	var feed []FeedEntry
	for _, rec := range l.source.List(ctx) {
		for _, e := range rec.AuditTrail {
			feed = append(feed, FeedEntry{AuditLogEntry: e, BookingID: rec.ID})
		}
	}
	sort.Slice(feed, func(i, j int) bool {
		if feed[i].Timestamp.Equal(feed[j].Timestamp) {
			return feed[i].ID > feed[j].ID
		}
		return feed[i].Timestamp.After(feed[j].Timestamp)
	})
	if len(feed) > n {
		feed = feed[:n]
	}
	if feed == nil {
		feed = []FeedEntry{}
	}
	return feed
}

// Trail returns one record's entries oldest first.
func (l *Ledger) Trail(ctx context.Context, id string) ([]models.AuditLogEntry, error) {
	rec, err := l.source.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return rec.AuditTrail, nil
}
