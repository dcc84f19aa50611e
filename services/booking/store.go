package booking

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"bookingops/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	createdActor = "intake-pipeline"
	timeStep     = time.Millisecond
)

// entry guards one record. Writers hold mu for the whole read-modify-persist-publish
// step; readers only load the published snapshot.
type entry struct {
	mu      sync.Mutex
	current atomic.Pointer[models.BookingRecord]
}

// Store owns every booking record and its audit trail.
type Store struct {
	records sync.Map // id -> *entry

	lifecycleMu sync.Mutex   // serializes Reset and Hydrate
	lastStamp   atomic.Int64 // unix milliseconds of the newest timestamp handed out

	clock     Clock
	newID     func() string
	persister Persister
	logger    *zap.Logger
}

type Option func(*Store)

func WithClock(c Clock) Option {
	return func(s *Store) { s.clock = c }
}

func WithIDGenerator(gen func() string) Option {
	return func(s *Store) { s.newID = gen }
}

func WithPersister(p Persister) Option {
	return func(s *Store) { s.persister = p }
}

func WithLogger(logger *zap.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func NewStore(opts ...Option) *Store {
	s := &Store{
		clock:  systemClock{},
		newID:  uuid.NewString,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create binds a payload and its reasoning into a new acknowledged record with a
// "created" audit entry. The id is reserved before the write so concurrent creates only
// wait on their own persist.
func (s *Store) Create(ctx context.Context, payload models.BookingPayload, reasoning models.ReasoningBundle, owner models.RoleOwner) (models.BookingRecord, error) {
	switch owner {
	case models.OwnerAutomation, models.OwnerOperations, models.OwnerAdmin:
	default:
		return models.BookingRecord{}, fmt.Errorf("unknown role owner %q", owner)
	}

	createdAt := s.stamp(time.Time{})
	rec := models.BookingRecord{
		ID:        s.newID(),
		CreatedAt: createdAt,
		Status:    models.StatusAcknowledged,
		RoleOwner: owner,
		Payload:   payload.Clone(),
		Reasoning: reasoning.Clone(),
		AuditTrail: []models.AuditLogEntry{{
			ID:        s.newID(),
			Timestamp: createdAt,
			Actor:     createdActor,
			Role:      models.AuditRoleAutomation,
			Action:    models.ActionCreated,
			Details: fmt.Sprintf("Booking captured via %s (%s), classified as %s",
				payload.ChannelMeta.InboundChannel, payload.ChannelMeta.LeadSource, reasoning.IntentLabel),
		}},
	}

	// The reserved entry has no snapshot yet, so readers treat it as absent.
	e := &entry{}
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, exists := s.records.LoadOrStore(rec.ID, e); exists {
		return models.BookingRecord{}, &InvariantViolation{Detail: "duplicate record id " + rec.ID}
	}
	if err := s.persist(ctx, rec); err != nil {
		s.records.CompareAndDelete(rec.ID, e)
		return models.BookingRecord{}, err
	}

	published := rec.Clone()
	e.current.Store(&published)

	s.logger.Info("Booking record created",
		zap.String("bookingID", rec.ID),
		zap.String("owner", string(owner)),
		zap.String("intent", string(reasoning.IntentLabel)))
	return rec, nil
}

func (s *Store) Get(_ context.Context, id string) (models.BookingRecord, error) {
	e, ok := s.lookup(id)
	if !ok {
		return models.BookingRecord{}, &NotFoundError{ID: id}
	}
	return e.current.Load().Clone(), nil
}

// List returns every committed record, most recently created first.
func (s *Store) List(_ context.Context) []models.BookingRecord {
	var out []models.BookingRecord
	s.records.Range(func(_, v any) bool {
		if cur := v.(*entry).current.Load(); cur != nil {
			out = append(out, cur.Clone())
		}
		return true
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

// Len reports the number of records held.
func (s *Store) Len() int {
	n := 0
	s.records.Range(func(_, v any) bool {
		if v.(*entry).current.Load() != nil {
			n++
		}
		return true
	})
	return n
}

// UpdateStatus moves a record to newStatus. Setting the current status is a no-op;
// otherwise the status, the owner and a status_changed entry commit together.
func (s *Store) UpdateStatus(ctx context.Context, id string, newStatus models.BookingStatus, acting models.AuditRole) (models.BookingRecord, error) {
	if !newStatus.Valid() {
		return models.BookingRecord{}, &InvalidStatusError{Status: string(newStatus)}
	}
	if !acting.Valid() {
		return models.BookingRecord{}, &InvalidAuditError{Field: "role", Message: fmt.Sprintf("unknown role %q", acting)}
	}

	return s.mutate(ctx, id, func(rec *models.BookingRecord) bool {
		if rec.Status == newStatus {
			return false
		}
		previous := rec.Status
		rec.Status = newStatus
		rec.RoleOwner = NextOwner(rec.RoleOwner, acting)
		s.appendEntry(rec, models.AuditLogEntry{
			Actor:   string(acting),
			Role:    acting,
			Action:  models.ActionStatusChanged,
			Details: fmt.Sprintf("Status changed from %s to %s", previous, newStatus),
		})
		return true
	})
}

// AppendAudit adds entry to the record's trail. The store assigns the entry id and
// timestamp; any values supplied for them are ignored.
func (s *Store) AppendAudit(ctx context.Context, id string, entry models.AuditLogEntry) (models.BookingRecord, error) {
	if !entry.Role.Valid() {
		return models.BookingRecord{}, &InvalidAuditError{Field: "role", Message: fmt.Sprintf("unknown role %q", entry.Role)}
	}
	entry.Action = strings.TrimSpace(entry.Action)
	if entry.Action == "" {
		return models.BookingRecord{}, &InvalidAuditError{Field: "action", Message: "must not be empty"}
	}
	entry.Actor = strings.TrimSpace(entry.Actor)
	if entry.Actor == "" {
		return models.BookingRecord{}, &InvalidAuditError{Field: "actor", Message: "must not be empty"}
	}

	return s.mutate(ctx, id, func(rec *models.BookingRecord) bool {
		s.appendEntry(rec, entry)
		return true
	})
}

// Reset drops every record. Persisted copies are left untouched.
func (s *Store) Reset() {
	s.lifecycleMu.Lock()
	defer s.lifecycleMu.Unlock()
	s.records.Range(func(k, _ any) bool {
		s.records.Delete(k)
		return true
	})
	s.lastStamp.Store(0)
}

// Hydrate loads every persisted record into memory, replacing nothing already held.
func (s *Store) Hydrate(ctx context.Context) error {
	if s.persister == nil {
		return nil
	}
	records, err := s.persister.LoadAll(ctx)
	if err != nil {
		return fmt.Errorf("load booking records: %w", err)
	}

	s.lifecycleMu.Lock()
	defer s.lifecycleMu.Unlock()
	loaded := 0
	for _, rec := range records {
		if err := checkTrail(rec); err != nil {
			s.logger.Error("Skipping persisted record", zap.String("bookingID", rec.ID), zap.Error(err))
			continue
		}
		e := &entry{}
		published := rec.Clone()
		e.current.Store(&published)
		if _, exists := s.records.LoadOrStore(rec.ID, e); exists {
			continue
		}
		s.observe(rec.CreatedAt)
		for _, e := range rec.AuditTrail {
			s.observe(e.Timestamp)
		}
		loaded++
	}
	s.logger.Info("Booking store hydrated", zap.Int("records", loaded))
	return nil
}

// lookup returns a published entry. Ids reserved by an in-flight Create are not found.
func (s *Store) lookup(id string) (*entry, bool) {
	v, ok := s.records.Load(id)
	if !ok {
		return nil, false
	}
	e := v.(*entry)
	if e.current.Load() == nil {
		return nil, false
	}
	return e, true
}

// mutate applies fn to a private copy of the record under the record lock, persists it
// and publishes it. fn returns false to leave the record untouched.
func (s *Store) mutate(ctx context.Context, id string, fn func(rec *models.BookingRecord) bool) (models.BookingRecord, error) {
	e, ok := s.lookup(id)
	if !ok {
		return models.BookingRecord{}, &NotFoundError{ID: id}
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	next := e.current.Load().Clone()
	if !fn(&next) {
		return next, nil
	}
	if err := checkTrail(next); err != nil {
		return models.BookingRecord{}, err
	}
	if err := s.persist(ctx, next); err != nil {
		return models.BookingRecord{}, err
	}

	published := next.Clone()
	e.current.Store(&published)
	return next, nil
}

// appendEntry stamps and appends an entry. Timestamps are strictly increasing per record.
func (s *Store) appendEntry(rec *models.BookingRecord, entry models.AuditLogEntry) {
	after := rec.CreatedAt
	if n := len(rec.AuditTrail); n > 0 {
		after = rec.AuditTrail[n-1].Timestamp
	}
	entry.ID = s.newID()
	entry.Timestamp = s.stamp(after)
	rec.AuditTrail = append(rec.AuditTrail, entry)
}

// stamp returns the current UTC millisecond, bumped past after and past every timestamp
// the store has already handed out. Timestamps are therefore unique store-wide.
func (s *Store) stamp(after time.Time) time.Time {
	now := s.clock.Now().UTC().Truncate(timeStep)
	if !now.After(after) {
		now = after.Add(timeStep)
	}
	for {
		last := s.lastStamp.Load()
		ms := now.UnixMilli()
		if ms <= last {
			ms = last + 1
		}
		if s.lastStamp.CompareAndSwap(last, ms) {
			return time.UnixMilli(ms).UTC()
		}
	}
}

// observe raises the stamp floor to t.
func (s *Store) observe(t time.Time) {
	ms := t.UnixMilli()
	for {
		last := s.lastStamp.Load()
		if ms <= last || s.lastStamp.CompareAndSwap(last, ms) {
			return
		}
	}
}

func (s *Store) persist(ctx context.Context, rec models.BookingRecord) error {
	if s.persister == nil {
		return nil
	}
	if err := s.persister.Save(ctx, rec); err != nil {
		return fmt.Errorf("persist booking record %s: %w", rec.ID, err)
	}
	return nil
}

func checkTrail(rec models.BookingRecord) error {
	for i := 1; i < len(rec.AuditTrail); i++ {
		if rec.AuditTrail[i].Timestamp.Before(rec.AuditTrail[i-1].Timestamp) {
			return &InvariantViolation{Detail: fmt.Sprintf("audit trail of %s goes back in time at entry %d", rec.ID, i)}
		}
	}
	return nil
}
