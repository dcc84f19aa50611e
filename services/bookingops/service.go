package bookingops

import (
	"context"
	"strings"

	"bookingops/models"
	"bookingops/services/audit"
	"bookingops/services/booking"

	"go.uber.org/zap"
)

func (s *DefaultService) Reason(ctx context.Context, payload models.BookingPayload) models.ReasoningBundle {
	return s.Reasoner.Reason(ctx, payload)
}

func (s *DefaultService) CreateBooking(ctx context.Context, payload models.BookingPayload, reasoning models.ReasoningBundle, owner models.RoleOwner) (models.BookingRecord, error) {
	return s.Store.Create(ctx, payload, reasoning, owner)
}

// Submit runs the whole intake pipeline. A failed follow-up dispatch is logged and does
// not undo the created record.
func (s *DefaultService) Submit(ctx context.Context, raw models.IntakeRequest) (models.BookingRecord, error) {
	payload, err := s.ValidateIntake(raw)
	if err != nil {
		return models.BookingRecord{}, err
	}
	reasoning := s.Reason(ctx, payload)

	rec, err := s.CreateBooking(ctx, payload, reasoning, booking.InitialOwner(payload))
	if err != nil {
		return models.BookingRecord{}, err
	}

	if err := s.Dispatcher.Dispatch(ctx, rec); err != nil {
		s.Logger.Error("Failed to dispatch follow-up", zap.String("bookingID", rec.ID), zap.Error(err))
	}
	return rec, nil
}

func (s *DefaultService) GetBooking(ctx context.Context, id string) (models.BookingRecord, error) {
	return s.Store.Get(ctx, id)
}

func (s *DefaultService) ListBookings(ctx context.Context) []models.BookingRecord {
	return s.Store.List(ctx)
}

func (s *DefaultService) UpdateStatus(ctx context.Context, id string, status models.BookingStatus, acting models.AuditRole) (models.BookingRecord, error) {
	return s.Store.UpdateStatus(ctx, id, status, acting)
}

func (s *DefaultService) AppendAuditNote(ctx context.Context, id string, entry models.AuditLogEntry) (models.BookingRecord, error) {
	return s.Store.AppendAudit(ctx, id, entry)
}

// Review applies a console edit. The status change commits before the note, so a
// rejected note never hides a status change that already happened. An empty status means
// no status change.
func (s *DefaultService) Review(ctx context.Context, id string, req ReviewRequest, acting models.AuditRole) (models.BookingRecord, error) {
	if req.Status != nil && *req.Status != "" {
		if !req.Status.Valid() {
			return models.BookingRecord{}, &booking.InvalidStatusError{Status: string(*req.Status)}
		}
		if _, err := s.Store.UpdateStatus(ctx, id, *req.Status, acting); err != nil {
			return models.BookingRecord{}, err
		}
	}

	if req.Note != nil {
		if note := strings.TrimSpace(*req.Note); note != "" {
			actor, role := booking.NoteAuthor(acting)
			if _, err := s.Store.AppendAudit(ctx, id, models.AuditLogEntry{
				Actor:   actor,
				Role:    role,
				Action:  models.ActionNoteAppended,
				Details: note,
			}); err != nil {
				return models.BookingRecord{}, err
			}
		}
	}

	return s.Store.Get(ctx, id)
}

func (s *DefaultService) RecentAudits(ctx context.Context, n int) []audit.FeedEntry {
	return s.Ledger.Recent(ctx, n)
}

func (s *DefaultService) SLA(ctx context.Context) booking.SLASummary {
	return booking.Summarize(s.Store.List(ctx))
}
