package bookingops

import (
	"context"

	"bookingops/models"
	"bookingops/services/audit"
	"bookingops/services/booking"
	"bookingops/services/followup"
	"bookingops/services/intake"

	"go.uber.org/zap"
)

// Reasoner produces the reasoning bundle for a validated payload.
type Reasoner interface {
	Reason(ctx context.Context, p models.BookingPayload) models.ReasoningBundle
}

// Service is what the HTTP boundary talks to. Callers resolve identity first and pass the
// acting role in.
type Service interface {
	ValidateIntake(raw models.IntakeRequest) (models.BookingPayload, error)
	Reason(ctx context.Context, payload models.BookingPayload) models.ReasoningBundle
	CreateBooking(ctx context.Context, payload models.BookingPayload, reasoning models.ReasoningBundle, owner models.RoleOwner) (models.BookingRecord, error)
	Submit(ctx context.Context, raw models.IntakeRequest) (models.BookingRecord, error)
	GetBooking(ctx context.Context, id string) (models.BookingRecord, error)
	ListBookings(ctx context.Context) []models.BookingRecord
	UpdateStatus(ctx context.Context, id string, status models.BookingStatus, acting models.AuditRole) (models.BookingRecord, error)
	AppendAuditNote(ctx context.Context, id string, entry models.AuditLogEntry) (models.BookingRecord, error)
	Review(ctx context.Context, id string, req ReviewRequest, acting models.AuditRole) (models.BookingRecord, error)
	RecentAudits(ctx context.Context, n int) []audit.FeedEntry
	SLA(ctx context.Context) booking.SLASummary
}

// ReviewRequest is a console edit: an optional status change and an optional note.
type ReviewRequest struct {
	Status *models.BookingStatus `json:"status,omitempty"`
	Note   *string               `json:"note,omitempty"`
}

// DefaultService implements Service over the in-process store.
type DefaultService struct {
	Store      *booking.Store
	Ledger     *audit.Ledger
	Reasoner   Reasoner
	Dispatcher followup.Dispatcher
	Logger     *zap.Logger
}

func NewService(store *booking.Store, reasoner Reasoner, dispatcher followup.Dispatcher, logger *zap.Logger) *DefaultService {
	if dispatcher == nil {
		dispatcher = followup.NoopDispatcher{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultService{
		Store:      store,
		Ledger:     audit.NewLedger(store),
		Reasoner:   reasoner,
		Dispatcher: dispatcher,
		Logger:     logger,
	}
}

var _ Service = (*DefaultService)(nil)

func (s *DefaultService) ValidateIntake(raw models.IntakeRequest) (models.BookingPayload, error) {
	return intake.Validate(raw)
}
