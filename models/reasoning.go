package models

// IntentLabel is the categorical tag the reasoning engine assigns to a request.
type IntentLabel string

const (
	IntentLodgingReservation    IntentLabel = "lodging_reservation"
	IntentLodgingRush           IntentLabel = "lodging_rush"
	IntentLuxuryLodging         IntentLabel = "luxury_lodging"
	IntentLuxuryLodgingRush     IntentLabel = "luxury_lodging_rush"
	IntentEventPlanning         IntentLabel = "event_planning"
	IntentEventRush             IntentLabel = "event_rush"
	IntentSignatureEvent        IntentLabel = "signature_event"
	IntentSignatureEventRush    IntentLabel = "signature_event_rush"
	IntentTransportArrangement  IntentLabel = "transport_arrangement"
	IntentTransportRush         IntentLabel = "transport_rush"
	IntentChauffeuredTransport  IntentLabel = "chauffeured_transport"
	IntentChauffeuredRush       IntentLabel = "chauffeured_transport_rush"
	IntentAdvisorySession       IntentLabel = "advisory_session"
	IntentAdvisoryRush          IntentLabel = "advisory_rush"
	IntentExecutiveAdvisory     IntentLabel = "executive_advisory"
	IntentExecutiveAdvisoryRush IntentLabel = "executive_advisory_rush"
	IntentGeneralInquiry        IntentLabel = "general_inquiry"
	IntentGeneralRush           IntentLabel = "general_rush"
	IntentBespokeRequest        IntentLabel = "bespoke_request"
	IntentBespokeRush           IntentLabel = "bespoke_request_rush"
)

// ReasoningBundle is the deterministic decision output bound to a booking record.
type ReasoningBundle struct {
	IntentLabel        IntentLabel `bson:"intentLabel" json:"intentLabel"`
	Confidence         float64     `bson:"confidence" json:"confidence"` // within [0, 1]
	Summary            string      `bson:"summary" json:"summary"`
	Personalization    string      `bson:"personalization" json:"personalization"`
	RecommendedActions []string    `bson:"recommendedActions" json:"recommendedActions"` // never empty
	FollowUpPlan       string      `bson:"followUpPlan" json:"followUpPlan"`
}

func (b ReasoningBundle) Clone() ReasoningBundle {
	out := b
	if b.RecommendedActions != nil {
		out.RecommendedActions = append([]string(nil), b.RecommendedActions...)
	}
	return out
}
