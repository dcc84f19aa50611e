package reasoning

import "bookingops/models"

type urgencyClass int

const (
	routine urgencyClass = iota
	rush
)

type budgetTier int

const (
	coreTier budgetTier = iota
	elevatedTier
)

func classOf(u models.Urgency) urgencyClass {
	if u == models.UrgencyUrgent {
		return rush
	}
	return routine
}

func tierOf(b models.BudgetLevel) budgetTier {
	if b == models.BudgetPremium || b == models.BudgetLuxury {
		return elevatedTier
	}
	return coreTier
}

// intentTable[category][urgencyClass][budgetTier]
var intentTable = map[models.ServiceCategory][2][2]models.IntentLabel{
	models.CategoryAccommodation: {
		routine: {coreTier: models.IntentLodgingReservation, elevatedTier: models.IntentLuxuryLodging},
		rush:    {coreTier: models.IntentLodgingRush, elevatedTier: models.IntentLuxuryLodgingRush},
	},
	models.CategoryEvent: {
		routine: {coreTier: models.IntentEventPlanning, elevatedTier: models.IntentSignatureEvent},
		rush:    {coreTier: models.IntentEventRush, elevatedTier: models.IntentSignatureEventRush},
	},
	models.CategoryTransport: {
		routine: {coreTier: models.IntentTransportArrangement, elevatedTier: models.IntentChauffeuredTransport},
		rush:    {coreTier: models.IntentTransportRush, elevatedTier: models.IntentChauffeuredRush},
	},
	models.CategoryConsultation: {
		routine: {coreTier: models.IntentAdvisorySession, elevatedTier: models.IntentExecutiveAdvisory},
		rush:    {coreTier: models.IntentAdvisoryRush, elevatedTier: models.IntentExecutiveAdvisoryRush},
	},
	models.CategoryOther: {
		routine: {coreTier: models.IntentGeneralInquiry, elevatedTier: models.IntentBespokeRequest},
		rush:    {coreTier: models.IntentGeneralRush, elevatedTier: models.IntentBespokeRush},
	},
}

type keyword struct {
	term     string
	category models.ServiceCategory
	// override lets the keyword replace the declared category.
	override bool
}

// keywords is scanned in declaration order; the first override-capable hit wins.
var keywords = []keyword{
	{term: "hotel", category: models.CategoryAccommodation, override: true},
	{term: "villa", category: models.CategoryAccommodation, override: true},
	{term: "lodging", category: models.CategoryAccommodation, override: true},
	{term: "suite", category: models.CategoryAccommodation},
	{term: "check-in", category: models.CategoryAccommodation},
	{term: "overnight", category: models.CategoryAccommodation},
	{term: "wedding", category: models.CategoryEvent, override: true},
	{term: "conference", category: models.CategoryEvent, override: true},
	{term: "gala", category: models.CategoryEvent, override: true},
	{term: "venue", category: models.CategoryEvent},
	{term: "catering", category: models.CategoryEvent},
	{term: "guest list", category: models.CategoryEvent},
	{term: "chauffeur", category: models.CategoryTransport, override: true},
	{term: "airport", category: models.CategoryTransport, override: true},
	{term: "shuttle", category: models.CategoryTransport},
	{term: "pickup", category: models.CategoryTransport},
	{term: "transfer", category: models.CategoryTransport},
	{term: "consultation", category: models.CategoryConsultation, override: true},
	{term: "advisory", category: models.CategoryConsultation, override: true},
	{term: "strategy", category: models.CategoryConsultation},
	{term: "workshop", category: models.CategoryConsultation},
}

const (
	corroborationWeight = 0.06
	maxCorroborations   = 4
	overrideBonus       = 0.04
	missingLocation     = 0.08
	missingNarrative    = 0.10
)

var baseWeight = map[models.ServiceCategory]float64{
	models.CategoryAccommodation: 0.55,
	models.CategoryEvent:         0.50,
	models.CategoryTransport:     0.55,
	models.CategoryConsultation:  0.45,
	models.CategoryOther:         0.30,
}

var urgencyBonus = map[models.Urgency]float64{
	models.UrgencyFlexible: 0,
	models.UrgencySoon:     0.04,
	models.UrgencyUrgent:   0.10,
}

var categoryNames = map[models.ServiceCategory]string{
	models.CategoryAccommodation: "Accommodation",
	models.CategoryEvent:         "Event",
	models.CategoryTransport:     "Transport",
	models.CategoryConsultation:  "Consultation",
	models.CategoryOther:         "General",
}

var budgetPhrases = map[models.BudgetLevel]string{
	models.BudgetValue:    "value-focused",
	models.BudgetStandard: "well-balanced",
	models.BudgetPremium:  "premium",
	models.BudgetLuxury:   "luxury",
}

var categoryActions = map[models.ServiceCategory][]string{
	models.CategoryAccommodation: {
		"Shortlist properties that fit the requested dates and party size",
		"Confirm room configuration and check-in preferences",
	},
	models.CategoryEvent: {
		"Check venue availability for the requested dates",
		"Draft a run-of-show outline for review",
	},
	models.CategoryTransport: {
		"Confirm pickup and drop-off points",
		"Reserve a vehicle class that fits the party size",
	},
	models.CategoryConsultation: {
		"Match the request with an available advisor",
		"Send the intake questionnaire ahead of the session",
	},
	models.CategoryOther: {
		"Review the request manually to determine the service line",
	},
}

var urgencyActions = map[models.Urgency][]string{
	models.UrgencyFlexible: {"Queue in the standard follow-up cadence"},
	models.UrgencySoon:     {"Prioritize in today's follow-up queue"},
	models.UrgencyUrgent:   {"Escalate to the on-call operations lead", "Place a provisional hold on inventory"},
}

var tierActions = [2][]string{
	coreTier:     {"Lead with best-value options"},
	elevatedTier: {"Assign a concierge for white-glove handling"},
}

const (
	supervisorAction = "Route to a supervisor for approval before confirming"
	broadcastAction  = "Broadcast status updates across all opted-in channels"
)

const (
	planHumanUrgentBroadcast = "Operations lead contacts the requester within 1 hour and mirrors the update across all opted-in channels."
	planHumanUrgent          = "Operations lead contacts the requester within 1 hour on the preferred channel."
	planHumanBroadcast       = "Operations team follows up within 1 business day and mirrors the update across all opted-in channels."
	planHuman                = "Operations team follows up within 1 business day on the preferred channel."
	planAutoBroadcast        = "Automated confirmation goes out on every opted-in channel; escalate to operations if unanswered after 24 hours."
	planAutoUrgent           = "Send the automated confirmation immediately; operations reviews within 4 hours."
	planAuto                 = "Send the automated confirmation now and a reminder 48 hours before the start date."
)
