package reasoning

import (
	"fmt"
	"math"
	"strings"

	"bookingops/models"

	"go.uber.org/zap"
)

// EngineVersion changes whenever a table or weight changes so cached bundles are not reused.
const EngineVersion = "2026.10.1"

// Engine turns a validated payload into a ReasoningBundle. It holds no mutable state.
type Engine struct {
	logger *zap.Logger
	strict bool
}

type Option func(*Engine)

func WithLogger(logger *zap.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithStrict makes table gaps panic with *InvariantViolation instead of being repaired and logged.
func WithStrict(strict bool) Option {
	return func(e *Engine) { e.strict = strict }
}

func NewEngine(opts ...Option) *Engine {
	e := &Engine{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

var strictEngine = NewEngine(WithStrict(true))

// Reason runs the strict engine.
func Reason(p models.BookingPayload) models.ReasoningBundle {
	return strictEngine.Reason(p)
}

type classification struct {
	category       models.ServiceCategory
	overridden     bool
	corroborations int
}

func (e *Engine) Reason(p models.BookingPayload) models.ReasoningBundle {
	cls := e.classify(p)
	tier := tierOf(p.Booking.BudgetLevel)

	row, ok := intentTable[cls.category]
	if !ok {
		e.violation("no intent row for category", zap.String("category", string(cls.category)))
		cls.category = models.CategoryOther
		row = intentTable[models.CategoryOther]
	}
	label := row[classOf(p.Booking.Urgency)][tier]

	return models.ReasoningBundle{
		IntentLabel:        label,
		Confidence:         e.confidence(p, cls),
		Summary:            summarize(p, cls.category, label),
		Personalization:    personalize(p),
		RecommendedActions: e.actions(p, cls.category, tier),
		FollowUpPlan:       followUpPlan(p.Preferences, p.Booking.Urgency),
	}
}

func (e *Engine) classify(p models.BookingPayload) classification {
	declared := p.Booking.ServiceCategory
	text := strings.ToLower(deref(p.Notes.IntentNarrative) + " " + deref(p.Notes.SpecialRequests))

	var hits []keyword
	for _, kw := range keywords {
		if strings.Contains(text, kw.term) {
			hits = append(hits, kw)
		}
	}

	// An override only applies when the narrative names no override keyword of the
	// declared category. Among other categories, declaration order decides.
	effective := declared
	backed := false
	for _, kw := range hits {
		if kw.override && kw.category == declared {
			backed = true
			break
		}
	}
	if !backed {
		for _, kw := range hits {
			if kw.override {
				effective = kw.category
				break
			}
		}
	}
	if effective == models.CategoryOther && len(hits) > 0 {
		effective = hits[0].category
	}

	corroborations := 0
	for _, kw := range hits {
		if kw.category == effective && corroborations < maxCorroborations {
			corroborations++
		}
	}

	return classification{
		category:       effective,
		overridden:     effective != declared,
		corroborations: corroborations,
	}
}

func (e *Engine) confidence(p models.BookingPayload, cls classification) float64 {
	base, ok := baseWeight[cls.category]
	if !ok {
		e.violation("no base weight for category", zap.String("category", string(cls.category)))
	}
	bonus, ok := urgencyBonus[p.Booking.Urgency]
	if !ok {
		e.violation("no urgency bonus", zap.String("urgency", string(p.Booking.Urgency)))
	}

	score := base + bonus + corroborationWeight*float64(cls.corroborations)
	if cls.overridden {
		score += overrideBonus
	}
	if p.Booking.Location == nil {
		score -= missingLocation
	}
	if p.Notes.IntentNarrative == nil {
		score -= missingNarrative
	}

	if score < 0 || score > 1 || math.IsNaN(score) {
		e.violation("confidence out of range", zap.Float64("confidence", score))
		score = math.Max(0, math.Min(1, score))
		if math.IsNaN(score) {
			score = 0
		}
	}
	return math.Round(score*100) / 100
}

func (e *Engine) actions(p models.BookingPayload, category models.ServiceCategory, tier budgetTier) []string {
	var out []string
	out = append(out, categoryActions[category]...)
	out = append(out, urgencyActions[p.Booking.Urgency]...)
	out = append(out, tierActions[tier]...)
	if p.Preferences.RequiresSupervisor {
		out = append(out, supervisorAction)
	}
	if p.Preferences.MultiChannelBroadcast {
		out = append(out, broadcastAction)
	}
	if len(out) == 0 {
		e.violation("empty recommended actions", zap.String("category", string(category)))
		out = append(out, categoryActions[models.CategoryOther]...)
	}
	return out
}

func followUpPlan(prefs models.Preferences, urgency models.Urgency) string {
	urgent := urgency == models.UrgencyUrgent
	switch {
	case prefs.FollowUpByHuman && urgent && prefs.MultiChannelBroadcast:
		return planHumanUrgentBroadcast
	case prefs.FollowUpByHuman && urgent:
		return planHumanUrgent
	case prefs.FollowUpByHuman && prefs.MultiChannelBroadcast:
		return planHumanBroadcast
	case prefs.FollowUpByHuman:
		return planHuman
	case prefs.MultiChannelBroadcast:
		return planAutoBroadcast
	case urgent:
		return planAutoUrgent
	default:
		return planAuto
	}
}

func summarize(p models.BookingPayload, category models.ServiceCategory, label models.IntentLabel) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s request from %s %s classified as %s", categoryNames[category],
		p.Contact.FirstName, p.Contact.LastName, label)
	fmt.Fprintf(&b, " (%s urgency, %s budget)", p.Booking.Urgency, p.Booking.BudgetLevel)
	if p.Booking.DesiredDateEnd != nil {
		fmt.Fprintf(&b, " for %s to %s", p.Booking.DesiredDateStart, *p.Booking.DesiredDateEnd)
	} else {
		fmt.Fprintf(&b, " starting %s", p.Booking.DesiredDateStart)
	}
	if p.Booking.Location != nil {
		fmt.Fprintf(&b, " in %s", *p.Booking.Location)
	}
	if p.Booking.PartySize != nil {
		fmt.Fprintf(&b, ", party of %d", *p.Booking.PartySize)
	}
	b.WriteString(".")
	return b.String()
}

func personalize(p models.BookingPayload) string {
	phrase, ok := budgetPhrases[p.Booking.BudgetLevel]
	if !ok {
		phrase = string(p.Booking.BudgetLevel)
	}
	who := "you"
	if p.Contact.Organization != nil {
		who = "you and the " + *p.Contact.Organization + " team"
	}
	return fmt.Sprintf("Hi %s, we're shaping %s options for %s and will coordinate every step in %s time.",
		p.Contact.FirstName, phrase, who, p.Booking.Timezone)
}

// violation panics in strict mode and logs otherwise; callers repair the value afterwards.
func (e *Engine) violation(detail string, fields ...zap.Field) {
	if e.strict {
		panic(&InvariantViolation{Detail: detail})
	}
	e.logger.Error("reasoning invariant violated", append(fields, zap.String("detail", detail))...)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
