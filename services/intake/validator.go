package intake

import (
	"errors"
	"reflect"
	"strings"
	"time"
	_ "time/tzdata"

	"bookingops/models"

	"github.com/go-playground/validator/v10"
)

const dateLayout = "2006-01-02"

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report json field names so errors line up with the wire format.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate normalizes a raw intake and checks it against the intake contract.
// It returns every violation found as ValidationErrors.
func Validate(raw models.IntakeRequest) (models.BookingPayload, error) {
	normalize(&raw)

	var errs ValidationErrors
	if err := validate.Struct(raw); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return models.BookingPayload{}, err
		}
		for _, fe := range fieldErrs {
			errs = append(errs, &ValidationError{Field: fieldPath(fe), Reason: reasonFor(fe)})
		}
	}

	if raw.Booking.PartySize != nil && *raw.Booking.PartySize < 1 {
		errs = append(errs, &ValidationError{Field: "booking.partySize", Reason: "must be at least 1"})
	}
	if raw.Booking.DesiredDateEnd != nil {
		start, startErr := time.Parse(dateLayout, raw.Booking.DesiredDateStart)
		end, endErr := time.Parse(dateLayout, *raw.Booking.DesiredDateEnd)
		if startErr == nil && endErr == nil && end.Before(start) {
			errs = append(errs, &ValidationError{Field: "booking.desiredDateEnd", Reason: "must not be before desiredDateStart"})
		}
	}

	if len(errs) > 0 {
		return models.BookingPayload{}, errs
	}
	return toPayload(raw), nil
}

// normalize trims text, collapses blank optionals to nil and applies form defaults.
func normalize(raw *models.IntakeRequest) {
	c := &raw.Contact
	c.FirstName = strings.TrimSpace(c.FirstName)
	c.LastName = strings.TrimSpace(c.LastName)
	c.Email = strings.TrimSpace(c.Email)
	c.Phone = optional(c.Phone)
	c.Organization = optional(c.Organization)
	c.PreferredChannel = enumOrDefault(c.PreferredChannel, string(models.ChannelEmail))

	b := &raw.Booking
	b.ServiceCategory = enumOrDefault(b.ServiceCategory, string(models.CategoryAccommodation))
	b.DesiredDateStart = strings.TrimSpace(b.DesiredDateStart)
	b.DesiredDateEnd = optional(b.DesiredDateEnd)
	b.Timezone = strings.TrimSpace(b.Timezone)
	b.Location = optional(b.Location)
	b.BudgetLevel = enumOrDefault(b.BudgetLevel, string(models.BudgetStandard))
	b.Urgency = enumOrDefault(b.Urgency, string(models.UrgencySoon))

	for i, n := range raw.Preferences.Notifications {
		raw.Preferences.Notifications[i] = strings.ToLower(strings.TrimSpace(n))
	}

	n := &raw.Notes
	n.IntentNarrative = optional(n.IntentNarrative)
	n.SpecialRequests = optional(n.SpecialRequests)
	n.OperationsNotes = optional(n.OperationsNotes)

	m := &raw.ChannelMeta
	m.InboundChannel = strings.TrimSpace(m.InboundChannel)
	if m.InboundChannel == "" {
		m.InboundChannel = "web"
	}
	m.LeadSource = strings.TrimSpace(m.LeadSource)
}

func toPayload(raw models.IntakeRequest) models.BookingPayload {
	var partySize *int
	if raw.Booking.PartySize != nil {
		n := *raw.Booking.PartySize
		partySize = &n
	}
	return models.BookingPayload{
		Contact: models.Contact{
			FirstName:        raw.Contact.FirstName,
			LastName:         raw.Contact.LastName,
			Email:            raw.Contact.Email,
			Phone:            raw.Contact.Phone,
			Organization:     raw.Contact.Organization,
			PreferredChannel: models.ContactChannel(raw.Contact.PreferredChannel),
		},
		Booking: models.BookingSpec{
			ServiceCategory:  models.ServiceCategory(raw.Booking.ServiceCategory),
			DesiredDateStart: raw.Booking.DesiredDateStart,
			DesiredDateEnd:   raw.Booking.DesiredDateEnd,
			Timezone:         raw.Booking.Timezone,
			Location:         raw.Booking.Location,
			PartySize:        partySize,
			BudgetLevel:      models.BudgetLevel(raw.Booking.BudgetLevel),
			Urgency:          models.Urgency(raw.Booking.Urgency),
		},
		Preferences: models.Preferences{
			FollowUpByHuman:       raw.Preferences.FollowUpByHuman,
			RequiresSupervisor:    raw.Preferences.RequiresSupervisor,
			MultiChannelBroadcast: raw.Preferences.MultiChannelBroadcast,
			Notifications:         notificationSet(raw.Preferences.Notifications),
		},
		Notes: models.Notes{
			IntentNarrative: raw.Notes.IntentNarrative,
			SpecialRequests: raw.Notes.SpecialRequests,
			OperationsNotes: raw.Notes.OperationsNotes,
			Tags:            SplitTags(raw.Notes.Tags),
		},
		ChannelMeta: models.ChannelMeta{
			InboundChannel: raw.ChannelMeta.InboundChannel,
			LeadSource:     raw.ChannelMeta.LeadSource,
		},
	}
}

// SplitTags splits every raw tag on commas, trims, and drops empties. Order and
// duplicates are preserved.
func SplitTags(raw []string) []string {
	tags := make([]string, 0, len(raw))
	for _, chunk := range raw {
		for _, part := range strings.Split(chunk, ",") {
			if tag := strings.TrimSpace(part); tag != "" {
				tags = append(tags, tag)
			}
		}
	}
	return tags
}

// notificationSet dedupes the opt-in channels and emits them in canonical order.
func notificationSet(raw []string) []models.NotificationChannel {
	seen := make(map[models.NotificationChannel]bool, len(raw))
	for _, n := range raw {
		seen[models.NotificationChannel(n)] = true
	}
	out := make([]models.NotificationChannel, 0, len(seen))
	for _, ch := range models.NotificationChannels {
		if seen[ch] {
			out = append(out, ch)
		}
	}
	return out
}

func optional(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

func enumOrDefault(v, def string) string {
	v = strings.ToLower(strings.TrimSpace(v))
	if v == "" {
		return def
	}
	return v
}

// fieldPath drops the root struct name from the validator namespace.
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func reasonFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a well-formed email address"
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "datetime":
		return "must be a date formatted YYYY-MM-DD"
	case "timezone":
		return "must be an IANA timezone name"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	default:
		return "failed " + fe.Tag() + " check"
	}
}
