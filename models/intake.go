package models

// ContactChannel is how the requester prefers to be reached.
type ContactChannel string

const (
	ChannelEmail    ContactChannel = "email"
	ChannelWeb      ContactChannel = "web"
	ChannelWhatsApp ContactChannel = "whatsapp"
	ChannelPhone    ContactChannel = "phone"
)

// ServiceCategory is the kind of booking being requested.
type ServiceCategory string

const (
	CategoryAccommodation ServiceCategory = "accommodation"
	CategoryEvent         ServiceCategory = "event"
	CategoryTransport     ServiceCategory = "transport"
	CategoryConsultation  ServiceCategory = "consultation"
	CategoryOther         ServiceCategory = "other"
)

// ServiceCategories lists every category in declaration order.
var ServiceCategories = []ServiceCategory{
	CategoryAccommodation,
	CategoryEvent,
	CategoryTransport,
	CategoryConsultation,
	CategoryOther,
}

// BudgetLevel expresses the requester's spend expectation.
type BudgetLevel string

const (
	BudgetValue    BudgetLevel = "value"
	BudgetStandard BudgetLevel = "standard"
	BudgetPremium  BudgetLevel = "premium"
	BudgetLuxury   BudgetLevel = "luxury"
)

var BudgetLevels = []BudgetLevel{BudgetValue, BudgetStandard, BudgetPremium, BudgetLuxury}

// Urgency expresses how soon the requester needs a response.
type Urgency string

const (
	UrgencyFlexible Urgency = "flexible"
	UrgencySoon     Urgency = "soon"
	UrgencyUrgent   Urgency = "urgent"
)

var Urgencies = []Urgency{UrgencyFlexible, UrgencySoon, UrgencyUrgent}

// NotificationChannel is an opt-in channel for status notifications.
type NotificationChannel string

const (
	NotifyEmail    NotificationChannel = "email"
	NotifySMS      NotificationChannel = "sms"
	NotifyWhatsApp NotificationChannel = "whatsapp"
)

// NotificationChannels is the canonical ordering used when normalizing the opt-in set.
var NotificationChannels = []NotificationChannel{NotifyEmail, NotifySMS, NotifyWhatsApp}

// BookingPayload is a validated, canonical intake. Nil pointers mean "not provided".
type BookingPayload struct {
	Contact     Contact     `bson:"contact" json:"contact"`
	Booking     BookingSpec `bson:"booking" json:"booking"`
	Preferences Preferences `bson:"preferences" json:"preferences"`
	Notes       Notes       `bson:"notes" json:"notes"`
	ChannelMeta ChannelMeta `bson:"channelMeta" json:"channelMeta"`
}

type Contact struct {
	FirstName        string         `bson:"firstName" json:"firstName"`
	LastName         string         `bson:"lastName" json:"lastName"`
	Email            string         `bson:"email" json:"email"`
	Phone            *string        `bson:"phone,omitempty" json:"phone,omitempty"`
	Organization     *string        `bson:"organization,omitempty" json:"organization,omitempty"`
	PreferredChannel ContactChannel `bson:"preferredChannel" json:"preferredChannel"`
}

type BookingSpec struct {
	ServiceCategory  ServiceCategory `bson:"serviceCategory" json:"serviceCategory"`
	DesiredDateStart string          `bson:"desiredDateStart" json:"desiredDateStart"`                 // YYYY-MM-DD
	DesiredDateEnd   *string         `bson:"desiredDateEnd,omitempty" json:"desiredDateEnd,omitempty"` // YYYY-MM-DD
	Timezone         string          `bson:"timezone" json:"timezone"`                                 // IANA zone name
	Location         *string         `bson:"location,omitempty" json:"location,omitempty"`
	PartySize        *int            `bson:"partySize,omitempty" json:"partySize,omitempty"`
	BudgetLevel      BudgetLevel     `bson:"budgetLevel" json:"budgetLevel"`
	Urgency          Urgency         `bson:"urgency" json:"urgency"`
}

type Preferences struct {
	FollowUpByHuman       bool                  `bson:"followUpByHuman" json:"followUpByHuman"`
	RequiresSupervisor    bool                  `bson:"requiresSupervisor" json:"requiresSupervisor"`
	MultiChannelBroadcast bool                  `bson:"multiChannelBroadcast" json:"multiChannelBroadcast"`
	Notifications         []NotificationChannel `bson:"notifications" json:"notifications"`
}

type Notes struct {
	IntentNarrative *string  `bson:"intentNarrative,omitempty" json:"intentNarrative,omitempty"`
	SpecialRequests *string  `bson:"specialRequests,omitempty" json:"specialRequests,omitempty"`
	OperationsNotes *string  `bson:"operationsNotes,omitempty" json:"operationsNotes,omitempty"`
	Tags            []string `bson:"tags" json:"tags"`
}

type ChannelMeta struct {
	InboundChannel string `bson:"inboundChannel" json:"inboundChannel"`
	LeadSource     string `bson:"leadSource" json:"leadSource"`
}

// Clone deep-copies every pointer and slice in the payload.
func (p BookingPayload) Clone() BookingPayload {
	out := p
	out.Contact.Phone = cloneString(p.Contact.Phone)
	out.Contact.Organization = cloneString(p.Contact.Organization)
	out.Booking.DesiredDateEnd = cloneString(p.Booking.DesiredDateEnd)
	out.Booking.Location = cloneString(p.Booking.Location)
	if p.Booking.PartySize != nil {
		n := *p.Booking.PartySize
		out.Booking.PartySize = &n
	}
	if p.Preferences.Notifications != nil {
		out.Preferences.Notifications = append([]NotificationChannel(nil), p.Preferences.Notifications...)
	}
	out.Notes.IntentNarrative = cloneString(p.Notes.IntentNarrative)
	out.Notes.SpecialRequests = cloneString(p.Notes.SpecialRequests)
	out.Notes.OperationsNotes = cloneString(p.Notes.OperationsNotes)
	if p.Notes.Tags != nil {
		out.Notes.Tags = append([]string(nil), p.Notes.Tags...)
	}
	return out
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
