package models

import (
	"encoding/json"
	"fmt"
)

// IntakeRequest is the raw intake body posted by the booking form or an upstream channel.
// It is only trusted after services/intake has validated it into a BookingPayload.
type IntakeRequest struct {
	Contact     IntakeContact     `json:"contact"`
	Booking     IntakeBooking     `json:"booking"`
	Preferences IntakePreferences `json:"preferences"`
	Notes       IntakeNotes       `json:"notes"`
	ChannelMeta IntakeChannelMeta `json:"channelMeta"`
}

type IntakeContact struct {
	FirstName        string  `json:"firstName" validate:"required,max=120"`
	LastName         string  `json:"lastName" validate:"required,max=120"`
	Email            string  `json:"email" validate:"required,email"`
	Phone            *string `json:"phone,omitempty" validate:"omitempty,max=40"`
	Organization     *string `json:"organization,omitempty" validate:"omitempty,max=200"`
	PreferredChannel string  `json:"preferredChannel" validate:"oneof=email web whatsapp phone"`
}

type IntakeBooking struct {
	ServiceCategory  string  `json:"serviceCategory" validate:"oneof=accommodation event transport consultation other"`
	DesiredDateStart string  `json:"desiredDateStart" validate:"required,datetime=2006-01-02"`
	DesiredDateEnd   *string `json:"desiredDateEnd,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Timezone         string  `json:"timezone" validate:"required,timezone"`
	Location         *string `json:"location,omitempty" validate:"omitempty,max=200"`
	PartySize        *int    `json:"partySize,omitempty"`
	BudgetLevel      string  `json:"budgetLevel" validate:"oneof=value standard premium luxury"`
	Urgency          string  `json:"urgency" validate:"oneof=flexible soon urgent"`
}

type IntakePreferences struct {
	FollowUpByHuman       bool     `json:"followUpByHuman"`
	RequiresSupervisor    bool     `json:"requiresSupervisor"`
	MultiChannelBroadcast bool     `json:"multiChannelBroadcast"`
	Notifications         []string `json:"notifications" validate:"dive,oneof=email sms whatsapp"`
}

type IntakeNotes struct {
	IntentNarrative *string `json:"intentNarrative,omitempty" validate:"omitempty,max=4000"`
	SpecialRequests *string `json:"specialRequests,omitempty" validate:"omitempty,max=4000"`
	OperationsNotes *string `json:"operationsNotes,omitempty" validate:"omitempty,max=4000"`
	Tags            TagList `json:"tags"`
}

type IntakeChannelMeta struct {
	InboundChannel string `json:"inboundChannel" validate:"max=64"`
	LeadSource     string `json:"leadSource" validate:"required,max=120"`
}

// TagList accepts either a comma separated string or an array of strings.
type TagList []string

func (t *TagList) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*t = nil
		return nil
	}
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*t = TagList{single}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return fmt.Errorf("tags must be a string or an array of strings: %w", err)
	}
	*t = TagList(many)
	return nil
}
