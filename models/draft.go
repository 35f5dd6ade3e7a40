package models

// Service types offered on the marketplace.
const (
	ServiceStandard  = "standard"
	ServiceDeep      = "deep"
	ServiceMoveInOut = "move-in-out"
	ServiceAirbnb    = "airbnb"
	ServiceOffice    = "office"
)

// Booking frequencies.
const (
	FrequencyOneTime  = "one-time"
	FrequencyWeekly   = "weekly"
	FrequencyBiWeekly = "bi-weekly"
	FrequencyMonthly  = "monthly"
)

// Office size tiers, used instead of room counts for office bookings.
const (
	OfficeSmall  = "small"
	OfficeMedium = "medium"
	OfficeLarge  = "large"
)

// CleanerNoPreference is the default cleaner selection.
const CleanerNoPreference = "no-preference"

// BookingDraft holds the in-progress selections a customer accumulates
// across the wizard steps (service details, schedule, review, payment)
// before final submission. It is persisted after every mutation and
// cleared once a booking is successfully created.
type BookingDraft struct {
	ServiceType         string   `json:"serviceType"`
	Frequency           string   `json:"frequency"`
	Bedrooms            int      `json:"bedrooms"`
	Bathrooms           int      `json:"bathrooms"`
	OfficeSize          string   `json:"officeSize,omitempty"`
	Extras              []string `json:"extras"`
	ScheduledDate       string   `json:"scheduledDate,omitempty"` // "YYYY-MM-DD", empty until the schedule step
	ScheduledTime       string   `json:"scheduledTime,omitempty"` // "HH:MM"
	Street              string   `json:"street,omitempty"`
	Unit                string   `json:"unit,omitempty"`
	Suburb              string   `json:"suburb,omitempty"`
	City                string   `json:"city,omitempty"`
	CleanerPreference   string   `json:"cleanerPreference"`
	SpecialInstructions string   `json:"specialInstructions,omitempty"`
	DiscountCode        string   `json:"discountCode,omitempty"`
	FirstName           string   `json:"firstName,omitempty"`
	LastName            string   `json:"lastName,omitempty"`
	Email               string   `json:"email,omitempty"`
	Phone               string   `json:"phone,omitempty"`
}

// NewBookingDraft returns a draft populated with the wizard defaults.
func NewBookingDraft() BookingDraft {
	return BookingDraft{
		ServiceType:       ServiceStandard,
		Frequency:         FrequencyOneTime,
		Bedrooms:          0,
		Bathrooms:         1,
		Extras:            []string{},
		CleanerPreference: CleanerNoPreference,
	}
}

// DraftPatch is a partial draft update from a single wizard page.
// Nil fields leave the stored value untouched, so a page that only
// edits the schedule cannot clobber contact details set earlier.
type DraftPatch struct {
	ServiceType         *string   `json:"serviceType,omitempty"`
	Frequency           *string   `json:"frequency,omitempty"`
	Bedrooms            *int      `json:"bedrooms,omitempty"`
	Bathrooms           *int      `json:"bathrooms,omitempty"`
	OfficeSize          *string   `json:"officeSize,omitempty"`
	Extras              *[]string `json:"extras,omitempty"`
	ScheduledDate       *string   `json:"scheduledDate,omitempty"`
	ScheduledTime       *string   `json:"scheduledTime,omitempty"`
	Street              *string   `json:"street,omitempty"`
	Unit                *string   `json:"unit,omitempty"`
	Suburb              *string   `json:"suburb,omitempty"`
	City                *string   `json:"city,omitempty"`
	CleanerPreference   *string   `json:"cleanerPreference,omitempty"`
	SpecialInstructions *string   `json:"specialInstructions,omitempty"`
	DiscountCode        *string   `json:"discountCode,omitempty"`
	FirstName           *string   `json:"firstName,omitempty"`
	LastName            *string   `json:"lastName,omitempty"`
	Email               *string   `json:"email,omitempty"`
	Phone               *string   `json:"phone,omitempty"`
}

// IsEmpty reports whether the patch carries no field at all.
func (p DraftPatch) IsEmpty() bool {
	return p.ServiceType == nil && p.Frequency == nil && p.Bedrooms == nil &&
		p.Bathrooms == nil && p.OfficeSize == nil && p.Extras == nil &&
		p.ScheduledDate == nil && p.ScheduledTime == nil && p.Street == nil &&
		p.Unit == nil && p.Suburb == nil && p.City == nil &&
		p.CleanerPreference == nil && p.SpecialInstructions == nil &&
		p.DiscountCode == nil && p.FirstName == nil && p.LastName == nil &&
		p.Email == nil && p.Phone == nil
}
