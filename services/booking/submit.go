package booking

import (
	"context"
	"strings"
	"time"

	"cleanhaven/models"
	"cleanhaven/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// The fields a booking cannot be created without, keyed the way the
// wizard names them. Order is stable so error lists render predictably.
var mandatoryFields = []struct {
	key     string
	value   func(d models.BookingDraft) string
	message string
}{
	{"serviceType", func(d models.BookingDraft) string { return d.ServiceType }, "Service type is required"},
	{"scheduledDate", func(d models.BookingDraft) string { return d.ScheduledDate }, "Cleaning date is required"},
	{"scheduledTime", func(d models.BookingDraft) string { return d.ScheduledTime }, "Cleaning time is required"},
	{"street", func(d models.BookingDraft) string { return d.Street }, "Street address is required"},
	{"suburb", func(d models.BookingDraft) string { return d.Suburb }, "Suburb is required"},
	{"city", func(d models.BookingDraft) string { return d.City }, "City is required"},
	{"firstName", func(d models.BookingDraft) string { return d.FirstName }, "First name is required"},
	{"lastName", func(d models.BookingDraft) string { return d.LastName }, "Last name is required"},
	{"email", func(d models.BookingDraft) string { return d.Email }, "Email address is required"},
	{"phone", func(d models.BookingDraft) string { return d.Phone }, "Phone number is required"},
}

// addressOnlyFields are the gaps a customer can close by returning to the
// schedule step; missing one of these is recoverable, not an error.
var addressOnlyFields = map[string]bool{
	"street": true,
	"suburb": true,
	"city":   true,
}

// missingMandatory returns the keys of mandatory fields the draft has no
// value for, in declaration order.
func missingMandatory(d models.BookingDraft) []string {
	var missing []string
	for _, f := range mandatoryFields {
		if strings.TrimSpace(f.value(d)) == "" {
			missing = append(missing, f.key)
		}
	}
	return missing
}

// fieldErrors maps missing field keys to their user-facing messages.
func fieldErrors(missing []string) map[string]string {
	errs := make(map[string]string, len(missing))
	for _, key := range missing {
		for _, f := range mandatoryFields {
			if f.key == key {
				errs[key] = f.message
				break
			}
		}
	}
	return errs
}

// onlyAddressFields reports whether every missing field is closable from
// the schedule step.
func onlyAddressFields(missing []string) bool {
	if len(missing) == 0 {
		return false
	}
	for _, key := range missing {
		if !addressOnlyFields[key] {
			return false
		}
	}
	return true
}

// generateReference produces a human-readable booking reference.
func generateReference() string {
	return "CH-" + strings.ToUpper(strings.SplitN(uuid.New().String(), "-", 2)[0])
}

// SubmitBooking validates the draft, computes the final price (including
// discount resolution), persists the booking, and returns the generated
// reference. Validation failures come back as field-keyed messages in the
// result, never as an error; unexpected persistence failures are logged
// and reported as a generic failure message.
func (s *DefaultBookingService) SubmitBooking(ctx context.Context, draft models.BookingDraft, paymentRef string) (*models.SubmitBookingResult, error) {
	logger := utils.GetLogger()

	draft = NormalizeDraft(draft)
	if missing := missingMandatory(draft); len(missing) > 0 {
		return &models.SubmitBookingResult{
			Success: false,
			Message: "Please complete the required fields",
			Errors:  fieldErrors(missing),
		}, nil
	}

	cfg := s.activeConfig(ctx)
	draft = PruneExtras(draft, cfg)
	breakdown, resolution := s.breakdownFor(ctx, draft, cfg)

	booking := models.Booking{
		ID:                  uuid.New().String(),
		Reference:           generateReference(),
		ServiceType:         draft.ServiceType,
		Frequency:           draft.Frequency,
		Bedrooms:            draft.Bedrooms,
		Bathrooms:           draft.Bathrooms,
		OfficeSize:          draft.OfficeSize,
		Extras:              draft.Extras,
		ScheduledDate:       draft.ScheduledDate,
		ScheduledTime:       draft.ScheduledTime,
		Street:              draft.Street,
		Unit:                draft.Unit,
		Suburb:              draft.Suburb,
		City:                draft.City,
		CleanerPreference:   draft.CleanerPreference,
		SpecialInstructions: draft.SpecialInstructions,
		DiscountCode:        draft.DiscountCode,
		FirstName:           draft.FirstName,
		LastName:            draft.LastName,
		Email:               draft.Email,
		Phone:               draft.Phone,
		Subtotal:            breakdown.Subtotal,
		FrequencyDiscount:   breakdown.FrequencyDiscount,
		CodeDiscount:        breakdown.CodeDiscount,
		TotalAmount:         breakdown.Total,
		Currency:            breakdown.Currency,
		PaymentStatus:       models.PaymentStatusPending,
		Status:              models.BookingStatusPending,
		CreatedAt:           time.Now(),
	}
	if paymentRef != "" {
		booking.PaymentReference = paymentRef
		booking.PaymentStatus = models.PaymentStatusCompleted
		booking.Status = models.BookingStatusConfirmed
	}

	if err := s.Repo.Create(ctx, &booking); err != nil {
		logger.Error("failed to persist booking",
			zap.String("reference", booking.Reference), zap.Error(err))
		return &models.SubmitBookingResult{
			Success: false,
			Message: "We could not save your booking. Please try again.",
		}, nil
	}

	if resolution.Valid && s.Discounts != nil {
		s.Discounts.RecordUsage(ctx, draft.DiscountCode)
	}
	s.afterSubmit(ctx, booking)

	logger.Info("booking created",
		zap.String("reference", booking.Reference),
		zap.String("service", booking.ServiceType),
		zap.Float64("total", booking.TotalAmount))

	return &models.SubmitBookingResult{
		Success:   true,
		Reference: booking.Reference,
		Message:   "Booking confirmed",
		Breakdown: &breakdown,
	}, nil
}

// afterSubmit runs the best-effort side effects: confirmation push and
// cleaning-day reminder. Neither failure affects the booking.
func (s *DefaultBookingService) afterSubmit(ctx context.Context, booking models.Booking) {
	logger := utils.GetLogger()
	if s.Notifier != nil {
		if err := s.Notifier.NotifyBookingConfirmed(ctx, booking); err != nil {
			logger.Warn("booking confirmation push failed",
				zap.String("reference", booking.Reference), zap.Error(err))
		}
	}
	if s.Reminders != nil {
		if err := s.Reminders.ScheduleReminder(booking); err != nil {
			logger.Warn("failed to schedule cleaning reminder",
				zap.String("reference", booking.Reference), zap.Error(err))
		}
	}
}
