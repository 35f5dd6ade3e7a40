package booking

import (
	"context"

	"cleanhaven/database/repository"
	"cleanhaven/models"
	"cleanhaven/utils"

	"go.uber.org/zap"
)

// PaymentGateway is the slice of the payment provider this system
// consumes: verify a transaction by reference and return its metadata.
type PaymentGateway interface {
	VerifyTransaction(ctx context.Context, reference string) (*models.GatewayTransaction, error)
}

// BookingNotifier delivers a confirmation push after a booking is
// created. Failures are logged, never surfaced.
type BookingNotifier interface {
	NotifyBookingConfirmed(ctx context.Context, booking models.Booking) error
}

// ReminderScheduler enqueues the cleaning-day reminder for a booking.
type ReminderScheduler interface {
	ScheduleReminder(booking models.Booking) error
}

// BookingService is the unified booking engine surface consumed by the
// HTTP handlers.
type BookingService interface {
	InitDraft(ctx context.Context, draftID string) (models.BookingDraft, models.PriceBreakdown, error)
	GetDraft(ctx context.Context, draftID string) (models.BookingDraft, models.PriceBreakdown, error)
	UpdateDraft(ctx context.Context, draftID string, patch models.DraftPatch) (models.BookingDraft, models.PriceBreakdown, error)
	ClearDraft(ctx context.Context, draftID string) error
	Quote(ctx context.Context, draft models.BookingDraft) (models.PriceBreakdown, models.DiscountResolution, error)
	ValidateDiscount(ctx context.Context, code string, eligibleAmount float64) models.DiscountResolution
	SubmitBooking(ctx context.Context, draft models.BookingDraft, paymentRef string) (*models.SubmitBookingResult, error)
	ReconcilePayment(ctx context.Context, paymentRef, draftID string) (*models.ReconcileResult, error)
	GetBookingByReference(ctx context.Context, reference string) (*models.Booking, error)
	GetPricingConfig(ctx context.Context) (models.PricingConfig, error)
}

// DefaultBookingService implements BookingService. Notifier and Reminders
// are optional; a nil value disables that side effect.
type DefaultBookingService struct {
	Repo      repository.BookingRepository
	Drafts    DraftStore
	Discounts DiscountResolver
	Pricing   repository.PricingRepository
	Gateway   PaymentGateway
	Notifier  BookingNotifier
	Reminders ReminderScheduler
}

// activeConfig fetches the rate table, degrading to the built-in default
// when the provider fails. Pricing must never block the booking flow.
func (s *DefaultBookingService) activeConfig(ctx context.Context) models.PricingConfig {
	if s.Pricing == nil {
		return models.DefaultPricingConfig()
	}
	cfg, err := s.Pricing.GetActiveConfig(ctx)
	if err != nil {
		utils.GetLogger().Warn("pricing config unavailable, using defaults", zap.Error(err))
		return models.DefaultPricingConfig()
	}
	return cfg
}

// GetPricingConfig exposes the rate table to the wizard.
func (s *DefaultBookingService) GetPricingConfig(ctx context.Context) (models.PricingConfig, error) {
	return s.activeConfig(ctx), nil
}

// GetBookingByReference looks up a persisted booking.
func (s *DefaultBookingService) GetBookingByReference(ctx context.Context, reference string) (*models.Booking, error) {
	return s.Repo.GetByReference(ctx, reference)
}

// InitDraft returns the draft for draftID, creating one from defaults if
// none is stored. Any previously saved draft is merged over the defaults,
// so a returning customer resumes where they left off.
func (s *DefaultBookingService) InitDraft(ctx context.Context, draftID string) (models.BookingDraft, models.PriceBreakdown, error) {
	cfg := s.activeConfig(ctx)

	draft := models.NewBookingDraft()
	stored, err := s.Drafts.Get(ctx, draftID)
	if err != nil {
		return models.BookingDraft{}, models.PriceBreakdown{}, err
	}
	if stored != nil {
		draft = *stored
	}
	draft = PruneExtras(NormalizeDraft(draft), cfg)

	if err := s.Drafts.Save(ctx, draftID, draft); err != nil {
		return models.BookingDraft{}, models.PriceBreakdown{}, err
	}
	breakdown, _ := s.breakdownFor(ctx, draft, cfg)
	return draft, breakdown, nil
}

// GetDraft loads the stored draft (defaults when absent) and its current
// price breakdown.
func (s *DefaultBookingService) GetDraft(ctx context.Context, draftID string) (models.BookingDraft, models.PriceBreakdown, error) {
	cfg := s.activeConfig(ctx)

	draft := models.NewBookingDraft()
	stored, err := s.Drafts.Get(ctx, draftID)
	if err != nil {
		return models.BookingDraft{}, models.PriceBreakdown{}, err
	}
	if stored != nil {
		draft = *stored
	}
	breakdown, _ := s.breakdownFor(ctx, draft, cfg)
	return draft, breakdown, nil
}

// UpdateDraft merges a partial update into the stored draft, re-saves the
// whole draft, and returns the recomputed breakdown. The whole-object
// re-save preserves fields the current wizard page did not touch.
func (s *DefaultBookingService) UpdateDraft(ctx context.Context, draftID string, patch models.DraftPatch) (models.BookingDraft, models.PriceBreakdown, error) {
	cfg := s.activeConfig(ctx)

	draft := models.NewBookingDraft()
	stored, err := s.Drafts.Get(ctx, draftID)
	if err != nil {
		return models.BookingDraft{}, models.PriceBreakdown{}, err
	}
	if stored != nil {
		draft = *stored
	}

	draft = MergeDraft(draft, patch, cfg)
	if err := s.Drafts.Save(ctx, draftID, draft); err != nil {
		return models.BookingDraft{}, models.PriceBreakdown{}, err
	}

	breakdown, _ := s.breakdownFor(ctx, draft, cfg)
	return draft, breakdown, nil
}

// ClearDraft removes the stored draft.
func (s *DefaultBookingService) ClearDraft(ctx context.Context, draftID string) error {
	return s.Drafts.Clear(ctx, draftID)
}

// Quote prices a draft payload without persisting anything.
func (s *DefaultBookingService) Quote(ctx context.Context, draft models.BookingDraft) (models.PriceBreakdown, models.DiscountResolution, error) {
	cfg := s.activeConfig(ctx)
	draft = PruneExtras(NormalizeDraft(draft), cfg)
	breakdown, resolution := s.breakdownFor(ctx, draft, cfg)
	return breakdown, resolution, nil
}

// ValidateDiscount resolves a discount code against an eligible amount.
func (s *DefaultBookingService) ValidateDiscount(ctx context.Context, code string, eligibleAmount float64) models.DiscountResolution {
	if s.Discounts == nil {
		return models.DiscountResolution{Valid: false, Reason: "discounts unavailable"}
	}
	return s.Discounts.ValidateCode(ctx, code, eligibleAmount)
}

// breakdownFor computes the draft's breakdown, resolving the discount
// code (when present) exactly once per recomputation. The eligible base
// for a code is the subtotal after the frequency discount.
func (s *DefaultBookingService) breakdownFor(ctx context.Context, draft models.BookingDraft, cfg models.PricingConfig) (models.PriceBreakdown, models.DiscountResolution) {
	var resolution models.DiscountResolution
	codeAmount := 0.0
	if draft.DiscountCode != "" && s.Discounts != nil {
		pre := CalculatePrice(draft, cfg, 0)
		resolution = s.Discounts.ValidateCode(ctx, draft.DiscountCode, pre.Subtotal-pre.FrequencyDiscount)
		if resolution.Valid {
			codeAmount = resolution.Amount
		}
	}
	return CalculatePrice(draft, cfg, codeAmount), resolution
}
