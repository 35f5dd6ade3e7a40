package booking

import (
	"context"
	"errors"
	"time"

	bookingRepo "cleanhaven/database/repository/booking"
	"cleanhaven/models"
	"cleanhaven/utils"

	"go.uber.org/zap"
)

// gatewayTimeout bounds the metadata fetch so a slow gateway cannot hold
// the confirmation page; on timeout the flow proceeds with partial data.
const gatewayTimeout = 8 * time.Second

// ReconcilePayment assembles a complete booking when the customer returns
// from the payment gateway with a reference, drawing on three sources in
// priority order: the booking store (normal path), the locally persisted
// draft, and the gateway's transaction metadata. Re-running the flow for
// a reference that already has a booking is a no-op read, so a reload of
// the confirmation page can never create a duplicate.
func (s *DefaultBookingService) ReconcilePayment(ctx context.Context, paymentRef, draftID string) (*models.ReconcileResult, error) {
	logger := utils.GetLogger()

	// Source 1: the booking already exists under this payment reference.
	// This lookup must run first on every invocation for idempotency.
	existing, err := s.Repo.GetByPaymentReference(ctx, paymentRef)
	if err == nil {
		return &models.ReconcileResult{
			Outcome:   models.ReconcileExisting,
			Booking:   existing,
			Reference: existing.Reference,
		}, nil
	}
	if !errors.Is(err, bookingRepo.ErrNotFound) {
		// Transient lookup failure degrades to "no data from this
		// source"; reconstruction may still recover the booking.
		logger.Warn("booking lookup failed during reconciliation",
			zap.String("paymentRef", paymentRef), zap.Error(err))
	}

	cfg := s.activeConfig(ctx)

	// Source 2: the locally persisted draft.
	draft := models.NewBookingDraft()
	haveDraft := false
	if draftID != "" {
		stored, err := s.Drafts.Get(ctx, draftID)
		if err != nil {
			logger.Warn("draft read failed during reconciliation",
				zap.String("draftID", draftID), zap.Error(err))
		} else if stored != nil {
			draft = *stored
			haveDraft = true
		}
	}

	// Source 3: gateway metadata, only consulted while mandatory fields
	// remain unfilled. Draft values always win; metadata fills gaps.
	if len(missingMandatory(NormalizeDraft(draft))) > 0 && s.Gateway != nil {
		gctx, cancel := context.WithTimeout(ctx, gatewayTimeout)
		tx, err := s.Gateway.VerifyTransaction(gctx, paymentRef)
		cancel()
		if err != nil {
			logger.Warn("gateway metadata fetch failed, proceeding with partial data",
				zap.String("paymentRef", paymentRef), zap.Error(err))
		} else if patch, ok := ExtractBookingFields(tx.Metadata); ok {
			if haveDraft {
				draft = FillMissing(draft, patch)
			} else {
				draft = MergeDraft(draft, patch, cfg)
			}
		}
	}

	draft = PruneExtras(NormalizeDraft(draft), cfg)

	if missing := missingMandatory(draft); len(missing) > 0 {
		if onlyAddressFields(missing) {
			// Recoverable: the customer completes the address in the
			// schedule step. Keep the draft so nothing is lost.
			if haveDraft {
				if err := s.Drafts.Save(ctx, draftID, draft); err != nil {
					logger.Warn("failed to re-save draft", zap.Error(err))
				}
			}
			return &models.ReconcileResult{
				Outcome:       models.ReconcileNeedsAddress,
				MissingFields: missing,
				Summary:       &draft,
			}, nil
		}
		return &models.ReconcileResult{
			Outcome:       models.ReconcileInvalid,
			MissingFields: missing,
			Errors:        fieldErrors(missing),
		}, nil
	}

	submitted, err := s.SubmitBooking(ctx, draft, paymentRef)
	if err != nil {
		return nil, err
	}
	if !submitted.Success {
		return &models.ReconcileResult{
			Outcome: models.ReconcileInvalid,
			Errors:  submitted.Errors,
		}, nil
	}

	if draftID != "" {
		if err := s.Drafts.Clear(ctx, draftID); err != nil {
			logger.Warn("failed to clear draft after submission",
				zap.String("draftID", draftID), zap.Error(err))
		}
	}

	// Re-fetch to drive the confirmation display. Losing this read to a
	// replication race must not hide the confirmation: fall back to a
	// summary synthesized from the reconstructed draft.
	created, err := s.Repo.GetByReference(ctx, submitted.Reference)
	if err != nil {
		logger.Warn("re-fetch after submission failed, serving synthesized summary",
			zap.String("reference", submitted.Reference), zap.Error(err))
		return &models.ReconcileResult{
			Outcome:   models.ReconcileCreated,
			Summary:   &draft,
			Breakdown: submitted.Breakdown,
			Reference: submitted.Reference,
		}, nil
	}

	return &models.ReconcileResult{
		Outcome:   models.ReconcileCreated,
		Booking:   created,
		Breakdown: submitted.Breakdown,
		Reference: submitted.Reference,
	}, nil
}
