package models

// SubmitBookingResult is returned by booking submission. Validation
// failures are data, not errors: Errors maps field name to message so the
// caller can render them inline.
type SubmitBookingResult struct {
	Success   bool              `json:"success"`
	Reference string            `json:"reference,omitempty"`
	Message   string            `json:"message"`
	Errors    map[string]string `json:"errors,omitempty"`
	Breakdown *PriceBreakdown   `json:"breakdown,omitempty"`
}

// Reconciliation outcomes.
const (
	ReconcileExisting     = "existing"      // booking already existed for the payment reference
	ReconcileCreated      = "created"       // booking reconstructed and submitted
	ReconcileNeedsAddress = "needs_address" // recoverable: send the customer back to the schedule step
	ReconcileInvalid      = "invalid"       // non-address mandatory fields missing, nothing persisted
)

// ReconcileResult is returned by the payment reconciliation flow. Exactly
// one of Booking or Summary is set on success; Summary carries the
// synthesized confirmation when the read-after-write re-fetch loses the
// race.
type ReconcileResult struct {
	Outcome       string            `json:"outcome"`
	Booking       *Booking          `json:"booking,omitempty"`
	Summary       *BookingDraft     `json:"summary,omitempty"`
	Breakdown     *PriceBreakdown   `json:"breakdown,omitempty"`
	Reference     string            `json:"reference,omitempty"`
	MissingFields []string          `json:"missingFields,omitempty"`
	Errors        map[string]string `json:"errors,omitempty"`
}
