package booking

import (
	"context"
	"errors"
	"testing"

	"cleanhaven/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReconcilePayment_IsIdempotent(t *testing.T) {
	ctx := context.Background()
	repo := newFakeBookingRepo()
	svc := newTestService(repo)
	drafts := svc.Drafts.(*MemoryDraftStore)
	require.NoError(t, drafts.Save(ctx, "d1", completeDraft()))

	first, err := svc.ReconcilePayment(ctx, "ps_ref_1", "d1")
	require.NoError(t, err)
	assert.Equal(t, models.ReconcileCreated, first.Outcome)
	require.NotEmpty(t, first.Reference)
	assert.Equal(t, 1, repo.count())

	// A confirmation page reload must not create a second booking.
	second, err := svc.ReconcilePayment(ctx, "ps_ref_1", "d1")
	require.NoError(t, err)
	assert.Equal(t, models.ReconcileExisting, second.Outcome)
	assert.Equal(t, first.Reference, second.Reference)
	assert.Equal(t, 1, repo.count())
}

func TestReconcilePayment_CompleteDraftSkipsGateway(t *testing.T) {
	ctx := context.Background()
	repo := newFakeBookingRepo()
	svc := newTestService(repo)
	gateway := gatewayWithMetadata("ps_ref_1", map[string]interface{}{"city": "Johannesburg"})
	svc.Gateway = gateway
	drafts := svc.Drafts.(*MemoryDraftStore)
	require.NoError(t, drafts.Save(ctx, "d1", completeDraft()))

	result, err := svc.ReconcilePayment(ctx, "ps_ref_1", "d1")
	require.NoError(t, err)
	assert.Equal(t, models.ReconcileCreated, result.Outcome)
	// The draft already had every mandatory field, so the gateway was
	// never consulted.
	assert.Equal(t, 0, gateway.calls)

	// The confirmed booking keeps the draft's city, and the draft is gone.
	assert.Equal(t, "Cape Town", result.Booking.City)
	stored, err := drafts.Get(ctx, "d1")
	require.NoError(t, err)
	assert.Nil(t, stored)
}

func TestReconcilePayment_MetadataFillsLostDraft(t *testing.T) {
	ctx := context.Background()
	repo := newFakeBookingRepo()
	svc := newTestService(repo)
	svc.Gateway = gatewayWithMetadata("ps_ref_1", map[string]interface{}{
		"booking_data": map[string]interface{}{
			"serviceType":   "deep",
			"bedrooms":      2,
			"scheduledDate": "2026-09-20",
			"scheduledTime": "09:00",
			"street":        "12 Kloof Street",
			"suburb":        "Gardens",
			"city":          "Cape Town",
			"firstName":     "Thandi",
			"lastName":      "Nkosi",
			"email":         "thandi@example.com",
			"phone":         "+27821234567",
		},
	})

	// No draft exists at all: the whole booking is rebuilt from metadata.
	result, err := svc.ReconcilePayment(ctx, "ps_ref_1", "")
	require.NoError(t, err)
	assert.Equal(t, models.ReconcileCreated, result.Outcome)
	require.NotNil(t, result.Booking)
	assert.Equal(t, "deep", result.Booking.ServiceType)
	assert.Equal(t, 2, result.Booking.Bedrooms)
	assert.Equal(t, models.PaymentStatusCompleted, result.Booking.PaymentStatus)
}

func TestReconcilePayment_LocalDraftWinsOverMetadata(t *testing.T) {
	ctx := context.Background()
	repo := newFakeBookingRepo()
	svc := newTestService(repo)
	svc.Gateway = gatewayWithMetadata("ps_ref_1", map[string]interface{}{
		"suburb": "Sea Point",
		"email":  "gateway@example.com",
		"phone":  "+27829999999",
	})

	draft := completeDraft()
	draft.Phone = "" // the one gap metadata may fill
	drafts := svc.Drafts.(*MemoryDraftStore)
	require.NoError(t, drafts.Save(ctx, "d1", draft))

	result, err := svc.ReconcilePayment(ctx, "ps_ref_1", "d1")
	require.NoError(t, err)
	require.Equal(t, models.ReconcileCreated, result.Outcome)
	// Draft values survive; only the gap was filled.
	assert.Equal(t, "Gardens", result.Booking.Suburb)
	assert.Equal(t, "thandi@example.com", result.Booking.Email)
	assert.Equal(t, "+27829999999", result.Booking.Phone)
}

func TestReconcilePayment_NeedsAddress(t *testing.T) {
	ctx := context.Background()
	repo := newFakeBookingRepo()
	svc := newTestService(repo)
	svc.Gateway = &fakeGateway{err: errors.New("gateway down")}

	draft := completeDraft()
	draft.Street = ""
	draft.Suburb = ""
	drafts := svc.Drafts.(*MemoryDraftStore)
	require.NoError(t, drafts.Save(ctx, "d1", draft))

	result, err := svc.ReconcilePayment(ctx, "ps_ref_1", "d1")
	require.NoError(t, err)
	assert.Equal(t, models.ReconcileNeedsAddress, result.Outcome)
	assert.ElementsMatch(t, []string{"street", "suburb"}, result.MissingFields)
	require.NotNil(t, result.Summary)
	assert.Equal(t, "thandi@example.com", result.Summary.Email)
	// Nothing was persisted and the draft survives for the retry.
	assert.Equal(t, 0, repo.count())
	stored, err := drafts.Get(ctx, "d1")
	require.NoError(t, err)
	require.NotNil(t, stored)
}

func TestReconcilePayment_InvalidWhenContactMissing(t *testing.T) {
	ctx := context.Background()
	repo := newFakeBookingRepo()
	svc := newTestService(repo)

	draft := completeDraft()
	draft.Email = ""
	draft.Street = ""
	drafts := svc.Drafts.(*MemoryDraftStore)
	require.NoError(t, drafts.Save(ctx, "d1", draft))

	result, err := svc.ReconcilePayment(ctx, "ps_ref_1", "d1")
	require.NoError(t, err)
	assert.Equal(t, models.ReconcileInvalid, result.Outcome)
	assert.Contains(t, result.MissingFields, "email")
	assert.Equal(t, "Email address is required", result.Errors["email"])
	assert.Equal(t, 0, repo.count())
}

func TestReconcilePayment_RefetchFailureFallsBackToSummary(t *testing.T) {
	ctx := context.Background()
	repo := newFakeBookingRepo()
	repo.getErr = errors.New("replica lag")
	svc := newTestService(repo)
	drafts := svc.Drafts.(*MemoryDraftStore)
	require.NoError(t, drafts.Save(ctx, "d1", completeDraft()))

	result, err := svc.ReconcilePayment(ctx, "ps_ref_1", "d1")
	require.NoError(t, err)
	assert.Equal(t, models.ReconcileCreated, result.Outcome)
	assert.Nil(t, result.Booking)
	require.NotNil(t, result.Summary)
	assert.Equal(t, "Cape Town", result.Summary.City)
	require.NotNil(t, result.Breakdown)
	assert.NotEmpty(t, result.Reference)
	// The booking itself was persisted despite the failed re-read.
	assert.Equal(t, 1, repo.count())
}
