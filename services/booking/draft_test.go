package booking

import (
	"context"
	"testing"

	"cleanhaven/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string    { return &s }
func intPtr(i int) *int          { return &i }
func slicePtr(s []string) *[]string { return &s }

func TestMemoryDraftStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryDraftStore()

	draft := completeDraft()
	draft.Extras = []string{"inside-oven"}
	require.NoError(t, store.Save(ctx, "d1", draft))

	got, err := store.Get(ctx, "d1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, draft, *got)

	require.NoError(t, store.Clear(ctx, "d1"))
	got, err = store.Get(ctx, "d1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestMemoryDraftStore_AbsentFieldsKeepDefaults(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryDraftStore()
	// A blob written by an older client that only knows some fields.
	store.entries["d1"] = []byte(`{"bedrooms": 3, "city": "Cape Town"}`)

	got, err := store.Get(ctx, "d1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 3, got.Bedrooms)
	assert.Equal(t, "Cape Town", got.City)
	// Fields absent from storage keep their wizard defaults.
	assert.Equal(t, models.ServiceStandard, got.ServiceType)
	assert.Equal(t, models.FrequencyOneTime, got.Frequency)
	assert.Equal(t, 1, got.Bathrooms)
	assert.Equal(t, models.CleanerNoPreference, got.CleanerPreference)
}

func TestMemoryDraftStore_MalformedBlobIsNotAnError(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryDraftStore()
	store.entries["d1"] = []byte(`{not json`)

	got, err := store.Get(ctx, "d1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestMergeDraft_PreservesUntouchedFields(t *testing.T) {
	cfg := models.DefaultPricingConfig()
	base := completeDraft()
	base.SpecialInstructions = "gate code 4321"

	merged := MergeDraft(base, models.DraftPatch{
		Bedrooms:      intPtr(4),
		ScheduledDate: strPtr("2026-10-01"),
	}, cfg)

	assert.Equal(t, 4, merged.Bedrooms)
	assert.Equal(t, "2026-10-01", merged.ScheduledDate)
	// Everything the patch did not carry is untouched.
	assert.Equal(t, base.Email, merged.Email)
	assert.Equal(t, base.Street, merged.Street)
	assert.Equal(t, "gate code 4321", merged.SpecialInstructions)
}

func TestMergeDraft_ServiceChangePrunesExtras(t *testing.T) {
	cfg := models.DefaultPricingConfig()
	base := completeDraft()
	base.Extras = []string{"inside-oven", "interior-windows"}

	merged := MergeDraft(base, models.DraftPatch{
		ServiceType: strPtr(models.ServiceOffice),
	}, cfg)

	// Only office-compatible extras survive the switch.
	assert.Equal(t, []string{"interior-windows"}, merged.Extras)

	// Switching back does not resurrect the pruned extra.
	back := MergeDraft(merged, models.DraftPatch{
		ServiceType: strPtr(models.ServiceStandard),
	}, cfg)
	assert.Equal(t, []string{"interior-windows"}, back.Extras)
}

func TestMergeDraft_PatchedExtrasAreFiltered(t *testing.T) {
	cfg := models.DefaultPricingConfig()
	base := completeDraft()

	merged := MergeDraft(base, models.DraftPatch{
		Extras: slicePtr([]string{"inside-oven", "bogus"}),
	}, cfg)
	assert.Equal(t, []string{"inside-oven"}, merged.Extras)
}

func TestPruneExtras_IsIdempotent(t *testing.T) {
	cfg := models.DefaultPricingConfig()
	draft := completeDraft()
	draft.Extras = []string{"inside-oven", "bogus", "balcony"}

	once := PruneExtras(draft, cfg)
	twice := PruneExtras(once, cfg)
	assert.Equal(t, []string{"inside-oven", "balcony"}, once.Extras)
	assert.Equal(t, once.Extras, twice.Extras)
}

func TestNormalizeDraft(t *testing.T) {
	d := models.BookingDraft{
		ServiceType: "  ",
		Frequency:   "",
		Bedrooms:    -2,
		Bathrooms:   0,
		Email:       " someone@example.com ",
		City:        "\tCape Town ",
	}
	got := NormalizeDraft(d)

	assert.Equal(t, models.ServiceStandard, got.ServiceType)
	assert.Equal(t, models.FrequencyOneTime, got.Frequency)
	assert.Equal(t, 0, got.Bedrooms)
	assert.Equal(t, 1, got.Bathrooms)
	assert.Equal(t, "someone@example.com", got.Email)
	assert.Equal(t, "Cape Town", got.City)
	assert.Equal(t, models.CleanerNoPreference, got.CleanerPreference)
	assert.NotNil(t, got.Extras)
}

func TestUpdateDraft_WholeObjectResave(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(newFakeBookingRepo())

	_, _, err := svc.InitDraft(ctx, "d1")
	require.NoError(t, err)

	// Page one sets rooms, page two sets the address. Neither page may
	// clobber the other's fields.
	_, _, err = svc.UpdateDraft(ctx, "d1", models.DraftPatch{Bedrooms: intPtr(3)})
	require.NoError(t, err)
	draft, breakdown, err := svc.UpdateDraft(ctx, "d1", models.DraftPatch{
		Street: strPtr("5 Long Street"),
		City:   strPtr("Cape Town"),
	})
	require.NoError(t, err)

	assert.Equal(t, 3, draft.Bedrooms)
	assert.Equal(t, "5 Long Street", draft.Street)
	assert.Equal(t, 650.0, breakdown.Subtotal)

	stored, _, err := svc.GetDraft(ctx, "d1")
	require.NoError(t, err)
	assert.Equal(t, draft, stored)
}
