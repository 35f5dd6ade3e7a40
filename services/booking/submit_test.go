package booking

import (
	"context"
	"errors"
	"strings"
	"testing"

	"cleanhaven/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitBooking_MissingFields(t *testing.T) {
	ctx := context.Background()
	repo := newFakeBookingRepo()
	svc := newTestService(repo)

	draft := completeDraft()
	draft.Email = ""
	draft.Phone = "  "

	result, err := svc.SubmitBooking(ctx, draft, "")
	require.NoError(t, err)

	assert.False(t, result.Success)
	assert.Empty(t, result.Reference)
	assert.Equal(t, "Email address is required", result.Errors["email"])
	assert.Equal(t, "Phone number is required", result.Errors["phone"])
	assert.NotContains(t, result.Errors, "street")
	assert.Equal(t, 0, repo.count())
}

func TestSubmitBooking_Success(t *testing.T) {
	ctx := context.Background()
	repo := newFakeBookingRepo()
	svc := newTestService(repo)

	result, err := svc.SubmitBooking(ctx, completeDraft(), "")
	require.NoError(t, err)

	require.True(t, result.Success)
	assert.True(t, strings.HasPrefix(result.Reference, "CH-"))
	require.NotNil(t, result.Breakdown)
	assert.Equal(t, 550.0, result.Breakdown.Total)

	stored, err := repo.GetByReference(ctx, result.Reference)
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusPending, stored.Status)
	assert.Equal(t, models.PaymentStatusPending, stored.PaymentStatus)
	assert.Equal(t, 550.0, stored.TotalAmount)
	assert.Equal(t, "thandi@example.com", stored.Email)
}

func TestSubmitBooking_WithPaymentReference(t *testing.T) {
	ctx := context.Background()
	repo := newFakeBookingRepo()
	svc := newTestService(repo)

	result, err := svc.SubmitBooking(ctx, completeDraft(), "ps_ref_123")
	require.NoError(t, err)
	require.True(t, result.Success)

	stored, err := repo.GetByPaymentReference(ctx, "ps_ref_123")
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusConfirmed, stored.Status)
	assert.Equal(t, models.PaymentStatusCompleted, stored.PaymentStatus)
	assert.Equal(t, result.Reference, stored.Reference)
}

func TestSubmitBooking_RecordsDiscountUsage(t *testing.T) {
	ctx := context.Background()
	repo := newFakeBookingRepo()
	svc := newTestService(repo)
	discounts := &fakeDiscounts{code: "WELCOME10", amount: 55}
	svc.Discounts = discounts

	draft := completeDraft()
	draft.DiscountCode = "WELCOME10"

	result, err := svc.SubmitBooking(ctx, draft, "")
	require.NoError(t, err)
	require.True(t, result.Success)
	assert.Equal(t, 55.0, result.Breakdown.CodeDiscount)
	assert.Equal(t, 495.0, result.Breakdown.Total)
	assert.Equal(t, []string{"WELCOME10"}, discounts.recorded)
}

func TestSubmitBooking_InvalidCodeDoesNotBlock(t *testing.T) {
	ctx := context.Background()
	repo := newFakeBookingRepo()
	svc := newTestService(repo)
	discounts := &fakeDiscounts{code: "WELCOME10", amount: 55}
	svc.Discounts = discounts

	draft := completeDraft()
	draft.DiscountCode = "NOPE"

	result, err := svc.SubmitBooking(ctx, draft, "")
	require.NoError(t, err)
	require.True(t, result.Success)
	assert.Equal(t, 0.0, result.Breakdown.CodeDiscount)
	assert.Empty(t, discounts.recorded)
}

func TestSubmitBooking_PersistenceFailure(t *testing.T) {
	ctx := context.Background()
	repo := newFakeBookingRepo()
	repo.createErr = errors.New("write concern timeout")
	svc := newTestService(repo)

	result, err := svc.SubmitBooking(ctx, completeDraft(), "")
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Empty(t, result.Reference)
	assert.NotEmpty(t, result.Message)
}

func TestSubmitBooking_StripsNonWhitelistedExtras(t *testing.T) {
	ctx := context.Background()
	repo := newFakeBookingRepo()
	svc := newTestService(repo)

	draft := completeDraft()
	draft.Extras = []string{"inside-oven", "stale-extra"}

	result, err := svc.SubmitBooking(ctx, draft, "")
	require.NoError(t, err)
	require.True(t, result.Success)

	stored, err := repo.GetByReference(ctx, result.Reference)
	require.NoError(t, err)
	assert.Equal(t, []string{"inside-oven"}, stored.Extras)
	assert.Equal(t, 630.0, stored.Subtotal)
}

func TestGenerateReference_Format(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		ref := generateReference()
		assert.True(t, strings.HasPrefix(ref, "CH-"))
		assert.Equal(t, strings.ToUpper(ref), ref)
		assert.False(t, seen[ref], "duplicate reference %s", ref)
		seen[ref] = true
	}
}
