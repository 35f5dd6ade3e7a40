package booking

import (
	"context"
	"encoding/json"
	"sync"

	bookingRepo "cleanhaven/database/repository/booking"
	pricingRepo "cleanhaven/database/repository/pricing"
	"cleanhaven/models"
)

// fakeBookingRepo is an in-memory BookingRepository for service tests.
type fakeBookingRepo struct {
	mu       sync.Mutex
	bookings []models.Booking

	createErr error
	getErr    error
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{}
}

func (r *fakeBookingRepo) Create(ctx context.Context, booking *models.Booking) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.mu.Lock()
	r.bookings = append(r.bookings, *booking)
	r.mu.Unlock()
	return nil
}

func (r *fakeBookingRepo) GetByReference(ctx context.Context, reference string) (*models.Booking, error) {
	if r.getErr != nil {
		return nil, r.getErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.bookings {
		if r.bookings[i].Reference == reference {
			b := r.bookings[i]
			return &b, nil
		}
	}
	return nil, bookingRepo.ErrNotFound
}

func (r *fakeBookingRepo) GetByPaymentReference(ctx context.Context, paymentRef string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.bookings {
		if r.bookings[i].PaymentReference == paymentRef {
			b := r.bookings[i]
			return &b, nil
		}
	}
	return nil, bookingRepo.ErrNotFound
}

func (r *fakeBookingRepo) ListByEmail(ctx context.Context, email string) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Booking
	for _, b := range r.bookings {
		if b.Email == email {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) ListByCustomerID(ctx context.Context, customerID string) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Booking
	for _, b := range r.bookings {
		if b.CustomerID == customerID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) UpdateStatus(ctx context.Context, reference, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.bookings {
		if r.bookings[i].Reference == reference {
			r.bookings[i].Status = status
		}
	}
	return nil
}

func (r *fakeBookingRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.bookings)
}

// fakeGateway returns canned transactions keyed by reference.
type fakeGateway struct {
	transactions map[string]*models.GatewayTransaction
	err          error
	calls        int
}

func (g *fakeGateway) VerifyTransaction(ctx context.Context, reference string) (*models.GatewayTransaction, error) {
	g.calls++
	if g.err != nil {
		return nil, g.err
	}
	tx, ok := g.transactions[reference]
	if !ok {
		return nil, bookingRepo.ErrNotFound
	}
	return tx, nil
}

func gatewayWithMetadata(reference string, metadata interface{}) *fakeGateway {
	raw, _ := json.Marshal(metadata)
	return &fakeGateway{
		transactions: map[string]*models.GatewayTransaction{
			reference: {
				Reference: reference,
				Status:    "success",
				Amount:    550,
				Currency:  "ZAR",
				Metadata:  raw,
			},
		},
	}
}

// fakeDiscounts resolves a single known code and counts lookups.
type fakeDiscounts struct {
	code          string
	amount        float64
	recorded      []string
	validateCalls int
}

func (d *fakeDiscounts) ValidateCode(ctx context.Context, code string, eligibleAmount float64) models.DiscountResolution {
	d.validateCalls++
	if NormalizeCode(code) == d.code {
		amount := d.amount
		if amount > eligibleAmount {
			amount = eligibleAmount
		}
		return models.DiscountResolution{Valid: true, Amount: amount}
	}
	return models.DiscountResolution{Valid: false, Reason: "code not found"}
}

func (d *fakeDiscounts) RecordUsage(ctx context.Context, code string) {
	d.recorded = append(d.recorded, NormalizeCode(code))
}

// completeDraft returns a draft with every mandatory field filled.
func completeDraft() models.BookingDraft {
	d := models.NewBookingDraft()
	d.ServiceType = models.ServiceStandard
	d.Frequency = models.FrequencyOneTime
	d.Bedrooms = 2
	d.Bathrooms = 1
	d.ScheduledDate = "2026-09-20"
	d.ScheduledTime = "09:00"
	d.Street = "12 Kloof Street"
	d.Suburb = "Gardens"
	d.City = "Cape Town"
	d.FirstName = "Thandi"
	d.LastName = "Nkosi"
	d.Email = "thandi@example.com"
	d.Phone = "+27821234567"
	return d
}

func newTestService(repo *fakeBookingRepo) *DefaultBookingService {
	return &DefaultBookingService{
		Repo:    repo,
		Drafts:  NewMemoryDraftStore(),
		Pricing: &pricingRepo.StaticPricingRepo{Config: models.DefaultPricingConfig()},
	}
}
