package booking

import (
	"context"
	"testing"
	"time"

	discountRepo "cleanhaven/database/repository/discount"
	"cleanhaven/models"

	"github.com/stretchr/testify/assert"
)

// fakeDiscountRepo serves codes from a map.
type fakeDiscountRepo struct {
	codes      map[string]*models.DiscountCode
	increments []string
}

func (r *fakeDiscountRepo) GetByCode(ctx context.Context, code string) (*models.DiscountCode, error) {
	dc, ok := r.codes[code]
	if !ok {
		return nil, discountRepo.ErrNotFound
	}
	return dc, nil
}

func (r *fakeDiscountRepo) IncrementUsage(ctx context.Context, id string) error {
	r.increments = append(r.increments, id)
	return nil
}

func timePtr(t time.Time) *time.Time { return &t }

func TestValidateCode(t *testing.T) {
	ctx := context.Background()
	now := time.Now()

	repo := &fakeDiscountRepo{codes: map[string]*models.DiscountCode{
		"WELCOME10": {ID: "1", Code: "WELCOME10", Type: models.DiscountPercent, Value: 10, Active: true},
		"FLAT50":    {ID: "2", Code: "FLAT50", Type: models.DiscountFixed, Value: 50, Active: true},
		"BIGORDER":  {ID: "3", Code: "BIGORDER", Type: models.DiscountPercent, Value: 20, MinOrderValue: 800, Active: true},
		"EXPIRED":   {ID: "4", Code: "EXPIRED", Type: models.DiscountFixed, Value: 50, Active: true, ValidTo: timePtr(now.Add(-time.Hour))},
		"FUTURE":    {ID: "5", Code: "FUTURE", Type: models.DiscountFixed, Value: 50, Active: true, ValidFrom: timePtr(now.Add(time.Hour))},
		"USEDUP":    {ID: "6", Code: "USEDUP", Type: models.DiscountFixed, Value: 50, Active: true, UsageLimit: 5, UsageCount: 5},
		"DISABLED":  {ID: "7", Code: "DISABLED", Type: models.DiscountFixed, Value: 50, Active: false},
		"HUGE":      {ID: "8", Code: "HUGE", Type: models.DiscountFixed, Value: 9000, Active: true},
	}}
	svc := &DefaultDiscountService{Repo: repo}

	tests := []struct {
		name       string
		code       string
		eligible   float64
		wantValid  bool
		wantAmount float64
	}{
		{"percent code", "WELCOME10", 500, true, 50},
		{"fixed code", "FLAT50", 500, true, 50},
		{"case and whitespace normalized", "  welcome10 ", 500, true, 50},
		{"unknown code", "NOPE", 500, false, 0},
		{"empty code", "", 500, false, 0},
		{"below minimum order", "BIGORDER", 500, false, 0},
		{"at minimum order", "BIGORDER", 800, true, 160},
		{"expired", "EXPIRED", 500, false, 0},
		{"not yet valid", "FUTURE", 500, false, 0},
		{"usage limit reached", "USEDUP", 500, false, 0},
		{"inactive", "DISABLED", 500, false, 0},
		{"fixed capped at eligible amount", "HUGE", 500, true, 500},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := svc.ValidateCode(ctx, tt.code, tt.eligible)
			assert.Equal(t, tt.wantValid, got.Valid)
			assert.Equal(t, tt.wantAmount, got.Amount)
			if !tt.wantValid {
				assert.NotEmpty(t, got.Reason)
			}
		})
	}
}

func TestRecordUsage(t *testing.T) {
	ctx := context.Background()
	repo := &fakeDiscountRepo{codes: map[string]*models.DiscountCode{
		"WELCOME10": {ID: "1", Code: "WELCOME10", Type: models.DiscountPercent, Value: 10, Active: true},
	}}
	svc := &DefaultDiscountService{Repo: repo}

	svc.RecordUsage(ctx, "welcome10")
	assert.Equal(t, []string{"1"}, repo.increments)

	// Unknown and empty codes are silently ignored.
	svc.RecordUsage(ctx, "NOPE")
	svc.RecordUsage(ctx, "")
	assert.Len(t, repo.increments, 1)
}
