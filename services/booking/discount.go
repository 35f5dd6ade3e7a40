package booking

import (
	"context"
	"strings"
	"time"

	discountRepo "cleanhaven/database/repository/discount"
	"cleanhaven/models"
	"cleanhaven/utils"

	"go.uber.org/zap"
)

// DiscountResolver validates a discount code against an eligible base
// amount. Resolution failures are never fatal to booking completion:
// every failure mode (not found, expired, over limit, lookup error)
// uniformly yields an invalid resolution with a zero amount.
type DiscountResolver interface {
	ValidateCode(ctx context.Context, code string, eligibleAmount float64) models.DiscountResolution
	RecordUsage(ctx context.Context, code string)
}

// DefaultDiscountService implements DiscountResolver.
type DefaultDiscountService struct {
	Repo discountRepo.DiscountRepository
}

// NormalizeCode trims and uppercases a customer-entered code.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func (s *DefaultDiscountService) ValidateCode(ctx context.Context, code string, eligibleAmount float64) models.DiscountResolution {
	code = NormalizeCode(code)
	if code == "" {
		return models.DiscountResolution{Valid: false, Reason: "no code supplied"}
	}

	dc, err := s.Repo.GetByCode(ctx, code)
	if err != nil {
		utils.GetLogger().Debug("discount lookup failed",
			zap.String("code", code), zap.Error(err))
		return models.DiscountResolution{Valid: false, Reason: "code not found"}
	}

	now := time.Now()
	switch {
	case !dc.Active:
		return models.DiscountResolution{Valid: false, Reason: "code inactive"}
	case dc.ValidFrom != nil && now.Before(*dc.ValidFrom):
		return models.DiscountResolution{Valid: false, Reason: "code not yet valid"}
	case dc.ValidTo != nil && now.After(*dc.ValidTo):
		return models.DiscountResolution{Valid: false, Reason: "code expired"}
	case dc.UsageLimit > 0 && dc.UsageCount >= dc.UsageLimit:
		return models.DiscountResolution{Valid: false, Reason: "usage limit reached"}
	case eligibleAmount < dc.MinOrderValue:
		return models.DiscountResolution{Valid: false, Reason: "order below minimum"}
	}

	var amount float64
	switch dc.Type {
	case models.DiscountPercent:
		amount = eligibleAmount * dc.Value / 100
	case models.DiscountFixed:
		amount = dc.Value
	default:
		return models.DiscountResolution{Valid: false, Reason: "unknown discount type"}
	}
	if amount > eligibleAmount {
		amount = eligibleAmount
	}
	return models.DiscountResolution{Valid: true, Amount: round2(amount)}
}

// RecordUsage bumps the usage counter after a booking that consumed the
// code. Best effort: a failed increment is logged, never surfaced.
func (s *DefaultDiscountService) RecordUsage(ctx context.Context, code string) {
	code = NormalizeCode(code)
	if code == "" {
		return
	}
	dc, err := s.Repo.GetByCode(ctx, code)
	if err != nil {
		return
	}
	if err := s.Repo.IncrementUsage(ctx, dc.ID); err != nil {
		utils.GetLogger().Warn("failed to record discount usage",
			zap.String("code", code), zap.Error(err))
	}
}
