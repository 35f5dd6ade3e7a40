package booking

import (
	"math"

	"cleanhaven/models"
)

// round2 rounds to cents, matching how totals are displayed.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// effectiveService maps the draft's service type onto a priced tier.
// Unknown or missing types fall back to the standard tier so stale client
// state can never break a quote.
func effectiveService(serviceType string, cfg models.PricingConfig) string {
	if serviceType == models.ServiceOffice && len(cfg.OfficeTiers) > 0 {
		return models.ServiceOffice
	}
	if _, ok := cfg.ServiceRates[serviceType]; ok {
		return serviceType
	}
	return models.ServiceStandard
}

// baseAmount computes the room-adjusted base price. Office bookings price
// by size tier; room counts apply to residential services only.
func baseAmount(draft models.BookingDraft, cfg models.PricingConfig) float64 {
	svc := effectiveService(draft.ServiceType, cfg)

	if svc == models.ServiceOffice {
		if price, ok := cfg.OfficeTiers[draft.OfficeSize]; ok {
			return price
		}
		return cfg.OfficeTiers[models.OfficeSmall]
	}

	rate := cfg.ServiceRates[svc]
	bedrooms := draft.Bedrooms
	if bedrooms < 0 {
		bedrooms = 0
	}
	bathrooms := draft.Bathrooms
	if bathrooms < 1 {
		bathrooms = 1
	}
	// The first bathroom is included in the base rate.
	return rate.Base + rate.PerBedroom*float64(bedrooms) + rate.PerBathroom*float64(bathrooms-1)
}

// CalculatePrice computes a price breakdown from the draft selections and
// the rate table. codeDiscount is a pre-validated absolute amount (0 when
// no code applies). The function is pure: identical inputs always yield
// identical output, so it is safe to recompute on every draft mutation.
//
// Unrecognized extras and extras not whitelisted for the effective service
// contribute nothing rather than erroring, to tolerate stale client state.
func CalculatePrice(draft models.BookingDraft, cfg models.PricingConfig, codeDiscount float64) models.PriceBreakdown {
	svc := effectiveService(draft.ServiceType, cfg)

	subtotal := baseAmount(draft, cfg)
	for _, id := range draft.Extras {
		if !cfg.ExtraAllowed(id, svc) {
			continue
		}
		extra, _ := cfg.ExtraByID(id)
		subtotal += extra.Price
	}

	freqDiscount := subtotal * cfg.FrequencyDiscounts[draft.Frequency]

	if codeDiscount < 0 {
		codeDiscount = 0
	}
	total := subtotal - freqDiscount - codeDiscount
	if total < 0 {
		total = 0
	}

	return models.PriceBreakdown{
		Subtotal:          round2(subtotal),
		FrequencyDiscount: round2(freqDiscount),
		CodeDiscount:      round2(codeDiscount),
		Total:             round2(total),
		Currency:          cfg.Currency,
	}
}
