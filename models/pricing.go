package models

// ServiceRate holds the residential pricing inputs for one service type.
type ServiceRate struct {
	Base        float64 `bson:"base" json:"base"`               // price for a 0-bedroom, 1-bathroom clean
	PerBedroom  float64 `bson:"perBedroom" json:"perBedroom"`   // increment per bedroom
	PerBathroom float64 `bson:"perBathroom" json:"perBathroom"` // increment per bathroom beyond the first
}

// ExtraDefinition describes an optional add-on and which services it may
// be attached to.
type ExtraDefinition struct {
	ID       string   `bson:"id" json:"id"`
	Name     string   `bson:"name" json:"name"`
	Price    float64  `bson:"price" json:"price"`
	Services []string `bson:"services" json:"services"`
}

// PricingConfig is the rate table consumed by the pricing engine. It is
// slowly-changing reference data: fetched once per page load and reused
// for every recomputation on that page.
type PricingConfig struct {
	Currency           string                 `bson:"currency" json:"currency"`
	ServiceRates       map[string]ServiceRate `bson:"serviceRates" json:"serviceRates"`
	OfficeTiers        map[string]float64     `bson:"officeTiers" json:"officeTiers"`
	Extras             []ExtraDefinition      `bson:"extras" json:"extras"`
	FrequencyDiscounts map[string]float64     `bson:"frequencyDiscounts" json:"frequencyDiscounts"`
}

// ExtraByID returns the extra definition for id, if present.
func (c PricingConfig) ExtraByID(id string) (ExtraDefinition, bool) {
	for _, e := range c.Extras {
		if e.ID == id {
			return e, true
		}
	}
	return ExtraDefinition{}, false
}

// ExtraAllowed reports whether the extra may be attached to the given
// service type.
func (c PricingConfig) ExtraAllowed(id, serviceType string) bool {
	e, ok := c.ExtraByID(id)
	if !ok {
		return false
	}
	for _, s := range e.Services {
		if s == serviceType {
			return true
		}
	}
	return false
}

// PriceBreakdown is the derived output of the pricing engine. It is never
// stored; the total is recomputed from the draft on every mutation.
type PriceBreakdown struct {
	Subtotal          float64 `json:"subtotal"`
	FrequencyDiscount float64 `json:"frequencyDiscount"`
	CodeDiscount      float64 `json:"codeDiscount"`
	Total             float64 `json:"total"`
	Currency          string  `json:"currency"`
}

var residentialServices = []string{ServiceStandard, ServiceDeep, ServiceMoveInOut, ServiceAirbnb}

// DefaultPricingConfig returns the built-in rate table, used when no
// override document exists in the database.
func DefaultPricingConfig() PricingConfig {
	return PricingConfig{
		Currency: "ZAR",
		ServiceRates: map[string]ServiceRate{
			ServiceStandard:  {Base: 350, PerBedroom: 100, PerBathroom: 75},
			ServiceDeep:      {Base: 550, PerBedroom: 150, PerBathroom: 100},
			ServiceMoveInOut: {Base: 650, PerBedroom: 150, PerBathroom: 120},
			ServiceAirbnb:    {Base: 300, PerBedroom: 80, PerBathroom: 60},
		},
		OfficeTiers: map[string]float64{
			OfficeSmall:  450,
			OfficeMedium: 750,
			OfficeLarge:  1200,
		},
		Extras: []ExtraDefinition{
			{ID: "inside-oven", Name: "Inside oven", Price: 80, Services: residentialServices},
			{ID: "inside-fridge", Name: "Inside fridge", Price: 80, Services: residentialServices},
			{ID: "inside-cabinets", Name: "Inside cabinets", Price: 90, Services: residentialServices},
			{ID: "interior-windows", Name: "Interior windows", Price: 120, Services: append(residentialServices, ServiceOffice)},
			{ID: "laundry-ironing", Name: "Laundry & ironing", Price: 100, Services: residentialServices},
			{ID: "carpet-cleaning", Name: "Carpet cleaning", Price: 250, Services: append(residentialServices, ServiceOffice)},
			{ID: "balcony", Name: "Balcony or patio", Price: 60, Services: residentialServices},
		},
		FrequencyDiscounts: map[string]float64{
			FrequencyOneTime:  0,
			FrequencyWeekly:   0.15,
			FrequencyBiWeekly: 0.10,
			FrequencyMonthly:  0.05,
		},
	}
}
