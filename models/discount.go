package models

import "time"

// Discount types.
const (
	DiscountPercent = "percent"
	DiscountFixed   = "fixed"
)

// DiscountCode is a promotional code record.
type DiscountCode struct {
	ID            string     `bson:"id" json:"id"`
	Code          string     `bson:"code" json:"code"` // stored uppercased
	Type          string     `bson:"type" json:"type"` // "percent" or "fixed"
	Value         float64    `bson:"value" json:"value"`
	MinOrderValue float64    `bson:"min_order_value" json:"minOrderValue"`
	ValidFrom     *time.Time `bson:"valid_from,omitempty" json:"validFrom,omitempty"`
	ValidTo       *time.Time `bson:"valid_to,omitempty" json:"validTo,omitempty"`
	UsageLimit    int        `bson:"usage_limit" json:"usageLimit"` // 0 means unlimited
	UsageCount    int        `bson:"usage_count" json:"usageCount"`
	Active        bool       `bson:"active" json:"active"`
	CreatedAt     time.Time  `bson:"created_at" json:"createdAt"`
}

// DiscountResolution is the ephemeral outcome of validating a code
// against an eligible base amount. It is never persisted.
type DiscountResolution struct {
	Valid  bool    `json:"valid"`
	Amount float64 `json:"amount"`
	Reason string  `json:"reason,omitempty"` // set when Valid is false
}
