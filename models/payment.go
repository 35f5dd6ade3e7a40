package models

import "encoding/json"

// GatewayTransaction is the slice of the payment gateway's transaction
// object this system consumes: the charge outcome and whatever booking
// metadata was attached at redirect time. Metadata is kept raw because
// the gateway serializes it in several known shapes; the extractors in
// services/booking decide which one applies.
type GatewayTransaction struct {
	Reference string          `json:"reference"`
	Status    string          `json:"status"` // "success", "failed", "abandoned"
	Amount    float64         `json:"amount"` // major currency units
	Currency  string          `json:"currency"`
	PaidAt    string          `json:"paid_at,omitempty"`
	Metadata  json.RawMessage `json:"metadata,omitempty"`
}
