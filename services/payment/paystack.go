package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"cleanhaven/config"
	"cleanhaven/models"
)

// verifyResponse is Paystack's transaction-verify envelope.
type verifyResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    struct {
		Reference string          `json:"reference"`
		Status    string          `json:"status"`
		Amount    int64           `json:"amount"` // minor units (cents)
		Currency  string          `json:"currency"`
		PaidAt    string          `json:"paid_at"`
		Metadata  json.RawMessage `json:"metadata"`
	} `json:"data"`
}

// PaystackClient verifies transactions against the Paystack REST API.
type PaystackClient struct {
	baseURL   string
	secretKey string
	client    http.Client
}

// NewPaystackClient builds a client from the application config. The
// request timeout matches the reconciliation flow's metadata bound.
func NewPaystackClient() *PaystackClient {
	return &PaystackClient{
		baseURL:   config.AppConfig.PaystackBaseURL,
		secretKey: config.AppConfig.PaystackSecretKey,
		client:    http.Client{Timeout: 8 * time.Second},
	}
}

// VerifyTransaction fetches the transaction for a payment reference,
// including whatever booking metadata was attached at charge time.
func (p *PaystackClient) VerifyTransaction(ctx context.Context, reference string) (*models.GatewayTransaction, error) {
	url := fmt.Sprintf("%s/transaction/verify/%s", p.baseURL, reference)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building verify request failed: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+p.secretKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	var envelope verifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("decoding response failed: %w", err)
	}
	if !envelope.Status {
		return nil, fmt.Errorf("gateway returned failure: %s", envelope.Message)
	}

	return &models.GatewayTransaction{
		Reference: envelope.Data.Reference,
		Status:    envelope.Data.Status,
		Amount:    float64(envelope.Data.Amount) / 100,
		Currency:  envelope.Data.Currency,
		PaidAt:    envelope.Data.PaidAt,
		Metadata:  envelope.Data.Metadata,
	}, nil
}
