package payment

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(baseURL string) *PaystackClient {
	return &PaystackClient{
		baseURL:   baseURL,
		secretKey: "sk_test_abc",
		client:    http.Client{Timeout: 2 * time.Second},
	}
}

func TestVerifyTransaction(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/transaction/verify/ps_ref_1", r.URL.Path)
		assert.Equal(t, "Bearer sk_test_abc", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"status": true,
			"message": "Verification successful",
			"data": {
				"reference": "ps_ref_1",
				"status": "success",
				"amount": 55000,
				"currency": "ZAR",
				"paid_at": "2026-09-01T10:00:00.000Z",
				"metadata": {"booking_data": {"city": "Cape Town"}}
			}
		}`))
	}))
	defer srv.Close()

	tx, err := newTestClient(srv.URL).VerifyTransaction(context.Background(), "ps_ref_1")
	require.NoError(t, err)
	assert.Equal(t, "ps_ref_1", tx.Reference)
	assert.Equal(t, "success", tx.Status)
	// Amounts come back in minor units.
	assert.Equal(t, 550.0, tx.Amount)
	assert.Equal(t, "ZAR", tx.Currency)
	assert.NotEmpty(t, tx.Metadata)
}

func TestVerifyTransaction_GatewayFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"status": false, "message": "Transaction reference not found"}`))
	}))
	defer srv.Close()

	tx, err := newTestClient(srv.URL).VerifyTransaction(context.Background(), "nope")
	require.Error(t, err)
	assert.Nil(t, tx)
	assert.Contains(t, err.Error(), "Transaction reference not found")
}

func TestVerifyTransaction_Unreachable(t *testing.T) {
	tx, err := newTestClient("http://127.0.0.1:1").VerifyTransaction(context.Background(), "ps_ref_1")
	require.Error(t, err)
	assert.Nil(t, tx)
}
