package bank

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"anha/config"
	"anha/internal/domain/service"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) service.StatementService {
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewStatementClient(&config.Config{Bank: &config.BankConfig{
		StatementURL:  server.URL,
		APIKey:        "test-key",
		LookupTimeout: 5 * time.Second,
	}})
	require.NoError(t, err)

	return client
}

func testQuery() service.StatementQuery {
	return service.StatementQuery{
		AccountNumber: "0123456789",
		ReferenceCode: "HDabc123",
		Amount:        175000,
		FromDate:      time.Now().Add(-24 * time.Hour),
		ToDate:        time.Now(),
	}
}

func TestStatementClient_RequiresURL(t *testing.T) {
	_, err := NewStatementClient(&config.Config{})
	assert.Error(t, err)
}

func TestStatementClient_MatchesAmountAndReference(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "0123456789", r.URL.Query().Get("account_number"))
		assert.NotEmpty(t, r.URL.Query().Get("transaction_date_min"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"status": 200,
			"transactions": [
				{"id": "1", "amount_in": "50000.00", "transaction_content": "tien nuoc"},
				{"id": "2", "amount_in": "175000.00", "transaction_content": "CK hdabc123 thanh toan don hang"}
			]
		}`))
	})

	found, err := client.CheckPayment(context.Background(), testQuery())

	require.NoError(t, err)
	assert.True(t, found)
}

func TestStatementClient_AmountMismatchIsNotAMatch(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"status": 200,
			"transactions": [
				{"id": "1", "amount_in": "174000.00", "transaction_content": "CK HDabc123"}
			]
		}`))
	})

	found, err := client.CheckPayment(context.Background(), testQuery())

	require.NoError(t, err)
	assert.False(t, found)
}

func TestStatementClient_MissingReferenceIsNotAMatch(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"status": 200,
			"transactions": [
				{"id": "1", "amount_in": "175000.00", "transaction_content": "chuyen tien"}
			]
		}`))
	})

	found, err := client.CheckPayment(context.Background(), testQuery())

	require.NoError(t, err)
	assert.False(t, found)
}

func TestStatementClient_UpstreamErrorSurfaces(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := client.CheckPayment(context.Background(), testQuery())

	assert.Error(t, err)
}

func TestStatementClient_ContextCancellation(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := client.CheckPayment(ctx, testQuery())

	assert.Error(t, err)
}
