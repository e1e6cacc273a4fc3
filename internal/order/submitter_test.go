package order

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wichananm65/chaosshop-storefront/internal/upstream"
)

type captured struct {
	header  http.Header
	body    map[string]interface{}
	present bool
}

func newOrderServer(t *testing.T, status int, respBody string) (*HTTPSubmitter, *captured) {
	t.Helper()
	got := &captured{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/orders", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		got.header = r.Header.Clone()
		_, got.present = r.Header[http.CanonicalHeaderKey(ScenarioHeader)]
		b, _ := io.ReadAll(r.Body)
		json.Unmarshal(b, &got.body)
		w.WriteHeader(status)
		w.Write([]byte(respBody))
	}))
	t.Cleanup(server.Close)

	client, err := upstream.NewClient(upstream.Config{Service: "order", BaseURL: server.URL})
	require.NoError(t, err)
	return NewHTTPSubmitter(client), got
}

func TestSubmit_SuccessKeepsBodyVerbatim(t *testing.T) {
	respBody := `{"order_id":12,"status":"completed","shipping":{"tracking":"TRK-1","eta_days":3}}`
	sub, got := newOrderServer(t, http.StatusOK, respBody)

	res := sub.Submit(context.Background(), Request{UserID: intPtr(1), ProductName: "Laptop", Quantity: 2, Address: "123 Main St"}, "")

	assert.True(t, res.OK)
	assert.Empty(t, res.Message)
	assert.JSONEq(t, respBody, string(res.Body))

	assert.False(t, got.present, "scenario header must be omitted when no scenario is set")
	assert.Equal(t, float64(1), got.body["user_id"])
	assert.Equal(t, "Laptop", got.body["product_name"])
	assert.Equal(t, float64(2), got.body["quantity"])
	assert.Equal(t, "123 Main St", got.body["address"])
}

func TestSubmit_ForwardsScenarioUntouched(t *testing.T) {
	sub, got := newOrderServer(t, http.StatusOK, `{}`)

	sub.Submit(context.Background(), Request{ProductName: "Laptop", Quantity: 1}, "high-load")

	assert.Equal(t, "high-load", got.header.Get(ScenarioHeader))
	assert.Nil(t, got.body["user_id"])
}

func TestSubmit_DetailWins(t *testing.T) {
	sub, _ := newOrderServer(t, http.StatusForbidden, `{"detail":"Fraud check failed"}`)

	res := sub.Submit(context.Background(), Request{ProductName: "Laptop", Quantity: 1}, "")

	assert.False(t, res.OK)
	assert.Equal(t, "Fraud check failed", res.Message)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)
	assert.JSONEq(t, `{"detail":"Fraud check failed"}`, string(res.Body))
}

func TestSubmit_StatusMessageWithoutDetail(t *testing.T) {
	sub, _ := newOrderServer(t, http.StatusInternalServerError, `{"status":"failed","reason":"Payment failed"}`)

	res := sub.Submit(context.Background(), Request{ProductName: "Laptop", Quantity: 1}, "")

	assert.False(t, res.OK)
	assert.Equal(t, "Request failed with status code 500", res.Message)
	assert.JSONEq(t, `{"status":"failed","reason":"Payment failed"}`, string(res.Body))
}

func TestSubmit_NoBodyOnFailure(t *testing.T) {
	sub, _ := newOrderServer(t, http.StatusBadGateway, ``)

	res := sub.Submit(context.Background(), Request{ProductName: "Laptop", Quantity: 1}, "")

	assert.False(t, res.OK)
	assert.Nil(t, res.Body)
	assert.Equal(t, "Request failed with status code 502", res.Message)
}

func TestSubmit_TransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	client, err := upstream.NewClient(upstream.Config{BaseURL: url})
	require.NoError(t, err)

	res := NewHTTPSubmitter(client).Submit(context.Background(), Request{ProductName: "Laptop", Quantity: 1}, "")
	assert.False(t, res.OK)
	assert.NotEmpty(t, res.Message)
	assert.NotEqual(t, GenericFailureMessage, res.Message)
	assert.Nil(t, res.Body)
}

func TestFailureMessage_GenericFallback(t *testing.T) {
	assert.Equal(t, GenericFailureMessage, failureMessage(nil, nil))
}
