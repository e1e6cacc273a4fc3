package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingObserver struct {
	service string
	status  int
	calls   int
}

func (o *recordingObserver) ObserveUpstream(service string, status int, d time.Duration) {
	o.service = service
	o.status = status
	o.calls++
}

func TestNewClient_Validation(t *testing.T) {
	_, err := NewClient(Config{})
	assert.Error(t, err)

	c, err := NewClient(Config{BaseURL: "http://localhost:3001"})
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:3001", c.BaseURL())
}

func TestDo_PostsJSONWithHeaders(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/orders", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "high-load", r.Header.Get("X-Chaos-Scenario"))

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Laptop", body["product_name"])

		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"order_id": 7}`))
	}))
	defer server.Close()

	obs := &recordingObserver{}
	c, err := NewClient(Config{Service: "order", BaseURL: server.URL + "/api/", Observer: obs})
	require.NoError(t, err)

	resp, err := c.Do(context.Background(), Request{
		Method:  http.MethodPost,
		Path:    "orders",
		Headers: map[string]string{"X-Chaos-Scenario": "high-load"},
		Body:    map[string]string{"product_name": "Laptop"},
	})
	require.NoError(t, err)
	assert.True(t, resp.OK())
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.JSONEq(t, `{"order_id": 7}`, string(resp.Body))

	assert.Equal(t, 1, obs.calls)
	assert.Equal(t, "order", obs.service)
	assert.Equal(t, http.StatusCreated, obs.status)
}

func TestDo_NonSuccessReturnsBodyAndStatusError(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(http.StatusGatewayTimeout)
		w.Write([]byte(`{"detail": "Database timeout"}`))
	}))
	defer server.Close()

	c, err := NewClient(Config{BaseURL: server.URL})
	require.NoError(t, err)

	resp, err := c.Get(context.Background(), "/orders")
	require.Error(t, err)
	require.NotNil(t, resp)

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusGatewayTimeout, statusErr.StatusCode)
	assert.Equal(t, "Request failed with status code 504", err.Error())
	assert.JSONEq(t, `{"detail": "Database timeout"}`, string(resp.Body))
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits), "requests are never retried")
}

func TestDo_TransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	obs := &recordingObserver{}
	c, err := NewClient(Config{Service: "inventory", BaseURL: url, Observer: obs})
	require.NoError(t, err)

	resp, err := c.Get(context.Background(), "/inventory")
	assert.Error(t, err)
	assert.Nil(t, resp)
	assert.Equal(t, 0, obs.status)
}
