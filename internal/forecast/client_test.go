package forecast

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alexanderramin/cashgrid/internal/contract"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(endpoint string) Config {
	cfg := DefaultConfig()
	cfg.Enabled = true
	cfg.Endpoint = endpoint
	return cfg
}

func testRequest() contract.ForecastRequest {
	return contract.ForecastRequest{
		Rows: []contract.RowPayload{
			{ID: "r1", Label: "Sales", Kind: "category", Section: "inflow", Editable: true,
				Values: []decimal.Decimal{decimal.NewFromInt(10), decimal.NewFromInt(20)}},
		},
		ActualBucketCount:   2,
		ForecastBucketCount: 3,
		Method:              "auto",
	}
}

func testResponse() contract.ForecastResponse {
	vals := make([]decimal.Decimal, 5)
	for i := range vals {
		vals[i] = decimal.NewFromInt(int64(10 * (i + 1)))
	}
	return contract.ForecastResponse{
		Rows: []contract.RowPayload{
			{ID: "r1", Label: "Sales", Kind: "category", Section: "inflow", Editable: true,
				Values: vals, Method: "linear"},
		},
		ActualBucketCount:   2,
		ForecastBucketCount: 3,
	}
}

func TestHTTPClient_Generate_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/forecast", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)

		var req contract.ForecastRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, 2, req.ActualBucketCount)
		assert.Equal(t, 3, req.ForecastBucketCount)
		assert.Len(t, req.Rows, 1)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(testResponse())
	}))
	defer srv.Close()

	client := NewHTTPClient(testConfig(srv.URL), NoopObserver{})
	resp, err := client.Generate(context.Background(), testRequest())

	require.NoError(t, err)
	assert.Equal(t, 3, resp.ForecastBucketCount)
	require.Len(t, resp.Rows, 1)
	assert.Len(t, resp.Rows[0].Values, 5)
	assert.Equal(t, "linear", resp.Rows[0].Method)
}

func TestHTTPClient_Generate_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.TimeoutMs = 50

	client := NewHTTPClient(cfg, NoopObserver{})
	_, err := client.Generate(context.Background(), testRequest())

	assert.ErrorIs(t, err, ErrTimeout)
}

func TestHTTPClient_Generate_Unavailable(t *testing.T) {
	cfg := testConfig("http://127.0.0.1:1") // nothing listening
	cfg.MaxRetries = 0

	client := NewHTTPClient(cfg, NoopObserver{})
	_, err := client.Generate(context.Background(), testRequest())

	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestHTTPClient_Generate_RejectedNotRetried(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte("too few actual buckets"))
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.MaxRetries = 2

	client := NewHTTPClient(cfg, NoopObserver{})
	_, err := client.Generate(context.Background(), testRequest())

	assert.ErrorIs(t, err, ErrRejected)
	assert.Equal(t, 1, attempts)
}

func TestHTTPClient_Generate_RetryOnTransientError(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte("internal error"))
			return
		}
		json.NewEncoder(w).Encode(testResponse())
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.MaxRetries = 1

	client := NewHTTPClient(cfg, NoopObserver{})
	resp, err := client.Generate(context.Background(), testRequest())

	require.NoError(t, err)
	assert.Equal(t, 2, attempts)
	assert.Len(t, resp.Rows, 1)
}

func TestHTTPClient_Generate_RetryExhausted(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.MaxRetries = 1

	client := NewHTTPClient(cfg, NoopObserver{})
	_, err := client.Generate(context.Background(), testRequest())

	assert.ErrorIs(t, err, ErrRetryExhausted)
}

func TestHTTPClient_Clear(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/forecast/model-123", r.URL.Path)
		assert.Equal(t, http.MethodDelete, r.Method)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	client := NewHTTPClient(testConfig(srv.URL), NoopObserver{})
	assert.NoError(t, client.Clear(context.Background(), "model-123"))
}

func TestHTTPClient_Clear_MissingModelIsFine(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := NewHTTPClient(testConfig(srv.URL), NoopObserver{})
	assert.NoError(t, client.Clear(context.Background(), "gone"))
}

func TestHTTPClient_Available(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/health", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := NewHTTPClient(testConfig(srv.URL), NoopObserver{})
	assert.True(t, client.Available(context.Background()))

	down := NewHTTPClient(testConfig("http://127.0.0.1:1"), NoopObserver{})
	assert.False(t, down.Available(context.Background()))
}

func TestHTTPClient_ObserverCalled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(testResponse())
	}))
	defer srv.Close()

	var captured CallEvent
	obs := &captureObserver{fn: func(e CallEvent) { captured = e }}

	client := NewHTTPClient(testConfig(srv.URL), obs)
	_, err := client.Generate(context.Background(), testRequest())

	require.NoError(t, err)
	assert.Equal(t, "generate", captured.Operation)
	assert.True(t, captured.Success)
	assert.GreaterOrEqual(t, captured.LatencyMs, int64(0))
}

func TestHTTPClient_ObserverRejectedErrorCode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	var captured CallEvent
	obs := &captureObserver{fn: func(e CallEvent) { captured = e }}

	client := NewHTTPClient(testConfig(srv.URL), obs)
	_, err := client.Generate(context.Background(), testRequest())

	assert.ErrorIs(t, err, ErrRejected)
	assert.False(t, captured.Success)
	assert.Equal(t, "REJECTED", captured.ErrorCode)
}

type captureObserver struct {
	fn func(CallEvent)
}

func (o *captureObserver) OnCallComplete(e CallEvent) { o.fn(e) }
