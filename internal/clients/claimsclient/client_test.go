package claimsclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hai-on-op/hai-staking-service/internal/config"
	"github.com/hai-on-op/hai-staking-service/internal/merkle"
)

const blob = `{
	"kite": {
		"format": "standard-v1",
		"tree": ["0x01"],
		"values": [{"value": ["0x00000000000000000000000000000000000000aa", "5"], "treeIndex": 0}],
		"leafEncoding": ["address", "uint256"]
	}
}`

func newTestClient(url string, maxRetry uint) *Client {
	return NewClient(&config.ClaimsConfig{
		URL:           url,
		Timeout:       5 * time.Second,
		MaxRetryTimes: maxRetry,
		RetryInterval: 5 * time.Millisecond,
	})
}

func TestGetDistributions(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(blob))
	}))
	defer server.Close()

	dists, err := newTestClient(server.URL, 3).GetDistributions(context.Background())
	require.NoError(t, err)
	require.Contains(t, dists, "KITE")

	var expected map[string]merkle.Dump
	require.NoError(t, json.Unmarshal([]byte(blob), &expected))
	assert.Equal(t, expected["kite"], dists["KITE"])
	assert.Equal(t, []string{"address", "uint256"}, dists["KITE"].LeafEncoding)
}

func TestGetDistributions_RetriesRateLimit(t *testing.T) {
	var requests atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if requests.Add(1) <= 2 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		_, _ = w.Write([]byte(blob))
	}))
	defer server.Close()

	dists, err := newTestClient(server.URL, 3).GetDistributions(context.Background())
	require.NoError(t, err)
	assert.Len(t, dists, 1)
	assert.Equal(t, int32(3), requests.Load())
}

func TestGetDistributions_ExceedsMaxRetries(t *testing.T) {
	var requests atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	_, err := newTestClient(server.URL, 2).GetDistributions(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to get claim distributions")
	assert.Equal(t, int32(2), requests.Load())
}

func TestGetDistributions_NoRetryOnServerError(t *testing.T) {
	var requests atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := newTestClient(server.URL, 3).GetDistributions(context.Background())
	require.Error(t, err)
	assert.Equal(t, int32(1), requests.Load())
}

func TestNewClient_NilConfig(t *testing.T) {
	assert.Nil(t, NewClient(nil))
}
