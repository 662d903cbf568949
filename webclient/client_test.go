package webclient

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_GetJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, UserAgent, r.Header.Get("User-Agent"))
		w.Write([]byte(`{"close": 12.5}`))
	}))
	defer srv.Close()

	var got struct{ Close float64 }
	err := New(srv.Client(), Settings{Name: "test"}).GetJSON(context.Background(), srv.URL, &got)
	require.NoError(t, err)
	assert.Equal(t, 12.5, got.Close)
}

func TestClient_RetriesTransientFailures(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	var got []int
	err := New(srv.Client(), Settings{Name: "test", MaxElapsed: 10 * time.Second}).GetJSON(context.Background(), srv.URL, &got)
	require.NoError(t, err)
	assert.Equal(t, int32(3), calls.Load())
}

func TestClient_ClientErrorIsPermanent(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.NotFound(w, r)
	}))
	defer srv.Close()

	c := New(srv.Client(), Settings{Name: "test"})
	for range 10 {
		_, err := c.Get(context.Background(), srv.URL+"/missing")
		var status *StatusError
		require.True(t, errors.As(err, &status), "Get() error = %v", err)
		assert.Equal(t, http.StatusNotFound, status.Code)
	}
	// not retried, and the breaker stays closed
	assert.Equal(t, int32(10), calls.Load())
}

func TestClient_BreakerOpens(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := New(srv.Client(), Settings{Name: "test", ConsecutiveFailures: 2, MaxElapsed: 5 * time.Second})
	_, err := c.Get(context.Background(), srv.URL)
	require.Error(t, err)
	assert.Equal(t, int32(2), calls.Load())
}

func TestClient_Canceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New(srv.Client(), Settings{Name: "test", RPS: 1}).Get(ctx, srv.URL)
	assert.ErrorIs(t, err, context.Canceled)
}
