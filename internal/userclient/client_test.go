package userclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchUser(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/users/1", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data": {"id": 1, "name": "Test User", "email": "test@example.com", "balance": 1000}}`))
	}))
	defer server.Close()

	c := New(server.URL, 0)
	defer c.Close()

	user, err := c.FetchUser(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), user.ID)
	assert.Equal(t, "Test User", user.Name)
	assert.Equal(t, "test@example.com", user.Email)
	assert.True(t, user.Balance.Equal(decimal.RequireFromString("1000")))
}

func TestFetchUserNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	c := New(server.URL, 0)
	defer c.Close()

	_, err := c.FetchUser(context.Background(), 99)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestFetchUserUnexpectedStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	c := New(server.URL, 0)
	defer c.Close()

	_, err := c.FetchUser(context.Background(), 1)
	assert.ErrorIs(t, err, ErrServiceUnavailable)
	assert.Contains(t, err.Error(), "500")
}

func TestFetchUserTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // nothing is listening anymore

	c := New(server.URL, 0)
	defer c.Close()

	_, err := c.FetchUser(context.Background(), 1)
	assert.ErrorIs(t, err, ErrServiceUnavailable)
}

func TestFetchUserTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
	}))
	defer server.Close()

	c := New(server.URL, 50*time.Millisecond)
	defer c.Close()

	_, err := c.FetchUser(context.Background(), 1)
	assert.ErrorIs(t, err, ErrServiceUnavailable)
}

func TestAdjustBalance(t *testing.T) {
	var got struct {
		Amount    json.Number `json:"amount"`
		Operation string      `json:"operation"`
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/users/1/balance", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	c := New(server.URL, 0)
	defer c.Close()

	err := c.AdjustBalance(context.Background(), 1, decimal.RequireFromString("999.99"), OpDeduct)
	require.NoError(t, err)
	assert.Equal(t, json.Number("999.99"), got.Amount, "the amount must cross the wire with exact decimal digits")
	assert.Equal(t, "deduct", got.Operation)
}

func TestAdjustBalanceRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error": "insufficient balance"}`))
	}))
	defer server.Close()

	c := New(server.URL, 0)
	defer c.Close()

	err := c.AdjustBalance(context.Background(), 1, decimal.RequireFromString("999.99"), OpDeduct)

	var payErr *PaymentError
	require.ErrorAs(t, err, &payErr)
	assert.Equal(t, "insufficient balance", payErr.Reason)
}

func TestAdjustBalanceRejectedWithoutBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	c := New(server.URL, 0)
	defer c.Close()

	err := c.AdjustBalance(context.Background(), 1, decimal.RequireFromString("10"), OpDeduct)

	var payErr *PaymentError
	require.ErrorAs(t, err, &payErr)
	assert.Contains(t, payErr.Reason, "503")
}
