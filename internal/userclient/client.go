// Package userclient talks to the external user service that owns users and
// their balances.
package userclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
	"resty.dev/v3"
)

// Operation is the balance adjustment direction understood by the user service.
type Operation string

const (
	OpAdd    Operation = "add"
	OpDeduct Operation = "deduct"
)

// ErrUserNotFound is returned when the user service reports the user absent.
var ErrUserNotFound = errors.New("user not found")

// ErrServiceUnavailable wraps transport failures, timeouts, and unexpected
// statuses from the user service.
var ErrServiceUnavailable = errors.New("user service unavailable")

// PaymentError carries the reason the user service gave for refusing a
// balance adjustment (typically an insufficient balance on deduct).
type PaymentError struct {
	Reason string
}

func (e *PaymentError) Error() string {
	return "payment rejected by user service: " + e.Reason
}

// RemoteUser is a read-through view of a user owned by the user service.
type RemoteUser struct {
	ID      int64           `json:"id"`
	Name    string          `json:"name"`
	Email   string          `json:"email"`
	Balance decimal.Decimal `json:"balance"`
}

// UserService is the contract the placement coordinator depends on. Tests
// inject a double; production wires the HTTP Client below.
type UserService interface {
	FetchUser(ctx context.Context, userID int64) (RemoteUser, error)
	AdjustBalance(ctx context.Context, userID int64, amount decimal.Decimal, op Operation) error
}

// DefaultTimeout bounds every call to the user service.
const DefaultTimeout = 5 * time.Second

// Client is the HTTP implementation of UserService. It performs no retries: a
// single failed call fails the whole placement.
type Client struct {
	http *resty.Client
}

// New creates a Client against the given base URL. A non-positive timeout
// falls back to DefaultTimeout.
func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		http: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(timeout),
	}
}

// Close releases the underlying transport resources.
func (c *Client) Close() error {
	return c.http.Close()
}

type userEnvelope struct {
	Data RemoteUser `json:"data"`
}

type errorBody struct {
	Error string `json:"error"`
}

// FetchUser resolves a user by ID via GET /users/{id}.
func (c *Client) FetchUser(ctx context.Context, userID int64) (RemoteUser, error) {
	var out userEnvelope
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&out).
		Get(fmt.Sprintf("/users/%d", userID))
	if err != nil {
		return RemoteUser{}, fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	}
	switch {
	case resp.IsSuccess():
		return out.Data, nil
	case resp.StatusCode() == http.StatusNotFound:
		return RemoteUser{}, ErrUserNotFound
	default:
		return RemoteUser{}, fmt.Errorf("%w: unexpected status %d", ErrServiceUnavailable, resp.StatusCode())
	}
}

type adjustBalanceReq struct {
	// json.Number keeps the exact decimal digits on the wire.
	Amount    json.Number `json:"amount"`
	Operation Operation   `json:"operation"`
}

// AdjustBalance applies a balance change via PATCH /users/{id}/balance. The
// user service is the authority of record for deducts: it re-validates the
// balance and refuses rather than letting it go negative.
func (c *Client) AdjustBalance(ctx context.Context, userID int64, amount decimal.Decimal, op Operation) error {
	var remoteErr errorBody
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(adjustBalanceReq{Amount: json.Number(amount.String()), Operation: op}).
		SetError(&remoteErr).
		Patch(fmt.Sprintf("/users/%d/balance", userID))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	}
	if resp.IsSuccess() {
		return nil
	}
	reason := remoteErr.Error
	if reason == "" {
		reason = fmt.Sprintf("unexpected status %d", resp.StatusCode())
	}
	return &PaymentError{Reason: reason}
}
