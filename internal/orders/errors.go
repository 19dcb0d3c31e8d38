package orders

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Error para requests con campos faltantes o malformados.
var ErrInvalidRequest = errors.New("invalid request")

// ErrUserLookup wraps failures talking to the user service while resolving a
// user, before any money has moved.
var ErrUserLookup = errors.New("error validating user")

// ErrPaymentFailed wraps a rejected or failed remote balance debit.
var ErrPaymentFailed = errors.New("payment failed")

// ErrOrderNotFulfilled marks the one accepted atomicity gap: the remote debit
// already committed but the local stock decrement failed afterwards.
var ErrOrderNotFulfilled = errors.New("order could not be fulfilled after payment")

// InsufficientBalanceError is returned when the user's balance cannot cover
// the order total. Amounts are reported to 2 decimal places.
type InsufficientBalanceError struct {
	Available decimal.Decimal
	Required  decimal.Decimal
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient balance. Available: %s, Required: %s",
		e.Available.StringFixed(2), e.Required.StringFixed(2))
}
