package orders

import (
	"errors"
	"sync"
)

// ErrOrderNotFound is returned when an order with the given ID is not found.
var ErrOrderNotFound = errors.New("order not found")

// Ledger is the append-only in-memory record of completed orders. IDs are
// assigned sequentially from 1 and never reused.
type Ledger struct {
	mu   sync.RWMutex
	seq  int64
	all  []Order
	byID map[int64]int
}

// NewLedger instantiates an empty order ledger.
func NewLedger() *Ledger {
	return &Ledger{
		byID: map[int64]int{},
	}
}

// Append assigns the next sequential ID to the order, stores it, and returns
// the stored value. ID assignment and insertion happen under one lock, so IDs
// stay collision-free under concurrent appends.
func (l *Ledger) Append(o Order) Order {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.seq++
	o.ID = l.seq
	l.byID[o.ID] = len(l.all)
	l.all = append(l.all, o)
	return o
}

// ListAll retrieves every order in insertion order.
func (l *Ledger) ListAll() []Order {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]Order, len(l.all))
	copy(out, l.all)
	return out
}

// Get retrieves an order by ID.
// Returns ErrOrderNotFound if the order is not found.
func (l *Ledger) Get(id int64) (Order, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	idx, ok := l.byID[id]
	if !ok {
		return Order{}, ErrOrderNotFound
	}
	return l.all[idx], nil
}

// ListByUser retrieves the orders placed by one user, in insertion order. The
// result is empty (never nil) when the user has no orders.
func (l *Ledger) ListByUser(userID int64) []Order {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]Order, 0)
	for _, o := range l.all {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out
}
