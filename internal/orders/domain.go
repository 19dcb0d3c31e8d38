package orders

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status is the terminal state recorded on an order. Only completed orders are
// ever written to the ledger; failed placements leave no order behind.
type Status string

const StatusCompleted Status = "completed"

// Order represents a completed placement. ProductName and PricePerUnit are
// snapshots taken at placement time, not references into the catalog.
type Order struct {
	ID           int64           `json:"id"`
	UserID       int64           `json:"user_id"`
	ProductID    int64           `json:"product_id"`
	ProductName  string          `json:"product_name"`
	Quantity     int64           `json:"quantity"`
	PricePerUnit decimal.Decimal `json:"price_per_unit"`
	Total        decimal.Decimal `json:"total"`
	Status       Status          `json:"status"`
	CreatedAt    time.Time       `json:"created_at"`
}
