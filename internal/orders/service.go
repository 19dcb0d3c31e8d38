package orders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"api_orders/internal/catalog"
	"api_orders/internal/metrics"
	"api_orders/internal/userclient"
)

// PlaceOrderInput carries the caller-supplied fields of a placement request.
type PlaceOrderInput struct {
	ProductID int64
	Quantity  int64
	UserID    int64
}

// Service coordinates order placement across the local catalog, the remote
// user service, and the order ledger.
type Service struct {
	catalog *catalog.Store
	ledger  *Ledger
	users   userclient.UserService
	metrics *metrics.Recorder
	logger  *zap.Logger
}

// NewService creates a new Service.
func NewService(store *catalog.Store, ledger *Ledger, users userclient.UserService, rec *metrics.Recorder, logger *zap.Logger) *Service {
	if logger == nil {
		logger, _ = zap.NewProduction()
		defer logger.Sync() // flushes buffer, if any
	}

	return &Service{
		catalog: store,
		ledger:  ledger,
		users:   users,
		metrics: rec,
		logger:  logger,
	}
}

// PlaceOrder runs the placement pipeline: validate, resolve product, check
// stock, resolve user, check balance, debit balance, decrement stock, append
// the order. Each step either passes or terminates the whole placement; there
// are no retries and no partial continuations.
//
// Up to and including the balance check no state has been touched anywhere.
// The remote debit is the point of no return: after it succeeds the
// coordinator no longer honors ctx cancellation and always runs the stock
// decrement and ledger append.
func (s *Service) PlaceOrder(ctx context.Context, in PlaceOrderInput) (Order, error) {
	start := time.Now()

	// 1. Validate. No side effects on violation.
	if err := in.validate(); err != nil {
		s.metrics.OrderRejected(metrics.StatusInvalidRequest)
		return Order{}, err
	}

	// 2. Resolve product.
	product, err := s.catalog.Get(in.ProductID)
	if err != nil {
		s.metrics.OrderRejected(metrics.StatusProductNotFound)
		return Order{}, err
	}

	// 3. Read-time stock check. Advisory only: the binding check is the
	// guarded decrement after the debit.
	if product.Stock < in.Quantity {
		s.metrics.OrderRejected(metrics.StatusInsufficientStock)
		return Order{}, &catalog.InsufficientStockError{Available: product.Stock, Requested: in.Quantity}
	}

	// 4. Resolve user against the remote service.
	user, err := s.users.FetchUser(ctx, in.UserID)
	if err != nil {
		if errors.Is(err, userclient.ErrUserNotFound) {
			s.metrics.OrderRejected(metrics.StatusUserNotFound)
			return Order{}, err
		}
		s.logger.Error("user lookup failed", zap.Int64("user_id", in.UserID), zap.Error(err))
		s.metrics.OrderRejected(metrics.StatusUserLookupFailed)
		return Order{}, fmt.Errorf("%w: %w", ErrUserLookup, err)
	}

	// 5. Balance check. The remote side re-validates on deduct; this check
	// just avoids issuing debits that are known to fail.
	total := product.Price.Mul(decimal.NewFromInt(in.Quantity))
	if user.Balance.LessThan(total) {
		s.metrics.OrderRejected(metrics.StatusInsufficientBalance)
		return Order{}, &InsufficientBalanceError{Available: user.Balance, Required: total}
	}

	// 6. Debit the remote balance. Nothing local has been mutated yet, so a
	// failure here leaves the system consistent. The call runs detached from
	// caller cancellation: once issued, the debit is committed or failed by
	// the remote side regardless of what the caller does.
	debitCtx := context.WithoutCancel(ctx)
	if err := s.users.AdjustBalance(debitCtx, in.UserID, total, userclient.OpDeduct); err != nil {
		s.logger.Error("balance debit failed",
			zap.Int64("user_id", in.UserID),
			zap.String("amount", total.StringFixed(2)),
			zap.Error(err))
		s.metrics.OrderRejected(metrics.StatusPaymentFailed)
		return Order{}, fmt.Errorf("%w: %w", ErrPaymentFailed, err)
	}

	// 7. Guarded stock decrement, immediately after the debit returns. A
	// failure here means money was taken and goods were not reserved; there
	// is no compensation step, so it is logged distinctly for an operator.
	if err := s.catalog.DecrementStock(in.ProductID, in.Quantity); err != nil {
		s.logger.Error("stock decrement failed after balance debit",
			zap.Int64("user_id", in.UserID),
			zap.Int64("product_id", in.ProductID),
			zap.Int64("quantity", in.Quantity),
			zap.String("debited_amount", total.StringFixed(2)),
			zap.Error(err))
		s.metrics.OrderRejected(metrics.StatusStockDecrementFailed)
		return Order{}, fmt.Errorf("%w: %w", ErrOrderNotFulfilled, err)
	}

	// 8. Append the order, snapshotting product name and price.
	order := s.ledger.Append(Order{
		UserID:       in.UserID,
		ProductID:    product.ID,
		ProductName:  product.Name,
		Quantity:     in.Quantity,
		PricePerUnit: product.Price,
		Total:        total,
		Status:       StatusCompleted,
		CreatedAt:    time.Now().UTC(),
	})

	// 9. Record metrics.
	s.metrics.OrderCompleted(total, time.Since(start))

	s.logger.Info("order placed",
		zap.Int64("order_id", order.ID),
		zap.Int64("user_id", order.UserID),
		zap.Int64("product_id", order.ProductID),
		zap.Int64("quantity", order.Quantity),
		zap.String("total", order.Total.StringFixed(2)))
	return order, nil
}

func (in PlaceOrderInput) validate() error {
	if in.ProductID <= 0 {
		return fmt.Errorf("%w: product_id is required", ErrInvalidRequest)
	}
	if in.UserID <= 0 {
		return fmt.Errorf("%w: user_id is required", ErrInvalidRequest)
	}
	if in.Quantity <= 0 {
		return fmt.Errorf("%w: quantity must be greater than zero", ErrInvalidRequest)
	}
	return nil
}
