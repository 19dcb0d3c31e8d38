package catalog

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/shopspring/decimal"
)

// ErrNotFound is returned when a product with the given ID does not exist.
var ErrNotFound = errors.New("product not found")

// InsufficientStockError is returned when a decrement asks for more units than
// the product currently has.
type InsufficientStockError struct {
	Available int64
	Requested int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock. Available: %d, Requested: %d", e.Available, e.Requested)
}

// Product represents an item in the local catalog.
type Product struct {
	ID       int64           `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Stock    int64           `json:"stock"`
	Category string          `json:"category"`
}

// Store provides an in-memory catalog of products. Stock is only mutated
// through DecrementStock, which re-checks availability under the write lock.
type Store struct {
	mu sync.RWMutex
	m  map[int64]*Product
}

// NewStore instantiates an empty catalog store.
func NewStore() *Store {
	return &Store{
		m: map[int64]*Product{},
	}
}

// Seed loads the given products into the store, replacing existing entries
// with the same ID.
func (s *Store) Seed(products []Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range products {
		p := products[i]
		s.m[p.ID] = &p
	}
}

// Get retrieves a copy of a product by ID.
// Returns ErrNotFound if the product is not found.
func (s *Store) Get(id int64) (Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.m[id]
	if !ok {
		return Product{}, ErrNotFound
	}
	return *p, nil
}

// List retrieves all products ordered by ID.
func (s *Store) List() []Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	products := make([]Product, 0, len(s.m))
	for _, p := range s.m {
		products = append(products, *p)
	}
	sort.Slice(products, func(i, j int) bool { return products[i].ID < products[j].ID })
	return products
}

// DecrementStock atomically checks and reduces a product's stock. The
// sufficiency check happens at mutation time, under the lock: a stale read
// taken earlier by the caller is never trusted, so stock can never go
// negative even when placements race.
func (s *Store) DecrementStock(id, quantity int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.m[id]
	if !ok {
		return ErrNotFound
	}
	if p.Stock < quantity {
		return &InsufficientStockError{Available: p.Stock, Requested: quantity}
	}
	p.Stock -= quantity
	return nil
}
