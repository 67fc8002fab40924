package memory

import (
	"context"
	"sync"

	"github.com/phenrril/skywholesale/internal/domain"
)

// CartRepo holds at most one line per product id.
type CartRepo struct {
	mu    sync.RWMutex
	items []domain.CartItem
}

func NewCartRepo() *CartRepo { return &CartRepo{items: []domain.CartItem{}} }

// Add merges into an existing line for the same product, keeping that line's price.
func (r *CartRepo) Add(ctx context.Context, p domain.Product, qty int) error {
	if qty < 1 {
		return domain.ErrInvalidQuantity
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	next := make([]domain.CartItem, len(r.items), len(r.items)+1)
	copy(next, r.items)
	for i := range next {
		if next[i].Product.ID == p.ID {
			next[i].Quantity += qty
			r.items = next
			return nil
		}
	}
	r.items = append(next, domain.CartItem{Product: p.Clone(), Quantity: qty})
	return nil
}

func (r *CartRepo) Remove(ctx context.Context, productID int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	next := make([]domain.CartItem, 0, len(r.items))
	for _, it := range r.items {
		if it.Product.ID != productID {
			next = append(next, it)
		}
	}
	if len(next) == len(r.items) {
		return domain.ErrNotFound
	}
	r.items = next
	return nil
}

// UpdateQuantity shifts a line by delta, never below one unit.
func (r *CartRepo) UpdateQuantity(ctx context.Context, productID int64, delta int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	next := make([]domain.CartItem, len(r.items))
	copy(next, r.items)
	for i := range next {
		if next[i].Product.ID == productID {
			next[i].Quantity = max(1, next[i].Quantity+delta)
			r.items = next
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *CartRepo) Clear(context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = []domain.CartItem{}
}

func (r *CartRepo) Drain(ctx context.Context) ([]domain.CartItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.items
	r.items = []domain.CartItem{}
	return out, nil
}

func (r *CartRepo) Items(context.Context) []domain.CartItem {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.CartItem, len(r.items))
	copy(out, r.items)
	return out
}

// Count is the number of units across all lines.
func (r *CartRepo) Count(context.Context) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n := 0
	for _, it := range r.items {
		n += it.Quantity
	}
	return n
}
