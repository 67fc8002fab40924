package memory

import (
	"context"
	"sync"

	"github.com/phenrril/skywholesale/internal/catalog"
	"github.com/phenrril/skywholesale/internal/domain"
)

// ProductRepo is the session catalog. Every mutation builds a fresh slice and swaps
// it in, so a List snapshot is never changed underneath its reader.
type ProductRepo struct {
	mu       sync.RWMutex
	products []domain.Product
}

func NewProductRepo(seed []domain.Product) *ProductRepo {
	r := &ProductRepo{products: make([]domain.Product, 0, len(seed))}
	for _, p := range seed {
		r.products = append(r.products, p.Clone())
	}
	return r
}

// Add puts p at the front of the catalog, where new arrivals are shown.
func (r *ProductRepo) Add(ctx context.Context, p domain.Product) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	next := make([]domain.Product, 0, len(r.products)+1)
	next = append(next, p.Clone())
	next = append(next, r.products...)
	r.products = next
	return nil
}

func (r *ProductRepo) Update(ctx context.Context, p domain.Product) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	idx := r.indexOf(p.ID)
	if idx < 0 {
		return domain.ErrNotFound
	}
	next := make([]domain.Product, len(r.products))
	copy(next, r.products)
	next[idx] = p.Clone()
	r.products = next
	return nil
}

func (r *ProductRepo) Delete(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	idx := r.indexOf(id)
	if idx < 0 {
		return domain.ErrNotFound
	}
	next := make([]domain.Product, 0, len(r.products)-1)
	next = append(next, r.products[:idx]...)
	next = append(next, r.products[idx+1:]...)
	r.products = next
	return nil
}

func (r *ProductRepo) FindByID(_ context.Context, id int64) (*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	idx := r.indexOf(id)
	if idx < 0 {
		return nil, domain.ErrNotFound
	}
	p := r.products[idx].Clone()
	return &p, nil
}

// List returns the current snapshot. Callers must treat it as read-only.
func (r *ProductRepo) List(context.Context) []domain.Product {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.products
}

// Search runs the catalog engine over the current snapshot.
func (r *ProductRepo) Search(ctx context.Context, c domain.FilterCriteria) []domain.Product {
	return catalog.FilterAndSort(r.List(ctx), c)
}

func (r *ProductRepo) indexOf(id int64) int {
	for i := range r.products {
		if r.products[i].ID == id {
			return i
		}
	}
	return -1
}
