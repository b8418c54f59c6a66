package repositories

import (
	"context"
	"fmt"
	"sync"

	"catalogseed/internal/models"

	"github.com/google/uuid"
)

// MemoryProductRepository is an in-memory implementation of ProductRepository.
type MemoryProductRepository struct {
	products map[string]models.Product
	order    []string
	mu       sync.RWMutex
}

// NewMemoryProductRepository creates a new instance of MemoryProductRepository.
func NewMemoryProductRepository() *MemoryProductRepository {
	return &MemoryProductRepository{
		products: make(map[string]models.Product),
	}
}

// MemoryOpener hands out repo for every run. Close leaves its contents intact.
func MemoryOpener(repo *MemoryProductRepository) Opener {
	return func(ctx context.Context) (ProductRepository, error) {
		return repo, nil
	}
}

// InsertMany stores all products or none of them.
func (r *MemoryProductRepository) InsertMany(ctx context.Context, products []models.Product) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	slugs := make(map[string]struct{}, len(products))
	for _, p := range r.products {
		slugs[p.Slug] = struct{}{}
	}
	for _, p := range products {
		if _, dup := slugs[p.Slug]; dup {
			return nil, fmt.Errorf("%w: duplicate slug %s", ErrWrite, p.Slug)
		}
		slugs[p.Slug] = struct{}{}
	}

	ids := make([]string, 0, len(products))
	for _, p := range products {
		if p.ID == "" {
			p.ID = uuid.New().String()
		}
		r.products[p.ID] = p
		r.order = append(r.order, p.ID)
		ids = append(ids, p.ID)
	}
	return ids, nil
}

// GetAll returns all products in insertion order.
func (r *MemoryProductRepository) GetAll() []models.Product {
	r.mu.RLock()
	defer r.mu.RUnlock()

	productList := make([]models.Product, 0, len(r.order))
	for _, id := range r.order {
		productList = append(productList, r.products[id])
	}
	return productList
}

// GetByID returns a product by its ID.
func (r *MemoryProductRepository) GetByID(id string) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[id]
	if !ok {
		return nil, fmt.Errorf("product with ID %s not found", id)
	}
	return &product, nil
}

// Close is a no-op.
func (r *MemoryProductRepository) Close(ctx context.Context) error {
	return nil
}

// Target returns "memory/products".
func (r *MemoryProductRepository) Target() string {
	return "memory/products"
}
