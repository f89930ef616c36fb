package repositories

import (
	"context"
	"fmt"
	"sort"
	"time"

	"catalog/internal/models"
)

// MockProductRepository is an in-memory implementation of ProductRepository.
// It shares the lock and the category table of the MockStore that owns it.
type MockProductRepository struct {
	store *MockStore
}

func (r *MockProductRepository) List(ctx context.Context, page Page, includeInactive bool) ([]models.Product, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	productList := make([]models.Product, 0, len(r.store.products))
	for _, p := range r.store.products {
		if !includeInactive && !p.Active {
			continue
		}
		productList = append(productList, r.store.withCategory(p))
	}
	sort.Slice(productList, func(i, j int) bool { return productList[i].ID < productList[j].ID })
	return paginate(productList, page), nil
}

func (r *MockProductRepository) GetByID(ctx context.Context, id int64) (*models.Product, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	p, ok := r.store.products[id]
	if !ok {
		return nil, fmt.Errorf("product with ID %d not found: %w", id, ErrNotFound)
	}
	product := r.store.withCategory(p)
	return &product, nil
}

func (r *MockProductRepository) CountByCategory(ctx context.Context, categoryID int64) (int64, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var n int64
	for _, p := range r.store.products {
		if p.CategoryID == categoryID {
			n++
		}
	}
	return n, nil
}

func (r *MockProductRepository) Create(ctx context.Context, product *models.Product) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.categories[product.CategoryID]; !ok {
		return fmt.Errorf("failed to create product: %w", ErrReferenced)
	}
	r.store.lastProductID++
	product.ID = r.store.lastProductID
	product.CreatedAt = time.Now()
	product.UpdatedAt = product.CreatedAt
	product.Category = nil
	r.store.products[product.ID] = *product
	return nil
}

func (r *MockProductRepository) Update(ctx context.Context, product *models.Product) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	existing, ok := r.store.products[product.ID]
	if !ok {
		return fmt.Errorf("product with ID %d not found for update: %w", product.ID, ErrNotFound)
	}
	if _, ok := r.store.categories[product.CategoryID]; !ok {
		return fmt.Errorf("failed to update product: %w", ErrReferenced)
	}
	updated := *product
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now()
	updated.Category = nil
	r.store.products[product.ID] = updated
	product.UpdatedAt = updated.UpdatedAt
	return nil
}

func (r *MockProductRepository) Delete(ctx context.Context, id int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.products[id]; !ok {
		return fmt.Errorf("product with ID %d not found for deletion: %w", id, ErrNotFound)
	}
	delete(r.store.products, id)
	return nil
}
