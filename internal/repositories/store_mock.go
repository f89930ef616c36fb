package repositories

import (
	"context"
	"sync"

	"catalog/internal/models"
)

// MockStore is an in-memory Store. It enforces the same unique name and
// foreign key rules as the SQL schema. WithinTx does not roll back: callers
// validate before they write.
type MockStore struct {
	mu             sync.RWMutex
	categories     map[int64]models.Category
	products       map[int64]models.Product
	lastCategoryID int64
	lastProductID  int64
}

// NewMockStore creates an empty MockStore.
func NewMockStore() *MockStore {
	return &MockStore{
		categories: make(map[int64]models.Category),
		products:   make(map[int64]models.Product),
	}
}

func (s *MockStore) Categories() CategoryRepository {
	return &MockCategoryRepository{store: s}
}

func (s *MockStore) Products() ProductRepository {
	return &MockProductRepository{store: s}
}

func (s *MockStore) WithinTx(ctx context.Context, fn func(tx Store) error) error {
	return fn(s)
}

func (s *MockStore) Ping(ctx context.Context) error {
	return nil
}

// withCategory returns a copy of p with its category attached. Callers hold mu.
func (s *MockStore) withCategory(p models.Product) models.Product {
	if c, ok := s.categories[p.CategoryID]; ok {
		p.Category = &c
	}
	return p
}

func paginate[T any](items []T, page Page) []T {
	if page.Offset >= len(items) {
		return []T{}
	}
	end := len(items)
	if page.Limit > 0 && page.Offset+page.Limit < end {
		end = page.Offset + page.Limit
	}
	return items[page.Offset:end]
}
