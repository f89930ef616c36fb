package repositories

import (
	"context"
	"fmt"
	"sort"

	"catalog/internal/models"
)

// MockCategoryRepository is an in-memory implementation of CategoryRepository.
type MockCategoryRepository struct {
	store *MockStore
}

func (r *MockCategoryRepository) List(ctx context.Context, page Page) ([]models.Category, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	categoryList := make([]models.Category, 0, len(r.store.categories))
	for _, c := range r.store.categories {
		categoryList = append(categoryList, c)
	}
	sort.Slice(categoryList, func(i, j int) bool {
		if categoryList[i].Name == categoryList[j].Name {
			return categoryList[i].ID < categoryList[j].ID
		}
		return categoryList[i].Name < categoryList[j].Name
	})
	return paginate(categoryList, page), nil
}

func (r *MockCategoryRepository) GetByID(ctx context.Context, id int64) (*models.Category, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	c, ok := r.store.categories[id]
	if !ok {
		return nil, fmt.Errorf("category with ID %d not found: %w", id, ErrNotFound)
	}
	return &c, nil
}

func (r *MockCategoryRepository) NameTaken(ctx context.Context, name string, excludeID int64) (bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	return r.store.nameTaken(name, excludeID), nil
}

func (r *MockCategoryRepository) Create(ctx context.Context, category *models.Category) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if r.store.nameTaken(category.Name, 0) {
		return fmt.Errorf("failed to create category: %w", ErrDuplicate)
	}
	category.NameKey = models.CategoryNameKey(category.Name)
	r.store.lastCategoryID++
	category.ID = r.store.lastCategoryID
	r.store.categories[category.ID] = *category
	return nil
}

func (r *MockCategoryRepository) Update(ctx context.Context, category *models.Category) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.categories[category.ID]; !ok {
		return fmt.Errorf("category with ID %d not found for update: %w", category.ID, ErrNotFound)
	}
	if r.store.nameTaken(category.Name, category.ID) {
		return fmt.Errorf("failed to update category: %w", ErrDuplicate)
	}
	category.NameKey = models.CategoryNameKey(category.Name)
	r.store.categories[category.ID] = *category
	return nil
}

func (r *MockCategoryRepository) Delete(ctx context.Context, id int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.categories[id]; !ok {
		return fmt.Errorf("category with ID %d not found for deletion: %w", id, ErrNotFound)
	}
	for _, p := range r.store.products {
		if p.CategoryID == id {
			return fmt.Errorf("failed to delete category: %w", ErrReferenced)
		}
	}
	delete(r.store.categories, id)
	return nil
}

func (s *MockStore) nameTaken(name string, excludeID int64) bool {
	key := models.CategoryNameKey(name)
	for id, c := range s.categories {
		if id != excludeID && c.NameKey == key {
			return true
		}
	}
	return false
}
