package repositories

import (
	"context"
	"fmt"

	"catalog/internal/models"

	"gorm.io/gorm"
)

// GORMCategoryRepository is a GORM implementation of CategoryRepository.
type GORMCategoryRepository struct {
	db *gorm.DB
}

// NewGORMCategoryRepository creates a new instance of GORMCategoryRepository.
func NewGORMCategoryRepository(db *gorm.DB) *GORMCategoryRepository {
	return &GORMCategoryRepository{
		db: db,
	}
}

// List returns a page of categories ordered by name.
func (r *GORMCategoryRepository) List(ctx context.Context, page Page) ([]models.Category, error) {
	categories := make([]models.Category, 0)
	err := r.db.WithContext(ctx).
		Order("name ASC").
		Order("category_id ASC").
		Offset(page.Offset).
		Limit(page.Limit).
		Find(&categories).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

// GetByID retrieves a single category by its ID from the database.
func (r *GORMCategoryRepository) GetByID(ctx context.Context, id int64) (*models.Category, error) {
	var category models.Category
	if err := r.db.WithContext(ctx).First(&category, "category_id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("failed to get category by ID %d: %w", id, translate(err))
	}
	return &category, nil
}

// NameTaken compares folded names, see models.CategoryNameKey.
func (r *GORMCategoryRepository) NameTaken(ctx context.Context, name string, excludeID int64) (bool, error) {
	q := r.db.WithContext(ctx).Model(&models.Category{}).Where("name_key = ?", models.CategoryNameKey(name))
	if excludeID != 0 {
		q = q.Where("category_id <> ?", excludeID)
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return false, fmt.Errorf("failed to look up category name %q: %w", name, err)
	}
	return n > 0, nil
}

// Create creates a new category in the database.
func (r *GORMCategoryRepository) Create(ctx context.Context, category *models.Category) error {
	category.NameKey = models.CategoryNameKey(category.Name)
	if err := r.db.WithContext(ctx).Create(category).Error; err != nil {
		return fmt.Errorf("failed to create category: %w", translate(err))
	}
	return nil
}

// Update replaces the name of an existing category.
func (r *GORMCategoryRepository) Update(ctx context.Context, category *models.Category) error {
	category.NameKey = models.CategoryNameKey(category.Name)
	res := r.db.WithContext(ctx).Model(category).Select("name", "name_key").Updates(category)
	if res.Error != nil {
		return fmt.Errorf("failed to update category: %w", translate(res.Error))
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("category with ID %d not found for update: %w", category.ID, ErrNotFound)
	}
	return nil
}

// Delete deletes a category by its ID from the database.
func (r *GORMCategoryRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&models.Category{}, "category_id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete category: %w", translate(res.Error))
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("category with ID %d not found for deletion: %w", id, ErrNotFound)
	}
	return nil
}
