package repositories

import (
	"context"
	"fmt"

	"catalog/internal/models"

	"gorm.io/gorm"
)

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

// withCategory joins the owning category so every read returns it.
func (r *GORMProductRepository) withCategory(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Joins("Category")
}

// List returns a page of products ordered by ID, active ones only unless
// includeInactive is set.
func (r *GORMProductRepository) List(ctx context.Context, page Page, includeInactive bool) ([]models.Product, error) {
	products := make([]models.Product, 0)
	q := r.withCategory(ctx)
	if !includeInactive {
		q = q.Where("products.active = ?", true)
	}
	err := q.Order("products.product_id ASC").
		Offset(page.Offset).
		Limit(page.Limit).
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

// GetByID retrieves a single product by its ID from the database.
func (r *GORMProductRepository) GetByID(ctx context.Context, id int64) (*models.Product, error) {
	var product models.Product
	if err := r.withCategory(ctx).First(&product, "products.product_id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("failed to get product by ID %d: %w", id, translate(err))
	}
	return &product, nil
}

func (r *GORMProductRepository) CountByCategory(ctx context.Context, categoryID int64) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Product{}).Where("category_id = ?", categoryID).Count(&n).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count products of category %d: %w", categoryID, err)
	}
	return n, nil
}

// Create creates a new product in the database.
func (r *GORMProductRepository) Create(ctx context.Context, product *models.Product) error {
	if err := r.db.WithContext(ctx).Omit("Category").Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", translate(err))
	}
	return nil
}

// Update writes every column of an existing product. UpdatedAt is refreshed
// by GORM; CreatedAt and the category association are left alone.
func (r *GORMProductRepository) Update(ctx context.Context, product *models.Product) error {
	res := r.db.WithContext(ctx).
		Model(product).
		Select("*").
		Omit("Category", "CreatedAt").
		Updates(product)
	if res.Error != nil {
		return fmt.Errorf("failed to update product: %w", translate(res.Error))
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("product with ID %d not found for update: %w", product.ID, ErrNotFound)
	}
	return nil
}

// Delete deletes a product by its ID from the database.
func (r *GORMProductRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&models.Product{}, "product_id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("product with ID %d not found for deletion: %w", id, ErrNotFound)
	}
	return nil
}
