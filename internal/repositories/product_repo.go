package repositories

import (
	"context"

	"catalog/internal/models"
)

// ProductRepository defines the interface for product data access. Every
// product it returns carries its category.
type ProductRepository interface {
	List(ctx context.Context, page Page, includeInactive bool) ([]models.Product, error)
	GetByID(ctx context.Context, id int64) (*models.Product, error)
	CountByCategory(ctx context.Context, categoryID int64) (int64, error)
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id int64) error
}
