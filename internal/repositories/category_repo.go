package repositories

import (
	"context"

	"catalog/internal/models"
)

// CategoryRepository defines the interface for category data access.
type CategoryRepository interface {
	List(ctx context.Context, page Page) ([]models.Category, error)
	GetByID(ctx context.Context, id int64) (*models.Category, error)
	// NameTaken reports whether a category other than excludeID already uses
	// name, compared case-insensitively. Pass 0 to check all categories.
	NameTaken(ctx context.Context, name string, excludeID int64) (bool, error)
	Create(ctx context.Context, category *models.Category) error
	Update(ctx context.Context, category *models.Category) error
	Delete(ctx context.Context, id int64) error
}
