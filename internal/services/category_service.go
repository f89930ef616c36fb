package services

import (
	"context"
	"errors"
	"fmt"

	"catalog/internal/models"
	"catalog/internal/repositories"
	"catalog/internal/validation"
)

// CategoryService handles business logic related to categories.
type CategoryService struct {
	store    repositories.Store
	events   EventPublisher
	maxLimit int
}

// NewCategoryService creates a new CategoryService. A nil publisher
// discards events; a non-positive maxLimit falls back to DefaultMaxLimit.
func NewCategoryService(store repositories.Store, events EventPublisher, maxLimit int) *CategoryService {
	if events == nil {
		events = NopPublisher{}
	}
	if maxLimit <= 0 {
		maxLimit = DefaultMaxLimit
	}
	return &CategoryService{
		store:    store,
		events:   events,
		maxLimit: maxLimit,
	}
}

// CreateCategory creates a category whose name no other category uses, ignoring case.
func (s *CategoryService) CreateCategory(ctx context.Context, in models.CategoryInput) (*models.Category, error) {
	in.Normalize()
	if errs := validation.Struct(&in); errs != nil {
		return nil, invalid(errs)
	}

	category := &models.Category{Name: in.Name}
	err := s.store.WithinTx(ctx, func(tx repositories.Store) error {
		if err := ensureNameFree(ctx, tx, in.Name, 0); err != nil {
			return err
		}
		return categoryWriteError(tx.Categories().Create(ctx, category), in.Name)
	})
	if err != nil {
		return nil, err
	}

	publish(ctx, s.events, EventCategoryCreated, category)
	return category, nil
}

// ListCategories returns a page of categories ordered by name.
func (s *CategoryService) ListCategories(ctx context.Context, page repositories.Page) ([]models.Category, error) {
	if err := checkPage(page, s.maxLimit); err != nil {
		return nil, err
	}
	return s.store.Categories().List(ctx, page)
}

// GetCategoryByID retrieves a single category by its ID.
func (s *CategoryService) GetCategoryByID(ctx context.Context, id int64) (*models.Category, error) {
	return getCategory(ctx, s.store, id)
}

// ReplaceCategory replaces the name of a category.
func (s *CategoryService) ReplaceCategory(ctx context.Context, id int64, in models.CategoryInput) (*models.Category, error) {
	in.Normalize()
	if errs := validation.Struct(&in); errs != nil {
		return nil, invalid(errs)
	}
	return s.rename(ctx, id, in.Name)
}

// PatchCategory applies a partial update. The name is the only mutable
// field, so a patch ends up replacing it just like ReplaceCategory.
func (s *CategoryService) PatchCategory(ctx context.Context, id int64, in models.CategoryPatch) (*models.Category, error) {
	if in.Empty() {
		return nil, invalid(validation.Field("", validation.MsgNoFields))
	}
	in.Normalize()
	if errs := validation.Struct(&in); errs != nil {
		return nil, invalid(errs)
	}
	return s.rename(ctx, id, *in.Name)
}

func (s *CategoryService) rename(ctx context.Context, id int64, name string) (*models.Category, error) {
	var category *models.Category
	err := s.store.WithinTx(ctx, func(tx repositories.Store) error {
		var err error
		if category, err = getCategory(ctx, tx, id); err != nil {
			return err
		}
		if err := ensureNameFree(ctx, tx, name, id); err != nil {
			return err
		}
		category.Name = name
		return categoryWriteError(tx.Categories().Update(ctx, category), name)
	})
	if err != nil {
		return nil, err
	}

	publish(ctx, s.events, EventCategoryUpdated, category)
	return category, nil
}

// DeleteCategory removes a category that no product references.
func (s *CategoryService) DeleteCategory(ctx context.Context, id int64) error {
	err := s.store.WithinTx(ctx, func(tx repositories.Store) error {
		if _, err := getCategory(ctx, tx, id); err != nil {
			return err
		}
		n, err := tx.Products().CountByCategory(ctx, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return categoryInUse(id, n)
		}
		err = tx.Categories().Delete(ctx, id)
		switch {
		case errors.Is(err, repositories.ErrReferenced):
			return categoryInUse(id, 1)
		case errors.Is(err, repositories.ErrNotFound):
			return &NotFoundError{Entity: "category", ID: id}
		}
		return err
	})
	if err != nil {
		return err
	}

	publish(ctx, s.events, EventCategoryDeleted, deletedEvent{CategoryID: id})
	return nil
}

func getCategory(ctx context.Context, store repositories.Store, id int64) (*models.Category, error) {
	category, err := store.Categories().GetByID(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, &NotFoundError{Entity: "category", ID: id}
	}
	return category, err
}

func ensureNameFree(ctx context.Context, store repositories.Store, name string, excludeID int64) error {
	taken, err := store.Categories().NameTaken(ctx, name, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return duplicateName(name)
	}
	return nil
}

// categoryWriteError turns a unique index hit from a concurrent writer into
// the same conflict the pre-check reports.
func categoryWriteError(err error, name string) error {
	if errors.Is(err, repositories.ErrDuplicate) {
		return duplicateName(name)
	}
	return err
}

func duplicateName(name string) error {
	return &ConflictError{Message: fmt.Sprintf("a category named '%s' already exists", name)}
}

func categoryInUse(id int64, n int64) error {
	return &InvariantViolationError{
		Message: fmt.Sprintf("category with ID %d has dependent products (%d)", id, n),
	}
}
