package services

import (
	"context"
	"errors"
	"fmt"

	"catalog/internal/models"
	"catalog/internal/repositories"
	"catalog/internal/validation"
)

// ProductService handles business logic related to products.
type ProductService struct {
	store    repositories.Store
	events   EventPublisher
	maxLimit int
}

// NewProductService creates a new ProductService. A nil publisher discards
// events; a non-positive maxLimit falls back to DefaultMaxLimit.
func NewProductService(store repositories.Store, events EventPublisher, maxLimit int) *ProductService {
	if events == nil {
		events = NopPublisher{}
	}
	if maxLimit <= 0 {
		maxLimit = DefaultMaxLimit
	}
	return &ProductService{
		store:    store,
		events:   events,
		maxLimit: maxLimit,
	}
}

// CreateProduct creates an active product with no stock in an existing category.
func (s *ProductService) CreateProduct(ctx context.Context, in models.ProductInput) (*models.Product, error) {
	in.Normalize()
	if errs := validation.Struct(&in); errs != nil {
		return nil, invalid(errs)
	}

	var product *models.Product
	err := s.store.WithinTx(ctx, func(tx repositories.Store) error {
		if _, err := getCategory(ctx, tx, in.CategoryID); err != nil {
			return err
		}
		p := &models.Product{Stock: 0, Active: true}
		in.Apply(p)
		if err := tx.Products().Create(ctx, p); err != nil {
			return productWriteError(err, in.CategoryID)
		}
		var err error
		product, err = getProduct(ctx, tx, p.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	publish(ctx, s.events, EventProductCreated, product)
	return product, nil
}

// ListProducts returns a page of products ordered by ID. Inactive products
// are left out unless includeInactive is set.
func (s *ProductService) ListProducts(ctx context.Context, page repositories.Page, includeInactive bool) ([]models.Product, error) {
	if err := checkPage(page, s.maxLimit); err != nil {
		return nil, err
	}
	return s.store.Products().List(ctx, page, includeInactive)
}

// GetProductByID retrieves a single product with its category.
func (s *ProductService) GetProductByID(ctx context.Context, id int64) (*models.Product, error) {
	return getProduct(ctx, s.store, id)
}

// ReplaceProduct overwrites name, description, price, image URL and
// category. Stock and the active flag are kept.
func (s *ProductService) ReplaceProduct(ctx context.Context, id int64, in models.ProductInput) (*models.Product, error) {
	in.Normalize()
	if errs := validation.Struct(&in); errs != nil {
		return nil, invalid(errs)
	}
	categoryID := in.CategoryID
	return s.modify(ctx, id, EventProductUpdated, func(tx repositories.Store, p *models.Product) error {
		if _, err := getCategory(ctx, tx, categoryID); err != nil {
			return err
		}
		in.Apply(p)
		return nil
	})
}

// PatchProduct applies the fields present in the patch.
func (s *ProductService) PatchProduct(ctx context.Context, id int64, in models.ProductPatch) (*models.Product, error) {
	if in.Empty() {
		return nil, invalid(validation.Field("", validation.MsgNoFields))
	}
	in.Normalize()
	if errs := validation.Struct(&in); errs != nil {
		return nil, invalid(errs)
	}
	return s.modify(ctx, id, EventProductUpdated, func(tx repositories.Store, p *models.Product) error {
		if in.CategoryID != nil {
			if _, err := getCategory(ctx, tx, *in.CategoryID); err != nil {
				return err
			}
		}
		in.Apply(p)
		return nil
	})
}

// IncreaseStock adds quantity units to the stock of an active product.
func (s *ProductService) IncreaseStock(ctx context.Context, id int64, in models.StockAdjustment) (*models.Product, error) {
	if errs := validation.Struct(&in); errs != nil {
		return nil, invalid(errs)
	}
	return s.modify(ctx, id, EventProductStockIncreased, func(_ repositories.Store, p *models.Product) error {
		if !p.Active {
			return &InvariantViolationError{
				Message: fmt.Sprintf("cannot change stock of inactive product with ID %d", id),
			}
		}
		if p.Stock > models.MaxStock-in.Quantity {
			return &InvariantViolationError{
				Message: fmt.Sprintf("stock of product with ID %d cannot exceed %d", id, models.MaxStock),
			}
		}
		p.Stock += in.Quantity
		return nil
	})
}

// DeactivateProduct marks an active product inactive.
func (s *ProductService) DeactivateProduct(ctx context.Context, id int64) (*models.Product, error) {
	return s.modify(ctx, id, EventProductDeactivated, func(_ repositories.Store, p *models.Product) error {
		if !p.Active {
			return &ConflictError{Message: fmt.Sprintf("product with ID %d is already inactive", id)}
		}
		p.Active = false
		return nil
	})
}

// ActivateProduct marks an inactive product active.
func (s *ProductService) ActivateProduct(ctx context.Context, id int64) (*models.Product, error) {
	return s.modify(ctx, id, EventProductActivated, func(_ repositories.Store, p *models.Product) error {
		if p.Active {
			return &ConflictError{Message: fmt.Sprintf("product with ID %d is already active", id)}
		}
		p.Active = true
		return nil
	})
}

// DeleteProduct physically removes a product.
func (s *ProductService) DeleteProduct(ctx context.Context, id int64) error {
	err := s.store.WithinTx(ctx, func(tx repositories.Store) error {
		if _, err := getProduct(ctx, tx, id); err != nil {
			return err
		}
		err := tx.Products().Delete(ctx, id)
		if errors.Is(err, repositories.ErrNotFound) {
			return &NotFoundError{Entity: "product", ID: id}
		}
		return err
	})
	if err != nil {
		return err
	}

	publish(ctx, s.events, EventProductDeleted, deletedEvent{ProductID: id})
	return nil
}

// modify loads a product, lets change mutate it, writes it back and returns
// the stored row, all in one transaction. change returning an error aborts
// the write.
func (s *ProductService) modify(
	ctx context.Context,
	id int64,
	event string,
	change func(tx repositories.Store, p *models.Product) error,
) (*models.Product, error) {
	var product *models.Product
	err := s.store.WithinTx(ctx, func(tx repositories.Store) error {
		p, err := getProduct(ctx, tx, id)
		if err != nil {
			return err
		}
		if err := change(tx, p); err != nil {
			return err
		}
		p.Category = nil
		if err := tx.Products().Update(ctx, p); err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return &NotFoundError{Entity: "product", ID: id}
			}
			return productWriteError(err, p.CategoryID)
		}
		product, err = getProduct(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	publish(ctx, s.events, event, product)
	return product, nil
}

func getProduct(ctx context.Context, store repositories.Store, id int64) (*models.Product, error) {
	product, err := store.Products().GetByID(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, &NotFoundError{Entity: "product", ID: id}
	}
	return product, err
}

// productWriteError reports a category removed between the existence check
// and the write as missing.
func productWriteError(err error, categoryID int64) error {
	if errors.Is(err, repositories.ErrReferenced) {
		return &NotFoundError{Entity: "category", ID: categoryID}
	}
	return err
}
