package services_test

import (
	"context"
	"errors"

	"catalog/internal/models"
	"catalog/internal/repositories"

	"github.com/stretchr/testify/mock"
)

// MockEventPublisher is a mock implementation of services.EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, routingKey string, payload interface{}) error {
	args := m.Called(ctx, routingKey, payload)
	return args.Error(0)
}

var errStorage = errors.New("storage unavailable")

// failingStore wraps a Store so that category listing fails, to check that
// storage faults surface unchanged.
type failingStore struct {
	repositories.Store
}

func (s failingStore) Categories() repositories.CategoryRepository {
	return failingCategories{s.Store.Categories()}
}

type failingCategories struct {
	repositories.CategoryRepository
}

func (failingCategories) List(context.Context, repositories.Page) ([]models.Category, error) {
	return nil, errStorage
}

func strPtr(s string) *string { return &s }

func int64Ptr(n int64) *int64 { return &n }

func pricePtr(s string) *models.Price {
	p := models.MustParsePrice(s)
	return &p
}

var firstPage = repositories.Page{Offset: 0, Limit: 100}
