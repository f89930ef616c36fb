package services_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"catalog/internal/models"
	"catalog/internal/repositories"
	"catalog/internal/services"
	"catalog/internal/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newCategoryService(t *testing.T) (*services.CategoryService, *repositories.MockStore, *MockEventPublisher) {
	t.Helper()
	store := repositories.NewMockStore()
	events := new(MockEventPublisher)
	events.On("Publish", mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()
	return services.NewCategoryService(store, events, 0), store, events
}

func TestCategoryService_CreateCategory(t *testing.T) {
	service, _, events := newCategoryService(t)
	ctx := context.Background()

	category, err := service.CreateCategory(ctx, models.CategoryInput{Name: "  Beverages  "})
	require.NoError(t, err)
	assert.Equal(t, int64(1), category.ID)
	assert.Equal(t, "Beverages", category.Name)
	events.AssertCalled(t, "Publish", mock.Anything, services.EventCategoryCreated, category)

	// Test duplicate name, ignoring case
	_, err = service.CreateCategory(ctx, models.CategoryInput{Name: "BEVERAGES"})
	var conflict *services.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Contains(t, conflict.Error(), "already exists")
}

func TestCategoryService_CreateCategory_InvalidName(t *testing.T) {
	service, store, events := newCategoryService(t)
	ctx := context.Background()

	tests := []struct {
		name string
		in   string
		msg  string
	}{
		{name: "empty", in: "", msg: validation.MsgEmptyName},
		{name: "whitespace only", in: "   ", msg: validation.MsgEmptyName},
		{name: "too short", in: "ab", msg: validation.MsgLengthOutOfRange},
		{name: "too short after trim", in: "  ab  ", msg: validation.MsgLengthOutOfRange},
		{name: "too long", in: strings.Repeat("x", 101), msg: validation.MsgLengthOutOfRange},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.CreateCategory(ctx, models.CategoryInput{Name: tt.in})
			var ve *services.ValidationError
			require.ErrorAs(t, err, &ve)
			require.Len(t, ve.Errors, 1)
			assert.Equal(t, "name", ve.Errors[0].Field)
			assert.Equal(t, tt.msg, ve.Errors[0].Message)
		})
	}

	list, err := store.Categories().List(ctx, firstPage)
	require.NoError(t, err)
	assert.Empty(t, list)
	events.AssertNotCalled(t, "Publish", mock.Anything, services.EventCategoryCreated, mock.Anything)
}

func TestCategoryService_CreateCategory_BoundaryLengths(t *testing.T) {
	service, _, _ := newCategoryService(t)
	ctx := context.Background()

	_, err := service.CreateCategory(ctx, models.CategoryInput{Name: "abc"})
	assert.NoError(t, err)
	_, err = service.CreateCategory(ctx, models.CategoryInput{Name: strings.Repeat("y", 100)})
	assert.NoError(t, err)
}

func TestCategoryService_ListCategories(t *testing.T) {
	service, _, _ := newCategoryService(t)
	ctx := context.Background()

	for _, name := range []string{"Snacks", "Beverages", "Dairy"} {
		_, err := service.CreateCategory(ctx, models.CategoryInput{Name: name})
		require.NoError(t, err)
	}

	categories, err := service.ListCategories(ctx, firstPage)
	require.NoError(t, err)
	require.Len(t, categories, 3)
	assert.Equal(t, "Beverages", categories[0].Name)
	assert.Equal(t, "Dairy", categories[1].Name)
	assert.Equal(t, "Snacks", categories[2].Name)

	categories, err = service.ListCategories(ctx, repositories.Page{Offset: 1, Limit: 1})
	require.NoError(t, err)
	require.Len(t, categories, 1)
	assert.Equal(t, "Dairy", categories[0].Name)

	categories, err = service.ListCategories(ctx, repositories.Page{Offset: 10, Limit: 5})
	require.NoError(t, err)
	assert.Empty(t, categories)
}

func TestCategoryService_ListCategories_InvalidPage(t *testing.T) {
	service, _, _ := newCategoryService(t)
	ctx := context.Background()

	for _, page := range []repositories.Page{
		{Offset: -1, Limit: 10},
		{Offset: 0, Limit: 0},
		{Offset: 0, Limit: services.DefaultMaxLimit + 1},
	} {
		_, err := service.ListCategories(ctx, page)
		var ve *services.ValidationError
		assert.ErrorAs(t, err, &ve, "page %+v", page)
	}

	_, err := service.ListCategories(ctx, repositories.Page{Offset: 0, Limit: services.DefaultMaxLimit})
	assert.NoError(t, err)
}

func TestCategoryService_ListCategories_StorageFailure(t *testing.T) {
	service := services.NewCategoryService(failingStore{repositories.NewMockStore()}, nil, 0)

	_, err := service.ListCategories(context.Background(), firstPage)
	assert.ErrorIs(t, err, errStorage)
}

func TestCategoryService_GetCategoryByID(t *testing.T) {
	service, _, _ := newCategoryService(t)
	ctx := context.Background()

	created, err := service.CreateCategory(ctx, models.CategoryInput{Name: "Beverages"})
	require.NoError(t, err)

	category, err := service.GetCategoryByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, category)

	// Test category not found
	_, err = service.GetCategoryByID(ctx, 99)
	var notFound *services.NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "category with ID 99 not found", notFound.Error())
}

func TestCategoryService_ReplaceCategory(t *testing.T) {
	service, _, events := newCategoryService(t)
	ctx := context.Background()

	drinks, err := service.CreateCategory(ctx, models.CategoryInput{Name: "Drinks"})
	require.NoError(t, err)
	snacks, err := service.CreateCategory(ctx, models.CategoryInput{Name: "Snacks"})
	require.NoError(t, err)

	updated, err := service.ReplaceCategory(ctx, drinks.ID, models.CategoryInput{Name: "Beverages"})
	require.NoError(t, err)
	assert.Equal(t, drinks.ID, updated.ID)
	assert.Equal(t, "Beverages", updated.Name)
	events.AssertCalled(t, "Publish", mock.Anything, services.EventCategoryUpdated, updated)

	// Renaming to a different case of its own name is allowed
	updated, err = service.ReplaceCategory(ctx, drinks.ID, models.CategoryInput{Name: "BEVERAGES"})
	require.NoError(t, err)
	assert.Equal(t, "BEVERAGES", updated.Name)

	// Test name taken by another category
	_, err = service.ReplaceCategory(ctx, snacks.ID, models.CategoryInput{Name: "beverages"})
	var conflict *services.ConflictError
	assert.ErrorAs(t, err, &conflict)

	// Test category not found
	_, err = service.ReplaceCategory(ctx, 99, models.CategoryInput{Name: "Whatever"})
	var notFound *services.NotFoundError
	assert.ErrorAs(t, err, &notFound)

	// Validation happens before the lookup
	_, err = service.ReplaceCategory(ctx, 99, models.CategoryInput{Name: " "})
	var ve *services.ValidationError
	assert.ErrorAs(t, err, &ve)
}

func TestCategoryService_PatchCategory(t *testing.T) {
	service, _, _ := newCategoryService(t)
	ctx := context.Background()

	created, err := service.CreateCategory(ctx, models.CategoryInput{Name: "Drinks"})
	require.NoError(t, err)

	updated, err := service.PatchCategory(ctx, created.ID, models.CategoryPatch{Name: strPtr(" Beverages ")})
	require.NoError(t, err)
	assert.Equal(t, "Beverages", updated.Name)

	// Test empty patch
	_, err = service.PatchCategory(ctx, created.ID, models.CategoryPatch{})
	var ve *services.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, validation.MsgNoFields, ve.Errors[0].Message)

	// Test blank name
	_, err = service.PatchCategory(ctx, created.ID, models.CategoryPatch{Name: strPtr("   ")})
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, validation.MsgEmptyName, ve.Errors[0].Message)

	got, err := service.GetCategoryByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Beverages", got.Name)
}

func TestCategoryService_DeleteCategory(t *testing.T) {
	service, store, events := newCategoryService(t)
	ctx := context.Background()

	created, err := service.CreateCategory(ctx, models.CategoryInput{Name: "Beverages"})
	require.NoError(t, err)
	empty, err := service.CreateCategory(ctx, models.CategoryInput{Name: "Empty"})
	require.NoError(t, err)

	products := services.NewProductService(store, nil, 0)
	_, err = products.CreateProduct(ctx, models.ProductInput{
		Name:       "Cola",
		Price:      models.MustParsePrice("1.50"),
		CategoryID: created.ID,
	})
	require.NoError(t, err)

	// Test category with dependent products
	err = service.DeleteCategory(ctx, created.ID)
	var invariant *services.InvariantViolationError
	require.ErrorAs(t, err, &invariant)
	assert.Contains(t, invariant.Error(), "dependent products (1)")
	_, err = service.GetCategoryByID(ctx, created.ID)
	assert.NoError(t, err)

	// Test successful deletion
	require.NoError(t, service.DeleteCategory(ctx, empty.ID))
	events.AssertCalled(t, "Publish", mock.Anything, services.EventCategoryDeleted, mock.Anything)
	_, err = service.GetCategoryByID(ctx, empty.ID)
	var notFound *services.NotFoundError
	assert.ErrorAs(t, err, &notFound)

	// Test deleting again
	err = service.DeleteCategory(ctx, empty.ID)
	assert.ErrorAs(t, err, &notFound)
}

func TestCategoryService_PublishFailureDoesNotFailWrite(t *testing.T) {
	store := repositories.NewMockStore()
	events := new(MockEventPublisher)
	events.On("Publish", mock.Anything, services.EventCategoryCreated, mock.Anything).
		Return(errors.New("broker down")).Once()
	service := services.NewCategoryService(store, events, 0)

	category, err := service.CreateCategory(context.Background(), models.CategoryInput{Name: "Beverages"})
	require.NoError(t, err)
	assert.Equal(t, "Beverages", category.Name)
	events.AssertExpectations(t)
}
