package repositories_test

import (
	"context"
	"testing"

	"catalog/internal/models"
	"catalog/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runStoreContract checks the behavior every Store implementation shares.
// store must be empty.
func runStoreContract(t *testing.T, store repositories.Store) {
	ctx := context.Background()
	page := repositories.Page{Offset: 0, Limit: 100}

	t.Run("categories", func(t *testing.T) {
		categories := store.Categories()

		snacks := &models.Category{Name: "Snacks"}
		require.NoError(t, categories.Create(ctx, snacks))
		assert.NotZero(t, snacks.ID)
		drinks := &models.Category{Name: "Drinks"}
		require.NoError(t, categories.Create(ctx, drinks))

		err := categories.Create(ctx, &models.Category{Name: "DRINKS"})
		assert.ErrorIs(t, err, repositories.ErrDuplicate)

		list, err := categories.List(ctx, page)
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, "Drinks", list[0].Name)
		assert.Equal(t, "Snacks", list[1].Name)

		list, err = categories.List(ctx, repositories.Page{Offset: 1, Limit: 10})
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, snacks.ID, list[0].ID)

		taken, err := categories.NameTaken(ctx, "snacks", 0)
		require.NoError(t, err)
		assert.True(t, taken)
		taken, err = categories.NameTaken(ctx, "SNACKS", snacks.ID)
		require.NoError(t, err)
		assert.False(t, taken)
		taken, err = categories.NameTaken(ctx, "Dairy", 0)
		require.NoError(t, err)
		assert.False(t, taken)

		drinks.Name = "Beverages"
		require.NoError(t, categories.Update(ctx, drinks))
		got, err := categories.GetByID(ctx, drinks.ID)
		require.NoError(t, err)
		assert.Equal(t, "Beverages", got.Name)

		drinks.Name = "snacks"
		assert.ErrorIs(t, categories.Update(ctx, drinks), repositories.ErrDuplicate)

		err = categories.Update(ctx, &models.Category{ID: 999, Name: "Ghost"})
		assert.ErrorIs(t, err, repositories.ErrNotFound)

		_, err = categories.GetByID(ctx, 999)
		assert.ErrorIs(t, err, repositories.ErrNotFound)

		cafe := &models.Category{Name: "Café"}
		require.NoError(t, categories.Create(ctx, cafe))
		err = categories.Create(ctx, &models.Category{Name: "CAFÉ"})
		assert.ErrorIs(t, err, repositories.ErrDuplicate)
		taken, err = categories.NameTaken(ctx, "cAfÉ", 0)
		require.NoError(t, err)
		assert.True(t, taken)
		drinks.Name = "CAFÉ"
		assert.ErrorIs(t, categories.Update(ctx, drinks), repositories.ErrDuplicate)
		require.NoError(t, categories.Delete(ctx, cafe.ID))

		require.NoError(t, categories.Delete(ctx, snacks.ID))
		assert.ErrorIs(t, categories.Delete(ctx, snacks.ID), repositories.ErrNotFound)
		require.NoError(t, categories.Delete(ctx, drinks.ID))
	})

	t.Run("products", func(t *testing.T) {
		category := &models.Category{Name: "Tea"}
		require.NoError(t, store.Categories().Create(ctx, category))
		products := store.Products()

		err := products.Create(ctx, &models.Product{
			Name:       "Orphan",
			Price:      models.MustParsePrice("1.00"),
			Active:     true,
			CategoryID: category.ID + 100,
		})
		assert.ErrorIs(t, err, repositories.ErrReferenced)

		var created []*models.Product
		for _, name := range []string{"Green", "Black", "White"} {
			p := &models.Product{
				Name:       name,
				Price:      models.MustParsePrice("3.01"),
				Active:     true,
				CategoryID: category.ID,
			}
			require.NoError(t, products.Create(ctx, p))
			assert.NotZero(t, p.ID)
			created = append(created, p)
		}

		got, err := products.GetByID(ctx, created[0].ID)
		require.NoError(t, err)
		assert.Equal(t, "Green", got.Name)
		assert.Equal(t, "3.01", got.Price.String())
		assert.Equal(t, 0, got.Stock)
		assert.True(t, got.Active)
		assert.Nil(t, got.Description)
		require.NotNil(t, got.Category)
		assert.Equal(t, "Tea", got.Category.Name)

		got.Active = false
		got.Stock = 7
		got.Price = models.MustParsePrice("10.00")
		got.Description = strPtr("Rolled leaves")
		got.Category = nil
		require.NoError(t, products.Update(ctx, got))

		got, err = products.GetByID(ctx, created[0].ID)
		require.NoError(t, err)
		assert.False(t, got.Active)
		assert.Equal(t, 7, got.Stock)
		assert.Equal(t, "10.00", got.Price.String())
		require.NotNil(t, got.Description)
		assert.Equal(t, "Rolled leaves", *got.Description)

		active, err := products.List(ctx, page, false)
		require.NoError(t, err)
		require.Len(t, active, 2)
		assert.Equal(t, created[1].ID, active[0].ID)
		assert.Equal(t, created[2].ID, active[1].ID)
		require.NotNil(t, active[0].Category)

		all, err := products.List(ctx, page, true)
		require.NoError(t, err)
		assert.Len(t, all, 3)

		paged, err := products.List(ctx, repositories.Page{Offset: 2, Limit: 5}, true)
		require.NoError(t, err)
		require.Len(t, paged, 1)
		assert.Equal(t, created[2].ID, paged[0].ID)

		n, err := products.CountByCategory(ctx, category.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(3), n)

		assert.ErrorIs(t, store.Categories().Delete(ctx, category.ID), repositories.ErrReferenced)

		ghost := *created[1]
		ghost.ID = 999
		assert.ErrorIs(t, products.Update(ctx, &ghost), repositories.ErrNotFound)

		moved := *created[1]
		moved.CategoryID = category.ID + 100
		assert.ErrorIs(t, products.Update(ctx, &moved), repositories.ErrReferenced)

		for _, p := range created {
			require.NoError(t, products.Delete(ctx, p.ID))
		}
		assert.ErrorIs(t, products.Delete(ctx, created[0].ID), repositories.ErrNotFound)
		require.NoError(t, store.Categories().Delete(ctx, category.ID))
	})

	t.Run("ping", func(t *testing.T) {
		assert.NoError(t, store.Ping(ctx))
	})
}

func strPtr(s string) *string { return &s }

func TestMockStore(t *testing.T) {
	runStoreContract(t, repositories.NewMockStore())
}
