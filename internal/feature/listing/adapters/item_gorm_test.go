package adapters

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	catalogentity "adboard_backend/internal/feature/catalog/domain/entity"
	"adboard_backend/internal/feature/listing/domain/entity"
	"adboard_backend/internal/feature/listing/usecase"
)

// setupTestDB prepares an in-memory SQLite database with the bootstrap
// category set for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to initialize test database")

	err = db.AutoMigrate(&catalogentity.Category{}, &entity.Item{})
	require.NoError(t, err, "failed to migrate tables")

	categories := []catalogentity.Category{
		{Name: "Electronics"},
		{Name: "Clothing"},
		{Name: "Home"},
	}
	require.NoError(t, db.Create(&categories).Error, "failed to seed categories")

	return db
}

func newItem(owner string, categoryID uint) *entity.Item {
	return &entity.Item{
		Title:       "Phone",
		Description: "Used",
		Price:       99.99,
		OwnerID:     owner,
		CategoryID:  categoryID,
	}
}

func TestNewItemRepository(t *testing.T) {
	db := setupTestDB(t)

	repo := NewItemRepository(db)

	assert.NotNil(t, repo, "repository is nil")
	assert.NotNil(t, repo.db, "database connection is nil")
}

func TestItemGorm_Create(t *testing.T) {
	t.Run("successful creation", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewItemRepository(db)

		item := newItem("owner-a", 1)
		err := repo.Create(context.Background(), item)

		assert.NoError(t, err, "failed to create item")
		assert.NotZero(t, item.ID, "ID is not set")
		assert.False(t, item.CreatedAt.IsZero(), "CreatedAt is not set")
	})

	t.Run("nonexistent category is rejected at the storage boundary", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewItemRepository(db)

		item := newItem("owner-a", 99)
		err := repo.Create(context.Background(), item)

		assert.ErrorIs(t, err, usecase.ErrInvalidCategoryRef, "should reject dangling category reference")

		var count int64
		require.NoError(t, db.Model(&entity.Item{}).Count(&count).Error)
		assert.Zero(t, count, "no row must be written")
	})

	t.Run("nullable image path roundtrip", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewItemRepository(db)

		path := "user_images/abc.jpg"
		withImage := newItem("owner-a", 1)
		withImage.ImagePath = &path
		require.NoError(t, repo.Create(context.Background(), withImage))

		withoutImage := newItem("owner-a", 1)
		require.NoError(t, repo.Create(context.Background(), withoutImage))

		found, err := repo.FindByID(context.Background(), withImage.ID)
		require.NoError(t, err)
		require.NotNil(t, found.ImagePath)
		assert.Equal(t, path, *found.ImagePath)

		found, err = repo.FindByID(context.Background(), withoutImage.ID)
		require.NoError(t, err)
		assert.Nil(t, found.ImagePath)
	})
}

func TestItemGorm_FindByID(t *testing.T) {
	t.Run("find existing item", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewItemRepository(db)

		expected := newItem("owner-a", 1)
		require.NoError(t, repo.Create(context.Background(), expected))

		found, err := repo.FindByID(context.Background(), expected.ID)

		assert.NoError(t, err, "failed to find item")
		assert.Equal(t, expected.ID, found.ID, "ID does not match")
		assert.Equal(t, expected.Title, found.Title, "title does not match")
		assert.Equal(t, expected.Price, found.Price, "price does not match")
		assert.Equal(t, expected.OwnerID, found.OwnerID, "owner does not match")
	})

	t.Run("not found error", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewItemRepository(db)

		found, err := repo.FindByID(context.Background(), 999)

		assert.Nil(t, found, "item should be nil")
		assert.ErrorIs(t, err, usecase.ErrNotFound, "should return ErrNotFound")
	})
}

func TestItemGorm_FindByOwner(t *testing.T) {
	t.Run("returns only the owner's items in insertion order", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewItemRepository(db)

		first := newItem("owner-a", 1)
		second := newItem("owner-b", 2)
		third := newItem("owner-a", 3)
		third.Title = "Lamp"
		for _, item := range []*entity.Item{first, second, third} {
			require.NoError(t, repo.Create(context.Background(), item))
		}

		items, err := repo.FindByOwner(context.Background(), "owner-a")

		require.NoError(t, err)
		require.Len(t, items, 2)
		assert.Equal(t, first.ID, items[0].ID, "insertion order must be preserved")
		assert.Equal(t, "Lamp", items[1].Title)
	})

	t.Run("owner with no items gets empty slice", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewItemRepository(db)

		items, err := repo.FindByOwner(context.Background(), "nobody")

		assert.NoError(t, err)
		assert.Empty(t, items)
	})
}

func TestItemGorm_FindAll(t *testing.T) {
	db := setupTestDB(t)
	repo := NewItemRepository(db)

	phone := newItem("owner-a", 1)
	jacket := newItem("owner-b", 2)
	jacket.Title = "Jacket"
	require.NoError(t, repo.Create(context.Background(), phone))
	require.NoError(t, repo.Create(context.Background(), jacket))

	t.Run("no filter returns everything", func(t *testing.T) {
		items, err := repo.FindAll(context.Background(), nil)

		require.NoError(t, err)
		assert.Len(t, items, 2)
	})

	t.Run("category filter returns exactly the subset", func(t *testing.T) {
		one := uint(1)
		items, err := repo.FindAll(context.Background(), &one)

		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "Phone", items[0].Title)
	})

	t.Run("category with zero listings yields empty slice", func(t *testing.T) {
		three := uint(3)
		items, err := repo.FindAll(context.Background(), &three)

		assert.NoError(t, err, "empty category must not be an error")
		assert.Empty(t, items)
	})
}

func TestItemGorm_Update(t *testing.T) {
	t.Run("overwrites all fields", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewItemRepository(db)

		item := newItem("owner-a", 1)
		require.NoError(t, repo.Create(context.Background(), item))

		item.Title = "Phone v2"
		item.Description = "Like new"
		item.Price = 120.50
		item.CategoryID = 2
		require.NoError(t, repo.Update(context.Background(), item))

		found, err := repo.FindByID(context.Background(), item.ID)
		require.NoError(t, err)
		assert.Equal(t, "Phone v2", found.Title)
		assert.Equal(t, "Like new", found.Description)
		assert.Equal(t, 120.50, found.Price)
		assert.Equal(t, uint(2), found.CategoryID)
	})

	t.Run("update to nonexistent category is rejected", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewItemRepository(db)

		item := newItem("owner-a", 1)
		require.NoError(t, repo.Create(context.Background(), item))

		item.CategoryID = 42
		err := repo.Update(context.Background(), item)

		assert.ErrorIs(t, err, usecase.ErrInvalidCategoryRef)

		found, ferr := repo.FindByID(context.Background(), item.ID)
		require.NoError(t, ferr)
		assert.Equal(t, uint(1), found.CategoryID, "category must be unchanged")
	})
}

func TestItemGorm_Delete(t *testing.T) {
	t.Run("delete removes the row permanently", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewItemRepository(db)

		item := newItem("owner-a", 1)
		require.NoError(t, repo.Create(context.Background(), item))

		require.NoError(t, repo.Delete(context.Background(), item.ID))

		_, err := repo.FindByID(context.Background(), item.ID)
		assert.ErrorIs(t, err, usecase.ErrNotFound, "deleted item must be gone")
	})

	t.Run("delete of nonexistent item returns not found", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewItemRepository(db)

		err := repo.Delete(context.Background(), 999)

		assert.ErrorIs(t, err, usecase.ErrNotFound)
	})
}
