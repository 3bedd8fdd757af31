package adapters

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"adboard_backend/internal/feature/catalog/domain/entity"
	"adboard_backend/internal/feature/catalog/usecase"
)

// setupTestDB prepares an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to initialize test database")

	err = db.AutoMigrate(&entity.Category{})
	require.NoError(t, err, "failed to migrate tables")

	return db
}

func TestNewCategoryRepository(t *testing.T) {
	db := setupTestDB(t)

	repo := NewCategoryRepository(db)

	assert.NotNil(t, repo, "repository is nil")
	assert.NotNil(t, repo.db, "database connection is nil")
}

func TestCategoryGorm_ListAll(t *testing.T) {
	t.Run("returns categories in id order", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewCategoryRepository(db)

		seed := []entity.Category{{Name: "Electronics"}, {Name: "Clothing"}, {Name: "Home"}}
		require.NoError(t, db.Create(&seed).Error)

		categories, err := repo.ListAll(context.Background())

		require.NoError(t, err)
		require.Len(t, categories, 3)
		assert.Equal(t, "Electronics", categories[0].Name)
		assert.Equal(t, "Clothing", categories[1].Name)
		assert.Equal(t, "Home", categories[2].Name)
	})

	t.Run("empty table yields empty slice", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewCategoryRepository(db)

		categories, err := repo.ListAll(context.Background())

		assert.NoError(t, err)
		assert.Empty(t, categories)
	})
}

func TestCategoryGorm_FindByID(t *testing.T) {
	t.Run("find existing category", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewCategoryRepository(db)

		seed := entity.Category{Name: "Electronics"}
		require.NoError(t, db.Create(&seed).Error)

		found, err := repo.FindByID(context.Background(), seed.ID)

		assert.NoError(t, err, "failed to find category")
		assert.Equal(t, seed.ID, found.ID)
		assert.Equal(t, "Electronics", found.Name)
	})

	t.Run("not found error", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewCategoryRepository(db)

		found, err := repo.FindByID(context.Background(), 999)

		assert.Nil(t, found, "category should be nil")
		assert.ErrorIs(t, err, usecase.ErrCategoryNotFound, "should return ErrCategoryNotFound")
	})
}

func TestCategoryGorm_SeedIfEmpty(t *testing.T) {
	names := []string{"Electronics", "Clothing", "Home"}

	t.Run("seeds an empty table once", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewCategoryRepository(db)

		require.NoError(t, repo.SeedIfEmpty(context.Background(), names))

		categories, err := repo.ListAll(context.Background())
		require.NoError(t, err)
		require.Len(t, categories, 3)
		assert.Equal(t, "Electronics", categories[0].Name)
	})

	t.Run("repeated seeding does not duplicate", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewCategoryRepository(db)

		require.NoError(t, repo.SeedIfEmpty(context.Background(), names))
		require.NoError(t, repo.SeedIfEmpty(context.Background(), names))

		var count int64
		require.NoError(t, db.Model(&entity.Category{}).Count(&count).Error)
		assert.EqualValues(t, 3, count, "seeding must be idempotent")
	})

	t.Run("non-empty table is left untouched", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewCategoryRepository(db)

		existing := entity.Category{Name: "Books"}
		require.NoError(t, db.Create(&existing).Error)

		require.NoError(t, repo.SeedIfEmpty(context.Background(), names))

		categories, err := repo.ListAll(context.Background())
		require.NoError(t, err)
		require.Len(t, categories, 1)
		assert.Equal(t, "Books", categories[0].Name, "existing set must win over the bootstrap set")
	})
}
