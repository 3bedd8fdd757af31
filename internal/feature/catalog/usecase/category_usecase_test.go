package usecase

import (
	"context"
	"errors"
	"testing"

	"adboard_backend/internal/feature/catalog/domain/entity"
)

// mockCategoryRepository はCategoryRepositoryインターフェースのモック実装です。
type mockCategoryRepository struct {
	listAllFn     func(ctx context.Context) ([]entity.Category, error)
	findByIDFn    func(ctx context.Context, id uint) (*entity.Category, error)
	seedIfEmptyFn func(ctx context.Context, names []string) error
}

func (m *mockCategoryRepository) ListAll(ctx context.Context) ([]entity.Category, error) {
	if m.listAllFn != nil {
		return m.listAllFn(ctx)
	}
	return nil, nil
}

func (m *mockCategoryRepository) FindByID(ctx context.Context, id uint) (*entity.Category, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, ErrCategoryNotFound
}

func (m *mockCategoryRepository) SeedIfEmpty(ctx context.Context, names []string) error {
	if m.seedIfEmptyFn != nil {
		return m.seedIfEmptyFn(ctx, names)
	}
	return nil
}

func TestCategoryUsecase_ListCategories(t *testing.T) {
	t.Run("returns the repository's categories", func(t *testing.T) {
		expected := []entity.Category{
			{ID: 1, Name: "Electronics"},
			{ID: 2, Name: "Clothing"},
		}
		repo := &mockCategoryRepository{
			listAllFn: func(ctx context.Context) ([]entity.Category, error) {
				return expected, nil
			},
		}
		uc := NewCategoryUsecase(repo)

		categories, err := uc.ListCategories(context.Background())
		if err != nil {
			t.Fatalf("ListCategories returned error: %v", err)
		}
		if len(categories) != 2 || categories[0].Name != "Electronics" {
			t.Errorf("unexpected categories: %+v", categories)
		}
	})

	t.Run("repository error is propagated", func(t *testing.T) {
		expectedErr := errors.New("database error")
		repo := &mockCategoryRepository{
			listAllFn: func(ctx context.Context) ([]entity.Category, error) {
				return nil, expectedErr
			},
		}
		uc := NewCategoryUsecase(repo)

		_, err := uc.ListCategories(context.Background())
		if !errors.Is(err, expectedErr) {
			t.Errorf("expected %v, got %v", expectedErr, err)
		}
	})
}
