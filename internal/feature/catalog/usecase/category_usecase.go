// Package usecase implements the business logic for category operations.
package usecase

import (
	"context"

	"adboard_backend/internal/feature/catalog/domain/entity"
)

// CategoryRepository abstracts the persistence layer for category data.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type CategoryRepository interface {
	ListAll(ctx context.Context) ([]entity.Category, error)
	FindByID(ctx context.Context, id uint) (*entity.Category, error)
	SeedIfEmpty(ctx context.Context, names []string) error
}

// CategoryUsecase provides business logic for category operations.
type CategoryUsecase struct {
	repo CategoryRepository
}

// NewCategoryUsecase creates a new CategoryUsecase with the given repository.
func NewCategoryUsecase(r CategoryRepository) *CategoryUsecase {
	return &CategoryUsecase{repo: r}
}

// ListCategories returns every category for building filter controls.
func (u *CategoryUsecase) ListCategories(ctx context.Context) ([]entity.Category, error) {
	return u.repo.ListAll(ctx)
}
