// Package adapters はcatalogフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"adboard_backend/internal/feature/catalog/domain/entity"
	"adboard_backend/internal/feature/catalog/usecase"
)

// categoryGorm はCategoryRepositoryインターフェースのGORM実装です。
type categoryGorm struct {
	db *gorm.DB
}

var _ usecase.CategoryRepository = (*categoryGorm)(nil)

// NewCategoryRepository は指定されたDB接続でcategoryGormリポジトリの新しいインスタンスを生成します。
func NewCategoryRepository(db *gorm.DB) *categoryGorm {
	return &categoryGorm{db: db}
}

// ListAll はID順にすべてのカテゴリを返します。
func (r *categoryGorm) ListAll(ctx context.Context) ([]entity.Category, error) {
	var categories []entity.Category
	if err := r.db.WithContext(ctx).
		Order("id ASC").
		Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// FindByID はIDでカテゴリを取得します。
// カテゴリが存在しない場合、usecase.ErrCategoryNotFoundを返します。
func (r *categoryGorm) FindByID(ctx context.Context, id uint) (*entity.Category, error) {
	var category entity.Category
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrCategoryNotFound
		}
		return nil, err
	}
	return &category, nil
}

// SeedIfEmpty はカテゴリテーブルが空の場合のみ、指定された名前のカテゴリを投入します。
// 初回起動時のブートストラップ用で、以降の運用では管理者が外部から管理します。
func (r *categoryGorm) SeedIfEmpty(ctx context.Context, names []string) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&entity.Category{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	categories := make([]entity.Category, 0, len(names))
	for _, name := range names {
		categories = append(categories, entity.Category{Name: name})
	}
	return r.db.WithContext(ctx).Create(&categories).Error
}
