// Package adapters はlistingフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	catalogentity "adboard_backend/internal/feature/catalog/domain/entity"
	"adboard_backend/internal/feature/listing/domain/entity"
	"adboard_backend/internal/feature/listing/usecase"
)

// itemGorm はItemRepositoryインターフェースのGORM実装です。
type itemGorm struct {
	db *gorm.DB
}

// itemGormがItemRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.ItemRepository = (*itemGorm)(nil)

// NewItemRepository は指定されたgorm.DB接続でitemGormの新しいインスタンスを生成します。
func NewItemRepository(db *gorm.DB) *itemGorm {
	return &itemGorm{db: db}
}

// categoryExists は参照先カテゴリの存在をストレージ境界で検証します。
// 外部キー制約を持たないエンジン（テスト用SQLite等）でも整合性を保証します。
func (r *itemGorm) categoryExists(ctx context.Context, categoryID uint) error {
	var category catalogentity.Category
	if err := r.db.WithContext(ctx).Where("id = ?", categoryID).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return usecase.ErrInvalidCategoryRef
		}
		return err
	}
	return nil
}

// Create は出品をデータベースに追加します。
// 存在しないカテゴリを参照する出品は作成できません。
func (r *itemGorm) Create(ctx context.Context, item *entity.Item) error {
	if err := r.categoryExists(ctx, item.CategoryID); err != nil {
		return err
	}
	// Omitしないとgormが関連Categoryのゼロ値行を作ろうとする
	return r.db.WithContext(ctx).Omit("Category").Create(item).Error
}

// FindByID はIDで出品を取得します。
// 出品が存在しない場合、usecase.ErrNotFoundを返します。
func (r *itemGorm) FindByID(ctx context.Context, id uint) (*entity.Item, error) {
	var item entity.Item
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// FindByOwner は指定された所有者の全出品を挿入順で返します。
func (r *itemGorm) FindByOwner(ctx context.Context, ownerID string) ([]entity.Item, error) {
	var items []entity.Item
	if err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("id ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// FindAll は全出品を挿入順で返します。categoryIDが非nilの場合はそのカテゴリに限定します。
// 該当が0件の場合は空スライスを返します。
func (r *itemGorm) FindAll(ctx context.Context, categoryID *uint) ([]entity.Item, error) {
	query := r.db.WithContext(ctx).Order("id ASC")
	if categoryID != nil {
		query = query.Where("category_id = ?", *categoryID)
	}
	var items []entity.Item
	if err := query.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Update は出品の全フィールドを上書き保存します。
// 存在しないカテゴリへの変更は拒否されます。
func (r *itemGorm) Update(ctx context.Context, item *entity.Item) error {
	if err := r.categoryExists(ctx, item.CategoryID); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Omit("Category").Save(item).Error
}

// Delete は出品を完全に削除します。
// 対象が存在しない場合、usecase.ErrNotFoundを返します。
func (r *itemGorm) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&entity.Item{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return usecase.ErrNotFound
	}
	return nil
}
