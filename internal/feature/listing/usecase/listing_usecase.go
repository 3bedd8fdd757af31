// Package usecase はlistingフィーチャーのビジネスロジックを実装します。
//
// 出品のライフサイクルと所有者のみが変更・削除できるという認可ルールを
// ここで一元的に扱います。所有者チェックは変更系の呼び出しごとに必ず
// 再実行され、キャッシュされません。
package usecase

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	catalogentity "adboard_backend/internal/feature/catalog/domain/entity"
	"adboard_backend/internal/feature/listing/domain/entity"
)

// ItemRepository は出品エンティティの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type ItemRepository interface {
	// Create は新しい出品を永続化します。
	Create(ctx context.Context, item *entity.Item) error

	// FindByID はIDで出品を取得します。存在しない場合はErrNotFoundを返します。
	FindByID(ctx context.Context, id uint) (*entity.Item, error)

	// FindByOwner は指定された所有者の全出品を挿入順で返します。
	FindByOwner(ctx context.Context, ownerID string) ([]entity.Item, error)

	// FindAll は全出品を返します。categoryIDが非nilの場合はそのカテゴリに限定します。
	FindAll(ctx context.Context, categoryID *uint) ([]entity.Item, error)

	// Update は出品の全フィールドを上書き保存します。
	Update(ctx context.Context, item *entity.Item) error

	// Delete は出品を完全に削除します。ソフトデリートは行いません。
	Delete(ctx context.Context, id uint) error
}

// CategoryRepository はカテゴリの参照系操作を抽象化します。
// 出品サービスはカテゴリの存在確認とフィルタUI用の一覧取得のみを行います。
type CategoryRepository interface {
	ListAll(ctx context.Context) ([]catalogentity.Category, error)
	FindByID(ctx context.Context, id uint) (*catalogentity.Category, error)
}

// ImageStore は出品画像の保存先を抽象化します。
// Save はサーバー側で決定した一意なファイル名で保存し、記録用の相対パスを返します。
type ImageStore interface {
	Save(filename string, r io.Reader) (string, error)
}

// ImageUpload は出品に添付された画像データです。
type ImageUpload struct {
	Filename string
	Data     io.Reader
}

// ListingInput は作成・編集で受け取る生のフォーム値です。
// priceとcategoryはユーザー入力の文字列のまま受け取り、サービス層で必ず
// パースします。生文字列を保存することはありません。
type ListingInput struct {
	Title       string
	Description string
	Price       string
	CategoryID  string
	Image       *ImageUpload
}

// ListingUsecase は出品操作のビジネスロジックを提供します。
type ListingUsecase struct {
	items      ItemRepository
	categories CategoryRepository
	images     ImageStore
}

// NewListingUsecase はListingUsecaseの新しいインスタンスを生成します。
func NewListingUsecase(items ItemRepository, categories CategoryRepository, images ImageStore) *ListingUsecase {
	return &ListingUsecase{
		items:      items,
		categories: categories,
		images:     images,
	}
}

// parseInput は生のフォーム値を検証し、パース済みの値を返します。
// どのフィールドが不正かをErrValidationにラップして報告します。
func (u *ListingUsecase) parseInput(ctx context.Context, in ListingInput) (title, description string, price float64, categoryID uint, err error) {
	title = strings.TrimSpace(in.Title)
	if title == "" {
		return "", "", 0, 0, fmt.Errorf("%w: title must not be empty", ErrValidation)
	}

	description = strings.TrimSpace(in.Description)
	if description == "" {
		return "", "", 0, 0, fmt.Errorf("%w: description must not be empty", ErrValidation)
	}

	price, perr := strconv.ParseFloat(strings.TrimSpace(in.Price), 64)
	if perr != nil {
		return "", "", 0, 0, fmt.Errorf("%w: price %q is not a number", ErrValidation, in.Price)
	}
	if price < 0 {
		return "", "", 0, 0, fmt.Errorf("%w: price must not be negative", ErrValidation)
	}

	cid, cerr := strconv.ParseUint(strings.TrimSpace(in.CategoryID), 10, 32)
	if cerr != nil {
		return "", "", 0, 0, fmt.Errorf("%w: category %q is not a valid id", ErrValidation, in.CategoryID)
	}
	categoryID = uint(cid)

	// カテゴリの参照整合性チェック
	if _, err := u.categories.FindByID(ctx, categoryID); err != nil {
		return "", "", 0, 0, fmt.Errorf("%w: category %d does not exist", ErrValidation, categoryID)
	}

	return title, description, price, categoryID, nil
}

// saveImage は画像をストアに保存し、記録する相対パスを返します。
// 画像が添付されていない場合はnilを返します。
func (u *ListingUsecase) saveImage(img *ImageUpload) (*string, error) {
	if img == nil {
		return nil, nil
	}
	path, err := u.images.Save(img.Filename, img.Data)
	if err != nil {
		return nil, fmt.Errorf("failed to store image: %w", err)
	}
	return &path, nil
}

// CreateListing は新しい出品を作成します。所有者は作成時の認証済みユーザーで
// 固定され、以後変更されません。画像が添付されている場合は先にストアへ保存し、
// 返された相対パスを記録します。
func (u *ListingUsecase) CreateListing(ctx context.Context, ownerID string, in ListingInput) (uint, error) {
	if ownerID == "" {
		return 0, fmt.Errorf("%w: owner is required", ErrValidation)
	}

	title, description, price, categoryID, err := u.parseInput(ctx, in)
	if err != nil {
		return 0, err
	}

	// 画像ファイルの書き込みとDB書き込みはトランザクション一体ではない。
	// 間でクラッシュした場合は孤立ファイルが残り得る（既知の制限）。
	imagePath, err := u.saveImage(in.Image)
	if err != nil {
		return 0, err
	}

	item := &entity.Item{
		Title:       title,
		Description: description,
		Price:       price,
		OwnerID:     ownerID,
		CategoryID:  categoryID,
		ImagePath:   imagePath,
	}
	if err := u.items.Create(ctx, item); err != nil {
		return 0, err
	}
	return item.ID, nil
}

// ListMine は指定された所有者の全出品を返します。
func (u *ListingUsecase) ListMine(ctx context.Context, ownerID string) ([]entity.Item, error) {
	return u.items.FindByOwner(ctx, ownerID)
}

// Browse は公開されている出品一覧とカテゴリ全件を対で返します。
// categoryIDが非nilの場合はそのカテゴリの出品に限定します。カテゴリ一覧は
// フィルタUIの構築用で、この対で返す契約を呼び出し側が前提にしています。
// 出品が1件もないカテゴリでも空スライスを返し、エラーにはしません。
func (u *ListingUsecase) Browse(ctx context.Context, categoryID *uint) ([]entity.Item, []catalogentity.Category, error) {
	items, err := u.items.FindAll(ctx, categoryID)
	if err != nil {
		return nil, nil, err
	}
	categories, err := u.categories.ListAll(ctx)
	if err != nil {
		return nil, nil, err
	}
	return items, categories, nil
}

// GetForEdit は編集フォーム表示用に出品とカテゴリ全件を返します。
// 編集・削除と同じ所有者チェックを適用します。
func (u *ListingUsecase) GetForEdit(ctx context.Context, requesterID string, id uint) (*entity.Item, []catalogentity.Category, error) {
	item, err := u.authorize(ctx, requesterID, id)
	if err != nil {
		return nil, nil, err
	}
	categories, err := u.categories.ListAll(ctx)
	if err != nil {
		return nil, nil, err
	}
	return item, categories, nil
}

// EditListing は出品を編集します。4つのスカラーフィールドは無条件で上書きされ、
// 部分更新はありません。新しい画像が添付された場合のみ画像パスを差し替えます
// （旧ファイルは削除されません。既知の制限）。
func (u *ListingUsecase) EditListing(ctx context.Context, requesterID string, id uint, in ListingInput) error {
	item, err := u.authorize(ctx, requesterID, id)
	if err != nil {
		return err
	}

	title, description, price, categoryID, err := u.parseInput(ctx, in)
	if err != nil {
		return err
	}

	imagePath, err := u.saveImage(in.Image)
	if err != nil {
		return err
	}

	item.Title = title
	item.Description = description
	item.Price = price
	item.CategoryID = categoryID
	if imagePath != nil {
		item.ImagePath = imagePath
	}
	return u.items.Update(ctx, item)
}

// DeleteListing は出品を完全に削除します。所有者のみが実行でき、
// カスケードする副作用はありません。
func (u *ListingUsecase) DeleteListing(ctx context.Context, requesterID string, id uint) error {
	if _, err := u.authorize(ctx, requesterID, id); err != nil {
		return err
	}
	return u.items.Delete(ctx, id)
}

// authorize は出品を取得し、requesterが所有者であることを検証します。
// 所有者チェックは呼び出しごとに必ずストレージの値と照合します。
func (u *ListingUsecase) authorize(ctx context.Context, requesterID string, id uint) (*entity.Item, error) {
	item, err := u.items.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item.OwnerID != requesterID {
		return nil, ErrForbidden
	}
	return item, nil
}
