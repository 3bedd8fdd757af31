// Package handler はlistingフィーチャーのHTTPハンドラーを提供します。
//
// フォームのフィールド名（item_text, description_text, price_tekst,
// category_name, img）は既存クライアントとのワイヤ契約のため変更できません。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"adboard_backend/internal/api"
	catalogentity "adboard_backend/internal/feature/catalog/domain/entity"
	"adboard_backend/internal/feature/listing/domain/entity"
	"adboard_backend/internal/feature/listing/transport/http/dto"
	"adboard_backend/internal/feature/listing/usecase"
	jwtmw "adboard_backend/internal/platform/jwt"
)

// multipart form field names fixed by the legacy clients.
const (
	fieldTitle       = "item_text"
	fieldDescription = "description_text"
	fieldPrice       = "price_tekst"
	fieldCategory    = "category_name"
	fieldImage       = "img"
)

// ListingUsecase は出品操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type ListingUsecase interface {
	CreateListing(ctx context.Context, ownerID string, in usecase.ListingInput) (uint, error)
	ListMine(ctx context.Context, ownerID string) ([]entity.Item, error)
	Browse(ctx context.Context, categoryID *uint) ([]entity.Item, []catalogentity.Category, error)
	GetForEdit(ctx context.Context, requesterID string, id uint) (*entity.Item, []catalogentity.Category, error)
	EditListing(ctx context.Context, requesterID string, id uint, in usecase.ListingInput) error
	DeleteListing(ctx context.Context, requesterID string, id uint) error
}

// ListingHandler は出品操作のHTTPリクエストを処理します。
type ListingHandler struct {
	listings ListingUsecase
}

// NewListingHandler は指定されたusecaseでListingHandlerの新しいインスタンスを生成します。
func NewListingHandler(listings ListingUsecase) *ListingHandler {
	return &ListingHandler{listings: listings}
}

// currentUID はミドルウェアが設定した安定識別子を取り出します。
func currentUID(c *gin.Context) string {
	return c.GetString(jwtmw.ContextUserID)
}

// listingInput はmultipartフォームからサービス入力を組み立てます。
// 画像添付は任意で、閉じる責務は呼び出し側が持ちます。
func listingInput(c *gin.Context) (usecase.ListingInput, multipart.File, error) {
	in := usecase.ListingInput{
		Title:       c.PostForm(fieldTitle),
		Description: c.PostForm(fieldDescription),
		Price:       c.PostForm(fieldPrice),
		CategoryID:  c.PostForm(fieldCategory),
	}

	fh, err := c.FormFile(fieldImage)
	if err != nil {
		// 画像なしは正常系
		return in, nil, nil
	}
	f, err := fh.Open()
	if err != nil {
		return in, nil, err
	}
	in.Image = &usecase.ImageUpload{Filename: fh.Filename, Data: f}
	return in, f, nil
}

// renderError はサービス層のエラー種別をHTTPレスポンスへ変換します。
// - ValidationError: 400で内容を報告（黙って握り潰さない）
// - NotFound: 404
// - Forbidden: ホームへのリダイレクト（ソフトデナイ。エラーページは出さない）
func renderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, usecase.ErrValidation):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
	case errors.Is(err, usecase.ErrNotFound):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "ad not found"})
	case errors.Is(err, usecase.ErrForbidden):
		slog.Warn("ownership check failed", "uid", currentUID(c), "path", c.Request.URL.Path)
		c.Redirect(http.StatusSeeOther, "/")
	default:
		slog.Error("listing operation failed", "error", err, "path", c.Request.URL.Path)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal error"})
	}
}

// Home は認証済みユーザーのホームビュー用データを返します。
// 全出品とカテゴリ一覧の対です。
func (h *ListingHandler) Home(c *gin.Context) {
	items, categories, err := h.listings.Browse(c.Request.Context(), nil)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.BrowsePage{
		Items:      dto.FromItems(items),
		Categories: dto.FromCategories(categories),
	})
}

// Manage は/indexの管理ビュー用データ（自分の出品とカテゴリ一覧）を返します。
// 旧実装ではPOSTが出品フローの中継地点だったが、実体のある処理は存在しない。
// 明示的なno-opとしてGETと同じビューを返します。
func (h *ListingHandler) Manage(c *gin.Context) {
	uid := currentUID(c)
	items, err := h.listings.ListMine(c.Request.Context(), uid)
	if err != nil {
		renderError(c, err)
		return
	}
	_, categories, err := h.listings.Browse(c.Request.Context(), nil)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.BrowsePage{
		Items:      dto.FromItems(items),
		Categories: dto.FromCategories(categories),
	})
}

// Add は出品作成APIエンドポイントを処理します。
//
// POST /add (multipart/form-data)
// 成功時は201と新しい出品のIDを返します。
func (h *ListingHandler) Add(c *gin.Context) {
	in, file, err := listingInput(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid upload"})
		return
	}
	if file != nil {
		defer file.Close()
	}

	id, err := h.listings.CreateListing(c.Request.Context(), currentUID(c), in)
	if err != nil {
		renderError(c, err)
		return
	}
	slog.Info("ad created", "id", id, "uid", currentUID(c))
	c.JSON(http.StatusCreated, api.CreatedResponse{ID: id, Message: "ad created"})
}

// Browse は公開の出品一覧APIです。
//
// GET /lookfor?category_id=N
// category_id指定時はそのカテゴリに限定し、常にカテゴリ一覧と対で返します。
func (h *ListingHandler) Browse(c *gin.Context) {
	var categoryID *uint
	if raw := c.Query("category_id"); raw != "" {
		v, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "category_id must be a number"})
			return
		}
		id := uint(v)
		categoryID = &id
	}

	items, categories, err := h.listings.Browse(c.Request.Context(), categoryID)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.BrowsePage{
		Items:      dto.FromItems(items),
		Categories: dto.FromCategories(categories),
	})
}

// MyAds は現在のユーザーの出品一覧を返します。
//
// GET /my_ads
func (h *ListingHandler) MyAds(c *gin.Context) {
	items, err := h.listings.ListMine(c.Request.Context(), currentUID(c))
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromItems(items))
}

// EditForm は編集フォーム表示用のデータを返します。
//
// GET /edit_ad/:id
// 所有者以外からのアクセスはホームへリダイレクトされます。
func (h *ListingHandler) EditForm(c *gin.Context) {
	id, ok := adID(c)
	if !ok {
		return
	}
	item, categories, err := h.listings.GetForEdit(c.Request.Context(), currentUID(c), id)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.EditPage{
		Item:       dto.FromItem(*item),
		Categories: dto.FromCategories(categories),
	})
}

// Edit は出品編集APIエンドポイントを処理します。
//
// POST /edit_ad/:id (multipart/form-data)
// 成功時はユーザー向けの成功通知メッセージを返します。
func (h *ListingHandler) Edit(c *gin.Context) {
	id, ok := adID(c)
	if !ok {
		return
	}
	in, file, err := listingInput(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid upload"})
		return
	}
	if file != nil {
		defer file.Close()
	}

	if err := h.listings.EditListing(c.Request.Context(), currentUID(c), id, in); err != nil {
		renderError(c, err)
		return
	}
	slog.Info("ad updated", "id", id, "uid", currentUID(c))
	c.JSON(http.StatusOK, api.MessageResponse{Message: "ad updated"})
}

// Delete は出品削除APIエンドポイントを処理します。
//
// POST /delete_ad/:id
func (h *ListingHandler) Delete(c *gin.Context) {
	id, ok := adID(c)
	if !ok {
		return
	}
	if err := h.listings.DeleteListing(c.Request.Context(), currentUID(c), id); err != nil {
		renderError(c, err)
		return
	}
	slog.Info("ad deleted", "id", id, "uid", currentUID(c))
	c.JSON(http.StatusOK, api.MessageResponse{Message: "ad deleted"})
}

// adID はパスパラメータの出品IDをパースします。不正な場合は404を返します。
func adID(c *gin.Context) (uint, bool) {
	v, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "ad not found"})
		return 0, false
	}
	return uint(v), true
}
