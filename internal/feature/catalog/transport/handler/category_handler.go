package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"adboard_backend/internal/feature/catalog/domain/entity"
	"adboard_backend/internal/feature/catalog/transport/http/dto"
)

// CategoryUsecase はカテゴリ情報に関するユースケースのインターフェースです。
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type CategoryUsecase interface {
	ListCategories(ctx context.Context) ([]entity.Category, error)
}

// CategoryHandler はカテゴリ情報に関するHTTPリクエストを処理します。
type CategoryHandler struct {
	uc CategoryUsecase
}

// NewCategoryHandler は新しい CategoryHandler を作成します。
func NewCategoryHandler(uc CategoryUsecase) *CategoryHandler {
	return &CategoryHandler{uc: uc}
}

// List はカテゴリの一覧を取得するAPIです。
// フィルタUIの構築用で、Usecaseでエラーが発生した場合は500を返します。
func (h *CategoryHandler) List(c *gin.Context) {
	categories, err := h.uc.ListCategories(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	out := make([]dto.CategoryItem, 0, len(categories))
	for _, cat := range categories {
		out = append(out, dto.CategoryItem{ID: cat.ID, Name: cat.Name})
	}
	c.JSON(http.StatusOK, out)
}
