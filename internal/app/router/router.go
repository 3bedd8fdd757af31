package router

import (
	authhandler "adboard_backend/internal/feature/auth/transport/handler"
	cataloghandler "adboard_backend/internal/feature/catalog/transport/handler"
	listinghandler "adboard_backend/internal/feature/listing/transport/handler"
	"adboard_backend/internal/platform/http/handler"
	jwtmw "adboard_backend/internal/platform/jwt"

	"github.com/gin-gonic/gin"
)

func NewRouter(auth *authhandler.AuthHandler, categories *cataloghandler.CategoryHandler, listings *listinghandler.ListingHandler) *gin.Engine {
	r := gin.Default()

	// 認証不要
	// 導通確認用
	r.GET("/healthz", handler.Health)
	// 新規ユーザー登録
	r.POST("/signup", auth.Signup)
	// ログイン（トークン発行）
	r.POST("/login", auth.Login)
	// トークンリフレッシュ
	r.POST("/refresh", auth.Refresh)
	// 出品の閲覧・カテゴリ絞り込みは未ログインでも可能
	r.GET("/lookfor", listings.Browse)
	// フィルタUI構築用のカテゴリ一覧
	r.GET("/categories", categories.List)

	// 認証必須のルート
	// r.Group("/") でルートグループを作成
	protected := r.Group("/")
	// jwtmw.AuthRequired() ミドルウェアを適用
	// → リクエストヘッダーに JWT が必要になる
	protected.Use(jwtmw.AuthRequired())
	{
		protected.GET("/", listings.Home)
		// 管理ビュー。旧実装のPOSTは出品フローの中継のみで、明示的なno-op
		protected.GET("/index", listings.Manage)
		protected.POST("/index", listings.Manage)
		protected.POST("/add", listings.Add)
		protected.GET("/my_ads", listings.MyAds)
		protected.POST("/delete_ad/:id", listings.Delete)
		protected.GET("/edit_ad/:id", listings.EditForm)
		protected.POST("/edit_ad/:id", listings.Edit)
		protected.GET("/logout", auth.Logout)
	}

	return r
}
