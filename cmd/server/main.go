package main

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	redisv9 "github.com/redis/go-redis/v9"

	"adboard_backend/internal/app/di"
	"adboard_backend/internal/app/router"
	authadapters "adboard_backend/internal/feature/auth/adapters"
	authhandler "adboard_backend/internal/feature/auth/transport/handler"
	authusecase "adboard_backend/internal/feature/auth/usecase"
	catalogadapters "adboard_backend/internal/feature/catalog/adapters"
	cataloghandler "adboard_backend/internal/feature/catalog/transport/handler"
	catalogusecase "adboard_backend/internal/feature/catalog/usecase"
	listingadapters "adboard_backend/internal/feature/listing/adapters"
	listinghandler "adboard_backend/internal/feature/listing/transport/handler"
	listingusecase "adboard_backend/internal/feature/listing/usecase"
	"adboard_backend/internal/platform/cache"
	infradb "adboard_backend/internal/platform/db"
	jwtmw "adboard_backend/internal/platform/jwt"
	infraredis "adboard_backend/internal/platform/redis"
	"adboard_backend/internal/platform/storage"
)

func main() {
	// ローカル開発用の.env（存在しなければ無視）
	_ = godotenv.Load()

	// db
	db := infradb.OpenDB()

	// Redis
	var rdb *redisv9.Client
	if tmp, err := infraredis.NewRedisClient(); err != nil {
		log.Println("[WARN] Redis unavailable. Running without cache.")
		rdb = nil
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Println("[ERROR] Failed to close Redis client:", err)
			}
		}()
	}

	// 画像ストア
	images, err := storage.NewImageStore(os.Getenv("USER_IMAGES_DIR"))
	if err != nil {
		log.Fatal(err)
	}

	// Repository
	userRepo := authadapters.NewUserRepository(db)
	sessionRepo := di.NewSessionRepository(rdb, db)
	categoryRepo := catalogadapters.NewCategoryRepository(db)
	itemRepo := listingadapters.NewItemRepository(db)

	// 公開の閲覧クエリのみRedisキャッシュでラップ
	cachedItemRepo := cache.NewCachingItemRepository(rdb, 5*time.Minute, itemRepo, "ads")

	// JWT
	tokenGen := jwtmw.NewGenerator(os.Getenv(jwtmw.EnvKeyJWTSecret), 15*time.Minute)

	// Usecase
	authUC := authusecase.NewAuthUsecase(userRepo, sessionRepo, tokenGen)
	categoryUC := catalogusecase.NewCategoryUsecase(categoryRepo)
	listingUC := listingusecase.NewListingUsecase(cachedItemRepo, categoryRepo, images)

	// Handler
	authH := authhandler.NewAuthHandler(authUC)
	categoryH := cataloghandler.NewCategoryHandler(categoryUC)
	listingH := listinghandler.NewListingHandler(listingUC)

	// ルータ生成
	router := router.NewRouter(authH, categoryH, listingH)

	// JWT_SECRETチェック（開発中の注意喚起）
	if os.Getenv(jwtmw.EnvKeyJWTSecret) == "" {
		log.Println("[WARN] JWT_SECRET is not set. Set a strong secret in production.")
	}

	if err := router.Run(":8080"); err != nil {
		log.Fatal(err)
	}
}
