// Package db opens the relational database and runs schema bootstrap.
package db

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	gpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	authadapters "adboard_backend/internal/feature/auth/adapters"
	authentity "adboard_backend/internal/feature/auth/domain/entity"
	catalogadapters "adboard_backend/internal/feature/catalog/adapters"
	catalogentity "adboard_backend/internal/feature/catalog/domain/entity"
	listingentity "adboard_backend/internal/feature/listing/domain/entity"
)

// bootstrapCategories is the fixed category set seeded at first run.
// The set is administratively managed afterwards; there is no endpoint
// that creates or deletes categories.
var bootstrapCategories = []string{"Electronics", "Clothing", "Home"}

func OpenDB() *gorm.DB {
	user := os.Getenv("DB_USER")
	pass := os.Getenv("DB_PASSWORD")
	name := os.Getenv("DB_NAME")
	host := os.Getenv("DB_HOST")
	port := os.Getenv("DB_PORT")

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		host, port, user, pass, name)

	var (
		db  *gorm.DB
		err error
	)

	deadline := time.Now().Add(60 * time.Second)
	for {
		db, err = gorm.Open(gpostgres.Open(dsn), &gorm.Config{})
		if err == nil {
			break
		}
		if time.Now().After(deadline) {
			log.Fatalf("DB connect failed after 60s: %v", err)
		}
		log.Printf("DB connect failed, retrying...: %v", err)
		time.Sleep(3 * time.Second)
	}

	if os.Getenv("RUN_MIGRATIONS") == "true" {
		// マイグレーション（User, Role, Session, Category, Item）
		if err := db.AutoMigrate(
			&authentity.User{},
			&authentity.Role{},
			&authadapters.SessionModel{},
			&catalogentity.Category{},
			&listingentity.Item{},
		); err != nil {
			log.Fatalf("failed to migrate: %v", err)
		}

		// 固定カテゴリの初回投入（テーブルが空の場合のみ）
		categories := catalogadapters.NewCategoryRepository(db)
		if err := categories.SeedIfEmpty(context.Background(), bootstrapCategories); err != nil {
			log.Fatalf("failed to seed categories: %v", err)
		}
	}

	return db
}
