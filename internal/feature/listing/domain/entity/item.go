// Package entity defines the domain entities for the listing feature.
package entity

import (
	"time"

	catalogentity "adboard_backend/internal/feature/catalog/domain/entity"
)

// Item is a single for-sale listing. Every item has exactly one owner and
// exactly one category at all times; the owner is fixed at creation.
type Item struct {
	// ID is the surrogate primary key for the listing.
	ID uint `gorm:"primaryKey" json:"id"`

	// Title is the short headline of the listing. Never empty.
	Title string `gorm:"size:255;not null" json:"title"`

	// Description is the free-form body text. Never empty.
	Description string `gorm:"type:text;not null" json:"description"`

	// Price is the asking price. Always non-negative.
	Price float64 `gorm:"not null" json:"price"`

	// OwnerID is the stable identifier (fs_uniquifier) of the user who
	// created the listing. Immutable after creation.
	OwnerID string `gorm:"size:64;index;not null" json:"owner_id"`

	// CategoryID references the listing's category.
	CategoryID uint `gorm:"index;not null" json:"category_id"`

	// Category is the referenced category row. Reference-only: the item
	// does not own the category.
	Category catalogentity.Category `gorm:"foreignKey:CategoryID;constraint:OnDelete:RESTRICT" json:"-"`

	// ImagePath is the relative path of the uploaded image inside the
	// user-images directory. Nil when no image was supplied.
	ImagePath *string `gorm:"size:255" json:"image_path,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
