// Package dto defines data transfer objects for the listing feature's HTTP transport layer.
package dto

import (
	catalogentity "adboard_backend/internal/feature/catalog/domain/entity"
	"adboard_backend/internal/feature/listing/domain/entity"
)

// ListingItem is the JSON shape of a single listing.
type ListingItem struct {
	ID          uint    `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	CategoryID  uint    `json:"category_id"`
	ImagePath   string  `json:"image_path,omitempty"`
}

// CategoryItem is the JSON shape of a category in filter controls.
type CategoryItem struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// BrowsePage pairs the listings with the full category set. Clients rely
// on this pairing to build the category filter control.
type BrowsePage struct {
	Items      []ListingItem  `json:"items"`
	Categories []CategoryItem `json:"categories"`
}

// EditPage is the payload backing the edit form.
type EditPage struct {
	Item       ListingItem    `json:"item"`
	Categories []CategoryItem `json:"categories"`
}

// FromItem converts a domain item to its response shape.
func FromItem(item entity.Item) ListingItem {
	out := ListingItem{
		ID:          item.ID,
		Title:       item.Title,
		Description: item.Description,
		Price:       item.Price,
		CategoryID:  item.CategoryID,
	}
	if item.ImagePath != nil {
		out.ImagePath = *item.ImagePath
	}
	return out
}

// FromItems converts a slice of domain items.
func FromItems(items []entity.Item) []ListingItem {
	out := make([]ListingItem, 0, len(items))
	for _, item := range items {
		out = append(out, FromItem(item))
	}
	return out
}

// FromCategories converts a slice of domain categories.
func FromCategories(categories []catalogentity.Category) []CategoryItem {
	out := make([]CategoryItem, 0, len(categories))
	for _, c := range categories {
		out = append(out, CategoryItem{ID: c.ID, Name: c.Name})
	}
	return out
}
