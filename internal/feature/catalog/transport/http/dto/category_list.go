// Package dto defines data transfer objects for the catalog feature's HTTP transport layer.
package dto

// CategoryItem is the JSON shape of a single category.
type CategoryItem struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}
