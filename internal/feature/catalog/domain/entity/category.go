// Package entity defines the domain entities for the catalog feature.
package entity

// Category is a fixed classification used to group listings.
// The set is seeded at bootstrap and administratively managed; there are
// no create/delete endpoints.
type Category struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"uniqueIndex;size:100;not null" json:"name"`
}
