// Package entity defines the domain entities for the auth feature.
package entity

import "time"

// User represents a registered account in the marketplace.
// It contains authentication credentials and the stable identifier
// that listings reference as their owner.
type User struct {
	// ID is the surrogate primary key for the user row.
	ID uint `gorm:"primaryKey"`

	// Email is the user's email address used for authentication.
	// It must be unique across all users.
	Email string `gorm:"uniqueIndex;size:255;not null"`

	// Password is the hashed password for the user.
	// This should never store plaintext passwords.
	Password string `gorm:"size:255;not null"`

	// Active indicates whether the account may log in.
	Active bool `gorm:"not null;default:true"`

	// FSUniquifier is the stable identifier used as the ownership key
	// for listings. It is decoupled from the primary key so ownership
	// links survive even if storage keys are ever reassigned.
	FSUniquifier string `gorm:"column:fs_uniquifier;uniqueIndex;size:64;not null"`

	// Roles are the permission groupings assigned to the user.
	Roles []Role `gorm:"many2many:user_roles"`

	// CreatedAt is the timestamp when the user was created.
	CreatedAt time.Time

	// UpdatedAt is the timestamp when the user was last updated.
	UpdatedAt time.Time
}

// Role is a named permission grouping. No business rule inspects roles
// yet; they exist for administrative use.
type Role struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"uniqueIndex;size:80;not null"`
	Description string `gorm:"size:255"`
}
