// Package usecase implements the business logic for the listing feature.
package usecase

import "errors"

var (
	// ErrValidation is the base error for missing or malformed input fields.
	// Concrete failures wrap it with the offending field, so callers can
	// match with errors.Is and still report the detail.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound is returned when an operation targets a listing that
	// does not exist.
	ErrNotFound = errors.New("listing not found")

	// ErrForbidden is returned when the requester is not the owner of the
	// listing. The transport layer renders it as a soft-deny redirect to
	// the home view, not an error page.
	ErrForbidden = errors.New("requester is not the owner of the listing")

	// ErrInvalidCategoryRef is returned by the storage boundary when an item
	// would reference a category that does not exist.
	ErrInvalidCategoryRef = errors.New("item references a non-existent category")
)
