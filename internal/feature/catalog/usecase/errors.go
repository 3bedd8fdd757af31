package usecase

import "errors"

// ErrCategoryNotFound is returned when no category exists with the given ID.
var ErrCategoryNotFound = errors.New("category not found")
