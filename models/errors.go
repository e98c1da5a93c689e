package models

import "errors"

var (
	// ErrCategoryNotFound is returned when a category id does not resolve.
	ErrCategoryNotFound = errors.New("category not found")
	// ErrCategoryNameTaken is returned when another category already uses the name, ignoring case.
	ErrCategoryNameTaken = errors.New("category already exists")
	// ErrProductNotFound is returned when a product is not found.
	ErrProductNotFound = errors.New("product not found")
)
