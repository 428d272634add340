package catalog

import "errors"

var (
	ErrCategoryNotFound  = errors.New("category not found")
	ErrGenreNotFound     = errors.New("genre not found")
	ErrSlugAlreadyExists = errors.New("slug is already taken")
)
