package domain

import (
	"errors"
)

var (
	MsgCategoryNameRequired = "Category name must not be empty"
	MsgCategoryNameTooLong  = "Category name must have at most 65 characters"

	ErrCategoryNotFound = errors.New("category not found")
)

type (
	CreateCategoryRequest struct {
		Name string `form:"name" validate:"required,max=65"`
	}

	CategoryResponse struct {
		ID   string `json:"id"`
		Name string `json:"name"`
		Slug string `json:"slug"`
	}
)
