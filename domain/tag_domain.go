package domain

import (
	"errors"
)

var (
	ErrTagNotFound       = errors.New("tag not found")
	ErrUnknownEntityKind = errors.New("unknown taggable entity kind")
)

type (
	TagItem struct {
		Name string `json:"name"`
		Slug string `json:"slug"`
	}
)
