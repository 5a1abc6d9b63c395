package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"simple", "Pizza", "pizza"},
		{"spaces", "Chicken Alfredo Pasta", "chicken-alfredo-pasta"},
		{"punctuation runs collapse", "Mac & Cheese!!", "mac-cheese"},
		{"leading and trailing separators", "  -- Tacos --  ", "tacos"},
		{"digits kept", "5 Minute Bread", "5-minute-bread"},
		{"already a slug", "beef-stew", "beef-stew"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.in))
		})
	}
}
