package recipe

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscapeLike(t *testing.T) {
	tests := []struct {
		name string
		term string
		want string
	}{
		{"plain", "chocolate", "chocolate"},
		{"percent", "100%", `100\%`},
		{"underscore", "mac_and_cheese", `mac\_and\_cheese`},
		{"backslash", `a\b`, `a\\b`},
		{"all metacharacters", `50%_\`, `50\%\_\\`},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, escapeLike(tt.term))
		})
	}
}
