package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type passwordProbe struct {
	Password string `validate:"strongpassword"`
}

func TestStrongPassword(t *testing.T) {
	InitValidator()
	require.NotNil(t, Validate)

	tests := []struct {
		name     string
		password string
		valid    bool
	}{
		{"no uppercase", "abc123", false},
		{"no digit", "Abcdefgh", false},
		{"no lowercase", "ABCDEF12", false},
		{"too short", "Ab1", false},
		{"strong", "@A123abc123", true},
		{"strong without symbols", "Abcdefg1", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate.Struct(passwordProbe{Password: tt.password})
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}
