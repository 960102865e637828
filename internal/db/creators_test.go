package db

import (
	"testing"
)

func TestEscapeLike(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"plain", "plain"},
		{"50%", `50\%`},
		{"snake_case", `snake\_case`},
		{`back\slash`, `back\\slash`},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := escapeLike(tt.input)
			if result != tt.expected {
				t.Errorf("escapeLike(%q) = %q, expected %q", tt.input, result, tt.expected)
			}
		})
	}
}
