package figmaclient

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeBaseURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  string
	}{
		{input: "", want: "https://api.figma.com"},
		{input: "api.figma.com", want: "https://api.figma.com"},
		{input: "https://api.figma.com/", want: "https://api.figma.com"},
		{input: "http://localhost:8080", want: "http://localhost:8080"},
		{input: "  figma.internal/  ", want: "https://figma.internal"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, normalizeBaseURL(tt.input))
		})
	}
}
