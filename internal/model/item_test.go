package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsUnknownName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"empty", "", true},
		{"whitespace", "   ", true},
		{"dash", "-", true},
		{"english sentinel", "unknown", true},
		{"sentinel in longer text", "Unknown Item", true},
		{"french sentinel", "Article inconnu", true},
		{"unavailable", "Unavailable Name", true},
		{"nom indisponible", "nom indisponible", true},
		{"not applicable", "N/A", true},
		{"real product", "Sucre 5kg", false},
		{"real store", "Kin Marche", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsUnknownName(tt.input))
		})
	}
}
