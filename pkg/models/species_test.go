package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeSpecies(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"sloth bear", "Sloth Bear"},
		{"SLOTH BEAR", "Sloth Bear"},
		{" Sloth  Bear ", "Sloth Bear"},
		{"bengal tiger", "Bengal Tiger"},
		{"", ""},
		{"   ", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeSpecies(tt.input), "input %q", tt.input)
	}
}
