package slug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/curricle/contentkit/pkg/slug"
)

func TestMake(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		opts     []slug.Option
		expected string
	}{
		{
			name:     "simple name",
			input:    "Linear Equations",
			expected: "linear-equations",
		},
		{
			name:     "punctuation collapses",
			input:    "Solve, then check!",
			expected: "solve-then-check",
		},
		{
			name:     "identifier with digits",
			input:    "P1",
			expected: "p1",
		},
		{
			name:     "consecutive separators collapse",
			input:    "Unit --  1",
			expected: "unit-1",
		},
		{
			name:     "leading and trailing noise",
			input:    "  (Algebra)  ",
			expected: "algebra",
		},
		{
			name:     "diacritics fold to ascii",
			input:    "Café Résumé",
			expected: "cafe-resume",
		},
		{
			name:     "empty input",
			input:    "",
			expected: "",
		},
		{
			name:     "only punctuation",
			input:    "!!!",
			expected: "",
		},
		{
			name:     "custom separator",
			input:    "Unit 1",
			opts:     []slug.Option{slug.Separator("_")},
			expected: "unit_1",
		},
		{
			name:     "max length truncates",
			input:    "a very long topic name",
			opts:     []slug.Option{slug.MaxLength(6)},
			expected: "a-very",
		},
		{
			name:     "truncation never ends on a separator",
			input:    "ab cd",
			opts:     []slug.Option{slug.MaxLength(3)},
			expected: "ab",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, slug.Make(tt.input, tt.opts...))
		})
	}
}

func TestMake_Deterministic(t *testing.T) {
	for i := 0; i < 100; i++ {
		assert.Equal(t, "quantum-periodic-properties", slug.Make("Quantum Periodic Properties (Module B)")[:27],
			"slugs must never vary between calls")
	}
	assert.Equal(t, slug.Make("Café"), slug.Make("Café"))
}

func TestPath(t *testing.T) {
	tests := []struct {
		name     string
		segments []string
		expected string
	}{
		{
			name:     "full ancestry",
			segments: []string{"Algebra", "Unit 1", "Lines", "P1", "S1"},
			expected: "algebra/unit-1/lines/p1/s1",
		},
		{
			name:     "empty segment keeps its slot",
			segments: []string{"Algebra", "", "Lines"},
			expected: "algebra//lines",
		},
		{
			name:     "single segment",
			segments: []string{"Algebra"},
			expected: "algebra",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, slug.Path(tt.segments...))
		})
	}
}
