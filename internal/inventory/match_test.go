package inventory

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	inputs := []string{"", "  Cemento ", "PLANCHAS  de\tYeso", "tornillos 4mm", "  almacén   A  "}
	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "normalize must be idempotent for %q", in)
	}
	assert.Equal(t, "planchas de yeso", Normalize("  PLANCHAS  de\tYeso "))
}

func TestScore(t *testing.T) {
	tests := []struct {
		a, b string
		want float64
	}{
		{"cemento", "cemento", ExactScore},
		{"Cemento ", " CEMENTO", ExactScore},
		{"cemento saco 25kg", "cemento", ContainsScore},
		{"tornillos", "tornillos 4mm", ContainsScore},
		{"yeso", "cemento", NoMatchScore},
		{"", "cemento", NoMatchScore},
		{"   ", "", NoMatchScore},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Score(tt.a, tt.b), "Score(%q, %q)", tt.a, tt.b)
		assert.Equal(t, Score(tt.a, tt.b), Score(tt.b, tt.a), "Score must be symmetric for %q/%q", tt.a, tt.b)
		assert.LessOrEqual(t, Score(tt.a, tt.b), ExactScore)
	}
}

func TestItemScoreTakesBestAlias(t *testing.T) {
	it := Item{ID: "x", Name: "tornillos 4mm", Aliases: []string{"tornillo", "tornillos"}}
	assert.Equal(t, ExactScore, itemScore(it, "tornillos"))
	assert.Equal(t, ContainsScore, itemScore(it, "4mm"))
	assert.Equal(t, NoMatchScore, itemScore(it, "clavos"))
}
