package similarity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		d        float64
		max      float64
		expected float64
	}{
		{"ZeroDistance", 0, 0.1, 100},
		{"NegativeDistance", -0.5, 0.1, 100},
		{"AtMax", 0.1, 0.1, 0},
		{"BeyondMax", 0.5, 0.1, 0},
		{"Midpoint", 0.05, 0.1, 50},
		{"Anchor", 0.02, 0.1, 80},
		{"ZeroMax", 0.05, 0, 0},
		{"NegativeMax", 0.05, -1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, Normalize(tt.d, tt.max), 1e-9)
		})
	}
}
