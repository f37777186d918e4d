package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplyJump(t *testing.T) {
	tests := []struct {
		name     string
		square   int
		expected int
	}{
		{"ladder at 3", 3, 22},
		{"ladder at 5", 5, 8},
		{"ladder at 11", 11, 26},
		{"ladder at 20", 20, 29},
		{"snake at 17", 17, 4},
		{"snake at 19", 19, 7},
		{"snake at 27", 27, 1},
		{"plain square", 10, 10},
		{"start", 0, 0},
		{"final square", 30, 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ApplyJump(tt.square))
		})
	}
}

func TestApplyJumpIsSingleStep(t *testing.T) {
	// A jump destination is never itself a jump source, so applying
	// twice changes nothing
	for square := 0; square <= FinalSquare; square++ {
		once := ApplyJump(square)
		assert.Equal(t, once, ApplyJump(once), "square %d", square)
	}
}

func TestClampToFinal(t *testing.T) {
	assert.Equal(t, 29, ClampToFinal(29))
	assert.Equal(t, FinalSquare, ClampToFinal(30))
	assert.Equal(t, FinalSquare, ClampToFinal(31))
	assert.Equal(t, FinalSquare, ClampToFinal(35))
}

func TestResolveLanding(t *testing.T) {
	tests := []struct {
		name     string
		position int
		die      int
		expected int
	}{
		{"plain move", 0, 4, 4},
		{"lands on ladder", 0, 3, 22},
		{"lands on snake", 15, 2, 4},
		{"exact finish", 29, 1, 30},
		{"overshoot clamps to finish", 28, 6, 30},
		{"overshoot from 25", 25, 6, 30},
		{"lands on snake at 27", 26, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ResolveLanding(tt.position, tt.die))
		})
	}
}
