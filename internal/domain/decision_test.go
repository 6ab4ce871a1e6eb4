package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompare(t *testing.T) {
	tests := []struct {
		name     string
		previous int
		current  int
		delta    int
		branch   Branch
	}{
		{"new scenes", 5, 8, 3, BranchNotify},
		{"unchanged", 10, 10, 0, BranchSkip},
		{"first run of the day", 12, 3, -9, BranchReconcile},
		{"first search ever", 0, 0, 0, BranchSkip},
		{"from zero", 0, 4, 4, BranchNotify},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Compare(tt.previous, tt.current)
			assert.Equal(t, tt.delta, d.Delta)
			assert.Equal(t, tt.branch, d.Branch)
			assert.Equal(t, tt.previous, d.Previous)
			assert.Equal(t, tt.current, d.Current)
			assert.False(t, d.Reconciled)
		})
	}
}

func TestCompare_NotifyIffPositiveDelta(t *testing.T) {
	for p := 0; p <= 20; p++ {
		for c := p; c <= 20; c++ {
			d := Compare(p, c)
			assert.Equal(t, c-p, d.Delta)
			assert.Equal(t, c-p > 0, d.Branch == BranchNotify, "p=%d c=%d", p, c)
		}
	}
}

func TestCompare_Repeatable(t *testing.T) {
	first := Compare(5, 8)
	second := Compare(5, 8)
	assert.Equal(t, first, second)
}
