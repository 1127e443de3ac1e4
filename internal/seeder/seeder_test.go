package seeder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestNewDefaults(t *testing.T) {
	s := New(nil, zap.NewNop(), Config{Customers: -5})
	assert.Equal(t, 0, s.cfg.Customers)
	assert.Equal(t, 32, s.cfg.Workers)
	assert.NotNil(t, s.rng)
	assert.NotNil(t, s.pwf)
	assert.NotNil(t, s.now)
}

func TestRound2(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{1.005, 1.0}, // 1.005 is stored just below, rounds down
		{2.675, 2.68},
		{3.0, 3.0},
		{0.125, 0.13},
		{-1.006, -1.01},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, round2(tt.in), 1e-9, "round2(%v)", tt.in)
	}
}

func TestIntRange(t *testing.T) {
	r := newRNG(1)
	for i := 0; i < 1000; i++ {
		v := r.intRange(3, 7)
		assert.GreaterOrEqual(t, v, 3)
		assert.LessOrEqual(t, v, 7)
	}
	assert.Equal(t, 5, r.intRange(5, 5))
	assert.Equal(t, 5, r.intRange(5, 2))
}
