package engine_test

import (
	"testing"
	"time"

	"github.com/plus3/stacker/engine"
	"github.com/stretchr/testify/assert"
)

func TestLinePoints(t *testing.T) {
	tests := []struct {
		lines int
		spin  engine.SpinKind
		want  int
	}{
		{0, engine.SpinNone, 0},
		{1, engine.SpinNone, 100},
		{2, engine.SpinNone, 300},
		{3, engine.SpinNone, 500},
		{4, engine.SpinNone, 800},
		{0, engine.SpinMini, 100},
		{1, engine.SpinMini, 200},
		{2, engine.SpinMini, 400},
		{3, engine.SpinMini, 0},
		{0, engine.SpinFull, 400},
		{1, engine.SpinFull, 800},
		{2, engine.SpinFull, 1200},
		{3, engine.SpinFull, 1600},
		{4, engine.SpinFull, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, engine.LinePoints(tt.lines, tt.spin), "%d lines, %v spin", tt.lines, tt.spin)
	}
}

func TestPerfectClearBonus(t *testing.T) {
	assert.Equal(t, 0, engine.PerfectClearBonus(0))
	assert.Equal(t, 800, engine.PerfectClearBonus(1))
	assert.Equal(t, 1200, engine.PerfectClearBonus(2))
	assert.Equal(t, 1800, engine.PerfectClearBonus(3))
	assert.Equal(t, 2000, engine.PerfectClearBonus(4))
}

func TestGravityInterval(t *testing.T) {
	tests := map[int]time.Duration{
		0:   time.Second,
		1:   time.Second,
		2:   800 * time.Millisecond,
		4:   466 * time.Millisecond,
		9:   100 * time.Millisecond,
		12:  66 * time.Millisecond,
		19:  16 * time.Millisecond,
		29:  16 * time.Millisecond,
		200: 16 * time.Millisecond,
	}
	for level, want := range tests {
		assert.Equal(t, want, engine.GravityInterval(level), "level %d", level)
	}
}
