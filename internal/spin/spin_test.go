package spin_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flimmbark-source/Rogue-Wheel-Archived/internal/domain"
	"github.com/flimmbark-source/Rogue-Wheel-Archived/internal/spin"
)

func TestEaseInOutCubic(t *testing.T) {
	assert.Equal(t, 0.0, spin.EaseInOutCubic(0))
	assert.Equal(t, 1.0, spin.EaseInOutCubic(1))
	assert.InDelta(t, 0.5, spin.EaseInOutCubic(0.5), 1e-9)

	prev := 0.0
	for i := 1; i <= 100; i++ {
		v := spin.EaseInOutCubic(float64(i) / 100)
		require.GreaterOrEqual(t, v, prev, "ease must be monotonic")
		prev = v
	}
}

func TestDuration(t *testing.T) {
	assert.Equal(t, time.Duration(0), spin.Duration(0, 1))
	assert.Equal(t, 480*time.Millisecond, spin.Duration(1, 1))
	assert.Equal(t, 2000*time.Millisecond, spin.Duration(30, 1), "clamped to max")
	assert.Equal(t, 240*time.Millisecond, spin.Duration(1, 2))
	assert.Equal(t, 480*time.Millisecond, spin.Duration(1, 0), "non-positive tempo is 1")
}

func TestTween_EndsOnDestination(t *testing.T) {
	frames := spin.Tween(14, 5, time.Second, 20, spin.EaseInOutCubic)
	require.Len(t, frames, 21)
	assert.Equal(t, 14, frames[0].Index)
	assert.Equal(t, 3, frames[len(frames)-1].Index)
	assert.Equal(t, time.Second, frames[len(frames)-1].At)
	for _, f := range frames {
		assert.True(t, f.Index >= 0 && f.Index < domain.Slices)
	}
}

func TestTween_NoSteps(t *testing.T) {
	frames := spin.Tween(7, 0, time.Second, 10, spin.EaseInOutCubic)
	assert.Equal(t, []spin.Frame{{At: 0, Index: 7}}, frames)
}

func TestPlan_TwoLegs(t *testing.T) {
	out := domain.RoundOutcome{StartToken: 10, PlayerStep: 4, EnemyStep: 5, Move: 9, FinalToken: 3}

	tl := spin.Plan(out, spin.Options{Tempo: 1, FPS: 30})
	require.Len(t, tl.Legs, 2)

	p, e := tl.Legs[0], tl.Legs[1]
	assert.Equal(t, domain.Player, p.Side)
	assert.Equal(t, 800*time.Millisecond, p.Start)
	assert.Equal(t, 720*time.Millisecond, p.Duration)
	assert.Equal(t, 14, p.Frames[len(p.Frames)-1].Index)

	assert.Equal(t, domain.Enemy, e.Side)
	assert.Equal(t, 14, e.From)
	assert.Equal(t, p.Start+p.Duration+240*time.Millisecond, e.Start)
	assert.Equal(t, 3, e.Frames[len(e.Frames)-1].Index)
	assert.Equal(t, e.Start+e.Duration, tl.Total)
}

func TestPlan_ZeroStep(t *testing.T) {
	tl := spin.Plan(domain.RoundOutcome{StartToken: 5, FinalToken: 5, PlayerStep: 0, EnemyStep: 0}, spin.Options{})
	assert.Empty(t, tl.Legs)
	assert.Equal(t, 800*time.Millisecond, tl.Total)
}

func TestPlan_Reduced(t *testing.T) {
	out := domain.RoundOutcome{StartToken: 10, PlayerStep: 4, EnemyStep: 5, Move: 9, FinalToken: 3}
	tl := spin.Plan(out, spin.Options{Reduced: true})
	require.Len(t, tl.Legs, 2)
	assert.Equal(t, []spin.Frame{{Index: 14}}, tl.Legs[0].Frames)
	assert.Equal(t, []spin.Frame{{Index: 3}}, tl.Legs[1].Frames)
	assert.Zero(t, tl.Total)
}
