// Package spin replays a resolved round as a timed token animation. It
// only reads outcomes; final positions always come from the engine.
package spin

import (
	"math"
	"time"

	"github.com/flimmbark-source/Rogue-Wheel-Archived/internal/domain"
)

const (
	PreEffectDelay = 300 * time.Millisecond
	PostPreDelay   = 500 * time.Millisecond
	BetweenMoves   = 240 * time.Millisecond

	BaseDuration = 400 * time.Millisecond
	PerStep      = 80 * time.Millisecond
	MinDuration  = 300 * time.Millisecond
	MaxDuration  = 2000 * time.Millisecond

	defaultFPS = 30
)

func EaseInOutCubic(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	return 1 - math.Pow(-2*t+2, 3)/2
}

// Duration is how long a spin of steps slots takes. Tempo scales the
// clamped duration; 2 plays twice as fast. Non-positive tempo means 1.
func Duration(steps int, tempo float64) time.Duration {
	if steps <= 0 {
		return 0
	}
	d := BaseDuration + time.Duration(steps)*PerStep
	d = min(max(d, MinDuration), MaxDuration)
	return scale(d, tempo)
}

func scale(d time.Duration, tempo float64) time.Duration {
	if tempo <= 0 {
		return d
	}
	return time.Duration(float64(d) / tempo)
}

// Frame is the token position shown at offset At.
type Frame struct {
	At    time.Duration
	Index int
}

// Tween samples an eased walk of steps slots from index over d. The last
// frame always sits exactly on the destination.
func Tween(from, steps int, d time.Duration, frames int, ease func(float64) float64) []Frame {
	dest := domain.Advance(from, steps)
	if steps <= 0 || frames < 1 || d <= 0 {
		return []Frame{{At: 0, Index: dest}}
	}
	out := make([]Frame, 0, frames+1)
	for i := 0; i <= frames; i++ {
		t := float64(i) / float64(frames)
		progressed := int(math.Floor(ease(t) * float64(steps)))
		out = append(out, Frame{
			At:    time.Duration(t * float64(d)),
			Index: domain.Advance(from, progressed),
		})
	}
	out[len(out)-1].Index = dest
	return out
}

// Leg is one fighter's sub-move.
type Leg struct {
	Side     domain.Side
	From     int
	Steps    int
	Start    time.Duration
	Duration time.Duration
	Frames   []Frame
}

type Timeline struct {
	Legs  []Leg
	Total time.Duration
}

type Options struct {
	Tempo   float64
	FPS     int
	Reduced bool
}

// Plan lays out the animation of a resolved round: a pause for
// pre-effects, the player's move, a short gap, then the enemy's move.
// Zero-step and skipped rounds have no legs.
func Plan(out domain.RoundOutcome, opts Options) Timeline {
	if opts.Reduced {
		return planReduced(out)
	}
	fps := opts.FPS
	if fps <= 0 {
		fps = defaultFPS
	}

	at := scale(PreEffectDelay+PostPreDelay, opts.Tempo)
	if out.Skipped || out.Move == 0 {
		return Timeline{Total: at}
	}

	var tl Timeline
	token := out.StartToken
	moves := []struct {
		side  domain.Side
		steps int
	}{{domain.Player, out.PlayerStep}, {domain.Enemy, out.EnemyStep}}

	for i, m := range moves {
		if i > 0 {
			at += scale(BetweenMoves, opts.Tempo)
		}
		d := Duration(m.steps, opts.Tempo)
		frames := Tween(token, m.steps, d, int(d.Seconds()*float64(fps)), EaseInOutCubic)
		for j := range frames {
			frames[j].At += at
		}
		tl.Legs = append(tl.Legs, Leg{Side: m.side, From: token, Steps: m.steps, Start: at, Duration: d, Frames: frames})
		token = domain.Advance(token, m.steps)
		at += d
	}
	tl.Total = at
	return tl
}

func planReduced(out domain.RoundOutcome) Timeline {
	if out.Skipped || out.Move == 0 {
		return Timeline{}
	}
	mid := domain.Advance(out.StartToken, out.PlayerStep)
	return Timeline{Legs: []Leg{
		{Side: domain.Player, From: out.StartToken, Steps: out.PlayerStep, Frames: []Frame{{Index: mid}}},
		{Side: domain.Enemy, From: mid, Steps: out.EnemyStep, Frames: []Frame{{Index: out.FinalToken}}},
	}}
}
