package domain

import (
	"cmp"
	"fmt"
	"slices"
)

// PreEffect is a card-attached rule run before numbers are computed.
type PreEffect struct {
	ID       string
	Apply    func(ctx *RoundContext, side Side)
	Describe func(side Side) string
}

// QuickJab queues n immediate damage against the opponent.
func QuickJab(n int) PreEffect {
	return PreEffect{
		ID: "quick_jab",
		Apply: func(ctx *RoundContext, side Side) {
			ctx.ImmediateDamage = append(ctx.ImmediateDamage, DamageInstruction{Target: side.Opponent(), Amount: n})
		},
		Describe: func(Side) string { return fmt.Sprintf("Quick Jab: deal %d now", n) },
	}
}

// Poison lowers the opponent's number by n.
func Poison(n int) PreEffect {
	return PreEffect{
		ID: "poison",
		Apply: func(ctx *RoundContext, side Side) {
			ctx.Adjust[side.Opponent()] -= n
		},
		Describe: func(Side) string { return fmt.Sprintf("Poison: -%d to opponent number", n) },
	}
}

// Focus raises the owner's number by n.
func Focus(n int) PreEffect {
	return PreEffect{
		ID: "focus",
		Apply: func(ctx *RoundContext, side Side) {
			ctx.Adjust[side] += n
		},
		Describe: func(Side) string { return fmt.Sprintf("Focus: +%d to your number", n) },
	}
}

// PreEffectRegistry holds pre-effects indexed by ID.
type PreEffectRegistry struct {
	effects map[string]PreEffect
	order   []string
}

func NewPreEffectRegistry() *PreEffectRegistry {
	return &PreEffectRegistry{effects: make(map[string]PreEffect)}
}

// Register adds e, replacing any effect with the same ID.
func (r *PreEffectRegistry) Register(e PreEffect) {
	if _, exists := r.effects[e.ID]; !exists {
		r.order = append(r.order, e.ID)
	}
	r.effects[e.ID] = e
}

func (r *PreEffectRegistry) Get(id string) (PreEffect, error) {
	e, ok := r.effects[id]
	if !ok {
		return PreEffect{}, fmt.Errorf("%w: %q", ErrUnknownPreEffect, id)
	}
	return e, nil
}

// All returns the registered effects in registration order.
func (r *PreEffectRegistry) All() []PreEffect {
	out := make([]PreEffect, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.effects[id])
	}
	return out
}

// DefaultPreEffects returns a registry with the built-in effects.
func DefaultPreEffects() *PreEffectRegistry {
	r := NewPreEffectRegistry()
	r.Register(QuickJab(1))
	r.Register(Poison(3))
	r.Register(Focus(2))
	return r
}

// Play is one side's committed card for a round.
type Play struct {
	Side Side
	Card Card
}

// OrderPlays sorts plays by card number ascending. Equal numbers put the
// initiative side first.
func OrderPlays(plays []Play, initiative Side) []Play {
	out := slices.Clone(plays)
	slices.SortStableFunc(out, func(a, b Play) int {
		if c := cmp.Compare(a.Card.Number, b.Card.Number); c != 0 {
			return c
		}
		switch {
		case a.Side == initiative && b.Side != initiative:
			return -1
		case b.Side == initiative && a.Side != initiative:
			return 1
		}
		return 0
	})
	return out
}

// RunPreEffects applies every pre-effect of plays in resolution order and
// returns one log line per effect. Immediate damage is only queued on ctx.
func RunPreEffects(ctx *RoundContext, plays []Play, names map[Side]string) []string {
	var lines []string
	for _, p := range OrderPlays(plays, ctx.Initiative) {
		for _, e := range p.Card.Pre {
			if e.Apply == nil {
				continue
			}
			e.Apply(ctx, p.Side)
			desc := e.ID
			if e.Describe != nil {
				desc = e.Describe(p.Side)
			}
			lines = append(lines, fmt.Sprintf("%s pre: %s", names[p.Side], desc))
		}
	}
	return lines
}
