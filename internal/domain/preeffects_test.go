package domain_test

import (
	"errors"
	"testing"

	"github.com/flimmbark-source/Rogue-Wheel-Archived/internal/domain"
)

func TestOrderPlays_TieGoesToInitiative(t *testing.T) {
	plays := []domain.Play{
		{Side: domain.Player, Card: card("p", domain.Attack, 5)},
		{Side: domain.Enemy, Card: card("e", domain.Attack, 5)},
	}

	got := domain.OrderPlays(plays, domain.Player)
	if got[0].Side != domain.Player || got[1].Side != domain.Enemy {
		t.Errorf("initiative=player: expected [player enemy], got [%s %s]", got[0].Side, got[1].Side)
	}

	got = domain.OrderPlays(plays, domain.Enemy)
	if got[0].Side != domain.Enemy || got[1].Side != domain.Player {
		t.Errorf("initiative=enemy: expected [enemy player], got [%s %s]", got[0].Side, got[1].Side)
	}
	if plays[0].Side != domain.Player {
		t.Error("input slice was reordered")
	}
}

func TestOrderPlays_LowerNumberFirst(t *testing.T) {
	plays := []domain.Play{
		{Side: domain.Player, Card: card("p", domain.Attack, 9)},
		{Side: domain.Enemy, Card: card("e", domain.Attack, 2)},
	}
	got := domain.OrderPlays(plays, domain.Player)
	if got[0].Side != domain.Enemy {
		t.Errorf("expected enemy's lower card first, got %s", got[0].Side)
	}
}

func TestRunPreEffects(t *testing.T) {
	ctx := domain.NewRoundContext(domain.Player)
	plays := []domain.Play{
		{Side: domain.Player, Card: card("p", domain.Attack, 5, domain.Poison(3), domain.QuickJab(1))},
		{Side: domain.Enemy, Card: card("e", domain.Special, 3, domain.Focus(2))},
	}
	names := map[domain.Side]string{domain.Player: "You", domain.Enemy: "Shade Bandit"}

	lines := domain.RunPreEffects(ctx, plays, names)

	want := []string{
		"Shade Bandit pre: Focus: +2 to your number",
		"You pre: Poison: -3 to opponent number",
		"You pre: Quick Jab: deal 1 now",
	}
	if len(lines) != len(want) {
		t.Fatalf("expected %d lines, got %v", len(want), lines)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d: expected %q, got %q", i, want[i], lines[i])
		}
	}
	if ctx.Adjust[domain.Enemy] != -1 {
		t.Errorf("expected enemy adjust -1, got %d", ctx.Adjust[domain.Enemy])
	}
	if ctx.Adjust[domain.Player] != 0 {
		t.Errorf("expected player adjust 0, got %d", ctx.Adjust[domain.Player])
	}
	if len(ctx.ImmediateDamage) != 1 || ctx.ImmediateDamage[0] != (domain.DamageInstruction{Target: domain.Enemy, Amount: 1}) {
		t.Errorf("unexpected immediate damage queue: %v", ctx.ImmediateDamage)
	}
}

func TestComputeNumber_FlooredAtZero(t *testing.T) {
	if got := domain.ComputeNumber(card("c", domain.Attack, 2), -3); got != 0 {
		t.Errorf("expected 0, got %d", got)
	}
	if got := domain.ComputeNumber(card("c", domain.Attack, 7), 2); got != 9 {
		t.Errorf("expected 9, got %d", got)
	}
}

func TestPreEffectRegistry(t *testing.T) {
	r := domain.DefaultPreEffects()

	all := r.All()
	ids := []string{"quick_jab", "poison", "focus"}
	if len(all) != len(ids) {
		t.Fatalf("expected %d effects, got %d", len(ids), len(all))
	}
	for i, id := range ids {
		if all[i].ID != id {
			t.Errorf("position %d: expected %s, got %s", i, id, all[i].ID)
		}
	}

	if _, err := r.Get("poison"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if _, err := r.Get("regen"); !errors.Is(err, domain.ErrUnknownPreEffect) {
		t.Errorf("expected ErrUnknownPreEffect, got %v", err)
	}

	r.Register(domain.Poison(5))
	if len(r.All()) != 3 {
		t.Error("re-registering an ID must replace, not append")
	}
	e, _ := r.Get("poison")
	if got := e.Describe(domain.Player); got != "Poison: -5 to opponent number" {
		t.Errorf("expected replaced effect, got %q", got)
	}
}
