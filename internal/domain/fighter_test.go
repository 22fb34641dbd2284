package domain_test

import (
	"errors"
	"testing"

	"github.com/flimmbark-source/Rogue-Wheel-Archived/internal/domain"
)

func TestDrawOne_FromDeck(t *testing.T) {
	f := domain.Fighter{Deck: []domain.Card{card("a", domain.Attack, 1), card("b", domain.Attack, 2)}}

	got, err := f.DrawOne(zeroRNG())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got.Hand) != 1 || got.Hand[0].ID != "a" {
		t.Errorf("expected hand [a], got %v", got.Hand)
	}
	if len(got.Deck) != 1 || got.Deck[0].ID != "b" {
		t.Errorf("expected deck [b], got %v", got.Deck)
	}
	if len(f.Deck) != 2 || len(f.Hand) != 0 {
		t.Error("receiver was mutated")
	}
}

func TestDrawOne_ReshufflesDiscard(t *testing.T) {
	f := domain.Fighter{Discard: []domain.Card{card("x", domain.Attack, 1)}}

	got, err := f.DrawOne(zeroRNG())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got.Deck) != 0 || len(got.Discard) != 0 {
		t.Errorf("expected empty deck and discard, got deck=%v discard=%v", got.Deck, got.Discard)
	}
	if len(got.Hand) != 1 || got.Hand[0].ID != "x" {
		t.Errorf("expected hand [x], got %v", got.Hand)
	}
}

func TestDrawOne_EmptyPool(t *testing.T) {
	f := domain.Fighter{Name: "T", Hand: []domain.Card{card("h", domain.Special, 3)}}

	got, err := f.DrawOne(zeroRNG())
	if !errors.Is(err, domain.ErrEmptyResourcePool) {
		t.Fatalf("expected ErrEmptyResourcePool, got %v", err)
	}
	if len(got.Hand) != 1 || got.Name != "T" {
		t.Errorf("expected fighter unchanged, got %+v", got)
	}
}

func TestRefillTo_StopsAtTarget(t *testing.T) {
	f := domain.Fighter{Deck: fillers("d", 8)}

	got := f.RefillTo(5, zeroRNG())
	if len(got.Hand) != 5 {
		t.Errorf("expected 5 cards in hand, got %d", len(got.Hand))
	}
	if len(got.Deck) != 3 {
		t.Errorf("expected 3 cards left in deck, got %d", len(got.Deck))
	}
}

func TestRefillTo_RunsOutWithoutLooping(t *testing.T) {
	f := domain.Fighter{Deck: fillers("d", 2), Discard: fillers("x", 1)}

	got := f.RefillTo(5, zeroRNG())
	if len(got.Hand) != 3 {
		t.Errorf("expected hand of min(5, 3)=3, got %d", len(got.Hand))
	}
	if got.CardCount() != 3 {
		t.Errorf("expected 3 owned cards, got %d", got.CardCount())
	}
}

func TestRefillTo_NeverShrinksLargeHand(t *testing.T) {
	f := domain.Fighter{Hand: fillers("h", 6), Deck: fillers("d", 2)}

	got := f.RefillTo(5, zeroRNG())
	if len(got.Hand) != 6 || len(got.Deck) != 2 {
		t.Errorf("expected no draw, got hand=%d deck=%d", len(got.Hand), len(got.Deck))
	}
}

func TestApplyDamage_BlockAbsorbs(t *testing.T) {
	f := domain.Fighter{HP: 20, MaxHP: 20, Block: 2}

	got := f.ApplyDamage(5)
	if got.Block != 0 {
		t.Errorf("expected block 0, got %d", got.Block)
	}
	if got.HP != 17 {
		t.Errorf("expected hp 17, got %d", got.HP)
	}
}

func TestApplyDamage_BlockDecaysByFullAmount(t *testing.T) {
	f := domain.Fighter{HP: 20, MaxHP: 20, Block: 10}

	got := f.ApplyDamage(3)
	if got.HP != 20 {
		t.Errorf("expected no hp loss, got %d", got.HP)
	}
	if got.Block != 7 {
		t.Errorf("expected block 7, got %d", got.Block)
	}
}

func TestApplyDamage_ClampsHP(t *testing.T) {
	f := domain.Fighter{HP: 4, MaxHP: 20}

	if got := f.ApplyDamage(50); got.HP != 0 {
		t.Errorf("expected hp 0, got %d", got.HP)
	}
	if got := f.ApplyDamage(-5); got.HP != 4 {
		t.Errorf("negative damage must not heal, got %d", got.HP)
	}
}

func TestAddAndReduceBlock(t *testing.T) {
	f := domain.Fighter{}.AddBlock(7).AddBlock(30)
	if f.Block != 37 {
		t.Errorf("expected block 37, got %d", f.Block)
	}
	if got := f.ReduceBlock(40); got.Block != 0 {
		t.Errorf("expected block floored at 0, got %d", got.Block)
	}
}

func TestDiscardCard(t *testing.T) {
	f := domain.Fighter{Hand: []domain.Card{card("a", domain.Attack, 1), card("b", domain.Defense, 2)}}

	got, err := f.DiscardCard("a")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got.Hand) != 1 || got.Hand[0].ID != "b" {
		t.Errorf("expected hand [b], got %v", got.Hand)
	}
	if len(got.Discard) != 1 || got.Discard[0].ID != "a" {
		t.Errorf("expected discard [a], got %v", got.Discard)
	}
	if len(f.Hand) != 2 || f.Hand[0].ID != "a" {
		t.Error("receiver was mutated")
	}
}

func TestDiscardCard_Missing(t *testing.T) {
	f := domain.Fighter{Hand: []domain.Card{card("a", domain.Attack, 1)}}

	got, err := f.DiscardCard("zzz")
	if !errors.Is(err, domain.ErrMissingCard) {
		t.Fatalf("expected ErrMissingCard, got %v", err)
	}
	if len(got.Hand) != 1 || len(got.Discard) != 0 {
		t.Errorf("expected fighter unchanged, got %+v", got)
	}
}

func TestCardConservation(t *testing.T) {
	f := domain.Fighter{Deck: fillers("d", 7)}
	r := zeroRNG()

	f = f.RefillTo(5, r)
	for _, c := range f.Hand[:3] {
		var err error
		f, err = f.DiscardCard(c.ID)
		if err != nil {
			t.Fatalf("discard %s: %v", c.ID, err)
		}
	}
	f = f.RefillTo(5, r)
	f = f.RefillTo(7, r)

	if f.CardCount() != 7 {
		t.Fatalf("expected 7 owned cards, got %d", f.CardCount())
	}
	seen := make(map[string]int)
	for _, pile := range [][]domain.Card{f.Deck, f.Hand, f.Discard} {
		for _, c := range pile {
			seen[c.ID]++
		}
	}
	for id, n := range seen {
		if n != 1 {
			t.Errorf("card %s appears %d times", id, n)
		}
	}
}
