package domain_test

import (
	"github.com/flimmbark-source/Rogue-Wheel-Archived/internal/domain"
)

// deterministicRNG returns values from a pre-set sequence.
type deterministicRNG struct {
	values []int
	idx    int
}

func (r *deterministicRNG) Intn(n int) int {
	v := r.values[r.idx%len(r.values)] % n
	r.idx++
	return v
}

func zeroRNG() *deterministicRNG {
	return &deterministicRNG{values: []int{0}}
}

func card(id string, t domain.CardType, n int, pre ...domain.PreEffect) domain.Card {
	return domain.Card{ID: id, Name: id, Type: t, Number: n, Pre: pre}
}

func fillers(prefix string, n int) []domain.Card {
	cards := make([]domain.Card, n)
	for i := range n {
		cards[i] = card(prefix+string(rune('a'+i)), domain.Defense, 1)
	}
	return cards
}

// quarterSections lays the four sections out as equal quarters:
// Largest 0-3, Reserve 4-7, Strongest 8-11, Momentum 12-15.
func quarterSections() []domain.Section {
	return []domain.Section{
		{ID: domain.LargestNumber, Start: 0, End: 3},
		{ID: domain.BiggestReserve, Start: 4, End: 7},
		{ID: domain.StrongestAttack, Start: 8, End: 11},
		{ID: domain.Momentum, Start: 12, End: 15},
	}
}

// revealEncounter builds an encounter waiting on resolution of the first
// player hand card.
func revealEncounter(playerHand, enemyHand []domain.Card) domain.Encounter {
	return domain.Encounter{
		Archetype:     domain.Bandit,
		Player:        domain.Fighter{Name: "Wanderer", HP: 40, MaxHP: 40, Hand: playerHand},
		Enemy:         domain.Fighter{Name: "Shade Bandit", HP: 32, MaxHP: 32, Hand: enemyHand},
		Sections:      quarterSections(),
		Round:         1,
		Initiative:    domain.Player,
		Phase:         domain.PhaseReveal,
		PendingCardID: playerHand[0].ID,
		Rules:         domain.DefaultRules(),
	}
}
