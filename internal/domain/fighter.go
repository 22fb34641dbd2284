package domain

import (
	"fmt"
	"slices"
)

// Fighter is a combatant snapshot. Every method returns a new Fighter and
// leaves the receiver's slices untouched. A card the fighter owns lives in
// exactly one of Deck, Hand and Discard.
type Fighter struct {
	Name        string   `json:"name"`
	HP          int      `json:"hp"`
	MaxHP       int      `json:"max_hp"`
	Block       int      `json:"block"`
	Deck        []Card   `json:"deck"`
	Hand        []Card   `json:"hand"`
	Discard     []Card   `json:"discard"`
	PreviewType CardType `json:"preview_type,omitempty"`
	LastWon     bool     `json:"last_won"`
}

func NewFighter(name string, maxHP int, deck []Card) Fighter {
	return Fighter{
		Name:  name,
		HP:    maxHP,
		MaxHP: maxHP,
		Deck:  slices.Clone(deck),
	}
}

func (f Fighter) clone() Fighter {
	f.Deck = slices.Clone(f.Deck)
	f.Hand = slices.Clone(f.Hand)
	f.Discard = slices.Clone(f.Discard)
	return f
}

// DrawOne moves the top card of the deck into the hand. An empty deck is
// first rebuilt by shuffling the discard pile into it.
func (f Fighter) DrawOne(rng RNG) (Fighter, error) {
	if len(f.Deck) == 0 && len(f.Discard) == 0 {
		return f, ErrEmptyResourcePool
	}
	next := f.clone()
	if len(next.Deck) == 0 {
		next.Deck = Shuffle(next.Discard, rng)
		next.Discard = nil
	}
	next.Hand = append(next.Hand, next.Deck[0])
	next.Deck = next.Deck[1:]
	return next, nil
}

// RefillTo draws until the hand holds target cards or nothing is left to draw.
func (f Fighter) RefillTo(target int, rng RNG) Fighter {
	for len(f.Hand) < target {
		next, err := f.DrawOne(rng)
		if err != nil {
			break
		}
		f = next
	}
	return f
}

// ApplyDamage absorbs with block first. Block is reduced by the full
// incoming amount, not just the absorbed part.
func (f Fighter) ApplyDamage(amount int) Fighter {
	if amount < 0 {
		amount = 0
	}
	raw := max(0, amount-f.Block)
	f.HP = Clamp(f.HP-raw, 0, f.MaxHP)
	f.Block = max(0, f.Block-amount)
	return f
}

func (f Fighter) AddBlock(amount int) Fighter {
	f.Block += max(0, amount)
	return f
}

func (f Fighter) ReduceBlock(amount int) Fighter {
	f.Block = max(0, f.Block-amount)
	return f
}

// DiscardCard moves a card from hand to discard.
func (f Fighter) DiscardCard(cardID string) (Fighter, error) {
	idx := slices.IndexFunc(f.Hand, func(c Card) bool { return c.ID == cardID })
	if idx < 0 {
		return f, fmt.Errorf("discard %q: %w", cardID, ErrMissingCard)
	}
	next := f.clone()
	card := next.Hand[idx]
	next.Hand = slices.Delete(next.Hand, idx, idx+1)
	next.Discard = append(next.Discard, card)
	return next, nil
}

func (f Fighter) HandCard(cardID string) (Card, bool) {
	for _, c := range f.Hand {
		if c.ID == cardID {
			return c, true
		}
	}
	return Card{}, false
}

// CardCount is the number of cards owned across all three piles.
func (f Fighter) CardCount() int {
	return len(f.Deck) + len(f.Hand) + len(f.Discard)
}

func (f Fighter) Defeated() bool {
	return f.HP <= 0
}
