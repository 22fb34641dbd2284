package domain

import "fmt"

// RNG abstracts randomness for deterministic testing.
type RNG interface {
	Intn(n int) int
}

// Side identifies one of the two combatants.
type Side string

const (
	Player Side = "player"
	Enemy  Side = "enemy"
)

func (s Side) Opponent() Side {
	if s == Player {
		return Enemy
	}
	return Player
}

type CardType string

const (
	Attack  CardType = "Attack"
	Defense CardType = "Defense"
	Special CardType = "Special"
)

// CardTypes lists every card type in display order.
var CardTypes = []CardType{Attack, Defense, Special}

func (t CardType) Valid() bool {
	switch t {
	case Attack, Defense, Special:
		return true
	}
	return false
}

// Card is an immutable playable value. Identity is by ID.
type Card struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Type        CardType    `json:"type"`
	Number      int         `json:"number"`
	Description string      `json:"description,omitempty"`
	Pre         []PreEffect `json:"-"`
}

// Deck is a named card list used as a template. Build stamps out
// playable copies with fresh identities.
type Deck struct {
	ID    string
	Name  string
	Cards []Card
}

func (d Deck) Build(newID func() string) []Card {
	out := make([]Card, len(d.Cards))
	for i, c := range d.Cards {
		c.ID = newID()
		c.Pre = append([]PreEffect(nil), c.Pre...)
		out[i] = c
	}
	return out
}

// Archetype biases an enemy's deck and the wheel layout.
type Archetype string

const (
	Bandit   Archetype = "bandit"
	Sorcerer Archetype = "sorcerer"
	Beast    Archetype = "beast"
)

var Archetypes = []Archetype{Bandit, Sorcerer, Beast}

func ParseArchetype(s string) (Archetype, error) {
	for _, a := range Archetypes {
		if string(a) == s {
			return a, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownArchetype, s)
}

// EnemyProfile describes an opponent: its name, intro line and the decks
// its starting pool is built from.
type EnemyProfile struct {
	Archetype Archetype
	Name      string
	Intro     string
	DeckIDs   []string
}

// Rules holds the fixed numbers of an encounter.
type Rules struct {
	HandSize    int
	PlayerMaxHP int
	EnemyMaxHP  int
	PlayerName  string
	LogLimit    int
}

func DefaultRules() Rules {
	return Rules{
		HandSize:    5,
		PlayerMaxHP: 40,
		EnemyMaxHP:  32,
		PlayerName:  "Wanderer",
		LogLimit:    8,
	}
}
