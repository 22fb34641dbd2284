package decks

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/flimmbark-source/Rogue-Wheel-Archived/internal/domain"
)

//go:embed data/catalogue.yaml
var embeddedCatalogue []byte

type cardDoc struct {
	ID          string   `yaml:"id"`
	Name        string   `yaml:"name"`
	Type        string   `yaml:"type"`
	Number      int      `yaml:"number"`
	Description string   `yaml:"description"`
	Pre         []string `yaml:"pre"`
}

type deckDoc struct {
	ID    string    `yaml:"id"`
	Name  string    `yaml:"name"`
	Cards []cardDoc `yaml:"cards"`
}

type enemyDoc struct {
	Archetype string   `yaml:"archetype"`
	Name      string   `yaml:"name"`
	Intro     string   `yaml:"intro"`
	Decks     []string `yaml:"decks"`
}

type catalogueDoc struct {
	Decks   []deckDoc  `yaml:"decks"`
	Enemies []enemyDoc `yaml:"enemies"`
}

// Catalogue is parsed card content.
type Catalogue struct {
	Decks   map[string]domain.Deck
	Enemies map[domain.Archetype]domain.EnemyProfile
}

// Parse decodes a YAML catalogue, resolving pre-effect ids through effects.
func Parse(raw []byte, effects *domain.PreEffectRegistry) (Catalogue, error) {
	var doc catalogueDoc
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return Catalogue{}, fmt.Errorf("parse catalogue: %w", err)
	}

	cat := Catalogue{
		Decks:   make(map[string]domain.Deck, len(doc.Decks)),
		Enemies: make(map[domain.Archetype]domain.EnemyProfile, len(doc.Enemies)),
	}
	for _, d := range doc.Decks {
		if d.ID == "" {
			return Catalogue{}, fmt.Errorf("deck without id")
		}
		if _, dup := cat.Decks[d.ID]; dup {
			return Catalogue{}, fmt.Errorf("duplicate deck %q", d.ID)
		}
		cards := make([]domain.Card, 0, len(d.Cards))
		for _, c := range d.Cards {
			card, err := toCard(c, effects)
			if err != nil {
				return Catalogue{}, fmt.Errorf("deck %s: %w", d.ID, err)
			}
			cards = append(cards, card)
		}
		cat.Decks[d.ID] = domain.Deck{ID: d.ID, Name: d.Name, Cards: cards}
	}

	for _, e := range doc.Enemies {
		arch, err := domain.ParseArchetype(e.Archetype)
		if err != nil {
			return Catalogue{}, fmt.Errorf("enemy %q: %w", e.Name, err)
		}
		for _, id := range e.Decks {
			if _, ok := cat.Decks[id]; !ok {
				return Catalogue{}, fmt.Errorf("enemy %q: deck %q: %w", e.Name, id, domain.ErrDeckNotFound)
			}
		}
		cat.Enemies[arch] = domain.EnemyProfile{
			Archetype: arch,
			Name:      e.Name,
			Intro:     e.Intro,
			DeckIDs:   e.Decks,
		}
	}
	return cat, nil
}

func toCard(c cardDoc, effects *domain.PreEffectRegistry) (domain.Card, error) {
	t := domain.CardType(c.Type)
	if !t.Valid() {
		return domain.Card{}, fmt.Errorf("card %q: invalid type %q", c.Name, c.Type)
	}
	if c.Number < 1 {
		return domain.Card{}, fmt.Errorf("card %q: number must be positive, got %d", c.Name, c.Number)
	}
	card := domain.Card{
		ID:          c.ID,
		Name:        c.Name,
		Type:        t,
		Number:      c.Number,
		Description: c.Description,
	}
	for _, id := range c.Pre {
		e, err := effects.Get(id)
		if err != nil {
			return domain.Card{}, fmt.Errorf("card %q: %w", c.Name, err)
		}
		card.Pre = append(card.Pre, e)
	}
	return card, nil
}

// EmbeddedStore serves card content from a YAML catalogue, parsed lazily
// on first use.
type EmbeddedStore struct {
	raw     []byte
	effects *domain.PreEffectRegistry

	once sync.Once
	cat  Catalogue
	err  error
}

// NewEmbeddedStore serves the catalogue compiled into the binary.
func NewEmbeddedStore(effects *domain.PreEffectRegistry) *EmbeddedStore {
	return NewStore(embeddedCatalogue, effects)
}

func NewStore(raw []byte, effects *domain.PreEffectRegistry) *EmbeddedStore {
	return &EmbeddedStore{raw: raw, effects: effects}
}

// NewFileStore serves a catalogue read from disk.
func NewFileStore(path string, effects *domain.PreEffectRegistry) (*EmbeddedStore, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalogue %s: %w", path, err)
	}
	return NewStore(raw, effects), nil
}

func (s *EmbeddedStore) init() {
	s.cat, s.err = Parse(s.raw, s.effects)
}

// Load parses the catalogue now instead of on first lookup.
func (s *EmbeddedStore) Load() error {
	s.once.Do(s.init)
	return s.err
}

func (s *EmbeddedStore) GetDeck(_ context.Context, deckID string) (domain.Deck, error) {
	s.once.Do(s.init)
	if s.err != nil {
		return domain.Deck{}, s.err
	}
	deck, ok := s.cat.Decks[deckID]
	if !ok {
		return domain.Deck{}, fmt.Errorf("%w: %q", domain.ErrDeckNotFound, deckID)
	}
	return deck, nil
}

func (s *EmbeddedStore) GetEnemy(_ context.Context, arch domain.Archetype) (domain.EnemyProfile, error) {
	s.once.Do(s.init)
	if s.err != nil {
		return domain.EnemyProfile{}, s.err
	}
	e, ok := s.cat.Enemies[arch]
	if !ok {
		return domain.EnemyProfile{}, fmt.Errorf("%w: %q", domain.ErrUnknownArchetype, arch)
	}
	return e, nil
}
