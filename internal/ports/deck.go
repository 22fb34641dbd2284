package ports

import (
	"context"

	"github.com/flimmbark-source/Rogue-Wheel-Archived/internal/domain"
)

// DeckStore provides card content: deck templates and enemy profiles.
type DeckStore interface {
	GetDeck(ctx context.Context, deckID string) (domain.Deck, error)
	GetEnemy(ctx context.Context, archetype domain.Archetype) (domain.EnemyProfile, error)
}
