package app

import (
	"context"
	"fmt"

	"github.com/flimmbark-source/Rogue-Wheel-Archived/internal/domain"
	"github.com/flimmbark-source/Rogue-Wheel-Archived/internal/ports"
)

// PlayerDeckID is the catalogue deck every duel hands the player.
const PlayerDeckID = "player_starter"

// LoadSetup assembles an encounter against the given archetype: the
// player's starter deck and the union of the enemy profile's decks, each
// card stamped with a fresh id.
func LoadSetup(ctx context.Context, store ports.DeckStore, rules domain.Rules, arch domain.Archetype, newID func() string) (domain.EncounterSetup, error) {
	profile, err := store.GetEnemy(ctx, arch)
	if err != nil {
		return domain.EncounterSetup{}, fmt.Errorf("get enemy: %w", err)
	}

	player, err := store.GetDeck(ctx, PlayerDeckID)
	if err != nil {
		return domain.EncounterSetup{}, fmt.Errorf("get player deck: %w", err)
	}

	var enemyCards []domain.Card
	for _, id := range profile.DeckIDs {
		deck, err := store.GetDeck(ctx, id)
		if err != nil {
			return domain.EncounterSetup{}, fmt.Errorf("get enemy deck: %w", err)
		}
		enemyCards = append(enemyCards, deck.Build(newID)...)
	}

	return domain.EncounterSetup{
		Rules:       rules,
		Enemy:       profile,
		PlayerCards: player.Build(newID),
		EnemyCards:  enemyCards,
	}, nil
}
