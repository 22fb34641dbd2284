package domain

// PickPreviewType picks uniformly among the distinct card types in hand,
// in hand order. An empty hand picks any of the three types.
func PickPreviewType(hand []Card, rng RNG) CardType {
	var types []CardType
	seen := make(map[CardType]bool, len(CardTypes))
	for _, c := range hand {
		if !seen[c.Type] {
			seen[c.Type] = true
			types = append(types, c.Type)
		}
	}
	if len(types) == 0 {
		return CardTypes[rng.Intn(len(CardTypes))]
	}
	return types[rng.Intn(len(types))]
}

// PickEnemyCard plays a random hand card of the previewed type, falling
// back to any hand card. It reports false when the hand is empty.
func PickEnemyCard(f Fighter, rng RNG) (Card, bool) {
	var pool []Card
	for _, c := range f.Hand {
		if f.PreviewType == "" || c.Type == f.PreviewType {
			pool = append(pool, c)
		}
	}
	if len(pool) == 0 {
		pool = f.Hand
	}
	if len(pool) == 0 {
		return Card{}, false
	}
	return pool[rng.Intn(len(pool))], true
}
