package domain

// DamageInstruction is immediate damage queued by a pre-effect.
type DamageInstruction struct {
	Target Side `json:"target"`
	Amount int  `json:"amount"`
}

// RoundContext is the scratch state of one resolution. It is created fresh
// per round and dropped once the round resolves.
type RoundContext struct {
	Initiative      Side
	Adjust          map[Side]int
	Flags           map[string]bool
	ImmediateDamage []DamageInstruction
}

func NewRoundContext(initiative Side) *RoundContext {
	return &RoundContext{
		Initiative: initiative,
		Adjust:     map[Side]int{Player: 0, Enemy: 0},
		Flags:      make(map[string]bool),
	}
}

// ComputeNumber is the card's number after adjustments, floored at 0.
func ComputeNumber(card Card, adjust int) int {
	return max(0, card.Number+adjust)
}
