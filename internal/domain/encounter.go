package domain

import (
	"fmt"
	"slices"
)

type Phase string

const (
	PhasePreview Phase = "preview"
	PhaseChoose  Phase = "choose"
	PhaseReveal  Phase = "reveal"
	PhaseEnded   Phase = "ended"
)

// Encounter is an immutable snapshot of one duel against one enemy.
// Transitions return a new snapshot; on error the receiver is returned
// unchanged.
type Encounter struct {
	Archetype     Archetype `json:"archetype"`
	EnemyIntro    string    `json:"enemy_intro"`
	Player        Fighter   `json:"player"`
	Enemy         Fighter   `json:"enemy"`
	Sections      []Section `json:"sections"`
	Token         int       `json:"token"`
	Round         int       `json:"round"`
	Initiative    Side      `json:"initiative"`
	Phase         Phase     `json:"phase"`
	PendingCardID string    `json:"pending_card_id,omitempty"`
	Rules         Rules     `json:"-"`
	Log           []string  `json:"log"`
}

// EncounterSetup is the input to NewEncounter. Card slices are used as the
// fighters' starting decks in the given order before shuffling.
type EncounterSetup struct {
	Rules       Rules
	Enemy       EnemyProfile
	PlayerCards []Card
	EnemyCards  []Card
}

// RoundOutcome is the structured readout of a resolved round. Section and
// Winner are nil when the token did not move or the round was skipped.
type RoundOutcome struct {
	Round         int        `json:"round"`
	PlayerCard    *Card      `json:"player_card,omitempty"`
	EnemyCard     *Card      `json:"enemy_card,omitempty"`
	PlayerNumber  int        `json:"player_number"`
	EnemyNumber   int        `json:"enemy_number"`
	PlayerStep    int        `json:"player_step"`
	EnemyStep     int        `json:"enemy_step"`
	Move          int        `json:"move"`
	StartToken    int        `json:"start_token"`
	FinalToken    int        `json:"final_token"`
	Section       *SectionID `json:"section,omitempty"`
	Winner        *Side      `json:"winner,omitempty"`
	PreEffects    []string   `json:"pre_effects,omitempty"`
	Log           []string   `json:"log"`
	Skipped       bool       `json:"skipped"`
	EncounterOver bool       `json:"encounter_over"`
}

// NewEncounter builds fighters from shuffled decks, fills both hands,
// generates the wheel and rolls the opening initiative.
func NewEncounter(setup EncounterSetup, rng RNG) (Encounter, error) {
	sections, err := GenerateSections(setup.Enemy.Archetype, rng)
	if err != nil {
		return Encounter{}, fmt.Errorf("new encounter: %w", err)
	}

	r := setup.Rules
	player := NewFighter(r.PlayerName, r.PlayerMaxHP, Shuffle(setup.PlayerCards, rng)).RefillTo(r.HandSize, rng)
	enemy := NewFighter(setup.Enemy.Name, r.EnemyMaxHP, Shuffle(setup.EnemyCards, rng)).RefillTo(r.HandSize, rng)

	initiative := Player
	if rng.Intn(2) == 1 {
		initiative = Enemy
	}

	enc := Encounter{
		Archetype:  setup.Enemy.Archetype,
		EnemyIntro: setup.Enemy.Intro,
		Player:     player,
		Enemy:      enemy,
		Sections:   sections,
		Round:      1,
		Initiative: initiative,
		Phase:      PhasePreview,
		Rules:      r,
	}
	if setup.Enemy.Intro != "" {
		enc = enc.withLog(setup.Enemy.Intro)
	}
	return enc, nil
}

// StartNextEncounter replaces a finished encounter with a fresh one.
func StartNextEncounter(e Encounter, setup EncounterSetup, rng RNG) (Encounter, error) {
	if e.Phase != PhaseEnded {
		return e, fmt.Errorf("next encounter in %s phase: %w", e.Phase, ErrInvalidTransition)
	}
	return NewEncounter(setup, rng)
}

// StartPreview exposes the enemy's intended card type for the round.
func (e Encounter) StartPreview(rng RNG) (Encounter, CardType, error) {
	if e.Phase != PhasePreview {
		return e, "", fmt.Errorf("start preview in %s phase: %w", e.Phase, ErrInvalidTransition)
	}
	t := PickPreviewType(e.Enemy.Hand, rng)
	e.Enemy.PreviewType = t
	e.PendingCardID = ""
	e.Phase = PhaseChoose
	return e, t, nil
}

// ChooseCard commits the player's card for the round.
func (e Encounter) ChooseCard(cardID string) (Encounter, error) {
	if e.Phase != PhaseChoose {
		return e, fmt.Errorf("choose card in %s phase: %w", e.Phase, ErrInvalidTransition)
	}
	if _, ok := e.Player.HandCard(cardID); !ok {
		return e, fmt.Errorf("choose card %q: %w", cardID, ErrMissingCard)
	}
	e.PendingCardID = cardID
	e.Phase = PhaseReveal
	return e, nil
}

// ResolveRound plays the committed card against the enemy's pick and
// advances to the next round or to the end of the encounter.
func (e Encounter) ResolveRound(rng RNG) (Encounter, RoundOutcome, error) {
	if e.Phase != PhaseReveal {
		return e, RoundOutcome{}, fmt.Errorf("resolve round in %s phase: %w", e.Phase, ErrInvalidTransition)
	}

	out := RoundOutcome{Round: e.Round, StartToken: e.Token, FinalToken: e.Token}
	names := e.names()

	pCard, ok := e.Player.HandCard(e.PendingCardID)
	if !ok {
		return e.skipRound("Resolution skipped: missing card", out, rng)
	}
	eCard, ok := PickEnemyCard(e.Enemy, rng)
	if !ok {
		return e.skipRound("Enemy has no cards to play.", out, rng)
	}
	out.PlayerCard, out.EnemyCard = &pCard, &eCard

	ctx := NewRoundContext(e.Initiative)
	lines := RunPreEffects(ctx, []Play{{Side: Player, Card: pCard}, {Side: Enemy, Card: eCard}}, names)
	out.PreEffects = slices.Clone(lines)

	d := Duelists{Player: e.Player, Enemy: e.Enemy}
	for _, dmg := range ctx.ImmediateDamage {
		d = d.With(dmg.Target, d.Get(dmg.Target).ApplyDamage(dmg.Amount))
		lines = append(lines, fmt.Sprintf("%s %s %d immediate damage.", names[dmg.Target], verb(dmg.Target, "take", "takes"), dmg.Amount))
	}

	pNum := ComputeNumber(pCard, ctx.Adjust[Player])
	eNum := ComputeNumber(eCard, ctx.Adjust[Enemy])
	out.PlayerNumber, out.EnemyNumber = pNum, eNum
	out.PlayerStep, out.EnemyStep = pNum%Slices, eNum%Slices
	out.Move = TotalMove(pNum, eNum)

	next := e
	nextInit := e.Initiative

	if out.Move == 0 {
		lines = append(lines, "No movement this round (0-step).")
	} else {
		next.Token = Advance(e.Token, out.PlayerStep+out.EnemyStep)
		out.FinalToken = next.Token

		sec, found := SectionAt(next.Token, e.Sections)
		if !found {
			lines = append(lines, "No section found.")
		} else {
			lines = append(lines, fmt.Sprintf("Token lands on %d (%s).", next.Token, sec.ID))
			winner := DetermineWinner(sec.ID, RoundInput{
				Initiative:   e.Initiative,
				Fighters:     d,
				PlayerCard:   pCard,
				EnemyCard:    eCard,
				PlayerNumber: pNum,
				EnemyNumber:  eNum,
			})
			winCard := pCard
			if winner == Enemy {
				winCard = eCard
			}

			var effect []string
			d, nextInit, effect = ApplyEffect(winner, winCard, d, names, rng)
			lines = append(lines, effect...)

			d.Player.LastWon = winner == Player
			d.Enemy.LastWon = winner == Enemy
			out.Section = &sec.ID
			out.Winner = &winner
		}
	}

	// Both cards are known to be in hand here.
	d.Player, _ = d.Player.DiscardCard(pCard.ID)
	d.Enemy, _ = d.Enemy.DiscardCard(eCard.ID)
	lines = append(lines, defeatLines(d, names)...)

	next.Player, next.Enemy = d.Player, d.Enemy
	next = next.withLog(lines...).AdvanceRound(nextInit, rng)

	out.Log = lines
	out.EncounterOver = next.Phase == PhaseEnded
	return next, out, nil
}

func (e Encounter) skipRound(reason string, out RoundOutcome, rng RNG) (Encounter, RoundOutcome, error) {
	next := e.withLog(reason).AdvanceRound(e.Initiative, rng)
	out.Skipped = true
	out.Log = []string{reason}
	out.EncounterOver = next.Phase == PhaseEnded
	return next, out, nil
}

// AdvanceRound ends the encounter if either fighter is down. Otherwise
// both fighters lose 1 block and refill their hands, and a new round
// starts with next holding initiative.
func (e Encounter) AdvanceRound(next Side, rng RNG) Encounter {
	e.PendingCardID = ""
	if e.Player.Defeated() || e.Enemy.Defeated() {
		e.Phase = PhaseEnded
		return e
	}
	e.Player = e.Player.ReduceBlock(1).RefillTo(e.Rules.HandSize, rng)
	e.Enemy = e.Enemy.ReduceBlock(1).RefillTo(e.Rules.HandSize, rng)
	e.Enemy.PreviewType = ""
	e.Round++
	e.Initiative = next
	e.Phase = PhasePreview
	return e
}

// Victor reports the surviving side of an ended encounter. A double
// knockout has no victor.
func (e Encounter) Victor() (Side, bool) {
	if e.Phase != PhaseEnded {
		return "", false
	}
	switch {
	case e.Enemy.Defeated() && !e.Player.Defeated():
		return Player, true
	case e.Player.Defeated() && !e.Enemy.Defeated():
		return Enemy, true
	}
	return "", false
}

func (e Encounter) names() map[Side]string {
	return map[Side]string{Player: "You", Enemy: e.Enemy.Name}
}

// withLog appends lines, keeping only the most recent Rules.LogLimit.
func (e Encounter) withLog(lines ...string) Encounter {
	log := append(slices.Clone(e.Log), lines...)
	if limit := e.Rules.LogLimit; limit > 0 && len(log) > limit {
		log = slices.Clone(log[len(log)-limit:])
	}
	e.Log = log
	return e
}

func defeatLines(d Duelists, names map[Side]string) []string {
	var lines []string
	if d.Player.Defeated() {
		lines = append(lines, "You are defeated.")
	}
	if d.Enemy.Defeated() {
		lines = append(lines, fmt.Sprintf("%s is defeated.", names[Enemy]))
	}
	return lines
}
