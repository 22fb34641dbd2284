package domain

import "fmt"

const (
	critThreshold    = 12
	critBonus        = 2
	shieldBashAt     = 8
	shieldBashDamage = 1
	sapAmount        = 2
	effectBase       = 2
	specialModulus   = 3
)

// Duelists is the pair of fighters a rule reads or rewrites.
type Duelists struct {
	Player Fighter
	Enemy  Fighter
}

func (d Duelists) Get(s Side) Fighter {
	if s == Player {
		return d.Player
	}
	return d.Enemy
}

func (d Duelists) With(s Side, f Fighter) Duelists {
	if s == Player {
		d.Player = f
	} else {
		d.Enemy = f
	}
	return d
}

// RoundInput is everything winner determination looks at. Fighters must
// still hold the played cards in hand.
type RoundInput struct {
	Initiative   Side
	Fighters     Duelists
	PlayerCard   Card
	EnemyCard    Card
	PlayerNumber int
	EnemyNumber  int
}

// DetermineWinner applies the rule of the landing section. Every rule
// falls back to initiative on a tie.
func DetermineWinner(section SectionID, in RoundInput) Side {
	switch section {
	case LargestNumber:
		return higher(in.PlayerNumber, in.EnemyNumber, in.Initiative)
	case BiggestReserve:
		return higher(len(in.Fighters.Player.Hand)-1, len(in.Fighters.Enemy.Hand)-1, in.Initiative)
	case StrongestAttack:
		return higher(
			attackScore(in.PlayerCard, in.EnemyCard),
			attackScore(in.EnemyCard, in.PlayerCard),
			in.Initiative,
		)
	case Momentum:
		p, e := in.Fighters.Player.LastWon, in.Fighters.Enemy.LastWon
		switch {
		case p && !e:
			return Player
		case e && !p:
			return Enemy
		}
	}
	return in.Initiative
}

func higher(player, enemy int, initiative Side) Side {
	switch {
	case player > enemy:
		return Player
	case enemy > player:
		return Enemy
	}
	return initiative
}

// attackScore is own Attack number minus the opponent's Defense number,
// using printed card numbers.
func attackScore(own, opp Card) int {
	score := 0
	if own.Type == Attack {
		score += own.Number
	}
	if opp.Type == Defense {
		score -= opp.Number
	}
	return score
}

// ApplyEffect resolves the winning card's effect. It returns the updated
// fighters, the initiative for the next round and the log lines produced.
func ApplyEffect(winner Side, card Card, d Duelists, names map[Side]string, rng RNG) (Duelists, Side, []string) {
	loser := winner.Opponent()
	var lines []string

	switch card.Type {
	case Attack:
		dmg := card.Number/2 + effectBase
		d = d.With(loser, d.Get(loser).ApplyDamage(dmg))
		lines = append(lines, fmt.Sprintf("%s %s for %d.", names[winner], verb(winner, "hit", "hits"), dmg))
		if card.Number >= critThreshold {
			d = d.With(loser, d.Get(loser).ApplyDamage(critBonus))
			lines = append(lines, fmt.Sprintf("Critical hit! +%d damage.", critBonus))
		}
	case Defense:
		amt := card.Number/2 + effectBase
		d = d.With(winner, d.Get(winner).AddBlock(amt))
		lines = append(lines, fmt.Sprintf("%s %s %d block.", names[winner], verb(winner, "gain", "gains"), amt))
		if card.Number >= shieldBashAt {
			d = d.With(loser, d.Get(loser).ApplyDamage(shieldBashDamage))
			lines = append(lines, fmt.Sprintf("Shield bash for %d.", shieldBashDamage))
		}
	case Special:
		switch card.Number % specialModulus {
		case 0:
			lines = append(lines, fmt.Sprintf("%s %s initiative.", names[winner], verb(winner, "seize", "seizes")))
		case 1:
			f, err := d.Get(winner).DrawOne(rng)
			if err != nil {
				lines = append(lines, fmt.Sprintf("%s %s nothing to draw.", names[winner], verb(winner, "have", "has")))
				break
			}
			d = d.With(winner, f)
			lines = append(lines, fmt.Sprintf("%s %s a card.", names[winner], verb(winner, "draw", "draws")))
		case 2:
			d = d.With(loser, d.Get(loser).ReduceBlock(sapAmount))
			lines = append(lines, fmt.Sprintf("Block is sapped by %d.", sapAmount))
		}
	}
	return d, winner, lines
}

func verb(s Side, second, third string) string {
	if s == Player {
		return second
	}
	return third
}
