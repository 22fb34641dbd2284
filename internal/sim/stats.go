package sim

import "github.com/flimmbark-source/Rogue-Wheel-Archived/internal/domain"

type ArchetypeStats struct {
	Games      int     `json:"games"`
	PlayerWins int     `json:"player_wins"`
	WinRate    float64 `json:"win_rate"`
}

// Stats aggregates a batch of games.
type Stats struct {
	Games          int                                  `json:"games"`
	PlayerWins     int                                  `json:"player_wins"`
	EnemyWins      int                                  `json:"enemy_wins"`
	Draws          int                                  `json:"draws"`
	Stalemates     int                                  `json:"stalemates"`
	AvgRounds      float64                              `json:"avg_rounds"`
	ZeroStepRounds int                                  `json:"zero_step_rounds"`
	SkippedRounds  int                                  `json:"skipped_rounds"`
	SectionHits    map[domain.SectionID]int             `json:"section_hits"`
	ByArchetype    map[domain.Archetype]*ArchetypeStats `json:"by_archetype"`
}

func Aggregate(results []GameResult) Stats {
	s := Stats{
		Games:       len(results),
		SectionHits: make(map[domain.SectionID]int),
		ByArchetype: make(map[domain.Archetype]*ArchetypeStats),
	}
	totalRounds := 0
	for _, r := range results {
		totalRounds += r.Rounds
		s.ZeroStepRounds += r.ZeroSteps
		s.SkippedRounds += r.Skipped
		for id, n := range r.SectionHits {
			s.SectionHits[id] += n
		}

		a := s.ByArchetype[r.Archetype]
		if a == nil {
			a = &ArchetypeStats{}
			s.ByArchetype[r.Archetype] = a
		}
		a.Games++

		switch {
		case r.Stalemate:
			s.Stalemates++
		case r.Victor == domain.Player:
			s.PlayerWins++
			a.PlayerWins++
		case r.Victor == domain.Enemy:
			s.EnemyWins++
		default:
			s.Draws++
		}
	}
	if s.Games > 0 {
		s.AvgRounds = float64(totalRounds) / float64(s.Games)
	}
	for _, a := range s.ByArchetype {
		a.WinRate = float64(a.PlayerWins) / float64(a.Games)
	}
	return s
}
