package domain

import "fmt"

type SectionID string

const (
	LargestNumber   SectionID = "Largest Number"
	BiggestReserve  SectionID = "Biggest Reserve"
	StrongestAttack SectionID = "Strongest Attack"
	Momentum        SectionID = "Momentum"
)

// SectionIDs lists the four sections in declaration order.
var SectionIDs = []SectionID{LargestNumber, BiggestReserve, StrongestAttack, Momentum}

func (id SectionID) Valid() bool {
	switch id {
	case LargestNumber, BiggestReserve, StrongestAttack, Momentum:
		return true
	}
	return false
}

// Section owns the inclusive range [Start, End] of wheel slots. The range
// wraps past the last slot when Start > End.
type Section struct {
	ID    SectionID `json:"id"`
	Start int       `json:"start"`
	End   int       `json:"end"`
}

func (s Section) Contains(index int) bool {
	index = mod(index, Slices)
	if s.Start <= s.End {
		return index >= s.Start && index <= s.End
	}
	return index >= s.Start || index <= s.End
}

func (s Section) Len() int {
	return mod(s.End-s.Start, Slices) + 1
}

// SectionAt returns the section owning index.
func SectionAt(index int, sections []Section) (Section, bool) {
	for _, s := range sections {
		if s.Contains(index) {
			return s, true
		}
	}
	return Section{}, false
}

type sizeRange struct {
	id     SectionID
	lo, hi int
}

type sectionLayout struct {
	rolled    [3]sizeRange
	remainder SectionID
}

const (
	minSectionLen       = 1
	maxRemainderSection = 5
)

var sectionLayouts = map[Archetype]sectionLayout{
	Bandit: {
		rolled:    [3]sizeRange{{LargestNumber, 5, 7}, {StrongestAttack, 4, 6}, {BiggestReserve, 2, 4}},
		remainder: Momentum,
	},
	Sorcerer: {
		rolled:    [3]sizeRange{{Momentum, 5, 7}, {BiggestReserve, 4, 6}, {LargestNumber, 2, 4}},
		remainder: StrongestAttack,
	},
	Beast: {
		rolled:    [3]sizeRange{{StrongestAttack, 6, 8}, {LargestNumber, 3, 5}, {BiggestReserve, 1, 3}},
		remainder: Momentum,
	},
}

// GenerateSections partitions the wheel into the four sections with
// archetype-biased sizes. Three sizes are rolled, the fourth takes the
// remainder clamped to [1,5], and any drift from 16 is rebalanced onto the
// largest or smallest section. Order around the ring is shuffled and the
// whole layout is rotated by a random offset.
func GenerateSections(arch Archetype, rng RNG) ([]Section, error) {
	layout, ok := sectionLayouts[arch]
	if !ok {
		return nil, fmt.Errorf("generate sections: %w: %q", ErrUnknownArchetype, arch)
	}

	sizes := make(map[SectionID]int, len(SectionIDs))
	sum := 0
	for _, r := range layout.rolled {
		n := r.lo + rng.Intn(r.hi-r.lo+1)
		sizes[r.id] = n
		sum += n
	}
	sizes[layout.remainder] = Clamp(Slices-sum, minSectionLen, maxRemainderSection)
	rebalance(sizes)

	order := Shuffle(SectionIDs, rng)
	start := rng.Intn(Slices)
	sections := make([]Section, 0, len(order))
	for _, id := range order {
		n := sizes[id]
		sections = append(sections, Section{ID: id, Start: start, End: mod(start+n-1, Slices)})
		start = mod(start+n, Slices)
	}

	if err := ValidateSections(sections); err != nil {
		return nil, fmt.Errorf("generate sections: %w", err)
	}
	return sections, nil
}

func rebalance(sizes map[SectionID]int) {
	for {
		total := 0
		for _, id := range SectionIDs {
			total += sizes[id]
		}
		switch {
		case total > Slices:
			sizes[extremeSection(sizes, true)]--
		case total < Slices:
			sizes[extremeSection(sizes, false)]++
		default:
			return
		}
	}
}

// extremeSection picks the largest (or smallest) section, first in
// declaration order on ties.
func extremeSection(sizes map[SectionID]int, largest bool) SectionID {
	best := SectionIDs[0]
	for _, id := range SectionIDs[1:] {
		if (largest && sizes[id] > sizes[best]) || (!largest && sizes[id] < sizes[best]) {
			best = id
		}
	}
	return best
}

// ValidateSections checks that sections hold each section ID once and cover
// every wheel slot exactly once.
func ValidateSections(sections []Section) error {
	if len(sections) != len(SectionIDs) {
		return fmt.Errorf("%w: want %d sections, got %d", ErrMalformedSections, len(SectionIDs), len(sections))
	}
	seen := make(map[SectionID]bool, len(sections))
	total := 0
	for _, s := range sections {
		if !s.ID.Valid() {
			return fmt.Errorf("%w: unknown section %q", ErrMalformedSections, s.ID)
		}
		if seen[s.ID] {
			return fmt.Errorf("%w: duplicate section %q", ErrMalformedSections, s.ID)
		}
		seen[s.ID] = true
		if s.Start < 0 || s.Start >= Slices || s.End < 0 || s.End >= Slices {
			return fmt.Errorf("%w: %q range [%d,%d] out of bounds", ErrMalformedSections, s.ID, s.Start, s.End)
		}
		total += s.Len()
	}
	if total != Slices {
		return fmt.Errorf("%w: lengths sum to %d", ErrMalformedSections, total)
	}
	for i := range Slices {
		owners := 0
		for _, s := range sections {
			if s.Contains(i) {
				owners++
			}
		}
		if owners != 1 {
			return fmt.Errorf("%w: slot %d owned by %d sections", ErrMalformedSections, i, owners)
		}
	}
	return nil
}
