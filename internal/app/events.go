package app

import (
	"sync"

	"github.com/flimmbark-source/Rogue-Wheel-Archived/internal/domain"
)

type EventKind string

const (
	EventRoundResolved    EventKind = "round_resolved"
	EventEncounterStarted EventKind = "encounter_started"
)

// Event is a state change on one duel, pushed to watchers.
type Event struct {
	Kind    EventKind
	View    DuelView
	Outcome *domain.RoundOutcome
}

// eventBufferSize bounds each watcher's queue. A watcher that falls this
// far behind misses events rather than stalling the duel.
const eventBufferSize = 16

type broker struct {
	mu   sync.Mutex
	subs map[string]map[chan Event]struct{}
}

func newBroker() *broker {
	return &broker{subs: make(map[string]map[chan Event]struct{})}
}

func (b *broker) subscribe(duelID string) (<-chan Event, func()) {
	ch := make(chan Event, eventBufferSize)

	b.mu.Lock()
	if b.subs[duelID] == nil {
		b.subs[duelID] = make(map[chan Event]struct{})
	}
	b.subs[duelID][ch] = struct{}{}
	b.mu.Unlock()

	cancel := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if _, ok := b.subs[duelID][ch]; ok {
			delete(b.subs[duelID], ch)
			close(ch)
		}
	}
	return ch, cancel
}

func (b *broker) publish(duelID string, ev Event) (dropped int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for ch := range b.subs[duelID] {
		select {
		case ch <- ev:
		default:
			dropped++
		}
	}
	return dropped
}

// closeAll ends every watch on a duel.
func (b *broker) closeAll(duelID string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for ch := range b.subs[duelID] {
		close(ch)
	}
	delete(b.subs, duelID)
}
