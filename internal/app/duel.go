package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"

	"github.com/google/uuid"

	"github.com/flimmbark-source/Rogue-Wheel-Archived/internal/domain"
	"github.com/flimmbark-source/Rogue-Wheel-Archived/internal/ports"
)

// ErrCapacity is returned when the service already holds its maximum
// number of live duels.
var ErrCapacity = errors.New("duel capacity reached")

// RNGFactory builds the random source for a duel from its seed.
type RNGFactory func(seed uint64) domain.RNG

// NewDuelRequest is the application-level input (no HTTP types).
type NewDuelRequest struct {
	Archetype string
	Seed      *uint64
}

// Record tallies finished encounters within one duel.
type Record struct {
	Encounters int `json:"encounters"`
	Wins       int `json:"wins"`
	Losses     int `json:"losses"`
}

// DuelView is a read-only snapshot of a duel.
type DuelView struct {
	ID        string
	Seed      uint64
	Encounter domain.Encounter
	Record    Record
}

type session struct {
	mu     sync.Mutex
	id     string
	seed   uint64
	rng    domain.RNG
	enc    domain.Encounter
	record Record
}

func (s *session) view() DuelView {
	return DuelView{ID: s.id, Seed: s.seed, Encounter: s.enc, Record: s.record}
}

// DuelService owns the current snapshot of every live duel. Each duel is
// advanced under its own lock, so one round resolves fully before the
// next transition on that duel starts.
type DuelService struct {
	store       ports.DeckStore
	rules       domain.Rules
	newRNG      RNGFactory
	logger      *slog.Logger
	newID       func() string
	newSeed     func() uint64
	defaultArch domain.Archetype
	maxDuels    int

	mu     sync.RWMutex
	duels  map[string]*session
	events *broker
}

type Option func(*DuelService)

func WithIDs(f func() string) Option {
	return func(s *DuelService) { s.newID = f }
}

func WithSeeds(f func() uint64) Option {
	return func(s *DuelService) { s.newSeed = f }
}

func WithDefaultArchetype(a domain.Archetype) Option {
	return func(s *DuelService) { s.defaultArch = a }
}

// WithMaxDuels caps live duels. Zero or less means unlimited.
func WithMaxDuels(n int) Option {
	return func(s *DuelService) { s.maxDuels = n }
}

func NewDuelService(store ports.DeckStore, rules domain.Rules, newRNG RNGFactory, logger *slog.Logger, opts ...Option) *DuelService {
	s := &DuelService{
		store:       store,
		rules:       rules,
		newRNG:      newRNG,
		logger:      logger,
		newID:       uuid.NewString,
		newSeed:     rand.Uint64,
		defaultArch: domain.Bandit,
		duels:       make(map[string]*session),
		events:      newBroker(),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *DuelService) NewDuel(ctx context.Context, req NewDuelRequest) (DuelView, error) {
	arch, err := s.archetype(req.Archetype)
	if err != nil {
		return DuelView{}, err
	}

	seed := s.newSeed()
	if req.Seed != nil {
		seed = *req.Seed
	}
	r := s.newRNG(seed)

	enc, err := s.buildEncounter(ctx, arch, r)
	if err != nil {
		return DuelView{}, err
	}

	sess := &session{id: s.newID(), seed: seed, rng: r, enc: enc}

	s.mu.Lock()
	if s.maxDuels > 0 && len(s.duels) >= s.maxDuels {
		s.mu.Unlock()
		return DuelView{}, ErrCapacity
	}
	s.duels[sess.id] = sess
	s.mu.Unlock()

	s.logger.Info("duel created",
		"duel_id", sess.id,
		"seed", seed,
		"archetype", arch,
		"enemy", enc.Enemy.Name,
		"initiative", enc.Initiative,
	)
	return sess.view(), nil
}

func (s *DuelService) Get(_ context.Context, id string) (DuelView, error) {
	sess, err := s.session(id)
	if err != nil {
		return DuelView{}, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.view(), nil
}

// Delete abandons a duel.
func (s *DuelService) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.duels[id]; !ok {
		return fmt.Errorf("%w: %q", domain.ErrDuelNotFound, id)
	}
	delete(s.duels, id)
	s.events.closeAll(id)
	return nil
}

// Watch streams state changes of a duel until cancel is called or the
// duel is deleted, at which point the channel is closed.
func (s *DuelService) Watch(_ context.Context, id string) (<-chan Event, func(), error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.duels[id]; !ok {
		return nil, nil, fmt.Errorf("%w: %q", domain.ErrDuelNotFound, id)
	}
	ch, cancel := s.events.subscribe(id)
	return ch, cancel, nil
}

func (s *DuelService) StartPreview(_ context.Context, id string) (DuelView, domain.CardType, error) {
	sess, err := s.session(id)
	if err != nil {
		return DuelView{}, "", err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	enc, preview, err := sess.enc.StartPreview(sess.rng)
	if err != nil {
		s.rejected(sess, "start_preview", err)
		return sess.view(), "", err
	}
	sess.enc = enc
	s.logger.Debug("preview", "duel_id", id, "round", enc.Round, "preview_type", preview)
	return sess.view(), preview, nil
}

func (s *DuelService) ChooseCard(_ context.Context, id, cardID string) (DuelView, error) {
	sess, err := s.session(id)
	if err != nil {
		return DuelView{}, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	enc, err := sess.enc.ChooseCard(cardID)
	if err != nil {
		s.rejected(sess, "choose_card", err)
		return sess.view(), err
	}
	sess.enc = enc
	return sess.view(), nil
}

func (s *DuelService) ResolveRound(_ context.Context, id string) (DuelView, domain.RoundOutcome, error) {
	sess, err := s.session(id)
	if err != nil {
		return DuelView{}, domain.RoundOutcome{}, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	enc, out, err := sess.enc.ResolveRound(sess.rng)
	if err != nil {
		s.rejected(sess, "resolve_round", err)
		return sess.view(), domain.RoundOutcome{}, err
	}
	sess.enc = enc

	if out.Skipped {
		s.logger.Warn("round skipped", "duel_id", id, "round", out.Round, "reason", out.Log)
	} else {
		s.logger.Info("round resolved", roundAttrs(id, out)...)
	}

	if out.EncounterOver {
		sess.record.Encounters++
		victor, ok := enc.Victor()
		switch {
		case ok && victor == domain.Player:
			sess.record.Wins++
		case ok && victor == domain.Enemy:
			sess.record.Losses++
		}
		s.logger.Info("encounter ended",
			"duel_id", id,
			"rounds", enc.Round,
			"victor", victor,
			"player_hp", enc.Player.HP,
			"enemy_hp", enc.Enemy.HP,
		)
	}
	s.emit(sess, EventRoundResolved, &out)
	return sess.view(), out, nil
}

// NextEncounter starts a fresh encounter on a finished duel. An empty
// archetype picks one at random.
func (s *DuelService) NextEncounter(ctx context.Context, id, archetype string) (DuelView, error) {
	sess, err := s.session(id)
	if err != nil {
		return DuelView{}, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.enc.Phase != domain.PhaseEnded {
		err := fmt.Errorf("next encounter in %s phase: %w", sess.enc.Phase, domain.ErrInvalidTransition)
		s.rejected(sess, "next_encounter", err)
		return sess.view(), err
	}

	var arch domain.Archetype
	if archetype == "" {
		arch = domain.Archetypes[sess.rng.Intn(len(domain.Archetypes))]
	} else if arch, err = domain.ParseArchetype(archetype); err != nil {
		return sess.view(), err
	}

	setup, err := LoadSetup(ctx, s.store, s.rules, arch, s.newID)
	if err != nil {
		return sess.view(), err
	}
	enc, err := domain.StartNextEncounter(sess.enc, setup, sess.rng)
	if err != nil {
		return sess.view(), fmt.Errorf("start encounter: %w", err)
	}
	sess.enc = enc

	s.logger.Info("encounter started", "duel_id", id, "archetype", arch, "enemy", enc.Enemy.Name)
	s.emit(sess, EventEncounterStarted, nil)
	return sess.view(), nil
}

func (s *DuelService) buildEncounter(ctx context.Context, arch domain.Archetype, r domain.RNG) (domain.Encounter, error) {
	setup, err := LoadSetup(ctx, s.store, s.rules, arch, s.newID)
	if err != nil {
		return domain.Encounter{}, err
	}
	enc, err := domain.NewEncounter(setup, r)
	if err != nil {
		return domain.Encounter{}, fmt.Errorf("new encounter: %w", err)
	}
	return enc, nil
}

func (s *DuelService) archetype(raw string) (domain.Archetype, error) {
	if raw == "" {
		return s.defaultArch, nil
	}
	return domain.ParseArchetype(raw)
}

func (s *DuelService) session(id string) (*session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.duels[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrDuelNotFound, id)
	}
	return sess, nil
}

func (s *DuelService) rejected(sess *session, op string, err error) {
	s.logger.Warn("transition rejected",
		"duel_id", sess.id,
		"op", op,
		"phase", sess.enc.Phase,
		"error", err,
	)
}

func (s *DuelService) emit(sess *session, kind EventKind, out *domain.RoundOutcome) {
	if n := s.events.publish(sess.id, Event{Kind: kind, View: sess.view(), Outcome: out}); n > 0 {
		s.logger.Warn("watchers lagging, events dropped", "duel_id", sess.id, "kind", kind, "dropped", n)
	}
}

func roundAttrs(id string, out domain.RoundOutcome) []any {
	attrs := []any{
		"duel_id", id,
		"round", out.Round,
		"player_number", out.PlayerNumber,
		"enemy_number", out.EnemyNumber,
		"move", out.Move,
		"token", out.FinalToken,
	}
	if out.Section != nil {
		attrs = append(attrs, "section", *out.Section)
	}
	if out.Winner != nil {
		attrs = append(attrs, "winner", *out.Winner)
	}
	return attrs
}
