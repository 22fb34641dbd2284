package http

import (
	"github.com/flimmbark-source/Rogue-Wheel-Archived/internal/app"
	"github.com/flimmbark-source/Rogue-Wheel-Archived/internal/domain"
	"github.com/flimmbark-source/Rogue-Wheel-Archived/internal/spin"
)

var sectionColors = map[domain.SectionID]string{
	domain.LargestNumber:   "#10b981",
	domain.BiggestReserve:  "#0ea5e9",
	domain.StrongestAttack: "#f43f5e",
	domain.Momentum:        "#f59e0b",
}

type CreateDuelRequest struct {
	Archetype string  `json:"archetype"`
	Seed      *uint64 `json:"seed"`
}

type ChooseRequest struct {
	CardID string `json:"card_id"`
}

type NextEncounterRequest struct {
	Archetype string `json:"archetype"`
}

// DuelResponse is the JSON shape of a duel snapshot.
type DuelResponse struct {
	ID            string            `json:"id"`
	Seed          uint64            `json:"seed"`
	Archetype     string            `json:"archetype"`
	Phase         string            `json:"phase"`
	Round         int               `json:"round"`
	Token         int               `json:"token"`
	Initiative    string            `json:"initiative"`
	PreviewType   string            `json:"preview_type,omitempty"`
	PendingCardID string            `json:"pending_card_id,omitempty"`
	Player        FighterResponse   `json:"player"`
	Enemy         FighterResponse   `json:"enemy"`
	Sections      []SectionResponse `json:"sections"`
	Log           []string          `json:"log"`
	Record        app.Record        `json:"record"`
	Victor        string            `json:"victor,omitempty"`
}

// FighterResponse hides the enemy's hand; only counts are shown for it.
type FighterResponse struct {
	Name         string         `json:"name"`
	HP           int            `json:"hp"`
	MaxHP        int            `json:"max_hp"`
	Block        int            `json:"block"`
	Hand         []CardResponse `json:"hand,omitempty"`
	HandCount    int            `json:"hand_count"`
	DeckCount    int            `json:"deck_count"`
	DiscardCount int            `json:"discard_count"`
	LastWon      bool           `json:"last_won"`
}

type CardResponse struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Type        string   `json:"type"`
	Number      int      `json:"number"`
	Description string   `json:"description,omitempty"`
	Pre         []string `json:"pre,omitempty"`
}

type SectionResponse struct {
	ID    string `json:"id"`
	Start int    `json:"start"`
	End   int    `json:"end"`
	Color string `json:"color"`
}

type PreviewResponse struct {
	PreviewType string       `json:"preview_type"`
	Duel        DuelResponse `json:"duel"`
}

type ResolveResponse struct {
	Outcome domain.RoundOutcome `json:"outcome"`
	Spin    SpinResponse        `json:"spin"`
	Duel    DuelResponse        `json:"duel"`
}

// EventResponse is one message on a duel's watch stream.
type EventResponse struct {
	Kind    string               `json:"kind"`
	Outcome *domain.RoundOutcome `json:"outcome,omitempty"`
	Spin    *SpinResponse        `json:"spin,omitempty"`
	Duel    DuelResponse         `json:"duel"`
}

type SpinResponse struct {
	TotalMS int64         `json:"total_ms"`
	Legs    []LegResponse `json:"legs"`
}

type LegResponse struct {
	Side       string          `json:"side"`
	From       int             `json:"from"`
	Steps      int             `json:"steps"`
	StartMS    int64           `json:"start_ms"`
	DurationMS int64           `json:"duration_ms"`
	Frames     []FrameResponse `json:"frames"`
}

type FrameResponse struct {
	AtMS  int64 `json:"at_ms"`
	Index int   `json:"index"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func toDuelResponse(v app.DuelView) DuelResponse {
	enc := v.Encounter
	sections := make([]SectionResponse, len(enc.Sections))
	for i, s := range enc.Sections {
		sections[i] = SectionResponse{ID: string(s.ID), Start: s.Start, End: s.End, Color: sectionColors[s.ID]}
	}

	resp := DuelResponse{
		ID:            v.ID,
		Seed:          v.Seed,
		Archetype:     string(enc.Archetype),
		Phase:         string(enc.Phase),
		Round:         enc.Round,
		Token:         enc.Token,
		Initiative:    string(enc.Initiative),
		PreviewType:   string(enc.Enemy.PreviewType),
		PendingCardID: enc.PendingCardID,
		Player:        toFighterResponse(enc.Player, true),
		Enemy:         toFighterResponse(enc.Enemy, false),
		Sections:      sections,
		Log:           enc.Log,
		Record:        v.Record,
	}
	if victor, ok := enc.Victor(); ok {
		resp.Victor = string(victor)
	}
	return resp
}

func toFighterResponse(f domain.Fighter, showHand bool) FighterResponse {
	resp := FighterResponse{
		Name:         f.Name,
		HP:           f.HP,
		MaxHP:        f.MaxHP,
		Block:        f.Block,
		HandCount:    len(f.Hand),
		DeckCount:    len(f.Deck),
		DiscardCount: len(f.Discard),
		LastWon:      f.LastWon,
	}
	if showHand {
		resp.Hand = make([]CardResponse, len(f.Hand))
		for i, c := range f.Hand {
			resp.Hand[i] = toCardResponse(c, domain.Player)
		}
	}
	return resp
}

func toCardResponse(c domain.Card, owner domain.Side) CardResponse {
	resp := CardResponse{
		ID:          c.ID,
		Name:        c.Name,
		Type:        string(c.Type),
		Number:      c.Number,
		Description: c.Description,
	}
	for _, e := range c.Pre {
		if e.Describe != nil {
			resp.Pre = append(resp.Pre, e.Describe(owner))
		}
	}
	return resp
}

func toSpinResponse(tl spin.Timeline) SpinResponse {
	resp := SpinResponse{TotalMS: tl.Total.Milliseconds(), Legs: make([]LegResponse, len(tl.Legs))}
	for i, l := range tl.Legs {
		frames := make([]FrameResponse, len(l.Frames))
		for j, f := range l.Frames {
			frames[j] = FrameResponse{AtMS: f.At.Milliseconds(), Index: f.Index}
		}
		resp.Legs[i] = LegResponse{
			Side:       string(l.Side),
			From:       l.From,
			Steps:      l.Steps,
			StartMS:    l.Start.Milliseconds(),
			DurationMS: l.Duration.Milliseconds(),
			Frames:     frames,
		}
	}
	return resp
}
