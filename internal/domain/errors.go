package domain

import "errors"

var (
	ErrInvalidTransition = errors.New("operation not allowed in current phase")
	ErrEmptyResourcePool = errors.New("deck and discard are both empty")
	ErrMissingCard       = errors.New("card not found")
	ErrMalformedSections = errors.New("sections do not partition the wheel")
	ErrDuelNotFound      = errors.New("duel not found")
	ErrDeckNotFound      = errors.New("deck not found")
	ErrUnknownArchetype  = errors.New("unknown archetype")
	ErrUnknownPreEffect  = errors.New("unknown pre-effect")
)
