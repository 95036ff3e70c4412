// Package engineerr holds the engine's typed error values: protocol-level
// errors returned to callers, and internal invariant violations that are
// fatal to the current tick.
package engineerr

import (
	"fmt"

	"mtg-engine/internal/ids"
)

// InputKind discriminates the shapes of InputError.
type InputKind int

const (
	// NoSession means player input arrived with no session open.
	NoSession InputKind = iota
	// WrongPlayer means input arrived from a player other than the one the
	// open session is waiting on.
	WrongPlayer
	// Rejected means the session handler itself rejected the input.
	Rejected
	// UnimplementedObserver means the session handler has no real
	// ConsumeInput implementation.
	UnimplementedObserver
)

// InputError is returned by Engine.PlayerInput; it is recoverable and
// leaves engine state unchanged.
type InputError struct {
	Kind    InputKind
	Message string // set only for Rejected
}

func (e *InputError) Error() string {
	switch e.Kind {
	case NoSession:
		return "no input session is open"
	case WrongPlayer:
		return "input came from a player other than the one being waited on"
	case Rejected:
		return fmt.Sprintf("input rejected: %s", e.Message)
	case UnimplementedObserver:
		return "input session handler has no ConsumeInput implementation"
	default:
		return "unknown input error"
	}
}

// NewRejected builds a Rejected InputError carrying the handler's message.
func NewRejected(message string) *InputError {
	return &InputError{Kind: Rejected, Message: message}
}

// NoSessionError is the InputError value for PlayerInput called with no
// session open.
var NoSessionError = &InputError{Kind: NoSession}

// WrongPlayerError is the InputError value for PlayerInput called by the
// wrong player.
var WrongPlayerError = &InputError{Kind: WrongPlayer}

// UnimplementedObserverError is the InputError value surfaced when the
// session handler has no real ConsumeInput implementation.
var UnimplementedObserverError = &InputError{Kind: UnimplementedObserver}

// QueueProtocolError reports a PickReplacement/PickNextAction call made
// while the queue was not in the matching ambiguous state, or one naming
// an id outside the current candidate/staging set. Fatal to the current
// tick.
type QueueProtocolError struct {
	Message string
}

func (e *QueueProtocolError) Error() string {
	return fmt.Sprintf("queue protocol violation: %s", e.Message)
}

// MissingObserverError reports an input session pointing at an observer
// that has since been removed. Internal bug; fatal.
type MissingObserverError struct {
	Observer ids.ObserverID
}

func (e *MissingObserverError) Error() string {
	return fmt.Sprintf("missing observer %s", e.Observer)
}

// ZoneLookupError reports a zone id with no corresponding zone in game
// state. Internal bug; fatal.
type ZoneLookupError struct {
	Zone ids.ZoneID
}

func (e *ZoneLookupError) Error() string {
	return fmt.Sprintf("missing zone %s", e.Zone)
}
