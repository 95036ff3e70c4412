// Package observer defines the capability contract rule modules implement
// to watch, react to, and replace actions as they move through the
// engine.
package observer

import (
	"mtg-engine/internal/action"
	"mtg-engine/internal/engineerr"
	"mtg-engine/internal/ids"
	"mtg-engine/internal/state"
)

// Controller governs ordering tie-breaks: an action belongs to the Game
// itself, or to a specific player.
type Controller struct {
	IsPlayer bool
	Player   ids.PlayerID
}

// GameController is the Controller value for game-owned observers.
var GameController = Controller{}

// PlayerController is the Controller value for a given player's observers.
func PlayerController(p ids.PlayerID) Controller {
	return Controller{IsPlayer: true, Player: p}
}

// Input is a single piece of player input directed at whichever observer
// currently holds the input session. Payload is domain-defined (for the
// base rules in this repository, one of the types in package rules).
type Input struct {
	Source  ids.PlayerID
	Payload any
}

// Sink collects actions a callback emits. Implementations append each
// payload, wrapped into a fresh Action by the caller (the engine), so
// observers never construct Action values themselves.
type Sink func(action.Payload)

// Observer is the capability carrier rule modules, card effects, and
// player agents implement. Every method but Controller and CloneBox is
// optional in the sense that Base supplies a default; embed it and
// override only what's needed.
type Observer interface {
	// SetID is called once, at attach, before this observer can observe
	// anything.
	SetID(ids.ObserverID)
	// ID returns the id set by SetID, or the zero ObserverID before attach.
	ID() ids.ObserverID

	// Alive is checked after every broadcast; observers reporting false are
	// removed from the engine.
	Alive(*state.GameState) bool

	// ProposeReplacement inspects (never mutates) the subject action and
	// optionally proposes a replacement. Must be a pure inspection.
	ProposeReplacement(subject action.Action, s *state.GameState) (action.DomainAction, bool)

	// ObserveAction runs after subject has been applied; it may emit any
	// number of payloads through sink. Emission order from one observer is
	// preserved; order across observers is not implied.
	ObserveAction(subject action.Action, s *state.GameState, sink Sink)

	// ConsumeInput runs only when this observer is the current session
	// handler. A non-nil error (typically an engineerr.InputError) is
	// surfaced to the caller of Engine.PlayerInput without emitting any
	// actions.
	ConsumeInput(in Input, s *state.GameState, sink Sink) error

	// Controller governs ordering tie-breaks for actions this observer
	// emits.
	Controller() Controller

	// CloneBox returns an independent copy of this observer; observers are
	// value-semantic, so cloning the engine clones every attached
	// observer.
	CloneBox() Observer
}

// Base supplies no-op defaults for every Observer method except
// Controller and CloneBox, which have no sensible default and must be
// implemented by the embedder.
type Base struct {
	id ids.ObserverID
}

func (b *Base) SetID(id ids.ObserverID) { b.id = id }
func (b *Base) ID() ids.ObserverID      { return b.id }

func (b *Base) Alive(*state.GameState) bool { return true }

func (b *Base) ProposeReplacement(action.Action, *state.GameState) (action.DomainAction, bool) {
	return nil, false
}

func (b *Base) ObserveAction(action.Action, *state.GameState, Sink) {}

func (b *Base) ConsumeInput(Input, *state.GameState, Sink) error {
	return engineerr.UnimplementedObserverError
}
