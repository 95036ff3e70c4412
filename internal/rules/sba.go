package rules

import (
	"mtg-engine/internal/action"
	"mtg-engine/internal/observer"
	"mtg-engine/internal/state"
)

// StateBasedActionObserver is a stub for the state-based-action checks
// left as future work: the contract (propose a replacement for whatever
// subject is currently being checked) is wired in and exercised by the
// engine's replacement protocol, but the rule set itself — zero life,
// empty library draws, and the rest of rule 704 — has no implementation
// yet.
type StateBasedActionObserver struct {
	observer.Base
}

// NewStateBasedActionObserver returns a ready StateBasedActionObserver.
func NewStateBasedActionObserver() *StateBasedActionObserver {
	return &StateBasedActionObserver{}
}

func (o *StateBasedActionObserver) ProposeReplacement(action.Action, *state.GameState) (action.DomainAction, bool) {
	return nil, false
}

func (o *StateBasedActionObserver) Controller() observer.Controller { return observer.GameController }

func (o *StateBasedActionObserver) CloneBox() observer.Observer {
	clone := *o
	return &clone
}
