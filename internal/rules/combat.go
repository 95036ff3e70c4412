package rules

import (
	"mtg-engine/internal/action"
	"mtg-engine/internal/engineerr"
	"mtg-engine/internal/observer"
	"mtg-engine/internal/state"
)

// AttackersInputKind discriminates the input AttackersObserver accepts.
type AttackersInputKind int

const (
	// Finished means the active player is done declaring attackers.
	Finished AttackersInputKind = iota
)

// AttackersInput is the payload AttackersObserver expects while it holds
// the input session during Combat(DeclareAttackers).
type AttackersInput struct {
	Kind AttackersInputKind
}

// attackersDeclaredAction restores the normal priority round at
// Combat(DeclareAttackers) once the active player has finished declaring.
type attackersDeclaredAction struct{}

func (attackersDeclaredAction) Apply(s *state.GameState) {
	s.HasPriority = true
}

// AttackersObserver is a stub coordinator for the declare-attackers step:
// it gives the active player a conversational window before priority
// opens up to both players, but does not itself model attacking
// creatures, blocking, or damage — that belongs to a combat system riding
// on top of this hook.
type AttackersObserver struct {
	observer.Base
}

// NewAttackersObserver returns a ready AttackersObserver.
func NewAttackersObserver() *AttackersObserver { return &AttackersObserver{} }

func (o *AttackersObserver) ObserveAction(subject action.Action, s *state.GameState, sink observer.Sink) {
	if !isNoActions(subject) {
		return
	}
	if s.GameStep.Step.Phase != state.PhaseCombat || s.GameStep.Step.Combat != state.DeclareAttackers {
		return
	}
	if s.HasPriority {
		return // attackers already declared this step
	}

	sink(action.EnginePayload(action.EngineAction{
		Kind: action.RequestInput,
		Request: action.InputRequest{
			FromPlayer: s.GameStep.ActivePlayer,
			InputType:  "declare_attackers",
		},
	}))
}

func (o *AttackersObserver) ConsumeInput(in observer.Input, _ *state.GameState, sink observer.Sink) error {
	ai, ok := in.Payload.(AttackersInput)
	if !ok {
		return engineerr.NewRejected("attackers observer expects an AttackersInput payload")
	}
	if ai.Kind != Finished {
		return engineerr.NewRejected("attackers observer does not recognize this input kind")
	}

	sink(action.DomainPayload(attackersDeclaredAction{}))
	sink(action.EnginePayload(action.EngineAction{Kind: action.EndInput}))
	return nil
}

func (o *AttackersObserver) Controller() observer.Controller { return observer.GameController }

func (o *AttackersObserver) CloneBox() observer.Observer {
	clone := *o
	return &clone
}
