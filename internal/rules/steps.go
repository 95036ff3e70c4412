package rules

import (
	"mtg-engine/internal/action"
	"mtg-engine/internal/ids"
	"mtg-engine/internal/observer"
	"mtg-engine/internal/state"
)

// advanceStepAction moves the turn structure to newStep, assigning
// newActive as the active player and resetting priority to them. Entering
// Combat(DeclareAttackers) leaves HasPriority false until
// attackersDeclaredAction restores it, gating the normal priority round
// behind attacker declaration.
type advanceStepAction struct {
	newStep   state.Step
	newActive ids.PlayerID
}

func (a advanceStepAction) Apply(s *state.GameState) {
	s.GameStep.Step = a.newStep
	s.GameStep.ActivePlayer = a.newActive
	s.Priority = a.newActive

	if a.newStep.Phase == state.PhaseCombat && a.newStep.Combat == state.DeclareAttackers {
		s.HasPriority = false
		return
	}
	s.HasPriority = a.newStep.HasPriority()
}

// StepsObserver advances the turn structure: automatically through steps
// that never hold a priority round (the pre-game starting steps, Untap,
// Cleanup), and otherwise once PriorityObserver announces a completed
// priority round.
type StepsObserver struct {
	observer.Base
}

// NewStepsObserver returns a ready StepsObserver.
func NewStepsObserver() *StepsObserver { return &StepsObserver{} }

func (o *StepsObserver) ObserveAction(subject action.Action, s *state.GameState, sink observer.Sink) {
	if isNoActions(subject) {
		if !s.GameStep.Step.HasPriority() {
			sink(action.DomainPayload(o.advance(s)))
		}
		return
	}

	if subject.Payload.Kind != action.KindDomain {
		return
	}
	if _, ok := subject.Payload.Domain.(roundCompleteAction); !ok {
		return
	}

	sink(action.DomainPayload(o.advance(s)))
}

func (o *StepsObserver) advance(s *state.GameState) advanceStepAction {
	next, turnEnds := nextStep(s.GameStep.Step)
	newActive := s.GameStep.ActivePlayer
	if turnEnds {
		if na, ok := s.NextPlayer(s.GameStep.ActivePlayer); ok {
			newActive = na
		}
	}
	return advanceStepAction{newStep: next, newActive: newActive}
}

func (o *StepsObserver) Controller() observer.Controller { return observer.GameController }

func (o *StepsObserver) CloneBox() observer.Observer {
	clone := *o
	return &clone
}

// nextStep implements the standard MTG turn structure's step order:
// untap, upkeep, draw, precombat main, five combat steps, postcombat
// main, end of turn, cleanup, then back to untap of the next player's
// turn.
func nextStep(s state.Step) (state.Step, bool) {
	switch s.Phase {
	case state.PhaseStarting:
		switch s.Starting {
		case state.Init:
			return state.StartingPhase(state.ChoosingTurnOrder), false
		case state.ChoosingTurnOrder:
			return state.StartingPhase(state.InitialHandDraw), false
		default: // InitialHandDraw
			return state.BeginningPhase(state.Untap), false
		}
	case state.PhaseBeginning:
		switch s.Begin {
		case state.Untap:
			return state.BeginningPhase(state.Upkeep), false
		case state.Upkeep:
			return state.BeginningPhase(state.Draw), false
		default: // Draw
			return state.PreCombatMainPhase(), false
		}
	case state.PhasePreCombatMain:
		return state.CombatPhase(state.StartOfCombat), false
	case state.PhaseCombat:
		switch s.Combat {
		case state.StartOfCombat:
			return state.CombatPhase(state.DeclareAttackers), false
		case state.DeclareAttackers:
			return state.CombatPhase(state.DeclareBlockers), false
		case state.DeclareBlockers:
			return state.CombatPhase(state.CombatDamage), false
		case state.CombatDamage:
			return state.CombatPhase(state.EndOfCombat), false
		default: // EndOfCombat
			return state.PostCombatMainPhase(), false
		}
	case state.PhasePostCombatMain:
		return state.EndPhase(state.EndOfTurn), false
	default: // PhaseEnd
		switch s.End {
		case state.EndOfTurn:
			return state.EndPhase(state.Cleanup), false
		default: // Cleanup
			return state.BeginningPhase(state.Untap), true
		}
	}
}
