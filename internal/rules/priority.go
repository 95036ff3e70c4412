package rules

import (
	"mtg-engine/internal/action"
	"mtg-engine/internal/engineerr"
	"mtg-engine/internal/ids"
	"mtg-engine/internal/observer"
	"mtg-engine/internal/state"
)

// PriorityInputKind discriminates the shapes of input PriorityObserver
// accepts while it holds the input session.
type PriorityInputKind int

const (
	// PassPriority hands priority to the next player in turn order.
	PassPriority PriorityInputKind = iota
)

// PriorityInput is the payload PriorityObserver expects from
// Engine.PlayerInput while it is the session handler.
type PriorityInput struct {
	Kind PriorityInputKind
}

// passPriorityAction moves game_state.priority to next without otherwise
// touching the turn structure.
type passPriorityAction struct {
	next ids.PlayerID
}

func (a passPriorityAction) Apply(s *state.GameState) {
	s.Priority = a.next
}

// roundCompleteAction is pure bookkeeping: it carries no state change of
// its own, existing only so StepsObserver can recognize, via a type
// assertion rather than a string tag, that every player passed in
// succession and the current step is over.
type roundCompleteAction struct{}

func (roundCompleteAction) Apply(*state.GameState) {}

// PriorityObserver hands priority around the table one player at a time
// and announces a completed round once it returns to whoever held it when
// the round began.
type PriorityObserver struct {
	observer.Base

	roundStartPlayer ids.PlayerID
	lastSeenStep     state.Step
	initialized      bool
}

// NewPriorityObserver returns a PriorityObserver with no round latched
// yet; it latches onto whatever player currently holds priority the
// first time it sees the idle pulse.
func NewPriorityObserver() *PriorityObserver {
	return &PriorityObserver{}
}

func (o *PriorityObserver) ObserveAction(subject action.Action, s *state.GameState, sink observer.Sink) {
	if !isNoActions(subject) {
		return
	}
	if !s.HasPriority || !s.GameStep.Step.HasPriority() {
		return
	}
	if !o.initialized || !o.lastSeenStep.Equal(s.GameStep.Step) {
		o.roundStartPlayer = s.Priority
		o.lastSeenStep = s.GameStep.Step
		o.initialized = true
	}
	sink(action.EnginePayload(action.EngineAction{
		Kind:    action.RequestInput,
		Request: action.InputRequest{FromPlayer: s.Priority, InputType: "priority"},
	}))
}

func (o *PriorityObserver) ConsumeInput(in observer.Input, s *state.GameState, sink observer.Sink) error {
	pi, ok := in.Payload.(PriorityInput)
	if !ok {
		return engineerr.NewRejected("priority observer expects a PriorityInput payload")
	}

	switch pi.Kind {
	case PassPriority:
		next, ok := s.NextPlayer(s.Priority)
		if !ok {
			next = s.Priority
		}
		sink(action.DomainPayload(passPriorityAction{next: next}))
		if next == o.roundStartPlayer {
			sink(action.DomainPayload(roundCompleteAction{}))
		}
	default:
		return engineerr.NewRejected("priority observer does not recognize this input kind")
	}

	sink(action.EnginePayload(action.EngineAction{Kind: action.EndInput}))
	return nil
}

func (o *PriorityObserver) Controller() observer.Controller { return observer.GameController }

func (o *PriorityObserver) CloneBox() observer.Observer {
	clone := *o
	return &clone
}
