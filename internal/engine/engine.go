// Package engine implements the single-threaded tick loop: apply one
// action per tick, broadcast it to every observer, and surface
// player-input and stall suspension points to the caller.
package engine

import (
	"mtg-engine/internal/action"
	"mtg-engine/internal/engineerr"
	"mtg-engine/internal/ids"
	"mtg-engine/internal/logger"
	"mtg-engine/internal/observer"
	"mtg-engine/internal/queue"
	"mtg-engine/internal/state"

	"go.uber.org/zap"
)

// TickKind discriminates the TickResult variants.
type TickKind int

const (
	// Ticked means exactly one action was applied and broadcast.
	Ticked TickKind = iota
	// NeedPlayerInput means the engine is waiting on PlayerInput; the queue
	// was not touched (or was touched only as far as synthesizing the
	// implicit disambiguation request).
	NeedPlayerInput
	// Stalled means two consecutive Empty cycles produced nothing.
	Stalled
)

// TickResult is the return value of Tick.
type TickResult struct {
	Kind   TickKind
	Action action.Action // meaningful only when Kind == Ticked
}

// session holds the state of an open input session: who it expects input
// from, an opaque presentation tag, and which observer handles it.
type session struct {
	request action.InputRequest
	handler ids.ObserverID
}

// Engine holds all mutable state for a single game: game state, the
// action queue, the observer set, the id allocators, the clock, and at
// most one open input session live on this single value. Nothing outside
// it is shared mutable state.
type Engine struct {
	state *state.GameState
	queue *queue.Queue

	observers map[ids.ObserverID]observer.Observer
	session   *session

	observerIDs *ids.ObserverAllocator
	actionIDs   *ids.ActionAllocator

	selfID    ids.ObserverID
	timestamp action.Timestamp

	emptyStreak int
}

// New builds an Engine around an already-constructed GameState (normally
// produced by GameBuilder), an ordering policy, and the id allocators the
// builder minted ids from — callers keep allocating from the same
// allocators so ids stay globally unique for the engine's lifetime.
func New(s *state.GameState, policy queue.OrderingPolicy, observerIDs *ids.ObserverAllocator, actionIDs *ids.ActionAllocator) *Engine {
	return &Engine{
		state:       s,
		queue:       queue.New(policy),
		observers:   map[ids.ObserverID]observer.Observer{},
		observerIDs: observerIDs,
		actionIDs:   actionIDs,
		selfID:      observerIDs.Next(),
	}
}

// AttachObserver mints an id, installs obs, and returns its new id. obs
// observes starting at the next broadcast; it never observes the action
// that attached it.
func (e *Engine) AttachObserver(obs observer.Observer) ids.ObserverID {
	id := e.observerIDs.Next()
	obs.SetID(id)
	e.observers[id] = obs
	logger.Get().Debug("observer attached", zap.Uint64("observer_id", id.Ordinal()))
	return id
}

// Enqueue is a test hook: it wraps payload in a fresh Action attributed to
// source and pushes it straight into the queue, bypassing any broadcast.
func (e *Engine) Enqueue(payload action.Payload, source ids.ObserverID) {
	e.queue.Add(action.New(e.actionIDs.Next(), payload, source, e.timestamp))
}

// ExpectingInputFrom reports which player the open input session (if any)
// is waiting on.
func (e *Engine) ExpectingInputFrom() (ids.PlayerID, bool) {
	if e.session == nil {
		return ids.PlayerID{}, false
	}
	return e.session.request.FromPlayer, true
}

// State exposes the game state read-only to callers (tests, presentation
// layers). Engine internals are the only code that mutates it.
func (e *Engine) State() *state.GameState { return e.state }

// Tick advances the engine by at most one applied action.
func (e *Engine) Tick() TickResult {
	if e.session != nil {
		return TickResult{Kind: NeedPlayerInput}
	}

	status := e.queue.Process(e.observerLookup(), e.state, e.actionIDs)
	switch status {
	case queue.AmbiguousReplacements:
		e.requestReplacementChoice()
		return TickResult{Kind: NeedPlayerInput}
	case queue.AmbiguousOrdering:
		e.requestOrderingChoice()
		return TickResult{Kind: NeedPlayerInput}
	case queue.Ready:
		e.emptyStreak = 0
		a, ok := e.queue.PopNext()
		if !ok {
			// Process only reports Ready with pending non-empty and
			// regions 2-4 empty, so this is defensive: treat a failed pop
			// as Empty rather than panic.
			return e.tickEmpty()
		}
		e.applyAndBroadcast(a)
		e.timestamp++
		return TickResult{Kind: Ticked, Action: a}
	case queue.Empty:
		return e.tickEmpty()
	default:
		return e.tickEmpty()
	}
}

// tickEmpty handles an Empty queue status: broadcast a synthetic
// NoActions pulse, and report Stalled if the queue is still empty after
// two such cycles in a row.
func (e *Engine) tickEmpty() TickResult {
	noop := action.New(e.actionIDs.Next(), action.EnginePayload(action.EngineAction{Kind: action.NoActions}), e.selfID, e.timestamp)
	e.applyAndBroadcast(noop)
	e.timestamp++

	if e.queue.IsEmpty() {
		e.emptyStreak++
	} else {
		e.emptyStreak = 0
	}

	if e.emptyStreak >= 2 {
		logger.Get().Warn("engine stalled", zap.Int("empty_streak", e.emptyStreak))
		return TickResult{Kind: Stalled}
	}
	return TickResult{Kind: Ticked, Action: noop}
}

// TickUntilPlayerInput ticks repeatedly until the engine needs input or
// stalls, returning the terminal TickResult.
func (e *Engine) TickUntilPlayerInput() TickResult {
	for {
		r := e.Tick()
		if r.Kind == NeedPlayerInput || r.Kind == Stalled {
			return r
		}
	}
}

// requestReplacementChoice opens an implicit input session for an
// AmbiguousReplacements status: the active player is asked to choose
// among the current candidates. The choice itself is delivered back in
// through PlayerInput and handled by consumeSyntheticInput.
func (e *Engine) requestReplacementChoice() {
	rs, ok := e.queue.ReplacementState()
	if !ok {
		return
	}
	e.session = &session{
		request: action.InputRequest{FromPlayer: e.state.GameStep.ActivePlayer, InputType: "pick_replacement"},
		handler: e.selfID,
	}
	logger.Get().Debug("ambiguous replacement surfaced",
		zap.Int("candidates", len(rs.Candidates)))
}

// requestOrderingChoice is requestReplacementChoice's counterpart for
// AmbiguousOrdering.
func (e *Engine) requestOrderingChoice() {
	e.session = &session{
		request: action.InputRequest{FromPlayer: e.state.GameStep.ActivePlayer, InputType: "pick_next_action"},
		handler: e.selfID,
	}
	logger.Get().Debug("ambiguous ordering surfaced", zap.Int("staging", len(e.queue.Staging())))
}

// applyAndBroadcast recurses into Composite (children applied and
// broadcast individually, never the wrapper itself), and otherwise
// snapshots the observer set before applying a, so an AttachObserver
// action never lets its own new observer see the action that attached
// it — even though applyAction may insert it into e.observers before
// broadcastAction runs.
func (e *Engine) applyAndBroadcast(a action.Action) {
	if a.Payload.Kind == action.KindComposite {
		for _, child := range a.Payload.Composite {
			e.applyAndBroadcast(child)
		}
		return
	}

	ordered := e.observerLookup().Ascending()
	e.applyAction(a)
	e.broadcastAction(a, ordered)
}

// applyAction interprets EngineAction variants itself and otherwise
// delegates to the domain payload's Apply. Composite has no direct
// effect of its own; applyAndBroadcast handles its recursion.
func (e *Engine) applyAction(a action.Action) {
	switch a.Payload.Kind {
	case action.KindEngine:
		e.applyEngineAction(a.Payload.Engine, a.Source)
	case action.KindDomain:
		a.Payload.Domain.Apply(e.state)
	}
}

func (e *Engine) applyEngineAction(ea action.EngineAction, source ids.ObserverID) {
	switch ea.Kind {
	case action.RequestInput:
		if e.session != nil {
			panic("engine: RequestInput applied while a session is already open")
		}
		e.session = &session{request: ea.Request, handler: source}
	case action.EndInput:
		e.session = nil
	case action.PickReplacement:
		if err := e.queue.PickReplacement(ea.ReplacementID, e.observerLookup(), e.state, e.actionIDs); err != nil {
			logger.WithContext(zap.Uint64("source", source.Ordinal())).Error("queue protocol violation", zap.Error(err))
		}
	case action.PickNextAction:
		if err := e.queue.PickNextAction(ea.NextActionID); err != nil {
			logger.WithContext(zap.Uint64("source", source.Ordinal())).Error("queue protocol violation", zap.Error(err))
		}
	case action.AttachObserver:
		if obs, ok := ea.NewObserver.(observer.Observer); ok {
			e.AttachObserver(obs)
		}
	case action.NoActions:
		// Idle pulse; no state effect. Reactive observers still see it via
		// broadcastAction.
	}
}

// broadcastAction calls ObserveAction on every observer in ordered (a
// snapshot taken before a was applied, so an observer attached by a
// itself is excluded), collecting sink emissions before removing any
// observer that reports !Alive.
func (e *Engine) broadcastAction(a action.Action, ordered []observer.Observer) {
	var emitted []action.Action

	for _, obs := range ordered {
		sink := func(p action.Payload) {
			emitted = append(emitted, action.New(e.actionIDs.Next(), p, obs.ID(), e.timestamp))
		}
		obs.ObserveAction(a, e.state, sink)
	}

	for _, e2 := range emitted {
		e.queue.Add(e2)
	}

	for id, obs := range e.observers {
		if !obs.Alive(e.state) {
			delete(e.observers, id)
			logger.Get().Debug("observer removed", zap.Uint64("observer_id", id.Ordinal()))
		}
	}
}

// PlayerInput delivers player input to the current session handler.
// Every action the handler emits applies and broadcasts immediately, in
// order, under the single timestamp in effect when PlayerInput was
// called.
func (e *Engine) PlayerInput(in observer.Input) error {
	if e.session == nil {
		return engineerr.NoSessionError
	}
	if in.Source != e.session.request.FromPlayer {
		return engineerr.WrongPlayerError
	}

	handlerID := e.session.handler
	var handler observer.Observer
	if handlerID == e.selfID {
		handler = nil
	} else {
		var ok bool
		handler, ok = e.observers[handlerID]
		if !ok {
			panic(&engineerr.MissingObserverError{Observer: handlerID})
		}
	}

	var emitted []action.Payload
	sink := func(p action.Payload) { emitted = append(emitted, p) }

	var err error
	if handler == nil {
		err = e.consumeSyntheticInput(in, sink)
	} else {
		err = handler.ConsumeInput(in, e.state, sink)
	}
	if err != nil {
		return err
	}

	for _, p := range emitted {
		a := action.New(e.actionIDs.Next(), p, handlerID, e.timestamp)
		e.applyAndBroadcast(a)
	}

	return nil
}

// consumeSyntheticInput handles input directed at the engine's own
// implicit disambiguation sessions (requestReplacementChoice /
// requestOrderingChoice), translating the chosen id into the matching
// EngineAction and clearing the session.
func (e *Engine) consumeSyntheticInput(in observer.Input, sink observer.Sink) error {
	switch e.session.request.InputType {
	case "pick_replacement":
		id, ok := in.Payload.(ids.ActionID)
		if !ok {
			return engineerr.NewRejected("pick_replacement input must be an ActionID")
		}
		sink(action.EnginePayload(action.EngineAction{Kind: action.PickReplacement, ReplacementID: id}))
		sink(action.EnginePayload(action.EngineAction{Kind: action.EndInput}))
		return nil
	case "pick_next_action":
		id, ok := in.Payload.(ids.ActionID)
		if !ok {
			return engineerr.NewRejected("pick_next_action input must be an ActionID")
		}
		sink(action.EnginePayload(action.EngineAction{Kind: action.PickNextAction, NextActionID: id}))
		sink(action.EnginePayload(action.EngineAction{Kind: action.EndInput}))
		return nil
	default:
		return engineerr.UnimplementedObserverError
	}
}

// observerLookup snapshots the current observer map as a queue.ObserverLookup.
func (e *Engine) observerLookup() queue.MapLookup {
	out := make(queue.MapLookup, len(e.observers))
	for id, obs := range e.observers {
		out[id] = obs
	}
	return out
}
