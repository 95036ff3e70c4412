package engine_test

import (
	"testing"

	"mtg-engine/internal/action"
	"mtg-engine/internal/engine"
	"mtg-engine/internal/ids"
	"mtg-engine/internal/observer"
	"mtg-engine/internal/queue"
	"mtg-engine/internal/state"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBareEngine() (*engine.Engine, *ids.ObserverAllocator, *ids.ActionAllocator) {
	observerIDs := ids.NewObserverAllocator()
	actionIDs := ids.NewActionAllocator()
	s := &state.GameState{Players: map[ids.PlayerID]*state.Player{}}
	e := engine.New(s, queue.SimplePolicy{}, observerIDs, actionIDs)
	return e, observerIDs, actionIDs
}

// TestStalledAfterTwoEmptyCycles confirms an engine with no observers
// attached ticks Ticked(NoActions) once, then Stalled.
func TestStalledAfterTwoEmptyCycles(t *testing.T) {
	e, _, _ := newBareEngine()

	first := e.Tick()
	assert.Equal(t, engine.Ticked, first.Kind)

	second := e.Tick()
	assert.Equal(t, engine.Stalled, second.Kind)
}

// countingObserver counts broadcasts and never emits or replaces anything.
type countingObserver struct {
	observer.Base
	seen int
}

func (o *countingObserver) ObserveAction(action.Action, *state.GameState, observer.Sink) { o.seen++ }
func (o *countingObserver) Controller() observer.Controller                              { return observer.GameController }
func (o *countingObserver) CloneBox() observer.Observer {
	clone := *o
	return &clone
}

func TestAttachedObserverIsBroadcastSubsequentActions(t *testing.T) {
	e, _, _ := newBareEngine()
	obs := &countingObserver{}
	e.AttachObserver(obs)

	e.Tick()
	assert.Equal(t, 1, obs.seen)
	e.Tick()
	assert.Equal(t, 2, obs.seen)
}

// TestAttachMidGameExcludesAttachingAction confirms an observer attached
// via AttachObserver does not observe the action that attached it, but
// does observe everything from the next broadcast on.
func TestAttachMidGameExcludesAttachingAction(t *testing.T) {
	e, _, _ := newBareEngine()

	e.Tick() // first NoActions pulse, nothing attached yet

	late := &countingObserver{}
	attachPayload := action.EnginePayload(action.EngineAction{Kind: action.AttachObserver, NewObserver: observer.Observer(late)})
	e.Enqueue(attachPayload, ids.ObserverID{})

	result := e.Tick() // applies+broadcasts the AttachObserver action itself
	require.Equal(t, engine.Ticked, result.Kind)
	assert.Equal(t, 0, late.seen, "observer must not see the action that attached it")

	e.Tick()
	assert.Equal(t, 1, late.seen, "observer must see broadcasts after attach")
}

// sessionOpeningObserver emits a RequestInput engine action targeting a
// fixed player as soon as it sees any broadcast, then never again.
type sessionOpeningObserver struct {
	observer.Base
	target ids.PlayerID
	opened bool
}

func (o *sessionOpeningObserver) ObserveAction(_ action.Action, _ *state.GameState, sink observer.Sink) {
	if o.opened {
		return
	}
	o.opened = true
	sink(action.EnginePayload(action.EngineAction{
		Kind:    action.RequestInput,
		Request: action.InputRequest{FromPlayer: o.target, InputType: "test_input"},
	}))
}
func (o *sessionOpeningObserver) ConsumeInput(observer.Input, *state.GameState, observer.Sink) error {
	return nil
}
func (o *sessionOpeningObserver) Controller() observer.Controller { return observer.GameController }
func (o *sessionOpeningObserver) CloneBox() observer.Observer {
	clone := *o
	return &clone
}

func TestPlayerInputRejectsWrongPlayer(t *testing.T) {
	e, _, _ := newBareEngine()
	playerIDs := ids.NewPlayerAllocator()
	alice := playerIDs.Next()
	bob := playerIDs.Next()

	e.AttachObserver(&sessionOpeningObserver{target: alice})

	r := e.TickUntilPlayerInput()
	require.Equal(t, engine.NeedPlayerInput, r.Kind)
	from, ok := e.ExpectingInputFrom()
	require.True(t, ok)
	assert.Equal(t, alice, from)

	err := e.PlayerInput(observer.Input{Source: bob})
	assert.Error(t, err)
}

func TestPlayerInputWithNoSessionOpen(t *testing.T) {
	e, _, _ := newBareEngine()
	err := e.PlayerInput(observer.Input{})
	assert.Error(t, err)
}
