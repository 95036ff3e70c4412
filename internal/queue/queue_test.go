package queue_test

import (
	"testing"

	"mtg-engine/internal/action"
	"mtg-engine/internal/ids"
	"mtg-engine/internal/observer"
	"mtg-engine/internal/queue"
	"mtg-engine/internal/state"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// noopDomainAction is a DomainAction with no effect, used wherever a test
// needs a concrete action payload but doesn't care what it does.
type noopDomainAction struct{ tag string }

func (noopDomainAction) Apply(*state.GameState) {}

// replacingObserver proposes a fixed replacement for the first subject it
// is asked about (tracked via proposed), then never again — modelling a
// one-shot replacement effect.
type replacingObserver struct {
	observer.Base
	tag       string
	proposed  bool
}

func (o *replacingObserver) ProposeReplacement(action.Action, *state.GameState) (action.DomainAction, bool) {
	if o.proposed {
		return nil, false
	}
	o.proposed = true
	return noopDomainAction{tag: o.tag}, true
}

func (o *replacingObserver) Controller() observer.Controller { return observer.GameController }
func (o *replacingObserver) CloneBox() observer.Observer {
	clone := *o
	return &clone
}

func newObservers(t *testing.T, tags ...string) (queue.MapLookup, *ids.ObserverAllocator) {
	t.Helper()
	allocator := ids.NewObserverAllocator()
	m := queue.MapLookup{}
	for _, tag := range tags {
		o := &replacingObserver{tag: tag}
		id := allocator.Next()
		o.SetID(id)
		m[id] = o
	}
	return m, allocator
}

func TestProcessResolvesActionWithNoCandidates(t *testing.T) {
	q := queue.New(queue.SimplePolicy{})
	observers := queue.MapLookup{}
	actionIDs := ids.NewActionAllocator()
	s := &state.GameState{}

	q.Add(action.New(actionIDs.Next(), action.DomainPayload(noopDomainAction{}), ids.ObserverID{}, 0))

	status := q.Process(observers, s, actionIDs)
	assert.Equal(t, queue.Ready, status)

	popped, ok := q.PopNext()
	require.True(t, ok)
	assert.Equal(t, action.KindDomain, popped.Payload.Kind)
}

// TestReplacementChaining covers two observers both proposing a
// replacement for the same subject: the caller picks one, and the chain
// terminates with the chosen candidate, since the other observer already
// spent its proposal in the first round (the fixture's replacingObserver
// only replaces once).
func TestReplacementChaining(t *testing.T) {
	observers, observerIDs := newObservers(t, "o1", "o2")
	_ = observerIDs
	q := queue.New(queue.SimplePolicy{})
	actionIDs := ids.NewActionAllocator()
	s := &state.GameState{}

	subjectSource := ids.NewObserverAllocator().Next()
	subject := action.New(actionIDs.Next(), action.DomainPayload(noopDomainAction{tag: "subject"}), subjectSource, 0)
	q.Add(subject)

	status := q.Process(observers, s, actionIDs)
	require.Equal(t, queue.AmbiguousReplacements, status)

	rs, ok := q.ReplacementState()
	require.True(t, ok)
	require.Len(t, rs.Candidates, 2)

	chosen := rs.Candidates[0]
	require.NoError(t, q.PickReplacement(chosen.ID, observers, s, actionIDs))

	// The chosen candidate's proposer is now excluded; the other observer
	// already spent its one-shot proposal on the first round, so no new
	// candidates are proposed and the chain terminates.
	status = q.Process(observers, s, actionIDs)
	require.Equal(t, queue.Ready, status)

	popped, ok := q.PopNext()
	require.True(t, ok)
	assert.Equal(t, chosen.ID, popped.ID)
	assert.Equal(t, subjectSource, popped.RootSource())
}

func TestPickReplacementRejectsUnknownID(t *testing.T) {
	observers, _ := newObservers(t, "o1", "o2")
	q := queue.New(queue.SimplePolicy{})
	actionIDs := ids.NewActionAllocator()
	s := &state.GameState{}

	q.Add(action.New(actionIDs.Next(), action.DomainPayload(noopDomainAction{}), ids.ObserverID{}, 0))
	status := q.Process(observers, s, actionIDs)
	require.Equal(t, queue.AmbiguousReplacements, status)

	err := q.PickReplacement(actionIDs.Next(), observers, s, actionIDs)
	assert.Error(t, err)
}

func TestSimplePolicyWarnsButNeverAmbiguous(t *testing.T) {
	q := queue.New(queue.SimplePolicy{})
	observers := queue.MapLookup{}
	actionIDs := ids.NewActionAllocator()
	s := &state.GameState{}

	src := ids.NewObserverAllocator().Next()
	q.Add(action.New(actionIDs.Next(), action.DomainPayload(noopDomainAction{}), src, 0))
	q.Add(action.New(actionIDs.Next(), action.DomainPayload(noopDomainAction{}), src, 0))

	status := q.Process(observers, s, actionIDs)
	assert.Equal(t, queue.Ready, status)
}

func TestProcessIsEmptyWhenNothingQueued(t *testing.T) {
	q := queue.New(queue.SimplePolicy{})
	observers := queue.MapLookup{}
	actionIDs := ids.NewActionAllocator()
	s := &state.GameState{}

	status := q.Process(observers, s, actionIDs)
	assert.Equal(t, queue.Empty, status)
	assert.True(t, q.IsEmpty())
}

func TestPickNextActionRejectsUnknownID(t *testing.T) {
	q := queue.New(queue.SimplePolicy{})
	actionIDs := ids.NewActionAllocator()

	err := q.PickNextAction(actionIDs.Next())
	assert.Error(t, err)
}
