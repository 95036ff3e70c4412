// Package queue implements the ActionQueue: the multi-stage pipeline that
// classifies incoming actions, resolves replacement effects, orders
// simultaneous actions, and hands fully-ordered actions to the engine one
// at a time.
package queue

import (
	"sort"

	"mtg-engine/internal/action"
	"mtg-engine/internal/engineerr"
	"mtg-engine/internal/ids"
	"mtg-engine/internal/logger"
	"mtg-engine/internal/observer"
	"mtg-engine/internal/state"

	"go.uber.org/zap"
)

// Status is the outcome of a call to Process.
type Status int

const (
	// Ready means pending has at least one action and regions 2-4 are
	// empty; PopNext will succeed.
	Ready Status = iota
	// Empty means every region is empty.
	Empty
	// AmbiguousReplacements means a subject has two or more candidate
	// replacements awaiting a PickReplacement choice.
	AmbiguousReplacements
	// AmbiguousOrdering means staging holds more than one action and the
	// ordering policy could not fully resolve it; awaits PickNextAction.
	AmbiguousOrdering
)

// ReplacementState records an in-flight ambiguous replacement chain.
type ReplacementState struct {
	Subject       action.Action
	Candidates    []action.Action
	UsedObservers map[ids.ObserverID]bool
}

// ObserverLookup lets the queue iterate observers in ascending id order
// without depending on the engine's concrete map type.
type ObserverLookup interface {
	Ascending() []observer.Observer
}

// MapLookup adapts a plain map[ObserverID]Observer to ObserverLookup.
type MapLookup map[ids.ObserverID]observer.Observer

func (m MapLookup) Ascending() []observer.Observer {
	out := make([]observer.Observer, 0, len(m))
	for _, o := range m {
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID().Less(out[j].ID()) })
	return out
}

// OrderingPolicy decides how resolved-but-unordered actions become the
// pending FIFO. Order returns the actions in their decided execution order
// and ok=true when it could fully resolve ordering; ok=false leaves
// staging untouched and the queue enters AmbiguousOrdering.
type OrderingPolicy interface {
	Order(staging []action.Action, observers ObserverLookup, s *state.GameState) (ordered []action.Action, ok bool)
}

// Queue is the five-region ActionQueue pipeline: received,
// partially_resolved, resolved, staging, and pending.
type Queue struct {
	received           []action.Action
	partiallyResolved  *ReplacementState
	resolved           []action.Action
	staging            []action.Action
	pending            []action.Action

	policy OrderingPolicy
}

// New returns an empty Queue using the given ordering policy.
func New(policy OrderingPolicy) *Queue {
	return &Queue{policy: policy}
}

// Add pushes action into received. Never rejects.
func (q *Queue) Add(a action.Action) {
	q.received = append(q.received, a)
}

// PopNext returns the head of pending iff regions 2-4 are all empty.
func (q *Queue) PopNext() (action.Action, bool) {
	if q.partiallyResolved != nil || len(q.resolved) != 0 || len(q.staging) != 0 {
		return action.Action{}, false
	}
	if len(q.pending) == 0 {
		return action.Action{}, false
	}
	a := q.pending[0]
	q.pending = q.pending[1:]
	return a, true
}

// IsEmpty reports whether every region is empty.
func (q *Queue) IsEmpty() bool {
	return len(q.received) == 0 && q.partiallyResolved == nil &&
		len(q.resolved) == 0 && len(q.staging) == 0 && len(q.pending) == 0
}

// ReplacementState returns the in-flight ambiguous replacement, if any.
func (q *Queue) ReplacementState() (ReplacementState, bool) {
	if q.partiallyResolved == nil {
		return ReplacementState{}, false
	}
	return *q.partiallyResolved, true
}

// Staging returns a snapshot of the current ordering-ambiguous set.
func (q *Queue) Staging() []action.Action {
	out := make([]action.Action, len(q.staging))
	copy(out, q.staging)
	return out
}

// Process drains received through the replacement machinery, then
// attempts to promote resolved into pending via the ordering policy.
func (q *Queue) Process(observers ObserverLookup, s *state.GameState, actionIDs *ids.ActionAllocator) Status {
	if q.partiallyResolved != nil {
		return AmbiguousReplacements
	}
	if len(q.staging) != 0 {
		return AmbiguousOrdering
	}

	for len(q.received) > 0 {
		subject := q.received[0]
		q.received = q.received[1:]

		candidates := q.proposeCandidates(subject, observers, s, actionIDs, nil)

		switch len(candidates) {
		case 0:
			q.resolved = append(q.resolved, subject)
		case 1:
			q.resolved = append(q.resolved, candidates[0])
		default:
			q.partiallyResolved = &ReplacementState{
				Subject:       subject,
				Candidates:    candidates,
				UsedObservers: map[ids.ObserverID]bool{},
			}
			return AmbiguousReplacements
		}
	}

	return q.promoteResolved(observers, s)
}

// proposeCandidates asks every observer (except those in excluded) to
// propose a replacement for subject, returning one fresh candidate Action
// per proposal.
func (q *Queue) proposeCandidates(subject action.Action, observers ObserverLookup, s *state.GameState, actionIDs *ids.ActionAllocator, excluded map[ids.ObserverID]bool) []action.Action {
	var candidates []action.Action
	subjectShared := subject

	for _, obs := range observers.Ascending() {
		if excluded != nil && excluded[obs.ID()] {
			continue
		}
		domainAction, ok := obs.ProposeReplacement(subject, s)
		if !ok {
			continue
		}
		id := actionIDs.Next()
		candidates = append(candidates, action.Replacement(id, domainAction, obs.ID(), &subjectShared))
	}

	return candidates
}

// promoteResolved transfers resolved into staging and asks the ordering
// policy to turn staging into pending.
func (q *Queue) promoteResolved(observers ObserverLookup, s *state.GameState) Status {
	if len(q.resolved) > 0 {
		q.staging = append(q.staging, q.resolved...)
		q.resolved = nil
	}

	if len(q.staging) == 0 {
		if len(q.pending) == 0 {
			return Empty
		}
		return Ready
	}

	ordered, ok := q.policy.Order(q.staging, observers, s)
	if !ok {
		return AmbiguousOrdering
	}

	q.pending = append(q.pending, ordered...)
	q.staging = nil

	if len(q.pending) == 0 {
		return Empty
	}
	return Ready
}

// PickReplacement resolves an AmbiguousReplacements state: the chosen
// candidate becomes the new subject, its proposer is marked used, and the
// machinery restarts excluding every used observer from the next round.
func (q *Queue) PickReplacement(chosen ids.ActionID, observers ObserverLookup, s *state.GameState, actionIDs *ids.ActionAllocator) error {
	rs := q.partiallyResolved
	if rs == nil {
		return &engineerr.QueueProtocolError{Message: "PickReplacement called while not in AmbiguousReplacements"}
	}

	var chosenAction *action.Action
	for i := range rs.Candidates {
		if rs.Candidates[i].ID == chosen {
			chosenAction = &rs.Candidates[i]
			break
		}
	}
	if chosenAction == nil {
		return &engineerr.QueueProtocolError{Message: "PickReplacement id is not a current candidate"}
	}

	rs.UsedObservers[chosenAction.Source] = true

	logger.Get().Debug("replacement chosen",
		zap.Uint64("action_id", chosenAction.ID.Ordinal()),
		zap.Uint64("proposer", chosenAction.Source.Ordinal()))

	q.partiallyResolved = nil

	nextCandidates := q.proposeCandidates(*chosenAction, observers, s, actionIDs, rs.UsedObservers)

	switch len(nextCandidates) {
	case 0:
		q.resolved = append(q.resolved, *chosenAction)
	case 1:
		q.resolved = append(q.resolved, nextCandidates[0])
	default:
		q.partiallyResolved = &ReplacementState{
			Subject:       *chosenAction,
			Candidates:    nextCandidates,
			UsedObservers: rs.UsedObservers,
		}
	}

	return nil
}

// PickNextAction resolves an AmbiguousOrdering state: the named staging
// action moves to the back of pending.
func (q *Queue) PickNextAction(chosen ids.ActionID) error {
	for i, a := range q.staging {
		if a.ID == chosen {
			q.pending = append(q.pending, a)
			q.staging = append(q.staging[:i], q.staging[i+1:]...)
			return nil
		}
	}
	return &engineerr.QueueProtocolError{Message: "PickNextAction id is not in the current staging set"}
}
