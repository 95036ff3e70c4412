// Package action defines the tagged action model the engine pipelines:
// engine-interpreted actions, opaque domain mutations, and pure-bookkeeping
// composites, plus the Action envelope that carries one of them through
// the queue.
package action

import (
	"mtg-engine/internal/ids"
	"mtg-engine/internal/state"
)

// Timestamp is a monotonic counter incremented once per tick. Actions
// generated in response to the same broadcast share the generating
// action's timestamp.
type Timestamp uint64

// DomainAction is the open extension point for domain-defined atomic state
// mutations. The engine never inspects a DomainAction beyond calling
// Apply; anything else (type predicates, targeting data) is the domain's
// business. Rule code that needs to recognize a specific action prefers a
// predicate over a runtime type downcast.
type DomainAction interface {
	Apply(*state.GameState)
}

// InputRequest names who an input session expects a response from and an
// opaque presentation tag for what kind of response is expected.
type InputRequest struct {
	FromPlayer ids.PlayerID
	InputType  string
}

// EngineKind discriminates the EngineAction variants.
type EngineKind int

const (
	NoActions EngineKind = iota
	RequestInput
	EndInput
	PickReplacement
	PickNextAction
	AttachObserver
)

// EngineAction is an action interpreted by the engine itself rather than
// delegated to domain code. Only the field matching Kind is meaningful.
type EngineAction struct {
	Kind EngineKind

	Request        InputRequest // RequestInput
	ReplacementID  ids.ActionID // PickReplacement
	NextActionID   ids.ActionID // PickNextAction
	NewObserver    any          // AttachObserver; concrete type is observer.Observer
}

// PayloadKind discriminates the three ActionPayload variants.
type PayloadKind int

const (
	KindEngine PayloadKind = iota
	KindDomain
	KindComposite
)

// Payload is the tagged union of the three action shapes: EngineAction,
// DomainAction, or Composite. Exactly one field is meaningful, selected by
// Kind.
type Payload struct {
	Kind PayloadKind

	Engine    EngineAction
	Domain    DomainAction
	Composite []Action
}

// EnginePayload wraps an EngineAction as a Payload.
func EnginePayload(a EngineAction) Payload { return Payload{Kind: KindEngine, Engine: a} }

// DomainPayload wraps a DomainAction as a Payload.
func DomainPayload(a DomainAction) Payload { return Payload{Kind: KindDomain, Domain: a} }

// CompositePayload wraps a sequence of child actions as pure bookkeeping:
// children are applied and broadcast individually, the composite itself
// is never broadcast atomically.
func CompositePayload(children ...Action) Payload {
	return Payload{Kind: KindComposite, Composite: children}
}

// Action is an atomic, immutable record describing a single state
// transition or engine event.
type Action struct {
	ID          ids.ActionID
	Payload     Payload
	Source      ids.ObserverID
	GeneratedAt Timestamp

	// Original is the predecessor action this one replaced, or nil if this
	// action was not produced by a replacement effect. It is read-only and
	// may be shared by multiple candidate replacements of the same
	// subject.
	Original *Action
}

// RootSource walks the Original chain back to its head and returns that
// action's Source, so a chain of replacements always attributes back to
// whoever generated the original subject.
func (a Action) RootSource() ids.ObserverID {
	cur := a
	for cur.Original != nil {
		cur = *cur.Original
	}
	return cur.Source
}

// New builds an Action with the given id, payload, source and timestamp,
// and no replacement ancestry.
func New(id ids.ActionID, payload Payload, source ids.ObserverID, at Timestamp) Action {
	return Action{ID: id, Payload: payload, Source: source, GeneratedAt: at}
}

// Replacement builds the fresh Action a candidate replacement becomes: a
// new id and source, the subject's generated_at preserved, and original
// pointed at the (shared) subject.
func Replacement(id ids.ActionID, domain DomainAction, source ids.ObserverID, subject *Action) Action {
	return Action{
		ID:          id,
		Payload:     DomainPayload(domain),
		Source:      source,
		GeneratedAt: subject.GeneratedAt,
		Original:    subject,
	}
}
