// Package builder constructs a fresh Engine: the zones every game has,
// one set of private zones per player, starting life totals and turn
// structure, and the base-rule observers that make the engine actually
// run a turn. It is an external collaborator, GameBuilder, not a card
// catalog or mulligan rules implementation.
package builder

import (
	"mtg-engine/internal/engine"
	"mtg-engine/internal/ids"
	"mtg-engine/internal/queue"
	"mtg-engine/internal/rules"
	"mtg-engine/internal/state"
	"mtg-engine/internal/zone"

	"github.com/google/uuid"
)

// startingLifeTotal is the default life total new players begin with.
const startingLifeTotal = 20

// PlayerSpec names one seat at the table: a display name and an implicit
// turn-order position, lowest-added-first.
type PlayerSpec struct {
	Name string
}

// Built is everything GameBuilder hands back: the ready-to-tick Engine
// plus an opaque session identifier external callers can use to
// correlate logs and presentation state with this particular game,
// independent of any internal id space.
type Built struct {
	Engine    *engine.Engine
	SessionID string
}

// GameBuilder accumulates player specs before producing a Built game.
// Its zero value is ready to use.
type GameBuilder struct {
	players []PlayerSpec
	policy  queue.OrderingPolicy
}

// New returns an empty GameBuilder using the simplified reference
// ordering policy; call WithPolicy to install APNAPPolicy instead.
func New() *GameBuilder {
	return &GameBuilder{policy: queue.SimplePolicy{}}
}

// WithPolicy overrides the ordering policy used by the built engine.
func (b *GameBuilder) WithPolicy(policy queue.OrderingPolicy) *GameBuilder {
	b.policy = policy
	return b
}

// AddPlayer appends a seat at the table in turn order.
func (b *GameBuilder) AddPlayer(name string) *GameBuilder {
	b.players = append(b.players, PlayerSpec{Name: name})
	return b
}

// Build mints every id, wires the zones, and attaches the base rule
// observers, returning a game ready for Engine.Tick.
func (b *GameBuilder) Build() Built {
	playerIDs := ids.NewPlayerAllocator()
	zoneIDs := ids.NewZoneAllocator()
	observerIDs := ids.NewObserverAllocator()
	actionIDs := ids.NewActionAllocator()

	s := &state.GameState{
		Players:         map[ids.PlayerID]*state.Player{},
		NextInTurnOrder: map[ids.PlayerID]ids.PlayerID{},
		Zones:           map[ids.ZoneID]*zone.Zone{},
	}

	s.SharedZones = state.SharedZones{
		Battlefield: newSharedZone(s, zoneIDs, "battlefield", false),
		Stack:       newSharedZone(s, zoneIDs, "stack", true),
		Exile:       newSharedZone(s, zoneIDs, "exile", false),
		Command:     newSharedZone(s, zoneIDs, "command", false),
		Ante:        newSharedZone(s, zoneIDs, "ante", false),
	}

	turnOrder := make([]ids.PlayerID, 0, len(b.players))
	for _, spec := range b.players {
		pid := playerIDs.Next()
		turnOrder = append(turnOrder, pid)

		s.Players[pid] = &state.Player{
			ID:        pid,
			Name:      spec.Name,
			LifeTotal: startingLifeTotal,
			Library:   newPlayerZone(s, zoneIDs, pid, spec.Name+"_library", true),
			Hand:      newPlayerZone(s, zoneIDs, pid, spec.Name+"_hand", false),
			Graveyard: newPlayerZone(s, zoneIDs, pid, spec.Name+"_graveyard", true),
		}
	}

	for i, pid := range turnOrder {
		s.NextInTurnOrder[pid] = turnOrder[(i+1)%len(turnOrder)]
	}

	if len(turnOrder) > 0 {
		s.GameStep = state.GameStep{
			ActivePlayer: turnOrder[0],
			Step:         state.StartingPhase(state.Init),
			SubStep:      state.InProgress,
		}
		s.Priority = turnOrder[0]
		s.HasPriority = false
	}

	policy := b.policy
	if policy == nil {
		policy = queue.SimplePolicy{}
	}

	e := engine.New(s, policy, observerIDs, actionIDs)
	e.AttachObserver(rules.NewPriorityObserver())
	e.AttachObserver(rules.NewStepsObserver())
	e.AttachObserver(rules.NewAttackersObserver())
	e.AttachObserver(rules.NewStateBasedActionObserver())

	return Built{Engine: e, SessionID: uuid.NewString()}
}

func newSharedZone(s *state.GameState, alloc *ids.ZoneAllocator, name string, ordered bool) ids.ZoneID {
	id := alloc.Next()
	if ordered {
		s.Zones[id] = zone.NewOrdered(id, name, ids.PlayerID{}, false, true)
	} else {
		s.Zones[id] = zone.New(id, name, ids.PlayerID{}, false, true)
	}
	return id
}

func newPlayerZone(s *state.GameState, alloc *ids.ZoneAllocator, owner ids.PlayerID, name string, ordered bool) ids.ZoneID {
	id := alloc.Next()
	if ordered {
		s.Zones[id] = zone.NewOrdered(id, name, owner, true, false)
	} else {
		s.Zones[id] = zone.New(id, name, owner, true, false)
	}
	return id
}
