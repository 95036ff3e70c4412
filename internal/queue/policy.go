package queue

import (
	"sort"

	"mtg-engine/internal/action"
	"mtg-engine/internal/ids"
	"mtg-engine/internal/logger"
	"mtg-engine/internal/observer"
	"mtg-engine/internal/state"

	"go.uber.org/zap"
)

// SimplePolicy is a reference ordering policy: drain staging into pending
// in insertion order, logging a warning whenever more than one action was
// simultaneously staged. It never reports ambiguity.
type SimplePolicy struct{}

func (SimplePolicy) Order(staging []action.Action, _ ObserverLookup, _ *state.GameState) ([]action.Action, bool) {
	if len(staging) > 1 {
		logger.Get().Warn("staging more than one simultaneous action without APNAP ordering",
			zap.Int("count", len(staging)))
	}
	out := make([]action.Action, len(staging))
	copy(out, staging)
	return out, true
}

// APNAPPolicy implements the full "active player, non-active player"
// order: game-controlled actions order by ascending source id;
// player-controlled actions group by controller, active player's group
// resolving first. A player group with more than one action in it has no
// further automatic tie-break and is reported ambiguous, awaiting a
// PickNextAction choice.
type APNAPPolicy struct {
	// ActivePlayer is read by Order on every call, so it always reflects
	// game_state.active player rather than being fixed at construction.
	ActivePlayer func(*state.GameState) (playerOrdinal uint64, ok bool)
}

func (p APNAPPolicy) Order(staging []action.Action, observers ObserverLookup, s *state.GameState) ([]action.Action, bool) {
	byController := observerControllers(observers)

	var gameActions []action.Action
	playerActions := map[uint64][]action.Action{}
	var playerOrder []uint64

	for _, a := range staging {
		ctrl, ok := byController[a.Source]
		if !ok || !ctrl.IsPlayer {
			gameActions = append(gameActions, a)
			continue
		}
		key := ctrl.Player.Ordinal()
		if _, seen := playerActions[key]; !seen {
			playerOrder = append(playerOrder, key)
		}
		playerActions[key] = append(playerActions[key], a)
	}

	for _, group := range playerActions {
		if len(group) > 1 {
			return nil, false
		}
	}

	sort.Slice(gameActions, func(i, j int) bool { return gameActions[i].Source.Less(gameActions[j].Source) })

	if active, ok := p.ActivePlayer(s); ok {
		sort.Slice(playerOrder, func(i, j int) bool {
			if playerOrder[i] == active {
				return true
			}
			if playerOrder[j] == active {
				return false
			}
			return playerOrder[i] < playerOrder[j]
		})
	} else {
		sort.Slice(playerOrder, func(i, j int) bool { return playerOrder[i] < playerOrder[j] })
	}

	ordered := make([]action.Action, 0, len(staging))
	ordered = append(ordered, gameActions...)
	for _, key := range playerOrder {
		ordered = append(ordered, playerActions[key]...)
	}

	return ordered, true
}

// observerControllers builds a lookup from observer id to controller so
// Order can classify each staged action without depending on the engine's
// concrete observer map.
func observerControllers(observers ObserverLookup) map[ids.ObserverID]observer.Controller {
	out := make(map[ids.ObserverID]observer.Controller)
	for _, o := range observers.Ascending() {
		out[o.ID()] = o.Controller()
	}
	return out
}
