// Package rules provides the base-rule observers GameBuilder attaches to
// every engine: priority passing, turn-step advancement, a state-based-
// action hook, and attacker-declaration coordination. None of this is a
// card catalog; it is the minimum reference ruleset the engine needs to
// run a turn structure end to end, reimplemented as ordinary observers
// rather than privileged engine code.
package rules

import "mtg-engine/internal/action"

// isNoActions reports whether a is the engine's synthetic idle pulse.
// Rule observers gate their reactions on it rather than on every
// broadcast, since it is the one action guaranteed to fire only once the
// queue has fully drained — the natural point to decide "what happens
// next" without racing in-flight reactions.
func isNoActions(a action.Action) bool {
	return a.Payload.Kind == action.KindEngine && a.Payload.Engine.Kind == action.NoActions
}
