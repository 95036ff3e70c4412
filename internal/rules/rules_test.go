package rules_test

import (
	"testing"

	"mtg-engine/internal/engine"
	"mtg-engine/internal/ids"
	"mtg-engine/internal/observer"
	"mtg-engine/internal/queue"
	"mtg-engine/internal/rules"
	"mtg-engine/internal/state"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildTwoPlayerGame constructs a minimal two-player GameState: alice and
// bob, turn order alice -> bob -> alice, active player alice, step
// PreCombatMain/InProgress, priority on alice.
func buildTwoPlayerGame(t *testing.T) (*engine.Engine, ids.PlayerID, ids.PlayerID) {
	t.Helper()

	playerIDs := ids.NewPlayerAllocator()
	alice := playerIDs.Next()
	bob := playerIDs.Next()

	s := &state.GameState{
		Players: map[ids.PlayerID]*state.Player{
			alice: {ID: alice, Name: "alice"},
			bob:   {ID: bob, Name: "bob"},
		},
		NextInTurnOrder: map[ids.PlayerID]ids.PlayerID{
			alice: bob,
			bob:   alice,
		},
		GameStep: state.GameStep{
			ActivePlayer: alice,
			Step:         state.PreCombatMainPhase(),
			SubStep:      state.InProgress,
		},
		HasPriority: true,
		Priority:    alice,
	}

	e := engine.New(s, queue.SimplePolicy{}, ids.NewObserverAllocator(), ids.NewActionAllocator())
	e.AttachObserver(rules.NewPriorityObserver())
	e.AttachObserver(rules.NewStepsObserver())
	e.AttachObserver(rules.NewAttackersObserver())
	e.AttachObserver(rules.NewStateBasedActionObserver())

	return e, alice, bob
}

// TestBasicPriorityPassTwoPlayers confirms priority passes in turn order
// and the step advances once both players have passed in succession.
func TestBasicPriorityPassTwoPlayers(t *testing.T) {
	e, alice, bob := buildTwoPlayerGame(t)

	r := e.TickUntilPlayerInput()
	require.Equal(t, engine.NeedPlayerInput, r.Kind)
	from, ok := e.ExpectingInputFrom()
	require.True(t, ok)
	assert.Equal(t, alice, from)

	require.NoError(t, e.PlayerInput(observer.Input{Source: alice, Payload: rules.PriorityInput{Kind: rules.PassPriority}}))
	r = e.TickUntilPlayerInput()
	require.Equal(t, engine.NeedPlayerInput, r.Kind)
	from, ok = e.ExpectingInputFrom()
	require.True(t, ok)
	assert.Equal(t, bob, from)

	require.NoError(t, e.PlayerInput(observer.Input{Source: bob, Payload: rules.PriorityInput{Kind: rules.PassPriority}}))
	r = e.TickUntilPlayerInput()
	require.Equal(t, engine.NeedPlayerInput, r.Kind)

	st := e.State()
	assert.Equal(t, state.PhaseCombat, st.GameStep.Step.Phase)
	assert.Equal(t, state.StartOfCombat, st.GameStep.Step.Combat)
	assert.Equal(t, alice, st.Priority)
}

// TestFullTurnStructureThroughDeclareAttackers drives priority passes
// through PreCombatMain and StartOfCombat and confirms the active player
// is asked to declare attackers on reaching that step.
func TestFullTurnStructureThroughDeclareAttackers(t *testing.T) {
	e, alice, bob := buildTwoPlayerGame(t)

	pass := func(p ids.PlayerID) {
		e.TickUntilPlayerInput()
		require.NoError(t, e.PlayerInput(observer.Input{Source: p, Payload: rules.PriorityInput{Kind: rules.PassPriority}}))
	}

	// PreCombatMain -> Combat(StartOfCombat)
	pass(alice)
	pass(bob)
	// Combat(StartOfCombat) -> Combat(DeclareAttackers)
	pass(alice)
	pass(bob)

	r := e.TickUntilPlayerInput()
	require.Equal(t, engine.NeedPlayerInput, r.Kind)
	st := e.State()
	require.Equal(t, state.PhaseCombat, st.GameStep.Step.Phase)
	require.Equal(t, state.DeclareAttackers, st.GameStep.Step.Combat)

	from, ok := e.ExpectingInputFrom()
	require.True(t, ok)
	assert.Equal(t, alice, from, "the attackers observer asks the active player first")

	require.NoError(t, e.PlayerInput(observer.Input{Source: alice, Payload: rules.AttackersInput{Kind: rules.Finished}}))

	r = e.TickUntilPlayerInput()
	require.Equal(t, engine.NeedPlayerInput, r.Kind)
	from, ok = e.ExpectingInputFrom()
	require.True(t, ok)
	assert.Equal(t, alice, from, "priority returns to alice in the same step once attackers are declared")

	st = e.State()
	assert.Equal(t, state.DeclareAttackers, st.GameStep.Step.Combat)
}
