package builder_test

import (
	"testing"

	"mtg-engine/internal/builder"
	"mtg-engine/internal/engine"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildWiresZonesAndPlayers(t *testing.T) {
	built := builder.New().AddPlayer("alice").AddPlayer("bob").Build()

	require.NotEmpty(t, built.SessionID)

	s := built.Engine.State()
	require.Len(t, s.Players, 2)

	for _, p := range s.Players {
		_, ok := s.Zone(p.Library)
		assert.True(t, ok)
		_, ok = s.Zone(p.Hand)
		assert.True(t, ok)
		_, ok = s.Zone(p.Graveyard)
		assert.True(t, ok)
	}

	_, ok := s.Zone(s.SharedZones.Battlefield)
	assert.True(t, ok)
	_, ok = s.Zone(s.SharedZones.Stack)
	assert.True(t, ok)
}

// TestBuiltGameReachesFirstRealPriorityWindow confirms the base-rule
// observers the builder attaches auto-advance the pre-game starting steps
// and Untap without any player input, surfacing the first real
// NeedPlayerInput at Upkeep.
func TestBuiltGameReachesFirstRealPriorityWindow(t *testing.T) {
	built := builder.New().AddPlayer("alice").AddPlayer("bob").Build()

	r := built.Engine.TickUntilPlayerInput()
	require.Equal(t, engine.NeedPlayerInput, r.Kind)

	_, ok := built.Engine.ExpectingInputFrom()
	assert.True(t, ok)
}
