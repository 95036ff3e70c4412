// Command enginedemo builds a two-player game and drives it forward by
// always passing priority and declaring no attackers, for at most 200
// rounds of player input or until the engine stalls. It does not print
// the applied actions; its only output is log lines. It exists to give
// cmd/enginewatch something to restart and to sanity-check the wiring
// between builder, engine, and rules end to end; it is not a playable
// client.
package main

import (
	"fmt"
	"os"

	"mtg-engine/internal/builder"
	"mtg-engine/internal/config"
	"mtg-engine/internal/engine"
	"mtg-engine/internal/logger"
	"mtg-engine/internal/observer"
	"mtg-engine/internal/rules"
	"mtg-engine/internal/state"

	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()
	if err := logger.Init(&cfg.LogLevel); err != nil {
		fmt.Fprintln(os.Stderr, "failed to initialize logger:", err)
		os.Exit(1)
	}
	defer logger.Sync()

	built := builder.New().AddPlayer("alice").AddPlayer("bob").Build()
	logger.WithEngineContext(built.SessionID, "").Info("game built")

	e := built.Engine
	for turns := 0; turns < 200; turns++ {
		r := e.TickUntilPlayerInput()
		if r.Kind == engine.Stalled {
			logger.Get().Warn("engine stalled")
			if cfg.StallIsFatal {
				os.Exit(1)
			}
			return
		}

		from, ok := e.ExpectingInputFrom()
		if !ok {
			continue
		}

		st := e.State()
		if st.GameStep.Step.Phase == state.PhaseCombat && st.GameStep.Step.Combat == state.DeclareAttackers && !st.HasPriority {
			if err := e.PlayerInput(observer.Input{Source: from, Payload: rules.AttackersInput{Kind: rules.Finished}}); err != nil {
				logger.Get().Error("rejected attackers input", zap.Error(err))
			}
			continue
		}

		if err := e.PlayerInput(observer.Input{Source: from, Payload: rules.PriorityInput{Kind: rules.PassPriority}}); err != nil {
			logger.Get().Error("rejected priority input", zap.Error(err))
			return
		}
	}
}
