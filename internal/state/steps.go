package state

// StartingStep covers the pseudo-steps a game passes through before the
// first real turn: they exist so the engine can broadcast transitions into
// the first real state using the same machinery as the rest of the game.
type StartingStep int

const (
	// Init is the step the engine starts up in.
	Init StartingStep = iota
	// ChoosingTurnOrder is when turn order is established; active player
	// is meaningless during this step.
	ChoosingTurnOrder
	// InitialHandDraw covers mulligan decisions.
	InitialHandDraw
)

// BeginningStep is one of the three steps of the beginning phase.
type BeginningStep int

const (
	Untap BeginningStep = iota
	Upkeep
	Draw
)

// CombatStep is one of the five steps of the combat phase.
type CombatStep int

const (
	StartOfCombat CombatStep = iota
	DeclareAttackers
	DeclareBlockers
	CombatDamage
	EndOfCombat
)

// EndStep is one of the two steps of the ending phase.
type EndStep int

const (
	EndOfTurn EndStep = iota
	Cleanup
)

// Phase tags which top-level phase Step names, so Step can carry the right
// payload without resorting to an empty interface.
type Phase int

const (
	PhaseStarting Phase = iota
	PhaseBeginning
	PhasePreCombatMain
	PhaseCombat
	PhasePostCombatMain
	PhaseEnd
)

// Step names exactly one step of the turn structure. Only the field named
// by Phase is meaningful.
type Step struct {
	Phase    Phase
	Starting StartingStep
	Begin    BeginningStep
	Combat   CombatStep
	End      EndStep
}

func StartingPhase(s StartingStep) Step { return Step{Phase: PhaseStarting, Starting: s} }
func BeginningPhase(s BeginningStep) Step { return Step{Phase: PhaseBeginning, Begin: s} }
func PreCombatMainPhase() Step             { return Step{Phase: PhasePreCombatMain} }
func CombatPhase(s CombatStep) Step        { return Step{Phase: PhaseCombat, Combat: s} }
func PostCombatMainPhase() Step            { return Step{Phase: PhasePostCombatMain} }
func EndPhase(s EndStep) Step              { return Step{Phase: PhaseEnd, End: s} }

// Equal reports whether two steps name the same phase and sub-step.
func (s Step) Equal(other Step) bool {
	if s.Phase != other.Phase {
		return false
	}
	switch s.Phase {
	case PhaseStarting:
		return s.Starting == other.Starting
	case PhaseBeginning:
		return s.Begin == other.Begin
	case PhaseCombat:
		return s.Combat == other.Combat
	case PhaseEnd:
		return s.End == other.End
	default:
		return true
	}
}

// SubStep marks whether a step is still in progress or wrapping up.
type SubStep int

const (
	InProgress SubStep = iota
	Ending
)

// HasPriority reports whether players normally receive priority during
// this step. The pre-game starting steps and, within a turn, Untap and
// Cleanup are the steps where no player receives priority: they advance
// automatically rather than waiting on a priority round.
func (s Step) HasPriority() bool {
	if s.Phase == PhaseStarting {
		return false
	}
	if s.Phase == PhaseBeginning && s.Begin == Untap {
		return false
	}
	if s.Phase == PhaseEnd && s.End == Cleanup {
		return false
	}
	return true
}
