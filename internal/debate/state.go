package debate

import "BillFighter/internal/domain"

// Phase is one of the machine's four states.
type Phase int

const (
	PhaseNotStarted Phase = iota
	PhaseFighterTurn
	PhaseHospitalTurn
	PhaseCompleted
)

// State is the machine's position: which persona speaks next and in which
// round. Round is meaningful only between NotStarted and Completed.
type State struct {
	Phase Phase
	Round int
}

// Next advances the machine by one turn for a debate of the given total
// rounds. The fighter always opens round 1; each fighter turn hands over to
// the hospital in the same round; the hospital's turn either starts the next
// round or completes the debate. Pure function with no side effects.
func Next(s State, rounds int) State {
	switch s.Phase {
	case PhaseNotStarted:
		return State{Phase: PhaseFighterTurn, Round: 1}
	case PhaseFighterTurn:
		return State{Phase: PhaseHospitalTurn, Round: s.Round}
	case PhaseHospitalTurn:
		if s.Round < rounds {
			return State{Phase: PhaseFighterTurn, Round: s.Round + 1}
		}
		return State{Phase: PhaseCompleted, Round: s.Round}
	default:
		return s
	}
}

// Role maps a speaking phase to its persona role.
func (s State) Role() domain.DebateRole {
	if s.Phase == PhaseHospitalTurn {
		return domain.RoleHospital
	}
	return domain.RoleFighter
}

// clampRounds bounds a requested round count to [1, max].
func clampRounds(requested, max int) int {
	if requested < 1 {
		return 1
	}
	if requested > max {
		return max
	}
	return requested
}
