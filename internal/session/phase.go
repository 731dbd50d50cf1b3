package session

import "fmt"

// Phase is one of the four ordered session states (spec §4.3). It holds no
// game data of its own — it exists only to keep the rules engine and the
// session loop honest about ordering.
type Phase uint8

const (
	Registration Phase = iota
	Placement
	Playing
	Finished
)

func (p Phase) String() string {
	switch p {
	case Registration:
		return "REGISTRATION"
	case Placement:
		return "PLACEMENT"
	case Playing:
		return "PLAYING"
	case Finished:
		return "FINISHED"
	default:
		return "UNKNOWN"
	}
}

// PhaseGate enforces the legal ordering REGISTRATION -> PLACEMENT ->
// PLAYING -> FINISHED and rejects any transition that skips or reverses.
type PhaseGate struct {
	current Phase
}

// NewPhaseGate returns a gate starting in REGISTRATION.
func NewPhaseGate() *PhaseGate {
	return &PhaseGate{current: Registration}
}

// Current returns the current phase.
func (g *PhaseGate) Current() Phase {
	return g.current
}

// Advance moves the gate to the next phase in sequence. It fails if to is
// not the immediate successor of the current phase.
func (g *PhaseGate) Advance(to Phase) error {
	if to != g.current+1 {
		return fmt.Errorf("illegal phase transition: %s -> %s", g.current, to)
	}
	g.current = to
	return nil
}

// Abort forces the gate straight to FINISHED from any phase. It is the one
// deliberate exception to the sequential ordering Advance enforces, reserved
// for peer disconnect handling: a disconnect during REGISTRATION or
// PLACEMENT must still end the session even though Finished is not the
// immediate successor of those phases.
func (g *PhaseGate) Abort() {
	g.current = Finished
}
