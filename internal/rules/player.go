package rules

// Player is the per-slot record described in spec §3: nickname, board,
// fleet, remaining-ship counter, and surrender flag. Email is kept as the
// opaque label spec.md's Non-goals call for (no authentication).
type Player struct {
	Nickname       string
	Email          string
	Board          Board
	Fleet          []Ship
	ShipsRemaining int
	Surrendered    bool
	registered     bool
	placed         bool
}

func newPlayer() *Player {
	return &Player{}
}
