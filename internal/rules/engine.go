package rules

// GameState is the coarse view field derived from registration/placement/
// termination progress (spec §3).
type GameState string

const (
	Waiting GameState = "WAITING"
	Ongoing GameState = "ONGOING"
	Ended   GameState = "ENDED"
)

// WinCause records why the game ended, for logging/analytics. It has no
// wire representation of its own — the session maps it to GAME_OVER frames.
type WinCause uint8

const (
	CauseNone WinCause = iota
	CauseAllShipsSunk
	CauseSurrender
	CauseDisconnect
)

// ShotOutcome is the result of a single resolved shot.
type ShotOutcome uint8

const (
	OutcomeMiss ShotOutcome = iota
	OutcomeHit
	OutcomeSunk
)

// ShotResult is returned by ProcessShot on success.
type ShotResult struct {
	Outcome    ShotOutcome
	SunkShip   ShipType    // valid iff Outcome == OutcomeSunk
	SunkCells  []Coordinate // valid iff Outcome == OutcomeSunk
	GameOver   bool
	WinnerID   int // valid iff GameOver
}

// Engine owns two boards, per-player fleets, the turn pointer and the
// terminal flag (spec §4.2). It is pure with respect to I/O: every method
// is a plain function of engine state plus its arguments.
type Engine struct {
	players     map[int]*Player
	currentTurn int
	gameOver    bool
	winnerID    int
	winCause    WinCause
}

// NewEngine returns a fresh engine in the pre-registration state. The
// starting turn is fixed to player 1 the moment play begins (spec §4.2).
func NewEngine() *Engine {
	return &Engine{
		players:     map[int]*Player{1: newPlayer(), 2: newPlayer()},
		currentTurn: 1,
	}
}

func validPlayerID(id int) bool {
	return id == 1 || id == 2
}

func (e *Engine) opponentID(id int) int {
	if id == 1 {
		return 2
	}
	return 1
}

// Register implements spec §4.2's register operation.
func (e *Engine) Register(playerID int, nickname, email string) error {
	if !validPlayerID(playerID) {
		return ErrInvalidPlayerID(playerID)
	}
	if nickname == "" {
		return ErrEmptyNickname()
	}
	p := e.players[playerID]
	if p.registered {
		return ErrAlreadyRegistered(playerID)
	}
	p.Nickname = nickname
	p.Email = email
	p.registered = true
	return nil
}

// BothRegistered reports whether both slots have completed registration.
func (e *Engine) BothRegistered() bool {
	return e.players[1].registered && e.players[2].registered
}

// ShipsPlaced returns the number of ships recorded for playerID.
func (e *Engine) ShipsPlaced(playerID int) int {
	if !validPlayerID(playerID) {
		return 0
	}
	return len(e.players[playerID].Fleet)
}

// PlaceShips implements spec §4.2's place_ships operation.
func (e *Engine) PlaceShips(playerID int, fleet []Ship) error {
	if !validPlayerID(playerID) {
		return ErrInvalidPlayerID(playerID)
	}
	if !e.BothRegistered() {
		return ErrNotBothRegistered()
	}
	p := e.players[playerID]
	if p.placed {
		return ErrAlreadyPlaced(playerID)
	}
	if err := validateFleetComposition(fleet); err != nil {
		return err
	}

	occupied := make(map[Coordinate]bool, TotalCells)
	for _, ship := range fleet {
		for _, c := range ship.Cells {
			if !c.InBounds() {
				return ErrOutOfBounds(c)
			}
			if occupied[c] {
				return ErrOverlappingShips(c)
			}
			occupied[c] = true
		}
	}

	// All validated: commit.
	var board Board
	for coord := range occupied {
		board.Set(coord, ShipCell)
	}
	p.Board = board
	p.Fleet = fleet
	p.ShipsRemaining = len(fleet)
	p.placed = true
	return nil
}

// BothPlaced reports whether both players have placed a valid fleet.
func (e *Engine) BothPlaced() bool {
	return e.players[1].placed && e.players[2].placed
}

// validateFleetComposition checks the fleet matches spec §3's table exactly
// by type and per-ship cell count (composition only; overlap/bounds are
// checked by the caller once the shape is known-good).
func validateFleetComposition(fleet []Ship) error {
	if len(fleet) != TotalShips {
		return ErrBadFleetComposition("expected 9 ships")
	}
	counts := make(map[ShipType]int, len(FleetComposition))
	for _, spec := range FleetComposition {
		counts[spec.Type] = 0
	}
	totalCells := 0
	for _, ship := range fleet {
		wantSize, ok := shipSizeFor(ship.Type)
		if !ok {
			return ErrBadFleetComposition("unknown ship type: " + string(ship.Type))
		}
		if len(ship.Cells) != wantSize {
			return ErrBadFleetComposition("wrong cell count for " + string(ship.Type))
		}
		counts[ship.Type]++
		totalCells += len(ship.Cells)
	}
	for _, spec := range FleetComposition {
		if counts[spec.Type] != spec.Count {
			return ErrBadFleetComposition("wrong number of " + string(spec.Type))
		}
	}
	if totalCells != TotalCells {
		return ErrBadFleetComposition("total ship cells must be 22")
	}
	return nil
}

// CurrentTurn returns the player id whose turn it is. Undefined (returns 0)
// once the game has ended.
func (e *Engine) CurrentTurn() int {
	if e.gameOver {
		return 0
	}
	return e.currentTurn
}

// ForceSwitchTurn moves the turn pointer to the other player without
// touching board state, used by the session on a turn-timeout forfeit
// (spec §4.4 step 3b: "the turn is lost; the game does not end").
func (e *Engine) ForceSwitchTurn() {
	if e.gameOver {
		return
	}
	e.currentTurn = e.opponentID(e.currentTurn)
}

// ProcessShot implements spec §4.2's process_shot operation and the turn
// rotation rule spelled out immediately below it.
func (e *Engine) ProcessShot(playerID int, coord Coordinate) (ShotResult, error) {
	if e.gameOver {
		return ShotResult{}, ErrGameOver()
	}
	if !validPlayerID(playerID) {
		return ShotResult{}, ErrInvalidPlayerID(playerID)
	}
	if playerID != e.currentTurn {
		return ShotResult{}, ErrNotYourTurn(playerID)
	}
	if !coord.InBounds() {
		return ShotResult{}, ErrOutOfBounds(coord)
	}

	targetID := e.opponentID(playerID)
	target := e.players[targetID]

	switch target.Board.Get(coord) {
	case Miss, Hit, Sunk:
		return ShotResult{}, ErrCellAlreadyResolved(coord)

	case Water:
		target.Board.Set(coord, Miss)
		e.currentTurn = targetID
		return ShotResult{Outcome: OutcomeMiss}, nil

	case ShipCell:
		target.Board.Set(coord, Hit)
		ship := findShipAt(target.Fleet, coord)
		if ship != nil {
			ship.RegisterHit(coord)
		}

		result := ShotResult{Outcome: OutcomeHit}

		if ship != nil && ship.IsSunk() {
			for _, c := range ship.Cells {
				target.Board.Set(c, Sunk)
			}
			target.ShipsRemaining--
			result.Outcome = OutcomeSunk
			result.SunkShip = ship.Type
			result.SunkCells = append([]Coordinate(nil), ship.Cells...)
		}

		if target.ShipsRemaining <= 0 {
			e.gameOver = true
			e.winnerID = playerID
			e.winCause = CauseAllShipsSunk
			result.GameOver = true
			result.WinnerID = playerID
			return result, nil
		}

		e.currentTurn = targetID
		return result, nil

	default:
		target.Board.Set(coord, Miss)
		e.currentTurn = targetID
		return ShotResult{Outcome: OutcomeMiss}, nil
	}
}

func findShipAt(fleet []Ship, coord Coordinate) *Ship {
	for i := range fleet {
		if fleet[i].Occupies(coord) {
			return &fleet[i]
		}
	}
	return nil
}

// Surrender implements the SURRENDER terminal transition (spec §4.4 step
// 3d): the surrendering player's opponent wins immediately.
func (e *Engine) Surrender(playerID int) error {
	if e.gameOver {
		return ErrGameOver()
	}
	if !validPlayerID(playerID) {
		return ErrInvalidPlayerID(playerID)
	}
	e.players[playerID].Surrendered = true
	e.gameOver = true
	e.winnerID = e.opponentID(playerID)
	e.winCause = CauseSurrender
	return nil
}

// Disconnect implements the disconnect terminal condition (spec §4.4 step
// 4): the surviving peer wins.
func (e *Engine) Disconnect(disconnectedPlayerID int) error {
	if e.gameOver {
		return ErrGameOver()
	}
	if !validPlayerID(disconnectedPlayerID) {
		return ErrInvalidPlayerID(disconnectedPlayerID)
	}
	e.gameOver = true
	e.winnerID = e.opponentID(disconnectedPlayerID)
	e.winCause = CauseDisconnect
	return nil
}

// IsGameOver reports whether a terminal condition has been reached.
func (e *Engine) IsGameOver() bool {
	return e.gameOver
}

// Winner returns the winning player id and whether the game has a winner
// yet.
func (e *Engine) Winner() (int, bool) {
	return e.winnerID, e.gameOver
}

// WinCause returns why the game ended; meaningless before IsGameOver.
func (e *Engine) WinCause() WinCause {
	return e.winCause
}

// GameState derives the view field from registration/placement/termination
// progress (spec §3).
func (e *Engine) GameState() GameState {
	if e.gameOver {
		return Ended
	}
	if e.BothRegistered() && e.BothPlaced() {
		return Ongoing
	}
	return Waiting
}

// GetStatus implements spec §4.2's get_status operation: it returns the
// requesting player's own board (full states) and the opponent's board in
// full (masking for the wire is a session responsibility, spec §4.4).
func (e *Engine) GetStatus(playerID int) (own Board, opponent Board, state GameState, err error) {
	if !validPlayerID(playerID) {
		return Board{}, Board{}, "", ErrInvalidPlayerID(playerID)
	}
	own = e.players[playerID].Board
	opponent = e.players[e.opponentID(playerID)].Board
	state = e.GameState()
	return own, opponent, state, nil
}

// Player exposes the underlying player record read-only, used by the
// session for nickname lookups and logging.
func (e *Engine) Player(playerID int) *Player {
	if !validPlayerID(playerID) {
		return nil
	}
	return e.players[playerID]
}
