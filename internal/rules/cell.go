package rules

// CellState is the state of a single board cell (spec §3).
type CellState uint8

const (
	Water CellState = iota
	ShipCell
	Hit
	Sunk
	Miss
)

func (c CellState) String() string {
	switch c {
	case Water:
		return "WATER"
	case ShipCell:
		return "SHIP"
	case Hit:
		return "HIT"
	case Sunk:
		return "SUNK"
	case Miss:
		return "MISS"
	default:
		return "WATER"
	}
}

// ParseCellState parses the wire form of a cell state, used by the codec
// when decoding STATUS boards.
func ParseCellState(s string) (CellState, bool) {
	switch s {
	case "WATER":
		return Water, true
	case "SHIP":
		return ShipCell, true
	case "HIT":
		return Hit, true
	case "SUNK":
		return Sunk, true
	case "MISS":
		return Miss, true
	default:
		return 0, false
	}
}

// Board is a flattened 10x10 grid of cell states, indexed by
// Coordinate.Index(). The zero value is a fully-WATER board.
type Board [BoardSize * BoardSize]CellState

// Get returns the state at coord.
func (b *Board) Get(coord Coordinate) CellState {
	return b[coord.Index()]
}

// Set writes the state at coord.
func (b *Board) Set(coord Coordinate, state CellState) {
	b[coord.Index()] = state
}

// Cells returns every cell on the board, WATER included, in row-major
// order. get_status in the original implementation copies a player's full
// board array unfiltered (protocol/src/game_logic.cpp) and the server sends
// that unfiltered copy straight onto the wire (server/src/server.cpp
// send_status) — spec §4.2/§4.4 carries the same rule forward ("opponent
// board (full cell list", "Own board is sent fully"), so this returns all
// 100 cells rather than only the resolved ones.
func (b *Board) Cells() []Coordinate {
	out := make([]Coordinate, 0, BoardSize*BoardSize)
	for i := range b {
		out = append(out, Coordinate{Row: i / BoardSize, Col: i % BoardSize})
	}
	return out
}

// Masked returns a copy of the board with every SHIP cell replaced by
// WATER, used to build the opponent-facing view (spec §4.4: "the session is
// responsible for substituting SHIP with WATER on the opponent view").
func (b *Board) Masked() Board {
	masked := *b
	for i, st := range masked {
		if st == ShipCell {
			masked[i] = Water
		}
	}
	return masked
}
