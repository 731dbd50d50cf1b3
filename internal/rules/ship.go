package rules

// ShipType identifies one of the five hull classes in the fixed fleet
// composition (spec §3).
type ShipType string

const (
	Portaaviones ShipType = "PORTAAVIONES"
	Buque        ShipType = "BUQUE"
	Crucero      ShipType = "CRUCERO"
	Destructor   ShipType = "DESTRUCTOR"
	Submarino    ShipType = "SUBMARINO"
)

// fleetSpec is one row of the fleet composition table in spec §3.
type fleetSpec struct {
	Type  ShipType
	Count int
	Size  int
}

// FleetComposition is the fixed 9-ship, 22-cell fleet every player must
// place. Order matches spec §3's table.
var FleetComposition = []fleetSpec{
	{Portaaviones, 1, 5},
	{Buque, 1, 4},
	{Crucero, 2, 3},
	{Destructor, 2, 2},
	{Submarino, 3, 1},
}

// TotalShips and TotalCells are the invariants derived from FleetComposition.
const (
	TotalShips = 9
	TotalCells = 22
)

func shipSizeFor(t ShipType) (int, bool) {
	for _, s := range FleetComposition {
		if s.Type == t {
			return s.Size, true
		}
	}
	return 0, false
}

// Ship is a placed hull: its declared type plus the cells it occupies, in
// exactly the order given by the client in PLACE_SHIPS. The
// straightness/contiguity check does not depend on that order.
type Ship struct {
	Type   ShipType
	Cells  []Coordinate
	hits   map[Coordinate]bool
}

// NewShip validates size, bounds, and straightness/contiguity for ships of
// size >= 2, and returns the constructed Ship.
func NewShip(t ShipType, cells []Coordinate) (Ship, error) {
	declaredSize, ok := shipSizeFor(t)
	if !ok {
		return Ship{}, ErrBadFleetComposition("unknown ship type: " + string(t))
	}
	if len(cells) != declaredSize {
		return Ship{}, ErrBadFleetComposition("ship " + string(t) + " has the wrong cell count")
	}
	for _, c := range cells {
		if !c.InBounds() {
			return Ship{}, ErrOutOfBounds(c)
		}
	}
	if len(cells) >= 2 && !isStraightContiguous(cells) {
		return Ship{}, ErrNotShipStraight(t)
	}
	return Ship{Type: t, Cells: append([]Coordinate(nil), cells...), hits: make(map[Coordinate]bool, len(cells))}, nil
}

// isStraightContiguous reports whether cells form a single horizontal or
// vertical run with no gaps and no repeats, regardless of the order they
// were given in (spec §3: "orientation is not transmitted but implied by
// the coordinates").
func isStraightContiguous(cells []Coordinate) bool {
	sameRow, sameCol := true, true
	for _, c := range cells[1:] {
		if c.Row != cells[0].Row {
			sameRow = false
		}
		if c.Col != cells[0].Col {
			sameCol = false
		}
	}
	if !sameRow && !sameCol {
		return false
	}

	seen := make(map[int]bool, len(cells))
	minV, maxV := 1<<30, -(1 << 30)
	for _, c := range cells {
		v := c.Col
		if sameCol {
			v = c.Row
		}
		if seen[v] {
			return false
		}
		seen[v] = true
		if v < minV {
			minV = v
		}
		if v > maxV {
			maxV = v
		}
	}
	return maxV-minV+1 == len(cells)
}

// RegisterHit marks coord as hit on this ship. Caller guarantees coord is
// one of the ship's cells.
func (s *Ship) RegisterHit(coord Coordinate) {
	if s.hits == nil {
		s.hits = make(map[Coordinate]bool, len(s.Cells))
	}
	s.hits[coord] = true
}

// IsSunk reports whether every cell of the ship has been hit.
func (s *Ship) IsSunk() bool {
	if len(s.hits) < len(s.Cells) {
		return false
	}
	for _, c := range s.Cells {
		if !s.hits[c] {
			return false
		}
	}
	return true
}

// Occupies reports whether coord belongs to this ship.
func (s *Ship) Occupies(coord Coordinate) bool {
	for _, c := range s.Cells {
		if c == coord {
			return true
		}
	}
	return false
}
