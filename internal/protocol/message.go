// Package protocol implements the line-delimited text wire protocol
// described in spec §4.1 and §6: pure parse/build functions over a small
// tagged-union alphabet of messages, no I/O and no shared state.
package protocol

import "github.com/lrivas/battleship-tcp/internal/rules"

// Kind discriminates the members of the Message sum type.
type Kind uint8

const (
	KindPlayerID Kind = iota
	KindRegister
	KindPlaceShips
	KindShoot
	KindStatus
	KindSurrender
	KindGameOver
	KindError
)

// Message is implemented by every concrete frame payload. It is a closed
// alphabet: the only implementations are the ones in this file.
type Message interface {
	Kind() Kind
}

// PlayerID is sent server -> client on join: "PLAYER_ID|<1|2>".
type PlayerID struct {
	ID int
}

func (PlayerID) Kind() Kind { return KindPlayerID }

// Register is sent client -> server: "REGISTER|<nickname>,<email>".
type Register struct {
	Nickname string
	Email    string
}

func (Register) Kind() Kind { return KindRegister }

// ShipSpec is one "<ShipType>:<coord>(,<coord>)*" entry of a PLACE_SHIPS
// payload. The codec does not validate ship-type membership or geometry —
// that is the rules engine's job (spec §4.1 vs §4.2 split of concerns).
type ShipSpec struct {
	Type   rules.ShipType
	Coords []rules.Coordinate
}

// PlaceShips is sent client -> server: "PLACE_SHIPS|<ship>(;<ship>)*".
type PlaceShips struct {
	Ships []ShipSpec
}

func (PlaceShips) Kind() Kind { return KindPlaceShips }

// Shoot is sent client -> server: "SHOOT|<coord>".
type Shoot struct {
	Coord rules.Coordinate
}

func (Shoot) Kind() Kind { return KindShoot }

// TurnView is the per-recipient turn field of a STATUS frame (spec §3).
type TurnView string

const (
	YourTurn     TurnView = "YOUR_TURN"
	OpponentTurn TurnView = "OPPONENT_TURN"
)

// CellEntry is one "<coord>:<cellState>" entry of a STATUS board list.
type CellEntry struct {
	Coord rules.Coordinate
	State rules.CellState
}

// Status is sent server -> client on any state change: full grammar in
// spec §4.1/§6.
type Status struct {
	Turn      TurnView
	OwnCells  []CellEntry
	OppCells  []CellEntry
	GameState rules.GameState
	Seconds   int
}

func (Status) Kind() Kind { return KindStatus }

// Surrender is sent client -> server at any point during PLAYING. Its
// payload is always empty but the frame still carries the trailing "|".
type Surrender struct{}

func (Surrender) Kind() Kind { return KindSurrender }

// GameOver is sent server -> client exactly once, terminally. Winner is an
// opaque label — spec.md's open questions call for treating it as a
// non-"|" non-newline string rather than allowing arbitrary structure.
type GameOver struct {
	Winner string
}

func (GameOver) Kind() Kind { return KindGameOver }

// Error is sent server -> client to report a protocol or rules failure
// (spec §7). Code is a small integer (400 for every case this
// implementation raises); Description is free text without "|".
type Error struct {
	Code        int
	Description string
}

func (Error) Kind() Kind { return KindError }
