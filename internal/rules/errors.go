package rules

import "fmt"

// Error codes for RuleError. These are internal to the rules engine; the
// session layer maps every RuleError to a wire ERROR|400,<description>
// frame (spec §7) without needing to inspect the code, but tests and logs
// use it to distinguish failure kinds without string matching.
const (
	ErrCodeInvalidPlayerID uint8 = iota
	ErrCodeAlreadyRegistered
	ErrCodeEmptyNickname
	ErrCodeAlreadyPlaced
	ErrCodeNotBothRegistered
	ErrCodeBadFleetComposition
	ErrCodeOutOfBounds
	ErrCodeOverlappingShips
	ErrCodeNotShipStraight
	ErrCodeNotYourTurn
	ErrCodeGameOver
	ErrCodeCellAlreadyResolved
	ErrCodeMalformedCoordinate
)

// RuleError is the rules engine's error kind, grounded in the teacher's
// internal/error package (constructor functions returning plain errors with
// a stable shape) but carrying a numeric code so callers can branch on it.
type RuleError struct {
	Code uint8
	msg  string
}

func (e RuleError) Error() string {
	return e.msg
}

func newRuleError(code uint8, format string, args ...interface{}) RuleError {
	return RuleError{Code: code, msg: fmt.Sprintf(format, args...)}
}

func ErrInvalidPlayerID(id int) error {
	return newRuleError(ErrCodeInvalidPlayerID, "invalid player id: %d", id)
}

func ErrAlreadyRegistered(id int) error {
	return newRuleError(ErrCodeAlreadyRegistered, "player %d is already registered", id)
}

func ErrEmptyNickname() error {
	return newRuleError(ErrCodeEmptyNickname, "nickname must not be empty")
}

func ErrAlreadyPlaced(id int) error {
	return newRuleError(ErrCodeAlreadyPlaced, "player %d has already placed their fleet", id)
}

func ErrNotBothRegistered() error {
	return newRuleError(ErrCodeNotBothRegistered, "both players must register before placing ships")
}

func ErrBadFleetComposition(reason string) error {
	return newRuleError(ErrCodeBadFleetComposition, "invalid fleet composition: %s", reason)
}

func ErrOutOfBounds(c Coordinate) error {
	return newRuleError(ErrCodeOutOfBounds, "coordinate out of bounds: %s", c)
}

func ErrOverlappingShips(c Coordinate) error {
	return newRuleError(ErrCodeOverlappingShips, "cell already occupied by another ship: %s", c)
}

func ErrNotShipStraight(shipType ShipType) error {
	return newRuleError(ErrCodeNotShipStraight, "ship %s is not a straight, contiguous line", shipType)
}

func ErrNotYourTurn(id int) error {
	return newRuleError(ErrCodeNotYourTurn, "it is not player %d's turn", id)
}

func ErrGameOver() error {
	return newRuleError(ErrCodeGameOver, "the game has already ended")
}

func ErrCellAlreadyResolved(c Coordinate) error {
	return newRuleError(ErrCodeCellAlreadyResolved, "cell already shot: %s", c)
}

func ErrMalformedCoordinate(raw string) error {
	return newRuleError(ErrCodeMalformedCoordinate, "malformed coordinate: %q", raw)
}
