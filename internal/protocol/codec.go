package protocol

import (
	"strconv"
	"strings"

	"github.com/lrivas/battleship-tcp/internal/rules"
)

// Parse turns a raw frame (including its trailing '\n', per spec §4.1)
// into a Message. It is total on valid inputs: every well-formed frame in
// the grammar parses, and every malformed frame returns a ProtocolError.
func Parse(frame []byte) (Message, error) {
	if len(frame) == 0 || frame[len(frame)-1] != '\n' {
		return nil, errMissingNewline()
	}
	line := string(frame[:len(frame)-1])

	sep := strings.IndexByte(line, '|')
	if sep < 0 {
		return nil, errMissingSeparator()
	}
	typ := line[:sep]
	payload := line[sep+1:]

	if strings.IndexByte(payload, '|') >= 0 {
		return nil, errExtraSeparator()
	}

	switch typ {
	case "PLAYER_ID":
		return parsePlayerID(payload)
	case "REGISTER":
		return parseRegister(payload)
	case "PLACE_SHIPS":
		return parsePlaceShips(payload)
	case "SHOOT":
		return parseShoot(payload)
	case "STATUS":
		return parseStatus(payload)
	case "SURRENDER":
		return parseSurrender(payload)
	case "GAME_OVER":
		return parseGameOver(payload)
	case "ERROR":
		return parseError(payload)
	default:
		return nil, errUnknownType(typ)
	}
}

func parsePlayerID(payload string) (Message, error) {
	if payload == "" {
		return nil, errEmptyField("player id")
	}
	id, err := strconv.Atoi(payload)
	if err != nil {
		return nil, errMalformedPayload("PLAYER_ID", "not an integer")
	}
	return PlayerID{ID: id}, nil
}

func parseRegister(payload string) (Message, error) {
	parts := strings.Split(payload, ",")
	if len(parts) != 2 {
		return nil, errMalformedPayload("REGISTER", "expected <nickname>,<email>")
	}
	nickname, email := parts[0], parts[1]
	if nickname == "" {
		return nil, errEmptyField("nickname")
	}
	if email == "" {
		return nil, errEmptyField("email")
	}
	return Register{Nickname: nickname, Email: email}, nil
}

func parsePlaceShips(payload string) (Message, error) {
	if payload == "" {
		return nil, errEmptyField("fleet")
	}
	shipStrs := strings.Split(payload, ";")
	ships := make([]ShipSpec, 0, len(shipStrs))
	for _, shipStr := range shipStrs {
		colon := strings.IndexByte(shipStr, ':')
		if colon < 0 {
			return nil, errMalformedPayload("PLACE_SHIPS", "expected <ShipType>:<coord>(,<coord>)*")
		}
		typeStr := shipStr[:colon]
		coordsStr := shipStr[colon+1:]
		if typeStr == "" {
			return nil, errEmptyField("ship type")
		}
		if coordsStr == "" {
			return nil, errEmptyField("ship coordinates")
		}
		coordStrs := strings.Split(coordsStr, ",")
		coords := make([]rules.Coordinate, 0, len(coordStrs))
		for _, cs := range coordStrs {
			coord, err := rules.ParseCoordinate(cs)
			if err != nil {
				return nil, errMalformedPayload("PLACE_SHIPS", err.Error())
			}
			coords = append(coords, coord)
		}
		ships = append(ships, ShipSpec{Type: rules.ShipType(typeStr), Coords: coords})
	}
	return PlaceShips{Ships: ships}, nil
}

func parseShoot(payload string) (Message, error) {
	if payload == "" {
		return nil, errEmptyField("coordinate")
	}
	coord, err := rules.ParseCoordinate(payload)
	if err != nil {
		return nil, errMalformedPayload("SHOOT", err.Error())
	}
	return Shoot{Coord: coord}, nil
}

func parseStatus(payload string) (Message, error) {
	parts := strings.Split(payload, ";")
	if len(parts) != 5 {
		return nil, errMalformedPayload("STATUS", "expected 5 ';'-separated fields")
	}
	turnStr, ownStr, oppStr, gsStr, secStr := parts[0], parts[1], parts[2], parts[3], parts[4]

	var turn TurnView
	switch turnStr {
	case string(YourTurn):
		turn = YourTurn
	case string(OpponentTurn):
		turn = OpponentTurn
	default:
		return nil, errMalformedPayload("STATUS", "invalid turn field")
	}

	ownCells, err := parseCellList(ownStr)
	if err != nil {
		return nil, err
	}
	oppCells, err := parseCellList(oppStr)
	if err != nil {
		return nil, err
	}

	var gs rules.GameState
	switch gsStr {
	case string(rules.Waiting):
		gs = rules.Waiting
	case string(rules.Ongoing):
		gs = rules.Ongoing
	case string(rules.Ended):
		gs = rules.Ended
	default:
		return nil, errMalformedPayload("STATUS", "invalid game state field")
	}

	seconds, err := strconv.Atoi(secStr)
	if err != nil {
		return nil, errMalformedPayload("STATUS", "seconds is not an integer")
	}

	return Status{Turn: turn, OwnCells: ownCells, OppCells: oppCells, GameState: gs, Seconds: seconds}, nil
}

func parseCellList(s string) ([]CellEntry, error) {
	if s == "" {
		return nil, nil
	}
	entryStrs := strings.Split(s, ",")
	entries := make([]CellEntry, 0, len(entryStrs))
	for _, es := range entryStrs {
		colon := strings.IndexByte(es, ':')
		if colon < 0 {
			return nil, errMalformedPayload("STATUS", "expected <coord>:<cellState>")
		}
		coord, err := rules.ParseCoordinate(es[:colon])
		if err != nil {
			return nil, errMalformedPayload("STATUS", err.Error())
		}
		state, ok := rules.ParseCellState(es[colon+1:])
		if !ok {
			return nil, errMalformedPayload("STATUS", "invalid cell state")
		}
		entries = append(entries, CellEntry{Coord: coord, State: state})
	}
	return entries, nil
}

func parseSurrender(payload string) (Message, error) {
	if payload != "" {
		return nil, errMalformedPayload("SURRENDER", "payload must be empty")
	}
	return Surrender{}, nil
}

func parseGameOver(payload string) (Message, error) {
	if payload == "" {
		return nil, errEmptyField("winner")
	}
	return GameOver{Winner: payload}, nil
}

func parseError(payload string) (Message, error) {
	comma := strings.IndexByte(payload, ',')
	if comma < 0 {
		return nil, errMalformedPayload("ERROR", "expected <code>,<description>")
	}
	codeStr, desc := payload[:comma], payload[comma+1:]
	code, err := strconv.Atoi(codeStr)
	if err != nil {
		return nil, errMalformedPayload("ERROR", "code is not an integer")
	}
	if desc == "" {
		return nil, errEmptyField("description")
	}
	return Error{Code: code, Description: desc}, nil
}

// Build is the inverse of Parse: for every Message it can construct, it
// produces the single well-formed frame (including trailing '\n') that
// Parse would decode back into an equal Message. Build is deterministic:
// STATUS cell lists preserve the order given in the struct (callers are
// expected to pass Board.Cells(), which is already stable row-major
// order).
func Build(m Message) (string, error) {
	var b strings.Builder
	switch msg := m.(type) {
	case PlayerID:
		b.WriteString("PLAYER_ID|")
		b.WriteString(strconv.Itoa(msg.ID))

	case Register:
		if msg.Nickname == "" || msg.Email == "" {
			return "", errEmptyField("nickname/email")
		}
		b.WriteString("REGISTER|")
		b.WriteString(msg.Nickname)
		b.WriteByte(',')
		b.WriteString(msg.Email)

	case PlaceShips:
		if len(msg.Ships) == 0 {
			return "", errEmptyField("fleet")
		}
		b.WriteString("PLACE_SHIPS|")
		for i, ship := range msg.Ships {
			if i > 0 {
				b.WriteByte(';')
			}
			b.WriteString(string(ship.Type))
			b.WriteByte(':')
			for j, c := range ship.Coords {
				if j > 0 {
					b.WriteByte(',')
				}
				b.WriteString(c.String())
			}
		}

	case Shoot:
		b.WriteString("SHOOT|")
		b.WriteString(msg.Coord.String())

	case Status:
		b.WriteString("STATUS|")
		b.WriteString(string(msg.Turn))
		b.WriteByte(';')
		writeCellList(&b, msg.OwnCells)
		b.WriteByte(';')
		writeCellList(&b, msg.OppCells)
		b.WriteByte(';')
		b.WriteString(string(msg.GameState))
		b.WriteByte(';')
		b.WriteString(strconv.Itoa(msg.Seconds))

	case Surrender:
		b.WriteString("SURRENDER|")

	case GameOver:
		if msg.Winner == "" || strings.ContainsAny(msg.Winner, "|\n") {
			return "", errMalformedPayload("GAME_OVER", "winner label must be non-empty and not contain '|'")
		}
		b.WriteString("GAME_OVER|")
		b.WriteString(msg.Winner)

	case Error:
		if msg.Description == "" || strings.ContainsAny(msg.Description, "|\n") {
			return "", errMalformedPayload("ERROR", "description must be non-empty and not contain '|'")
		}
		b.WriteString("ERROR|")
		b.WriteString(strconv.Itoa(msg.Code))
		b.WriteByte(',')
		b.WriteString(msg.Description)

	default:
		return "", newProtocolError("unbuildable message type: %T", m)
	}

	b.WriteByte('\n')
	return b.String(), nil
}

func writeCellList(b *strings.Builder, cells []CellEntry) {
	for i, c := range cells {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(c.Coord.String())
		b.WriteByte(':')
		b.WriteString(c.State.String())
	}
}
