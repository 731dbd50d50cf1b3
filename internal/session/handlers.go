package session

import (
	"time"

	"github.com/lrivas/battleship-tcp/internal/protocol"
	"github.com/lrivas/battleship-tcp/internal/rules"
)

// handleRegistration implements spec §4.4 step 1.
func (s *Session) handleRegistration(peerID int, msg protocol.Message) {
	reg, ok := msg.(protocol.Register)
	if !ok {
		s.sendError(peerID, 400, "expected REGISTER")
		return
	}
	if err := s.engine.Register(peerID, reg.Nickname, reg.Email); err != nil {
		s.sendRuleError(peerID, err)
		return
	}
	s.logger.Printf("session %d: player %d registered as %q", s.id, peerID, reg.Nickname)

	if s.engine.BothRegistered() {
		if err := s.phaseGate.Advance(Placement); err != nil {
			s.logger.Printf("session %d: %v", s.id, err)
			return
		}
		s.logger.Printf("session %d: entering PLACEMENT", s.id)
		s.broadcastStatus()
	}
}

// handlePlacement implements spec §4.4 step 2.
func (s *Session) handlePlacement(peerID int, msg protocol.Message) {
	ps, ok := msg.(protocol.PlaceShips)
	if !ok {
		s.sendError(peerID, 400, "expected PLACE_SHIPS")
		return
	}

	ships := make([]rules.Ship, 0, len(ps.Ships))
	for _, spec := range ps.Ships {
		ship, err := rules.NewShip(spec.Type, spec.Coords)
		if err != nil {
			s.sendRuleError(peerID, err)
			return
		}
		ships = append(ships, ship)
	}

	if err := s.engine.PlaceShips(peerID, ships); err != nil {
		s.sendRuleError(peerID, err)
		return
	}
	s.logger.Printf("session %d: player %d placed fleet", s.id, peerID)

	if s.engine.BothPlaced() {
		if err := s.phaseGate.Advance(Playing); err != nil {
			s.logger.Printf("session %d: %v", s.id, err)
			return
		}
		s.logger.Printf("session %d: entering PLAYING", s.id)
		s.turnStartedAt = time.Now()
		s.resetTurnTimer()
		s.broadcastStatus()
	}
}

// handlePlaying implements spec §4.4 step 3.
func (s *Session) handlePlaying(peerID int, msg protocol.Message) {
	switch m := msg.(type) {
	case protocol.Surrender:
		s.handleSurrender(peerID)

	case protocol.Shoot:
		s.handleShoot(peerID, m.Coord)

	default:
		s.sendError(peerID, 400, "unexpected message during PLAYING")
	}
}

func (s *Session) handleShoot(peerID int, coord rules.Coordinate) {
	if peerID != s.engine.CurrentTurn() {
		s.sendError(peerID, 400, "not your turn")
		return
	}

	result, err := s.engine.ProcessShot(peerID, coord)
	if err != nil {
		// Invalid shot: turn stays with the shooter, timer keeps running
		// (spec §4.2 turn rotation rule).
		s.sendRuleError(peerID, err)
		return
	}

	s.logger.Printf("session %d: player %d shot %s -> %v", s.id, peerID, coord, result.Outcome)

	if result.GameOver {
		s.concludeGame(result.WinnerID, rules.CauseAllShipsSunk)
		return
	}

	s.turnStartedAt = time.Now()
	s.resetTurnTimer()
	s.broadcastStatus()
}

// handleSurrender implements spec §4.4 step 3d: a surrender at any time
// during PLAYING ends the game immediately.
func (s *Session) handleSurrender(peerID int) {
	if err := s.engine.Surrender(peerID); err != nil {
		s.sendRuleError(peerID, err)
		return
	}
	winnerID, _ := s.engine.Winner()
	s.logger.Printf("session %d: player %d surrendered", s.id, peerID)
	s.concludeGame(winnerID, rules.CauseSurrender)
}

// handleTurnTimeout implements spec §4.4 step 3b: the active player
// forfeits the turn; the game does not end.
func (s *Session) handleTurnTimeout() {
	s.engine.ForceSwitchTurn()
	s.turnStartedAt = time.Now()
	s.resetTurnTimer()
	s.logger.Printf("session %d: turn timed out, now player %d's turn", s.id, s.engine.CurrentTurn())
	s.broadcastStatus()
}

// handleDisconnect implements spec §4.4 step 4, uniformly across phases.
// spec.md leaves the survivor's message as an open "YOU_WIN or an
// opponent-disconnected ERROR" choice; the original's handle_disconnect
// (server/src/server.cpp) always takes the ERROR branch, in every phase
// including PLAYING, and never calls into a GAME_OVER path on disconnect.
// This mirrors that uniformly rather than treating PLAYING specially (see
// DESIGN.md).
func (s *Session) handleDisconnect(peerID int) {
	survivor := s.opponentOf(peerID)
	s.logger.Printf("session %d: player %d disconnected", s.id, peerID)

	_ = s.engine.Disconnect(peerID)
	s.sendError(survivor, 400, "opponent disconnected")
	s.phaseGate.Abort()
	s.recordOutcome(rules.CauseDisconnect)
}

// concludeGame sends the terminal GAME_OVER pair and advances to FINISHED.
// Only reachable from PLAYING, where Advance(Finished) is always legal.
func (s *Session) concludeGame(winnerID int, cause rules.WinCause) {
	loserID := s.opponentOf(winnerID)
	s.sendGameOver(winnerID, "YOU_WIN")
	s.sendGameOver(loserID, "YOU_LOSE")
	if err := s.phaseGate.Advance(Finished); err != nil {
		s.logger.Printf("session %d: %v", s.id, err)
	}
	s.recordOutcome(cause)
}

func (s *Session) recordOutcome(cause rules.WinCause) {
	s.analytics.SessionEnded(s.id, causeLabel(cause))
}

func causeLabel(cause rules.WinCause) string {
	switch cause {
	case rules.CauseAllShipsSunk:
		return "sunk"
	case rules.CauseSurrender:
		return "surrender"
	case rules.CauseDisconnect:
		return "disconnect"
	default:
		return "unknown"
	}
}
