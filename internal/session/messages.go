package session

import (
	"time"

	"github.com/lrivas/battleship-tcp/internal/netutil"
	"github.com/lrivas/battleship-tcp/internal/protocol"
	"github.com/lrivas/battleship-tcp/internal/rules"
)

// send builds and writes one frame to peerID's connection. A write failure
// is logged, not propagated: the peer's own reader goroutine will observe
// the dead connection and raise handleDisconnect on its own.
func (s *Session) send(peerID int, msg protocol.Message) {
	frame, err := protocol.Build(msg)
	if err != nil {
		s.logger.Printf("session %d: failed to build frame for player %d: %v", s.id, peerID, err)
		return
	}
	peer, ok := s.peers[peerID]
	if !ok {
		return
	}
	if err := netutil.WriteFrame(peer.conn, frame); err != nil {
		s.logger.Printf("session %d: write to player %d failed: %v", s.id, peerID, err)
	}
}

// sendError sends a wire ERROR|<code>,<description> frame (spec §7).
func (s *Session) sendError(peerID int, code int, description string) {
	s.send(peerID, protocol.Error{Code: code, Description: description})
}

// sendRuleError maps any rules engine failure to a wire ERROR|400 frame. The
// rules engine's internal error codes are for logging and tests; the wire
// grammar has no numeric code of its own besides 400 (spec §7).
func (s *Session) sendRuleError(peerID int, err error) {
	s.sendError(peerID, 400, err.Error())
}

// sendGameOver sends the terminal GAME_OVER|<winner> frame.
func (s *Session) sendGameOver(peerID int, winnerLabel string) {
	s.send(peerID, protocol.GameOver{Winner: winnerLabel})
}

// resetTurnTimer (re)arms the 30-second per-turn timeout (spec §4.4 step 3).
func (s *Session) resetTurnTimer() {
	if s.turnTimer != nil {
		s.turnTimer.Stop()
	}
	s.turnTimer = time.NewTimer(TurnTimeout)
	s.turnTimerC = s.turnTimer.C
}

// secondsRemaining reports the STATUS frame's seconds field. Outside PLAYING
// the turn clock has no meaning, so it reports 0 (spec §3 leaves the field
// undefined pre-PLAYING; 0 is the least surprising wire value).
func (s *Session) secondsRemaining() int {
	if s.phaseGate.Current() != Playing {
		return 0
	}
	remaining := TurnTimeout - time.Since(s.turnStartedAt)
	if remaining < 0 {
		return 0
	}
	return int(remaining / time.Second)
}

// broadcastStatus sends both players their own STATUS frame (spec §4.4: a
// STATUS pair goes out on every state change visible to the players —
// registration completing, placement completing, and every resolved shot).
func (s *Session) broadcastStatus() {
	s.sendStatus(1)
	s.sendStatus(2)
}

func (s *Session) sendStatus(playerID int) {
	own, opponent, gameState, err := s.engine.GetStatus(playerID)
	if err != nil {
		s.logger.Printf("session %d: %v", s.id, err)
		return
	}
	masked := opponent.Masked()

	turn := protocol.OpponentTurn
	if s.engine.CurrentTurn() == playerID {
		turn = protocol.YourTurn
	}

	s.send(playerID, protocol.Status{
		Turn:      turn,
		OwnCells:  toCellEntries(&own),
		OppCells:  toCellEntries(&masked),
		GameState: gameState,
		Seconds:   s.secondsRemaining(),
	})
}

// toCellEntries converts the full board into wire form, in the stable
// row-major order Board.Cells() already produces (spec §4.2: "full cell
// list").
func toCellEntries(board *rules.Board) []protocol.CellEntry {
	coords := board.Cells()
	entries := make([]protocol.CellEntry, 0, len(coords))
	for _, c := range coords {
		entries = append(entries, protocol.CellEntry{Coord: c, State: board.Get(c)})
	}
	return entries
}
