package session

import (
	"log"
	"net"
	"strings"
	"testing"

	"github.com/lrivas/battleship-tcp/internal/netutil"
)

const validFleetFrame = "PLACE_SHIPS|PORTAAVIONES:A1,A2,A3,A4,A5;BUQUE:B1,B2,B3,B4;CRUCERO:C1,C2,C3;CRUCERO:D1,D2,D3;DESTRUCTOR:E1,E2;DESTRUCTOR:F1,F2;SUBMARINO:G1;SUBMARINO:H1;SUBMARINO:I1\n"

type testPeer struct {
	client net.Conn
	reader *netutil.FrameReader
}

func newTestPeer(client net.Conn) *testPeer {
	return &testPeer{client: client, reader: netutil.NewFrameReader(client)}
}

func (p *testPeer) send(t *testing.T, frame string) {
	t.Helper()
	if err := netutil.WriteFrame(p.client, frame); err != nil {
		t.Fatalf("write failed: %v", err)
	}
}

func (p *testPeer) recv(t *testing.T) string {
	t.Helper()
	frame, err := p.reader.ReadFrame()
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	return strings.TrimSuffix(string(frame), "\n")
}

func newTestSession(t *testing.T) (*Session, *testPeer, *testPeer) {
	t.Helper()
	srv1, cli1 := net.Pipe()
	srv2, cli2 := net.Pipe()
	logger := log.New(nopWriter{}, "", 0)
	s := NewSession(1,
		PeerInfo{Conn: srv1, Addr: "peer1"},
		PeerInfo{Conn: srv2, Addr: "peer2"},
		logger, nil)
	go s.Run()
	return s, newTestPeer(cli1), newTestPeer(cli2)
}

type nopWriter struct{}

func (nopWriter) Write(p []byte) (int, error) { return len(p), nil }

func registerBoth(t *testing.T, p1, p2 *testPeer) {
	t.Helper()
	if got := p1.recv(t); got != "PLAYER_ID|1" {
		t.Fatalf("player 1 join frame = %q", got)
	}
	if got := p2.recv(t); got != "PLAYER_ID|2" {
		t.Fatalf("player 2 join frame = %q", got)
	}
	p1.send(t, "REGISTER|Alice,a@x\n")
	p2.send(t, "REGISTER|Bob,b@x\n")

	// Both receive a STATUS broadcast once REGISTRATION completes.
	status1 := p1.recv(t)
	status2 := p2.recv(t)
	if !strings.Contains(status1, ";WAITING;") {
		t.Fatalf("expected WAITING status for player 1, got %q", status1)
	}
	if !strings.Contains(status2, ";WAITING;") {
		t.Fatalf("expected WAITING status for player 2, got %q", status2)
	}
}

func placeBoth(t *testing.T, p1, p2 *testPeer) {
	t.Helper()
	p1.send(t, validFleetFrame)
	p2.send(t, validFleetFrame)

	status1 := p1.recv(t)
	status2 := p2.recv(t)
	if !strings.Contains(status1, ";ONGOING;") {
		t.Fatalf("expected ONGOING status for player 1, got %q", status1)
	}
	if !strings.Contains(status2, ";ONGOING;") {
		t.Fatalf("expected ONGOING status for player 2, got %q", status2)
	}
	if !strings.HasPrefix(status1, "STATUS|YOUR_TURN;") {
		t.Fatalf("expected player 1 to have the first turn, got %q", status1)
	}
	if !strings.HasPrefix(status2, "STATUS|OPPONENT_TURN;") {
		t.Fatalf("expected player 2 to see OPPONENT_TURN, got %q", status2)
	}
}

func TestSessionRegistrationAndPlacementMasksOpponentShips(t *testing.T) {
	_, p1, p2 := newTestSession(t)
	registerBoth(t, p1, p2)
	p1.send(t, validFleetFrame)
	p2.send(t, validFleetFrame)

	status1 := p1.recv(t)
	_ = p2.recv(t)

	// status1's opponent-cells segment is field index 2 of
	// "STATUS|turn;own;opp;gs;secs".
	fields := strings.Split(strings.TrimPrefix(status1, "STATUS|"), ";")
	oppCells := fields[2]
	if strings.Contains(oppCells, ":SHIP") {
		t.Fatalf("opponent view leaked a SHIP cell: %q", oppCells)
	}
}

func TestSessionShotRotatesTurn(t *testing.T) {
	_, p1, p2 := newTestSession(t)
	registerBoth(t, p1, p2)
	placeBoth(t, p1, p2)

	p1.send(t, "SHOOT|J10\n")
	status1 := p1.recv(t)
	status2 := p2.recv(t)

	if !strings.HasPrefix(status1, "STATUS|OPPONENT_TURN;") {
		t.Fatalf("after player 1 shoots, player 1 should see OPPONENT_TURN, got %q", status1)
	}
	if !strings.HasPrefix(status2, "STATUS|YOUR_TURN;") {
		t.Fatalf("after player 1 shoots, player 2 should see YOUR_TURN, got %q", status2)
	}
}

func TestSessionRejectsOutOfTurnShot(t *testing.T) {
	_, p1, p2 := newTestSession(t)
	registerBoth(t, p1, p2)
	placeBoth(t, p1, p2)

	p2.send(t, "SHOOT|J10\n")
	errFrame := p2.recv(t)
	if !strings.HasPrefix(errFrame, "ERROR|400,") {
		t.Fatalf("expected ERROR|400 for out-of-turn shot, got %q", errFrame)
	}

	// Turn must still belong to player 1: player 1's own shot now succeeds
	// and produces a STATUS broadcast rather than another error.
	p1.send(t, "SHOOT|J10\n")
	status1 := p1.recv(t)
	if !strings.HasPrefix(status1, "STATUS|") {
		t.Fatalf("expected player 1's shot to succeed, got %q", status1)
	}
}

func TestSessionSurrenderEndsGame(t *testing.T) {
	_, p1, p2 := newTestSession(t)
	registerBoth(t, p1, p2)
	placeBoth(t, p1, p2)

	p1.send(t, "SURRENDER|\n")

	// concludeGame writes the winner's frame first and net.Pipe is
	// unbuffered, so read player 2 (the winner) before player 1.
	gameOver2 := p2.recv(t)
	gameOver1 := p1.recv(t)
	if gameOver1 != "GAME_OVER|YOU_LOSE" {
		t.Fatalf("surrendering player frame = %q", gameOver1)
	}
	if gameOver2 != "GAME_OVER|YOU_WIN" {
		t.Fatalf("surviving player frame = %q", gameOver2)
	}
}

func TestSessionDisconnectDuringPlacementYieldsError(t *testing.T) {
	_, p1, p2 := newTestSession(t)
	registerBoth(t, p1, p2)

	p2.client.Close()

	errFrame := p1.recv(t)
	if !strings.HasPrefix(errFrame, "ERROR|400,") {
		t.Fatalf("expected opponent-disconnected ERROR before PLAYING, got %q", errFrame)
	}
}

func TestSessionDisconnectDuringPlayingYieldsError(t *testing.T) {
	_, p1, p2 := newTestSession(t)
	registerBoth(t, p1, p2)
	placeBoth(t, p1, p2)

	p2.client.Close()

	errFrame := p1.recv(t)
	if !strings.HasPrefix(errFrame, "ERROR|400,") {
		t.Fatalf("expected opponent-disconnected ERROR during PLAYING, got %q", errFrame)
	}
}
