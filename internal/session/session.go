// Package session implements the phase gate (spec §4.3) and the per-match
// session state machine (spec §4.4): a single cooperative goroutine per
// live match that owns two peer connections, drives them through
// REGISTRATION -> PLACEMENT -> PLAYING -> FINISHED, and enforces the
// 30-second per-turn timeout. It is the direct generalization of the
// teacher's models/connection/session.go `run` loop from a websocket/JSON
// transport to raw line-delimited TCP text.
package session

import (
	"log"
	"net"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/lrivas/battleship-tcp/internal/analytics"
	"github.com/lrivas/battleship-tcp/internal/netutil"
	"github.com/lrivas/battleship-tcp/internal/protocol"
	"github.com/lrivas/battleship-tcp/internal/rules"
)

// TurnTimeout is the bounded per-turn wall-clock timeout (spec §4.4 step 3).
const TurnTimeout = 30 * time.Second

// PeerInfo is the connection plus the address captured at accept time
// (spec §4.5: "Peer IP/port are captured at accept time and attached to
// each slot for logging").
type PeerInfo struct {
	Conn net.Conn
	Addr string
}

type frameEvent struct {
	frame []byte
	err   error
}

type peerConn struct {
	conn   net.Conn
	addr   string
	events chan frameEvent
}

// Session is the bounded lifetime of one 1-vs-1 match (spec GLOSSARY).
type Session struct {
	id          int
	correlation uuid.UUID
	peers       map[int]*peerConn
	engine      *rules.Engine
	phaseGate   *PhaseGate

	turnStartedAt time.Time
	turnTimer     *time.Timer
	turnTimerC    <-chan time.Time

	logger    *log.Logger
	analytics analytics.Recorder

	done atomic.Bool
}

// NewSession constructs a session owning both connections, in phase
// REGISTRATION with a fresh rules engine (spec §4.4). The wire-visible
// session id is the matchmaker's monotonically increasing counter; the
// correlation id is an orthogonal uuid used only in log lines, never on the
// wire, so grepping one session's history across a busy log is unambiguous
// even after the counter wraps or a second server joins the fleet.
func NewSession(id int, p1, p2 PeerInfo, logger *log.Logger, rec analytics.Recorder) *Session {
	if rec == nil {
		rec = analytics.Noop{}
	}
	s := &Session{
		id:          id,
		correlation: uuid.New(),
		peers: map[int]*peerConn{
			1: {conn: p1.Conn, addr: p1.Addr, events: make(chan frameEvent, 1)},
			2: {conn: p2.Conn, addr: p2.Addr, events: make(chan frameEvent, 1)},
		},
		engine:    rules.NewEngine(),
		phaseGate: NewPhaseGate(),
		logger:    logger,
		analytics: rec,
	}
	logger.Printf("session %d [%s]: created, peer1=%s peer2=%s", id, s.correlation, p1.Addr, p2.Addr)
	return s
}

// ID returns the session id assigned by the matchmaker.
func (s *Session) ID() int {
	return s.id
}

// Finished reports whether the session has fully terminated and closed
// both its sockets — the reaper's only removal criterion (spec §4.6).
func (s *Session) Finished() bool {
	return s.done.Load()
}

// Run drives the session to completion. It is intended to be called on its
// own goroutine by the matchmaker and returns only once the match has
// reached FINISHED and both sockets are closed.
func (s *Session) Run() {
	defer s.finalize()

	s.startReaders()
	s.sendPlayerIDs()
	s.analytics.SessionStarted(s.id)

	for s.phaseGate.Current() != Finished {
		s.step()
	}
}

// step processes exactly one event: a frame from either peer, or (only
// while PLAYING) the turn timer firing. This is the session's only
// suspension point besides the reader goroutines' blocking reads.
func (s *Session) step() {
	var timerC <-chan time.Time
	if s.phaseGate.Current() == Playing {
		timerC = s.turnTimerC
	}

	select {
	case ev := <-s.peers[1].events:
		s.dispatch(1, ev)
	case ev := <-s.peers[2].events:
		s.dispatch(2, ev)
	case <-timerC:
		s.handleTurnTimeout()
	}
}

func (s *Session) startReaders() {
	for _, peer := range s.peers {
		go readLoop(peer.conn, peer.events)
	}
}

func readLoop(conn net.Conn, events chan<- frameEvent) {
	reader := netutil.NewFrameReader(conn)
	for {
		frame, err := reader.ReadFrame()
		events <- frameEvent{frame: frame, err: err}
		if err != nil {
			return
		}
	}
}

func (s *Session) sendPlayerIDs() {
	s.send(1, protocol.PlayerID{ID: 1})
	s.send(2, protocol.PlayerID{ID: 2})
}

func (s *Session) dispatch(peerID int, ev frameEvent) {
	if ev.err != nil {
		s.handleDisconnect(peerID)
		return
	}

	msg, err := protocol.Parse(ev.frame)
	if err != nil {
		s.sendError(peerID, 400, err.Error())
		return
	}

	switch s.phaseGate.Current() {
	case Registration:
		s.handleRegistration(peerID, msg)
	case Placement:
		s.handlePlacement(peerID, msg)
	case Playing:
		s.handlePlaying(peerID, msg)
	}
}

func (s *Session) opponentOf(id int) int {
	if id == 1 {
		return 2
	}
	return 1
}

func (s *Session) finalize() {
	for _, peer := range s.peers {
		_ = peer.conn.Close()
	}
	if s.turnTimer != nil {
		s.turnTimer.Stop()
	}
	s.done.Store(true)
}
