// Package matchmaker implements the acceptor (spec §4.5): it blocks on
// Accept, queues connections FIFO, and whenever two are queued pairs them
// into a new session. Grounded in the teacher's listener setup in
// cmd/main.go and the BattleshipSessionManager's guarded-map pattern
// (models/connection/session_manager.go), adapted from one accept-per-HTTP-
// upgrade to a raw net.Listener loop.
package matchmaker

import (
	"log"
	"net"
	"sync"

	"github.com/lrivas/battleship-tcp/internal/analytics"
	"github.com/lrivas/battleship-tcp/internal/registry"
	"github.com/lrivas/battleship-tcp/internal/session"
)

// Acceptor owns the listener and the FIFO pending queue (spec §4.5).
type Acceptor struct {
	listener  net.Listener
	registry  *registry.Registry
	analytics analytics.Recorder
	logger    *log.Logger

	mu      sync.Mutex
	pending []session.PeerInfo

	nextSessionID int
	wg            sync.WaitGroup
}

// New wraps an already-bound listener. Binding is the caller's
// responsibility so it can report a bind failure before starting any
// background task.
func New(listener net.Listener, reg *registry.Registry, rec analytics.Recorder, logger *log.Logger) *Acceptor {
	return &Acceptor{
		listener:      listener,
		registry:      reg,
		analytics:     rec,
		logger:        logger,
		nextSessionID: 1,
	}
}

// Run blocks accepting connections until the listener is closed (spec §5:
// "On shutdown: the acceptor stops accepting"). Each accepted connection is
// enqueued; whenever the queue reaches two, a session starts on its own
// goroutine.
func (a *Acceptor) Run() {
	for {
		conn, err := a.listener.Accept()
		if err != nil {
			a.logger.Printf("matchmaker: listener closed: %v", err)
			return
		}
		peer := session.PeerInfo{Conn: conn, Addr: conn.RemoteAddr().String()}
		a.logger.Printf("matchmaker: accepted %s", peer.Addr)
		a.enqueue(peer)
	}
}

func (a *Acceptor) enqueue(peer session.PeerInfo) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.pending = append(a.pending, peer)
	if len(a.pending) < 2 {
		return
	}

	p1, p2 := a.pending[0], a.pending[1]
	a.pending = a.pending[2:]

	id := a.nextSessionID
	a.nextSessionID++

	sess := session.NewSession(id, p1, p2, a.logger, a.analytics)
	a.registry.Add(sess)
	a.logger.Printf("matchmaker: paired session %d: %s (slot 1) vs %s (slot 2)", id, p1.Addr, p2.Addr)
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		sess.Run()
	}()
}

// Wait blocks until every session this acceptor has started has returned
// from Run(). Call after Run() itself has returned (the listener is closed
// and no further sessions can start) so shutdown can hand off to a final
// reaper pass only once sessions have actually drained, not merely once the
// accept loop has (spec §5: "On shutdown: ... in-flight sessions run to
// completion").
func (a *Acceptor) Wait() {
	a.wg.Wait()
}
