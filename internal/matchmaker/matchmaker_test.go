package matchmaker

import (
	"io"
	"log"
	"net"
	"testing"
	"time"

	"github.com/lrivas/battleship-tcp/internal/analytics"
	"github.com/lrivas/battleship-tcp/internal/netutil"
	"github.com/lrivas/battleship-tcp/internal/registry"
)

func TestAcceptorPairsConnectionsFIFO(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Listen: %v", err)
	}
	defer listener.Close()

	logger := log.New(io.Discard, "", 0)
	reg := registry.New(logger)
	a := New(listener, reg, analytics.Noop{}, logger)
	go a.Run()

	c1, err := net.Dial("tcp", listener.Addr().String())
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	defer c1.Close()

	// Give the acceptor a moment to enqueue c1 alone before c2 connects,
	// so slot assignment is deterministic (earlier-queued gets slot 1).
	time.Sleep(50 * time.Millisecond)

	c2, err := net.Dial("tcp", listener.Addr().String())
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	defer c2.Close()

	r1 := netutil.NewFrameReader(c1)
	frame1, err := r1.ReadFrame()
	if err != nil {
		t.Fatalf("read PLAYER_ID for c1: %v", err)
	}
	if string(frame1) != "PLAYER_ID|1\n" {
		t.Fatalf("c1 should be assigned slot 1, got %q", frame1)
	}

	r2 := netutil.NewFrameReader(c2)
	frame2, err := r2.ReadFrame()
	if err != nil {
		t.Fatalf("read PLAYER_ID for c2: %v", err)
	}
	if string(frame2) != "PLAYER_ID|2\n" {
		t.Fatalf("c2 should be assigned slot 2, got %q", frame2)
	}

	deadline := time.Now().Add(time.Second)
	for reg.Len() == 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if reg.Len() != 1 {
		t.Fatalf("expected one registered session, got %d", reg.Len())
	}
}

func TestAcceptorWaitBlocksUntilSessionsFinish(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Listen: %v", err)
	}
	defer listener.Close()

	logger := log.New(io.Discard, "", 0)
	reg := registry.New(logger)
	a := New(listener, reg, analytics.Noop{}, logger)
	go a.Run()

	c1, err := net.Dial("tcp", listener.Addr().String())
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	c2, err := net.Dial("tcp", listener.Addr().String())
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}

	deadline := time.Now().Add(time.Second)
	for reg.Len() == 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if reg.Len() != 1 {
		t.Fatalf("expected one registered session, got %d", reg.Len())
	}

	listener.Close()
	c1.Close()
	c2.Close()

	done := make(chan struct{})
	go func() {
		a.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Wait did not return after both peers disconnected")
	}
}
