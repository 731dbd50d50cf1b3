package registry

import (
	"io"
	"log"
	"testing"
)

type fakeSession struct {
	id       int
	finished bool
}

func (f *fakeSession) ID() int        { return f.id }
func (f *fakeSession) Finished() bool { return f.finished }

func newTestLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func TestRegistryReapsOnlyFinishedSessions(t *testing.T) {
	r := New(newTestLogger())
	live := &fakeSession{id: 1, finished: false}
	done := &fakeSession{id: 2, finished: true}
	r.Add(live)
	r.Add(done)

	if got := r.Len(); got != 2 {
		t.Fatalf("Len() = %d, want 2", got)
	}

	r.ReapOnce()

	if got := r.Len(); got != 1 {
		t.Fatalf("Len() after reap = %d, want 1", got)
	}
}

func TestRegistryReapOnceIsIdempotent(t *testing.T) {
	r := New(newTestLogger())
	r.Add(&fakeSession{id: 1, finished: true})

	r.ReapOnce()
	r.ReapOnce()

	if got := r.Len(); got != 0 {
		t.Fatalf("Len() = %d, want 0", got)
	}
}
