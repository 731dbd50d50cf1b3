// Package netutil provides small deadline-aware helpers for reading and
// writing single line-delimited protocol frames over a net.Conn, grounded
// in the teacher's writeToConnWithRetry / handleReadFromConnErr pair
// (models/connection/session.go) but adapted from a websocket message loop
// to a raw TCP byte stream.
package netutil

import (
	"bufio"
	"errors"
	"io"
	"net"
	"time"
)

// ErrConnectionClosed is returned by FrameReader.ReadFrame when the peer
// closed the connection (EOF), or when any other read error occurs before a
// byte of the frame arrived. A non-EOF error after a partial line is
// returned as is. Spec §4.4 treats both uniformly as a transport error.
var ErrConnectionClosed = errors.New("netutil: connection closed")

const (
	maxWriteRetries    = 2
	writeBackoffFactor = 200 * time.Millisecond
	writeTimeout       = 5 * time.Second
)

// FrameReader reads one '\n'-terminated frame at a time from a net.Conn.
type FrameReader struct {
	conn net.Conn
	r    *bufio.Reader
}

// NewFrameReader wraps conn for line-oriented reads.
func NewFrameReader(conn net.Conn) *FrameReader {
	return &FrameReader{conn: conn, r: bufio.NewReader(conn)}
}

// ReadFrame blocks until one full frame (including its trailing '\n') has
// been read, or the connection fails. A partial line followed by EOF (the
// peer closed mid-frame) is reported as ErrConnectionClosed, same as a
// clean EOF at a frame boundary — spec §4.4 does not distinguish the two.
func (f *FrameReader) ReadFrame() ([]byte, error) {
	line, err := f.r.ReadBytes('\n')
	if err != nil {
		if len(line) == 0 || errors.Is(err, io.EOF) {
			return nil, ErrConnectionClosed
		}
		return nil, err
	}
	return line, nil
}

// WriteFrame writes frame (expected to already end in '\n') to conn,
// retrying a bounded number of times with backoff on a transient write
// timeout, in the teacher's writeToConnWithRetry style. Any other error is
// treated as a dead connection.
func WriteFrame(conn net.Conn, frame string) error {
	var err error
	for retry := 0; ; retry++ {
		if dErr := conn.SetWriteDeadline(time.Now().Add(writeTimeout)); dErr != nil {
			return dErr
		}
		_, err = conn.Write([]byte(frame))
		if err == nil {
			return nil
		}

		var netErr net.Error
		if !errors.As(err, &netErr) || !netErr.Timeout() || retry >= maxWriteRetries {
			return err
		}
		time.Sleep(time.Duration(retry+1) * writeBackoffFactor)
	}
}
