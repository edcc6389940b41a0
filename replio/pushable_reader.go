// Package replio contains stream adapters for wiring the repl runner to
// sources and sinks that are not plain files or terminals: programmatic
// input feeds (GUI text fields, tests) and line-callback output.
package replio

import (
	"bytes"
	"io"
	"sync"
)

// PushableReader is an io.Reader fed programmatically. Read blocks until
// data is pushed or the reader is closed; after Close, remaining buffered
// data is drained and then Read reports io.EOF.
//
// PushableReader is safe for concurrent use: any number of goroutines may
// push while one reads.
type PushableReader struct {
	mu     sync.Mutex
	cond   *sync.Cond
	buf    bytes.Buffer
	closed bool
}

// NewPushableReader returns an empty, open reader.
func NewPushableReader() *PushableReader {
	r := &PushableReader{}
	r.cond = sync.NewCond(&r.mu)
	return r
}

// PushLine pushes a line of text followed by a newline, simulating the user
// pressing enter.
func (r *PushableReader) PushLine(line string) {
	r.PushBytes([]byte(line + "\n"))
}

// PushBytes pushes raw bytes with no newline appended.
func (r *PushableReader) PushBytes(p []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}
	r.buf.Write(p)
	r.cond.Broadcast()
}

// Read blocks until data is available or the reader has been closed and
// drained.
func (r *PushableReader) Read(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for r.buf.Len() == 0 {
		if r.closed {
			return 0, io.EOF
		}
		r.cond.Wait()
	}
	return r.buf.Read(p)
}

// Close marks the end of input. Blocked and future reads return io.EOF once
// the buffer is drained.
func (r *PushableReader) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	r.cond.Broadcast()
	return nil
}

var _ io.ReadCloser = (*PushableReader)(nil)
