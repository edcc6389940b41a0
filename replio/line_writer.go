package replio

import "io"

// LineWriter is an io.Writer that buffers bytes until a newline and then
// hands the completed line (without the newline) to a callback. Carriage
// returns are dropped. Useful for showing runner output line by line in a
// UI or capturing it in tests.
//
// LineWriter is not safe for concurrent use; wrap it externally if multiple
// goroutines write.
type LineWriter struct {
	buf      []byte
	callback func(line string)
}

// NewLineWriter returns a writer delivering lines to callback.
func NewLineWriter(callback func(line string)) *LineWriter {
	return &LineWriter{callback: callback}
}

// Write buffers p, invoking the callback once per completed line.
func (w *LineWriter) Write(p []byte) (int, error) {
	for _, b := range p {
		switch b {
		case '\r':
			// dropped
		case '\n':
			w.flush()
		default:
			w.buf = append(w.buf, b)
		}
	}
	return len(p), nil
}

// Flush delivers a partial line, if any. Useful when the stream ends without
// a trailing newline.
func (w *LineWriter) Flush() {
	w.flush()
}

func (w *LineWriter) flush() {
	if len(w.buf) == 0 {
		return
	}
	w.callback(string(w.buf))
	w.buf = w.buf[:0]
}

var _ io.Writer = (*LineWriter)(nil)
