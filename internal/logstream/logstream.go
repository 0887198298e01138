// Package logstream carries installer output line by line from the process
// that produces it to the UI that displays it.
package logstream

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"
)

type ctxKey struct{}

// Writer returns the stream writer attached to ctx, or nil.
func Writer(ctx context.Context) io.Writer {
	w, _ := ctx.Value(ctxKey{}).(io.Writer)
	return w
}

// WithWriter returns a context with the given writer attached.
func WithWriter(ctx context.Context, w io.Writer) context.Context {
	return context.WithValue(ctx, ctxKey{}, w)
}

// ChannelWriter sends written data to a channel line by line.
// Partial lines are buffered until a newline arrives. A carriage return
// without a newline starts the line over, so installer progress counters
// collapse to their final value. Safe for concurrent writes.
type ChannelWriter struct {
	ch     chan string
	buf    []byte
	mu     sync.Mutex
	closed bool
}

// NewChannelWriter creates a ChannelWriter and returns it along with the
// read channel. Lines are dropped rather than blocking when it is full.
func NewChannelWriter(bufSize int) (*ChannelWriter, <-chan string) {
	if bufSize <= 0 {
		bufSize = 100
	}
	ch := make(chan string, bufSize)
	return &ChannelWriter{ch: ch}, ch
}

// Write implements io.Writer.
func (w *ChannelWriter) Write(p []byte) (n int, err error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return 0, io.ErrClosedPipe
	}

	w.buf = append(w.buf, p...)

	for {
		idx := bytes.IndexByte(w.buf, '\n')
		if idx < 0 {
			break
		}
		w.emit(w.buf[:idx])
		w.buf = w.buf[idx+1:]
	}

	return len(p), nil
}

// emit sends the visible part of a raw line.
func (w *ChannelWriter) emit(raw []byte) {
	raw = bytes.TrimRight(raw, "\r")
	if idx := bytes.LastIndexByte(raw, '\r'); idx >= 0 {
		raw = raw[idx+1:]
	}
	select {
	case w.ch <- string(raw):
	default:
	}
}

// Close flushes any remaining buffered data and closes the channel.
func (w *ChannelWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil
	}
	w.closed = true

	if len(w.buf) > 0 {
		w.emit(w.buf)
		w.buf = nil
	}

	close(w.ch)
	return nil
}

// MultiWriter duplicates writes to the stream and a capture buffer.
// Either side may be nil.
func MultiWriter(stream, buffer io.Writer) io.Writer {
	if stream == nil {
		return buffer
	}
	if buffer == nil {
		return stream
	}
	return io.MultiWriter(stream, buffer)
}

// Logf formats a message and writes it as one line to the context's
// stream writer. It does nothing when no writer is attached.
func Logf(ctx context.Context, format string, args ...any) {
	w := Writer(ctx)
	if w == nil {
		return
	}
	msg := fmt.Sprintf(format, args...)
	if len(msg) == 0 || msg[len(msg)-1] != '\n' {
		msg += "\n"
	}
	_, _ = io.WriteString(w, msg)
}
