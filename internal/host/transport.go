package host

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"
)

// maxLine bounds a single inbound message.
const maxLine = 64 * 1024

// LineTransport carries one JSON message per line over a reader/writer pair,
// e.g. stdin/stdout of a process embedded by a host.
//
// Inbound lines may wrap the message as {"origin": "...", "data": {...}}; a
// bare message is treated as having an empty origin.
type LineTransport struct {
	r io.Reader

	mu sync.Mutex
	w  io.Writer
}

// NewLineTransport creates a transport reading r and writing w.
func NewLineTransport(r io.Reader, w io.Writer) *LineTransport {
	return &LineTransport{r: r, w: w}
}

// Send writes msg as a single JSON line.
func (t *LineTransport) Send(msg any) error {
	b, err := Encode(msg)
	if err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, err := t.w.Write(append(b, '\n')); err != nil {
		return fmt.Errorf("host: write: %w", err)
	}
	return nil
}

type inboundLine struct {
	Origin string          `json:"origin"`
	Data   json.RawMessage `json:"data"`
}

// parseLine splits a line into origin and payload.
func parseLine(line []byte) Message {
	var in inboundLine
	if err := json.Unmarshal(line, &in); err == nil && len(in.Data) > 0 {
		return Message{Origin: in.Origin, Data: []byte(in.Data)}
	}
	return Message{Data: append([]byte(nil), line...)}
}

// Listen reads lines until EOF, a read error or ctx is done. The returned
// channel is closed when reading stops; the error channel then yields the
// read error, if any.
func (t *LineTransport) Listen(ctx context.Context) (<-chan Message, <-chan error) {
	out := make(chan Message)
	errc := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errc)
		sc := bufio.NewScanner(t.r)
		sc.Buffer(make([]byte, 0, 4096), maxLine)
		for sc.Scan() {
			line := sc.Bytes()
			if len(line) == 0 {
				continue
			}
			select {
			case out <- parseLine(line):
			case <-ctx.Done():
				return
			}
		}
		if err := sc.Err(); err != nil {
			errc <- fmt.Errorf("host: read: %w", err)
		}
	}()
	return out, errc
}
