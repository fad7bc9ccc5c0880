// Package channel implements the two interaction primitives used over one
// open duplex connection to the scry server: a unary call returning exactly
// one response value, and a streaming call draining response lines to EOF.
package channel

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/scrylang/scry/internal/protocol"
)

// ErrBusy reports an attempt to start a call while another is in flight on
// the same channel.
var ErrBusy = errors.New("channel busy: one in-flight request at a time")

// Error indicates the channel closed or truncated mid-operation. It is fatal
// for the invocation; nothing at this layer retries.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("channel %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Caller is the channel surface dispatch works against. Tests substitute
// fakes.
type Caller interface {
	// Call performs a unary exchange: one request out, exactly one JSON
	// response value decoded into out.
	Call(req protocol.Request, out any) error
	// Stream writes one request and hands every response line to fn in
	// receive order until the server signals completion by closing the
	// stream. A non-nil error from fn stops the drain.
	Stream(req protocol.Request, fn func(line string) error) error
}

// Channel borrows one open duplex connection for the duration of a single
// invocation. It is not safe for concurrent use; the busy guard exists to
// catch protocol misuse, not to synchronize.
type Channel struct {
	w    io.Writer
	r    *bufio.Reader
	busy bool
}

// New wraps an open connection.
func New(rw io.ReadWriter) *Channel {
	return &Channel{w: rw, r: bufio.NewReader(rw)}
}

// Call implements the unary primitive. No partial value is ever observed: a
// response that cannot be fully decoded surfaces as *Error.
func (c *Channel) Call(req protocol.Request, out any) error {
	if c.busy {
		return ErrBusy
	}
	c.busy = true
	defer func() { c.busy = false }()

	if err := protocol.Encode(c.w, req); err != nil {
		return &Error{Op: "write", Err: err}
	}
	if err := json.NewDecoder(c.r).Decode(out); err != nil {
		return &Error{Op: "read", Err: err}
	}
	return nil
}

// Stream implements the streaming primitive. Completion is a clean EOF on a
// line boundary; an unterminated final line counts as truncation and
// surfaces as *Error, keeping it distinguishable from normal completion.
func (c *Channel) Stream(req protocol.Request, fn func(line string) error) error {
	if c.busy {
		return ErrBusy
	}
	c.busy = true
	defer func() { c.busy = false }()

	if err := protocol.Encode(c.w, req); err != nil {
		return &Error{Op: "write", Err: err}
	}
	for {
		line, err := c.r.ReadString('\n')
		if err == nil {
			if ferr := fn(strings.TrimRight(line, "\r\n")); ferr != nil {
				return ferr
			}
			continue
		}
		if errors.Is(err, io.EOF) {
			if line != "" {
				return &Error{Op: "read", Err: io.ErrUnexpectedEOF}
			}
			return nil
		}
		return &Error{Op: "read", Err: err}
	}
}

// Collect drains a streaming call into a slice, preserving receive order.
func Collect(c Caller, req protocol.Request) ([]string, error) {
	var lines []string
	err := c.Stream(req, func(line string) error {
		lines = append(lines, line)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return lines, nil
}
