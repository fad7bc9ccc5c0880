// Package observe notifies an injected observer at the start and end of each
// command invocation. There is deliberately no process-wide logger; whoever
// constructs the dispatcher decides where events go.
package observe

import (
	"encoding/json"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/scrylang/scry/internal/exit"
)

// Invocation identifies one command run.
type Invocation struct {
	ID      string
	Command string
	Start   time.Time
}

// NewInvocation stamps a fresh invocation for a command.
func NewInvocation(command string) Invocation {
	return Invocation{
		ID:      uuid.NewString(),
		Command: command,
		Start:   time.Now(),
	}
}

// Observer receives invocation lifecycle events.
type Observer interface {
	Begin(inv Invocation)
	End(inv Invocation, status exit.Status, err error)
}

// Nop discards all events.
type Nop struct{}

func (Nop) Begin(Invocation) {}

func (Nop) End(Invocation, exit.Status, error) {}

// Recorder writes one JSON line per finished invocation.
type Recorder struct {
	W io.Writer
}

type record struct {
	ID         string `json:"id"`
	Command    string `json:"command"`
	Status     string `json:"status"`
	Code       int    `json:"code"`
	DurationMS int64  `json:"duration_ms"`
	Error      string `json:"error,omitempty"`
}

func (Recorder) Begin(Invocation) {}

// End emits the finished invocation. Write failures are dropped: event
// logging must never fail a command.
func (r Recorder) End(inv Invocation, status exit.Status, err error) {
	rec := record{
		ID:         inv.ID,
		Command:    inv.Command,
		Status:     status.String(),
		Code:       status.Code(),
		DurationMS: time.Since(inv.Start).Milliseconds(),
	}
	if err != nil {
		rec.Error = err.Error()
	}
	_ = json.NewEncoder(r.W).Encode(rec)
}
