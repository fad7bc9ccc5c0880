package dispatch

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/scrylang/scry/internal/exit"
	"github.com/scrylang/scry/internal/mode"
	"github.com/scrylang/scry/internal/observe"
	"github.com/scrylang/scry/internal/position"
	"github.com/scrylang/scry/internal/protocol"
	"github.com/scrylang/scry/internal/source"
)

// fakeCaller serves canned responses and records traffic. It fails the test
// on overlapping calls, mirroring the single-in-flight channel contract.
type fakeCaller struct {
	t        *testing.T
	response any
	lines    []string
	calls    int
	streams  int
	lastReq  protocol.Request
	inFlight bool
}

func (f *fakeCaller) enter() func() {
	if f.inFlight {
		f.t.Fatal("overlapping channel operations")
	}
	f.inFlight = true
	return func() { f.inFlight = false }
}

func (f *fakeCaller) Call(req protocol.Request, out any) error {
	defer f.enter()()
	f.calls++
	f.lastReq = req
	data, err := json.Marshal(f.response)
	if err != nil {
		f.t.Fatalf("marshaling fake response: %v", err)
	}
	return json.Unmarshal(data, out)
}

func (f *fakeCaller) Stream(req protocol.Request, fn func(line string) error) error {
	defer f.enter()()
	f.streams++
	f.lastReq = req
	for _, line := range f.lines {
		if err := fn(line); err != nil {
			return err
		}
	}
	return nil
}

func testOpts(stdin string) (Options, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	return Options{
		Interactive: true,
		Stdout:      &stdout,
		Stderr:      &stderr,
		Source:      source.StdinReader{In: strings.NewReader(stdin)},
	}, &stdout, &stderr
}

func TestStatusExitReflectsDiagnostics(t *testing.T) {
	tests := []struct {
		name  string
		diags []protocol.Diagnostic
		want  exit.Status
	}{
		{name: "clean", diags: nil, want: exit.Ok},
		{name: "diagnostics", diags: []protocol.Diagnostic{{File: "a.src", Message: "bad"}}, want: exit.TypeError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ch := &fakeCaller{t: t, response: tt.diags}
			opts, _, _ := testOpts("")

			got, err := Dispatch(mode.Status{}, ch, opts)
			if err != nil {
				t.Fatalf("Dispatch() error = %v", err)
			}
			if got != tt.want {
				t.Fatalf("Dispatch() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCheckpointRetrieveAbsenceIsCheckpointError(t *testing.T) {
	ch := &fakeCaller{t: t, response: nil}
	opts, _, stderr := testOpts("")

	got, err := Dispatch(mode.CheckpointRetrieve{Label: "base"}, ch, opts)
	if err != nil {
		t.Fatalf("Dispatch() error = %v", err)
	}
	if got != exit.CheckpointError {
		t.Fatalf("Dispatch() = %v, want %v", got, exit.CheckpointError)
	}
	if !strings.Contains(stderr.String(), "base") {
		t.Fatalf("stderr = %q, want mention of the label", stderr.String())
	}
}

func TestCheckpointRetrievePrintsOneEntryPerLine(t *testing.T) {
	ch := &fakeCaller{t: t, response: []string{"a.src", "b.src"}}
	opts, stdout, _ := testOpts("")

	got, err := Dispatch(mode.CheckpointRetrieve{Label: "base"}, ch, opts)
	if err != nil {
		t.Fatalf("Dispatch() error = %v", err)
	}
	if got != exit.Ok {
		t.Fatalf("Dispatch() = %v, want %v", got, exit.Ok)
	}
	if stdout.String() != "a.src\nb.src\n" {
		t.Fatalf("stdout = %q, want one entry per line", stdout.String())
	}
}

func TestCheckpointDeleteFailureIsCheckpointError(t *testing.T) {
	ch := &fakeCaller{t: t, response: false}
	opts, _, _ := testOpts("")

	got, err := Dispatch(mode.CheckpointDelete{Label: "base"}, ch, opts)
	if err != nil {
		t.Fatalf("Dispatch() error = %v", err)
	}
	if got != exit.CheckpointError {
		t.Fatalf("Dispatch() = %v, want %v", got, exit.CheckpointError)
	}
}

func TestCheckpointCreateIsFireAndForget(t *testing.T) {
	ch := &fakeCaller{t: t, response: map[string]any{"ignored": true}}
	opts, stdout, _ := testOpts("")

	got, err := Dispatch(mode.CheckpointCreate{Label: "base"}, ch, opts)
	if err != nil {
		t.Fatalf("Dispatch() error = %v", err)
	}
	if got != exit.Ok {
		t.Fatalf("Dispatch() = %v, want %v", got, exit.Ok)
	}
	if stdout.Len() != 0 {
		t.Fatalf("stdout = %q, want empty", stdout.String())
	}
}

func TestMalformedRefIsInputErrorWithoutChannelTraffic(t *testing.T) {
	ch := &fakeCaller{t: t}
	opts, _, stderr := testOpts("")

	got, err := Dispatch(mode.FindRefs{Ref: "A::b::c"}, ch, opts)
	if err != nil {
		t.Fatalf("Dispatch() error = %v", err)
	}
	if got != exit.InputError {
		t.Fatalf("Dispatch() = %v, want %v", got, exit.InputError)
	}
	if ch.calls+ch.streams != 0 {
		t.Fatalf("channel traffic = %d ops, want none", ch.calls+ch.streams)
	}
	if stderr.Len() == 0 {
		t.Fatal("stderr empty, want a diagnostic")
	}
}

func TestTypeAtPosResolvesExistingFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "file.txt")
	if err := os.WriteFile(file, []byte("x"), 0600); err != nil {
		t.Fatal(err)
	}

	ch := &fakeCaller{t: t, response: protocol.TypeInfo{Type: "int"}}
	opts, stdout, _ := testOpts("")

	got, err := Dispatch(mode.TypeAtPos{Location: file + ":3:4"}, ch, opts)
	if err != nil {
		t.Fatalf("Dispatch() error = %v", err)
	}
	if got != exit.Ok {
		t.Fatalf("Dispatch() = %v, want %v", got, exit.Ok)
	}

	req, ok := ch.lastReq.(protocol.TypeAtPos)
	if !ok {
		t.Fatalf("request = %T, want protocol.TypeAtPos", ch.lastReq)
	}
	if req.Input.File != file {
		t.Fatalf("request file = %q, want %q", req.Input.File, file)
	}
	if (req.Pos != position.Position{Line: 3, Column: 4}) {
		t.Fatalf("request pos = %v, want 3:4", req.Pos)
	}
	if stdout.String() != "int\n" {
		t.Fatalf("stdout = %q, want %q", stdout.String(), "int\n")
	}
}

func TestTypeAtPosMissingFileStopsBeforeChannelWrite(t *testing.T) {
	ch := &fakeCaller{t: t}
	opts, _, _ := testOpts("")

	loc := filepath.Join(t.TempDir(), "absent.txt") + ":3:4"
	got, err := Dispatch(mode.TypeAtPos{Location: loc}, ch, opts)
	var pnf *position.PathNotFoundError
	if !errors.As(err, &pnf) {
		t.Fatalf("Dispatch() error = %v, want *PathNotFoundError", err)
	}
	if got != exit.PathNotFound {
		t.Fatalf("Dispatch() = %v, want %v", got, exit.PathNotFound)
	}
	if ch.calls+ch.streams != 0 {
		t.Fatalf("channel traffic = %d ops, want none", ch.calls+ch.streams)
	}
}

func TestTypeAtPosLineColumnSendsStdinContent(t *testing.T) {
	ch := &fakeCaller{t: t, response: protocol.TypeInfo{Type: "string"}}
	opts, _, _ := testOpts("let x = 1")

	if _, err := Dispatch(mode.TypeAtPos{Location: "1:4"}, ch, opts); err != nil {
		t.Fatalf("Dispatch() error = %v", err)
	}

	req, ok := ch.lastReq.(protocol.TypeAtPos)
	if !ok {
		t.Fatalf("request = %T, want protocol.TypeAtPos", ch.lastReq)
	}
	if req.Input.Content == nil || *req.Input.Content != "let x = 1" {
		t.Fatalf("request content = %v, want stdin text", req.Input.Content)
	}
}

func TestListFilesPrintsStreamedLinesInOrder(t *testing.T) {
	ch := &fakeCaller{t: t, lines: []string{"a.src", "b.src", "c.src"}}
	opts, stdout, _ := testOpts("")

	got, err := Dispatch(mode.ListFiles{}, ch, opts)
	if err != nil {
		t.Fatalf("Dispatch() error = %v", err)
	}
	if got != exit.Ok {
		t.Fatalf("Dispatch() = %v, want %v", got, exit.Ok)
	}
	if stdout.String() != "a.src\nb.src\nc.src\n" {
		t.Fatalf("stdout = %q, want streamed order", stdout.String())
	}
}

type recordingObserver struct {
	began  []string
	ended  []string
	status exit.Status
}

func (o *recordingObserver) Begin(inv observe.Invocation) {
	o.began = append(o.began, inv.Command)
}

func (o *recordingObserver) End(inv observe.Invocation, status exit.Status, err error) {
	o.ended = append(o.ended, inv.Command)
	o.status = status
}

func TestObserverSeesInvocationStartAndEnd(t *testing.T) {
	ch := &fakeCaller{t: t, response: []protocol.Diagnostic{{Message: "bad"}}}
	opts, _, _ := testOpts("")
	obs := &recordingObserver{}
	opts.Observer = obs

	if _, err := Dispatch(mode.Status{}, ch, opts); err != nil {
		t.Fatalf("Dispatch() error = %v", err)
	}
	if len(obs.began) != 1 || obs.began[0] != "status" {
		t.Fatalf("observer began = %v, want [status]", obs.began)
	}
	if len(obs.ended) != 1 || obs.status != exit.TypeError {
		t.Fatalf("observer ended = %v status %v, want [status] type_error", obs.ended, obs.status)
	}
}
