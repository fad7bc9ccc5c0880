// Package dispatch maps one command mode to its wire request, runs it over
// the borrowed channel with the right protocol primitive, hands the result
// to the mode's output sink, and derives the invocation's exit status.
package dispatch

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/scrylang/scry/internal/channel"
	"github.com/scrylang/scry/internal/exit"
	"github.com/scrylang/scry/internal/mode"
	"github.com/scrylang/scry/internal/observe"
	"github.com/scrylang/scry/internal/output"
	"github.com/scrylang/scry/internal/position"
	"github.com/scrylang/scry/internal/protocol"
	"github.com/scrylang/scry/internal/source"
)

// Options carries the invocation-wide collaborators and flags.
type Options struct {
	// Machine selects machine-readable (JSON) output.
	Machine bool
	// Interactive is false when the caller identity is another tool or
	// stdout is not a terminal.
	Interactive bool
	// Color enables color-coded rendering.
	Color bool

	Stdout io.Writer
	Stderr io.Writer

	// Source reads the full stdin content when a mode needs source text
	// and no file path was given.
	Source source.Reader
	// Observer is notified at invocation start and end.
	Observer observe.Observer
}

// Dispatch runs one mode over an open channel. The returned status is
// authoritative; a non-nil error carries detail worth printing but the
// caller decides whether it terminates the process.
func Dispatch(m mode.Mode, ch channel.Caller, opts Options) (exit.Status, error) {
	obs := opts.Observer
	if obs == nil {
		obs = observe.Nop{}
	}
	inv := observe.NewInvocation(m.Name())
	obs.Begin(inv)
	status, err := run(m, ch, opts)
	obs.End(inv, status, err)
	return status, err
}

func run(m mode.Mode, ch channel.Caller, opts Options) (exit.Status, error) {
	switch m := m.(type) {
	case mode.ListFiles:
		return streamVerbatim(ch, protocol.ListFiles{}, opts)
	case mode.ListModes:
		return streamVerbatim(ch, protocol.ListModes{}, opts)
	case mode.Show:
		return streamVerbatim(ch, protocol.Show{Name: m.Symbol}, opts)

	case mode.Color:
		input, err := resolveInput(m.File, opts)
		if err != nil {
			return fail(err)
		}
		var spans []protocol.ColorSpan
		if err := ch.Call(protocol.Color{Input: input}, &spans); err != nil {
			return fail(err)
		}
		output.ColorSpans(opts.Stdout, spans, opts.Machine, opts.Color)
		return exit.Ok, nil

	case mode.Coverage:
		var counts map[string]int
		if err := ch.Call(protocol.Coverage{File: m.File}, &counts); err != nil {
			return fail(err)
		}
		output.CoverageCounts(opts.Stdout, counts, opts.Machine)
		return exit.Ok, nil

	case mode.FindClassRefs:
		var refs []protocol.Reference
		if err := ch.Call(protocol.FindClassRefs{Class: m.Class}, &refs); err != nil {
			return fail(err)
		}
		output.References(opts.Stdout, refs, opts.Machine)
		return exit.Ok, nil

	case mode.FindRefs:
		ref, err := position.ParseMemberRef(m.Ref)
		if err != nil {
			return inputError(opts, err)
		}
		var refs []protocol.Reference
		if err := ch.Call(protocol.FindRefs{Class: ref.Class, Member: ref.Member}, &refs); err != nil {
			return fail(err)
		}
		output.References(opts.Stdout, refs, opts.Machine)
		return exit.Ok, nil

	case mode.FindLocalRefs:
		file, pos, status, err := fileLocation(m.Location, opts)
		if err != nil || status != exit.Ok {
			return status, err
		}
		var refs []protocol.Reference
		if err := ch.Call(protocol.FindLocalRefs{File: file, Pos: pos}, &refs); err != nil {
			return fail(err)
		}
		output.References(opts.Stdout, refs, opts.Machine)
		return exit.Ok, nil

	case mode.DumpSymbolInfo:
		var raw json.RawMessage
		if err := ch.Call(protocol.DumpSymbolInfo{Files: m.Files}, &raw); err != nil {
			return fail(err)
		}
		output.Raw(opts.Stdout, raw)
		return exit.Ok, nil

	case mode.Refactor:
		var patches []protocol.Patch
		req := protocol.Refactor{Kind: m.Kind, Before: m.Before, After: m.After}
		if err := ch.Call(req, &patches); err != nil {
			return fail(err)
		}
		output.Patches(opts.Stdout, patches, opts.Machine)
		return exit.Ok, nil

	case mode.IdentifyFunction:
		pos, content, status, err := stdinLocation(m.Location, opts)
		if err != nil || status != exit.Ok {
			return status, err
		}
		var name string
		if err := ch.Call(protocol.IdentifyFunction{Content: content, Pos: pos}, &name); err != nil {
			return fail(err)
		}
		output.Text(opts.Stdout, name, opts.Machine)
		return exit.Ok, nil

	case mode.TypeAtPos:
		input, pos, status, err := locationInput(m.Location, opts)
		if err != nil || status != exit.Ok {
			return status, err
		}
		var info protocol.TypeInfo
		if err := ch.Call(protocol.TypeAtPos{Input: input, Pos: pos}, &info); err != nil {
			return fail(err)
		}
		output.TypeInfo(opts.Stdout, info, opts.Machine)
		return exit.Ok, nil

	case mode.ArgumentInfo:
		pos, content, status, err := stdinLocation(m.Location, opts)
		if err != nil || status != exit.Ok {
			return status, err
		}
		var info protocol.CallInfo
		if err := ch.Call(protocol.ArgumentInfo{Content: content, Pos: pos}, &info); err != nil {
			return fail(err)
		}
		output.CallInfo(opts.Stdout, info, opts.Machine)
		return exit.Ok, nil

	case mode.Autocomplete:
		content, err := opts.Source.ReadAll()
		if err != nil {
			return fail(err)
		}
		var entries []protocol.CompleteEntry
		if err := ch.Call(protocol.Autocomplete{Content: content}, &entries); err != nil {
			return fail(err)
		}
		output.Completions(opts.Stdout, entries, opts.Machine)
		return exit.Ok, nil

	case mode.Outline:
		content, err := opts.Source.ReadAll()
		if err != nil {
			return fail(err)
		}
		var entries []protocol.OutlineEntry
		if err := ch.Call(protocol.Outline{Content: content}, &entries); err != nil {
			return fail(err)
		}
		output.OutlineEntries(opts.Stdout, entries, opts.Machine)
		return exit.Ok, nil

	case mode.MethodJump:
		var targets []protocol.MethodJumpTarget
		req := protocol.MethodJump{Class: m.Class, FindChildren: m.FindChildren}
		if err := ch.Call(req, &targets); err != nil {
			return fail(err)
		}
		output.MethodJumpTargets(opts.Stdout, targets, opts.Machine)
		return exit.Ok, nil

	case mode.Status:
		var diags []protocol.Diagnostic
		if err := ch.Call(protocol.Status{}, &diags); err != nil {
			return fail(err)
		}
		output.Status(opts.Stdout, opts.Stderr, diags, opts.Machine, opts.Interactive, opts.Color)
		return diagnosticStatus(len(diags)), nil

	case mode.Search:
		var results []protocol.SearchResult
		if err := ch.Call(protocol.Search{Query: m.Query, Kind: m.Kind}, &results); err != nil {
			return fail(err)
		}
		output.SearchResults(opts.Stdout, results, opts.Machine)
		return exit.Ok, nil

	case mode.Lint:
		var msgs []protocol.LintMessage
		if err := ch.Call(protocol.Lint{Files: m.Files}, &msgs); err != nil {
			return fail(err)
		}
		output.LintMessages(opts.Stdout, msgs, opts.Machine)
		return diagnosticStatus(len(msgs)), nil

	case mode.LintAll:
		var msgs []protocol.LintMessage
		if err := ch.Call(protocol.LintAll{Code: m.Code}, &msgs); err != nil {
			return fail(err)
		}
		output.LintMessages(opts.Stdout, msgs, opts.Machine)
		return diagnosticStatus(len(msgs)), nil

	case mode.CheckpointCreate:
		// Fire and forget: the acknowledgment is discarded.
		var ack json.RawMessage
		if err := ch.Call(protocol.CheckpointCreate{Label: m.Label}, &ack); err != nil {
			return fail(err)
		}
		return exit.Ok, nil

	case mode.CheckpointRetrieve:
		var files *[]string
		if err := ch.Call(protocol.CheckpointRetrieve{Label: m.Label}, &files); err != nil {
			return fail(err)
		}
		if files == nil {
			fmt.Fprintf(opts.Stderr, "scry: no checkpoint %q\n", m.Label)
			return exit.CheckpointError, nil
		}
		output.Lines(opts.Stdout, *files, opts.Machine)
		return exit.Ok, nil

	case mode.CheckpointDelete:
		var deleted bool
		if err := ch.Call(protocol.CheckpointDelete{Label: m.Label}, &deleted); err != nil {
			return fail(err)
		}
		if !deleted {
			fmt.Fprintf(opts.Stderr, "scry: no checkpoint %q\n", m.Label)
			return exit.CheckpointError, nil
		}
		return exit.Ok, nil

	case mode.Stats:
		var raw json.RawMessage
		if err := ch.Call(protocol.Stats{}, &raw); err != nil {
			return fail(err)
		}
		output.Raw(opts.Stdout, raw)
		return exit.Ok, nil

	case mode.GetMethodName:
		pos, content, status, err := stdinLocation(m.Location, opts)
		if err != nil || status != exit.Ok {
			return status, err
		}
		var sym *protocol.SymbolName
		if err := ch.Call(protocol.GetMethodName{Content: content, Pos: pos}, &sym); err != nil {
			return fail(err)
		}
		output.SymbolName(opts.Stdout, sym, opts.Machine)
		return exit.Ok, nil

	case mode.Format:
		content, err := opts.Source.ReadAll()
		if err != nil {
			return fail(err)
		}
		var res protocol.FormatResult
		req := protocol.Format{Content: content, From: m.From, To: m.To}
		if err := ch.Call(req, &res); err != nil {
			return fail(err)
		}
		if opts.Machine {
			output.Text(opts.Stdout, res.Content, true)
		} else {
			fmt.Fprint(opts.Stdout, res.Content)
		}
		return exit.Ok, nil

	default:
		panic(fmt.Sprintf("dispatch: unhandled mode %T", m))
	}
}

// streamVerbatim prints every streamed line as received. Streaming modes
// always exit Ok unless the channel fails.
func streamVerbatim(ch channel.Caller, req protocol.Request, opts Options) (exit.Status, error) {
	err := ch.Stream(req, func(line string) error {
		fmt.Fprintln(opts.Stdout, line)
		return nil
	})
	if err != nil {
		return fail(err)
	}
	return exit.Ok, nil
}

// diagnosticStatus applies the shared rule for diagnostic-listing commands.
func diagnosticStatus(n int) exit.Status {
	if n == 0 {
		return exit.Ok
	}
	return exit.TypeError
}

// inputError reports a malformed argument and stops before any channel
// traffic.
func inputError(opts Options, err error) (exit.Status, error) {
	fmt.Fprintf(opts.Stderr, "scry: %v\n", err)
	return exit.InputError, nil
}

// fail maps a non-recoverable error onto its exit status. The error is
// returned as well so the caller can print it and decide termination.
func fail(err error) (exit.Status, error) {
	var pnf *position.PathNotFoundError
	if errors.As(err, &pnf) {
		return exit.PathNotFound, err
	}
	var cerr *channel.Error
	if errors.As(err, &cerr) {
		return exit.ChannelFailure, err
	}
	return exit.InputError, err
}

// resolveInput wraps a named file, or reads stdin when no path was given.
func resolveInput(file string, opts Options) (protocol.FileInput, error) {
	if file != "" {
		return protocol.FileName(file), nil
	}
	content, err := opts.Source.ReadAll()
	if err != nil {
		return protocol.FileInput{}, err
	}
	return protocol.InlineContent(content), nil
}

// stdinLocation parses a "<line>:<char>" location and reads the content it
// points into from stdin.
func stdinLocation(loc string, opts Options) (position.Position, string, exit.Status, error) {
	pos, err := position.Parse(loc)
	if err != nil {
		status, _ := inputError(opts, err)
		return position.Position{}, "", status, nil
	}
	content, err := opts.Source.ReadAll()
	if err != nil {
		status, err := fail(err)
		return position.Position{}, "", status, err
	}
	return pos, content, exit.Ok, nil
}

// fileLocation parses a "<path>:<line>:<char>" location, resolving the path.
func fileLocation(loc string, opts Options) (string, position.Position, exit.Status, error) {
	file, pos, err := position.ParseFile(loc)
	if err != nil {
		var pnf *position.PathNotFoundError
		if errors.As(err, &pnf) {
			status, err := fail(err)
			return "", position.Position{}, status, err
		}
		status, _ := inputError(opts, err)
		return "", position.Position{}, status, nil
	}
	return file, pos, exit.Ok, nil
}

// locationInput accepts either grammar: "<line>:<char>" with stdin content,
// or "<path>:<line>:<char>" naming a file the server reads itself.
func locationInput(loc string, opts Options) (protocol.FileInput, position.Position, exit.Status, error) {
	if strings.Count(loc, ":") == 1 {
		pos, content, status, err := stdinLocation(loc, opts)
		if err != nil || status != exit.Ok {
			return protocol.FileInput{}, position.Position{}, status, err
		}
		return protocol.InlineContent(content), pos, exit.Ok, nil
	}
	file, pos, status, err := fileLocation(loc, opts)
	if err != nil || status != exit.Ok {
		return protocol.FileInput{}, position.Position{}, status, err
	}
	return protocol.FileName(file), pos, exit.Ok, nil
}
