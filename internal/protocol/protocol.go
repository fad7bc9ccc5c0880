// Package protocol defines the wire requests the client sends to the scry
// server and the typed payloads it receives back. Requests travel as one
// newline-terminated JSON envelope; unary responses are one JSON value,
// streaming responses are raw text lines drained to EOF.
package protocol

import (
	"encoding/json"
	"io"

	"github.com/scrylang/scry/internal/position"
)

// Request is one wire request. The variant set mirrors the command modes
// one-to-one; dispatch builds a request immediately before each channel
// operation and never persists it.
type Request interface {
	// Cmd returns the wire command name.
	Cmd() string
}

// FileInput is the source a request operates on: a file the server opens
// itself, or inline content already read from stdin. Exactly one field is
// set.
type FileInput struct {
	File    string  `json:"file,omitempty"`
	Content *string `json:"content,omitempty"`
}

// FileName wraps a path the server resolves on its side.
func FileName(path string) FileInput {
	return FileInput{File: path}
}

// InlineContent wraps source text supplied by the caller.
func InlineContent(text string) FileInput {
	return FileInput{Content: &text}
}

type envelope struct {
	Cmd  string `json:"cmd"`
	Args any    `json:"args"`
}

// Encode writes one request envelope, newline-terminated.
func Encode(w io.Writer, req Request) error {
	return json.NewEncoder(w).Encode(envelope{Cmd: req.Cmd(), Args: req})
}

// Streaming requests.

// ListFiles asks for every file the server tracks, one per response line.
type ListFiles struct{}

func (ListFiles) Cmd() string { return "list_files" }

// ListModes asks for the server's known coverage modes.
type ListModes struct{}

func (ListModes) Cmd() string { return "list_modes" }

// Show asks for the raw dump of a named definition.
type Show struct {
	Name string `json:"name"`
}

func (Show) Cmd() string { return "show" }

// Unary requests.

// Color asks for coverage coloring spans over one input.
type Color struct {
	Input FileInput `json:"input"`
}

func (Color) Cmd() string { return "color" }

// Coverage asks for per-level coverage counts of one file.
type Coverage struct {
	File string `json:"file"`
}

func (Coverage) Cmd() string { return "coverage" }

// FindClassRefs asks for all references to a class.
type FindClassRefs struct {
	Class string `json:"class"`
}

func (FindClassRefs) Cmd() string { return "find_class_refs" }

// FindRefs asks for all references to a member or free function.
type FindRefs struct {
	Class  string `json:"class,omitempty"`
	Member string `json:"member"`
}

func (FindRefs) Cmd() string { return "find_refs" }

// FindLocalRefs asks for references to the local variable at a position.
type FindLocalRefs struct {
	File string            `json:"file"`
	Pos  position.Position `json:"pos"`
}

func (FindLocalRefs) Cmd() string { return "find_lvar_refs" }

// DumpSymbolInfo asks for raw symbol info over a set of files.
type DumpSymbolInfo struct {
	Files []string `json:"files"`
}

func (DumpSymbolInfo) Cmd() string { return "dump_symbol_info" }

// Refactor asks for the patch list renaming Before to After.
type Refactor struct {
	Kind   string `json:"kind"`
	Before string `json:"before"`
	After  string `json:"after"`
}

func (Refactor) Cmd() string { return "refactor" }

// IdentifyFunction asks for the fully qualified name enclosing a position.
type IdentifyFunction struct {
	Content string            `json:"content"`
	Pos     position.Position `json:"pos"`
}

func (IdentifyFunction) Cmd() string { return "identify_function" }

// TypeAtPos asks for the inferred type at a position.
type TypeAtPos struct {
	Input FileInput         `json:"input"`
	Pos   position.Position `json:"pos"`
}

func (TypeAtPos) Cmd() string { return "type_at_pos" }

// ArgumentInfo asks for call-site argument info at a position.
type ArgumentInfo struct {
	Content string            `json:"content"`
	Pos     position.Position `json:"pos"`
}

func (ArgumentInfo) Cmd() string { return "argument_info" }

// Autocomplete asks for completion candidates; the cursor is marked inline
// in the content.
type Autocomplete struct {
	Content string `json:"content"`
}

func (Autocomplete) Cmd() string { return "autocomplete" }

// Outline asks for the definition outline of the content.
type Outline struct {
	Content string `json:"content"`
}

func (Outline) Cmd() string { return "outline" }

// MethodJump asks for override-hierarchy neighbors of a class, downward when
// FindChildren is set and upward otherwise.
type MethodJump struct {
	Class        string `json:"class"`
	FindChildren bool   `json:"find_children"`
}

func (MethodJump) Cmd() string { return "method_jump" }

// Status asks for the server's full diagnostic list.
type Status struct{}

func (Status) Cmd() string { return "status" }

// Search asks for symbols fuzzily matching a query, optionally restricted to
// one kind.
type Search struct {
	Query string `json:"query"`
	Kind  string `json:"kind,omitempty"`
}

func (Search) Cmd() string { return "search" }

// Lint asks for lint diagnostics over a set of files.
type Lint struct {
	Files []string `json:"files"`
}

func (Lint) Cmd() string { return "lint" }

// LintAll asks for every occurrence of one lint code in the codebase.
type LintAll struct {
	Code int `json:"code"`
}

func (LintAll) Cmd() string { return "lint_all" }

// CheckpointCreate records the current diagnostic set under a label.
type CheckpointCreate struct {
	Label string `json:"label"`
}

func (CheckpointCreate) Cmd() string { return "checkpoint_create" }

// CheckpointRetrieve fetches the files recorded under a label.
type CheckpointRetrieve struct {
	Label string `json:"label"`
}

func (CheckpointRetrieve) Cmd() string { return "checkpoint_retrieve" }

// CheckpointDelete removes the checkpoint recorded under a label.
type CheckpointDelete struct {
	Label string `json:"label"`
}

func (CheckpointDelete) Cmd() string { return "checkpoint_delete" }

// Stats asks for raw server statistics.
type Stats struct{}

func (Stats) Cmd() string { return "stats" }

// GetMethodName asks for the symbol at a position, if any.
type GetMethodName struct {
	Content string            `json:"content"`
	Pos     position.Position `json:"pos"`
}

func (GetMethodName) Cmd() string { return "get_method_name" }

// Format asks the server to reformat the character range [From, To) of the
// content.
type Format struct {
	Content string `json:"content"`
	From    string `json:"from"`
	To      string `json:"to"`
}

func (Format) Cmd() string { return "format" }
