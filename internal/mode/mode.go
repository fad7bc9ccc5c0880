// Package mode enumerates the command modes a single scry invocation can
// run. One mode is selected per invocation from command-line input and is
// immutable afterwards; dispatch maps each variant to exactly one wire
// request.
package mode

// Mode is the closed set of commands. Each variant carries exactly the raw
// arguments its command needs; location strings stay unparsed until
// dispatch.
type Mode interface {
	// Name is the user-facing command name, also used for event logging.
	Name() string
}

// ListFiles lists every file the server tracks.
type ListFiles struct{}

func (ListFiles) Name() string { return "list-files" }

// ListModes lists the server's known coverage modes.
type ListModes struct{}

func (ListModes) Name() string { return "list-modes" }

// Show dumps the definition registered under a name.
type Show struct{ Symbol string }

func (Show) Name() string { return "show" }

// Color reports coverage coloring for a file, or stdin when File is empty.
type Color struct{ File string }

func (Color) Name() string { return "color" }

// Coverage reports per-level coverage counts for a file.
type Coverage struct{ File string }

func (Coverage) Name() string { return "coverage" }

// FindClassRefs finds references to a class.
type FindClassRefs struct{ Class string }

func (FindClassRefs) Name() string { return "find-class-refs" }

// FindRefs finds references to a "<owner>::<member>" reference or a bare
// function name.
type FindRefs struct{ Ref string }

func (FindRefs) Name() string { return "find-refs" }

// FindLocalRefs finds references to the local variable at a
// "<path>:<line>:<char>" location.
type FindLocalRefs struct{ Location string }

func (FindLocalRefs) Name() string { return "find-lvar-refs" }

// DumpSymbolInfo dumps raw symbol info for a set of files.
type DumpSymbolInfo struct{ Files []string }

func (DumpSymbolInfo) Name() string { return "dump-symbol-info" }

// Refactor renames Before to After.
type Refactor struct{ Kind, Before, After string }

func (Refactor) Name() string { return "refactor" }

// IdentifyFunction names the function enclosing a "<line>:<char>" position in
// stdin content.
type IdentifyFunction struct{ Location string }

func (IdentifyFunction) Name() string { return "identify-function" }

// TypeAtPos reports the inferred type at a "<line>:<char>" position in stdin
// content or a "<path>:<line>:<char>" location.
type TypeAtPos struct{ Location string }

func (TypeAtPos) Name() string { return "type-at-pos" }

// ArgumentInfo reports call-site argument info at a "<line>:<char>" position
// in stdin content.
type ArgumentInfo struct{ Location string }

func (ArgumentInfo) Name() string { return "args-at-pos" }

// Autocomplete completes at the cursor marker in stdin content.
type Autocomplete struct{}

func (Autocomplete) Name() string { return "complete" }

// Outline lists the definitions in stdin content.
type Outline struct{}

func (Outline) Name() string { return "outline" }

// MethodJump lists override-hierarchy neighbors of a class, downward when
// FindChildren is set and upward otherwise.
type MethodJump struct {
	Class        string
	FindChildren bool
}

func (m MethodJump) Name() string {
	if m.FindChildren {
		return "method-jump-children"
	}
	return "method-jump-ancestors"
}

// Status reports the server's full diagnostic list.
type Status struct{}

func (Status) Name() string { return "status" }

// Search finds symbols fuzzily matching a query.
type Search struct{ Query, Kind string }

func (Search) Name() string { return "search" }

// Lint reports lint diagnostics for a set of files.
type Lint struct{ Files []string }

func (Lint) Name() string { return "lint" }

// LintAll reports every occurrence of one lint code.
type LintAll struct{ Code int }

func (LintAll) Name() string { return "lint-all" }

// CheckpointCreate records the current diagnostic set under a label.
type CheckpointCreate struct{ Label string }

func (CheckpointCreate) Name() string { return "checkpoint-create" }

// CheckpointRetrieve prints the files recorded under a label.
type CheckpointRetrieve struct{ Label string }

func (CheckpointRetrieve) Name() string { return "checkpoint-retrieve" }

// CheckpointDelete removes the checkpoint recorded under a label.
type CheckpointDelete struct{ Label string }

func (CheckpointDelete) Name() string { return "checkpoint-delete" }

// Stats prints raw server statistics.
type Stats struct{}

func (Stats) Name() string { return "stats" }

// GetMethodName identifies the symbol at a "<line>:<char>" position in stdin
// content.
type GetMethodName struct{ Location string }

func (GetMethodName) Name() string { return "get-method-name" }

// Format reformats the character range [From, To) of stdin content.
type Format struct{ From, To string }

func (Format) Name() string { return "format" }
