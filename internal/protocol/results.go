package protocol

import "github.com/scrylang/scry/internal/position"

// Diagnostic is one reported problem in the analyzed source.
type Diagnostic struct {
	File    string `json:"file"`
	Line    int    `json:"line"`
	Start   int    `json:"start"`
	End     int    `json:"end"`
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// TypeInfo is the result of a type-at-pos query. An empty Type means the
// server could not infer one.
type TypeInfo struct {
	Type string `json:"type"`
}

// Reference is one use site of a symbol.
type Reference struct {
	Name   string `json:"name"`
	File   string `json:"file"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
}

// Patch is one edit proposed by a refactor.
type Patch struct {
	File string `json:"file"`
	Kind string `json:"kind"`
	Line int    `json:"line"`
	Text string `json:"text"`
}

// CompleteEntry is one autocomplete candidate.
type CompleteEntry struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// OutlineEntry is one definition in an outline.
type OutlineEntry struct {
	Name string            `json:"name"`
	Kind string            `json:"kind"`
	Pos  position.Position `json:"pos"`
}

// SearchResult is one fuzzy-search hit.
type SearchResult struct {
	Name   string `json:"name"`
	Kind   string `json:"kind"`
	File   string `json:"file"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
}

// ColorSpan is one run of source text with a coverage level.
type ColorSpan struct {
	Level string `json:"level"`
	Text  string `json:"text"`
}

// LintMessage is one lint diagnostic.
type LintMessage struct {
	File     string `json:"file"`
	Line     int    `json:"line"`
	Code     int    `json:"code"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
}

// MethodJumpTarget is one override-hierarchy neighbor.
type MethodJumpTarget struct {
	Class  string `json:"class"`
	Method string `json:"method"`
}

// Parameter is one expected argument in an argument-info result.
type Parameter struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// CallInfo is the result of an argument-info query.
type CallInfo struct {
	Function    string      `json:"function"`
	Parameters  []Parameter `json:"parameters"`
	ActiveIndex int         `json:"active_index"`
}

// SymbolName is an optionally present symbol identification.
type SymbolName struct {
	Name string `json:"name"`
	Kind string `json:"kind"`
}

// FormatResult is the reformatted content for a format request.
type FormatResult struct {
	Content string `json:"content"`
}
