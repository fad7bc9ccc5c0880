// Package output renders typed command results for humans or machines. Each
// sink consumes one result shape plus the machine-readable flag; none of
// them influence the exit status.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/charmbracelet/lipgloss"

	"github.com/scrylang/scry/internal/protocol"
)

var (
	errStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	partialStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
)

func writeJSON(w io.Writer, v any) {
	enc := json.NewEncoder(w)
	_ = enc.Encode(v)
}

// Status prints the diagnostic list. Output goes to stderr when machine
// output is requested, when the caller identity is non-interactive, or when
// there is nothing to report; otherwise to the color-coded stdout. The
// routing is a documented compatibility quirk and never affects the exit
// status.
func Status(stdout, stderr io.Writer, diags []protocol.Diagnostic, machine, interactive, color bool) {
	w := stdout
	if machine || !interactive || len(diags) == 0 {
		w = stderr
	}
	if machine {
		writeJSON(w, diags)
		return
	}
	if len(diags) == 0 {
		fmt.Fprintln(w, styled(okStyle, "No errors!", color))
		return
	}
	for _, d := range diags {
		fmt.Fprintf(w, "%s: %s\n", styled(errStyle, diagnosticSite(d), color), d.Message)
	}
}

func styled(s lipgloss.Style, text string, color bool) string {
	if !color {
		return text
	}
	return s.Render(text)
}

func diagnosticSite(d protocol.Diagnostic) string {
	return fmt.Sprintf("%s:%d:%d,%d [%d]", d.File, d.Line, d.Start, d.End, d.Code)
}

// References prints symbol use sites.
func References(w io.Writer, refs []protocol.Reference, machine bool) {
	if machine {
		writeJSON(w, refs)
		return
	}
	for _, r := range refs {
		fmt.Fprintf(w, "%s %s:%d:%d\n", r.Name, r.File, r.Line, r.Column)
	}
	fmt.Fprintf(w, "%d total results\n", len(refs))
}

// Patches prints refactor edits.
func Patches(w io.Writer, patches []protocol.Patch, machine bool) {
	if machine {
		writeJSON(w, patches)
		return
	}
	for _, p := range patches {
		fmt.Fprintf(w, "%s:%d: %s %s\n", p.File, p.Line, p.Kind, p.Text)
	}
	fmt.Fprintf(w, "%d patches\n", len(patches))
}

// Completions prints autocomplete candidates.
func Completions(w io.Writer, entries []protocol.CompleteEntry, machine bool) {
	if machine {
		writeJSON(w, entries)
		return
	}
	for _, e := range entries {
		fmt.Fprintf(w, "%s %s\n", e.Name, e.Type)
	}
}

// OutlineEntries prints a definition outline.
func OutlineEntries(w io.Writer, entries []protocol.OutlineEntry, machine bool) {
	if machine {
		writeJSON(w, entries)
		return
	}
	for _, e := range entries {
		fmt.Fprintf(w, "%d:%d %s %s\n", e.Pos.Line, e.Pos.Column, e.Kind, e.Name)
	}
}

// SearchResults prints fuzzy-search hits.
func SearchResults(w io.Writer, results []protocol.SearchResult, machine bool) {
	if machine {
		writeJSON(w, results)
		return
	}
	for _, r := range results {
		fmt.Fprintf(w, "%s:%d:%d %s, %s\n", r.File, r.Line, r.Column, r.Name, r.Kind)
	}
}

// ColorSpans prints coverage coloring, tinting each span by its level when
// color is enabled.
func ColorSpans(w io.Writer, spans []protocol.ColorSpan, machine, color bool) {
	if machine {
		writeJSON(w, spans)
		return
	}
	for _, s := range spans {
		switch s.Level {
		case "checked":
			fmt.Fprint(w, styled(okStyle, s.Text, color))
		case "partial":
			fmt.Fprint(w, styled(partialStyle, s.Text, color))
		case "unchecked":
			fmt.Fprint(w, styled(errStyle, s.Text, color))
		default:
			fmt.Fprint(w, s.Text)
		}
	}
	fmt.Fprintln(w)
}

// CoverageCounts prints per-level counts in level order.
func CoverageCounts(w io.Writer, counts map[string]int, machine bool) {
	if machine {
		writeJSON(w, counts)
		return
	}
	levels := make([]string, 0, len(counts))
	for level := range counts {
		levels = append(levels, level)
	}
	sort.Strings(levels)
	for _, level := range levels {
		fmt.Fprintf(w, "%s: %d\n", level, counts[level])
	}
}

// LintMessages prints lint diagnostics.
func LintMessages(w io.Writer, msgs []protocol.LintMessage, machine bool) {
	if machine {
		writeJSON(w, msgs)
		return
	}
	for _, m := range msgs {
		fmt.Fprintf(w, "%s:%d: [%s %d] %s\n", m.File, m.Line, m.Severity, m.Code, m.Message)
	}
}

// MethodJumpTargets prints override-hierarchy neighbors.
func MethodJumpTargets(w io.Writer, targets []protocol.MethodJumpTarget, machine bool) {
	if machine {
		writeJSON(w, targets)
		return
	}
	for _, t := range targets {
		fmt.Fprintf(w, "%s::%s\n", t.Class, t.Method)
	}
}

// CallInfo prints call-site argument info, marking the active parameter.
func CallInfo(w io.Writer, info protocol.CallInfo, machine bool) {
	if machine {
		writeJSON(w, info)
		return
	}
	fmt.Fprintln(w, info.Function)
	for i, p := range info.Parameters {
		marker := " "
		if i == info.ActiveIndex {
			marker = "*"
		}
		fmt.Fprintf(w, "%s %s: %s\n", marker, p.Name, p.Type)
	}
}

// TypeInfo prints an inferred type, or "(unknown)" when inference failed.
func TypeInfo(w io.Writer, info protocol.TypeInfo, machine bool) {
	if machine {
		writeJSON(w, info)
		return
	}
	if info.Type == "" {
		fmt.Fprintln(w, "(unknown)")
		return
	}
	fmt.Fprintln(w, info.Type)
}

// SymbolName prints an optional symbol identification.
func SymbolName(w io.Writer, sym *protocol.SymbolName, machine bool) {
	if machine {
		writeJSON(w, sym)
		return
	}
	if sym == nil {
		fmt.Fprintln(w, "(unknown)")
		return
	}
	fmt.Fprintf(w, "%s %s\n", sym.Kind, sym.Name)
}

// Text prints a bare string result.
func Text(w io.Writer, s string, machine bool) {
	if machine {
		writeJSON(w, s)
		return
	}
	fmt.Fprintln(w, s)
}

// Lines prints one entry per line.
func Lines(w io.Writer, lines []string, machine bool) {
	if machine {
		writeJSON(w, lines)
		return
	}
	for _, line := range lines {
		fmt.Fprintln(w, line)
	}
}

// Raw forwards an opaque JSON payload as received, ensuring a trailing
// newline.
func Raw(w io.Writer, payload json.RawMessage) {
	w.Write(payload) //nolint:errcheck
	if n := len(payload); n == 0 || payload[n-1] != '\n' {
		fmt.Fprintln(w)
	}
}
