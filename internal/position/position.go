// Package position parses user-supplied location strings into structured
// source positions and symbol references.
package position

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Position is a 1-based line and 0-based column in a source file. Only this
// package constructs them.
type Position struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// MemberRef names the symbol a reference lookup targets: either a member of
// an owning class, or a free function when Class is empty.
type MemberRef struct {
	Class  string
	Member string
}

// IsFunction reports whether the reference names a free function.
func (r MemberRef) IsFunction() bool { return r.Class == "" }

func (r MemberRef) String() string {
	if r.IsFunction() {
		return r.Member
	}
	return r.Class + "::" + r.Member
}

// PathNotFoundError reports a location argument whose file part exists
// neither as given nor under the working directory. The caller decides
// whether it terminates the process.
type PathNotFoundError struct {
	Path string
}

func (e *PathNotFoundError) Error() string {
	return fmt.Sprintf("file not found: %s", e.Path)
}

// Parse parses a "<line>:<char>" location string. Parsing is strict: a
// non-numeric token, a wrong segment count, a non-positive line or a
// negative column all fail.
func Parse(s string) (Position, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return Position{}, fmt.Errorf("invalid position %q, expected <line>:<char>", s)
	}
	line, err := strconv.Atoi(parts[0])
	if err != nil || line < 1 {
		return Position{}, fmt.Errorf("invalid line in position %q", s)
	}
	col, err := strconv.Atoi(parts[1])
	if err != nil || col < 0 {
		return Position{}, fmt.Errorf("invalid column in position %q", s)
	}
	return Position{Line: line, Column: col}, nil
}

// ParseFile parses a "<path>:<line>:<char>" location string and resolves the
// path. A path that exists is used as given; otherwise it is joined onto the
// working directory and re-checked. If neither form exists the returned error
// is a *PathNotFoundError.
func ParseFile(s string) (string, Position, error) {
	j := strings.LastIndexByte(s, ':')
	if j <= 0 {
		return "", Position{}, fmt.Errorf("invalid location %q, expected <path>:<line>:<char>", s)
	}
	i := strings.LastIndexByte(s[:j], ':')
	if i <= 0 {
		return "", Position{}, fmt.Errorf("invalid location %q, expected <path>:<line>:<char>", s)
	}
	pos, err := Parse(s[i+1:])
	if err != nil {
		return "", Position{}, err
	}
	path, err := resolvePath(s[:i])
	if err != nil {
		return "", Position{}, err
	}
	return path, pos, nil
}

func resolvePath(path string) (string, error) {
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}
	if !filepath.IsAbs(path) {
		if cwd, err := os.Getwd(); err == nil {
			joined := filepath.Join(cwd, path)
			if _, err := os.Stat(joined); err == nil {
				return joined, nil
			}
		}
	}
	return "", &PathNotFoundError{Path: path}
}

// ParseMemberRef parses a "<owner>::<member>" reference. A string with no
// "::" separator names a free function; exactly one separator names a class
// member. Empty segments and deeper nesting are rejected.
func ParseMemberRef(s string) (MemberRef, error) {
	if s == "" {
		return MemberRef{}, fmt.Errorf("empty symbol reference")
	}
	parts := strings.Split(s, "::")
	switch len(parts) {
	case 1:
		return MemberRef{Member: parts[0]}, nil
	case 2:
		if parts[0] == "" || parts[1] == "" {
			return MemberRef{}, fmt.Errorf("invalid symbol reference %q", s)
		}
		return MemberRef{Class: parts[0], Member: parts[1]}, nil
	default:
		return MemberRef{}, fmt.Errorf("invalid symbol reference %q, expected <owner>::<member>", s)
	}
}
