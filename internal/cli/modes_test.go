package cli

import (
	"reflect"
	"testing"

	"github.com/scrylang/scry/internal/mode"
)

func TestParseModeDefaultsToStatus(t *testing.T) {
	m, err := parseMode(nil)
	if err != nil {
		t.Fatalf("parseMode() error = %v", err)
	}
	if _, ok := m.(mode.Status); !ok {
		t.Fatalf("parseMode() = %T, want mode.Status", m)
	}
}

func TestParseModeTable(t *testing.T) {
	tests := []struct {
		args []string
		want mode.Mode
	}{
		{args: []string{"list-files"}, want: mode.ListFiles{}},
		{args: []string{"show", "\\MyClass"}, want: mode.Show{Symbol: "\\MyClass"}},
		{args: []string{"color"}, want: mode.Color{}},
		{args: []string{"color", "a.src"}, want: mode.Color{File: "a.src"}},
		{args: []string{"find-refs", "Foo::bar"}, want: mode.FindRefs{Ref: "Foo::bar"}},
		{args: []string{"dump-symbol-info", "a.src", "b.src"}, want: mode.DumpSymbolInfo{Files: []string{"a.src", "b.src"}}},
		{args: []string{"refactor", "class", "Old", "New"}, want: mode.Refactor{Kind: "class", Before: "Old", After: "New"}},
		{args: []string{"type-at-pos", "a.src:3:4"}, want: mode.TypeAtPos{Location: "a.src:3:4"}},
		{args: []string{"method-jump-children", "Base"}, want: mode.MethodJump{Class: "Base", FindChildren: true}},
		{args: []string{"method-jump-ancestors", "Derived"}, want: mode.MethodJump{Class: "Derived"}},
		{args: []string{"search", "foo", "class"}, want: mode.Search{Query: "foo", Kind: "class"}},
		{args: []string{"lint-all", "5562"}, want: mode.LintAll{Code: 5562}},
		{args: []string{"checkpoint-retrieve", "base"}, want: mode.CheckpointRetrieve{Label: "base"}},
		{args: []string{"format", "10", "40"}, want: mode.Format{From: "10", To: "40"}},
	}
	for _, tt := range tests {
		got, err := parseMode(tt.args)
		if err != nil {
			t.Errorf("parseMode(%v) error = %v", tt.args, err)
			continue
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("parseMode(%v) = %#v, want %#v", tt.args, got, tt.want)
		}
	}
}

func TestParseModeRejectsBadInvocations(t *testing.T) {
	bad := [][]string{
		{"frobnicate"},
		{"show"},
		{"color", "a.src", "b.src"},
		{"refactor", "class", "Old"},
		{"lint"},
		{"lint-all", "notanumber"},
		{"search"},
		{"status", "extra"},
	}
	for _, args := range bad {
		if _, err := parseMode(args); err == nil {
			t.Errorf("parseMode(%v) error = nil, want error", args)
		}
	}
}

func TestColorPolicy(t *testing.T) {
	tests := []struct {
		policy      string
		interactive bool
		jsonOut     bool
		want        bool
	}{
		{policy: "always", interactive: false, jsonOut: true, want: true},
		{policy: "never", interactive: true, jsonOut: false, want: false},
		{policy: "auto", interactive: true, jsonOut: false, want: true},
		{policy: "auto", interactive: true, jsonOut: true, want: false},
		{policy: "auto", interactive: false, jsonOut: false, want: false},
	}
	for _, tt := range tests {
		got := colorEnabled(tt.policy, tt.interactive, tt.jsonOut)
		if got != tt.want {
			t.Errorf("colorEnabled(%q, %v, %v) = %v, want %v", tt.policy, tt.interactive, tt.jsonOut, got, tt.want)
		}
	}
}
