package cli

import (
	"fmt"
	"strconv"

	"github.com/scrylang/scry/internal/mode"
)

var commandUsage = []string{
	"status                          full diagnostic list (default)",
	"list-files                      every file the server tracks",
	"list-modes                      server-known coverage modes",
	"show <name>                     raw dump of a named definition",
	"color [file]                    coverage coloring (stdin without a file)",
	"coverage <file>                 per-level coverage counts",
	"find-class-refs <class>         references to a class",
	"find-refs <owner::member>       references to a member or function",
	"find-lvar-refs <file:line:col>  references to a local variable",
	"dump-symbol-info <file...>      raw symbol info",
	"refactor <kind> <before> <after>  rename patches",
	"identify-function <line:col>    enclosing function (content on stdin)",
	"type-at-pos <pos>               type at line:col (stdin) or file:line:col",
	"args-at-pos <line:col>          call-site arguments (content on stdin)",
	"complete                        autocomplete at the cursor marker (stdin)",
	"outline                         definition outline (content on stdin)",
	"method-jump-children <class>    classes overriding <class>",
	"method-jump-ancestors <class>   classes <class> overrides",
	"search <query> [kind]           fuzzy symbol search",
	"lint <file...>                  lint diagnostics",
	"lint-all <code>                 all occurrences of one lint code",
	"checkpoint-create <label>       record the current diagnostic set",
	"checkpoint-retrieve <label>     files recorded under a label",
	"checkpoint-delete <label>       delete a recorded checkpoint",
	"stats                           raw server statistics",
	"get-method-name <line:col>      symbol at position (content on stdin)",
	"format <from> <to>              reformat a character range (stdin)",
}

// parseMode selects the command mode for this invocation. No arguments means
// "status".
func parseMode(args []string) (mode.Mode, error) {
	if len(args) == 0 {
		return mode.Status{}, nil
	}
	name, rest := args[0], args[1:]
	switch name {
	case "status":
		return mode.Status{}, arity(name, rest, 0)
	case "list-files":
		return mode.ListFiles{}, arity(name, rest, 0)
	case "list-modes":
		return mode.ListModes{}, arity(name, rest, 0)
	case "show":
		if err := arity(name, rest, 1); err != nil {
			return nil, err
		}
		return mode.Show{Symbol: rest[0]}, nil
	case "color":
		switch len(rest) {
		case 0:
			return mode.Color{}, nil
		case 1:
			return mode.Color{File: rest[0]}, nil
		default:
			return nil, fmt.Errorf("color takes at most 1 argument, got %d", len(rest))
		}
	case "coverage":
		if err := arity(name, rest, 1); err != nil {
			return nil, err
		}
		return mode.Coverage{File: rest[0]}, nil
	case "find-class-refs":
		if err := arity(name, rest, 1); err != nil {
			return nil, err
		}
		return mode.FindClassRefs{Class: rest[0]}, nil
	case "find-refs":
		if err := arity(name, rest, 1); err != nil {
			return nil, err
		}
		return mode.FindRefs{Ref: rest[0]}, nil
	case "find-lvar-refs":
		if err := arity(name, rest, 1); err != nil {
			return nil, err
		}
		return mode.FindLocalRefs{Location: rest[0]}, nil
	case "dump-symbol-info":
		if len(rest) == 0 {
			return nil, fmt.Errorf("dump-symbol-info takes at least 1 file")
		}
		return mode.DumpSymbolInfo{Files: rest}, nil
	case "refactor":
		if err := arity(name, rest, 3); err != nil {
			return nil, err
		}
		return mode.Refactor{Kind: rest[0], Before: rest[1], After: rest[2]}, nil
	case "identify-function":
		if err := arity(name, rest, 1); err != nil {
			return nil, err
		}
		return mode.IdentifyFunction{Location: rest[0]}, nil
	case "type-at-pos":
		if err := arity(name, rest, 1); err != nil {
			return nil, err
		}
		return mode.TypeAtPos{Location: rest[0]}, nil
	case "args-at-pos":
		if err := arity(name, rest, 1); err != nil {
			return nil, err
		}
		return mode.ArgumentInfo{Location: rest[0]}, nil
	case "complete":
		return mode.Autocomplete{}, arity(name, rest, 0)
	case "outline":
		return mode.Outline{}, arity(name, rest, 0)
	case "method-jump-children":
		if err := arity(name, rest, 1); err != nil {
			return nil, err
		}
		return mode.MethodJump{Class: rest[0], FindChildren: true}, nil
	case "method-jump-ancestors":
		if err := arity(name, rest, 1); err != nil {
			return nil, err
		}
		return mode.MethodJump{Class: rest[0]}, nil
	case "search":
		switch len(rest) {
		case 1:
			return mode.Search{Query: rest[0]}, nil
		case 2:
			return mode.Search{Query: rest[0], Kind: rest[1]}, nil
		default:
			return nil, fmt.Errorf("search takes 1 or 2 arguments, got %d", len(rest))
		}
	case "lint":
		if len(rest) == 0 {
			return nil, fmt.Errorf("lint takes at least 1 file")
		}
		return mode.Lint{Files: rest}, nil
	case "lint-all":
		if err := arity(name, rest, 1); err != nil {
			return nil, err
		}
		code, err := strconv.Atoi(rest[0])
		if err != nil {
			return nil, fmt.Errorf("lint-all: invalid code %q", rest[0])
		}
		return mode.LintAll{Code: code}, nil
	case "checkpoint-create":
		if err := arity(name, rest, 1); err != nil {
			return nil, err
		}
		return mode.CheckpointCreate{Label: rest[0]}, nil
	case "checkpoint-retrieve":
		if err := arity(name, rest, 1); err != nil {
			return nil, err
		}
		return mode.CheckpointRetrieve{Label: rest[0]}, nil
	case "checkpoint-delete":
		if err := arity(name, rest, 1); err != nil {
			return nil, err
		}
		return mode.CheckpointDelete{Label: rest[0]}, nil
	case "stats":
		return mode.Stats{}, arity(name, rest, 0)
	case "get-method-name":
		if err := arity(name, rest, 1); err != nil {
			return nil, err
		}
		return mode.GetMethodName{Location: rest[0]}, nil
	case "format":
		if err := arity(name, rest, 2); err != nil {
			return nil, err
		}
		return mode.Format{From: rest[0], To: rest[1]}, nil
	default:
		return nil, fmt.Errorf("unknown command: %s", name)
	}
}

func arity(name string, rest []string, n int) error {
	if len(rest) != n {
		return fmt.Errorf("%s takes %d argument(s), got %d", name, n, len(rest))
	}
	return nil
}
