// Package cli is the scry command-line front end: it turns argv into a
// command mode, opens the server channel, and maps the dispatch outcome to a
// process exit code.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/scrylang/scry/internal/channel"
	"github.com/scrylang/scry/internal/config"
	"github.com/scrylang/scry/internal/conn"
	"github.com/scrylang/scry/internal/dispatch"
	"github.com/scrylang/scry/internal/exit"
	"github.com/scrylang/scry/internal/observe"
	"github.com/scrylang/scry/internal/source"
)

// Run is the main CLI entry point. Returns an exit code.
func Run(args []string) int {
	fs := pflag.NewFlagSet("scry", pflag.ContinueOnError)
	jsonOut := fs.Bool("json", false, "Machine-readable (JSON) output")
	from := fs.StringP("from", "f", "", "Identity of the calling tool (editors set this; implies non-interactive output)")
	socket := fs.String("socket", "", "Server socket path override")
	fs.SetOutput(os.Stderr)
	fs.Usage = func() { printUsage(os.Stderr, fs) }

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return exit.Ok.Code()
		}
		return exit.InputError.Code()
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "scry: %v\n", err)
		return exit.InputError.Code()
	}

	m, err := parseMode(fs.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "scry: %v\n", err)
		return exit.InputError.Code()
	}

	socketPath := cfg.SocketPath()
	if *socket != "" {
		socketPath = *socket
	}
	c, err := conn.Dial(socketPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "scry: %v\n", err)
		return exit.ChannelFailure.Code()
	}
	defer c.Close()

	interactive := *from == "" && term.IsTerminal(int(os.Stdout.Fd()))
	opts := dispatch.Options{
		Machine:     *jsonOut,
		Interactive: interactive,
		Color:       colorEnabled(cfg.Color, interactive, *jsonOut),
		Stdout:      os.Stdout,
		Stderr:      os.Stderr,
		Source:      source.StdinReader{In: os.Stdin},
		Observer:    newObserver(cfg),
	}

	status, derr := dispatch.Dispatch(m, channel.New(c), opts)
	if derr != nil {
		fmt.Fprintf(os.Stderr, "scry: %v\n", derr)
	}
	return status.Code()
}

func colorEnabled(policy string, interactive, jsonOut bool) bool {
	switch policy {
	case "always":
		return true
	case "never":
		return false
	default:
		return interactive && !jsonOut
	}
}

func newObserver(cfg *config.Config) observe.Observer {
	if cfg.EventLog == "" {
		return observe.Nop{}
	}
	f, err := os.OpenFile(cfg.EventLog, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		// A broken event log must not fail the command.
		return observe.Nop{}
	}
	return observe.Recorder{W: f}
}

func printUsage(w io.Writer, fs *pflag.FlagSet) {
	fmt.Fprintln(w, "Usage: scry [FLAGS] [COMMAND [ARGS]]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Query the scry analysis server. With no command, runs \"status\".")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	for _, line := range commandUsage {
		fmt.Fprintf(w, "  %s\n", line)
	}
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Flags:")
	fmt.Fprint(w, fs.FlagUsages())
}
