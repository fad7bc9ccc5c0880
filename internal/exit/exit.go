// Package exit defines the process exit statuses of a scry invocation.
package exit

// Status is the outcome of one command invocation.
type Status int

// Process exit codes. Stable across releases: scripting callers branch on
// them.
const (
	// Ok means the command ran and reported nothing wrong.
	Ok Status = 0
	// TypeError means the analyzed source carries diagnostics. It is a
	// normal outcome, not a client fault.
	TypeError Status = 2
	// CheckpointError means the server reported an absent or failed
	// checkpoint operation.
	CheckpointError Status = 3
	// InputError means a malformed location string or symbol reference;
	// the server was never contacted.
	InputError Status = 4
	// PathNotFound means a location argument named a file that exists
	// neither as given nor under the working directory.
	PathNotFound Status = 5
	// ChannelFailure means the server connection closed or truncated
	// mid-operation.
	ChannelFailure Status = 6
)

// Code returns the integer handed to os.Exit.
func (s Status) Code() int { return int(s) }

func (s Status) String() string {
	switch s {
	case Ok:
		return "ok"
	case TypeError:
		return "type_error"
	case CheckpointError:
		return "checkpoint_error"
	case InputError:
		return "input_error"
	case PathNotFound:
		return "path_not_found"
	case ChannelFailure:
		return "channel_failure"
	default:
		return "unknown"
	}
}
