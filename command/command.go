package command

import (
	"flag"
	"io"
)

// A process-job-stats verb: jobs, nodes, daemon, etc.

type Command interface {
	// One-line summary for the toplevel help text
	Summary() string

	// Add all arguments including shared arguments
	Add(fs *flag.FlagSet)

	// Validate all arguments including shared arguments
	Validate() error

	// Perform the operation
	Perform(stdout, stderr io.Writer) error
}

// Implemented by verbs that accept -fmt and can respond to -fmt=help.
type FormatHelpAPI interface {
	MaybeFormatHelp() *FormatHelp
}
