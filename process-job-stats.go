// `process-job-stats` -- attribute and enrich Slurm job accounting data
//
// Run `process-job-stats help` for brief help.

package main

import (
	"flag"
	"fmt"
	"os"

	. "github.com/uoracs/process-job-stats/command"
	"github.com/uoracs/process-job-stats/daemon"
	"github.com/uoracs/process-job-stats/jobs"
	"github.com/uoracs/process-job-stats/nodes"
	"github.com/uoracs/process-job-stats/status"
)

// v0.1.0 - translation from the Python scripts
// v0.2.0 - added the nodes and daemon verbs, Kafka posting

const Version = "0.2.0"

func main() {
	cmd, verb := commandLine()
	err := cmd.Perform(os.Stdout, os.Stderr)
	if err != nil {
		status.Fatalf("%s failed: %v", verb, err)
	}
}

func commandLine() (Command, string) {
	out := flag.CommandLine.Output()

	if len(os.Args) < 2 {
		fmt.Fprintf(out, "Required operation missing, try `process-job-stats help`\n")
		os.Exit(2)
	}

	var cmd Command
	var verb = os.Args[1]
	switch verb {
	case "help", "-h":
		fmt.Fprintf(out, "Usage: %s command [options]\n", os.Args[0])
		fmt.Fprintf(out, "Commands:\n")
		fmt.Fprintf(out, "  jobs    - attribute and enrich completed-job records\n")
		fmt.Fprintf(out, "  nodes   - print the node-pool snapshot used for attribution\n")
		fmt.Fprintf(out, "  daemon  - serve the attribution engine over HTTP\n")
		fmt.Fprintf(out, "  version - print information about the program\n")
		fmt.Fprintf(out, "  help    - print this message\n")
		fmt.Fprintf(out, "Each command accepts -h to further explain options.\n")
		os.Exit(0)
	case "jobs":
		cmd = jobs.New()
	case "nodes":
		cmd = nodes.New()
	case "daemon":
		cmd = daemon.New()
	case "version":
		fmt.Printf("process-job-stats version(%s)\n", Version)
		os.Exit(0)
	default:
		fmt.Fprintf(out, "Unknown operation %s, try `process-job-stats help`\n", verb)
		os.Exit(2)
	}

	fs := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	cmd.Add(fs)

	fs.Usage = func() {
		fmt.Fprintf(out, "Usage: %s %s [options]\n\n", os.Args[0], verb)
		fmt.Fprintln(out, " ", cmd.Summary())
		fmt.Fprintln(out, "\nOptions:")
		fs.PrintDefaults()
	}
	fs.Parse(os.Args[2:])

	if len(fs.Args()) > 0 {
		fmt.Fprintf(out, "Rest arguments not accepted by `%s`.\n", verb)
		os.Exit(2)
	}

	if fhCmd, ok := cmd.(FormatHelpAPI); ok {
		if h := fhCmd.MaybeFormatHelp(); h != nil {
			PrintFormatHelp(out, h)
			os.Exit(0)
		}
	}

	if err := cmd.Validate(); err != nil {
		fmt.Fprintf(out, "Bad arguments, try -h\n%v\n", err.Error())
		os.Exit(2)
	}

	return cmd, verb
}
