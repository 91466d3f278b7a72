// The daemon verb: a long-running HTTP service exposing the attribution engine, so that report
// generators can post raw sacct text and get enriched rows back without shelling out to the CLI.
//
// The node-pool snapshot and the account metadata are loaded once at startup; the daemon should
// be restarted when those change materially, which in practice is at allocation changes.

package daemon

import (
	"errors"
	"flag"
	"fmt"

	"github.com/uoracs/process-job-stats/command"
)

const defaultListenPort = 8088

type DaemonCommand struct {
	command.VerboseArgs
	command.SourceArgs
	command.PolicyArgs

	Port       int
	ServerCert string
	ServerKey  string
	NoSyslog   bool
}

func New() *DaemonCommand {
	return new(DaemonCommand)
}

func (dc *DaemonCommand) Summary() string {
	return "Serve the attribution engine over HTTP"
}

func (dc *DaemonCommand) Add(fs *flag.FlagSet) {
	dc.VerboseArgs.Add(fs)
	dc.SourceArgs.Add(fs)
	dc.PolicyArgs.Add(fs)
	fs.IntVar(&dc.Port, "port", defaultListenPort, "Listen for connections on `port`")
	fs.StringVar(&dc.ServerCert, "server-cert", "",
		"Serve HTTPS with the server certificate in `filename`.  Requires -server-key.")
	fs.StringVar(&dc.ServerKey, "server-key", "",
		"Serve HTTPS with the server key in `filename`.  Requires -server-cert.")
	fs.BoolVar(&dc.NoSyslog, "no-syslog", false, "Log to stderr only, not syslog")
}

func (dc *DaemonCommand) Validate() error {
	var e1, e2 error
	if dc.Port <= 0 || dc.Port > 65535 {
		e1 = fmt.Errorf("Invalid -port %d", dc.Port)
	}
	if (dc.ServerCert == "") != (dc.ServerKey == "") {
		e2 = fmt.Errorf("-server-cert and -server-key must be used together")
	}
	return errors.Join(
		dc.VerboseArgs.Validate(),
		dc.SourceArgs.Validate(),
		dc.PolicyArgs.Validate(),
		e1,
		e2,
	)
}
