// The nodes verb: print the current node-pool snapshot as the attribution engine sees it, mostly
// for operators checking why a preempt job was split the way it was.

package nodes

import (
	"errors"
	"flag"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/uoracs/process-job-stats/command"
	. "github.com/uoracs/process-job-stats/common"
	"github.com/uoracs/process-job-stats/db"
	"github.com/uoracs/process-job-stats/process"
)

type NodesCommand struct {
	command.VerboseArgs
	command.SourceArgs
	command.PolicyArgs
	command.FormatArgs
}

func New() *NodesCommand {
	return new(NodesCommand)
}

func (nc *NodesCommand) Summary() string {
	return "Print the node-pool snapshot used for attribution"
}

func (nc *NodesCommand) Add(fs *flag.FlagSet) {
	nc.VerboseArgs.Add(fs)
	nc.SourceArgs.Add(fs)
	nc.PolicyArgs.Add(fs)
	nc.FormatArgs.Add(fs)
}

func (nc *NodesCommand) Validate() error {
	return errors.Join(
		nc.VerboseArgs.Validate(),
		nc.SourceArgs.Validate(),
		nc.PolicyArgs.Validate(),
		nc.FormatArgs.Validate(),
	)
}

func (nc *NodesCommand) MaybeFormatHelp() *command.FormatHelp {
	return command.StandardFormatHelp(
		nc.Fmt, nodesHelp, nodesFormatters, nodesAliases, nodesDefaultFields)
}

func (nc *NodesCommand) Perform(stdout, stderr io.Writer) error {
	if h := nc.MaybeFormatHelp(); h != nil {
		command.PrintFormatHelp(stdout, h)
		return nil
	}

	var sinfoData string
	if nc.SinfoFile != "" {
		bytes, err := os.ReadFile(nc.SinfoFile)
		if err != nil {
			return err
		}
		sinfoData = string(bytes)
	} else {
		sinfo := "sinfo"
		ApplyDefault(&sinfo, CommandsSinfo)
		stdout, errs, err := process.RunSubprocess(sinfo, []string{"-ahN", "-o", "%n,%P"})
		if errs != "" {
			Log.Warningf("sinfo: %s", errs)
		}
		if err != nil {
			return err
		}
		sinfoData = stdout
	}

	ix, softErrors, err := db.ReadNodePools(strings.NewReader(sinfoData), nc.Pools().Donated())
	if err != nil {
		return err
	}
	if softErrors > 0 {
		Log.Warningf("%d malformed lines in the node-pool snapshot", softErrors)
	}

	data := make([]*nodeDatum, 0, ix.Size())
	for _, n := range ix.Nodes() {
		pools, _ := ix.Pools(n)
		openUse := false
		for _, p := range pools {
			if nc.Pools().IsOpenUse(p) {
				openUse = true
				break
			}
		}
		data = append(data, &nodeDatum{node: n, pools: pools, openUse: openUse})
	}

	fields, attrs := command.ParseFormatSpec(nodesDefaultFields, nc.Fmt, nodesFormatters, nodesAliases)
	opts := command.StandardFormatOptions(attrs, command.DefaultFixed)
	command.FormatData(stdout, fields, nodesFormatters, opts, data, false)
	return nil
}

type nodeDatum struct {
	node    string
	pools   []string
	openUse bool
}

const nodesHelp = `
The nodes verb prints one row per known node with its pool memberships
and whether it currently counts toward the open-use share.
`

const nodesDefaultFields = "node,pools,open_use"

// MT: Constant after initialization; immutable
var nodesAliases = map[string][]string{
	"default": {"node", "pools", "open_use"},
}

// MT: Constant after initialization; immutable
var nodesFormatters = map[string]command.Formatter[*nodeDatum, bool]{
	"node": {
		Fmt:  func(d *nodeDatum, _ bool) string { return d.node },
		Help: "The node name",
	},
	"pools": {
		Fmt:  func(d *nodeDatum, _ bool) string { return strings.Join(d.pools, ";") },
		Help: "The pools the node belongs to, semicolon-separated",
	},
	"open_use": {
		Fmt:  func(d *nodeDatum, _ bool) string { return strconv.FormatBool(d.openUse) },
		Help: "True when at least one of the pools is open use",
	},
}
