package command

import (
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/uoracs/process-job-stats/common"
	"github.com/uoracs/process-job-stats/db"
)

///////////////////////////////////////////////////////////////////////////////////////////////////
//
// VerboseArgs.

type VerboseArgs struct {
	Verbose bool
}

func (va *VerboseArgs) Add(fs *flag.FlagSet) {
	fs.BoolVar(&va.Verbose, "v", false, "Print verbose diagnostics to stderr")
	fs.BoolVar(&va.Verbose, "verbose", false, "Print verbose diagnostics to stderr")
}

func (va *VerboseArgs) Validate() error {
	return nil
}

///////////////////////////////////////////////////////////////////////////////////////////////////
//
// SourceArgs pertain to where the raw data come from: snapshot files when given, otherwise live
// sacct/sinfo subprocesses scoped by -span or -window.

const dateLayout = "2006-01-02"

type SourceArgs struct {
	SacctFile   string
	SinfoFile   string
	OwnersFile  string
	StorageFile string
	Span        string
	Window      uint

	// Computed by Validate from Span or Window
	From, To string
}

func (sa *SourceArgs) Add(fs *flag.FlagSet) {
	fs.StringVar(&sa.SacctFile, "sacct-file", "",
		"Read sacct records from `filename` instead of running sacct")
	fs.StringVar(&sa.SinfoFile, "sinfo-file", "",
		"Read the node,partition snapshot from `filename` instead of running sinfo")
	fs.StringVar(&sa.OwnersFile, "owners-file", "",
		"Read account,owner pairs from `filename` [default: no owner join]")
	fs.StringVar(&sa.StorageFile, "storage-file", "",
		"Read account,gb pairs from `filename` [default: no storage join]")
	fs.StringVar(&sa.Span, "span", "",
		"Select jobs ended within `from,to` (both YYYY-MM-DD), overrides -window")
	fs.UintVar(&sa.Window, "window", 1440,
		"Select jobs ended in the last `n` minutes")
}

func (sa *SourceArgs) Validate() error {
	if sa.Span != "" {
		from, to, found := strings.Cut(sa.Span, ",")
		if !found {
			return fmt.Errorf("-span must be <from>,<to>: %s", sa.Span)
		}
		for _, d := range []string{from, to} {
			if _, err := time.Parse(dateLayout, d); err != nil {
				return fmt.Errorf("-span dates must be YYYY-MM-DD: %s", d)
			}
		}
		sa.From = from
		sa.To = to
		return nil
	}
	if sa.Window == 0 {
		return fmt.Errorf("-window must be positive")
	}
	now := time.Now()
	sa.From = now.Add(-time.Duration(sa.Window) * time.Minute).Format(db.TimeLayout)
	sa.To = now.Format(db.TimeLayout)
	return nil
}

///////////////////////////////////////////////////////////////////////////////////////////////////
//
// PolicyArgs select the attribution policy inputs.  Defaults come from ~/.process-job-stats and
// then from the built-in partition lists.

type PolicyArgs struct {
	OpenUse string
	Donated string

	pools *common.PoolConfig
}

func (pa *PolicyArgs) Add(fs *flag.FlagSet) {
	fs.StringVar(&pa.OpenUse, "open-use", "",
		"Comma-separated open-use `partitions` [default: site configuration]")
	fs.StringVar(&pa.Donated, "donated", "",
		"The donated (preemptible) `partition` [default: site configuration]")
}

func (pa *PolicyArgs) Validate() error {
	if strings.ContainsAny(pa.Donated, ",") {
		return fmt.Errorf("-donated names a single partition: %s", pa.Donated)
	}
	pa.pools = common.NewPoolConfig(pa.OpenUse, pa.Donated)
	return nil
}

// Valid after Validate.
func (pa *PolicyArgs) Pools() *common.PoolConfig {
	return pa.pools
}

///////////////////////////////////////////////////////////////////////////////////////////////////
//
// FormatArgs: everyone needs -fmt.

type FormatArgs struct {
	Fmt string
}

func (fa *FormatArgs) Add(fs *flag.FlagSet) {
	fs.StringVar(&fa.Fmt, "fmt", "",
		"Select `field,...` and format options for the output [default: try -fmt=help]")
}

func (fa *FormatArgs) Validate() error {
	return nil
}
