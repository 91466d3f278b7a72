// Defaults for some command line arguments can be kept in an ini-format file in the user's home
// directory, ~/.process-job-stats.  Sections and fields are defined below; all values are strings.

package common

import (
	"errors"
	"os"
	"path"

	ini "github.com/lars-t-hansen/ini"
)

// MT: Constant after initialization
var (
	p     = ini.NewParser()
	store *ini.Store

	partitions        = p.AddSection("partitions")
	PartitionsOpenUse = partitions.AddString("open-use")
	PartitionsDonated = partitions.AddString("donated")

	commands      = p.AddSection("commands")
	CommandsSacct = commands.AddString("sacct")
	CommandsSinfo = commands.AddString("sinfo")
)

func init() {
	home := os.Getenv("HOME")
	if home == "" {
		return
	}
	fn := path.Join(path.Clean(home), ".process-job-stats")
	input, err := os.Open(fn)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			Log.Errorf("Error in trying to open %s: %s", fn, err.Error())
		}
		return
	}
	defer input.Close()
	store, err = p.Parse(input)
	if err != nil {
		Log.Errorf("Error in trying to parse %s: %s", fn, err.Error())
		return
	}
}

func HasDefault(f *ini.Field) bool {
	return store != nil && f.Present(store)
}

func ApplyDefault(sp *string, f *ini.Field) bool {
	if *sp != "" || store == nil || !f.Present(store) {
		return false
	}
	*sp = os.ExpandEnv(f.StringVal(store))
	return true
}
