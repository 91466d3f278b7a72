// Codecs for the various string formats used by the Slurm accounting tools.

package slurm

import (
	"fmt"
	"strconv"
	"strings"
)

// Slurm's Elapsed field comes in two forms:
//
//	1-00:00:00 -> days-hours:minutes:seconds
//	00:00:00   -> hours:minutes:seconds
//
// The minutes and seconds fields are not range-checked, values of 60 or more are simply summed
// arithmetically.  An input that does not have exactly three colon-separated integer fields after
// the optional day split is an error.

func ElapsedToSeconds(elapsed string) (int64, error) {
	var days int64
	rest := elapsed
	if before, after, found := strings.Cut(elapsed, "-"); found {
		var err error
		days, err = strconv.ParseInt(before, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("Bad day count in elapsed time %q: %w", elapsed, err)
		}
		rest = after
	}
	hms := strings.Split(rest, ":")
	if len(hms) != 3 {
		return 0, fmt.Errorf("Bad elapsed time %q: want hh:mm:ss", elapsed)
	}
	h, e1 := strconv.ParseInt(hms[0], 10, 64)
	m, e2 := strconv.ParseInt(hms[1], 10, 64)
	s, e3 := strconv.ParseInt(hms[2], 10, 64)
	if e1 != nil || e2 != nil || e3 != nil {
		return 0, fmt.Errorf("Bad elapsed time %q: non-numeric field", elapsed)
	}
	return days*86400 + h*60*60 + m*60 + s, nil
}
