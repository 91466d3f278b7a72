// Parser for the raw sacct accounting records.
//
// The input is pipe-delimited, one record per line, with a fixed field list chosen by the sacct
// invocation (see the jobs verb):
//
//	JobID|JobName|User|Account|Partition|Elapsed|NNodes|NCPUS|AllocTRES|Submit|Start|End|NodeList
//
// eg
//
//	29148459_925|ld_stats_array|akapoor|kernlab|kern|00:07:23|1|8|billing=8,cpu=8,mem=64G,node=1|2025-02-03T23:38:14|2025-02-03T23:53:21|2025-02-03T23:53:21|n0335
//
// Field assignment is strictly positional.  A header line (first field "JobID") and jobs with
// zero elapsed time are skipped, that is normal filtering.  Anything else that does not conform
// is an input error, and input errors are hard errors: the data feed downstream accounting, and
// silently dropping records would produce a misleading dataset.

package db

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/uoracs/process-job-stats/slurm"
)

const (
	numJobFields = 13
	headerField  = "JobID"

	// Slurm timestamps are localtime without a zone offset.
	TimeLayout = "2006-01-02T15:04:05"
)

// MT: Constant after initialization; immutable
var SyntaxErr = errors.New("Malformed sacct record")

// One completed job, as recorded by the scheduler.  Instances are immutable once returned from
// ParseJobLine.
type JobRecord struct {
	JobID      string
	JobName    string
	User       string
	Account    string
	Partition  string
	Elapsed    string
	ElapsedSec int64
	NodeCount  int
	Cpus       int
	Tres       string
	Submit     time.Time
	Start      time.Time
	End        time.Time
	NodeList   []string
}

// Parse one sacct line.  Three outcomes:
//
//	(record, true, nil)  - a valid record
//	(nil, false, nil)    - a skipped line: header, or a job that did no measurable work
//	(nil, false, err)    - malformed input
func ParseJobLine(line string) (*JobRecord, bool, error) {
	fields := strings.Split(line, "|")
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}
	if fields[0] == headerField {
		return nil, false, nil
	}
	if len(fields) != numJobFields {
		return nil, false, fmt.Errorf("%w: %d fields, want %d", SyntaxErr, len(fields), numJobFields)
	}
	for i, f := range fields {
		// The NodeList field is allowed to be blank, it means the same as "None assigned".
		if f == "" && i != numJobFields-1 {
			return nil, false, fmt.Errorf("%w: empty field at position %d", SyntaxErr, i)
		}
	}

	elapsedSec, err := slurm.ElapsedToSeconds(fields[5])
	if err != nil {
		return nil, false, fmt.Errorf("%w: %w", SyntaxErr, err)
	}
	if elapsedSec == 0 {
		return nil, false, nil
	}

	nodeCount, err := strconv.Atoi(fields[6])
	if err != nil {
		return nil, false, fmt.Errorf("%w: bad node count: %w", SyntaxErr, err)
	}
	cpus, err := strconv.Atoi(fields[7])
	if err != nil {
		return nil, false, fmt.Errorf("%w: bad cpu count: %w", SyntaxErr, err)
	}
	submit, err := time.ParseInLocation(TimeLayout, fields[9], time.Local)
	if err != nil {
		return nil, false, fmt.Errorf("%w: bad submit time: %w", SyntaxErr, err)
	}
	start, err := time.ParseInLocation(TimeLayout, fields[10], time.Local)
	if err != nil {
		return nil, false, fmt.Errorf("%w: bad start time: %w", SyntaxErr, err)
	}
	end, err := time.ParseInLocation(TimeLayout, fields[11], time.Local)
	if err != nil {
		return nil, false, fmt.Errorf("%w: bad end time: %w", SyntaxErr, err)
	}
	nodeList, err := slurm.ExpandNodeList(fields[12])
	if err != nil {
		return nil, false, fmt.Errorf("%w: %w", SyntaxErr, err)
	}

	return &JobRecord{
		JobID:      fields[0],
		JobName:    fields[1],
		User:       fields[2],
		Account:    fields[3],
		Partition:  fields[4],
		Elapsed:    fields[5],
		ElapsedSec: elapsedSec,
		NodeCount:  nodeCount,
		Cpus:       cpus,
		Tres:       fields[8],
		Submit:     submit,
		Start:      start,
		End:        end,
		NodeList:   nodeList,
	}, true, nil
}

// Read all job records from the input.  Blank lines and skip-condition lines are counted in
// `skipped`; the first malformed line aborts the read with an error naming the line number.

func ReadJobs(input io.Reader) (records []*JobRecord, skipped int, err error) {
	records = make([]*JobRecord, 0)
	scanner := bufio.NewScanner(input)
	lineno := 0
	for scanner.Scan() {
		lineno++
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			skipped++
			continue
		}
		r, ok, err := ParseJobLine(line)
		if err != nil {
			return nil, 0, fmt.Errorf("Line %d: %w", lineno, err)
		}
		if !ok {
			skipped++
			continue
		}
		records = append(records, r)
	}
	if err := scanner.Err(); err != nil {
		return nil, 0, err
	}
	return records, skipped, nil
}
