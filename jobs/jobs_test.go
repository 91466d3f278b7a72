package jobs

import (
	"flag"
	"os"
	"path"
	"strings"
	"testing"
)

const (
	testSacct = `JobID|JobName|User|Account|Partition|Elapsed|NNodes|NCPUS|AllocTRES|Submit|Start|End|NodeList
29148459_925|ld_stats_array|akapoor|kernlab|kern|00:07:23|1|8|billing=8,cpu=8,mem=64G,node=1|2025-02-03T23:38:14|2025-02-03T23:53:21|2025-02-03T23:53:21|n0335
29148460|skipme|akapoor|kernlab|kern|00:00:00|1|8|billing=8,cpu=8,node=1|2025-02-03T23:38:14|2025-02-03T23:38:14|2025-02-03T23:38:14|n0335
29148461|split|jdoe|kernlab|preempt|01:00:00|4|16|billing=16,cpu=16,node=4|2025-02-03T10:00:00|2025-02-03T10:05:00|2025-02-03T11:05:00|n[0001-0004]
`
	testSinfo = `n0001,compute*
n0002,compute
n0003,compute
n0004,kernlab
n0335,kernlab
`
)

func runJobs(t *testing.T, extraArgs ...string) string {
	t.Helper()
	dir := t.TempDir()
	sacctFile := path.Join(dir, "sacct.txt")
	sinfoFile := path.Join(dir, "sinfo.txt")
	ownersFile := path.Join(dir, "owners.csv")
	if err := os.WriteFile(sacctFile, []byte(testSacct), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(sinfoFile, []byte(testSinfo), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(ownersFile, []byte("kernlab,kern\n"), 0644); err != nil {
		t.Fatal(err)
	}

	jc := New()
	fs := flag.NewFlagSet("jobs", flag.ContinueOnError)
	jc.Add(fs)
	args := append([]string{
		"-sacct-file", sacctFile,
		"-sinfo-file", sinfoFile,
		"-owners-file", ownersFile,
		"-open-use", "compute",
		"-donated", "preempt",
	}, extraArgs...)
	if err := fs.Parse(args); err != nil {
		t.Fatal(err)
	}
	if err := jc.Validate(); err != nil {
		t.Fatal(err)
	}
	var stdout, stderr strings.Builder
	if err := jc.Perform(&stdout, &stderr); err != nil {
		t.Fatal(err)
	}
	return stdout.String()
}

func TestJobsVerb(t *testing.T) {
	output := runJobs(t, "-fmt", "job_id,category,weight,cpu_hours,service_units,owner,date")
	lines := strings.Split(strings.TrimSpace(output), "\n")
	// One row for the condo job, two for the preempt job, zero-elapsed job dropped.
	expect := []string{
		"29148459_925,condo,1.00000,0.98444,0.98444,kern,2025-02-03",
		"29148461,open_use,0.75000,16.00000,12.00000,kern,2025-02-03",
		"29148461,condo,0.25000,16.00000,4.00000,kern,2025-02-03",
	}
	if len(lines) != len(expect) {
		t.Fatalf("Lines: got %d: %q", len(lines), output)
	}
	for i, e := range expect {
		if lines[i] != e {
			t.Fatalf("Line %d:\ngot    %s\nwanted %s", i, lines[i], e)
		}
	}
}

func TestJobsVerbDefaultFields(t *testing.T) {
	output := runJobs(t, "-fmt", "header,default")
	lines := strings.Split(strings.TrimSpace(output), "\n")
	if len(lines) != 4 {
		t.Fatalf("Lines: got %d: %q", len(lines), output)
	}
	if lines[0] != jobsDefaultFields {
		t.Fatalf("Header: %s", lines[0])
	}
}

func TestJobsVerbIdempotent(t *testing.T) {
	a := runJobs(t)
	b := runJobs(t)
	if a != b {
		t.Fatal("Output should be deterministic")
	}
}

func TestJobsVerbValidate(t *testing.T) {
	jc := New()
	fs := flag.NewFlagSet("jobs", flag.ContinueOnError)
	jc.Add(fs)
	if err := fs.Parse([]string{"-kafka", "localhost:9092"}); err != nil {
		t.Fatal(err)
	}
	if err := jc.Validate(); err == nil {
		t.Fatal("-kafka without -cluster should not validate")
	}

	jc = New()
	fs = flag.NewFlagSet("jobs", flag.ContinueOnError)
	jc.Add(fs)
	if err := fs.Parse([]string{"-span", "2025-02-03"}); err != nil {
		t.Fatal(err)
	}
	if err := jc.Validate(); err == nil {
		t.Fatal("Bad -span should not validate")
	}
}
