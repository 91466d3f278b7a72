package slurm

import (
	"testing"
)

func TestElapsedToSeconds(t *testing.T) {
	cases := []struct {
		input string
		want  int64
	}{
		{"00:00:01", 1},
		{"00:01:01", 61},
		{"11:11:11", 40271},
		{"1-00:00:01", 86401},
		{"2-14:11:33", 223893},
		// Out-of-range minutes/seconds are summed, not rejected
		{"00:99:99", 99*60 + 99},
	}
	for _, c := range cases {
		got, err := ElapsedToSeconds(c.input)
		if err != nil {
			t.Fatalf("%s: %v", c.input, err)
		}
		if got != c.want {
			t.Fatalf("%s: got %d wanted %d", c.input, got, c.want)
		}
	}
}

func TestElapsedToSecondsBadInput(t *testing.T) {
	for _, input := range []string{"", "00:00", "00:00:00:00", "x-00:00:00", "00:xx:00", "1-", "1-00:00"} {
		if _, err := ElapsedToSeconds(input); err == nil {
			t.Fatalf("Should fail: %q", input)
		}
	}
}
