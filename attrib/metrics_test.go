package attrib

import (
	"math"
	"testing"
	"time"
)

func TestWaitTimeHoursSymmetric(t *testing.T) {
	submit := time.Date(2025, 2, 3, 23, 38, 14, 0, time.Local)
	start := time.Date(2025, 2, 3, 23, 53, 21, 0, time.Local)
	a := WaitTimeHours(submit, start)
	b := WaitTimeHours(start, submit)
	if a != b {
		t.Fatalf("Not symmetric: %v vs %v", a, b)
	}
	if math.Abs(a-0.25194) > 1e-4 {
		t.Fatalf("WaitTimeHours: got %v", a)
	}
}

func TestComputeHours(t *testing.T) {
	if got := ComputeHours(8, 443); math.Abs(got-0.98444) > 1e-4 {
		t.Fatalf("ComputeHours: got %v", got)
	}
	// Zero resource count yields zero hours without special-casing
	if got := ComputeHours(0, 443); got != 0 {
		t.Fatalf("ComputeHours: got %v", got)
	}
}

func TestServiceUnits(t *testing.T) {
	if got := ServiceUnits(4, 2); got != 10 {
		t.Fatalf("ServiceUnits: got %v", got)
	}
}

func TestJobDate(t *testing.T) {
	end := time.Date(2025, 2, 3, 23, 53, 21, 0, time.Local)
	if got := JobDate(end); got != "2025-02-03" {
		t.Fatalf("JobDate: got %s", got)
	}
}
