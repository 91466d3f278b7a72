// Derived per-job metrics.  All hour figures are plain float64 hours; rounding is a
// presentation concern and happens in the formatters.

package attrib

import (
	"time"
)

const (
	secondsPerHour = 3600

	// Service-unit pricing: one SU per cpu-hour, gpu-hours cost triple.
	cpuServiceUnitWeight = 1.0
	gpuServiceUnitWeight = 3.0
)

func ComputeHours(count int, elapsedSec int64) float64 {
	return float64(count) * float64(elapsedSec) / secondsPerHour
}

func RunTimeHours(elapsedSec int64) float64 {
	return float64(elapsedSec) / secondsPerHour
}

// Hours the job spent in the queue.  Scheduler clock adjustments can make start precede submit;
// the magnitude is what matters for queue-wait reporting.
func WaitTimeHours(submit, start time.Time) float64 {
	h := start.Sub(submit).Hours()
	if h < 0 {
		h = -h
	}
	return h
}

func ServiceUnits(cpuHours, gpuHours float64) float64 {
	return cpuHours*cpuServiceUnitWeight + gpuHours*gpuServiceUnitWeight
}

// The accounting date of a job is the local calendar day it ended.
func JobDate(end time.Time) string {
	return end.Format("2006-01-02")
}
