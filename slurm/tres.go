package slurm

import (
	"fmt"
	"strconv"
	"strings"
)

const gpuKey = "gres/gpu="

// Extract the allocated GPU count from a TRES list such as
// "billing=8,cpu=8,mem=64G,node=1,gres/gpu=4".
//
// Most jobs have no gres/gpu key and yield zero; that is not an error.  A gres/gpu key whose
// value does not parse as an integer is corrupt input and must be distinguished from the
// GPU-less case.

func GpusFromTres(tres string) (int, error) {
	if !strings.Contains(tres, gpuKey) {
		return 0, nil
	}
	for _, part := range strings.Split(tres, ",") {
		if strings.Contains(part, gpuKey) {
			_, val, _ := strings.Cut(part, "=")
			gpus, err := strconv.Atoi(val)
			if err != nil {
				return 0, fmt.Errorf("Bad gpu count in tres %q: %w", tres, err)
			}
			return gpus, nil
		}
	}
	return 0, nil
}
