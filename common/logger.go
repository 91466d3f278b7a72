package common

import (
	"github.com/uoracs/process-job-stats/status"
)

// MT: Constant after initialization; thread-safe
var Log status.Logger = status.Default()
