package scheduler

import "github.com/tastythames/bmc-exporter/internal/inventory"

// Job is one target due for a full probe-set run.
type Job struct {
	Target inventory.Target
}
