package scheduler

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/tastythames/bmc-exporter/internal/cache"
	"github.com/tastythames/bmc-exporter/internal/inventory"
	"github.com/tastythames/bmc-exporter/internal/metrics"
	"github.com/tastythames/bmc-exporter/internal/probe"
	"github.com/tastythames/bmc-exporter/internal/redfish"
)

// StartWorker consumes jobs until the channel closes. Every probe's output,
// success or error sample, lands in the cache under its own (target, probe)
// key, so one broken probe never touches another key's entry.
func StartWorker(id int, jobs <-chan Job, cli *redfish.Client, c cache.Cache, log *zap.SugaredLogger) {
	log.Debugf("worker %d started", id)

	for job := range jobs {
		CollectTarget(context.Background(), cli, c, log, job.Target)
	}
}

// CollectTarget runs the full probe set for one target.
func CollectTarget(ctx context.Context, cli *redfish.Client, c cache.Cache, log *zap.SugaredLogger, tgt inventory.Target) {
	set := probe.SetFor(tgt.Family)
	if len(set) == 0 {
		c.Set(cache.Key{Target: tgt.Address, Probe: "probe_set"},
			metrics.Render([]metrics.Sample{
				metrics.ErrorSample(tgt.Address, tgt.Site, "unsupported controller family: "+tgt.Family),
			}))
		return
	}

	for _, p := range set {
		samples := runProbe(ctx, p, cli, log, tgt)
		c.Set(cache.Key{Target: tgt.Address, Probe: p.Name()}, metrics.Render(samples))
	}
}

// runProbe contains a probe failure to its own key: probes already convert
// errors to samples, and a panic is recovered into one as well.
func runProbe(ctx context.Context, p probe.Probe, cli *redfish.Client, log *zap.SugaredLogger, tgt inventory.Target) (samples []metrics.Sample) {
	defer func() {
		if r := recover(); r != nil {
			log.Errorw("probe panicked", "probe", p.Name(), "target", tgt.Address, "panic", r)
			samples = []metrics.Sample{
				metrics.ErrorSample(tgt.Address, tgt.Site, fmt.Sprintf("probe %s panicked: %v", p.Name(), r)),
			}
		}
	}()
	return p.Collect(ctx, cli, tgt)
}
