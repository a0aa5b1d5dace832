package probe

import (
	"context"

	"github.com/tastythames/bmc-exporter/internal/inventory"
	"github.com/tastythames/bmc-exporter/internal/metrics"
	"github.com/tastythames/bmc-exporter/internal/redfish"
)

// CPU reports one info sample per present processor.
type CPU struct{}

func (CPU) Name() string { return "cpu" }

func (CPU) Collect(ctx context.Context, cli *redfish.Client, tgt inventory.Target) []metrics.Sample {
	paths, _ := redfish.PathsFor(tgt.Family)

	var col redfish.Collection
	if err := cli.Fetch(ctx, dev(tgt), paths.Processors, &col); err != nil {
		return failed(tgt, "CPU endpoint access failed")
	}

	var samples []metrics.Sample
	for _, m := range col.Members {
		var cpu struct {
			Model  string         `json:"Model"`
			Status redfish.Status `json:"Status"`
		}
		if err := cli.Fetch(ctx, dev(tgt), m.OdataID, &cpu); err != nil {
			samples = append(samples, metrics.ErrorSample(tgt.Address, tgt.Site, "CPU member access failed"))
			continue
		}
		if cpu.Status.State == "Absent" {
			continue
		}
		samples = append(samples, metrics.Sample{
			Name: metrics.MetricCPUInfo,
			Labels: baseLabels(tgt,
				"model", orUnknown(cpu.Model),
				"state", orUnknown(cpu.Status.State),
				"health", orUnknown(cpu.Status.Health)),
			Value: 1,
		})
	}
	return samples
}

// Memory reports the installed capacity summed over all DIMMs, in GB.
// Members that cannot be read just don't contribute to the total.
type Memory struct{}

func (Memory) Name() string { return "memory" }

func (Memory) Collect(ctx context.Context, cli *redfish.Client, tgt inventory.Target) []metrics.Sample {
	paths, _ := redfish.PathsFor(tgt.Family)

	var col redfish.Collection
	if err := cli.Fetch(ctx, dev(tgt), paths.Memory, &col); err != nil {
		return failed(tgt, "Memory endpoint access failed")
	}

	total := 0.0
	for _, m := range col.Members {
		var mem struct {
			CapacityMiB redfish.Capacity `json:"CapacityMiB"`
		}
		if err := cli.Fetch(ctx, dev(tgt), m.OdataID, &mem); err != nil {
			continue
		}
		total += metrics.GiBFromMiB(float64(mem.CapacityMiB))
	}

	return []metrics.Sample{{
		Name:   metrics.MetricMemoryTotalGB,
		Labels: baseLabels(tgt),
		Value:  total,
	}}
}
