package probe

import (
	"context"
	"sort"

	"github.com/tastythames/bmc-exporter/internal/inventory"
	"github.com/tastythames/bmc-exporter/internal/metrics"
	"github.com/tastythames/bmc-exporter/internal/redfish"
)

// ServerStatus reports the system root's state/health pair as labels.
type ServerStatus struct{}

func (ServerStatus) Name() string { return "server_status" }

func (ServerStatus) Collect(ctx context.Context, cli *redfish.Client, tgt inventory.Target) []metrics.Sample {
	paths, _ := redfish.PathsFor(tgt.Family)

	var sys struct {
		Status redfish.Status `json:"Status"`
	}
	if err := cli.Fetch(ctx, dev(tgt), paths.System, &sys); err != nil {
		return failed(tgt, "Failed to fetch server status")
	}

	return []metrics.Sample{{
		Name:   metrics.MetricServerStatus,
		Labels: baseLabels(tgt, "state", orUnknown(sys.Status.State), "health", orUnknown(sys.Status.Health)),
		Value:  1,
	}}
}

type oemAggregate struct {
	AggregateHealthStatus map[string]struct {
		Status redfish.Status `json:"Status"`
	} `json:"AggregateHealthStatus"`
}

// Redundancy summaries are covered by the dedicated probes; the agentless
// service entry carries no hardware signal.
var excludedSummaryComponents = map[string]bool{
	"AgentlessManagementService": true,
	"BiosOrHardwareHealth":       true,
	"FanRedundancy":              true,
	"PowerSupplyRedundancy":      true,
}

// SystemSummary reports the overall health ordinal plus per-component health.
// iLO exposes an OEM aggregate on the system root; iDRAC has no such
// extension, so the major component endpoints are walked directly.
type SystemSummary struct{}

func (SystemSummary) Name() string { return "system_summary" }

func (SystemSummary) Collect(ctx context.Context, cli *redfish.Client, tgt inventory.Target) []metrics.Sample {
	paths, _ := redfish.PathsFor(tgt.Family)

	var sys struct {
		Status redfish.Status `json:"Status"`
		Oem    struct {
			Hp  oemAggregate `json:"Hp"`
			Hpe oemAggregate `json:"Hpe"`
		} `json:"Oem"`
	}
	if err := cli.Fetch(ctx, dev(tgt), paths.System, &sys); err != nil {
		return failed(tgt, "Failed to fetch system summary")
	}

	health := orUnknown(sys.Status.Health)
	samples := []metrics.Sample{{
		Name:   metrics.MetricSystemStatus,
		Labels: baseLabels(tgt, "state", orUnknown(sys.Status.State), "health", health),
		Value:  metrics.HealthOrdinal(health),
	}}

	switch tgt.Family {
	case inventory.FamilyILO:
		agg := sys.Oem.Hp.AggregateHealthStatus
		if len(agg) == 0 {
			agg = sys.Oem.Hpe.AggregateHealthStatus
		}
		if len(agg) == 0 {
			return append(samples, metrics.Sample{
				Name:   metrics.MetricOEMSummaryMissing,
				Labels: baseLabels(tgt),
				Value:  1,
			})
		}
		comps := make([]string, 0, len(agg))
		for comp := range agg {
			if !excludedSummaryComponents[comp] {
				comps = append(comps, comp)
			}
		}
		sort.Strings(comps)
		for _, comp := range comps {
			h := orUnknown(agg[comp].Status.Health)
			samples = append(samples, metrics.Sample{
				Name:   metrics.MetricSummaryComponentHealth,
				Labels: baseLabels(tgt, "component", comp, "health", h),
				Value:  metrics.HealthOrdinal(h),
			})
		}

	case inventory.FamilyIDRAC:
		components := []struct{ name, path string }{
			{"PowerSupplies", paths.Power},
			{"Fans", paths.Thermal},
			{"Storage", paths.Storage},
		}
		for _, comp := range components {
			var res struct {
				Status redfish.Status `json:"Status"`
			}
			if err := cli.Fetch(ctx, dev(tgt), comp.path, &res); err != nil {
				samples = append(samples, metrics.ErrorSample(tgt.Address, tgt.Site, "Failed to fetch "+comp.name+" health"))
				continue
			}
			h := orUnknown(res.Status.Health)
			samples = append(samples, metrics.Sample{
				Name:   metrics.MetricSummaryComponentHealth,
				Labels: baseLabels(tgt, "component", comp.name, "health", h),
				Value:  metrics.HealthOrdinal(h),
			})
		}
	}

	return samples
}

// Identification reports model, serial number and product id as info samples.
type Identification struct{}

func (Identification) Name() string { return "identification" }

func (Identification) Collect(ctx context.Context, cli *redfish.Client, tgt inventory.Target) []metrics.Sample {
	paths, _ := redfish.PathsFor(tgt.Family)

	var sys struct {
		Model        string `json:"Model"`
		SerialNumber string `json:"SerialNumber"`
		SKU          string `json:"SKU"`
	}
	if err := cli.Fetch(ctx, dev(tgt), paths.System, &sys); err != nil {
		return failed(tgt, "Failed to fetch server identification info")
	}

	fields := []struct{ field, value string }{
		{"product_name", orUnknown(sys.Model)},
		{"serial_number", orUnknown(sys.SerialNumber)},
		{"product_id", orUnknown(sys.SKU)},
	}
	samples := make([]metrics.Sample, 0, len(fields))
	for _, f := range fields {
		samples = append(samples, metrics.Sample{
			Name:   metrics.MetricServerInfo,
			Labels: baseLabels(tgt, "field", f.field, "value", f.value),
			Value:  1,
		})
	}
	return samples
}
