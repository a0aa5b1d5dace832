package probe

import (
	"context"
	"strconv"

	"github.com/tastythames/bmc-exporter/internal/inventory"
	"github.com/tastythames/bmc-exporter/internal/metrics"
	"github.com/tastythames/bmc-exporter/internal/redfish"
)

type powerPayload struct {
	PowerControl []struct {
		PowerConsumedWatts float64 `json:"PowerConsumedWatts"`
	} `json:"PowerControl"`
	Redundancy []struct {
		Mode   string         `json:"Mode"`
		Status redfish.Status `json:"Status"`
	} `json:"Redundancy"`
}

// Power reports consumed watts with the redundancy mode as a label.
type Power struct{}

func (Power) Name() string { return "power" }

func (Power) Collect(ctx context.Context, cli *redfish.Client, tgt inventory.Target) []metrics.Sample {
	paths, _ := redfish.PathsFor(tgt.Family)

	var pw powerPayload
	if err := cli.Fetch(ctx, dev(tgt), paths.Power, &pw); err != nil {
		return failed(tgt, "Failed to fetch power summary")
	}

	watts := 0.0
	if len(pw.PowerControl) > 0 {
		watts = pw.PowerControl[0].PowerConsumedWatts
	}
	mode := "Unknown"
	if len(pw.Redundancy) > 0 && pw.Redundancy[0].Mode != "" {
		mode = pw.Redundancy[0].Mode
	}

	return []metrics.Sample{{
		Name:   metrics.MetricPowerWatts,
		Labels: baseLabels(tgt, "power_status", mode),
		Value:  watts,
	}}
}

// PowerRedundancy reduces the redundancy state to a boolean-as-integer:
// Enabled means redundant (0), anything else means degraded (1).
type PowerRedundancy struct{}

func (PowerRedundancy) Name() string { return "power_redundancy" }

func (PowerRedundancy) Collect(ctx context.Context, cli *redfish.Client, tgt inventory.Target) []metrics.Sample {
	paths, _ := redfish.PathsFor(tgt.Family)

	var pw powerPayload
	if err := cli.Fetch(ctx, dev(tgt), paths.Power, &pw); err != nil {
		return failed(tgt, "Failed to fetch power redundancy info")
	}

	state := "Unknown"
	if len(pw.Redundancy) > 0 && pw.Redundancy[0].Status.State != "" {
		state = pw.Redundancy[0].Status.State
	}
	v := 1.0
	if state == "Enabled" {
		v = 0
	}

	return []metrics.Sample{{
		Name:   metrics.MetricPowerRedundancy,
		Labels: baseLabels(tgt, "redundant", strconv.Itoa(int(v))),
		Value:  v,
	}}
}
