package probe

import (
	"context"

	"github.com/tastythames/bmc-exporter/internal/inventory"
	"github.com/tastythames/bmc-exporter/internal/metrics"
	"github.com/tastythames/bmc-exporter/internal/redfish"
)

// Probe collects one hardware facet of one target. Collect never fails past
// its own boundary: every failure mode comes back as an error sample, and
// partial results are kept where feasible.
type Probe interface {
	Name() string
	Collect(ctx context.Context, cli *redfish.Client, tgt inventory.Target) []metrics.Sample
}

// SetFor returns the ordered probe set for a controller family, nil when the
// family is unknown. The OEM probes (SmartStorage, battery, PCI devices) are
// iLO-only; on iDRAC the storage and power health surface through the
// summary probe's component walk instead.
func SetFor(family string) []Probe {
	switch family {
	case inventory.FamilyILO:
		return []Probe{
			ServerStatus{},
			SystemSummary{},
			Identification{},
			CPU{},
			SmartBattery{},
			Memory{},
			Storage{},
			Power{},
			PowerRedundancy{},
			Fan{},
			Temperature{},
			PCIDevice{},
		}
	case inventory.FamilyIDRAC:
		return []Probe{
			ServerStatus{},
			SystemSummary{},
			Identification{},
			CPU{},
			Memory{},
			Power{},
			PowerRedundancy{},
			Fan{},
			Temperature{},
		}
	}
	return nil
}

// ---- shared helpers ----

func dev(t inventory.Target) redfish.Device {
	return redfish.Device{Address: t.Address, Username: t.Username, Password: t.Secret()}
}

// baseLabels builds the label set every sample carries, plus extra pairs.
func baseLabels(t inventory.Target, kv ...string) map[string]string {
	m := map[string]string{"target": t.Address, "site": t.Site}
	for i := 0; i+1 < len(kv); i += 2 {
		m[kv[i]] = kv[i+1]
	}
	return m
}

func failed(t inventory.Target, desc string) []metrics.Sample {
	return []metrics.Sample{metrics.ErrorSample(t.Address, t.Site, desc)}
}

func orUnknown(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}
