package probe

import (
	"context"
	"strings"

	"github.com/tastythames/bmc-exporter/internal/inventory"
	"github.com/tastythames/bmc-exporter/internal/metrics"
	"github.com/tastythames/bmc-exporter/internal/redfish"
)

type thermalPayload struct {
	Fans []struct {
		Name    string         `json:"Name"`
		Reading float64        `json:"Reading"`
		Status  redfish.Status `json:"Status"`
	} `json:"Fans"`
	Temperatures []struct {
		Name           string         `json:"Name"`
		ReadingCelsius *float64       `json:"ReadingCelsius"`
		Status         redfish.Status `json:"Status"`
	} `json:"Temperatures"`
}

// Fan reports each fan's reading with its state/health as labels.
type Fan struct{}

func (Fan) Name() string { return "fan" }

func (Fan) Collect(ctx context.Context, cli *redfish.Client, tgt inventory.Target) []metrics.Sample {
	paths, _ := redfish.PathsFor(tgt.Family)

	var th thermalPayload
	if err := cli.Fetch(ctx, dev(tgt), paths.Thermal, &th); err != nil {
		return failed(tgt, "Failed to fetch fan info")
	}

	samples := make([]metrics.Sample, 0, len(th.Fans))
	for _, f := range th.Fans {
		samples = append(samples, metrics.Sample{
			Name: metrics.MetricFanInfo,
			Labels: baseLabels(tgt,
				"name", metrics.SanitizeName(orUnknown(f.Name)),
				"state", orUnknown(f.Status.State),
				"health", orUnknown(f.Status.Health)),
			Value: f.Reading,
		})
	}
	return samples
}

// Temperature reports sensors that classify into a known category; anything
// else is dropped. The substring match is case-sensitive on purpose.
type Temperature struct{}

func (Temperature) Name() string { return "temperature" }

func (Temperature) Collect(ctx context.Context, cli *redfish.Client, tgt inventory.Target) []metrics.Sample {
	paths, _ := redfish.PathsFor(tgt.Family)

	var th thermalPayload
	if err := cli.Fetch(ctx, dev(tgt), paths.Thermal, &th); err != nil {
		return failed(tgt, "Failed to fetch temperature info")
	}

	var samples []metrics.Sample
	for _, s := range th.Temperatures {
		if s.ReadingCelsius == nil {
			continue
		}
		class, ok := sensorClass(s.Name)
		if !ok {
			continue
		}
		samples = append(samples, metrics.Sample{
			Name: metrics.MetricTemperature,
			Labels: baseLabels(tgt,
				"sensor", class,
				"name", metrics.SanitizeName(orUnknown(s.Name))),
			Value: *s.ReadingCelsius,
		})
	}
	return samples
}

func sensorClass(name string) (string, bool) {
	switch {
	case strings.Contains(name, "CPU"):
		return "cpu", true
	case strings.Contains(name, "Inlet"):
		return "inlet", true
	case strings.Contains(name, "Ambient"):
		return "ambient", true
	case strings.Contains(name, "Chipset"):
		return "chipset", true
	case strings.Contains(name, "BMC"):
		return "bmc", true
	}
	return "", false
}
