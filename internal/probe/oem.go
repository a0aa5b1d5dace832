package probe

import (
	"context"

	"github.com/tastythames/bmc-exporter/internal/inventory"
	"github.com/tastythames/bmc-exporter/internal/metrics"
	"github.com/tastythames/bmc-exporter/internal/redfish"
)

// SmartBattery reports the SmartStorage battery health from the iLO chassis
// OEM extension. OK maps to 1, anything else to 0.
type SmartBattery struct{}

func (SmartBattery) Name() string { return "smart_battery" }

func (SmartBattery) Collect(ctx context.Context, cli *redfish.Client, tgt inventory.Target) []metrics.Sample {
	paths, _ := redfish.PathsFor(tgt.Family)

	var ch struct {
		Oem struct {
			Hpe struct {
				SmartStorageBattery []struct {
					SerialNumber string         `json:"SerialNumber"`
					Status       redfish.Status `json:"Status"`
				} `json:"SmartStorageBattery"`
			} `json:"Hpe"`
		} `json:"Oem"`
	}
	if err := cli.Fetch(ctx, dev(tgt), paths.Chassis, &ch); err != nil {
		return failed(tgt, "SmartStorageBattery access error")
	}

	batteries := ch.Oem.Hpe.SmartStorageBattery
	if len(batteries) == 0 {
		return failed(tgt, "SmartStorageBattery info unavailable")
	}

	samples := make([]metrics.Sample, 0, len(batteries))
	for _, b := range batteries {
		health := orUnknown(b.Status.Health)
		v := 0.0
		if health == "OK" {
			v = 1
		}
		samples = append(samples, metrics.Sample{
			Name: metrics.MetricSmartBattery,
			Labels: baseLabels(tgt,
				"serial", orUnknown(b.SerialNumber),
				"health", health),
			Value: v,
		})
	}
	return samples
}

// PCIDevice reports one info sample per PCI device from the iLO device
// collection.
type PCIDevice struct{}

func (PCIDevice) Name() string { return "pci_device" }

func (PCIDevice) Collect(ctx context.Context, cli *redfish.Client, tgt inventory.Target) []metrics.Sample {
	paths, _ := redfish.PathsFor(tgt.Family)

	var col redfish.Collection
	if err := cli.Fetch(ctx, dev(tgt), paths.PCIDevices, &col); err != nil {
		return failed(tgt, "Failed to fetch PCI devices list")
	}

	var samples []metrics.Sample
	for _, m := range col.Members {
		var d struct {
			LocationString string `json:"LocationString"`
			Name           string `json:"Name"`
		}
		if err := cli.Fetch(ctx, dev(tgt), m.OdataID, &d); err != nil {
			samples = append(samples, metrics.ErrorSample(tgt.Address, tgt.Site, "Failed to fetch device "+m.OdataID))
			continue
		}
		if d.LocationString == "" {
			d.LocationString = "unknown"
		}
		if d.Name == "" {
			d.Name = "unknown"
		}
		samples = append(samples, metrics.Sample{
			Name: metrics.MetricDeviceInfo,
			Labels: baseLabels(tgt,
				"location", metrics.SanitizeLabel(d.LocationString),
				"name", metrics.SanitizeLabel(d.Name)),
			Value: 1,
		})
	}
	return samples
}
