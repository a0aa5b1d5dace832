package probe

import (
	"context"
	"fmt"

	"github.com/tastythames/bmc-exporter/internal/inventory"
	"github.com/tastythames/bmc-exporter/internal/metrics"
	"github.com/tastythames/bmc-exporter/internal/redfish"
)

// Storage walks the SmartStorage array controllers and their physical and
// logical drive sub-collections. Each member is read independently: one
// broken controller or drive yields an error sample for that member only,
// everything already collected is still emitted.
type Storage struct{}

func (Storage) Name() string { return "storage" }

func (Storage) Collect(ctx context.Context, cli *redfish.Client, tgt inventory.Target) []metrics.Sample {
	paths, _ := redfish.PathsFor(tgt.Family)

	var col redfish.Collection
	if err := cli.Fetch(ctx, dev(tgt), paths.ArrayControllers, &col); err != nil {
		return failed(tgt, "Storage controller access error")
	}

	var samples []metrics.Sample
	for _, m := range col.Members {
		var ctrl struct {
			Model  string         `json:"Model"`
			Status redfish.Status `json:"Status"`
			Links  struct {
				PhysicalDrives redfish.Member `json:"PhysicalDrives"`
				LogicalDrives  redfish.Member `json:"LogicalDrives"`
			} `json:"Links"`
		}
		if err := cli.Fetch(ctx, dev(tgt), m.OdataID, &ctrl); err != nil {
			samples = append(samples, metrics.ErrorSample(tgt.Address, tgt.Site, "Failed to fetch storage controller "+m.OdataID))
			continue
		}

		samples = append(samples, metrics.Sample{
			Name: metrics.MetricStorageController,
			Labels: baseLabels(tgt,
				"model", orUnknown(ctrl.Model),
				"health", orUnknown(ctrl.Status.Health)),
			Value: 1,
		})

		if p := ctrl.Links.PhysicalDrives.OdataID; p != "" {
			samples = append(samples, physicalDrives(ctx, cli, tgt, p)...)
		}
		if p := ctrl.Links.LogicalDrives.OdataID; p != "" {
			samples = append(samples, logicalDrives(ctx, cli, tgt, p)...)
		}
	}
	return samples
}

func physicalDrives(ctx context.Context, cli *redfish.Client, tgt inventory.Target, path string) []metrics.Sample {
	var col redfish.Collection
	if err := cli.Fetch(ctx, dev(tgt), path, &col); err != nil {
		return failed(tgt, "Failed to fetch physical drive list")
	}

	var samples []metrics.Sample
	for _, m := range col.Members {
		var disk struct {
			Location    string           `json:"Location"`
			Model       string           `json:"Model"`
			CapacityMiB redfish.Capacity `json:"CapacityMiB"`
			Status      redfish.Status   `json:"Status"`
		}
		if err := cli.Fetch(ctx, dev(tgt), m.OdataID, &disk); err != nil {
			samples = append(samples, metrics.ErrorSample(tgt.Address, tgt.Site, "Failed to fetch physical drive "+m.OdataID))
			continue
		}
		samples = append(samples, metrics.Sample{
			Name: metrics.MetricPhysicalDisk,
			Labels: baseLabels(tgt,
				"location", orUnknown(disk.Location),
				"model", orUnknown(disk.Model),
				"capacity_gb", fmt.Sprintf("%.2f", metrics.GiBFromMiB(float64(disk.CapacityMiB))),
				"health", orUnknown(disk.Status.Health)),
			Value: 1,
		})
	}
	return samples
}

func logicalDrives(ctx context.Context, cli *redfish.Client, tgt inventory.Target, path string) []metrics.Sample {
	var col redfish.Collection
	if err := cli.Fetch(ctx, dev(tgt), path, &col); err != nil {
		return failed(tgt, "Failed to fetch logical drive list")
	}

	var samples []metrics.Sample
	for _, m := range col.Members {
		var ld struct {
			Raid        string           `json:"Raid"`
			CapacityMiB redfish.Capacity `json:"CapacityMiB"`
			Status      redfish.Status   `json:"Status"`
		}
		if err := cli.Fetch(ctx, dev(tgt), m.OdataID, &ld); err != nil {
			samples = append(samples, metrics.ErrorSample(tgt.Address, tgt.Site, "Failed to fetch logical drive "+m.OdataID))
			continue
		}
		raid := ld.Raid
		if raid == "" {
			raid = "N/A"
		}
		samples = append(samples, metrics.Sample{
			Name: metrics.MetricLogicalDisk,
			Labels: baseLabels(tgt,
				"raid", raid,
				"capacity_gb", fmt.Sprintf("%.2f", metrics.GiBFromMiB(float64(ld.CapacityMiB))),
				"health", orUnknown(ld.Status.Health)),
			Value: 1,
		})
	}
	return samples
}
