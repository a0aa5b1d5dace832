package metrics

const (
	// exporter health
	MetricExporterUp    = "bmc_exporter_up"
	MetricExporterError = "bmc_exporter_error"

	// cache + render
	MetricCacheAgeSeconds       = "bmc_probe_cache_age_seconds"
	MetricRenderDurationSeconds = "bmc_exporter_render_duration_seconds"

	// system
	MetricServerStatus           = "bmc_server_status"
	MetricSystemStatus           = "bmc_system_status"
	MetricSummaryComponentHealth = "bmc_summary_component_health"
	MetricOEMSummaryMissing      = "bmc_oem_summary_missing"
	MetricServerInfo             = "bmc_server_info"

	// components
	MetricCPUInfo           = "bmc_cpu_info"
	MetricMemoryTotalGB     = "bmc_memory_total_gb"
	MetricTemperature       = "bmc_temperature_celsius"
	MetricFanInfo           = "bmc_fan_info"
	MetricPowerWatts        = "bmc_power_consumption_watts"
	MetricPowerRedundancy   = "bmc_power_redundancy_status"
	MetricSmartBattery      = "bmc_smart_battery_status"
	MetricStorageController = "bmc_storage_controller_status"
	MetricPhysicalDisk      = "bmc_storage_physical_disk"
	MetricLogicalDisk       = "bmc_storage_logical_disk"
	MetricDeviceInfo        = "bmc_device_info"
)
