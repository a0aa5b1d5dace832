package redfish

// Paths is the per-family resource path table. Both supported families speak
// the same Redfish concepts at different base paths; adding a family is a
// new table entry plus whatever OEM probes it needs.
type Paths struct {
	System     string
	Chassis    string
	Thermal    string
	Power      string
	Processors string
	Memory     string
	Storage    string

	// OEM extensions (empty when the family has none)
	ArrayControllers string
	PCIDevices       string
}

var familyPaths = map[string]Paths{
	"ilo": {
		System:           "/redfish/v1/Systems/1",
		Chassis:          "/redfish/v1/Chassis/1",
		Thermal:          "/redfish/v1/Chassis/1/Thermal",
		Power:            "/redfish/v1/Chassis/1/Power",
		Processors:       "/redfish/v1/Systems/1/Processors",
		Memory:           "/redfish/v1/Systems/1/Memory",
		Storage:          "/redfish/v1/Systems/1/Storage",
		ArrayControllers: "/redfish/v1/Systems/1/SmartStorage/ArrayControllers",
		PCIDevices:       "/redfish/v1/Systems/1/PCIDevices",
	},
	"idrac": {
		System:     "/redfish/v1/Systems/System.Embedded.1",
		Chassis:    "/redfish/v1/Chassis/System.Embedded.1",
		Thermal:    "/redfish/v1/Chassis/System.Embedded.1/Thermal",
		Power:      "/redfish/v1/Chassis/System.Embedded.1/Power",
		Processors: "/redfish/v1/Systems/System.Embedded.1/Processors",
		Memory:     "/redfish/v1/Systems/System.Embedded.1/Memory",
		Storage:    "/redfish/v1/Systems/System.Embedded.1/Storage",
	},
}

// PathsFor returns the path table for a controller family.
func PathsFor(family string) (Paths, bool) {
	p, ok := familyPaths[family]
	return p, ok
}
