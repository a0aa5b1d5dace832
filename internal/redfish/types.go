package redfish

import "encoding/json"

// Status is the common Redfish state/health pair. Missing fields decode to
// "" and are defaulted by the probes.
type Status struct {
	State  string `json:"State"`
	Health string `json:"Health"`
}

// Member is one entry of a Redfish collection resource.
type Member struct {
	OdataID string `json:"@odata.id"`
}

// Collection is the common members wrapper.
type Collection struct {
	Members []Member `json:"Members"`
}

// Capacity tolerates firmwares that report "N/A" or similar instead of a
// number: anything non-numeric decodes to 0.
type Capacity float64

func (c *Capacity) UnmarshalJSON(b []byte) error {
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		*c = 0
		return nil
	}
	*c = Capacity(f)
	return nil
}
