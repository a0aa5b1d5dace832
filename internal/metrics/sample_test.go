package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHealthOrdinal(t *testing.T) {
	cases := map[string]float64{
		"OK":       0,
		"Enabled":  0,
		"Warning":  1,
		"Critical": 2,
		"Absent":   3,
		"Unknown":  4,
		"Disabled": 5,
	}
	for in, want := range cases {
		assert.Equal(t, want, HealthOrdinal(in), in)
	}

	// total: anything unrecognized maps to 4
	for _, in := range []string{"", "ok", "WARNING", "Degraded", "garbage"} {
		assert.Equal(t, 4.0, HealthOrdinal(in), in)
	}
}

func TestGiBFromMiB(t *testing.T) {
	assert.Equal(t, 8.0, GiBFromMiB(8192))
	assert.Equal(t, 0.0, GiBFromMiB(0))
	assert.Equal(t, 0.5, GiBFromMiB(512))
}

func TestSanitizeAsymmetry(t *testing.T) {
	// fan/sensor names: underscored and lower-cased
	assert.Equal(t, "fan_1a", SanitizeName("Fan 1A"))
	// device names and locations: underscored, case kept
	assert.Equal(t, "Slot_3", SanitizeLabel("Slot 3"))
}

func TestRender(t *testing.T) {
	s := Sample{
		Name:   "bmc_fan_info",
		Labels: map[string]string{"target": "10.0.0.5", "site": "lab", "name": "fan_1"},
		Value:  42,
	}
	got := Render([]Sample{s})
	// label keys sorted
	assert.Equal(t, `bmc_fan_info{name="fan_1", site="lab", target="10.0.0.5"} 42`, got)

	assert.Equal(t, "", Render(nil))

	two := Render([]Sample{s, s})
	assert.Equal(t, got+"\n"+got, two)
}

func TestErrorSample(t *testing.T) {
	s := ErrorSample("10.0.0.5", "lab", "Failed to fetch fan info")
	assert.Equal(t, MetricExporterError, s.Name)
	assert.Equal(t, 1.0, s.Value)
	assert.Equal(t, "10.0.0.5", s.Labels["target"])
	assert.Equal(t, "lab", s.Labels["site"])
	assert.NotEmpty(t, s.Labels["error"])
}
