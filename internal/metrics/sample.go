package metrics

import (
	"fmt"
	"sort"
	"strings"
)

// Sample is one normalized observation: a metric name, its label set and a
// numeric value. Probes build these; Render turns them into exposition lines.
type Sample struct {
	Name   string
	Labels map[string]string
	Value  float64
}

// ErrorSample is the degenerate sample emitted in place of a probe's normal
// output when that probe could not complete.
func ErrorSample(target, site, desc string) Sample {
	return Sample{
		Name: MetricExporterError,
		Labels: map[string]string{
			"target": target,
			"site":   site,
			"error":  desc,
		},
		Value: 1,
	}
}

// HealthOrdinal maps a qualitative health string to the small ordinal code
// used by the system-status family. Total: unrecognized input yields 4.
func HealthOrdinal(health string) float64 {
	switch health {
	case "OK", "Enabled":
		return 0
	case "Warning":
		return 1
	case "Critical":
		return 2
	case "Absent":
		return 3
	case "Disabled":
		return 5
	default:
		return 4
	}
}

// GiBFromMiB converts a binary-mebibyte capacity into the gigabyte figure
// the exposition uses.
func GiBFromMiB(mib float64) float64 {
	return mib / 1024
}

// SanitizeName lower-cases and underscores free-text component names
// (fans, temperature sensors).
func SanitizeName(s string) string {
	return strings.ToLower(strings.ReplaceAll(s, " ", "_"))
}

// SanitizeLabel underscores spaces but keeps case (device names, locations).
func SanitizeLabel(s string) string {
	return strings.ReplaceAll(s, " ", "_")
}

// Render writes samples as exposition lines, newline-joined, no trailing
// newline. Label keys are sorted so output is stable.
func Render(samples []Sample) string {
	lines := make([]string, 0, len(samples))
	for _, s := range samples {
		lines = append(lines, fmt.Sprintf("%s%s %v", s.Name, formatLabels(s.Labels), s.Value))
	}
	return strings.Join(lines, "\n")
}

func formatLabels(m map[string]string) string {
	if len(m) == 0 {
		return ""
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString("{")
	for i, k := range keys {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, `%s="%s"`, k, m[k])
	}
	b.WriteString("}")
	return b.String()
}
