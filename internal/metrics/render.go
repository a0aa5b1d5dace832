package metrics

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/tastythames/bmc-exporter/internal/cache"
)

// Renderer writes the full exposition body from the current cache contents.
// It never triggers collection: it only reads already-cached text.
type Renderer struct {
	Cache cache.Cache

	// overridable for tests
	Now func() time.Time
}

func NewRenderer(c cache.Cache) *Renderer {
	return &Renderer{Cache: c, Now: time.Now}
}

func (r *Renderer) Write(w io.Writer) {
	start := time.Now()
	now := r.Now()

	// ---------------------------------------------------
	// Exporter-level metrics
	// ---------------------------------------------------
	fmt.Fprintf(w, "# HELP %s 1 if exporter process is running.\n", MetricExporterUp)
	fmt.Fprintf(w, "# TYPE %s gauge\n", MetricExporterUp)
	fmt.Fprintf(w, "%s 1\n", MetricExporterUp)

	// ---------------------------------------------------
	// Cached probe blocks
	// ---------------------------------------------------
	snap := r.Cache.Snapshot()

	keys := make([]cache.Key, 0, len(snap))
	for k := range snap {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Target != keys[j].Target {
			return keys[i].Target < keys[j].Target
		}
		return keys[i].Probe < keys[j].Probe
	})

	for _, k := range keys {
		if e := snap[k]; e.Text != "" {
			fmt.Fprintf(w, "%s\n", e.Text)
		}
	}

	// ---------------------------------------------------
	// Per-entry cache age (separate family, safe for existing collectors)
	// ---------------------------------------------------
	fmt.Fprintf(w, "# HELP %s Age of cached result per target/probe.\n", MetricCacheAgeSeconds)
	fmt.Fprintf(w, "# TYPE %s gauge\n", MetricCacheAgeSeconds)
	for _, k := range keys {
		age := now.Sub(snap[k].At).Seconds()
		labels := map[string]string{"target": k.Target, "probe": k.Probe}
		fmt.Fprintf(w, "%s%s %.3f\n", MetricCacheAgeSeconds, formatLabels(labels), age)
	}

	dur := time.Since(start).Seconds()
	fmt.Fprintf(w, "%s %.6f\n", MetricRenderDurationSeconds, dur)
}
