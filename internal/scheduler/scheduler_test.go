package scheduler

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tastythames/bmc-exporter/internal/cache"
	"github.com/tastythames/bmc-exporter/internal/inventory"
)

type stubSource struct {
	targets []inventory.Target
	err     error
}

func (s *stubSource) Targets() ([]inventory.Target, error) { return s.targets, s.err }

func TestCycleEnqueuesAllTargets(t *testing.T) {
	src := &stubSource{targets: []inventory.Target{
		{Address: "10.0.0.1", Family: inventory.FamilyILO},
		{Address: "10.0.0.2", Family: inventory.FamilyIDRAC},
	}}
	jobCh := make(chan Job, 10)
	s := New(Options{
		Interval: time.Hour,
		Source:   src,
		Cache:    cache.NewMemCache(),
		JobCh:    jobCh,
		Logger:   zap.NewNop().Sugar(),
	})

	s.cycle(context.Background())

	require.Len(t, jobCh, 2)
	enq, drop := s.Stats()
	assert.Equal(t, uint64(2), enq)
	assert.Equal(t, uint64(0), drop)
}

func TestCycleDropsWhenQueueFull(t *testing.T) {
	src := &stubSource{targets: []inventory.Target{
		{Address: "10.0.0.1"}, {Address: "10.0.0.2"}, {Address: "10.0.0.3"},
	}}
	jobCh := make(chan Job, 1)
	s := New(Options{
		Interval: time.Hour,
		Source:   src,
		Cache:    cache.NewMemCache(),
		JobCh:    jobCh,
		Logger:   zap.NewNop().Sugar(),
	})

	s.cycle(context.Background())

	_, drop := s.Stats()
	assert.Equal(t, uint64(2), drop)
}

func TestCycleDegradesCacheOnSourceFailure(t *testing.T) {
	c := cache.NewMemCache()
	c.Set(cache.Key{Target: "10.0.0.1", Probe: "fan"}, "bmc_fan_info{} 42")
	c.Set(cache.Key{Target: "10.0.0.2", Probe: "cpu"}, "bmc_cpu_info{} 1")

	src := &stubSource{err: errors.New("permission denied")}
	s := New(Options{
		Interval: time.Hour,
		Source:   src,
		Cache:    c,
		JobCh:    make(chan Job, 1),
		Logger:   zap.NewNop().Sugar(),
	})

	s.cycle(context.Background())

	snap := c.Snapshot()
	require.Len(t, snap, 2)
	for k, e := range snap {
		assert.Contains(t, e.Text, "bmc_exporter_error", k)
		assert.Contains(t, e.Text, "target list unreadable", k)
		assert.Contains(t, e.Text, k.Target)
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	s := New(Options{
		Interval: 10 * time.Millisecond,
		Source:   &stubSource{},
		Cache:    cache.NewMemCache(),
		JobCh:    make(chan Job, 1),
		Logger:   zap.NewNop().Sugar(),
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not stop after cancel")
	}
}

func TestDefaultInterval(t *testing.T) {
	s := New(Options{Source: &stubSource{}, Logger: zap.NewNop().Sugar()})
	assert.Equal(t, 60*time.Second, s.interval)
}

func TestDegradedLineShape(t *testing.T) {
	c := cache.NewMemCache()
	c.Set(cache.Key{Target: "10.0.0.1", Probe: "fan"}, "old")

	s := New(Options{
		Interval: time.Hour,
		Source:   &stubSource{err: errors.New("boom")},
		Cache:    c,
		JobCh:    make(chan Job, 1),
		Logger:   zap.NewNop().Sugar(),
	})
	s.cycle(context.Background())

	e := c.Snapshot()[cache.Key{Target: "10.0.0.1", Probe: "fan"}]
	assert.Equal(t, 1, strings.Count(e.Text, "\n")+1, "exactly one line per degraded entry")
}
