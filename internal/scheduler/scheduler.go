package scheduler

import (
	"context"
	"math/rand"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/tastythames/bmc-exporter/internal/cache"
	"github.com/tastythames/bmc-exporter/internal/inventory"
	"github.com/tastythames/bmc-exporter/internal/metrics"
)

type Scheduler struct {
	interval time.Duration
	jitter   time.Duration

	source inventory.Source
	cache  cache.Cache
	jobCh  chan Job
	log    *zap.SugaredLogger

	// stats (atomic) for observability
	enqueued uint64
	dropped  uint64
}

type Options struct {
	Interval time.Duration
	Jitter   time.Duration
	Source   inventory.Source
	Cache    cache.Cache
	JobCh    chan Job
	Logger   *zap.SugaredLogger
}

// New creates a scheduler that re-reads the target list and enqueues one job
// per target every cycle.
// - Interval: base schedule interval
// - Jitter: random delay added each cycle (0..Jitter) to reduce herd effects
func New(opts Options) *Scheduler {
	if opts.Interval <= 0 {
		opts.Interval = 60 * time.Second
	}
	return &Scheduler{
		interval: opts.Interval,
		jitter:   opts.Jitter,
		source:   opts.Source,
		cache:    opts.Cache,
		jobCh:    opts.JobCh,
		log:      opts.Logger,
	}
}

func (s *Scheduler) Run(ctx context.Context) {
	// Kick once immediately
	s.cycle(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if s.jitter > 0 {
				delay := time.Duration(rand.Int63n(int64(s.jitter)))
				timer := time.NewTimer(delay)
				select {
				case <-ctx.Done():
					timer.Stop()
					return
				case <-timer.C:
				}
			}
			s.cycle(ctx)
		}
	}
}

// cycle reads the current target list and enqueues it. An unreadable list is
// the one failure outside any probe's boundary: every cached entry degrades
// to an explanatory error line and /metrics keeps answering.
func (s *Scheduler) cycle(ctx context.Context) {
	targets, err := s.source.Targets()
	if err != nil {
		s.log.Errorw("target list unreadable, degrading cache", "err", err)
		desc := "target list unreadable: " + err.Error()
		s.cache.DegradeAll(func(k cache.Key) string {
			return metrics.Render([]metrics.Sample{metrics.ErrorSample(k.Target, "", desc)})
		})
		return
	}
	s.enqueueAll(ctx, targets)
}

// enqueueAll pushes jobs into jobCh.
// IMPORTANT: This is non-blocking; if jobCh is full, we drop and count it.
// This avoids scheduler deadlock when workers are slow.
func (s *Scheduler) enqueueAll(ctx context.Context, targets []inventory.Target) {
	for _, t := range targets {
		select {
		case <-ctx.Done():
			return
		default:
		}

		select {
		case s.jobCh <- Job{Target: t}:
			atomic.AddUint64(&s.enqueued, 1)
		default:
			atomic.AddUint64(&s.dropped, 1)
		}
	}

	if d := atomic.LoadUint64(&s.dropped); d > 0 {
		s.log.Warnf("scheduler: dropped=%d (job queue full)", d)
	}
}

func (s *Scheduler) Stats() (enqueued uint64, dropped uint64) {
	return atomic.LoadUint64(&s.enqueued), atomic.LoadUint64(&s.dropped)
}
