package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/tastythames/bmc-exporter/internal/cache"
	"github.com/tastythames/bmc-exporter/internal/config"
	"github.com/tastythames/bmc-exporter/internal/inventory"
	"github.com/tastythames/bmc-exporter/internal/metrics"
	"github.com/tastythames/bmc-exporter/internal/redfish"
	"github.com/tastythames/bmc-exporter/internal/scheduler"
	"github.com/tastythames/bmc-exporter/internal/server/middleware"
)

func main() {
	cfg := config.New()
	log := cfg.Logger
	defer func() { _ = log.Sync() }()

	log.Infof("config: listen=%s inventory=%s interval=%s timeout=%s workers=%d",
		cfg.Listen, cfg.InventoryPath, cfg.Interval, cfg.Timeout, cfg.Workers)

	// Fail fast on a broken inventory at startup; later read errors degrade
	// the cache instead (the admin surface may be rewriting the file).
	source := &inventory.FileSource{Path: cfg.InventoryPath}
	if _, err := source.Targets(); err != nil {
		log.Fatalf("load inventory: %v", err)
	}

	// cache + collection loop
	c := cache.NewMemCache()
	cli := redfish.New(redfish.Options{
		Timeout:           cfg.Timeout,
		RequestsPerSecond: cfg.RequestsPerSecond,
	})

	jobCh := make(chan scheduler.Job, 100)
	sched := scheduler.New(scheduler.Options{
		Interval: cfg.Interval,
		Jitter:   cfg.Jitter,
		Source:   source,
		Cache:    c,
		JobCh:    jobCh,
		Logger:   log,
	})

	for i := 0; i < cfg.Workers; i++ {
		go scheduler.StartWorker(i, jobCh, cli, c, log)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go sched.Run(ctx)

	// HTTP: the exposition endpoint only reads the cache, never probes.
	rend := metrics.NewRenderer(c)

	router := chi.NewRouter()
	router.Use(chimw.StripSlashes)
	router.Use(middleware.LogMiddleware(log))
	router.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	router.Get("/metrics", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; version=0.0.4; charset=utf-8")
		rend.Write(w)
	})

	srv := &http.Server{
		Addr:    cfg.Listen,
		Handler: router,
	}

	go func() {
		log.Infof("bmc-exporter listening on %s", cfg.Listen)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, os.Interrupt, syscall.SIGTERM)
	<-ch
	log.Info("shutdown...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	_ = srv.Shutdown(shutdownCtx)
}
