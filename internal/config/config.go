// Package config provides process configuration from flags and environment.
package config

import (
	"flag"
	"log"
	"os"
	"strconv"
	"time"

	"go.uber.org/zap"
)

// Config holds the exporter settings. Environment variables override flags.
type Config struct {
	Listen            string        // exposition listen address
	InventoryPath     string        // YAML target list path
	Interval          time.Duration // collection cycle interval
	Jitter            time.Duration // random delay added per cycle
	Timeout           time.Duration // per-call timeout for BMC requests
	Workers           int           // collection worker count
	RequestsPerSecond float64       // outbound rate limit, 0 = unlimited
	Logger            *zap.SugaredLogger
}

// New parses flags, applies environment overrides and builds the logger.
func New() *Config {
	logger := zap.Must(zap.NewProduction())

	var intervalSec, jitterSec, timeoutSec int
	cfg := &Config{}
	flag.StringVar(&cfg.Listen, "a", ":9290", "exposition listen address")
	flag.StringVar(&cfg.InventoryPath, "f", "deploy/targets.example.yaml", "path to target inventory file")
	flag.IntVar(&intervalSec, "i", 60, "collection interval (seconds)")
	flag.IntVar(&jitterSec, "j", 0, "schedule jitter (seconds)")
	flag.IntVar(&timeoutSec, "t", 10, "per-call timeout (seconds)")
	flag.IntVar(&cfg.Workers, "w", 5, "collection workers")
	flag.Float64Var(&cfg.RequestsPerSecond, "r", 0, "outbound requests per second, 0 = unlimited")
	flag.Parse()

	cfg.Interval = time.Duration(intervalSec) * time.Second
	cfg.Jitter = time.Duration(jitterSec) * time.Second
	cfg.Timeout = time.Duration(timeoutSec) * time.Second
	cfg.Logger = logger.Sugar()

	ReadEnvironment(cfg)

	return cfg
}

// ReadEnvironment applies environment overrides onto cfg.
func ReadEnvironment(cfg *Config) {
	if v := os.Getenv("EXPORTER_LISTEN"); v != "" {
		cfg.Listen = v
	}
	if v := os.Getenv("INVENTORY_FILE"); v != "" {
		cfg.InventoryPath = v
	}
	if d, ok := envSeconds("COLLECT_INTERVAL_SECONDS"); ok {
		cfg.Interval = d
	}
	if d, ok := envSeconds("COLLECT_JITTER_SECONDS"); ok {
		cfg.Jitter = d
	}
	if d, ok := envSeconds("PROBE_TIMEOUT_SECONDS"); ok {
		cfg.Timeout = d
	}
	if v := os.Getenv("COLLECT_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Workers = n
		} else {
			log.Printf("invalid COLLECT_WORKERS env var: %q", v)
		}
	}
	if v := os.Getenv("OUTBOUND_RPS"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f >= 0 {
			cfg.RequestsPerSecond = f
		} else {
			log.Printf("invalid OUTBOUND_RPS env var: %q", v)
		}
	}
}

func envSeconds(key string) (time.Duration, bool) {
	v := os.Getenv(key)
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		log.Printf("invalid %s env var: %q", key, v)
		return 0, false
	}
	return time.Duration(n) * time.Second, true
}
