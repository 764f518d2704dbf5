// Command tracesim drives the cache-replacement policy engines in
// internal/policy against a trace file and reports hit/miss statistics.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/cachetrace/simulator/internal/config"
	"github.com/cachetrace/simulator/internal/driver"
	"github.com/cachetrace/simulator/internal/metrics"
	"github.com/cachetrace/simulator/internal/obslog"
	"github.com/cachetrace/simulator/internal/policy"
	"github.com/cachetrace/simulator/internal/report"
	"github.com/cachetrace/simulator/internal/trace"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	var err error
	switch cmd {
	case "lru", "belady", "arc", "larc", "nhit-lru", "nhit-lowcount":
		err = runSingle(cmd, args)
	case "compare":
		err = runCompare(args)
	default:
		usage()
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, "tracesim:", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: tracesim <lru|belady|arc|larc|nhit-lru|nhit-lowcount> -trace FILE [flags]")
	fmt.Fprintln(os.Stderr, "       tracesim compare -traces FILE[,FILE...] [-policies lru,arc,...] [-capacity N]")
}

type runFlags struct {
	tracePath          string
	configPath         string
	capacity           int
	pageSize           int
	triggerThreshold   float64
	insertionThreshold int
	trackingRatio      int
	startTime          float64
	endTime            float64
}

func bindFlags(fs *flag.FlagSet, cfg *config.Configuration) *runFlags {
	rf := &runFlags{}
	fs.StringVar(&rf.tracePath, "trace", "", "path to the trace CSV file (required)")
	fs.StringVar(&rf.configPath, "config", "", "optional YAML config file to load before flags are applied")
	fs.IntVar(&rf.capacity, "capacity", cfg.Cache.CapacitySize, "cache capacity")
	fs.IntVar(&rf.pageSize, "page-size", cfg.Cache.PageSize, "byte-offset to page-number divisor (0 disables)")
	fs.Float64Var(&rf.triggerThreshold, "trigger-threshold", cfg.NHit.TriggerThreshold, "N-Hit early-admission occupancy threshold, percent")
	fs.IntVar(&rf.insertionThreshold, "insertion-threshold", cfg.NHit.InsertionThreshold, "N-Hit required reference count N")
	fs.IntVar(&rf.trackingRatio, "tracking-ratio", cfg.NHit.TrackingRatio, "N-Hit LRU-variant tracker size multiplier")
	fs.Float64Var(&rf.startTime, "start-time", 0, "optional trace start-time filter")
	fs.Float64Var(&rf.endTime, "end-time", 0, "optional trace end-time filter")
	return rf
}

func loadConfiguration(configPath string) (*config.Configuration, error) {
	cfg := config.NewDefault()
	if configPath != "" {
		if err := cfg.LoadFromFile(configPath); err != nil {
			return nil, err
		}
	}
	if err := cfg.LoadFromEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(cfg *config.Configuration) (*obslog.StructuredLogger, error) {
	level, err := obslog.ParseLogLevel(cfg.Global.LogLevel)
	if err != nil {
		level = obslog.INFO
	}
	return obslog.NewStructuredLogger(&obslog.StructuredLoggerConfig{
		Level:  level,
		Output: os.Stderr,
		Format: obslog.FormatText,
	})
}

func newCollector(cfg *config.Configuration) (*metrics.Collector, error) {
	return metrics.NewCollector(&metrics.Config{
		Enabled: cfg.Monitoring.Metrics.Enabled,
		Addr:    cfg.Monitoring.Metrics.Addr,
	})
}

func newEngine(name string, rf *runFlags, requests []policy.Request) (policy.Engine, error) {
	switch name {
	case "lru":
		return policy.NewLRU(rf.capacity), nil
	case "belady":
		return policy.NewBelady(rf.capacity, policy.PrecomputeNextUse(requests)), nil
	case "arc":
		return policy.NewARC(rf.capacity), nil
	case "larc":
		return policy.NewLARC(rf.capacity), nil
	case "nhit-lru":
		return policy.NewNHitLRU(rf.capacity, rf.triggerThreshold, rf.insertionThreshold, rf.trackingRatio), nil
	case "nhit-lowcount":
		return policy.NewNHitLowCount(rf.capacity, rf.triggerThreshold, rf.insertionThreshold), nil
	default:
		return nil, fmt.Errorf("unknown policy %q", name)
	}
}

func runSingle(name string, args []string) error {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	cfg, err := loadConfiguration("")
	if err != nil {
		return err
	}
	rf := bindFlags(fs, cfg)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if rf.configPath != "" {
		if cfg, err = loadConfiguration(rf.configPath); err != nil {
			return err
		}
		fs = flag.NewFlagSet(name, flag.ExitOnError)
		rf = bindFlags(fs, cfg)
		if err := fs.Parse(args); err != nil {
			return err
		}
	}
	if rf.tracePath == "" {
		return fmt.Errorf("-trace is required")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer logger.Close()

	collector, err := newCollector(cfg)
	if err != nil {
		return err
	}
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	if err := collector.Start(ctx); err != nil {
		return err
	}

	loaded, err := trace.Load(rf.tracePath, trace.Options{
		StartTime: rf.startTime,
		EndTime:   rf.endTime,
		PageSize:  rf.pageSize,
	})
	if err != nil {
		return err
	}

	engine, err := newEngine(name, rf, loaded.Requests)
	if err != nil {
		return err
	}

	result := driver.Run(name, engine, loaded.Requests, logger, collector)
	collector.RecordRunDuration(name, result.Elapsed)
	collector.RecordOccupancy(name, engine.Occupancy())

	report.WriteStats(os.Stdout, name, result.Stats)
	return nil
}

func runCompare(args []string) error {
	fs := flag.NewFlagSet("compare", flag.ExitOnError)
	var (
		tracePaths string
		policies   string
		capacity   int
	)
	fs.StringVar(&tracePaths, "traces", "", "comma-separated trace CSV file paths (required)")
	fs.StringVar(&policies, "policies", "lru,belady,arc,larc,nhit-lru,nhit-lowcount", "comma-separated policy names")
	fs.IntVar(&capacity, "capacity", 10000, "cache capacity")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if tracePaths == "" {
		return fmt.Errorf("-traces is required")
	}

	paths := splitNonEmpty(tracePaths)
	names := splitNonEmpty(policies)

	for _, path := range paths {
		if err := compareOneTrace(path, names, capacity); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	}
	return nil
}

// compareOneTrace runs every named policy against one trace concurrently,
// one goroutine per policy, then prints a summary table for that trace.
func compareOneTrace(tracePath string, names []string, capacity int) error {
	loaded, err := trace.Load(tracePath, trace.Options{})
	if err != nil {
		return err
	}

	results := make([]driver.Result, len(names))
	errs := make([]error, len(names))

	var wg sync.WaitGroup
	for i, name := range names {
		wg.Add(1)
		go func(i int, name string) {
			defer wg.Done()
			rf := &runFlags{capacity: capacity, triggerThreshold: 80, insertionThreshold: 2, trackingRatio: 2}
			engine, err := newEngine(name, rf, loaded.Requests)
			if err != nil {
				errs[i] = err
				return
			}
			results[i] = driver.Run(name, engine, loaded.Requests, nil, nil)
			fmt.Fprintf(os.Stderr, "tracesim: %s/%s complete (%d hits / %d requests)\n", tracePath, name, results[i].Stats.TotalHit, results[i].Stats.TotalReq)
		}(i, name)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return err
		}
	}

	fmt.Fprintf(os.Stdout, "\n%s\n", tracePath)
	report.WriteComparison(os.Stdout, results)
	return nil
}

func splitNonEmpty(s string) []string {
	var out []string
	start := 0
	for i := 0; i <= len(s); i++ {
		if i == len(s) || s[i] == ',' {
			if i > start {
				out = append(out, s[start:i])
			}
			start = i + 1
		}
	}
	return out
}
