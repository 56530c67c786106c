// Command probestat replays a workload described in a toml file against an ordered Robin Hood map and reports how
// entries are spread over the slots.
package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"
)

var configFile = flag.String("cfg", "./probestat.toml", "toml workload description")

func main() {
	flag.Parse()

	cfg, err := LoadConfig(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	logger, err := cfg.Log.Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}

	report, err := Run(cfg, logger)
	if err != nil {
		logger.Error("workload failed", zap.Error(err))
		_ = logger.Sync()
		os.Exit(1)
	}

	logger.Info("probe statistics",
		zap.Int("len", report.Len),
		zap.Int("cap", report.Cap),
		zap.Float64("mean_probe", report.MeanProbe),
		zap.Int("max_probe", report.MaxProbe),
		zap.Ints("histogram", report.ProbeHistogram),
	)
	_ = logger.Sync()

	fmt.Printf("len=%d cap=%d load=%.3f mean_probe=%.3f max_probe=%d elapsed=%s\n",
		report.Len, report.Cap, float64(report.Len)/float64(report.Cap), report.MeanProbe, report.MaxProbe, report.Elapsed)
}
