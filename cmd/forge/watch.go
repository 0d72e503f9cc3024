package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"rulesmith-hq/forge/pkg/forge/library"
	"rulesmith-hq/forge/pkg/telemetry/metrics"
)

var watchFlags struct {
	dir string
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch a rule library directory and hot-reload on changes",
	Long: `Load every rule document under the library directory and keep the
set fresh: file changes trigger a debounced reload. With metrics enabled
in the config, a Prometheus endpoint reports load and validation counts.

Examples:
  forge watch
  forge watch --dir ./rules`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().StringVar(&watchFlags.dir, "dir", "", "library directory (default: config library.dir)")
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	dir := watchFlags.dir
	if dir == "" {
		dir = cfg.Library.Dir
	}

	var collector *metrics.Collector
	if cfg.Metrics.Enabled {
		collector = metrics.NewCollector(nil)
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(collector.Registry(), promhttp.HandlerOpts{}))
		go func() {
			slog.Info("metrics endpoint listening", "addr", cfg.Metrics.Listen)
			if err := http.ListenAndServe(cfg.Metrics.Listen, mux); err != nil {
				slog.Error("metrics endpoint failed", "error", err)
			}
		}()
	}

	registry := library.NewRegistry()
	loader := library.NewLoader(dir, slog.Default(), collector)
	if err := loader.LoadInto(registry); err != nil {
		return err
	}
	fmt.Printf("loaded %d rule(s) from %s\n", registry.Len(), dir)

	watcher, err := library.NewWatcher(cfg.Debounce(), slog.Default())
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return watcher.Watch(ctx, dir, func() error {
		collector.RecordReload()
		if err := loader.LoadInto(registry); err != nil {
			return err
		}
		slog.Info("library reloaded", "rules", registry.Len())
		return nil
	})
}
