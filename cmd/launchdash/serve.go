// Copyright 2026 The Launchdash Authors
// SPDX-License-Identifier: MIT

package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/davetashner/launchdash/internal/config"
	"github.com/davetashner/launchdash/internal/controller"
	launchlog "github.com/davetashner/launchdash/internal/log"
	"github.com/davetashner/launchdash/internal/server"
)

// Serve-specific flag values.
var (
	serveAddr        string
	serveMetricsAddr string
	serveDebug       bool
)

// serveCmd runs the interactive dashboard.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the interactive dashboard",
	Long: `Load the dataset and serve the dashboard over HTTP until interrupted.

The page at / holds the site dropdown, the payload range control and both
charts. Selection changes are sent to /api/selection/site and
/api/selection/payload; Prometheus metrics are served at /metrics, and also on
--metrics-addr when given.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "dashboard listen address (default "+config.DefaultAddr+")")
	serveCmd.Flags().StringVar(&serveMetricsAddr, "metrics-addr", "", "separate listen address for /metrics")
	serveCmd.Flags().BoolVar(&serveDebug, "debug", false, "log every request and selection event")
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(config.Overrides{
		Addr:        serveAddr,
		MetricsAddr: serveMetricsAddr,
		Debug:       serveDebug,
	})
	if err != nil {
		return err
	}
	ds, err := loadDataset(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	ctrl := controller.New(ds,
		controller.WithRegisterer(reg),
		controller.WithLogger(launchlog.New("controller")),
	)
	srv := server.New(ctrl, server.Options{
		Addr:        cfg.Server.Addr,
		MetricsAddr: cfg.Server.MetricsAddr,
		Heading:     cfg.Heading,
		Registry:    reg,
		Logger:      launchlog.New("server"),
	})

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	slog.Info("dashboard ready",
		"url", "http://"+cfg.Server.Addr+"/",
		"dataset", ds.Source(),
		"rows", ds.Len(),
		"sites", len(ds.DistinctSites()),
	)
	return srv.ListenAndServe(ctx)
}
