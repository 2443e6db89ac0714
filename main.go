// sysmon — point-in-time host metrics as JSON or grid tables.
// Author: vesaa | License: MIT
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vesaa/sysmon/internal/agent"
	"github.com/vesaa/sysmon/internal/config"
	"github.com/vesaa/sysmon/internal/logging"
	"github.com/vesaa/sysmon/internal/provider"
	"github.com/vesaa/sysmon/internal/render"
	"github.com/vesaa/sysmon/internal/server"
)

const version = "v0.1.0"

func printBanner(mode string) {
	fmt.Printf("  ► sysmon %s  |  Mode: %s\n\n", version, mode)
}

// setup loads config, applies the flags shared by every command and builds the logger.
func setup(cmd *cobra.Command) (*config.Config, *zap.SugaredLogger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}

	// CLI flags override config values.
	if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
		cfg.LogLevel = lvl
	}
	if cmd.Flags().Changed("all-partitions") {
		cfg.AllPartitions, _ = cmd.Flags().GetBool("all-partitions")
	}
	if ms, _ := cmd.Flags().GetInt("cpu-sample-ms"); ms > 0 {
		cfg.CPUSampleMS = ms
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, nil, fmt.Errorf("initializing logger: %w", err)
	}
	return cfg, logger, nil
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	if f, _ := cmd.Flags().GetString("format"); f != "" {
		cfg.Format = f
	}

	var format render.Format
	if cfg.Format == "" {
		format, err = render.PromptFormat(os.Stdin, os.Stdout, logger)
	} else {
		format, err = render.ParseFormat(cfg.Format)
	}
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()
	return agent.Run(ctx, cfg, format, os.Stdout, logger)
}

// newRootCmd assembles the command tree. Errors returned by commands are
// printed once by cobra.
func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "sysmon",
		Short: "sysmon — point-in-time host metrics",
		Long: `sysmon reads per-core CPU utilization, memory and swap usage, disk
partition usage and network I/O counters, and prints them once as an
indented JSON document or as grid tables.`,
		SilenceUsage: true,
		RunE:         runSnapshot,
	}
	root.PersistentFlags().String("log-level", "", "Diagnostic log level: debug, info, warn, error (overrides config)")
	root.PersistentFlags().Bool("all-partitions", false, "Include pseudo filesystems in the disk section")
	root.PersistentFlags().Int("cpu-sample-ms", 0, "CPU sampling window in milliseconds (overrides config)")
	root.Flags().String("format", "", "Output format: json or table (prompts when empty)")

	// ── snapshot subcommand ───────────────────────────────────────────────────
	snapshotCmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Print one host snapshot (default command)",
		RunE:  runSnapshot,
	}
	snapshotCmd.Flags().String("format", "", "Output format: json or table (prompts when empty)")

	// ── serve subcommand ──────────────────────────────────────────────────────
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve on-demand snapshots over HTTP (GET /api/snapshot?format=json|table)",
		RunE: func(cmd *cobra.Command, args []string) error {
			printBanner("SERVE")

			cfg, logger, err := setup(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			if host, _ := cmd.Flags().GetString("host"); host != "" {
				cfg.ServerHost = host
			}
			if port, _ := cmd.Flags().GetInt("port"); port != 0 {
				cfg.ServerPort = port
			}

			gin.SetMode(gin.ReleaseMode)
			p := provider.NewGopsutil(cfg.CPUSample(), cfg.AllPartitions)
			srv := server.New(agent.NewCollector(p, logger), logger)
			httpSrv := &http.Server{Addr: cfg.Addr(), Handler: srv.Engine()}

			fmt.Printf("  ✓ Snapshot API → http://%s/api/snapshot\n\n", cfg.Addr())

			errCh := make(chan error, 1)
			go func() { errCh <- httpSrv.ListenAndServe() }()

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, os.Interrupt)

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-quit:
				fmt.Println("\n  → Shutting down gracefully…")
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				return httpSrv.Shutdown(ctx)
			}
		},
	}
	serveCmd.Flags().String("host", "", "Listen host (overrides config)")
	serveCmd.Flags().Int("port", 0, "Listen port (overrides config)")

	// ── version subcommand ────────────────────────────────────────────────────
	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print sysmon version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("sysmon %s\n", version)
		},
	}

	root.AddCommand(snapshotCmd, serveCmd, versionCmd)
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
