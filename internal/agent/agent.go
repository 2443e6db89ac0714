package agent

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/vesaa/sysmon/internal/config"
	"github.com/vesaa/sysmon/internal/provider"
	"github.com/vesaa/sysmon/internal/render"
)

// Run collects one Snapshot from this host and writes it to out in the
// requested format.
func Run(ctx context.Context, cfg *config.Config, format render.Format, out io.Writer, logger *zap.SugaredLogger) error {
	p := provider.NewGopsutil(cfg.CPUSample(), cfg.AllPartitions)
	return Report(ctx, NewCollector(p, logger), format, out, logger)
}

// Report renders a fresh Snapshot from c. Only rendering can fail; a
// format that has no renderer is rejected before anything is collected.
func Report(ctx context.Context, c *Collector, format render.Format, out io.Writer, logger *zap.SugaredLogger) error {
	r, err := render.For(format, logger)
	if err != nil {
		return err
	}
	if err := r.Write(out, c.Collect(ctx)); err != nil {
		return fmt.Errorf("rendering %s: %w", format, err)
	}
	return nil
}
