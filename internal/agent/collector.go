// Package agent gathers host metrics into Snapshots.
// Each collector reads one provider domain and absorbs its failures, so a
// Snapshot is always complete even when every source is unavailable.
package agent

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/vesaa/sysmon/internal/models"
	"github.com/vesaa/sysmon/internal/provider"
)

// Collector builds Snapshots from a Provider. It keeps no state between
// calls and is safe for concurrent use when the provider is.
type Collector struct {
	provider provider.Provider
	logger   *zap.SugaredLogger
	now      func() time.Time
}

// Option customizes a Collector.
type Option func(*Collector)

// WithClock overrides the time source used for Snapshot timestamps.
func WithClock(now func() time.Time) Option {
	return func(c *Collector) { c.now = now }
}

// NewCollector creates a ready-to-use Collector. A nil logger discards diagnostics.
func NewCollector(p provider.Provider, logger *zap.SugaredLogger, opts ...Option) *Collector {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	c := &Collector{provider: p, logger: logger, now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Collect captures the current time and runs every collector in turn.
// It never fails: sections whose source failed are left empty.
func (c *Collector) Collect(ctx context.Context) models.Snapshot {
	snap := models.Snapshot{Timestamp: c.now()}

	snap.CPU = c.CollectCPU(ctx)
	snap.Memory, snap.Swap = c.CollectMemory(ctx)
	snap.Disks = c.CollectDisk(ctx)
	snap.Network = c.CollectNetwork(ctx)

	c.logger.Debugw("snapshot collected",
		"cores", len(snap.CPU),
		"memory", snap.Memory != nil,
		"disks", snap.Disks.Len(),
		"network", snap.Network != nil,
	)
	return snap
}

// logSourceError emits the diagnostic for a failed metric source.
func (c *Collector) logSourceError(what string, err error) {
	if provider.IsAccessDenied(err) {
		c.logger.Errorw("access denied to "+what+" information", "error", err)
		return
	}
	c.logger.Errorw("unexpected error reading "+what+" information", "error", err)
}
