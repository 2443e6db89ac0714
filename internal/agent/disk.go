package agent

import (
	"context"

	"github.com/vesaa/sysmon/internal/models"
	"github.com/vesaa/sysmon/internal/provider"
)

// CollectDisk returns usage for every mounted partition, keyed by mount
// point. A partition whose usage cannot be read is skipped; the others are
// still reported.
func (c *Collector) CollectDisk(ctx context.Context) models.DiskUsage {
	var out models.DiskUsage

	parts, err := c.provider.DiskPartitions(ctx)
	if err != nil {
		c.logSourceError("disk", err)
		return models.DiskUsage{}
	}

	for _, p := range parts {
		vol, err := c.volume(ctx, p)
		if err != nil {
			c.logger.Warnw("error getting disk usage", "mountpoint", p.MountPoint, "error", err)
			continue
		}
		if !out.Add(vol) {
			c.logger.Debugw("duplicate mount point skipped", "mountpoint", p.MountPoint)
		}
	}

	if out.Len() == 0 {
		c.logger.Error("no accessible disk information found")
		return models.DiskUsage{}
	}
	return out
}

func (c *Collector) volume(ctx context.Context, p provider.Partition) (models.DiskVolumeMetrics, error) {
	u, err := c.provider.DiskUsage(ctx, p.MountPoint)
	if err != nil {
		return models.DiskVolumeMetrics{}, err
	}
	return models.NewDiskVolumeMetrics(p.MountPoint, p.Device, p.FSType, p.Opts,
		u.Total, u.Used, u.Free, usagePercent(u))
}

// usagePercent prefers the provider's own figure and otherwise derives it
// from the byte counts. The result is rounded to one decimal.
func usagePercent(u provider.Usage) float64 {
	if u.Percent != nil {
		return models.Round(*u.Percent, 1)
	}
	if u.Total == 0 {
		return 0
	}
	return models.Round(float64(u.Used)/float64(u.Total)*100, 1)
}
