package agent

import (
	"context"

	"github.com/vesaa/sysmon/internal/models"
)

// CollectCPU returns one record per logical core, numbered from 1 in the
// order the provider reports them. Any failure yields an empty slice.
func (c *Collector) CollectCPU(ctx context.Context) []models.CPUCoreMetrics {
	count, err := c.provider.CoreCount(ctx)
	if err != nil {
		c.logSourceError("CPU", err)
		return []models.CPUCoreMetrics{}
	}
	pcts, err := c.provider.PerCorePercentages(ctx)
	if err != nil {
		c.logSourceError("CPU", err)
		return []models.CPUCoreMetrics{}
	}
	if count != len(pcts) {
		c.logger.Debugw("core count differs from reported cores", "count", count, "reported", len(pcts))
	}

	cores := make([]models.CPUCoreMetrics, 0, len(pcts))
	for i, p := range pcts {
		core, err := models.NewCPUCoreMetrics(i+1, p.User, p.System, p.Idle)
		if err != nil {
			c.logSourceError("CPU", err)
			return []models.CPUCoreMetrics{}
		}
		cores = append(cores, core)
	}
	return cores
}
