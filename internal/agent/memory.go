package agent

import (
	"context"

	"github.com/vesaa/sysmon/internal/models"
)

// CollectMemory reads physical memory and swap. The two readings share one
// failure boundary: if either provider call fails both results are nil.
func (c *Collector) CollectMemory(ctx context.Context) (*models.MemoryMetrics, *models.SwapMetrics) {
	vm, err := c.provider.VirtualMemory(ctx)
	if err != nil {
		c.logSourceError("memory", err)
		return nil, nil
	}
	sw, err := c.provider.SwapMemory(ctx)
	if err != nil {
		c.logSourceError("memory", err)
		return nil, nil
	}

	return &models.MemoryMetrics{
			Total:     vm.Total,
			Available: vm.Available,
			Used:      vm.Used,
			Percent:   vm.UsedPercent,
		}, &models.SwapMetrics{
			Total:   sw.Total,
			Used:    sw.Used,
			Free:    sw.Free,
			Percent: sw.UsedPercent,
		}
}
