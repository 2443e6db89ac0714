package agent

import (
	"context"

	"github.com/vesaa/sysmon/internal/models"
)

// CollectNetwork reads aggregate I/O counters across all interfaces.
// It returns nil when the counters are unavailable.
func (c *Collector) CollectNetwork(ctx context.Context) *models.NetworkMetrics {
	counters, err := c.provider.NetIOCounters(ctx)
	if err != nil {
		c.logSourceError("network", err)
		return nil
	}
	return &models.NetworkMetrics{
		BytesSent:   counters.BytesSent,
		BytesRecv:   counters.BytesRecv,
		PacketsSent: counters.PacketsSent,
		PacketsRecv: counters.PacketsRecv,
	}
}
