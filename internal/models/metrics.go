// Package models defines the typed records that make up a host Snapshot.
package models

import (
	"fmt"
	"math"
	"time"
)

// CPUCoreMetrics is the utilization breakdown of one logical core.
type CPUCoreMetrics struct {
	CoreID int // 1-based, provider enumeration order
	User   float64
	System float64
	Idle   float64
}

// NewCPUCoreMetrics validates and builds a core record.
func NewCPUCoreMetrics(coreID int, user, system, idle float64) (CPUCoreMetrics, error) {
	if coreID < 1 {
		return CPUCoreMetrics{}, fmt.Errorf("core id %d: must be >= 1", coreID)
	}
	for _, p := range []float64{user, system, idle} {
		if err := checkPercent(p); err != nil {
			return CPUCoreMetrics{}, fmt.Errorf("core %d: %w", coreID, err)
		}
	}
	return CPUCoreMetrics{CoreID: coreID, User: user, System: system, Idle: idle}, nil
}

// MemoryMetrics describes physical memory usage in bytes.
type MemoryMetrics struct {
	Total     uint64
	Available uint64
	Used      uint64
	Percent   float64 // 0-100
}

// SwapMetrics describes swap usage in bytes.
type SwapMetrics struct {
	Total   uint64
	Used    uint64
	Free    uint64
	Percent float64 // 0-100
}

// NetworkMetrics holds aggregate I/O counters across all interfaces.
// Values are absolute readings of the OS counters, not deltas.
type NetworkMetrics struct {
	BytesSent   uint64
	BytesRecv   uint64
	PacketsSent uint64
	PacketsRecv uint64
}

// Snapshot is one fully assembled reading of every metric section.
// A nil pointer or empty collection marks a section whose collector failed.
type Snapshot struct {
	Timestamp time.Time
	CPU       []CPUCoreMetrics
	Memory    *MemoryMetrics
	Swap      *SwapMetrics
	Disks     DiskUsage
	Network   *NetworkMetrics
}

// Cores returns a copy of the per-core records.
func (s Snapshot) Cores() []CPUCoreMetrics {
	out := make([]CPUCoreMetrics, len(s.CPU))
	copy(out, s.CPU)
	return out
}

// Round rounds v to the given number of decimal places.
func Round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

func checkPercent(p float64) error {
	if math.IsNaN(p) || p < 0 || p > 100 {
		return fmt.Errorf("percent %v out of range [0,100]", p)
	}
	return nil
}
