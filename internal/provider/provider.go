// Package provider abstracts the operating-system accounting APIs that the
// collectors read from. The production implementation is backed by gopsutil.
package provider

import (
	"context"
	"errors"
	"io/fs"
)

// ErrAccessDenied is returned (wrapped) when the OS refuses to expose a
// metric source to the current process.
var ErrAccessDenied = errors.New("access denied")

// CPUTimesPercent is the share of time one core spent in each state.
type CPUTimesPercent struct {
	User   float64
	System float64
	Idle   float64
}

// VirtualMemory is the raw physical memory reading.
type VirtualMemory struct {
	Total       uint64
	Available   uint64
	Used        uint64
	UsedPercent float64
}

// SwapMemory is the raw swap reading.
type SwapMemory struct {
	Total       uint64
	Used        uint64
	Free        uint64
	UsedPercent float64
}

// Partition is one entry of the mount table.
type Partition struct {
	Device     string
	MountPoint string
	FSType     string
	Opts       string
}

// Usage is the space accounting of a mounted filesystem. Percent is nil
// when the source does not report it.
type Usage struct {
	Total   uint64
	Used    uint64
	Free    uint64
	Percent *float64
}

// IOCounters are aggregate network counters across all interfaces.
type IOCounters struct {
	BytesSent   uint64
	BytesRecv   uint64
	PacketsSent uint64
	PacketsRecv uint64
}

// Provider exposes raw host counters. Implementations must be safe for
// concurrent use.
type Provider interface {
	CoreCount(ctx context.Context) (int, error)
	PerCorePercentages(ctx context.Context) ([]CPUTimesPercent, error)
	VirtualMemory(ctx context.Context) (VirtualMemory, error)
	SwapMemory(ctx context.Context) (SwapMemory, error)
	DiskPartitions(ctx context.Context) ([]Partition, error)
	DiskUsage(ctx context.Context, mountPoint string) (Usage, error)
	NetIOCounters(ctx context.Context) (IOCounters, error)
}

// IsAccessDenied reports whether err means the source refused access.
func IsAccessDenied(err error) bool {
	return errors.Is(err, ErrAccessDenied)
}

// classify maps permission failures from the OS onto ErrAccessDenied and
// tags everything else with the source name.
func classify(source string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, fs.ErrPermission) {
		return errors.Join(ErrAccessDenied, err)
	}
	return &SourceError{Source: source, Err: err}
}

// SourceError is a generic failure reading one metric source.
type SourceError struct {
	Source string
	Err    error
}

func (e *SourceError) Error() string { return e.Source + ": " + e.Err.Error() }

func (e *SourceError) Unwrap() error { return e.Err }
