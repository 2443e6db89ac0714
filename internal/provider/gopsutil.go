package provider

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/mem"
	psnet "github.com/shirou/gopsutil/v4/net"
)

// DefaultSampleInterval is the window over which per-core percentages are
// measured when none is configured.
const DefaultSampleInterval = 500 * time.Millisecond

// Gopsutil reads host counters through gopsutil.
type Gopsutil struct {
	// SampleInterval separates the two cpu.Times readings used to derive
	// per-core percentages.
	SampleInterval time.Duration
	// AllPartitions includes pseudo and duplicate filesystems in DiskPartitions.
	AllPartitions bool
}

// NewGopsutil returns a provider with the given CPU sample window.
// A non-positive interval selects DefaultSampleInterval.
func NewGopsutil(sample time.Duration, allPartitions bool) *Gopsutil {
	if sample <= 0 {
		sample = DefaultSampleInterval
	}
	return &Gopsutil{SampleInterval: sample, AllPartitions: allPartitions}
}

var _ Provider = (*Gopsutil)(nil)

func (g *Gopsutil) CoreCount(ctx context.Context) (int, error) {
	n, err := cpu.CountsWithContext(ctx, true)
	return n, classify("cpu count", err)
}

// PerCorePercentages samples per-core CPU times twice and returns the share
// of the elapsed time each core spent in user, system and idle state.
func (g *Gopsutil) PerCorePercentages(ctx context.Context) ([]CPUTimesPercent, error) {
	before, err := cpu.TimesWithContext(ctx, true)
	if err != nil {
		return nil, classify("cpu times", err)
	}

	timer := time.NewTimer(g.SampleInterval)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return nil, classify("cpu times", ctx.Err())
	case <-timer.C:
	}

	after, err := cpu.TimesWithContext(ctx, true)
	if err != nil {
		return nil, classify("cpu times", err)
	}
	if len(before) != len(after) {
		return nil, classify("cpu times", errors.New("core set changed between samples"))
	}

	out := make([]CPUTimesPercent, len(after))
	for i := range after {
		out[i] = timesPercent(before[i], after[i])
	}
	return out, nil
}

// timesPercent converts the delta between two readings into percentages.
func timesPercent(t1, t2 cpu.TimesStat) CPUTimesPercent {
	total := busyTotal(t2) - busyTotal(t1)
	if total <= 0 {
		return CPUTimesPercent{Idle: 100}
	}
	pct := func(a, b float64) float64 {
		v := (b - a) / total * 100
		switch {
		case v < 0:
			return 0
		case v > 100:
			return 100
		}
		return v
	}
	return CPUTimesPercent{
		User:   pct(t1.User, t2.User),
		System: pct(t1.System, t2.System),
		Idle:   pct(t1.Idle, t2.Idle),
	}
}

// busyTotal sums all accounted states. Guest time is already part of User.
func busyTotal(t cpu.TimesStat) float64 {
	return t.User + t.System + t.Idle + t.Nice + t.Iowait + t.Irq + t.Softirq + t.Steal
}

func (g *Gopsutil) VirtualMemory(ctx context.Context) (VirtualMemory, error) {
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return VirtualMemory{}, classify("virtual memory", err)
	}
	return VirtualMemory{
		Total:       vm.Total,
		Available:   vm.Available,
		Used:        vm.Used,
		UsedPercent: vm.UsedPercent,
	}, nil
}

func (g *Gopsutil) SwapMemory(ctx context.Context) (SwapMemory, error) {
	sw, err := mem.SwapMemoryWithContext(ctx)
	if err != nil {
		return SwapMemory{}, classify("swap memory", err)
	}
	return SwapMemory{
		Total:       sw.Total,
		Used:        sw.Used,
		Free:        sw.Free,
		UsedPercent: sw.UsedPercent,
	}, nil
}

func (g *Gopsutil) DiskPartitions(ctx context.Context) ([]Partition, error) {
	parts, err := disk.PartitionsWithContext(ctx, g.AllPartitions)
	if err != nil {
		return nil, classify("disk partitions", err)
	}
	out := make([]Partition, 0, len(parts))
	for _, p := range parts {
		out = append(out, Partition{
			Device:     p.Device,
			MountPoint: p.Mountpoint,
			FSType:     p.Fstype,
			Opts:       strings.Join(p.Opts, ","),
		})
	}
	return out, nil
}

func (g *Gopsutil) DiskUsage(ctx context.Context, mountPoint string) (Usage, error) {
	u, err := disk.UsageWithContext(ctx, mountPoint)
	if err != nil {
		return Usage{}, classify("disk usage "+mountPoint, err)
	}
	pct := u.UsedPercent
	return Usage{Total: u.Total, Used: u.Used, Free: u.Free, Percent: &pct}, nil
}

// NetIOCounters returns counters summed over every interface.
func (g *Gopsutil) NetIOCounters(ctx context.Context) (IOCounters, error) {
	stats, err := psnet.IOCountersWithContext(ctx, false)
	if err != nil {
		return IOCounters{}, classify("net io counters", err)
	}
	if len(stats) == 0 {
		return IOCounters{}, classify("net io counters", errors.New("no counters reported"))
	}
	s := stats[0]
	return IOCounters{
		BytesSent:   s.BytesSent,
		BytesRecv:   s.BytesRecv,
		PacketsSent: s.PacketsSent,
		PacketsRecv: s.PacketsRecv,
	}, nil
}
