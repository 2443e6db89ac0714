package agent

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/vesaa/sysmon/internal/provider"
)

var (
	errBoom   = errors.New("boom")
	errDenied = errors.Join(provider.ErrAccessDenied, fs.ErrPermission)
)

// fakeProvider returns canned readings; any non-nil error field makes the
// matching call fail.
type fakeProvider struct {
	cores    int
	pcts     []provider.CPUTimesPercent
	vm       provider.VirtualMemory
	swap     provider.SwapMemory
	parts    []provider.Partition
	usage    map[string]provider.Usage
	counters provider.IOCounters

	coreErr, pctErr, vmErr, swapErr, partErr, netErr error
	usageErr                                         map[string]error
}

func (f *fakeProvider) CoreCount(context.Context) (int, error) { return f.cores, f.coreErr }

func (f *fakeProvider) PerCorePercentages(context.Context) ([]provider.CPUTimesPercent, error) {
	return f.pcts, f.pctErr
}

func (f *fakeProvider) VirtualMemory(context.Context) (provider.VirtualMemory, error) {
	return f.vm, f.vmErr
}

func (f *fakeProvider) SwapMemory(context.Context) (provider.SwapMemory, error) {
	return f.swap, f.swapErr
}

func (f *fakeProvider) DiskPartitions(context.Context) ([]provider.Partition, error) {
	return f.parts, f.partErr
}

func (f *fakeProvider) DiskUsage(_ context.Context, mount string) (provider.Usage, error) {
	if err := f.usageErr[mount]; err != nil {
		return provider.Usage{}, err
	}
	u, ok := f.usage[mount]
	if !ok {
		return provider.Usage{}, fmt.Errorf("no such mount %s", mount)
	}
	return u, nil
}

func (f *fakeProvider) NetIOCounters(context.Context) (provider.IOCounters, error) {
	return f.counters, f.netErr
}

func pct(v float64) *float64 { return &v }

func healthyProvider() *fakeProvider {
	return &fakeProvider{
		cores: 2,
		pcts: []provider.CPUTimesPercent{
			{User: 10, System: 5, Idle: 85},
			{User: 20, System: 10, Idle: 70},
		},
		vm:   provider.VirtualMemory{Total: 8_000_000_000, Available: 4_000_000_000, Used: 4_000_000_000, UsedPercent: 50},
		swap: provider.SwapMemory{Total: 100, Used: 25, Free: 75, UsedPercent: 25},
		parts: []provider.Partition{
			{Device: "/dev/sda1", MountPoint: "/", FSType: "ext4", Opts: "rw"},
			{Device: "/dev/sda2", MountPoint: "/boot", FSType: "vfat", Opts: "rw,noatime"},
		},
		usage: map[string]provider.Usage{
			"/":     {Total: 100_000_000_000, Used: 40_000_000_000, Free: 60_000_000_000, Percent: pct(40)},
			"/boot": {Total: 200, Used: 50, Free: 150},
		},
		counters: provider.IOCounters{BytesSent: 1000, BytesRecv: 2000, PacketsSent: 10, PacketsRecv: 20},
	}
}
