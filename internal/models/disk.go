package models

import "fmt"

// DiskVolumeMetrics describes one mounted partition.
type DiskVolumeMetrics struct {
	MountPoint string
	Device     string
	FSType     string
	Opts       string
	Total      uint64
	Used       uint64
	Free       uint64
	Percent    float64 // 0-100, one decimal
}

// NewDiskVolumeMetrics validates and builds a volume record. The percent is
// rounded to one decimal place.
func NewDiskVolumeMetrics(mount, device, fstype, opts string, total, used, free uint64, percent float64) (DiskVolumeMetrics, error) {
	if mount == "" {
		return DiskVolumeMetrics{}, fmt.Errorf("empty mount point")
	}
	if err := checkPercent(percent); err != nil {
		return DiskVolumeMetrics{}, fmt.Errorf("%s: %w", mount, err)
	}
	return DiskVolumeMetrics{
		MountPoint: mount,
		Device:     device,
		FSType:     fstype,
		Opts:       opts,
		Total:      total,
		Used:       used,
		Free:       free,
		Percent:    Round(percent, 1),
	}, nil
}

// DiskUsage maps mount points to volume metrics and remembers insertion
// order, which is the order both renderers iterate in.
type DiskUsage struct {
	order []string
	byKey map[string]DiskVolumeMetrics
}

// Add inserts v keyed by its mount point. It returns false and leaves the
// mapping untouched when the mount point is already present.
// Add never writes to storage shared with a copy of d, so a DiskUsage
// handed out inside a Snapshot cannot be changed through another copy.
func (d *DiskUsage) Add(v DiskVolumeMetrics) bool {
	if _, ok := d.byKey[v.MountPoint]; ok {
		return false
	}
	byKey := make(map[string]DiskVolumeMetrics, len(d.byKey)+1)
	for k, vol := range d.byKey {
		byKey[k] = vol
	}
	byKey[v.MountPoint] = v

	order := make([]string, len(d.order), len(d.order)+1)
	copy(order, d.order)

	d.order = append(order, v.MountPoint)
	d.byKey = byKey
	return true
}

// Get looks up a volume by mount point.
func (d DiskUsage) Get(mount string) (DiskVolumeMetrics, bool) {
	v, ok := d.byKey[mount]
	return v, ok
}

// Len reports the number of volumes.
func (d DiskUsage) Len() int { return len(d.order) }

// Volumes returns the volumes in insertion order.
func (d DiskUsage) Volumes() []DiskVolumeMetrics {
	out := make([]DiskVolumeMetrics, 0, len(d.order))
	for _, k := range d.order {
		out = append(out, d.byKey[k])
	}
	return out
}
