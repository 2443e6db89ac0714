package provider

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	require.NoError(t, classify("x", nil))

	denied := classify("cpu times", fmt.Errorf("open /proc/stat: %w", fs.ErrPermission))
	require.True(t, IsAccessDenied(denied))
	require.ErrorIs(t, denied, fs.ErrPermission)

	other := classify("cpu times", errors.New("boom"))
	require.False(t, IsAccessDenied(other))
	var se *SourceError
	require.ErrorAs(t, other, &se)
	require.Equal(t, "cpu times", se.Source)
	require.Equal(t, "cpu times: boom", other.Error())
}

func TestTimesPercent(t *testing.T) {
	t1 := cpu.TimesStat{User: 100, System: 50, Idle: 850}
	t2 := cpu.TimesStat{User: 110, System: 55, Idle: 935}

	p := timesPercent(t1, t2)
	require.InDelta(t, 10.0, p.User, 1e-9)
	require.InDelta(t, 5.0, p.System, 1e-9)
	require.InDelta(t, 85.0, p.Idle, 1e-9)
}

func TestTimesPercentNoElapsedTime(t *testing.T) {
	t1 := cpu.TimesStat{User: 1, Idle: 1}
	require.Equal(t, CPUTimesPercent{Idle: 100}, timesPercent(t1, t1))
}

func TestNewGopsutilDefaults(t *testing.T) {
	g := NewGopsutil(0, true)
	require.Equal(t, DefaultSampleInterval, g.SampleInterval)
	require.True(t, g.AllPartitions)
}
