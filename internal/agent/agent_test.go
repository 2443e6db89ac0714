package agent

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vesaa/sysmon/internal/render"
)

func TestReportJSON(t *testing.T) {
	c := NewCollector(healthyProvider(), nil)
	var buf bytes.Buffer

	require.NoError(t, Report(context.Background(), c, render.Structured, &buf, nil))

	snap, err := render.ParseJSON(buf.Bytes())
	require.NoError(t, err)
	require.Len(t, snap.CPU, 2)
	require.Equal(t, uint64(2000), snap.Network.BytesRecv)
	require.Equal(t, 2, snap.Disks.Len())
}

func TestReportTable(t *testing.T) {
	c := NewCollector(healthyProvider(), nil)
	var buf bytes.Buffer

	require.NoError(t, Report(context.Background(), c, render.Tabular, &buf, nil))
	require.Contains(t, buf.String(), "Disk Information:")
	require.Contains(t, buf.String(), "/boot")
}

func TestReportEverythingFails(t *testing.T) {
	p := &fakeProvider{coreErr: errDenied, vmErr: errBoom, partErr: errBoom, netErr: errDenied}
	c := NewCollector(p, nil)
	var buf bytes.Buffer

	require.NoError(t, Report(context.Background(), c, render.Structured, &buf, nil))
	require.Contains(t, buf.String(), `"memory": {}`)
}

func TestReportUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	err := Report(context.Background(), NewCollector(healthyProvider(), nil), render.Format(5), &buf, nil)
	require.ErrorIs(t, err, render.ErrInvalidSelection)
	require.Empty(t, buf.String())
}
