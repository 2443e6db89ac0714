package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vesaa/sysmon/internal/render"
)

func TestSnapshotInvalidFormatReportedOnce(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	var stdout, stderr bytes.Buffer
	root := newRootCmd()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs([]string{"snapshot", "--format", "xml"})

	err := root.Execute()
	require.ErrorIs(t, err, render.ErrInvalidSelection)
	require.Equal(t, 1, strings.Count(stderr.String(), "invalid format selection"))
	require.Empty(t, stdout.String())
}
