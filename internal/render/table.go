package render

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"go.uber.org/zap"

	"github.com/vesaa/sysmon/internal/models"
)

const (
	bytesPerMB = 1024 * 1024
	bytesPerGB = 1024 * 1024 * 1024
)

// errSectionMissing marks a Snapshot section whose collector failed.
var errSectionMissing = errors.New("information not available")

// Table renders a Snapshot as five grid tables. Each table is rendered in
// its own failure boundary so one bad section never hides the others.
type Table struct {
	logger *zap.SugaredLogger
	style  table.Style
}

// NewTable returns a table renderer. A nil logger discards diagnostics.
func NewTable(logger *zap.SugaredLogger) *Table {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	style := table.StyleRounded
	style.Format.Header = text.FormatDefault
	style.Options.SeparateRows = true
	return &Table{logger: logger, style: style}
}

type section struct {
	name  string
	build func(models.Snapshot) (table.Row, []table.Row, error)
}

var sections = []section{
	{"CPU", cpuRows},
	{"Memory", memoryRows},
	{"Swap", swapRows},
	{"Disk", diskRows},
	{"Network", networkRows},
}

// Render writes the header line and every table to w.
func (t *Table) Render(w io.Writer, snap models.Snapshot) {
	fmt.Fprintf(w, "\nSystem Monitor - %s\n", snap.Timestamp.Format(time.RFC3339Nano))
	for _, s := range sections {
		t.guard(s.name, func() error { return t.renderSection(w, s, snap) })
	}
}

func (t *Table) Write(w io.Writer, snap models.Snapshot) error {
	t.Render(w, snap)
	return nil
}

func (t *Table) renderSection(w io.Writer, s section, snap models.Snapshot) error {
	header, rows, err := s.build(snap)
	if err != nil {
		return err
	}
	tw := table.NewWriter()
	tw.SetStyle(t.style)
	tw.AppendHeader(header)
	tw.AppendRows(rows)

	if _, err := fmt.Fprintf(w, "\n%s Information:\n%s\n", s.name, tw.Render()); err != nil {
		return err
	}
	return nil
}

// guard runs fn and logs any error or panic it produces.
func (t *Table) guard(name string, fn func() error) {
	defer func() {
		if p := recover(); p != nil {
			t.logger.Errorw("error printing "+name+" table", "panic", p)
		}
	}()
	if err := fn(); err != nil {
		t.logger.Errorw("error printing "+name+" table", "error", err)
	}
}

func cpuRows(snap models.Snapshot) (table.Row, []table.Row, error) {
	rows := make([]table.Row, 0, len(snap.CPU))
	for _, c := range snap.Cores() {
		rows = append(rows, table.Row{coreKey(c.CoreID), formatFloat(c.User), formatFloat(c.System), formatFloat(c.Idle)})
	}
	return table.Row{"CPU", "User (%)", "System (%)", "Idle (%)"}, rows, nil
}

func memoryRows(snap models.Snapshot) (table.Row, []table.Row, error) {
	m := snap.Memory
	if m == nil {
		return nil, nil, fmt.Errorf("memory %w", errSectionMissing)
	}
	return table.Row{"Metric", "Value"}, []table.Row{
		{"Total (MB)", formatFloat(models.Round(float64(m.Total)/bytesPerMB, 2))},
		{"Available (MB)", formatFloat(models.Round(float64(m.Available)/bytesPerMB, 2))},
		{"Used (MB)", formatFloat(models.Round(float64(m.Used)/bytesPerMB, 2))},
		{"Percent (%)", formatFloat(models.Round(m.Percent, 1))},
	}, nil
}

func swapRows(snap models.Snapshot) (table.Row, []table.Row, error) {
	s := snap.Swap
	if s == nil {
		return nil, nil, fmt.Errorf("swap %w", errSectionMissing)
	}
	return table.Row{"Metric", "Value"}, []table.Row{
		{"Total (MB)", formatFloat(float64(s.Total) / bytesPerMB)},
		{"Used (MB)", formatFloat(float64(s.Used) / bytesPerMB)},
		{"Free (MB)", formatFloat(float64(s.Free) / bytesPerMB)},
		{"Percent (%)", formatFloat(s.Percent)},
	}, nil
}

func diskRows(snap models.Snapshot) (table.Row, []table.Row, error) {
	if snap.Disks.Len() == 0 {
		return nil, nil, fmt.Errorf("disk %w", errSectionMissing)
	}
	rows := make([]table.Row, 0, snap.Disks.Len())
	for _, v := range snap.Disks.Volumes() {
		rows = append(rows, table.Row{
			v.MountPoint,
			v.FSType,
			formatFloat(models.Round(float64(v.Total)/bytesPerGB, 2)),
			formatFloat(models.Round(float64(v.Used)/bytesPerGB, 2)),
			formatFloat(models.Round(float64(v.Free)/bytesPerGB, 2)),
			formatFloat(models.Round(v.Percent, 1)),
		})
	}
	return table.Row{"Mount Point", "Filesystem", "Size (GB)", "Used (GB)", "Free (GB)", "Percent (%)"}, rows, nil
}

func networkRows(snap models.Snapshot) (table.Row, []table.Row, error) {
	n := snap.Network
	if n == nil {
		return nil, nil, fmt.Errorf("network %w", errSectionMissing)
	}
	return table.Row{"Metric", "Value"}, []table.Row{
		{"Bytes Sent", strconv.FormatUint(n.BytesSent, 10)},
		{"Bytes Received", strconv.FormatUint(n.BytesRecv, 10)},
		{"Packets Sent", strconv.FormatUint(n.PacketsSent, 10)},
		{"Packets Received", strconv.FormatUint(n.PacketsRecv, 10)},
	}, nil
}
