package render

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/vesaa/sysmon/internal/models"
)

// ErrSerialization is returned when a Snapshot cannot be represented as JSON.
var ErrSerialization = errors.New("unable to generate JSON output")

// Document keys.
const (
	keyMemory    = "Memory"
	keySwap      = "Swap"
	keyDiskUsage = "Disk Usage"
)

// JSON renders the structured document.
type JSON struct {
	logger *zap.SugaredLogger
}

// NewJSON returns a JSON renderer. A nil logger discards diagnostics.
func NewJSON(logger *zap.SugaredLogger) *JSON {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &JSON{logger: logger}
}

// Render encodes snap as a 4-space indented document, writes it to w and
// returns it. An encoding failure writes nothing; a failing w may have
// received part of the document.
func (j *JSON) Render(w io.Writer, snap models.Snapshot) ([]byte, error) {
	out, err := Marshal(snap)
	if err != nil {
		j.logger.Errorw("error printing JSON", "error", err)
		return nil, err
	}
	if _, err := w.Write(append(out, '\n')); err != nil {
		j.logger.Errorw("error printing JSON", "error", err)
		return nil, fmt.Errorf("%w: %v", ErrSerialization, err)
	}
	return out, nil
}

func (j *JSON) Write(w io.Writer, snap models.Snapshot) error {
	_, err := j.Render(w, snap)
	return err
}

// Marshal encodes snap without writing it anywhere.
func Marshal(snap models.Snapshot) ([]byte, error) {
	out, err := json.MarshalIndent(document(snap), "", "    ")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSerialization, err)
	}
	return out, nil
}

func document(snap models.Snapshot) object {
	cpu := object{}
	for _, c := range snap.Cores() {
		cpu = append(cpu, field{coreKey(c.CoreID), object{
			{"user", number(c.User)},
			{"system", number(c.System)},
			{"idle", number(c.Idle)},
		}})
	}

	memory := object{}
	if m := snap.Memory; m != nil {
		memory = append(memory, field{keyMemory, object{
			{"total", m.Total},
			{"available", m.Available},
			{"used", m.Used},
			{"percent", number(m.Percent)},
		}})
	}
	if s := snap.Swap; s != nil {
		memory = append(memory, field{keySwap, object{
			{"total", s.Total},
			{"used", s.Used},
			{"free", s.Free},
			{"percent", number(s.Percent)},
		}})
	}

	disk := object{}
	if snap.Disks.Len() > 0 {
		usage := object{}
		for _, v := range snap.Disks.Volumes() {
			usage = append(usage, field{v.MountPoint, object{
				{"device", v.Device},
				{"fstype", v.FSType},
				{"opts", v.Opts},
				{"total", v.Total},
				{"used", v.Used},
				{"free", v.Free},
				{"percent", number(v.Percent)},
			}})
		}
		disk = append(disk, field{keyDiskUsage, usage})
	}

	network := object{}
	if n := snap.Network; n != nil {
		network = object{
			{"Bytes Sent", n.BytesSent},
			{"Bytes Received", n.BytesRecv},
			{"Packets Sent", n.PacketsSent},
			{"Packets Received", n.PacketsRecv},
		}
	}

	return object{
		{"timestamp", snap.Timestamp.Format(time.RFC3339Nano)},
		{"cpu", cpu},
		{"memory", memory},
		{"disk", disk},
		{"network", network},
	}
}

func coreKey(id int) string { return "cpu" + strconv.Itoa(id) }

// field is one member of an object.
type field struct {
	Key   string
	Value any
}

// object is a JSON object that keeps its members in order.
type object []field

func (o object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range o {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(f.Key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(f.Value)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", f.Key, err)
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// number is a float that always encodes with a decimal point, so 50 is
// written as 50.0 and reads back as a float.
type number float64

func (n number) MarshalJSON() ([]byte, error) {
	v := float64(n)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, fmt.Errorf("unsupported float value %v", v)
	}
	return []byte(formatFloat(v)), nil
}

func formatFloat(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
