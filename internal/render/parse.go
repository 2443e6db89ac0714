package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/vesaa/sysmon/internal/models"
)

type wireDocument struct {
	Timestamp string          `json:"timestamp"`
	CPU       json.RawMessage `json:"cpu"`
	Memory    struct {
		Memory *struct {
			Total     uint64  `json:"total"`
			Available uint64  `json:"available"`
			Used      uint64  `json:"used"`
			Percent   float64 `json:"percent"`
		} `json:"Memory"`
		Swap *struct {
			Total   uint64  `json:"total"`
			Used    uint64  `json:"used"`
			Free    uint64  `json:"free"`
			Percent float64 `json:"percent"`
		} `json:"Swap"`
	} `json:"memory"`
	Disk struct {
		Usage json.RawMessage `json:"Disk Usage"`
	} `json:"disk"`
	Network map[string]uint64 `json:"network"`
}

type wireCore struct {
	User   float64 `json:"user"`
	System float64 `json:"system"`
	Idle   float64 `json:"idle"`
}

type wireVolume struct {
	Device  string  `json:"device"`
	FSType  string  `json:"fstype"`
	Opts    string  `json:"opts"`
	Total   uint64  `json:"total"`
	Used    uint64  `json:"used"`
	Free    uint64  `json:"free"`
	Percent float64 `json:"percent"`
}

// ParseJSON decodes a document produced by the JSON renderer back into a
// Snapshot. Disk entries keep document order; cores are ordered by number.
func ParseJSON(data []byte) (models.Snapshot, error) {
	var doc wireDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return models.Snapshot{}, fmt.Errorf("decoding document: %w", err)
	}

	var snap models.Snapshot
	ts, err := time.Parse(time.RFC3339Nano, doc.Timestamp)
	if err != nil {
		return models.Snapshot{}, fmt.Errorf("parsing timestamp: %w", err)
	}
	snap.Timestamp = ts

	if snap.CPU, err = parseCores(doc.CPU); err != nil {
		return models.Snapshot{}, err
	}

	if m := doc.Memory.Memory; m != nil {
		snap.Memory = &models.MemoryMetrics{Total: m.Total, Available: m.Available, Used: m.Used, Percent: m.Percent}
	}
	if s := doc.Memory.Swap; s != nil {
		snap.Swap = &models.SwapMetrics{Total: s.Total, Used: s.Used, Free: s.Free, Percent: s.Percent}
	}

	if snap.Disks, err = parseDisks(doc.Disk.Usage); err != nil {
		return models.Snapshot{}, err
	}

	if len(doc.Network) > 0 {
		snap.Network = &models.NetworkMetrics{
			BytesSent:   doc.Network["Bytes Sent"],
			BytesRecv:   doc.Network["Bytes Received"],
			PacketsSent: doc.Network["Packets Sent"],
			PacketsRecv: doc.Network["Packets Received"],
		}
	}
	return snap, nil
}

func parseCores(raw json.RawMessage) ([]models.CPUCoreMetrics, error) {
	keys, values, err := members(raw)
	if err != nil {
		return nil, fmt.Errorf("decoding cpu: %w", err)
	}
	cores := make([]models.CPUCoreMetrics, 0, len(keys))
	for _, k := range keys {
		id, err := strconv.Atoi(strings.TrimPrefix(k, "cpu"))
		if err != nil || !strings.HasPrefix(k, "cpu") {
			return nil, fmt.Errorf("decoding cpu: bad core key %q", k)
		}
		var w wireCore
		if err := json.Unmarshal(values[k], &w); err != nil {
			return nil, fmt.Errorf("decoding %s: %w", k, err)
		}
		core, err := models.NewCPUCoreMetrics(id, w.User, w.System, w.Idle)
		if err != nil {
			return nil, err
		}
		cores = append(cores, core)
	}
	sort.SliceStable(cores, func(i, j int) bool { return cores[i].CoreID < cores[j].CoreID })
	return cores, nil
}

func parseDisks(raw json.RawMessage) (models.DiskUsage, error) {
	var disks models.DiskUsage
	keys, values, err := members(raw)
	if err != nil {
		return disks, fmt.Errorf("decoding disk usage: %w", err)
	}
	for _, k := range keys {
		var w wireVolume
		if err := json.Unmarshal(values[k], &w); err != nil {
			return disks, fmt.Errorf("decoding disk %s: %w", k, err)
		}
		v, err := models.NewDiskVolumeMetrics(k, w.Device, w.FSType, w.Opts, w.Total, w.Used, w.Free, w.Percent)
		if err != nil {
			return disks, err
		}
		disks.Add(v)
	}
	return disks, nil
}

// members returns the keys of a JSON object in document order along with
// their raw values. An absent or null value yields no members.
func members(raw json.RawMessage) ([]string, map[string]json.RawMessage, error) {
	values := map[string]json.RawMessage{}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, values, nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return nil, nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, nil, fmt.Errorf("expected object, got %v", tok)
	}

	var keys []string
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, nil, fmt.Errorf("expected key, got %v", tok)
		}
		var v json.RawMessage
		if err := dec.Decode(&v); err != nil {
			return nil, nil, err
		}
		if _, dup := values[key]; !dup {
			keys = append(keys, key)
		}
		values[key] = v
	}
	return keys, values, nil
}
