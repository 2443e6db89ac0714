// Package render turns Snapshots into user-facing output: an indented JSON
// document or a set of grid tables.
package render

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/vesaa/sysmon/internal/models"
)

// ErrInvalidSelection is returned when a format choice is not recognized.
var ErrInvalidSelection = errors.New("invalid format selection: enter 'json' or 'table'")

// Format selects a renderer.
type Format int

const (
	Structured Format = iota
	Tabular
)

func (f Format) String() string {
	switch f {
	case Structured:
		return "json"
	case Tabular:
		return "table"
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// ParseFormat accepts "json" or "table" in any case, or the menu
// ordinals "1" and "2".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json", "1":
		return Structured, nil
	case "table", "2":
		return Tabular, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidSelection, s)
}

const menu = "Choose output format (json/table):\n1. JSON\n2. Table\n"

// PromptFormat prints the format menu to w and reads one answer from r.
// When the answer cannot be read the structured format is used.
func PromptFormat(r io.Reader, w io.Writer, logger *zap.SugaredLogger) (Format, error) {
	if _, err := io.WriteString(w, menu); err != nil {
		logger.Warnw("error getting user input, defaulting to JSON output", "error", err)
		return Structured, nil
	}
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || strings.TrimSpace(line) == "") {
		logger.Warnw("error getting user input, defaulting to JSON output", "error", err)
		return Structured, nil
	}
	return ParseFormat(line)
}

// Renderer writes a Snapshot to w.
type Renderer interface {
	Write(w io.Writer, snap models.Snapshot) error
}

// For returns the renderer for f.
func For(f Format, logger *zap.SugaredLogger) (Renderer, error) {
	switch f {
	case Structured:
		return NewJSON(logger), nil
	case Tabular:
		return NewTable(logger), nil
	}
	return nil, fmt.Errorf("%w: %v", ErrInvalidSelection, f)
}
