package render

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{in: "json", want: Structured},
		{in: "JSON", want: Structured},
		{in: " table\n", want: Tabular},
		{in: "Table", want: Tabular},
		{in: "1", want: Structured},
		{in: "2", want: Tabular},
		{in: "xml", wantErr: true},
		{in: "", wantErr: true},
		{in: "3", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidSelection)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestFormatString(t *testing.T) {
	require.Equal(t, "json", Structured.String())
	require.Equal(t, "table", Tabular.String())
	require.Equal(t, "Format(7)", Format(7).String())
}

func TestPromptFormat(t *testing.T) {
	logger, obs := observed()
	var out bytes.Buffer

	f, err := PromptFormat(strings.NewReader("table\n"), &out, logger)
	require.NoError(t, err)
	require.Equal(t, Tabular, f)
	require.Contains(t, out.String(), "Choose output format")

	f, err = PromptFormat(strings.NewReader("2"), &out, logger)
	require.NoError(t, err)
	require.Equal(t, Tabular, f)

	_, err = PromptFormat(strings.NewReader("yaml\n"), &out, logger)
	require.ErrorIs(t, err, ErrInvalidSelection)
	require.Zero(t, obs.Len())
}

type brokenReader struct{}

func (brokenReader) Read([]byte) (int, error) { return 0, errors.New("tty gone") }

func TestPromptFormatReadFailureDefaultsToJSON(t *testing.T) {
	logger, obs := observed()

	f, err := PromptFormat(brokenReader{}, &bytes.Buffer{}, logger)
	require.NoError(t, err)
	require.Equal(t, Structured, f)

	f, err = PromptFormat(strings.NewReader(""), &bytes.Buffer{}, logger)
	require.NoError(t, err)
	require.Equal(t, Structured, f)
	require.Equal(t, 2, obs.Len())
}

func TestFor(t *testing.T) {
	r, err := For(Structured, nil)
	require.NoError(t, err)
	require.IsType(t, &JSON{}, r)

	r, err = For(Tabular, nil)
	require.NoError(t, err)
	require.IsType(t, &Table{}, r)

	_, err = For(Format(9), nil)
	require.ErrorIs(t, err, ErrInvalidSelection)
}
