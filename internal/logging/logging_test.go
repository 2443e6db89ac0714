package logging

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	for _, format := range []string{"", "console", "json"} {
		logger, err := New("warn", format)
		require.NoError(t, err, format)
		require.False(t, logger.Desugar().Core().Enabled(zapcore.InfoLevel))
		require.True(t, logger.Desugar().Core().Enabled(zapcore.WarnLevel))
	}
}

func TestNewRejectsBadInput(t *testing.T) {
	_, err := New("loud", "console")
	require.Error(t, err)

	_, err = New("info", "xml")
	require.Error(t, err)
}
