package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/cognicore/watson/pkg/watson/internalerr"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name       string
		jsonOutput bool
		level      string
		debug      bool
	}{
		{name: "console default", level: ""},
		{name: "json info", jsonOutput: true, level: "info"},
		{name: "console debug", level: "DEBUG", debug: true},
		{name: "json warn", jsonOutput: true, level: "warn"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := New(tt.jsonOutput, tt.level)
			require.NoError(t, err)
			require.NotNil(t, l)
			assert.Equal(t, tt.debug, l.Desugar().Core().Enabled(zap.DebugLevel))
		})
	}
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	_, err := New(false, "chatty")
	assert.True(t, internalerr.Is(err, internalerr.ErrInvalidConfig))
}
