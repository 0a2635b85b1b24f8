// Package logger builds the zap logger used by the watson command. Library
// packages take a *zap.SugaredLogger in their options and never build one.
package logger

import (
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/cognicore/watson/pkg/watson/internalerr"
)

// New returns a JSON logger for machine consumption or a console logger for
// people. Both write to stderr so answers on stdout stay clean. An empty
// level means info.
func New(jsonOutput bool, level string) (*zap.SugaredLogger, error) {
	lvl, err := parseLevel(level)
	if err != nil {
		return nil, err
	}

	if jsonOutput {
		config := zap.NewProductionConfig()
		config.Level = zap.NewAtomicLevelAt(lvl)
		config.OutputPaths = []string{"stderr"}
		config.ErrorOutputPaths = []string{"stderr"}
		zapLogger, err := config.Build()
		if err != nil {
			return nil, err
		}
		return zapLogger.Sugar(), nil
	}

	encoderConfig := zap.NewDevelopmentEncoderConfig()
	encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	encoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		zapcore.AddSync(os.Stderr),
		lvl,
	)
	return zap.New(core).Sugar(), nil
}

func parseLevel(level string) (zapcore.Level, error) {
	level = strings.TrimSpace(level)
	if level == "" {
		return zap.InfoLevel, nil
	}
	lvl, err := zapcore.ParseLevel(strings.ToLower(level))
	if err != nil {
		return zap.InfoLevel, internalerr.Wrapf(internalerr.ErrInvalidConfig, "log level %q", level)
	}
	return lvl, nil
}
