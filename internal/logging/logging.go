// Package logging builds the process logger. Output goes to stderr because stdout
// carries the language server protocol.
package logging

import (
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config selects the logger level and encoding.
type Config struct {
	// Level is one of debug, info, warn, error.
	Level string
	// Format is "console" or "json".
	Format string
}

// DefaultConfig logs warnings and errors in console format.
func DefaultConfig() Config {
	return Config{Level: "warn", Format: "console"}
}

// Validate reports unsupported level or format values.
func (c Config) Validate() error {
	if _, err := zapcore.ParseLevel(c.level()); err != nil {
		return fmt.Errorf("invalid log level %q", c.Level)
	}
	switch c.format() {
	case "console", "json":
		return nil
	default:
		return fmt.Errorf("invalid log format %q (must be console or json)", c.Format)
	}
}

func (c Config) level() string {
	if c.Level == "" {
		return "warn"
	}
	return strings.ToLower(c.Level)
}

func (c Config) format() string {
	if c.Format == "" {
		return "console"
	}
	return strings.ToLower(c.Format)
}

// New returns a logger writing to w together with its level, which callers may
// raise at runtime.
func New(w io.Writer, cfg Config) (*zap.Logger, zap.AtomicLevel, error) {
	if err := cfg.Validate(); err != nil {
		return nil, zap.AtomicLevel{}, err
	}
	parsed, _ := zapcore.ParseLevel(cfg.level())
	level := zap.NewAtomicLevelAt(parsed)
	core := zapcore.NewCore(newEncoder(cfg.format()), zapcore.AddSync(w), level)
	return zap.New(core).Named("spellesp"), level, nil
}

func newEncoder(format string) zapcore.Encoder {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "ts"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	if format == "console" {
		return zapcore.NewConsoleEncoder(encoderCfg)
	}
	return zapcore.NewJSONEncoder(encoderCfg)
}
