package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"spellesp/internal/dispatch"
	"spellesp/internal/journal"
	"spellesp/internal/logging"
	"spellesp/internal/project"
)

const appName = "spellesp"

// isTerminal reports whether f is attached to a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

func configureColor(cmd *cobra.Command) error {
	mode, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return fmt.Errorf("failed to get color flag: %w", err)
	}
	switch strings.ToLower(mode) {
	case "auto":
		color.NoColor = !isTerminal(os.Stdout)
	case "on":
		color.NoColor = false
	case "off":
		color.NoColor = true
	default:
		return fmt.Errorf("unsupported color mode %q (must be auto, on or off)", mode)
	}
	return nil
}

func newLogger(cmd *cobra.Command) (*zap.Logger, zap.AtomicLevel, error) {
	flags := cmd.Root().PersistentFlags()
	level, err := flags.GetString("log-level")
	if err != nil {
		return nil, zap.AtomicLevel{}, fmt.Errorf("failed to get log-level flag: %w", err)
	}
	format, err := flags.GetString("log-format")
	if err != nil {
		return nil, zap.AtomicLevel{}, fmt.Errorf("failed to get log-format flag: %w", err)
	}
	return logging.New(cmd.ErrOrStderr(), logging.Config{Level: level, Format: format})
}

// journalFor returns the journal for settings, or nil when journaling is off.
// The --journal flag wins over [journal].path, which wins over the default location.
func journalFor(cmd *cobra.Command, settings project.Settings, source string) (*journal.Journal, error) {
	flags := cmd.Root().PersistentFlags()
	disabled, err := flags.GetBool("no-journal")
	if err != nil {
		return nil, fmt.Errorf("failed to get no-journal flag: %w", err)
	}
	if disabled || !settings.Config.JournalEnabled() {
		return nil, nil
	}
	path, err := flags.GetString("journal")
	if err != nil {
		return nil, fmt.Errorf("failed to get journal flag: %w", err)
	}
	if path == "" && settings.Config.Journal.Path != "" {
		path = settings.Config.Journal.Path
		if !filepath.IsAbs(path) {
			path = filepath.Join(settings.Root, path)
		}
	}
	if path == "" {
		if path, err = journal.DefaultPath(appName); err != nil {
			return nil, fmt.Errorf("failed to locate journal: %w", err)
		}
	}
	return journal.New(path, journal.WithLimit(settings.Config.Journal.Limit), journal.WithSource(source)), nil
}

// newDispatcher wires the word list of settings, plus the journal when enabled.
func newDispatcher(cmd *cobra.Command, settings project.Settings, source string, logger *zap.Logger) (*dispatch.Dispatcher, error) {
	j, err := journalFor(cmd, settings, source)
	if err != nil {
		return nil, err
	}
	return dispatcherFor(settings, j, logger), nil
}

func dispatcherFor(settings project.Settings, j *journal.Journal, logger *zap.Logger) *dispatch.Dispatcher {
	opts := []dispatch.Option{dispatch.WithLogger(logger)}
	if j != nil {
		opts = append(opts, dispatch.WithRecorder(j))
	}
	return dispatch.New(settings.Store(), opts...)
}
