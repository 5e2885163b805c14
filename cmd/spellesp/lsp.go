package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"spellesp/internal/dispatch"
	"spellesp/internal/lsp"
	"spellesp/internal/project"
	"spellesp/internal/version"
)

var lspCmd = &cobra.Command{
	Use:          "lsp",
	Short:        "Run the spellesp language server over stdio",
	SilenceUsage: true,
	RunE:         runLSP,
}

func init() {
	lspCmd.Flags().String("root", "", "directory holding the word list (default: client workspace root)")
	lspCmd.Flags().Bool("trace", false, "log every request")
}

func runLSP(cmd *cobra.Command, _ []string) error {
	root, err := cmd.Flags().GetString("root")
	if err != nil {
		return err
	}
	trace, err := cmd.Flags().GetBool("trace")
	if err != nil {
		return err
	}
	logger, level, err := newLogger(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	cwd, err := os.Getwd()
	if err != nil {
		logger.Warn("failed to read working directory", zap.Error(err))
	}

	server := lsp.NewServer(os.Stdin, os.Stdout, lsp.ServerOptions{
		Root:         root,
		FallbackRoot: cwd,
		Logger:       logger,
		Level:        &level,
		Trace:        trace,
		Version:      version.Version,
		Dispatcher: func(settings project.Settings) *dispatch.Dispatcher {
			d, err := newDispatcher(cmd, settings, "lsp", logger)
			if err != nil {
				logger.Warn("journal disabled", zap.Error(err))
				return dispatch.New(settings.Store(), dispatch.WithLogger(logger))
			}
			return d
		},
	})
	if err := server.Run(cmd.Context()); err != nil {
		if errors.Is(err, lsp.ErrExit) {
			return nil
		}
		if errors.Is(err, lsp.ErrExitWithoutShutdown) {
			return fmt.Errorf("lsp exit without shutdown")
		}
		return err
	}
	return nil
}
