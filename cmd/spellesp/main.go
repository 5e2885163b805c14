package main

import (
	"os"

	"github.com/spf13/cobra"

	"spellesp/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "spellesp",
	Short: "Spell-check code actions for language server clients",
	Long: `spellesp turns "Unknown word" spell-check diagnostics into an
"Add to Dictionary" code action that records the word in .cspell.json.`,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		return configureColor(cmd)
	},
}

func init() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(lspCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(wordsCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().String("log-level", "warn", "log level (debug|info|warn|error)")
	rootCmd.PersistentFlags().String("log-format", "console", "log format (console|json)")
	rootCmd.PersistentFlags().Bool("no-journal", false, "do not record accepted words in the journal")
	rootCmd.PersistentFlags().String("journal", "", "journal file (default $XDG_STATE_HOME/spellesp/journal.mp)")
}

// main executes the root command. If command execution returns an error, the
// process exits with status code 1.
func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
