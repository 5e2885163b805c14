package main

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"spellesp/internal/journal"
	"spellesp/internal/project"
)

var historyCmd = &cobra.Command{
	Use:          "history",
	Short:        "Show recently accepted words",
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         runHistory,
}

func init() {
	historyCmd.Flags().Int("limit", 20, "number of entries to show (0 for all)")
}

func runHistory(cmd *cobra.Command, _ []string) error {
	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return err
	}
	if limit < 0 {
		return fmt.Errorf("--limit must not be negative")
	}
	settings, err := project.Resolve(".")
	if err != nil {
		return err
	}
	j, err := journalFor(cmd, settings, "")
	if err != nil {
		return err
	}
	if j == nil {
		return fmt.Errorf("journal is disabled")
	}
	entries, err := j.Entries()
	if err != nil {
		return err
	}
	if limit > 0 && len(entries) > limit {
		entries = entries[len(entries)-limit:]
	}
	writeHistory(cmd.OutOrStdout(), entries)
	return nil
}

func writeHistory(out io.Writer, entries []journal.Entry) {
	if len(entries) == 0 {
		fmt.Fprintln(out, "no words recorded yet")
		return
	}
	wordWidth := len("WORD")
	for _, e := range entries {
		wordWidth = max(wordWidth, runewidth.StringWidth(e.Word))
	}
	header := color.New(color.Bold)
	fmt.Fprintln(out, header.Sprintf("%-20s  %-4s  %-5s  %s  %s", "WHEN", "FROM", "STATE",
		runewidth.FillRight("WORD", wordWidth), "FILE"))
	for _, e := range entries {
		state := "added"
		if !e.Added {
			state = "kept"
		}
		fmt.Fprintf(out, "%-20s  %-4s  %-5s  %s  %s\n",
			e.At.Local().Format(time.DateTime),
			e.Source,
			state,
			runewidth.FillRight(e.Word, wordWidth),
			e.Path)
	}
}
