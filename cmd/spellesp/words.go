package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
	"golang.org/x/term"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"spellesp/internal/project"
)

const (
	defaultWidth = 80
	columnGap    = 2
)

var wordsCmd = &cobra.Command{
	Use:          "words",
	Short:        "Print the project word list",
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         runWords,
}

func init() {
	wordsCmd.Flags().String("root", "", "project directory (default: working directory)")
	wordsCmd.Flags().Bool("sort", false, "sort words alphabetically")
	wordsCmd.Flags().String("lang", "en", "collation language for --sort")
	wordsCmd.Flags().Bool("one", false, "print one word per line")
}

func runWords(cmd *cobra.Command, _ []string) error {
	flags := cmd.Flags()
	root, _ := flags.GetString("root")
	sorted, _ := flags.GetBool("sort")
	lang, _ := flags.GetString("lang")
	one, _ := flags.GetBool("one")
	if root == "" {
		root = "."
	}
	settings, err := project.Resolve(root)
	if err != nil {
		return err
	}
	words, err := settings.Store().Words()
	if err != nil {
		return err
	}
	if sorted {
		tag, err := language.Parse(lang)
		if err != nil {
			return fmt.Errorf("invalid --lang %q: %w", lang, err)
		}
		collate.New(tag, collate.IgnoreCase).SortStrings(words)
	}
	out := cmd.OutOrStdout()
	if one || !isTerminal(os.Stdout) {
		for _, w := range words {
			fmt.Fprintln(out, w)
		}
		return nil
	}
	width := defaultWidth
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		width = w
	}
	writeColumns(out, words, width)
	return nil
}

// writeColumns lays words out column-major in as many columns as fit in width,
// measuring display width so wide runes stay aligned.
func writeColumns(out io.Writer, words []string, width int) {
	if len(words) == 0 {
		return
	}
	cell := 0
	for _, w := range words {
		cell = max(cell, runewidth.StringWidth(w))
	}
	cell += columnGap
	cols := max(1, width/cell)
	rows := (len(words) + cols - 1) / cols
	var b strings.Builder
	for r := 0; r < rows; r++ {
		b.Reset()
		for c := 0; c < cols; c++ {
			i := c*rows + r
			if i >= len(words) {
				break
			}
			last := c == cols-1 || (c+1)*rows+r >= len(words)
			if last {
				b.WriteString(words[i])
				continue
			}
			b.WriteString(runewidth.FillRight(words[i], cell))
		}
		fmt.Fprintln(out, b.String())
	}
}
