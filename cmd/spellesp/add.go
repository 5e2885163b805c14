package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"spellesp/internal/action"
	"spellesp/internal/dispatch"
	"spellesp/internal/journal"
	"spellesp/internal/project"
)

// maxParallelRoots bounds concurrent word-list updates across roots.
const maxParallelRoots = 4

var addCmd = &cobra.Command{
	Use:          "add <word>...",
	Short:        "Add words to the project word list",
	Args:         cobra.MinimumNArgs(1),
	SilenceUsage: true,
	RunE:         runAdd,
}

func init() {
	addCmd.Flags().StringSlice("root", nil, "project directory (repeatable, default: working directory)")
}

type addReport struct {
	root     string
	outcomes []dispatch.Outcome
}

func runAdd(cmd *cobra.Command, words []string) error {
	roots, err := cmd.Flags().GetStringSlice("root")
	if err != nil {
		return err
	}
	if len(roots) == 0 {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to read working directory: %w", err)
		}
		roots = []string{cwd}
	}
	logger, _, err := newLogger(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	args := make([][]json.RawMessage, 0, len(words))
	for _, w := range words {
		raw, err := json.Marshal(w)
		if err != nil {
			return err
		}
		args = append(args, []json.RawMessage{raw})
	}

	targets, err := resolveTargets(roots)
	if err != nil {
		return err
	}

	// roots sharing a journal file share one journal so its rewrites stay serialized
	journals := make(map[string]*journal.Journal)
	dispatchers := make([]*dispatch.Dispatcher, len(targets))
	for i, settings := range targets {
		j, err := journalFor(cmd, settings, "cli")
		if err != nil {
			return err
		}
		if j != nil {
			if shared, ok := journals[j.Path()]; ok {
				j = shared
			} else {
				journals[j.Path()] = j
			}
		}
		dispatchers[i] = dispatcherFor(settings, j, logger)
	}

	// each target owns a separate file; words within one target are applied in order
	reports := make([]addReport, len(targets))
	g, _ := errgroup.WithContext(cmd.Context())
	g.SetLimit(maxParallelRoots)
	for i, settings := range targets {
		i, settings := i, settings
		d := dispatchers[i]
		g.Go(func() error {
			report := addReport{root: settings.Root}
			for _, a := range args {
				outcome, err := d.Dispatch(action.IgnoreSpellingCommand, a)
				if err != nil {
					return err
				}
				report.outcomes = append(report.outcomes, outcome)
			}
			reports[i] = report
			return nil
		})
	}
	err = g.Wait()
	printAddReports(cmd.OutOrStdout(), reports)
	return err
}

// resolveTargets resolves each root, dropping roots that share a word list.
func resolveTargets(roots []string) ([]project.Settings, error) {
	seen := make(map[string]struct{}, len(roots))
	out := make([]project.Settings, 0, len(roots))
	for _, root := range roots {
		settings, err := project.Resolve(root)
		if err != nil {
			return nil, err
		}
		path := settings.Store().Path()
		if _, ok := seen[path]; ok {
			continue
		}
		seen[path] = struct{}{}
		out = append(out, settings)
	}
	return out, nil
}

func printAddReports(out io.Writer, reports []addReport) {
	added := color.New(color.FgGreen)
	present := color.New(color.Faint)
	for _, r := range reports {
		for _, o := range r.outcomes {
			if o.Added {
				fmt.Fprintf(out, "%s %s → %s\n", added.Sprint("added"), o.Word, o.Path)
				continue
			}
			fmt.Fprintf(out, "%s %s (already in %s)\n", present.Sprint("kept "), o.Word, o.Path)
		}
	}
}
