package cmd

import (
	"fmt"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/helmcode/claimsafe/pkg/analyzer"
	"github.com/helmcode/claimsafe/pkg/formatter"
	"github.com/helmcode/claimsafe/pkg/watch"
)

var (
	watchOutputFormat string
	watchGuide        bool
)

func NewWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch CLAIM.yaml [CLAIM.yaml...]",
		Short: "Re-analyze claim files whenever they change",
		Long: `Analyze each claim file now and again every time it is saved. A save
made while an earlier analysis is still running supersedes it; only the
newest result is shown.

Examples:
  claimsafe watch claim.yaml
  claimsafe watch mother.yaml father.yaml -o json`,
		Args: cobra.MinimumNArgs(1),
		RunE: runWatch,
	}

	cmd.Flags().StringVarP(&watchOutputFormat, "output", "o", "human", "Output format (human, json, yaml)")
	cmd.Flags().BoolVar(&watchGuide, "guide", false, "Append the reference guide to each report")

	return cmd
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	out := cmd.OutOrStdout()
	debounce := time.Duration(currentConfig().Watch.DebounceMs) * time.Millisecond
	a := newAnalyzer()

	// Watchers render from their own goroutines.
	var mu sync.Mutex
	render := func(path string) watch.RenderFunc {
		return func(o analyzer.Outcome) {
			mu.Lock()
			defer mu.Unlock()

			color.New(color.FgCyan, color.Bold).Fprintf(out, "\n👀 %s  %s\n", path, time.Now().Format("15:04:05"))
			if o.Err != nil {
				printError(out, describeFailure(o.Err))
				return
			}
			in := o.Input
			report := formatter.NewReport(o.PolicyID, &in, *o.Result)
			if err := formatter.DisplayResults(out, report, watchOutputFormat, formatter.Options{Guide: watchGuide}); err != nil {
				printError(out, err.Error())
			}
		}
	}

	g, ctx := errgroup.WithContext(ctx)
	for _, path := range args {
		w, err := watch.New(path, debounce, a, render(path))
		if err != nil {
			return err
		}
		g.Go(func() error {
			return w.Run(ctx)
		})
	}

	printSuccess(cmd.ErrOrStderr(), fmt.Sprintf("Watching %d file(s), press Ctrl+C to stop", len(args)))
	return g.Wait()
}
