package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/helmcode/claimsafe/pkg/formatter"
	"github.com/helmcode/claimsafe/pkg/history"
)

var (
	historyLimit        int
	historyOutputFormat string
	historyGuide        bool
)

func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Browse assessments saved with --save",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List recent assessments, newest first",
		Args:  cobra.NoArgs,
		RunE:  runHistoryList,
	}
	list.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Maximum number of assessments to list")
	list.Flags().StringVarP(&historyOutputFormat, "output", "o", "human", "Output format (human, json, yaml)")

	show := &cobra.Command{
		Use:   "show ID",
		Short: "Show a saved assessment",
		Args:  cobra.ExactArgs(1),
		RunE:  runHistoryShow,
	}
	show.Flags().StringVarP(&historyOutputFormat, "output", "o", "human", "Output format (human, json, yaml)")
	show.Flags().BoolVar(&historyGuide, "guide", false, "Append the reference guide")

	cmd.AddCommand(list, show)
	return cmd
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	store, err := openHistory(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	recs, err := store.List(ctx, historyLimit)
	if err != nil {
		return err
	}
	return formatter.DisplayRecords(cmd.OutOrStdout(), recs, historyOutputFormat)
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	store, err := openHistory(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	rec, err := store.Get(ctx, args[0])
	if errors.Is(err, history.ErrNotFound) {
		return fmt.Errorf("no saved assessment with id %q", args[0])
	}
	if err != nil {
		return err
	}

	// Only inputs and the raw result are stored; the report is derived again.
	report := formatter.NewReport(rec.PolicyID, &rec.Claim, rec.Result)
	return formatter.DisplayResults(cmd.OutOrStdout(), report, historyOutputFormat, formatter.Options{Guide: historyGuide})
}
