package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/helmcode/claimsafe/pkg/wizard"
)

var (
	wizardOutputFormat string
	wizardGuide        bool
	wizardSave         bool
)

func NewWizardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wizard",
		Short: "Check a claim step by step",
		Long: `Walk through policy upload, claim details and the risk report
interactively. From the report you can edit the claim, start over or quit.`,
		Args: cobra.NoArgs,
		RunE: runWizard,
	}

	cmd.Flags().StringVarP(&wizardOutputFormat, "output", "o", "human", "Report format (human, json, yaml)")
	cmd.Flags().BoolVar(&wizardGuide, "guide", true, "Show rejection reasons, coverage notes and the document checklist with each report")
	cmd.Flags().BoolVar(&wizardSave, "save", false, "Save every assessment to local history")

	return cmd
}

func runWizard(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg := wizard.Config{
		In:       cmd.InOrStdin(),
		Out:      cmd.OutOrStdout(),
		Analyzer: newAnalyzer(),
		Progress: wizard.NewSpinner(os.Stderr),
		Format:   wizardOutputFormat,
		Guide:    wizardGuide,
	}

	if wizardSave {
		store, err := openHistory(ctx)
		if err != nil {
			return err
		}
		defer store.Close()
		cfg.History = store
	}

	return wizard.New(cfg).Run(ctx)
}
