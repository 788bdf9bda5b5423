package cmd

import (
	"github.com/spf13/cobra"

	"github.com/helmcode/claimsafe/pkg/formatter"
)

func NewGuideCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "guide",
		Short: "Show common rejection reasons, coverage limits and required documents",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			formatter.DisplayGuide(cmd.OutOrStdout())
		},
	}
}
