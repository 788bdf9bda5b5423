package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/helmcode/claimsafe/cmd"
)

var (
	version = "v0.1.0" // Overwritten at build time
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath, baseURL string

	rootCmd := &cobra.Command{
		Use:   "claimsafe",
		Short: "Check health insurance claim risk before you file",
		Long: `claimsafe sends a claim to the ClaimSafe scoring service and explains
the result: how likely the claim is to be rejected, why, what supports
approval and what to do before filing.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(c *cobra.Command, args []string) error {
			return cmd.Setup(configPath, baseURL)
		},
		PersistentPostRun: func(c *cobra.Command, args []string) {
			_ = zap.L().Sync()
		},
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: ./claimsafe.yaml or ~/.claimsafe/claimsafe.yaml)")
	rootCmd.PersistentFlags().StringVar(&baseURL, "base-url", "", "Scoring service base URL (overrides service.base_url)")

	// Disable automatic 'completion' command added by cobra
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	// Add subcommands
	rootCmd.AddCommand(
		cmd.NewAnalyzeCmd(),
		cmd.NewWizardCmd(),
		cmd.NewUploadCmd(),
		cmd.NewWatchCmd(),
		cmd.NewHistoryCmd(),
		cmd.NewGuideCmd(),
		newVersionCmd(),
	)

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "claimsafe version %s\n", version)
		},
	}
}
