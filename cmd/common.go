package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"

	"github.com/helmcode/claimsafe/pkg/analyzer"
	"github.com/helmcode/claimsafe/pkg/config"
	"github.com/helmcode/claimsafe/pkg/history"
	"github.com/helmcode/claimsafe/pkg/resilience"
	"github.com/helmcode/claimsafe/pkg/scoring"
)

// appConfig is set by Setup before any subcommand runs.
var appConfig *config.Config

// Setup loads configuration and installs the logger. A non-empty baseURL
// overrides service.base_url.
func Setup(configPath, baseURL string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if baseURL != "" {
		cfg.Service.BaseURL = baseURL
	}
	if err := config.InitLogger(cfg.Log); err != nil {
		return err
	}
	appConfig = cfg
	return nil
}

func currentConfig() *config.Config {
	if appConfig == nil {
		// Subcommands built outside the root command, as in tests.
		cfg, err := config.Load("")
		if err != nil {
			cfg = &config.Config{}
		}
		appConfig = cfg
	}
	return appConfig
}

func newAnalyzer() *analyzer.Analyzer {
	cfg := currentConfig()

	opts := []scoring.Option{}
	if cfg.Service.TimeoutSecs > 0 {
		opts = append(opts, scoring.WithTimeout(time.Duration(cfg.Service.TimeoutSecs)*time.Second))
	}
	if cfg.Service.RateLimit > 0 {
		opts = append(opts, scoring.WithRateLimit(cfg.Service.RateLimit, 1))
	}
	client := scoring.NewClient(cfg.Service.BaseURL, opts...)

	retry := resilience.FromMillis(cfg.Retry.MaxAttempts, cfg.Retry.InitialBackoffMs, cfg.Retry.MaxBackoffMs)
	return analyzer.New(client, analyzer.WithRetry(retry))
}

func openHistory(ctx context.Context) (*history.Store, error) {
	return history.Open(ctx, currentConfig().History.Path)
}

func newSpinner(suffix string) *spinner.Spinner {
	s := spinner.New(spinner.CharSets[11], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
	s.Suffix = " " + suffix
	return s
}

func printSuccess(w io.Writer, msg string) {
	green := color.New(color.FgGreen)
	green.Fprintf(w, "✓ %s\n", msg)
}

func printWarning(w io.Writer, msg string) {
	yellow := color.New(color.FgYellow)
	yellow.Fprintf(w, "⚠️  %s\n", msg)
}

func printError(w io.Writer, msg string) {
	red := color.New(color.FgRed)
	red.Fprintf(w, "✗ %s\n", msg)
}

// describeFailure turns an analysis error into the message shown to users.
func describeFailure(err error) string {
	switch analyzer.KindOf(err) {
	case analyzer.KindValidation:
		return err.Error()
	case analyzer.KindContract:
		return fmt.Sprintf("the scoring service sent an invalid response (%v)", err)
	case analyzer.KindTransport:
		if analyzer.Retryable(err) {
			return fmt.Sprintf("could not reach the scoring service, try again shortly (%v)", err)
		}
		return fmt.Sprintf("the scoring service rejected the request (%v)", err)
	default:
		return err.Error()
	}
}
