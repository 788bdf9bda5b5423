// Package analyzer runs a claim through the scoring service: validate,
// send with retries, normalise the reply.
package analyzer

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/helmcode/claimsafe/pkg/claim"
	"github.com/helmcode/claimsafe/pkg/model"
	"github.com/helmcode/claimsafe/pkg/parser"
	"github.com/helmcode/claimsafe/pkg/resilience"
	"github.com/helmcode/claimsafe/pkg/scoring"
)

type Analyzer struct {
	svc   scoring.Service
	retry resilience.RetryConfig
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithRetry sets the retry policy for transport failures.
func WithRetry(cfg resilience.RetryConfig) Option {
	return func(a *Analyzer) {
		a.retry = cfg
	}
}

func New(svc scoring.Service, opts ...Option) *Analyzer {
	a := &Analyzer{svc: svc, retry: resilience.DefaultRetryConfig()}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze validates the form and scores it. Validation errors are returned
// before anything is sent.
func (a *Analyzer) Analyze(ctx context.Context, f claim.Form, policyID string) (*model.RiskAssessmentResult, error) {
	req, err := claim.BuildRequest(f, policyID)
	if err != nil {
		return nil, err
	}
	return a.send(ctx, req)
}

// AnalyzeInput scores an already validated claim.
func (a *Analyzer) AnalyzeInput(ctx context.Context, in model.ClaimInput, policyID string) (*model.RiskAssessmentResult, error) {
	return a.send(ctx, claim.RequestFor(in, policyID))
}

func (a *Analyzer) send(ctx context.Context, req model.AnalyzeRequest) (*model.RiskAssessmentResult, error) {
	cfg := a.retry
	cfg.OnRetry = resilience.RetryLogger("scoring", "analyze")

	raw, err := resilience.DoVal(ctx, cfg, func(ctx context.Context) ([]byte, error) {
		return a.svc.Analyze(ctx, req)
	})
	if err != nil {
		return nil, fmt.Errorf("analyze claim: %w", err)
	}

	result, err := parser.ParseAnalyzeResponse(raw)
	if err != nil {
		zap.L().Error("scoring service reply rejected",
			zap.String("policy_id", req.PolicyID),
			zap.Error(err),
		)
		return nil, err
	}

	zap.L().Debug("claim scored",
		zap.String("policy_id", req.PolicyID),
		zap.Int("risk_score", result.RiskScore),
		zap.Int("risk_factors", len(result.RiskFactors)),
	)
	return result, nil
}

// UploadPolicy sends a policy PDF and returns its id. A reply without an id
// yields the sentinel; only transport failures are errors.
func (a *Analyzer) UploadPolicy(ctx context.Context, name string, pdf []byte) (string, error) {
	if err := claim.CheckPDF(name, pdf); err != nil {
		return "", err
	}

	cfg := a.retry
	cfg.OnRetry = resilience.RetryLogger("scoring", "upload")

	raw, err := resilience.DoVal(ctx, cfg, func(ctx context.Context) ([]byte, error) {
		return a.svc.UploadPolicy(ctx, name, pdf)
	})
	if err != nil {
		return "", fmt.Errorf("upload policy: %w", err)
	}

	id, extracted := parser.ParseUploadResponse(raw)
	if !extracted {
		zap.L().Warn("no policy id in upload reply, using default policy",
			zap.String("file", name),
			zap.String("policy_id", id),
		)
	}
	return id, nil
}
