package analyzer

import (
	"context"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/helmcode/claimsafe/pkg/model"
)

// Sequencer hands out increasing request generations. Only the latest one
// is current; a reply tagged with an older generation is stale.
type Sequencer struct {
	latest atomic.Uint64
}

// Next starts a new generation and returns it.
func (s *Sequencer) Next() uint64 {
	return s.latest.Add(1)
}

// Current reports whether gen is still the newest generation.
func (s *Sequencer) Current(gen uint64) bool {
	return gen != 0 && s.latest.Load() == gen
}

// Outcome is the result of one submitted analysis.
type Outcome struct {
	Generation uint64
	PolicyID   string
	Input      model.ClaimInput
	Result     *model.RiskAssessmentResult
	Err        error
}

// Runner issues analyses in the background so the caller stays responsive.
// Submitting again supersedes the pending analysis: it is cancelled and its
// outcome, if it still arrives, is stale.
type Runner struct {
	analyzer *Analyzer
	seq      Sequencer
	out      chan Outcome

	mu     sync.Mutex
	cancel context.CancelFunc
}

func NewRunner(a *Analyzer) *Runner {
	return &Runner{
		analyzer: a,
		out:      make(chan Outcome, 4),
	}
}

// Outcomes delivers finished analyses. An outcome superseded before it is
// sent is dropped; one superseded after may still arrive, so filter with
// Accept.
func (r *Runner) Outcomes() <-chan Outcome {
	return r.out
}

// Submit starts an analysis of in and returns its generation.
func (r *Runner) Submit(ctx context.Context, in model.ClaimInput, policyID string) uint64 {
	reqCtx, cancel := context.WithCancel(ctx)

	r.mu.Lock()
	if r.cancel != nil {
		r.cancel()
	}
	r.cancel = cancel
	gen := r.seq.Next()
	r.mu.Unlock()

	go func() {
		defer cancel()
		result, err := r.analyzer.AnalyzeInput(reqCtx, in, policyID)
		o := Outcome{Generation: gen, PolicyID: policyID, Input: in, Result: result, Err: err}
		if !r.seq.Current(gen) {
			zap.L().Debug("dropping superseded analysis", zap.Uint64("generation", gen))
			return
		}
		// reqCtx ends when a newer Submit or Stop supersedes this one.
		select {
		case r.out <- o:
		case <-reqCtx.Done():
		}
	}()
	return gen
}

// Accept reports whether o belongs to the latest submission.
func (r *Runner) Accept(o Outcome) bool {
	if r.seq.Current(o.Generation) {
		return true
	}
	zap.L().Debug("discarding stale analysis",
		zap.Uint64("generation", o.Generation),
		zap.Error(o.Err),
	)
	return false
}

// Stop cancels the pending analysis, if any, and marks its outcome stale.
func (r *Runner) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq.Next()
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
}
