package analyzer

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helmcode/claimsafe/pkg/model"
)

func TestSequencer(t *testing.T) {
	var s Sequencer
	assert.False(t, s.Current(0))

	g1 := s.Next()
	assert.True(t, s.Current(g1))

	g2 := s.Next()
	assert.Greater(t, g2, g1)
	assert.False(t, s.Current(g1))
	assert.True(t, s.Current(g2))
}

func TestRunner_LastSubmissionWins(t *testing.T) {
	svc := &fakeService{analyzeFn: func(ctx context.Context, req model.AnalyzeRequest) ([]byte, error) {
		if req.TreatmentType == "slow" {
			// Reply late, as if the network lagged, unless superseded.
			select {
			case <-time.After(200 * time.Millisecond):
			case <-ctx.Done():
			}
			return []byte(`{"risk_score": 90}`), nil
		}
		return []byte(`{"risk_score": 10}`), nil
	}}

	r := NewRunner(New(svc, WithRetry(fastRetry())))
	defer r.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	first := r.Submit(ctx, model.ClaimInput{TreatmentType: "slow"}, "p")
	second := r.Submit(ctx, model.ClaimInput{TreatmentType: "fast"}, "p")
	require.Greater(t, second, first)

	var accepted *Outcome
	for accepted == nil {
		select {
		case o := <-r.Outcomes():
			if r.Accept(o) {
				accepted = &o
			}
		case <-ctx.Done():
			t.Fatal("timed out waiting for outcomes")
		}
	}

	assert.Equal(t, second, accepted.Generation)
	require.NoError(t, accepted.Err)
	assert.Equal(t, 10, accepted.Result.RiskScore)

	// The superseded slow reply never replaces the accepted one.
	select {
	case o := <-r.Outcomes():
		assert.False(t, r.Accept(o))
	case <-time.After(300 * time.Millisecond):
	}
}

func TestRunner_StaleOutcomeAfterNewSubmit(t *testing.T) {
	svc := &fakeService{analyzeFn: func(_ context.Context, _ model.AnalyzeRequest) ([]byte, error) {
		return []byte(`{"risk_score": 40}`), nil
	}}
	r := NewRunner(New(svc))
	defer r.Stop()

	ctx := context.Background()
	gen := r.Submit(ctx, model.ClaimInput{}, "p")
	o := <-r.Outcomes()
	assert.Equal(t, gen, o.Generation)

	r.Submit(ctx, model.ClaimInput{}, "p")
	assert.False(t, r.Accept(o), "an older outcome must not replace newer state")
	<-r.Outcomes()
}

func TestRunner_StopMakesPendingStale(t *testing.T) {
	release := make(chan struct{})
	svc := &fakeService{analyzeFn: func(_ context.Context, _ model.AnalyzeRequest) ([]byte, error) {
		<-release
		return []byte(`{"risk_score": 40}`), nil
	}}
	r := NewRunner(New(svc))

	r.Submit(context.Background(), model.ClaimInput{}, "p")
	r.Stop()
	close(release)

	select {
	case o := <-r.Outcomes():
		assert.False(t, r.Accept(o))
	case <-time.After(200 * time.Millisecond):
	}
}

func TestRunner_SupersededWorkersDoNotFillBuffer(t *testing.T) {
	release := make(chan struct{})
	var finished atomic.Int32
	svc := &fakeService{analyzeFn: func(_ context.Context, req model.AnalyzeRequest) ([]byte, error) {
		<-release
		finished.Add(1)
		return []byte(`{"risk_score": 40}`), nil
	}}
	r := NewRunner(New(svc))
	defer r.Stop()

	ctx := context.Background()
	const submissions = 10
	var last uint64
	for i := 0; i < submissions; i++ {
		last = r.Submit(ctx, model.ClaimInput{}, "p")
	}
	close(release)

	require.Eventually(t, func() bool { return finished.Load() == submissions }, 2*time.Second, 5*time.Millisecond)

	o := <-r.Outcomes()
	assert.Equal(t, last, o.Generation)
	assert.True(t, r.Accept(o))

	// Only the latest submission was delivered; nothing stale is queued
	// behind it and no worker is left blocked on a full buffer.
	assert.Eventually(t, func() bool { return len(r.Outcomes()) == 0 }, time.Second, 5*time.Millisecond)
	select {
	case extra := <-r.Outcomes():
		t.Fatalf("unexpected outcome for generation %d", extra.Generation)
	case <-time.After(100 * time.Millisecond):
	}

	r.Submit(ctx, model.ClaimInput{}, "p")
	o = <-r.Outcomes()
	assert.True(t, r.Accept(o))
}
