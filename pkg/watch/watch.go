// Package watch re-analyses a claim file every time it is saved.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/helmcode/claimsafe/pkg/analyzer"
	"github.com/helmcode/claimsafe/pkg/claim"
	"github.com/helmcode/claimsafe/pkg/model"
)

// DefaultDebounce is how long the file must stay quiet before it is read.
const DefaultDebounce = 300 * time.Millisecond

// RenderFunc receives the latest outcome. Outcomes superseded by a later
// save never reach it. File and validation errors arrive with Err set.
type RenderFunc func(analyzer.Outcome)

// Watcher analyses a claim file on start and after each change.
type Watcher struct {
	fs       *fsnotify.Watcher
	path     string
	debounce time.Duration
	runner   *analyzer.Runner
	render   RenderFunc
}

// New watches path. The parent directory is watched so editors that
// replace the file on save are still followed.
func New(path string, debounce time.Duration, a *analyzer.Analyzer, render RenderFunc) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %q: %w", path, err)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("failed to watch %q: %w", path, err)
	}

	return &Watcher{
		fs:       fw,
		path:     abs,
		debounce: debounce,
		runner:   analyzer.NewRunner(a),
		render:   render,
	}, nil
}

// Run blocks until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.fs.Close()
	defer w.runner.Stop()

	w.submit(ctx)

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				timer.Reset(w.debounce)
			}

		case <-timer.C:
			w.submit(ctx)

		case o := <-w.runner.Outcomes():
			if w.runner.Accept(o) {
				w.render(o)
			}

		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			zap.L().Warn("file watcher error", zap.Error(err))
		}
	}
}

func (w *Watcher) submit(ctx context.Context) {
	in, policyID, err := w.load()
	if err != nil {
		// Whatever is still in flight describes an older version of the file.
		w.runner.Stop()
		w.render(analyzer.Outcome{PolicyID: policyID, Err: err})
		return
	}

	gen := w.runner.Submit(ctx, in, policyID)
	zap.L().Debug("analysing claim file",
		zap.String("path", w.path),
		zap.Uint64("generation", gen),
	)
}

func (w *Watcher) load() (model.ClaimInput, string, error) {
	f, err := claim.LoadFile(w.path)
	if err != nil {
		return model.ClaimInput{}, model.SentinelPolicyID, err
	}
	policyID := claim.PolicyIDOrSentinel(f.PolicyID)
	in, err := f.Input()
	return in, policyID, err
}
