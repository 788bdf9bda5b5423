package wizard

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"go.uber.org/zap"

	"github.com/helmcode/claimsafe/pkg/analyzer"
	"github.com/helmcode/claimsafe/pkg/claim"
	"github.com/helmcode/claimsafe/pkg/formatter"
	"github.com/helmcode/claimsafe/pkg/history"
	"github.com/helmcode/claimsafe/pkg/model"
)

// Saver stores finished assessments.
type Saver interface {
	Save(ctx context.Context, policyID string, in model.ClaimInput, result model.RiskAssessmentResult) (*history.Record, error)
}

// Config wires a Wizard.
type Config struct {
	In       io.Reader
	Out      io.Writer
	Analyzer *analyzer.Analyzer
	// History is optional.
	History Saver
	// Progress is optional.
	Progress Progress
	Format   string
	Guide    bool
}

const defaultReportFile = "claimsafe-report.txt"

// Wizard walks a user through landing, policy upload, claim details and
// the risk report.
type Wizard struct {
	cfg    Config
	p      *prompter
	m      *Machine
	runner *analyzer.Runner
}

func New(cfg Config) *Wizard {
	if cfg.Progress == nil {
		cfg.Progress = nopProgress{}
	}
	return &Wizard{
		cfg:    cfg,
		p:      newPrompter(cfg.In, cfg.Out),
		m:      NewMachine(),
		runner: analyzer.NewRunner(cfg.Analyzer),
	}
}

// Run drives the wizard until the user quits, input ends or ctx is done.
func (w *Wizard) Run(ctx context.Context) error {
	defer w.runner.Stop()

	for {
		var (
			ev  Event
			err error
		)
		switch w.m.State() {
		case Landing:
			ev, err = w.landing()
		case PolicyUpload:
			ev, err = w.policyUpload(ctx)
		case ClaimDetails:
			ev, err = w.claimDetails()
		case Result:
			ev, err = w.result(ctx)
		}
		if errors.Is(err, errQuit) {
			fmt.Fprintln(w.cfg.Out, "\nGoodbye.")
			return nil
		}
		if err != nil {
			return err
		}

		from := w.m.State()
		if err := w.m.Apply(ev); err != nil {
			return err
		}
		zap.L().Debug("wizard transition",
			zap.Stringer("from", from),
			zap.Stringer("to", w.m.State()),
		)
	}
}

func (w *Wizard) landing() (Event, error) {
	out := w.cfg.Out
	fmt.Fprintln(out)
	color.New(color.FgMagenta, color.Bold).Fprintln(out, "🛡  ClaimSafe")
	fmt.Fprintln(out, "Check claim risk before you file.")
	fmt.Fprintln(out, "We read your policy, look at your claim and estimate how likely it is to be rejected, and why.")
	fmt.Fprintln(out)

	ans, err := w.p.ask("Press Enter to start, or q to quit")
	if err != nil {
		return nil, err
	}
	if strings.EqualFold(ans, "q") {
		return nil, errQuit
	}
	return Started{}, nil
}

func (w *Wizard) policyUpload(ctx context.Context) (Event, error) {
	w.header(1, "Policy Analysis")
	for {
		path, err := w.p.ask("Path to your policy PDF (leave blank to skip)")
		if err != nil {
			return nil, err
		}
		if path == "" {
			w.p.warn("No policy uploaded, the default policy terms will be used")
			return PolicyProvided{}, nil
		}

		name, data, err := claim.LoadPolicyPDF(path)
		if err != nil {
			w.p.fail(err.Error())
			continue
		}

		for {
			w.cfg.Progress.Start(fmt.Sprintf("Uploading %s...", name))
			id, err := w.cfg.Analyzer.UploadPolicy(ctx, name, data)
			w.cfg.Progress.Stop()
			if err == nil {
				w.p.success(fmt.Sprintf("Policy %s uploaded (id %s)", name, id))
				return PolicyProvided{PolicyID: id}, nil
			}
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}

			w.p.fail("Upload failed: " + err.Error())
			choice, err := w.p.choose("[r]etry, [s]kip upload or [q]uit", "r", "s")
			if err != nil {
				return nil, err
			}
			if choice == "s" {
				return PolicyProvided{}, nil
			}
		}
	}
}

func (w *Wizard) claimDetails() (Event, error) {
	w.header(2, "Claim Details")
	var f claim.Form

	treatment, err := w.p.ask("Treatment")
	if err != nil {
		return nil, err
	}
	f.TreatmentType = treatment

	if f.ClaimAmount, err = w.askValid("Claim Amount (₹)", func(s string) error {
		_, err := claim.ParseAmount(s)
		return err
	}); err != nil {
		return nil, err
	}

	if f.PolicyAge, err = w.askValid("Policy Age (months)", func(s string) error {
		_, err := claim.ParsePolicyAge(s)
		return err
	}); err != nil {
		return nil, err
	}

	fmt.Fprintln(w.cfg.Out, "Hospital Type: 1) Network Hospital  2) Non-Network Hospital  3) Not Sure")
	fmt.Fprintln(w.cfg.Out, color.HiBlackString("Hospital network status depends on insurer hospital lists. Please confirm with your insurer."))
	for f.HospitalType == "" {
		ans, err := w.p.ask("Hospital Type *")
		if err != nil {
			return nil, err
		}
		switch strings.ToLower(ans) {
		case "1", "network":
			f.HospitalType = string(model.HospitalNetwork)
		case "2", "non_network", "non-network":
			f.HospitalType = string(model.HospitalNonNetwork)
		case "3", "unknown", "not sure":
			f.HospitalType = string(model.HospitalUnknown)
		default:
			w.p.warn("Please select a Hospital Type")
		}
	}

	if f.IsPreExisting, err = w.p.yesNo("Is this a pre-existing condition", false); err != nil {
		return nil, err
	}
	if f.IsPreExisting {
		if f.WasDisclosed, err = w.p.yesNo("Was the condition disclosed during policy purchase", false); err != nil {
			return nil, err
		}
		if !f.WasDisclosed {
			w.p.warn("Undisclosed pre-existing conditions are often rejected")
		}
	}

	in, err := f.Input()
	if err != nil {
		// Fields are checked as they are entered.
		w.p.fail(err.Error())
		return nil, err
	}
	return ClaimSubmitted{Input: in}, nil
}

func (w *Wizard) askValid(label string, check func(string) error) (string, error) {
	for {
		ans, err := w.p.ask(label)
		if err != nil {
			return "", err
		}
		if err := check(ans); err != nil {
			w.p.fail(err.Error())
			continue
		}
		return ans, nil
	}
}

func (w *Wizard) result(ctx context.Context) (Event, error) {
	w.header(3, "Risk Assessment")
	in, _ := w.m.Claim()
	policyID := w.m.PolicyID()

	for {
		w.runner.Submit(ctx, in, policyID)
		w.cfg.Progress.Start("Analyzing claim risk…")
		o, err := w.await(ctx)
		w.cfg.Progress.Stop()
		if err != nil {
			return nil, err
		}

		if o.Err == nil {
			return w.showReport(ctx, o)
		}

		switch analyzer.KindOf(o.Err) {
		case analyzer.KindContract:
			w.p.fail("The scoring service sent an invalid response. This is a service problem; retrying will not help.")
			w.p.fail(o.Err.Error())
		default:
			w.p.fail("Could not get a risk assessment: " + o.Err.Error())
		}

		options := []string{"e", "s"}
		label := "[e]dit claim, [s]tart over or [q]uit"
		if analyzer.Retryable(o.Err) {
			options = append(options, "r")
			label = "[r]etry, " + label
		}
		choice, err := w.p.choose(label, options...)
		if err != nil {
			return nil, err
		}
		switch choice {
		case "e":
			return EditRequested{}, nil
		case "s":
			return Restarted{}, nil
		}
	}
}

// await returns the first outcome belonging to the latest submission.
func (w *Wizard) await(ctx context.Context) (analyzer.Outcome, error) {
	for {
		select {
		case <-ctx.Done():
			return analyzer.Outcome{}, ctx.Err()
		case o := <-w.runner.Outcomes():
			if w.runner.Accept(o) {
				return o, nil
			}
		}
	}
}

func (w *Wizard) showReport(ctx context.Context, o analyzer.Outcome) (Event, error) {
	in := o.Input
	report := formatter.NewReport(o.PolicyID, &in, *o.Result)
	if err := formatter.DisplayResults(w.cfg.Out, report, w.cfg.Format, formatter.Options{Guide: w.cfg.Guide}); err != nil {
		return nil, err
	}

	if w.cfg.History != nil {
		rec, err := w.cfg.History.Save(ctx, o.PolicyID, in, *o.Result)
		if err != nil {
			zap.L().Warn("could not save assessment", zap.Error(err))
		} else {
			fmt.Fprintf(w.cfg.Out, "Saved as %s\n", rec.ID)
		}
	}

	for {
		choice, err := w.p.choose("[d]ownload report, [s]tart over, [e]dit claim or [q]uit", "d", "s", "e")
		if err != nil {
			return nil, err
		}
		switch choice {
		case "e":
			return EditRequested{}, nil
		case "s":
			return Restarted{}, nil
		}
		if err := w.download(report); err != nil {
			return nil, err
		}
	}
}

// download saves the report; the extension picks json, yaml or text.
func (w *Wizard) download(report formatter.Report) error {
	path, err := w.p.ask("Save report to [" + defaultReportFile + "]")
	if err != nil {
		return err
	}
	if path == "" {
		path = defaultReportFile
	}
	if err := formatter.WriteReportFile(path, report, formatter.Options{Guide: true}); err != nil {
		w.p.fail(err.Error())
		return nil
	}
	w.p.success("Report saved to " + path)
	return nil
}

func (w *Wizard) header(step int, title string) {
	fmt.Fprintln(w.cfg.Out)
	steps := []string{"Policy Analysis", "Claim Details", "Risk Assessment"}
	parts := make([]string, len(steps))
	for i, s := range steps {
		switch {
		case i+1 < step:
			parts[i] = color.GreenString("✓ %s", s)
		case i+1 == step:
			parts[i] = color.New(color.FgMagenta, color.Bold).Sprintf("%d %s", i+1, s)
		default:
			parts[i] = color.HiBlackString("%d %s", i+1, s)
		}
	}
	fmt.Fprintln(w.cfg.Out, strings.Join(parts, "  →  "))
	color.New(color.Bold).Fprintf(w.cfg.Out, "\n%s\n", title)
}
