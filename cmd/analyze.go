package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/helmcode/claimsafe/pkg/claim"
	"github.com/helmcode/claimsafe/pkg/formatter"
)

var (
	analyzeTreatment    string
	analyzeAmount       string
	analyzePolicyAge    string
	analyzePreExisting  bool
	analyzeDisclosed    bool
	analyzeHospital     string
	analyzePolicyID     string
	analyzePolicyPDF    string
	analyzeFile         string
	analyzeOutputFormat string
	analyzeGuide        bool
	analyzeSave         bool
)

func NewAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Estimate the rejection risk of a health insurance claim",
		Long: `Send a claim to the scoring service and explain the result: the risk
score and tier, why the claim may be rejected, what supports approval and
what to do next.

Examples:
  # Analyze a claim against the default policy terms
  claimsafe analyze --treatment "Knee replacement" --amount 250000 --policy-age 8 --hospital non_network

  # Upload your policy first
  claimsafe analyze --policy-pdf ./policy.pdf --treatment Appendectomy --amount 90000 --policy-age 14 --hospital network

  # Read the claim from a file and keep the result
  claimsafe analyze -f claim.yaml --save

  # Machine-readable output
  claimsafe analyze -f claim.yaml -o json`,
		Args: cobra.NoArgs,
		RunE: runAnalyze,
	}

	cmd.Flags().StringVar(&analyzeTreatment, "treatment", "", "Treatment or procedure")
	cmd.Flags().StringVar(&analyzeAmount, "amount", "", "Claim amount in rupees")
	cmd.Flags().StringVar(&analyzePolicyAge, "policy-age", "", "Policy age in months")
	cmd.Flags().BoolVar(&analyzePreExisting, "pre-existing", false, "The condition is pre-existing")
	cmd.Flags().BoolVar(&analyzeDisclosed, "disclosed", false, "The pre-existing condition was disclosed at purchase")
	cmd.Flags().StringVar(&analyzeHospital, "hospital", "", "Hospital type (network, non_network, unknown)")
	cmd.Flags().StringVar(&analyzePolicyID, "policy-id", "", "Id of an uploaded policy")
	cmd.Flags().StringVar(&analyzePolicyPDF, "policy-pdf", "", "Upload this policy PDF before analysing")
	cmd.Flags().StringVarP(&analyzeFile, "file", "f", "", "Read the claim from a YAML file")
	cmd.Flags().StringVarP(&analyzeOutputFormat, "output", "o", "human", "Output format (human, json, yaml)")
	cmd.Flags().BoolVar(&analyzeGuide, "guide", false, "Append rejection reasons, coverage notes and the document checklist")
	cmd.Flags().BoolVar(&analyzeSave, "save", false, "Save the assessment to local history")

	cmd.MarkFlagsMutuallyExclusive("policy-id", "policy-pdf")

	return cmd
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	human := analyzeOutputFormat == "human" || analyzeOutputFormat == ""

	form, policyID, err := analyzeForm(cmd)
	if err != nil {
		return err
	}
	// Fail on bad input before any upload or network call.
	in, err := form.Input()
	if err != nil {
		return err
	}

	a := newAnalyzer()

	if analyzePolicyPDF != "" {
		name, data, err := claim.LoadPolicyPDF(analyzePolicyPDF)
		if err != nil {
			return err
		}
		s := newSpinner(fmt.Sprintf("Uploading %s...", name))
		if human {
			s.Start()
		}
		policyID, err = a.UploadPolicy(ctx, name, data)
		s.Stop()
		if err != nil {
			return fmt.Errorf("policy upload failed: %s", describeFailure(err))
		}
		if human {
			printSuccess(cmd.ErrOrStderr(), fmt.Sprintf("Policy uploaded (id %s)", policyID))
		}
	}
	policyID = claim.PolicyIDOrSentinel(policyID)

	s := newSpinner("Analyzing claim risk…")
	if human {
		s.Start()
	}
	result, err := a.AnalyzeInput(ctx, in, policyID)
	s.Stop()
	if err != nil {
		return fmt.Errorf("analysis failed: %s", describeFailure(err))
	}

	report := formatter.NewReport(policyID, &in, *result)
	if err := formatter.DisplayResults(out, report, analyzeOutputFormat, formatter.Options{Guide: analyzeGuide}); err != nil {
		return err
	}

	if analyzeSave {
		store, err := openHistory(ctx)
		if err != nil {
			return err
		}
		defer store.Close()

		rec, err := store.Save(ctx, policyID, in, *result)
		if err != nil {
			return err
		}
		zap.L().Info("assessment saved", zap.String("id", rec.ID))
		if human {
			printSuccess(cmd.ErrOrStderr(), fmt.Sprintf("Saved as %s", rec.ID))
		}
	}

	return nil
}

// analyzeForm builds the claim from --file, then lets explicitly set flags
// override individual fields.
func analyzeForm(cmd *cobra.Command) (claim.Form, string, error) {
	var form claim.Form
	policyID := analyzePolicyID

	if analyzeFile != "" {
		f, err := claim.LoadFile(analyzeFile)
		if err != nil {
			return claim.Form{}, "", err
		}
		form = f.Form
		if policyID == "" {
			policyID = f.PolicyID
		}
	} else if !cmd.Flags().Changed("treatment") && !cmd.Flags().Changed("amount") {
		return claim.Form{}, "", errors.New("describe the claim with flags or --file (see --help)")
	}

	flags := cmd.Flags()
	if flags.Changed("treatment") {
		form.TreatmentType = analyzeTreatment
	}
	if flags.Changed("amount") {
		form.ClaimAmount = analyzeAmount
	}
	if flags.Changed("policy-age") {
		form.PolicyAge = analyzePolicyAge
	}
	if flags.Changed("pre-existing") {
		form.IsPreExisting = analyzePreExisting
	}
	if flags.Changed("disclosed") {
		form.WasDisclosed = analyzeDisclosed
	}
	if flags.Changed("hospital") {
		form.HospitalType = analyzeHospital
	}

	zap.L().Debug("claim assembled",
		zap.String("treatment", form.TreatmentType),
		zap.String("amount", form.ClaimAmount),
		zap.String("policy_age", form.PolicyAge),
		zap.String("hospital", form.HospitalType),
		zap.Bool("pre_existing", form.IsPreExisting),
	)
	return form, policyID, nil
}
