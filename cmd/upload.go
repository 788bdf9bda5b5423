package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/helmcode/claimsafe/pkg/claim"
	"github.com/helmcode/claimsafe/pkg/model"
)

func NewUploadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "upload POLICY.pdf",
		Short: "Upload a policy PDF and print its id",
		Long: `Upload a policy document so later analyses use its terms. Pass the
printed id to 'claimsafe analyze --policy-id'. When the service cannot
extract an id, the default policy id is printed.`,
		Args: cobra.ExactArgs(1),
		RunE: runUpload,
	}
}

func runUpload(cmd *cobra.Command, args []string) error {
	name, data, err := claim.LoadPolicyPDF(args[0])
	if err != nil {
		return err
	}

	s := newSpinner(fmt.Sprintf("Uploading %s...", name))
	s.Start()
	id, err := newAnalyzer().UploadPolicy(cmd.Context(), name, data)
	s.Stop()
	if err != nil {
		return fmt.Errorf("policy upload failed: %s", describeFailure(err))
	}

	if id == model.SentinelPolicyID {
		printWarning(cmd.ErrOrStderr(), "The service did not return a policy id; default policy terms will be used")
	} else {
		printSuccess(cmd.ErrOrStderr(), fmt.Sprintf("Uploaded %s", name))
	}
	fmt.Fprintln(cmd.OutOrStdout(), id)
	return nil
}
