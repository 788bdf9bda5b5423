package formatter

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"github.com/helmcode/claimsafe/pkg/history"
	"github.com/helmcode/claimsafe/pkg/presentation"
)

// DisplayRecords lists saved assessments, one line each in human format.
func DisplayRecords(w io.Writer, recs []history.Record, format string) error {
	switch format {
	case "json":
		if recs == nil {
			recs = []history.Record{}
		}
		output, err := json.MarshalIndent(recs, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(output))
		return err
	case "yaml":
		output, err := yaml.Marshal(recs)
		if err != nil {
			return err
		}
		_, err = fmt.Fprint(w, string(output))
		return err
	case "human", "":
	default:
		return fmt.Errorf("unsupported output format %q (supported: human, json, yaml)", format)
	}

	if len(recs) == 0 {
		fmt.Fprintln(w, "No saved assessments. Run 'claimsafe analyze --save' to keep one.")
		return nil
	}

	bold := color.New(color.Bold)
	bold.Fprintf(w, "%-36s  %-16s  %5s  %-24s  %s\n", "ID", "SAVED", "SCORE", "TREATMENT", "AMOUNT")
	for _, rec := range recs {
		st := presentation.Derive(rec.Result)
		score := styleColor(st.Tone).Sprintf("%5d", st.Score)
		fmt.Fprintf(w, "%-36s  %-16s  %s  %-24s  ₹%s\n",
			rec.ID,
			rec.CreatedAt.Local().Format("2006-01-02 15:04"),
			score,
			truncate(rec.Claim.TreatmentType, 24),
			FormatINR(rec.Claim.ClaimAmount),
		)
	}
	return nil
}

func truncate(s string, n int) string {
	if len([]rune(s)) <= n {
		return s
	}
	r := []rune(s)
	return strings.TrimSpace(string(r[:n-1])) + "…"
}
