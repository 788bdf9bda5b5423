package formatter

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"github.com/helmcode/claimsafe/pkg/guide"
	"github.com/helmcode/claimsafe/pkg/model"
	"github.com/helmcode/claimsafe/pkg/presentation"
	"github.com/helmcode/claimsafe/pkg/risk"
)

// barCells is the width of the score bar in the terminal.
const barCells = 20

// Report is everything shown for one assessment.
type Report struct {
	PolicyID     string                     `json:"policy_id" yaml:"policy_id"`
	Claim        *model.ClaimInput          `json:"claim,omitempty" yaml:"claim,omitempty"`
	Result       model.RiskAssessmentResult `json:"result" yaml:"result"`
	Presentation presentation.State         `json:"presentation" yaml:"presentation"`
}

// NewReport derives the presentation for result.
func NewReport(policyID string, in *model.ClaimInput, result model.RiskAssessmentResult) Report {
	return Report{
		PolicyID:     policyID,
		Claim:        in,
		Result:       result,
		Presentation: presentation.Derive(result),
	}
}

// Options tweak human output.
type Options struct {
	// Guide appends the static reference material.
	Guide bool
}

// DisplayResults writes the report in the requested format.
func DisplayResults(w io.Writer, r Report, format string, opts Options) error {
	switch format {
	case "json":
		return displayJSON(w, r)
	case "yaml":
		return displayYAML(w, r)
	case "human", "":
		displayHuman(w, r, opts)
		return nil
	default:
		return fmt.Errorf("unsupported output format %q (supported: human, json, yaml)", format)
	}
}

func displayJSON(w io.Writer, r Report) error {
	output, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(output))
	return err
}

func displayYAML(w io.Writer, r Report) error {
	output, err := yaml.Marshal(r)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(w, string(output))
	return err
}

func displayHuman(w io.Writer, r Report, opts Options) {
	st := r.Presentation
	bold := color.New(color.Bold)
	tone := styleColor(st.Tone)

	fmt.Fprintln(w)
	bold.Fprintln(w, "📋 RISK ASSESSMENT")
	fmt.Fprintln(w)

	fmt.Fprintf(w, "   Risk Score  ")
	tone.Add(color.Bold).Fprintf(w, "%d/100\n", st.Score)
	fmt.Fprintf(w, "   %s\n", tone.Sprint(Bar(st.ProgressWidth)))
	if st.Level != "" {
		tone.Fprintf(w, "   %s\n", st.Level)
	}
	fmt.Fprintf(w, "   %s\n\n", color.HiBlackString(st.Caption))

	for _, b := range st.Blocks {
		displayBlock(w, b)
	}

	if r.Claim != nil {
		displayClaim(w, *r.Claim)
	}

	if opts.Guide {
		DisplayGuide(w)
	}

	fmt.Fprintln(w, strings.Repeat("─", 80))
	fmt.Fprintf(w, "💡 %s\n", color.HiBlackString("Run with -o json or -o yaml for machine-readable output"))
}

func displayBlock(w io.Writer, b presentation.Block) {
	c := styleColor(b.Style).Add(color.Bold)
	indent := "   "
	if b.Nested {
		indent = "      "
	}

	switch b.Kind {
	case presentation.KindApproval:
		c.Fprintf(w, "✅ %s\n", b.Title)
		for _, item := range b.Items {
			fmt.Fprintf(w, "%s%s %s\n", indent, color.GreenString("✓"), item)
		}
	case presentation.KindRiskFactors:
		c.Fprintf(w, "⚠️  %s\n", b.Title)
		bullet := styleColor(b.Style).Sprint("•")
		for _, item := range b.Items {
			fmt.Fprintf(w, "%s%s %s\n", indent, bullet, item)
		}
	case presentation.KindPositiveFactors:
		c.Fprintf(w, "   ✓ %s\n", b.Title)
		for _, item := range b.Items {
			fmt.Fprintf(w, "%s%s %s\n", indent, color.GreenString("✓"), item)
		}
	case presentation.KindRecommendations:
		c.Fprintf(w, "💡 %s\n", b.Title)
		for _, item := range b.Items {
			fmt.Fprintf(w, "%s[ ] %s\n", indent, item)
		}
	}
	fmt.Fprintln(w)
}

func displayClaim(w io.Writer, in model.ClaimInput) {
	color.New(color.FgMagenta, color.Bold).Fprintln(w, "🧾 YOUR CLAIM DETAILS")

	treatment := in.TreatmentType
	if treatment == "" {
		treatment = "Not specified"
	}
	preExisting := "No"
	if in.IsPreExisting {
		preExisting = "Yes (Not Disclosed)"
		if in.WasDisclosed {
			preExisting = "Yes (Disclosed)"
		}
	}

	fmt.Fprintf(w, "   Treatment Type:         %s\n", treatment)
	fmt.Fprintf(w, "   Claim Amount:           ₹%s\n", FormatINR(in.ClaimAmount))
	fmt.Fprintf(w, "   Policy Age:             %d months\n", in.PolicyAgeMonths)
	fmt.Fprintf(w, "   Pre-existing Condition: %s\n", preExisting)
	fmt.Fprintf(w, "   Hospital Type:          %s\n\n", in.HospitalType.Label())
}

// DisplayGuide writes the static reference material.
func DisplayGuide(w io.Writer) {
	red := color.New(color.FgRed, color.Bold)
	white := color.New(color.FgWhite, color.Bold)
	cyan := color.New(color.FgCyan, color.Bold)

	red.Fprintln(w, "🚫 COMMON REASONS SIMILAR CLAIMS GET REJECTED")
	for i, e := range guide.MistakeAlerts {
		fmt.Fprintf(w, "   %d. %s\n", i+1, e.Title)
		fmt.Fprintf(w, "      %s\n", color.HiBlackString(e.Detail))
	}
	fmt.Fprintln(w)

	white.Fprintln(w, "📄 UNDERSTANDING YOUR COVERAGE LIMITATIONS")
	for _, e := range guide.CoverageNotes {
		fmt.Fprintf(w, "   %s\n", e.Title)
		fmt.Fprintln(w, wrapText(e.Detail, 80, "      "))
	}
	fmt.Fprintln(w)

	cyan.Fprintln(w, "🗂  REQUIRED DOCUMENTS")
	for _, doc := range guide.DocumentChecklist {
		fmt.Fprintf(w, "   [ ] %s\n", doc)
	}
	fmt.Fprintln(w)
}

// Bar renders a progress width in percent as a fixed-width bar. Any
// non-zero width fills at least one cell.
func Bar(width int) string {
	width = min(max(width, 0), 100)
	filled := (width*barCells + 99) / 100
	return strings.Repeat("█", filled) + strings.Repeat("░", barCells-filled)
}

// maxExactPaise is the largest paise count a float64 holds exactly.
const maxExactPaise = 1 << 53

// FormatINR groups digits the Indian way: 1,50,000. Paise are shown only
// when present. Amounts too large to count in paise are rounded to rupees.
func FormatINR(amount float64) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return strconv.FormatFloat(amount, 'f', -1, 64)
	}
	sign := ""
	if amount < 0 {
		sign = "-"
	}
	abs := math.Abs(amount)

	var (
		digits string
		rem    int64
	)
	if abs*100 < maxExactPaise {
		paise := int64(math.Round(abs * 100))
		digits = strconv.FormatInt(paise/100, 10)
		rem = paise % 100
	} else {
		digits = strconv.FormatFloat(math.Round(abs), 'f', 0, 64)
	}

	grouped := groupIndian(digits)
	if rem != 0 {
		grouped += fmt.Sprintf(".%02d", rem)
	}
	if grouped == "0" {
		sign = ""
	}
	return sign + grouped
}

// groupIndian puts commas after the last three digits, then every two.
func groupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	head, tail := digits[:len(digits)-3], digits[len(digits)-3:]
	var parts []string
	for len(head) > 2 {
		parts = append([]string{head[len(head)-2:]}, parts...)
		head = head[:len(head)-2]
	}
	parts = append([]string{head}, parts...)
	return strings.Join(parts, ",") + "," + tail
}

func styleColor(s risk.Style) *color.Color {
	switch s {
	case risk.StylePositive:
		return color.New(color.FgGreen)
	case risk.StyleCaution:
		return color.New(color.FgYellow)
	case risk.StyleCritical:
		return color.New(color.FgRed)
	case risk.StyleInfo:
		return color.New(color.FgBlue)
	default:
		return color.New(color.FgWhite)
	}
}

func wrapText(text string, width int, indent string) string {
	var result strings.Builder
	for _, line := range strings.Split(text, "\n") {
		words := strings.Fields(line)
		if len(words) == 0 {
			result.WriteString("\n")
			continue
		}

		currentLine := indent
		for _, word := range words {
			if len(currentLine)+len(word)+1 > width {
				result.WriteString(currentLine + "\n")
				currentLine = indent + word
			} else if currentLine == indent {
				currentLine += word
			} else {
				currentLine += " " + word
			}
		}
		if currentLine != indent {
			result.WriteString(currentLine + "\n")
		}
	}
	return strings.TrimSuffix(result.String(), "\n")
}
