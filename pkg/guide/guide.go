// Package guide holds the static reference material shown next to a risk
// report: common rejection reasons, coverage limits and the documents a
// claim needs.
package guide

// Entry is a titled explanation.
type Entry struct {
	Title  string `json:"title" yaml:"title"`
	Detail string `json:"detail" yaml:"detail"`
}

// MistakeAlerts lists common reasons similar claims get rejected.
var MistakeAlerts = []Entry{
	{"Non-disclosure of medical history", "Failing to disclose pre-existing conditions leads to immediate claim rejection"},
	{"Incomplete documentation", "Missing discharge summary, original bills, or diagnostic reports"},
	{"Treatment not covered by policy", "Cosmetic procedures, alternative medicine, or experimental treatments"},
	{"Filing claims after policy lapse", "Claims filed for treatment dates when the policy was not active"},
	{"Specific disease waiting period not met", "Treatments like cataract, hernia, or joint replacement have 2-4 year waiting periods"},
}

// CoverageNotes explains typical coverage limitations.
var CoverageNotes = []Entry{
	{"Waiting Periods", "Most health insurance policies have waiting periods: 30 days initial waiting period, 2-4 years for pre-existing conditions, and 2-4 years for specific treatments like cataract, hernia, joint replacement, and maternity."},
	{"Sub-limits", "Your policy may have sub-limits on room rent, ICU charges, and specific treatments. Exceeding these limits can lead to proportionate claim deductions."},
	{"Pre-authorization Requirements", "Planned hospitalizations typically require pre-authorization 48-72 hours before admission. Emergency admissions should be notified within 24 hours."},
}

// DocumentChecklist lists the documents usually required to file.
var DocumentChecklist = []string{
	"Original claim form (duly filled and signed)",
	"Discharge summary from hospital",
	"Original hospital bills and receipts",
	"Diagnostic reports and lab tests",
	"Doctor's prescription and consultation notes",
	"Pre-authorization approval (if applicable)",
	"Policy copy and ID proof",
	"Bank account details for reimbursement",
}
