package output

import (
	"encoding/json"
	"io"

	"traceflow-pricing/core/types"
)

// JSONFormatter renders machine-readable output
type JSONFormatter struct{}

// NewJSONFormatter creates a JSON formatter
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// Format returns FormatJSON
func (f *JSONFormatter) Format() Format {
	return FormatJSON
}

type jsonEntry struct {
	Name     string                 `json:"name,omitempty"`
	Tier     string                 `json:"tier,omitempty"`
	Custom   bool                   `json:"custom,omitempty"`
	Rounded  *types.RoundedSavings  `json:"rounded,omitempty"`
	Estimate *types.SavingsEstimate `json:"estimate,omitempty"`
	Error    string                 `json:"error,omitempty"`
}

type jsonReport struct {
	Title       string             `json:"title,omitempty"`
	Entries     []jsonEntry        `json:"entries"`
	Assumptions []types.Assumption `json:"assumptions,omitempty"`
	Metadata    Metadata           `json:"metadata"`
}

// Render writes the report as indented JSON. Assumptions are reported
// once per report rather than per entry.
func (f *JSONFormatter) Render(w io.Writer, report *Report) error {
	out := jsonReport{
		Title:    report.Title,
		Entries:  make([]jsonEntry, 0, len(report.Entries)),
		Metadata: report.Metadata,
	}

	for _, e := range report.Entries {
		je := jsonEntry{Name: e.Name}
		if e.Err != nil {
			je.Error = e.Err.Error()
		} else {
			rounded := e.Estimate.Rounded()
			est := *e.Estimate
			est.Assumptions = nil
			je.Tier = est.Quote.TierName()
			je.Custom = est.Quote.Custom
			je.Rounded = &rounded
			je.Estimate = &est
		}
		out.Entries = append(out.Entries, je)
	}

	if report.ShowAssumptions {
		out.Assumptions = report.assumptions()
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
