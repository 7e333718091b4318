package output

import (
	"fmt"
	"io"
	"strings"
)

// MarkdownFormatter renders a markdown table, e.g. for sales proposals
type MarkdownFormatter struct{}

// NewMarkdownFormatter creates a markdown formatter
func NewMarkdownFormatter() *MarkdownFormatter {
	return &MarkdownFormatter{}
}

// Format returns FormatMarkdown
func (f *MarkdownFormatter) Format() Format {
	return FormatMarkdown
}

// Render writes the report
func (f *MarkdownFormatter) Render(w io.Writer, report *Report) error {
	var b strings.Builder

	if report.Title != "" {
		fmt.Fprintf(&b, "## %s\n\n", report.Title)
	}

	b.WriteString("| Scenario | Plan | Tool | Support | Engineering | Total / yr | ROI |\n")
	b.WriteString("|---|---|---:|---:|---:|---:|---:|\n")

	for _, e := range report.Entries {
		name := e.Name
		if name == "" {
			name = "-"
		}
		if e.Err != nil {
			fmt.Fprintf(&b, "| %s | error: %s | | | | | |\n", name, escapePipes(e.Err.Error()))
			continue
		}
		r := e.Estimate.Rounded()
		fmt.Fprintf(&b, "| %s | %s (%s/mo) | %s | %s | %s | **%s** | %s |\n",
			name,
			e.Estimate.Quote.TierName(),
			USD(r.MonthlyPriceUSD),
			USD(r.ToolSavingsAnnualUSD),
			USD(r.SupportSavingsAnnualUSD),
			USD(r.EngineeringSavingsAnnualUSD),
			USD(r.TotalAnnualSavingsUSD),
			ROI(r),
		)
	}

	if report.ShowAssumptions {
		if assumptions := report.assumptions(); len(assumptions) > 0 {
			b.WriteString("\n**Assumptions**\n\n")
			for _, a := range assumptions {
				fmt.Fprintf(&b, "- `%s.%s` = %s %s: %s\n", a.Component, a.Attribute, a.Value, a.Unit, a.Reason)
			}
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func escapePipes(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
