package output

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"traceflow-pricing/core/types"
)

// CLIFormatter renders a styled terminal report. Colors follow the
// capabilities of the destination writer unless NoColor is set.
type CLIFormatter struct {
	NoColor bool
}

// NewCLIFormatter creates a CLI formatter
func NewCLIFormatter() *CLIFormatter {
	return &CLIFormatter{}
}

// Format returns FormatCLI
func (f *CLIFormatter) Format() Format {
	return FormatCLI
}

type cliStyles struct {
	header lipgloss.Style
	label  lipgloss.Style
	value  lipgloss.Style
	total  lipgloss.Style
	dim    lipgloss.Style
	err    lipgloss.Style
}

func newCLIStyles(w io.Writer, noColor bool) cliStyles {
	r := lipgloss.NewRenderer(w)
	if noColor {
		plain := r.NewStyle()
		return cliStyles{header: plain, label: plain.Width(16), value: plain, total: plain, dim: plain, err: plain}
	}
	return cliStyles{
		header: r.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4")),
		label:  r.NewStyle().Width(16),
		value:  r.NewStyle(),
		total:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("#04B575")),
		dim:    r.NewStyle().Faint(true),
		err:    r.NewStyle().Foreground(lipgloss.Color("#FF5F87")),
	}
}

// Render writes the report
func (f *CLIFormatter) Render(w io.Writer, report *Report) error {
	s := newCLIStyles(w, f.NoColor)

	if report.Title != "" {
		fmt.Fprintln(w, s.header.Render("━━━ "+report.Title+" ━━━"))
		fmt.Fprintln(w)
	}

	for _, entry := range report.Entries {
		if entry.Name != "" {
			fmt.Fprintln(w, s.header.Render("▸ "+entry.Name))
		}
		if entry.Err != nil {
			fmt.Fprintln(w, s.err.Render("✗ "+entry.Err.Error()))
			fmt.Fprintln(w)
			continue
		}
		renderEstimate(w, s, entry.Estimate)
		fmt.Fprintln(w)
	}

	if report.ShowAssumptions {
		if assumptions := report.assumptions(); len(assumptions) > 0 {
			fmt.Fprintln(w, s.header.Render("Assumptions"))
			for _, a := range assumptions {
				fmt.Fprintln(w, s.dim.Render(fmt.Sprintf("  %s.%s = %s %s (%s): %s",
					a.Component, a.Attribute, a.Value, a.Unit, a.Source, a.Reason)))
			}
		}
	}

	return nil
}

func renderEstimate(w io.Writer, s cliStyles, est *types.SavingsEstimate) {
	r := est.Rounded()
	row := func(label, value string, style lipgloss.Style) {
		fmt.Fprintln(w, s.label.Render(label)+style.Render(value))
	}

	plan := fmt.Sprintf("%s (%s/mo)", est.Quote.TierName(), USD(r.MonthlyPriceUSD))
	if est.Quote.Custom {
		plan = fmt.Sprintf("custom (negotiated %s/mo)", USD(r.MonthlyPriceUSD))
	}
	row("Plan", plan, s.value)
	row("Sessions/month", humanize.Comma(est.Input.MonthlySessions), s.value)
	row("Tool savings", USD(r.ToolSavingsAnnualUSD)+"/yr", s.value)
	row("Support savings", fmt.Sprintf("%s/yr %s", USD(r.SupportSavingsAnnualUSD),
		s.dim.Render(fmt.Sprintf("(%s of %s tickets/mo)",
			humanize.Comma(types.RoundUSD(est.TicketsSavedPerMonth)),
			humanize.Comma(types.RoundUSD(est.BaselineTicketsPerMonth))))), s.value)
	row("Engineering", fmt.Sprintf("%s/yr %s", USD(r.EngineeringSavingsAnnualUSD),
		s.dim.Render(fmt.Sprintf("(%d h/week)", est.EngineeringHoursPerWeek))), s.value)
	row("Total savings", USD(r.TotalAnnualSavingsUSD)+"/yr", s.total)
	row("ROI", ROI(r), s.total)
}

// USD formats whole dollars with thousands separators
func USD(amount int64) string {
	if amount < 0 {
		return "-$" + humanize.Comma(-amount)
	}
	return "$" + humanize.Comma(amount)
}

// ROI formats the ROI percentage, or "n/a" when undefined
func ROI(r types.RoundedSavings) string {
	if !r.ROIDefined {
		return "n/a"
	}
	return humanize.Comma(r.ROIPercentage) + "%"
}
