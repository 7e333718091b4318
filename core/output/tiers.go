package output

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"traceflow-pricing/core/types"
)

// RenderTiers writes the tier table as the pricing page shows it
func RenderTiers(w io.Writer, table types.TierTable) error {
	r := lipgloss.NewRenderer(w)
	head := r.NewStyle().Bold(true)
	name := r.NewStyle().Width(18)
	limit := r.NewStyle().Width(16).Align(lipgloss.Right)
	price := r.NewStyle().Width(14).Align(lipgloss.Right)

	fmt.Fprintln(w, head.Render(name.Render("Tier")+limit.Render("Sessions ≤")+price.Render("Monthly")))

	last := int64(0)
	for _, t := range table.Tiers {
		p := "custom"
		if t.MonthlyPriceUSD != nil {
			p = USD(*t.MonthlyPriceUSD)
		}
		fmt.Fprintln(w, name.Render(t.Name)+limit.Render(humanize.Comma(t.MaxSessions))+price.Render(p))
		last = t.MaxSessions
	}
	if n := len(table.Tiers); n > 0 && !table.Tiers[n-1].IsCustom() {
		fmt.Fprintln(w, name.Render("custom")+limit.Render("> "+humanize.Comma(last))+price.Render("contact us"))
	}

	_, err := fmt.Fprintf(w, "\nCalculator range: %s to %s sessions/month (%s)\n",
		humanize.Comma(table.Bounds.Min), humanize.Comma(table.Bounds.Max), table.Currency)
	return err
}
