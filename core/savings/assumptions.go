package savings

import (
	"fmt"

	"traceflow-pricing/core/types"
)

// Assumptions lists every constant the model applies, so a rendered
// estimate can show what it was based on.
func (m Model) Assumptions() []types.Assumption {
	source := types.AssumptionFromConfig
	if m.Equal(DefaultModel()) {
		source = types.AssumptionFromDefault
	}

	record := func(component, attribute, value, unit, reason string) types.Assumption {
		return types.Assumption{
			Component: component,
			Attribute: attribute,
			Value:     value,
			Unit:      unit,
			Source:    source,
			Reason:    reason,
		}
	}

	return []types.Assumption{
		record("support", "sessions_per_ticket", fmt.Sprint(m.SessionsPerTicket), "sessions",
			"baseline ticket volume is proportional to session count"),
		record("support", "cost_per_ticket", m.CostPerTicketUSD.String(), "USD",
			"fully loaded cost of resolving one ticket"),
		record("engineering", "max_hours_per_week", fmt.Sprint(m.MaxEngineeringHoursPerWeek), "hours",
			"hours reclaimed at a 100% ticket reduction, scaled linearly"),
		record("engineering", "hourly_rate", m.EngineeringHourlyRateUSD.String(), "USD",
			"value of one reclaimed engineering hour"),
		record("engineering", "weeks_per_year", fmt.Sprint(m.WeeksPerYear), "weeks",
			"weekly hours annualized"),
		record("tool", "net_tool_savings", "0", "USD",
			"a plan costing more than current tooling counts as zero tool savings, not a loss"),
	}
}
