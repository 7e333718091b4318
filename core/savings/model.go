// Package savings estimates the annual savings and ROI of switching to
// TRACEFLOW from a visitor's current tooling spend.
package savings

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// MonthsPerYear annualizes monthly amounts
const MonthsPerYear = 12

// HoursPerWeek caps the engineering hours a model may reclaim
const HoursPerWeek = 168

// maxModelRateUSD caps the per-ticket cost and the hourly rate
var maxModelRateUSD = decimal.NewFromInt(10_000)

// Model holds the constants of the session-proportional savings model.
type Model struct {
	// SessionsPerTicket is the baseline: one support ticket per this many sessions
	SessionsPerTicket int64

	// CostPerTicketUSD is the fully loaded cost of handling one ticket
	CostPerTicketUSD decimal.Decimal

	// MaxEngineeringHoursPerWeek is reclaimed at a 100% ticket reduction
	MaxEngineeringHoursPerWeek int64

	// EngineeringHourlyRateUSD values a reclaimed engineering hour
	EngineeringHourlyRateUSD decimal.Decimal

	// WeeksPerYear annualizes weekly hours
	WeeksPerYear int64
}

// DefaultModel returns the published calculator constants.
func DefaultModel() Model {
	return Model{
		SessionsPerTicket:          1_000,
		CostPerTicketUSD:           decimal.NewFromInt(50),
		MaxEngineeringHoursPerWeek: 20,
		EngineeringHourlyRateUSD:   decimal.NewFromInt(150),
		WeeksPerYear:               52,
	}
}

// Validate rejects models that would divide by zero or produce negative savings
func (m Model) Validate() error {
	if m.SessionsPerTicket <= 0 {
		return fmt.Errorf("sessions per ticket must be positive, got %d", m.SessionsPerTicket)
	}
	if m.CostPerTicketUSD.IsNegative() || m.CostPerTicketUSD.GreaterThan(maxModelRateUSD) {
		return fmt.Errorf("cost per ticket must be in [0, %s], got %s", maxModelRateUSD, m.CostPerTicketUSD)
	}
	if m.MaxEngineeringHoursPerWeek < 0 || m.MaxEngineeringHoursPerWeek > HoursPerWeek {
		return fmt.Errorf("max engineering hours must be in [0, %d], got %d", HoursPerWeek, m.MaxEngineeringHoursPerWeek)
	}
	if m.EngineeringHourlyRateUSD.IsNegative() || m.EngineeringHourlyRateUSD.GreaterThan(maxModelRateUSD) {
		return fmt.Errorf("engineering hourly rate must be in [0, %s], got %s", maxModelRateUSD, m.EngineeringHourlyRateUSD)
	}
	if m.WeeksPerYear <= 0 || m.WeeksPerYear > 53 {
		return fmt.Errorf("weeks per year must be in [1, 53], got %d", m.WeeksPerYear)
	}
	return nil
}

// Equal reports whether two models carry the same constants
func (m Model) Equal(o Model) bool {
	return m.SessionsPerTicket == o.SessionsPerTicket &&
		m.CostPerTicketUSD.Equal(o.CostPerTicketUSD) &&
		m.MaxEngineeringHoursPerWeek == o.MaxEngineeringHoursPerWeek &&
		m.EngineeringHourlyRateUSD.Equal(o.EngineeringHourlyRateUSD) &&
		m.WeeksPerYear == o.WeeksPerYear
}
