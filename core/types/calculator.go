// Package types - Savings calculator types
package types

import (
	"math"

	"github.com/shopspring/decimal"
)

// CalculatorInput is one set of calculator slider values.
type CalculatorInput struct {
	// MonthlySessions is the visitor's monthly session volume
	MonthlySessions int64 `json:"monthly_sessions" yaml:"monthly_sessions"`

	// CurrentMonthlyCostUSD is what the visitor spends on tooling today
	CurrentMonthlyCostUSD decimal.Decimal `json:"current_monthly_cost_usd" yaml:"current_monthly_cost_usd"`

	// ExpectedTicketReductionPct is the expected support ticket reduction, 0-100
	ExpectedTicketReductionPct decimal.Decimal `json:"expected_ticket_reduction_pct" yaml:"expected_ticket_reduction_pct"`

	// NegotiatedMonthlyPriceUSD stands in for the price of a custom tier
	NegotiatedMonthlyPriceUSD *decimal.Decimal `json:"negotiated_monthly_price_usd,omitempty" yaml:"negotiated_monthly_price_usd,omitempty"`
}

// SavingsEstimate is the full-precision result of one calculation.
type SavingsEstimate struct {
	// Input is the calculation input
	Input CalculatorInput `json:"input"`

	// Quote is the resolved pricing tier
	Quote TierQuote `json:"quote"`

	// EffectiveMonthlyPriceUSD is the tier price or the negotiated price
	EffectiveMonthlyPriceUSD decimal.Decimal `json:"effective_monthly_price_usd"`

	// BaselineTicketsPerMonth is the assumed ticket volume before TRACEFLOW
	BaselineTicketsPerMonth decimal.Decimal `json:"baseline_tickets_per_month"`

	// TicketsSavedPerMonth is the baseline reduced by the expected percentage
	TicketsSavedPerMonth decimal.Decimal `json:"tickets_saved_per_month"`

	// EngineeringHoursPerWeek is the whole number of hours reclaimed weekly
	EngineeringHoursPerWeek int64 `json:"engineering_hours_per_week"`

	ToolSavingsAnnualUSD        decimal.Decimal `json:"tool_savings_annual_usd"`
	SupportSavingsAnnualUSD     decimal.Decimal `json:"support_savings_annual_usd"`
	EngineeringSavingsAnnualUSD decimal.Decimal `json:"engineering_savings_annual_usd"`
	TotalAnnualSavingsUSD       decimal.Decimal `json:"total_annual_savings_usd"`

	// AnnualProductCostUSD is twelve months of the effective price
	AnnualProductCostUSD decimal.Decimal `json:"annual_product_cost_usd"`

	// ROIPercentage is total savings over annual cost, rounded half-up
	ROIPercentage int64 `json:"roi_percentage"`

	// ROIDefined is false when the annual cost is zero
	ROIDefined bool `json:"roi_defined"`

	// Assumptions lists the model constants the estimate relied on
	Assumptions []Assumption `json:"assumptions,omitempty"`
}

// RoundedSavings holds the display values of an estimate.
type RoundedSavings struct {
	MonthlyPriceUSD             int64 `json:"monthly_price_usd"`
	ToolSavingsAnnualUSD        int64 `json:"tool_savings_annual_usd"`
	SupportSavingsAnnualUSD     int64 `json:"support_savings_annual_usd"`
	EngineeringSavingsAnnualUSD int64 `json:"engineering_savings_annual_usd"`
	TotalAnnualSavingsUSD       int64 `json:"total_annual_savings_usd"`
	ROIPercentage               int64 `json:"roi_percentage"`
	ROIDefined                  bool  `json:"roi_defined"`
}

// Rounded rounds every monetary field half-up to whole dollars.
// The total is rounded from its exact value, not summed from rounded parts.
func (e *SavingsEstimate) Rounded() RoundedSavings {
	return RoundedSavings{
		MonthlyPriceUSD:             RoundUSD(e.EffectiveMonthlyPriceUSD),
		ToolSavingsAnnualUSD:        RoundUSD(e.ToolSavingsAnnualUSD),
		SupportSavingsAnnualUSD:     RoundUSD(e.SupportSavingsAnnualUSD),
		EngineeringSavingsAnnualUSD: RoundUSD(e.EngineeringSavingsAnnualUSD),
		TotalAnnualSavingsUSD:       RoundUSD(e.TotalAnnualSavingsUSD),
		ROIPercentage:               e.ROIPercentage,
		ROIDefined:                  e.ROIDefined,
	}
}

// RoundUSD rounds half-up to a whole number. Every amount the calculator
// produces is non-negative, so half-away-from-zero is half-up here.
// Values outside the int64 range saturate instead of wrapping.
func RoundUSD(d decimal.Decimal) int64 {
	n, ok := WholeUSD(d)
	if ok {
		return n
	}
	if d.IsNegative() {
		return math.MinInt64
	}
	return math.MaxInt64
}

// WholeUSD rounds d half-up and reports whether the result fits in an int64.
func WholeUSD(d decimal.Decimal) (int64, bool) {
	r := d.Round(0)
	if !r.BigInt().IsInt64() {
		return 0, false
	}
	return r.IntPart(), true
}

// AssumptionSource indicates where an assumption came from
type AssumptionSource string

const (
	AssumptionFromDefault AssumptionSource = "default"
	AssumptionFromConfig  AssumptionSource = "config"
)

// Assumption documents one constant the savings model applied.
type Assumption struct {
	Component string           `json:"component"`
	Attribute string           `json:"attribute"`
	Value     string           `json:"value"`
	Unit      string           `json:"unit"`
	Source    AssumptionSource `json:"source"`
	Reason    string           `json:"reason"`
}
