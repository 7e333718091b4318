// Package api - API types for the pricing calculator
// These types define the contract for the /v1 endpoints.
// API is stateless, idempotent, and deterministic.
package api

import (
	"github.com/shopspring/decimal"

	"traceflow-pricing/core/scenario"
	"traceflow-pricing/core/types"
)

// ResolveRequest is the input to POST /v1/tiers/resolve
type ResolveRequest struct {
	MonthlySessions *int64 `json:"monthly_sessions"`
}

// ResolveResponse carries either a price or custom=true
type ResolveResponse struct {
	MonthlySessions int64  `json:"monthly_sessions"`
	Tier            string `json:"tier"`
	PriceUSD        *int64 `json:"price_usd,omitempty"`
	Custom          bool   `json:"custom,omitempty"`
}

// EstimateRequest is the input to POST /v1/savings/estimate
type EstimateRequest struct {
	MonthlySessions            *int64           `json:"monthly_sessions"`
	CurrentMonthlyCostUSD      *decimal.Decimal `json:"current_monthly_cost_usd"`
	ExpectedTicketReductionPct *decimal.Decimal `json:"expected_ticket_reduction_pct"`
	NegotiatedMonthlyPriceUSD  *decimal.Decimal `json:"negotiated_monthly_price_usd,omitempty"`
}

// Input converts the request to calculator input. Missing required
// fields are input errors naming the field.
func (r *EstimateRequest) Input() (types.CalculatorInput, error) {
	return scenario.Scenario{
		MonthlySessions:            r.MonthlySessions,
		CurrentMonthlyCostUSD:      r.CurrentMonthlyCostUSD,
		ExpectedTicketReductionPct: r.ExpectedTicketReductionPct,
		NegotiatedMonthlyPriceUSD:  r.NegotiatedMonthlyPriceUSD,
	}.Input()
}

// EstimateResponse is the output of POST /v1/savings/estimate. Amounts are
// whole dollars rounded half-up from full-precision values.
type EstimateResponse struct {
	Tier                        string             `json:"tier"`
	Custom                      bool               `json:"custom"`
	MonthlyPriceUSD             int64              `json:"monthly_price_usd"`
	ToolSavingsAnnualUSD        int64              `json:"tool_savings_annual_usd"`
	SupportSavingsAnnualUSD     int64              `json:"support_savings_annual_usd"`
	EngineeringSavingsAnnualUSD int64              `json:"engineering_savings_annual_usd"`
	TotalAnnualSavingsUSD       int64              `json:"total_annual_savings_usd"`
	ROIPercentage               *int64             `json:"roi_percentage"`
	EngineeringHoursPerWeek     int64              `json:"engineering_hours_per_week"`
	Assumptions                 []types.Assumption `json:"assumptions,omitempty"`
}

func newEstimateResponse(est *types.SavingsEstimate, withAssumptions bool) *EstimateResponse {
	r := est.Rounded()
	resp := &EstimateResponse{
		Tier:                        est.Quote.TierName(),
		Custom:                      est.Quote.Custom,
		MonthlyPriceUSD:             r.MonthlyPriceUSD,
		ToolSavingsAnnualUSD:        r.ToolSavingsAnnualUSD,
		SupportSavingsAnnualUSD:     r.SupportSavingsAnnualUSD,
		EngineeringSavingsAnnualUSD: r.EngineeringSavingsAnnualUSD,
		TotalAnnualSavingsUSD:       r.TotalAnnualSavingsUSD,
		EngineeringHoursPerWeek:     est.EngineeringHoursPerWeek,
	}
	// null signals an undefined ROI (zero-price tier)
	if r.ROIDefined {
		roi := r.ROIPercentage
		resp.ROIPercentage = &roi
	}
	if withAssumptions {
		resp.Assumptions = est.Assumptions
	}
	return resp
}

// TiersResponse is the output of GET /v1/tiers
type TiersResponse struct {
	Currency types.Currency      `json:"currency"`
	Source   string              `json:"source"`
	Hash     string              `json:"hash"`
	Tiers    []types.PricingTier `json:"tiers"`
	Bounds   types.SessionBounds `json:"bounds"`
}

// ScenariosRequest is the input to POST /v1/scenarios
type ScenariosRequest struct {
	Scenarios []scenario.Scenario `json:"scenarios"`
}

// ScenarioResult is one entry of ScenariosResponse
type ScenarioResult struct {
	Name     string            `json:"name"`
	Estimate *EstimateResponse `json:"estimate,omitempty"`
	Error    *ErrorBody        `json:"error,omitempty"`
}

// ScenariosResponse is the output of POST /v1/scenarios
type ScenariosResponse struct {
	Results []ScenarioResult `json:"results"`
	Failed  int              `json:"failed"`
}

// ErrorBody is the error envelope payload
type ErrorBody struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Context map[string]interface{} `json:"context,omitempty"`
}

// ErrorResponse wraps ErrorBody
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}
