package savings

import (
	"fmt"

	"github.com/shopspring/decimal"

	"traceflow-pricing/core/pricing"
	"traceflow-pricing/core/types"
	"traceflow-pricing/internal/errors"
)

var (
	hundred = decimal.NewFromInt(100)
	months  = decimal.NewFromInt(MonthsPerYear)
)

// Input ceilings keep every rounded figure inside int64.
const (
	// MaxMonthlySessions is the largest accepted session volume
	MaxMonthlySessions int64 = 1_000_000_000_000
)

// MaxMonthlyAmountUSD caps the current tooling cost and the negotiated price
var MaxMonthlyAmountUSD = decimal.New(1, 15)

// Estimator combines a tier resolver with a savings model. It holds no
// mutable state and is safe for concurrent use.
type Estimator struct {
	resolver pricing.Resolver
	model    Model
}

// NewEstimator creates an estimator. A nil resolver uses the canonical tier table.
func NewEstimator(resolver pricing.Resolver, model Model) (*Estimator, error) {
	if resolver == nil {
		resolver = pricing.DefaultCatalog()
	}
	if err := model.Validate(); err != nil {
		return nil, errors.Config("invalid savings model", err)
	}
	return &Estimator{resolver: resolver, model: model}, nil
}

var defaultEstimator = &Estimator{resolver: pricing.DefaultCatalog(), model: DefaultModel()}

// DefaultEstimator returns the estimator over the canonical tier table and default model
func DefaultEstimator() *Estimator {
	return defaultEstimator
}

// Estimate runs the canonical tier table and default model.
func Estimate(in types.CalculatorInput) (*types.SavingsEstimate, error) {
	return defaultEstimator.Estimate(in)
}

// Model returns the estimator's model
func (e *Estimator) Model() Model {
	return e.model
}

// Validate rejects inputs outside the calculator's domain. Values are
// never clamped here; the caller owns clamping to slider bounds.
func Validate(in types.CalculatorInput) error {
	if in.MonthlySessions < 0 {
		return errors.InvalidField("monthly_sessions", in.MonthlySessions, "must be non-negative")
	}
	if in.MonthlySessions > MaxMonthlySessions {
		return errors.InvalidField("monthly_sessions", in.MonthlySessions, fmt.Sprintf("must not exceed %d", MaxMonthlySessions))
	}
	if in.CurrentMonthlyCostUSD.IsNegative() {
		return errors.InvalidField("current_monthly_cost_usd", in.CurrentMonthlyCostUSD.String(), "must be non-negative")
	}
	if in.CurrentMonthlyCostUSD.GreaterThan(MaxMonthlyAmountUSD) {
		return errors.InvalidField("current_monthly_cost_usd", in.CurrentMonthlyCostUSD.String(), "must not exceed "+MaxMonthlyAmountUSD.String())
	}
	if in.ExpectedTicketReductionPct.IsNegative() || in.ExpectedTicketReductionPct.GreaterThan(hundred) {
		return errors.InvalidField("expected_ticket_reduction_pct", in.ExpectedTicketReductionPct.String(), "must be between 0 and 100")
	}
	if p := in.NegotiatedMonthlyPriceUSD; p != nil {
		if !p.IsPositive() {
			return errors.InvalidField("negotiated_monthly_price_usd", p.String(), "must be positive")
		}
		if p.GreaterThan(MaxMonthlyAmountUSD) {
			return errors.InvalidField("negotiated_monthly_price_usd", p.String(), "must not exceed "+MaxMonthlyAmountUSD.String())
		}
	}
	return nil
}

// Estimate resolves the tier for in and computes annual savings and ROI.
//
// A custom tier has no list price, so the caller must supply
// NegotiatedMonthlyPriceUSD; a negotiated price on a list-priced tier is
// rejected too. All arithmetic keeps full precision; only the engineering
// hours (whole hours per week) and the ROI percentage are rounded.
func (e *Estimator) Estimate(in types.CalculatorInput) (*types.SavingsEstimate, error) {
	if err := Validate(in); err != nil {
		return nil, err
	}

	quote, err := e.resolver.Resolve(in.MonthlySessions)
	if err != nil {
		return nil, err
	}

	price, err := effectivePrice(quote, in.NegotiatedMonthlyPriceUSD)
	if err != nil {
		return nil, err
	}

	m := e.model
	reduction := in.ExpectedTicketReductionPct.Div(hundred)

	toolMonthly := decimal.Max(decimal.Zero, in.CurrentMonthlyCostUSD.Sub(price))
	tool := toolMonthly.Mul(months)

	baselineTickets := decimal.NewFromInt(in.MonthlySessions).Div(decimal.NewFromInt(m.SessionsPerTicket))
	ticketsSaved := baselineTickets.Mul(reduction)
	support := ticketsSaved.Mul(m.CostPerTicketUSD).Mul(months)

	hours := reduction.Mul(decimal.NewFromInt(m.MaxEngineeringHoursPerWeek)).Round(0).IntPart()
	engineering := decimal.NewFromInt(hours * m.WeeksPerYear).Mul(m.EngineeringHourlyRateUSD)

	total := tool.Add(support).Add(engineering)
	annualCost := price.Mul(months)

	est := &types.SavingsEstimate{
		Input:                       in,
		Quote:                       quote,
		EffectiveMonthlyPriceUSD:    price,
		BaselineTicketsPerMonth:     baselineTickets,
		TicketsSavedPerMonth:        ticketsSaved,
		EngineeringHoursPerWeek:     hours,
		ToolSavingsAnnualUSD:        tool,
		SupportSavingsAnnualUSD:     support,
		EngineeringSavingsAnnualUSD: engineering,
		TotalAnnualSavingsUSD:       total,
		AnnualProductCostUSD:        annualCost,
		Assumptions:                 m.Assumptions(),
	}

	// A free tier has no cost to return on; report ROI as undefined
	// rather than dividing by zero.
	if annualCost.IsPositive() {
		roi, ok := types.WholeUSD(total.Mul(hundred).Div(annualCost))
		if !ok {
			return nil, errors.InvalidField("negotiated_monthly_price_usd", price.String(), "is too small for a representable ROI")
		}
		est.ROIPercentage = roi
		est.ROIDefined = true
	}

	return est, nil
}

func effectivePrice(quote types.TierQuote, negotiated *decimal.Decimal) (decimal.Decimal, error) {
	if quote.Custom {
		if negotiated == nil {
			return decimal.Zero, errors.Input("custom tier requires a negotiated monthly price").
				WithContext("field", "negotiated_monthly_price_usd").
				WithContext("monthly_sessions", quote.Sessions)
		}
		return *negotiated, nil
	}
	if negotiated != nil {
		return decimal.Zero, errors.InvalidField("negotiated_monthly_price_usd", negotiated.String(),
			"only applies to custom tiers, tier "+quote.TierName()+" has a list price")
	}
	return decimal.NewFromInt(quote.MonthlyPriceUSD), nil
}
