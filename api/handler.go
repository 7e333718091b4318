// Package api - HTTP handlers for the calculator
// Handlers wrap the resolver and estimator - they contain NO pricing logic.
package api

import (
	"net/http"

	terrors "traceflow-pricing/internal/errors"
)

// handleTiers handles GET /v1/tiers
func (s *Server) handleTiers(w http.ResponseWriter, r *http.Request) {
	catalog := s.store.Load()
	table := catalog.Table()
	s.writeJSON(w, TiersResponse{
		Currency: table.Currency,
		Source:   catalog.Source(),
		Hash:     catalog.Hash(),
		Tiers:    table.Tiers,
		Bounds:   table.Bounds,
	}, http.StatusOK)
}

// handleResolve handles POST /v1/tiers/resolve
func (s *Server) handleResolve(w http.ResponseWriter, r *http.Request) {
	var req ResolveRequest
	if !s.decode(w, r, &req) {
		return
	}
	if req.MonthlySessions == nil {
		s.writeDomainError(w, r, terrors.InvalidField("monthly_sessions", nil, "is required"))
		return
	}

	quote, err := s.store.Resolve(*req.MonthlySessions)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	s.metrics.resolutions.WithLabelValues(quote.TierName()).Inc()

	resp := ResolveResponse{
		MonthlySessions: quote.Sessions,
		Tier:            quote.TierName(),
		Custom:          quote.Custom,
	}
	if !quote.Custom {
		price := quote.MonthlyPriceUSD
		resp.PriceUSD = &price
	}
	s.writeJSON(w, resp, http.StatusOK)
}

// handleEstimate handles POST /v1/savings/estimate
func (s *Server) handleEstimate(w http.ResponseWriter, r *http.Request) {
	var req EstimateRequest
	if !s.decode(w, r, &req) {
		return
	}
	in, err := req.Input()
	if err != nil {
		s.metrics.estimates.WithLabelValues("invalid").Inc()
		s.writeDomainError(w, r, err)
		return
	}

	est, err := s.estimator.Estimate(in)
	if err != nil {
		s.metrics.estimates.WithLabelValues(outcomeLabel(err)).Inc()
		s.writeDomainError(w, r, err)
		return
	}
	s.metrics.estimates.WithLabelValues("ok").Inc()
	s.metrics.resolutions.WithLabelValues(est.Quote.TierName()).Inc()

	withAssumptions := r.URL.Query().Get("assumptions") == "true"
	s.writeJSON(w, newEstimateResponse(est, withAssumptions), http.StatusOK)
}

// handleScenarios handles POST /v1/scenarios
func (s *Server) handleScenarios(w http.ResponseWriter, r *http.Request) {
	var req ScenariosRequest
	if !s.decode(w, r, &req) {
		return
	}
	if len(req.Scenarios) == 0 {
		s.writeDomainError(w, r, terrors.Input("scenarios must not be empty"))
		return
	}
	for i, sc := range req.Scenarios {
		if err := sc.Validate(); err != nil {
			if e, ok := terrors.As(err); ok {
				e.WithContext("index", i)
			}
			s.metrics.estimates.WithLabelValues("invalid").Inc()
			s.writeDomainError(w, r, err)
			return
		}
	}

	outcomes, err := s.runner.RunAll(r.Context(), req.Scenarios)
	if err != nil {
		// Only cancellation reaches here; the client has gone away.
		s.writeError(w, r, "CANCELED", err.Error(), http.StatusServiceUnavailable, nil)
		return
	}

	resp := ScenariosResponse{Results: make([]ScenarioResult, 0, len(outcomes))}
	for _, o := range outcomes {
		result := ScenarioResult{Name: o.Scenario.Name}
		if o.Err != nil {
			body := errorBody(o.Err)
			result.Error = &body
			resp.Failed++
			s.metrics.estimates.WithLabelValues(outcomeLabel(o.Err)).Inc()
		} else {
			result.Estimate = newEstimateResponse(o.Estimate, false)
			s.metrics.estimates.WithLabelValues("ok").Inc()
		}
		resp.Results = append(resp.Results, result)
	}

	s.writeJSON(w, resp, http.StatusOK)
}

func outcomeLabel(err error) string {
	if terrors.IsType(err, terrors.TypeInput) {
		return "invalid"
	}
	return "error"
}
