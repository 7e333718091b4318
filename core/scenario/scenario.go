// Package scenario evaluates many calculator inputs at once: named
// scenarios from a YAML file, or a sweep across session volumes.
package scenario

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"traceflow-pricing/core/types"
	"traceflow-pricing/internal/errors"
)

// File is the YAML document holding scenarios.
type File struct {
	Scenarios []Scenario `yaml:"scenarios"`
}

// Scenario is a named set of calculator inputs. Every field except the
// negotiated price is required; money stays decimal from the wire onward.
type Scenario struct {
	Name                       string           `json:"name"`
	MonthlySessions            *int64           `json:"monthly_sessions"`
	CurrentMonthlyCostUSD      *decimal.Decimal `json:"current_monthly_cost_usd"`
	ExpectedTicketReductionPct *decimal.Decimal `json:"expected_ticket_reduction_pct"`
	NegotiatedMonthlyPriceUSD  *decimal.Decimal `json:"negotiated_monthly_price_usd,omitempty"`
}

// UnmarshalYAML decodes numbers from their literal text so money fields
// never pass through float64.
func (s *Scenario) UnmarshalYAML(value *yaml.Node) error {
	var raw struct {
		Name                       string     `yaml:"name"`
		MonthlySessions            *int64     `yaml:"monthly_sessions"`
		CurrentMonthlyCostUSD      *yaml.Node `yaml:"current_monthly_cost_usd"`
		ExpectedTicketReductionPct *yaml.Node `yaml:"expected_ticket_reduction_pct"`
		NegotiatedMonthlyPriceUSD  *yaml.Node `yaml:"negotiated_monthly_price_usd"`
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}

	out := Scenario{Name: raw.Name, MonthlySessions: raw.MonthlySessions}
	var err error
	if out.CurrentMonthlyCostUSD, err = yamlDecimal(raw.CurrentMonthlyCostUSD); err != nil {
		return err
	}
	if out.ExpectedTicketReductionPct, err = yamlDecimal(raw.ExpectedTicketReductionPct); err != nil {
		return err
	}
	if out.NegotiatedMonthlyPriceUSD, err = yamlDecimal(raw.NegotiatedMonthlyPriceUSD); err != nil {
		return err
	}
	*s = out
	return nil
}

func yamlDecimal(n *yaml.Node) (*decimal.Decimal, error) {
	if n == nil || n.Tag == "!!null" {
		return nil, nil
	}
	if n.Kind != yaml.ScalarNode {
		return nil, fmt.Errorf("line %d: expected a number", n.Line)
	}
	d, err := decimal.NewFromString(n.Value)
	if err != nil {
		return nil, fmt.Errorf("line %d: %q is not a number", n.Line, n.Value)
	}
	return &d, nil
}

// Validate checks that every required input is present
func (s Scenario) Validate() error {
	var missing string
	switch {
	case s.MonthlySessions == nil:
		missing = "monthly_sessions"
	case s.CurrentMonthlyCostUSD == nil:
		missing = "current_monthly_cost_usd"
	case s.ExpectedTicketReductionPct == nil:
		missing = "expected_ticket_reduction_pct"
	default:
		return nil
	}
	return errors.InvalidField(missing, nil, "is required").WithContext("scenario", s.Name)
}

// Input converts the scenario to calculator input
func (s Scenario) Input() (types.CalculatorInput, error) {
	if err := s.Validate(); err != nil {
		return types.CalculatorInput{}, err
	}
	return types.CalculatorInput{
		MonthlySessions:            *s.MonthlySessions,
		CurrentMonthlyCostUSD:      *s.CurrentMonthlyCostUSD,
		ExpectedTicketReductionPct: *s.ExpectedTicketReductionPct,
		NegotiatedMonthlyPriceUSD:  s.NegotiatedMonthlyPriceUSD,
	}, nil
}

// LoadFile reads a scenario file
func LoadFile(path string) ([]Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Config("reading scenarios "+path, err)
	}
	return Parse(data)
}

// Parse decodes a scenario document. Every scenario needs a unique name
// and all required inputs.
func Parse(data []byte) ([]Scenario, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, errors.Parsing("decoding scenarios", err)
	}
	if len(f.Scenarios) == 0 {
		return nil, errors.Input("scenario file defines no scenarios")
	}

	seen := make(map[string]bool, len(f.Scenarios))
	for i, s := range f.Scenarios {
		if s.Name == "" {
			return nil, errors.Newf(errors.TypeInput, "scenario %d has no name", i)
		}
		if seen[s.Name] {
			return nil, errors.Newf(errors.TypeInput, "duplicate scenario name %q", s.Name)
		}
		seen[s.Name] = true
		if err := s.Validate(); err != nil {
			return nil, err
		}
	}

	return f.Scenarios, nil
}
