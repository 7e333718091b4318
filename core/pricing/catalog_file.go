package pricing

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"traceflow-pricing/core/types"
	"traceflow-pricing/internal/errors"
)

// catalogFile is the HCL shape of a tier catalog:
//
//	currency = "USD"
//
//	bounds {
//	  min_sessions = 10000
//	  max_sessions = 5000000
//	}
//
//	tier "starter" {
//	  max_sessions      = 100000
//	  monthly_price_usd = 499
//	}
//
// A tier without monthly_price_usd is a custom-quote tier and must come last.
type catalogFile struct {
	Currency string       `hcl:"currency,optional"`
	Bounds   *boundsBlock `hcl:"bounds,block"`
	Tiers    []tierBlock  `hcl:"tier,block"`
}

type boundsBlock struct {
	MinSessions int64 `hcl:"min_sessions"`
	MaxSessions int64 `hcl:"max_sessions"`
}

type tierBlock struct {
	Name            string `hcl:"name,label"`
	MaxSessions     int64  `hcl:"max_sessions"`
	MonthlyPriceUSD *int64 `hcl:"monthly_price_usd,optional"`
}

// LoadCatalogFile reads and validates an HCL (or HCL-JSON, by .json
// extension) catalog file.
func LoadCatalogFile(path string) (*Catalog, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Config("reading catalog "+path, err)
	}
	return ParseCatalog(src, path)
}

// ParseCatalog decodes a catalog from src. filename is used in diagnostics
// and to pick the syntax.
func ParseCatalog(src []byte, filename string) (*Catalog, error) {
	parser := hclparse.NewParser()

	var (
		file  *hcl.File
		diags hcl.Diagnostics
	)
	if strings.EqualFold(filepath.Ext(filename), ".json") {
		file, diags = parser.ParseJSON(src, filename)
	} else {
		file, diags = parser.ParseHCL(src, filename)
	}
	if diags.HasErrors() {
		return nil, errors.Parsing("parsing catalog "+filename, diags)
	}

	var cf catalogFile
	if diags := gohcl.DecodeBody(file.Body, nil, &cf); diags.HasErrors() {
		return nil, errors.Parsing("decoding catalog "+filename, diags)
	}

	return NewCatalog(cf.table(), filename)
}

func (cf catalogFile) table() types.TierTable {
	table := types.TierTable{
		Currency: types.Currency(strings.ToUpper(cf.Currency)),
		Tiers:    make([]types.PricingTier, 0, len(cf.Tiers)),
	}

	for _, tb := range cf.Tiers {
		table.Tiers = append(table.Tiers, types.PricingTier{
			Name:            tb.Name,
			MaxSessions:     tb.MaxSessions,
			MonthlyPriceUSD: tb.MonthlyPriceUSD,
		})
	}

	if cf.Bounds != nil {
		table.Bounds = types.SessionBounds{Min: cf.Bounds.MinSessions, Max: cf.Bounds.MaxSessions}
	} else if n := len(table.Tiers); n > 0 {
		table.Bounds = types.SessionBounds{Min: 0, Max: table.Tiers[n-1].MaxSessions}
	}

	return table
}
