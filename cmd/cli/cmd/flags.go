// Package cmd - flag types
package cmd

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// decimalValue is a pflag.Value that parses the literal flag text, so
// money flags never pass through float64.
type decimalValue struct {
	d *decimal.Decimal
}

func newDecimalValue(d *decimal.Decimal) *decimalValue {
	return &decimalValue{d: d}
}

func (v *decimalValue) String() string {
	if v.d == nil {
		return "0"
	}
	return v.d.String()
}

func (v *decimalValue) Set(s string) error {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return fmt.Errorf("%q is not a number", s)
	}
	*v.d = d
	return nil
}

func (v *decimalValue) Type() string {
	return "decimal"
}
