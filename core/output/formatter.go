// Package output provides output formatting for savings estimates.
// This package produces human and machine-readable outputs.
package output

import (
	"fmt"
	"io"
	"sort"

	"traceflow-pricing/core/types"
)

// Format represents output format type
type Format string

const (
	// FormatCLI is a human-readable terminal report
	FormatCLI Format = "cli"

	// FormatJSON is machine-readable JSON
	FormatJSON Format = "json"

	// FormatMarkdown is a markdown report
	FormatMarkdown Format = "markdown"
)

// Formatter produces output in a specific format
type Formatter interface {
	// Format returns the format type
	Format() Format

	// Render produces output for the given report
	Render(w io.Writer, report *Report) error
}

// Report is a set of estimates to render together
type Report struct {
	// Title heads the report
	Title string `json:"title"`

	// Entries are rendered in order
	Entries []Entry `json:"entries"`

	// ShowAssumptions lists model assumptions after the entries
	ShowAssumptions bool `json:"-"`

	// Metadata contains execution context
	Metadata Metadata `json:"metadata"`
}

// Entry is one named estimate, or the error that prevented it
type Entry struct {
	Name     string
	Estimate *types.SavingsEstimate
	Err      error
}

// Metadata contains execution context
type Metadata struct {
	// Timestamp is when the estimate was produced
	Timestamp string `json:"timestamp"`

	// Version is the tool version
	Version string `json:"version"`

	// CatalogSource is where the tier table came from
	CatalogSource string `json:"catalog_source"`
}

// assumptions returns the assumptions of the first successful entry;
// every entry of a report shares one model.
func (r *Report) assumptions() []types.Assumption {
	for _, e := range r.Entries {
		if e.Estimate != nil {
			return e.Estimate.Assumptions
		}
	}
	return nil
}

// Registry maps formats to formatters
type Registry struct {
	formatters map[Format]Formatter
}

// NewRegistry returns a registry with every built-in formatter
func NewRegistry() *Registry {
	r := &Registry{formatters: make(map[Format]Formatter)}
	r.Register(NewCLIFormatter())
	r.Register(NewJSONFormatter())
	r.Register(NewMarkdownFormatter())
	return r
}

// Register adds a formatter, replacing any for the same format
func (r *Registry) Register(f Formatter) {
	r.formatters[f.Format()] = f
}

// Get returns the formatter for a format
func (r *Registry) Get(format Format) (Formatter, error) {
	f, ok := r.formatters[format]
	if !ok {
		return nil, fmt.Errorf("unknown output format %q (available: %v)", format, r.Formats())
	}
	return f, nil
}

// Formats lists registered formats, sorted
func (r *Registry) Formats() []Format {
	out := make([]Format, 0, len(r.formatters))
	for f := range r.formatters {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
