// Package output provides output formatters for currencies and conversions.
package output

import (
	"fmt"
	"io"

	"github.com/jmylchreest/fxui/internal/model"
)

// Formatter formats catalog listings and conversion results.
type Formatter interface {
	// FormatCurrencies writes the currency list to the writer.
	FormatCurrencies(w io.Writer, currencies []model.Currency) error

	// FormatConversion writes a single conversion result to the writer.
	FormatConversion(w io.Writer, result *model.ConversionResult) error
}

// FormatType represents an output format type.
type FormatType string

const (
	FormatPlain    FormatType = "plain"
	FormatJSON     FormatType = "json"
	FormatYAML     FormatType = "yaml"
	FormatTemplate FormatType = "template"
)

// FormatterOptions configures formatter behavior.
type FormatterOptions struct {
	Template  string // Go template for FormatTemplate
	ShowIndex bool   // Show 1-based index prefix in currency listings

	// Indexes maps a currency code to its 1-based position in the full
	// catalog. When set, listings print these instead of the row number,
	// so filtered or sorted output still shows indexes that resolve.
	Indexes map[string]int
}

// index returns the listing index for the i-th (0-based) listed currency.
func (o FormatterOptions) index(i int, c model.Currency) int {
	if o.Indexes != nil {
		if idx, ok := o.Indexes[c.Code]; ok {
			return idx
		}
	}
	return i + 1
}

// DefaultFormatterOptions returns sensible defaults for plain output.
func DefaultFormatterOptions() FormatterOptions {
	return FormatterOptions{
		ShowIndex: false,
	}
}

// NewFormatter creates a formatter for the specified format type.
func NewFormatter(format FormatType, opts FormatterOptions) (Formatter, error) {
	switch format {
	case FormatJSON:
		return NewJSONFormatter(opts), nil
	case FormatYAML:
		return NewYAMLFormatter(opts), nil
	case FormatTemplate:
		if opts.Template == "" {
			return nil, fmt.Errorf("template format requires a template")
		}
		return NewTemplateFormatter(opts)
	case FormatPlain, "":
		return NewPlainFormatter(opts), nil
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}
}

// conversionRecord is the structured form of a conversion result.
type conversionRecord struct {
	Amount string `json:"amount" yaml:"amount"`
	From   string `json:"from" yaml:"from"`
	To     string `json:"to" yaml:"to"`
	Result string `json:"result" yaml:"result"`
	Date   string `json:"date,omitempty" yaml:"date,omitempty"`
	Text   string `json:"text" yaml:"text"`
}

func newConversionRecord(r *model.ConversionResult) conversionRecord {
	return conversionRecord{
		Amount: r.Request.Amount.StringFixed(model.DisplayPlaces),
		From:   r.Request.From,
		To:     r.Request.To,
		Result: r.Value.StringFixed(model.DisplayPlaces),
		Date:   r.Date,
		Text:   r.String(),
	}
}
