package output

import (
	"encoding/json"
	"io"

	"github.com/jmylchreest/fxui/internal/model"
)

// JSONFormatter formats output as indented JSON.
type JSONFormatter struct {
	opts FormatterOptions
}

// NewJSONFormatter creates a new JSON formatter.
func NewJSONFormatter(opts FormatterOptions) *JSONFormatter {
	return &JSONFormatter{opts: opts}
}

// FormatCurrencies writes currencies as a JSON array.
func (f *JSONFormatter) FormatCurrencies(w io.Writer, currencies []model.Currency) error {
	if currencies == nil {
		currencies = []model.Currency{}
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(currencies)
}

// FormatConversion writes a conversion result as a JSON object.
func (f *JSONFormatter) FormatConversion(w io.Writer, result *model.ConversionResult) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(newConversionRecord(result))
}
