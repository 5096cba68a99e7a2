package output

import (
	"io"

	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/fxui/internal/model"
)

// YAMLFormatter formats output as YAML.
type YAMLFormatter struct {
	opts FormatterOptions
}

// NewYAMLFormatter creates a new YAML formatter.
func NewYAMLFormatter(opts FormatterOptions) *YAMLFormatter {
	return &YAMLFormatter{opts: opts}
}

// FormatCurrencies writes currencies as a YAML sequence.
func (f *YAMLFormatter) FormatCurrencies(w io.Writer, currencies []model.Currency) error {
	if currencies == nil {
		currencies = []model.Currency{}
	}
	return encodeYAML(w, currencies)
}

// FormatConversion writes a conversion result as a YAML mapping.
func (f *YAMLFormatter) FormatConversion(w io.Writer, result *model.ConversionResult) error {
	return encodeYAML(w, newConversionRecord(result))
}

func encodeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
