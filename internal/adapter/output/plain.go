package output

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/jmylchreest/fxui/internal/model"
)

// PlainFormatter formats output as human-readable text.
type PlainFormatter struct {
	opts FormatterOptions
}

// NewPlainFormatter creates a new plain text formatter.
func NewPlainFormatter(opts FormatterOptions) *PlainFormatter {
	return &PlainFormatter{opts: opts}
}

// FormatCurrencies writes one "CODE - Name" line per currency.
func (f *PlainFormatter) FormatCurrencies(w io.Writer, currencies []model.Currency) error {
	var sb strings.Builder
	for i, c := range currencies {
		if f.opts.ShowIndex {
			sb.WriteString(fmt.Sprintf("[%d] ", f.opts.index(i, c)))
		}
		sb.WriteString(c.Label())
		sb.WriteString("\n")
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

// FormatConversion writes "100.00 EUR = 108.23 USD".
func (f *PlainFormatter) FormatConversion(w io.Writer, result *model.ConversionResult) error {
	_, err := fmt.Fprintln(w, result.String())
	return err
}

// TemplateFormatter renders output through a user-supplied Go template.
// Currency templates run once per currency with {{.Index}}, {{.Code}}, {{.Name}}
// and {{.Label}}; conversion templates see the conversion record fields
// ({{.Amount}}, {{.From}}, {{.To}}, {{.Result}}, {{.Date}}, {{.Text}}).
type TemplateFormatter struct {
	opts     FormatterOptions
	template *template.Template
}

// NewTemplateFormatter parses opts.Template.
func NewTemplateFormatter(opts FormatterOptions) (*TemplateFormatter, error) {
	tmpl, err := template.New("output").Funcs(templateFuncs()).Parse(opts.Template)
	if err != nil {
		return nil, fmt.Errorf("invalid template: %w", err)
	}
	return &TemplateFormatter{opts: opts, template: tmpl}, nil
}

// currencyData is the template data for a single currency.
type currencyData struct {
	Index int
	Code  string
	Name  string
	Label string
}

// FormatCurrencies executes the template for every currency.
func (f *TemplateFormatter) FormatCurrencies(w io.Writer, currencies []model.Currency) error {
	for i, c := range currencies {
		data := currencyData{Index: f.opts.index(i, c), Code: c.Code, Name: c.Name, Label: c.Label()}
		if err := f.execute(w, data); err != nil {
			return err
		}
	}
	return nil
}

// FormatConversion executes the template once for the result.
func (f *TemplateFormatter) FormatConversion(w io.Writer, result *model.ConversionResult) error {
	return f.execute(w, newConversionRecord(result))
}

func (f *TemplateFormatter) execute(w io.Writer, data any) error {
	var sb strings.Builder
	if err := f.template.Execute(&sb, data); err != nil {
		return err
	}
	out := sb.String()
	if !strings.HasSuffix(out, "\n") {
		out += "\n"
	}
	_, err := io.WriteString(w, out)
	return err
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"upper": strings.ToUpper,
		"lower": strings.ToLower,
		"pad": func(width int, s string) string {
			if len(s) >= width {
				return s
			}
			return s + strings.Repeat(" ", width-len(s))
		},
	}
}
