package model

import (
	"strings"

	"github.com/shopspring/decimal"
)

// DisplayPlaces is the number of decimal places used when rendering amounts.
const DisplayPlaces = 2

// maxAmountExponent bounds the decimal exponent of an amount. Rendering or
// comparing a decimal rescales it by 10^exponent.
const maxAmountExponent = 18

// MaxAmount is the largest accepted amount.
var MaxAmount = decimal.New(1, 15)

// ParseAmount parses user input into a positive decimal amount.
// Surrounding whitespace is ignored.
func ParseAmount(text string) (decimal.Decimal, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return decimal.Zero, invalidAmount()
	}

	amount, err := decimal.NewFromString(text)
	if err != nil {
		return decimal.Zero, invalidAmount()
	}

	if exp := amount.Exponent(); exp > maxAmountExponent || exp < -maxAmountExponent {
		return decimal.Zero, invalidAmount()
	}

	if !amount.IsPositive() || amount.GreaterThan(MaxAmount) {
		return decimal.Zero, invalidAmount()
	}

	return amount, nil
}

func invalidAmount() *ValidationError {
	return &ValidationError{Field: "amount", Message: InvalidAmountMessage}
}

// ConversionRequest asks for Amount of From expressed in To.
type ConversionRequest struct {
	Amount decimal.Decimal `json:"amount"`
	From   string          `json:"from"`
	To     string          `json:"to"`
}

// NewConversionRequest validates amountText and builds a request.
// Currency codes are taken as given; they come from the loaded catalog.
func NewConversionRequest(amountText string, sel Selection) (ConversionRequest, error) {
	amount, err := ParseAmount(amountText)
	if err != nil {
		return ConversionRequest{}, err
	}
	return ConversionRequest{Amount: amount, From: sel.From, To: sel.To}, nil
}

// ConversionResult is the converted value of a request.
type ConversionResult struct {
	Request ConversionRequest `json:"request"`
	Value   decimal.Decimal   `json:"value"`
	Date    string            `json:"date,omitempty"` // Rate date as reported by the source (YYYY-MM-DD)
}

// FromText renders the original amount, e.g. "100.00 EUR".
func (r ConversionResult) FromText() string {
	return r.Request.Amount.StringFixed(DisplayPlaces) + " " + r.Request.From
}

// ToText renders the converted amount, e.g. "108.23 USD".
func (r ConversionResult) ToText() string {
	return r.Value.StringFixed(DisplayPlaces) + " " + r.Request.To
}

// String renders "100.00 EUR = 108.23 USD".
func (r ConversionResult) String() string {
	return r.FromText() + " = " + r.ToText()
}
