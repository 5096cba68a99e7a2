package rates

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/jmylchreest/fxui/internal/model"
)

// decodeCurrencyObject decodes a {"CODE": "Name", ...} object keeping key order.
// encoding/json maps drop ordering, so the object is walked token by token.
func decodeCurrencyObject(r io.Reader) ([]model.Currency, error) {
	dec := json.NewDecoder(r)

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("expected JSON object, got %v", tok)
	}

	var currencies []model.Currency
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		code, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected key token %v", keyTok)
		}

		var name string
		if err := dec.Decode(&name); err != nil {
			return nil, fmt.Errorf("currency %s: %w", code, err)
		}

		currencies = append(currencies, model.Currency{Code: code, Name: name})
	}

	if _, err := dec.Token(); err != nil {
		return nil, err
	}

	return currencies, nil
}
