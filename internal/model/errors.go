package model

import (
	"errors"
	"fmt"
)

// InvalidAmountMessage is shown when the amount does not parse to a positive number.
const InvalidAmountMessage = "Please enter a valid amount greater than 0"

var (
	// ErrMissingRate is returned when a conversion response lacks the target currency.
	ErrMissingRate = errors.New("rate missing from response")

	// ErrCatalogNotLoaded is returned when converting before the catalog has loaded.
	ErrCatalogNotLoaded = errors.New("currencies are not loaded")

	// ErrEmptyCatalog is returned when the source returns no currencies.
	ErrEmptyCatalog = errors.New("no currencies returned")
)

// ValidationError is bad user input. It never reaches the network.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NetworkError is a failed request or an unexpected response shape.
type NetworkError struct {
	Op         string // "currencies" or "convert"
	URL        string
	StatusCode int // 0 when no response was received
	Err        error
}

func (e *NetworkError) Error() string {
	msg := e.Op + " request failed"
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("%s (HTTP %d)", msg, e.StatusCode)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// IsValidation reports whether err is, or wraps, a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsNetwork reports whether err is, or wraps, a NetworkError.
func IsNetwork(err error) bool {
	var ne *NetworkError
	return errors.As(err, &ne)
}
