package core

import (
	"context"
	"sync"

	"github.com/jmylchreest/fxui/internal/adapter/rates"
	"github.com/jmylchreest/fxui/internal/model"
)

// Converter validates conversion input and calls the rates source.
type Converter struct {
	source rates.Source
}

// NewConverter creates a Converter.
func NewConverter(source rates.Source) *Converter {
	return &Converter{source: source}
}

// Convert converts amountText between the selected currencies.
// Invalid amounts fail with a *model.ValidationError before any request
// is made. Converting a currency into itself needs no request.
func (c *Converter) Convert(ctx context.Context, amountText string, sel model.Selection) (*model.ConversionResult, error) {
	req, err := model.NewConversionRequest(amountText, sel)
	if err != nil {
		return nil, err
	}

	if req.From != "" && req.From == req.To {
		return &model.ConversionResult{Request: req, Value: req.Amount}, nil
	}

	return c.source.Convert(ctx, req)
}

// RequestTracker orders in-flight requests so only the most recently
// issued one is applied. Issuing a new request cancels the previous one.
type RequestTracker struct {
	mu      sync.Mutex
	current uint64
	cancel  context.CancelFunc
}

// Begin starts a new request derived from parent and returns its token.
func (t *RequestTracker) Begin(parent context.Context) (uint64, context.Context) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.cancel != nil {
		t.cancel()
	}

	ctx, cancel := context.WithCancel(parent)
	t.current++
	t.cancel = cancel
	return t.current, ctx
}

// IsCurrent reports whether token belongs to the most recently issued request.
func (t *RequestTracker) IsCurrent(token uint64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return token != 0 && token == t.current
}

// Finish releases the context of token if it is still current.
// Returns whether the token was current.
func (t *RequestTracker) Finish(token uint64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if token == 0 || token != t.current {
		return false
	}
	if t.cancel != nil {
		t.cancel()
		t.cancel = nil
	}
	return true
}

// Cancel aborts the in-flight request, if any. Its result will be discarded.
func (t *RequestTracker) Cancel() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.cancel != nil {
		t.cancel()
		t.cancel = nil
	}
	t.current++
}
