package rates

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/time/rate"

	"github.com/jmylchreest/fxui/internal/model"
)

// maxErrorBody caps how much of an error response is kept for messages.
const maxErrorBody = 256

// FrankfurterSource talks to a Frankfurter-compatible API
// (GET /currencies, GET /latest?amount=&from=&to=).
type FrankfurterSource struct {
	baseURL *url.URL
	rawBase string
	client  *http.Client
	limiter *rate.Limiter
	opts    Options
	logger  *slog.Logger
}

// NewFrankfurterSource creates a new FrankfurterSource.
func NewFrankfurterSource(opts Options) *FrankfurterSource {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	client := opts.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}

	limiter := rate.NewLimiter(rate.Inf, 0)
	if opts.RequestsPerSecond > 0 {
		burst := opts.Burst
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), burst)
	}

	base, _ := url.Parse(strings.TrimRight(opts.BaseURL, "/"))

	return &FrankfurterSource{
		baseURL: base,
		rawBase: opts.BaseURL,
		client:  client,
		limiter: limiter,
		opts:    opts,
		logger:  logger,
	}
}

// Name returns the source identifier.
func (s *FrankfurterSource) Name() string {
	return "frankfurter"
}

// latestResponse is the body of GET /latest.
type latestResponse struct {
	Amount decimal.Decimal            `json:"amount"`
	Base   string                     `json:"base"`
	Date   string                     `json:"date"`
	Rates  map[string]decimal.Decimal `json:"rates"`
}

// Currencies fetches the catalog from GET /currencies.
func (s *FrankfurterSource) Currencies(ctx context.Context) ([]model.Currency, error) {
	endpoint, err := s.endpoint("currencies", nil)
	if err != nil {
		return nil, &model.NetworkError{Op: "currencies", Err: err}
	}

	var currencies []model.Currency
	err = s.get(ctx, "currencies", endpoint, func(body io.Reader) error {
		var decodeErr error
		currencies, decodeErr = decodeCurrencyObject(body)
		return decodeErr
	})
	if err != nil {
		return nil, err
	}

	s.logger.Debug("fetched currencies", "count", len(currencies))
	return currencies, nil
}

// Convert fetches GET /latest for the request and extracts the target value.
func (s *FrankfurterSource) Convert(ctx context.Context, req model.ConversionRequest) (*model.ConversionResult, error) {
	query := url.Values{}
	query.Set("amount", req.Amount.String())
	query.Set("from", req.From)
	query.Set("to", req.To)

	endpoint, err := s.endpoint("latest", query)
	if err != nil {
		return nil, &model.NetworkError{Op: "convert", Err: err}
	}

	var resp latestResponse
	err = s.get(ctx, "convert", endpoint, func(body io.Reader) error {
		return json.NewDecoder(body).Decode(&resp)
	})
	if err != nil {
		return nil, err
	}

	value, ok := resp.Rates[req.To]
	if !ok {
		return nil, &model.NetworkError{
			Op:  "convert",
			URL: endpoint,
			Err: fmt.Errorf("%w: %s", model.ErrMissingRate, req.To),
		}
	}

	s.logger.Debug("converted", "amount", req.Amount.String(), "from", req.From, "to", req.To, "value", value.String())

	return &model.ConversionResult{
		Request: req,
		Value:   value,
		Date:    resp.Date,
	}, nil
}

// endpoint joins path and query onto the base URL.
func (s *FrankfurterSource) endpoint(path string, query url.Values) (string, error) {
	if s.baseURL == nil || s.baseURL.Scheme == "" || s.baseURL.Host == "" {
		return "", fmt.Errorf("invalid base URL %q", s.rawBase)
	}
	u := *s.baseURL
	u.Path = strings.TrimRight(u.Path, "/") + "/" + path
	if query != nil {
		u.RawQuery = query.Encode()
	}
	return u.String(), nil
}

// get performs a throttled GET and hands a 2xx body to decode.
// All failures are returned as *model.NetworkError.
func (s *FrankfurterSource) get(ctx context.Context, op, endpoint string, decode func(io.Reader) error) error {
	if s.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opts.Timeout)
		defer cancel()
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return &model.NetworkError{Op: op, URL: endpoint, Err: err}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return &model.NetworkError{Op: op, URL: endpoint, Err: err}
	}
	httpReq.Header.Set("Accept", "application/json")

	s.logger.Debug("requesting", "op", op, "url", endpoint)

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return &model.NetworkError{Op: op, URL: endpoint, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &model.NetworkError{
			Op:         op,
			URL:        endpoint,
			StatusCode: resp.StatusCode,
			Err:        errors.New(errorMessage(snippet, resp.Status)),
		}
	}

	if err := decode(resp.Body); err != nil {
		return &model.NetworkError{Op: op, URL: endpoint, StatusCode: resp.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
	}

	return nil
}

// errorMessage extracts {"message": "..."} from an error body, falling back to the status text.
func errorMessage(body []byte, status string) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Message != "" {
		return payload.Message
	}
	if text := strings.TrimSpace(string(body)); text != "" {
		return text
	}
	return status
}
