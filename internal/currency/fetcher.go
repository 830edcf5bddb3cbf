package currency

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fekuna/omnipos-portal/internal/model"
	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"
	"github.com/sony/gobreaker"
)

// ErrNoSource is returned when no rates URL is configured.
var ErrNoSource = errors.New("currency rates source not configured")

// Fetcher loads fresh rates from the upstream source.
type Fetcher interface {
	Fetch(ctx context.Context) (model.Rates, error)
}

// HTTPFetcher reads a JSON document of the form {"EUR": "98.1", "USD": "91.4"}
// where each value is the price of one unit in the base currency.
type HTTPFetcher struct {
	url     string
	base    string
	client  *resty.Client
	breaker *gobreaker.CircuitBreaker
}

func NewHTTPFetcher(url, base string, timeout time.Duration) *HTTPFetcher {
	client := resty.New().
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "currency-rates",
		MaxRequests: 1,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
	})

	return &HTTPFetcher{
		url:     url,
		base:    base,
		client:  client,
		breaker: breaker,
	}
}

func (f *HTTPFetcher) Fetch(ctx context.Context) (model.Rates, error) {
	if f.url == "" {
		return model.Rates{Base: f.base}, ErrNoSource
	}

	out, err := f.breaker.Execute(func() (interface{}, error) {
		return f.fetch(ctx)
	})
	if err != nil {
		return model.Rates{Base: f.base}, err
	}
	return out.(model.Rates), nil
}

func (f *HTTPFetcher) fetch(ctx context.Context) (model.Rates, error) {
	var body map[string]decimal.Decimal
	resp, err := f.client.R().
		SetContext(ctx).
		SetResult(&body).
		ForceContentType("application/json").
		Get(f.url)
	if err != nil {
		return model.Rates{}, fmt.Errorf("fetch rates: %w", err)
	}
	if resp.IsError() {
		return model.Rates{}, fmt.Errorf("fetch rates: upstream status %d", resp.StatusCode())
	}

	now := time.Now().UTC()
	rates := model.Rates{Base: f.base, FetchedAt: &now}
	if v, ok := body[model.CurrencyEUR]; ok && v.IsPositive() {
		rates.EUR = &v
	}
	if v, ok := body[model.CurrencyUSD]; ok && v.IsPositive() {
		rates.USD = &v
	}
	if !rates.Known() {
		return model.Rates{}, errors.New("fetch rates: document carries no usable rate")
	}
	return rates, nil
}
