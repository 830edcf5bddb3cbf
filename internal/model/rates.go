package model

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	CurrencyEUR = "EUR"
	CurrencyUSD = "USD"
)

// Rates holds the value of one EUR and one USD in the base currency.
// A nil rate means the rate is unknown.
type Rates struct {
	Base      string           `json:"base"`
	EUR       *decimal.Decimal `json:"eur"`
	USD       *decimal.Decimal `json:"usd"`
	FetchedAt *time.Time       `json:"fetched_at,omitempty"`
}

// Known reports whether at least one rate is available.
func (r Rates) Known() bool {
	return r.EUR != nil || r.USD != nil
}

// Convert turns an amount in the base currency into code. It reports false
// when the rate is unknown.
func (r Rates) Convert(amount decimal.Decimal, code string) (decimal.Decimal, bool) {
	var rate *decimal.Decimal
	switch code {
	case r.Base:
		return amount, true
	case CurrencyEUR:
		rate = r.EUR
	case CurrencyUSD:
		rate = r.USD
	}
	if rate == nil || !rate.IsPositive() {
		return decimal.Zero, false
	}
	return amount.DivRound(*rate, 4), true
}
