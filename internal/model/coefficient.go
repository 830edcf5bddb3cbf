package model

import "github.com/shopspring/decimal"

// Coefficient overrides the default 1.0 multiplier for one client/product pair.
type Coefficient struct {
	BaseModel
	ClientID    string          `db:"client_id" json:"client_id"`
	ProductID   string          `db:"product_id" json:"product_id"`
	Coefficient decimal.Decimal `db:"coefficient" json:"coefficient"`
}

// DefaultCoefficient applies when a client has no override for a product.
var DefaultCoefficient = decimal.NewFromInt(1)

// Coefficients are stored as NUMERIC(10,4).
const CoefficientScale = 4

// MaxCoefficient is the exclusive upper bound of a storable coefficient.
var MaxCoefficient = decimal.New(1, 6)

// PricedProduct is a product as one client sees it.
type PricedProduct struct {
	Product
	CategoryName string `db:"category_name" json:"category_name"`
	// Override is nil when the client has no coefficient row for the product.
	Override    *decimal.Decimal `db:"-" json:"override,omitempty"`
	HasOverride bool             `db:"-" json:"has_override"`
	Coefficient decimal.Decimal  `db:"-" json:"coefficient"`
	Price       decimal.Decimal  `db:"-" json:"price"`
	PriceEUR    *decimal.Decimal `db:"-" json:"price_eur,omitempty"`
	PriceUSD    *decimal.Decimal `db:"-" json:"price_usd,omitempty"`
}

// ApplyCoefficient fills Coefficient and Price from Override. The price is
// kept at full precision; rounding is left to the presentation layer.
func (p *PricedProduct) ApplyCoefficient() {
	k := DefaultCoefficient
	if p.Override != nil {
		k = *p.Override
	}
	p.HasOverride = p.Override != nil
	p.Coefficient = k
	p.Price = p.CostPrice.Mul(k)
}

// PriceList is the personalised catalog returned to a logged-in client.
type PriceList struct {
	ClientID   string          `json:"client_id"`
	Currency   string          `json:"currency"`
	Rates      Rates           `json:"rates"`
	Categories []Category      `json:"categories"`
	Items      []PricedProduct `json:"items"`
}
