package model

import "github.com/shopspring/decimal"

type Product struct {
	BaseModel
	CategoryID string          `db:"category_id" json:"category_id"`
	Name       string          `db:"name" json:"name"`
	CostPrice  decimal.Decimal `db:"cost_price" json:"cost_price"`
	ImageURL   *string         `db:"image_url" json:"image_url"` // Nullable
}

// Cost prices are stored as NUMERIC(14,4).
const CostPriceScale = 4

// MaxCostPrice is the exclusive upper bound of a storable cost price.
var MaxCostPrice = decimal.New(1, 10)
