package dto

import "github.com/shopspring/decimal"

type CreateProductInput struct {
	CategoryID string
	Name       string
	CostPrice  decimal.Decimal
	ImageURL   string
}

type UpdateProductInput struct {
	ID         string
	CategoryID string
	Name       string
	CostPrice  decimal.Decimal
	ImageURL   string
}
