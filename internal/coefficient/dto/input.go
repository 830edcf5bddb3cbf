package dto

import "github.com/shopspring/decimal"

type CreateCoefficientInput struct {
	ClientID    string
	ProductID   string
	Coefficient decimal.Decimal
}

type UpdateCoefficientInput struct {
	ID          string
	Coefficient decimal.Decimal
}
