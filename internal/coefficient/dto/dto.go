package dto

type CoefficientFilters struct {
	ClientID  string
	ProductID string
	Page      int
	PageSize  int
}
