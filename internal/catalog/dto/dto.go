package dto

type PriceListFilters struct {
	CategoryID  string
	SearchQuery string
}
