package dto

type ProductFilters struct {
	CategoryID  string
	SearchQuery string // For name search
	SortBy      string // name, price, created_at
	SortOrder   string // asc, desc
	Page        int
	PageSize    int
}
