package dto

type CategoryFilters struct {
	SearchQuery string // matches name, case-insensitive
	Page        int
	PageSize    int
}
