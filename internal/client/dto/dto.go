package dto

type ClientFilters struct {
	SearchQuery string // login, company name or email
	Page        int
	PageSize    int
}
