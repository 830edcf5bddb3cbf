package dto

type PageFilters struct {
	ActiveOnly bool
	Page       int
	PageSize   int
}

type LeadFilters struct {
	PageID   string
	Page     int
	PageSize int
}
