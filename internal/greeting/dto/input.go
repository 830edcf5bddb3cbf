package dto

type CreatePageInput struct {
	Slug     string
	Title    string
	Message  string
	IsActive bool
}

type UpdatePageInput struct {
	ID       string
	Slug     string
	Title    string
	Message  string
	IsActive bool
}

// LeadCapturedPayload is the body of the lead.captured event.
type LeadCapturedPayload struct {
	LeadID   string `json:"lead_id"`
	PageID   string `json:"page_id"`
	PageSlug string `json:"page_slug"`
	Email    string `json:"email"`
}
