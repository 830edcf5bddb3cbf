package model

import "time"

// GreetingPage is a public landing page reached through a QR code.
type GreetingPage struct {
	BaseModel
	Slug     string `db:"slug" json:"slug"`
	Title    string `db:"title" json:"title"`
	Message  string `db:"message" json:"message"`
	IsActive bool   `db:"is_active" json:"is_active"`
}

type Lead struct {
	ID        string    `db:"id" json:"id"`
	PageID    string    `db:"page_id" json:"page_id"`
	Email     string    `db:"email" json:"email"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
