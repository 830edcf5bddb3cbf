package model

import "time"

type Client struct {
	BaseModel
	Login        string  `db:"login" json:"login"`
	PasswordHash string  `db:"password_hash" json:"-"`
	Email        *string `db:"email" json:"email"`
	Phone        *string `db:"phone" json:"phone"`
	Location     *string `db:"location" json:"location"`
	CompanyName  *string `db:"company_name" json:"company_name"`
}

// ClientCategory grants catalog visibility of one category to one client.
type ClientCategory struct {
	ClientID   string    `db:"client_id" json:"client_id"`
	CategoryID string    `db:"category_id" json:"category_id"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}
