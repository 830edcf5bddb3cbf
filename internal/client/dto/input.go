package dto

type CreateClientInput struct {
	Login       string
	Password    string
	Email       string
	Phone       string
	Location    string
	CompanyName string
}

type UpdateClientInput struct {
	ID          string
	Login       string
	Password    string // Empty keeps the current password
	Email       string
	Phone       string
	Location    string
	CompanyName string
}
