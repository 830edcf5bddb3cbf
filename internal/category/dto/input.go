package dto

type CreateCategoryInput struct {
	Name string
}

type UpdateCategoryInput struct {
	ID   string
	Name string
}
