package dto

type CategoryDTO struct {
	Name string `json:"name" validate:"required"`
}
