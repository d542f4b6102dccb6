package dto

type ErrorResponse struct {
	Message string `json:"message" example:"invalid body"`
}

type MessageResponse struct {
	Message string `json:"message" example:"post deleted successfully"`
}
