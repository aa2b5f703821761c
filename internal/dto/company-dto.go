package dto

type CreateCompanyDTO struct {
	Name    string `json:"name" validate:"required,min=1"`
	Address string `json:"address" validate:"required"`
	Phone   string `json:"phone" validate:"required,phone_number"`
}
