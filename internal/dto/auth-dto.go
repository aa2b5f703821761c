package dto

// RegisterDTO — регистрация компании вместе с её администратором.
type RegisterDTO struct {
	FirstName string           `json:"first_name" validate:"required,min=1"`
	LastName  string           `json:"last_name" validate:"required,min=1"`
	Email     string           `json:"email" validate:"required,email"`
	Phone     string           `json:"phone" validate:"required,phone_number"`
	Password  string           `json:"password" validate:"required,min=8"`
	Company   CreateCompanyDTO `json:"company" validate:"required"`
}

type LoginDTO struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshTokenDTO struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type TokenPairDTO struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}
