package dto

type RegisterRequestDTO struct {
	Phone    string `json:"phone" validate:"required"`
	Password string `json:"password" validate:"required,min=8"`
	Referral string `json:"referCode" validate:"required"`
}

type RegisterResponseDTO struct {
	Message      string `json:"message"`
	ReferralCode string `json:"referralCode"`
}

type LoginRequestDTO struct {
	Phone    string `json:"phone" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResponseDTO struct {
	Message      string `json:"message"`
	Token        string `json:"token"`
	ReferralCode string `json:"referralCode"`
}
