package dto

import "time"

type WithdrawRequestDTO struct {
	UPIID  string  `json:"upiId" validate:"required"`
	Amount float64 `json:"amount" validate:"required,gt=0"`
}

type WithdrawResponseDTO struct {
	Message string `json:"message"`
}

type WithdrawalDTO struct {
	ID        int       `json:"id" example:"1"`
	Phone     string    `json:"phone" example:"9876543210"`
	UPIID     string    `json:"upiId" example:"someone@upi"`
	Amount    float64   `json:"amount" example:"150"`
	Status    string    `json:"status" example:"Pending"`
	CreatedAt time.Time `json:"createdAt" example:"2025-08-12T16:09:57+03:00"`
}

type UpdateWithdrawalRequestDTO struct {
	Status string `json:"status" validate:"required,oneof=Approved Rejected"`
}
