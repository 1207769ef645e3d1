package dto

type DashboardResponseDTO struct {
	Wallet             float64 `json:"wallet" example:"125"`
	ReferralCommission float64 `json:"referralCommission" example:"25"`
	HasPaid            bool    `json:"hasPaid" example:"true"`
}
