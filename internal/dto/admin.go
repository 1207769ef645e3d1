package dto

type AdminUserDTO struct {
	Phone        string  `json:"phone" example:"9876543210"`
	ReferralCode string  `json:"referralCode" example:"GOALUX1A2B3C"`
	Wallet       float64 `json:"wallet" example:"125"`
	HasPaid      bool    `json:"hasPaid" example:"true"`
}

type AdminPaymentDTO struct {
	Phone   string  `json:"phone" example:"9876543210"`
	OrderID string  `json:"orderId" example:"ORDER1733740197000"`
	Amount  float64 `json:"amount" example:"100"`
	Status  string  `json:"status" example:"SUCCESS"`
}

type AdminReferralDTO struct {
	Phone              string  `json:"phone" example:"9876543210"`
	ReferralCode       string  `json:"referralCode" example:"GOALUX1A2B3C"`
	Referrals          int     `json:"referrals" example:"3"`
	ReferralCommission float64 `json:"referralCommission" example:"50"`
}
