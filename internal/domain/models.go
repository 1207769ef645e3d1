package domain

import "time"

const (
	MemberRole string = "member"
	AdminRole  string = "admin"
)

const (
	// PaymentInitiated payment order created, gateway redirect issued;
	PaymentInitiated string = "INITIATED"
	// PaymentSuccess gateway confirmed the charge, wallet credited;
	PaymentSuccess string = "SUCCESS"
	// PaymentFailed gateway reported the charge as failed.
	PaymentFailed string = "FAILED"
)

const (
	WithdrawalPending  string = "Pending"
	WithdrawalApproved string = "Approved"
	WithdrawalRejected string = "Rejected"
)

type User struct {
	ID           int       `db:"id"`
	Phone        string    `db:"phone"`
	PasswordHash string    `db:"password_hash"`
	ReferredBy   string    `db:"referred_by"`
	ReferralCode string    `db:"referral_code"`
	Wallet       float64   `db:"wallet"`
	HasPaid      bool      `db:"has_paid"`
	Role         string    `db:"role"`
	CreatedAt    time.Time `db:"created_at"`
}

type Payment struct {
	ID        int       `db:"id"`
	UserID    int       `db:"user_id"`
	Phone     string    `db:"phone"`
	OrderID   string    `db:"order_id"`
	Amount    float64   `db:"amount"`
	Status    string    `db:"status"`
	TxnID     string    `db:"txn_id"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type Withdrawal struct {
	ID        int       `db:"id"`
	UserID    int       `db:"user_id"`
	Phone     string    `db:"phone"`
	UPIID     string    `db:"upi_id"`
	Amount    float64   `db:"amount"`
	Status    string    `db:"status"`
	CreatedAt time.Time `db:"created_at"`
}

type Commission struct {
	ID           int       `db:"id"`
	UserID       int       `db:"user_id"`
	SourceUserID int       `db:"source_user_id"`
	Level        int       `db:"level"`
	Amount       float64   `db:"amount"`
	CreatedAt    time.Time `db:"created_at"`
}

// ReferralSummary is the admin view of one account's referral standing.
type ReferralSummary struct {
	Phone        string
	ReferralCode string
	Referrals    int
	Commission   float64
}
