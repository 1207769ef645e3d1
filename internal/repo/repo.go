package repo

import (
	"context"
	"time"

	"github.com/goalux/goalux/internal/domain"
	"github.com/goalux/goalux/internal/pg"
	commissionrepo "github.com/goalux/goalux/internal/repo/commission-repo"
	paymentrepo "github.com/goalux/goalux/internal/repo/payment-repo"
	userrepo "github.com/goalux/goalux/internal/repo/user-repo"
	withdrawalrepo "github.com/goalux/goalux/internal/repo/withdrawal-repo"
)

type UserRepository interface {
	FindByPhone(ctx context.Context, phone string) (*domain.User, error)
	FindByReferralCode(ctx context.Context, code string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	CreditWallet(ctx context.Context, userID int, amount float64) error
	DebitWallet(ctx context.Context, userID int, amount float64) error
	MarkPaid(ctx context.Context, userID int, amount float64) error
	FindAll(ctx context.Context) ([]domain.User, error)
	CountReferrals(ctx context.Context, referralCode string) (int, error)
}

type PaymentRepository interface {
	Create(ctx context.Context, payment *domain.Payment) (*domain.Payment, error)
	FindByOrderID(ctx context.Context, orderID string) (*domain.Payment, error)
	UpdateStatus(ctx context.Context, paymentID int, status, txnID string) error
	FindSettled(ctx context.Context) ([]domain.Payment, error)
	FindForReconciliation(ctx context.Context, cutoff time.Time, limit uint32) ([]domain.Payment, error)
}

type WithdrawalRepository interface {
	Create(ctx context.Context, withdrawal *domain.Withdrawal) (*domain.Withdrawal, error)
	FindAll(ctx context.Context) ([]domain.Withdrawal, error)
	FindByStatus(ctx context.Context, status string) ([]domain.Withdrawal, error)
	UpdateStatus(ctx context.Context, id int, status string) (bool, error)
}

type CommissionRepository interface {
	Create(ctx context.Context, commission *domain.Commission) (*domain.Commission, error)
	TotalByUserID(ctx context.Context, userID int) (float64, error)
}

type Repositories struct {
	UserRepo       UserRepository
	PaymentRepo    PaymentRepository
	WithdrawalRepo WithdrawalRepository
	CommissionRepo CommissionRepository
}

func New(conn pg.Database, txManager pg.TXManager) *Repositories {
	return &Repositories{
		UserRepo:       userrepo.New(conn, txManager),
		PaymentRepo:    paymentrepo.New(conn, txManager),
		WithdrawalRepo: withdrawalrepo.New(conn),
		CommissionRepo: commissionrepo.New(conn),
	}
}
