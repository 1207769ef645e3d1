package withdrawalservice

import (
	"context"
	"errors"
	"time"

	"github.com/goalux/goalux/internal/domain"
	"github.com/goalux/goalux/internal/pg"
	"go.uber.org/zap"
)

type UserRepo interface {
	FindByPhone(ctx context.Context, phone string) (*domain.User, error)
	DebitWallet(ctx context.Context, userID int, amount float64) error
}

type WithdrawalRepo interface {
	Create(ctx context.Context, withdrawal *domain.Withdrawal) (*domain.Withdrawal, error)
}

type Service struct {
	userRepo       UserRepo
	withdrawalRepo WithdrawalRepo
	txManager      pg.TXManager
}

func New(userRepo UserRepo, withdrawalRepo WithdrawalRepo, txManager pg.TXManager) *Service {
	return &Service{
		userRepo:       userRepo,
		withdrawalRepo: withdrawalRepo,
		txManager:      txManager,
	}
}

// MinWalletBalance is the floor below which no withdrawal may be requested,
// regardless of the requested amount.
const MinWalletBalance = 100.0

var (
	ErrUserNotFound        = errors.New("user not found")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrMembershipUnpaid    = errors.New("membership fee not paid")
)

// RequestWithdrawal creates a Pending request and debits the wallet right
// away; the debit is optimistic, admin review happens later. Record and
// debit land in one transaction.
func (s *Service) RequestWithdrawal(ctx context.Context, phone, upiID string, amount float64) error {
	user, err := s.userRepo.FindByPhone(ctx, phone)
	if err != nil {
		zap.L().Error("failed to get user", zap.Error(err))
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	if user.Wallet < MinWalletBalance || user.Wallet < amount {
		return ErrInsufficientBalance
	}
	if !user.HasPaid {
		return ErrMembershipUnpaid
	}

	withdrawal := &domain.Withdrawal{
		UserID:    user.ID,
		Phone:     phone,
		UPIID:     upiID,
		Amount:    amount,
		Status:    domain.WithdrawalPending,
		CreatedAt: time.Now(),
	}

	err = s.txManager.Begin(ctx, func(ctx context.Context) error {
		if _, err := s.withdrawalRepo.Create(ctx, withdrawal); err != nil {
			zap.L().Error("failed to create withdrawal record", zap.Error(err))
			return err
		}
		if err := s.userRepo.DebitWallet(ctx, user.ID, amount); err != nil {
			zap.L().Error("failed to debit wallet", zap.Error(err))
			return err
		}
		return nil
	})
	if err != nil {
		return err
	}

	zap.L().Info("withdrawal requested",
		zap.String("phone", phone), zap.Float64("amount", amount))
	return nil
}
