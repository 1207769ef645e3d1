package adminservice

import (
	"context"
	"errors"

	"github.com/goalux/goalux/internal/domain"
	"go.uber.org/zap"
)

type UserRepo interface {
	FindAll(ctx context.Context) ([]domain.User, error)
	CountReferrals(ctx context.Context, referralCode string) (int, error)
}

type PaymentRepo interface {
	FindSettled(ctx context.Context) ([]domain.Payment, error)
}

type WithdrawalRepo interface {
	FindAll(ctx context.Context) ([]domain.Withdrawal, error)
	FindByStatus(ctx context.Context, status string) ([]domain.Withdrawal, error)
	UpdateStatus(ctx context.Context, id int, status string) (bool, error)
}

type CommissionService interface {
	Total(ctx context.Context, userID int) (float64, error)
}

type Service struct {
	userRepo          UserRepo
	paymentRepo       PaymentRepo
	withdrawalRepo    WithdrawalRepo
	commissionService CommissionService
}

func New(userRepo UserRepo, paymentRepo PaymentRepo, withdrawalRepo WithdrawalRepo, commissionService CommissionService) *Service {
	return &Service{
		userRepo:          userRepo,
		paymentRepo:       paymentRepo,
		withdrawalRepo:    withdrawalRepo,
		commissionService: commissionService,
	}
}

var (
	ErrWithdrawalNotFound = errors.New("withdrawal not found")
	ErrInvalidStatus      = errors.New("invalid withdrawal status")
)

func (s *Service) ListWithdrawals(ctx context.Context) ([]domain.Withdrawal, error) {
	withdrawals, err := s.withdrawalRepo.FindAll(ctx)
	if err != nil {
		zap.L().Error("failed to fetch withdrawals", zap.Error(err))
		return nil, err
	}
	return withdrawals, nil
}

func (s *Service) ListPendingWithdrawals(ctx context.Context) ([]domain.Withdrawal, error) {
	withdrawals, err := s.withdrawalRepo.FindByStatus(ctx, domain.WithdrawalPending)
	if err != nil {
		zap.L().Error("failed to fetch pending withdrawals", zap.Error(err))
		return nil, err
	}
	return withdrawals, nil
}

func (s *Service) UpdateWithdrawalStatus(ctx context.Context, id int, status string) error {
	if status != domain.WithdrawalApproved && status != domain.WithdrawalRejected {
		return ErrInvalidStatus
	}

	found, err := s.withdrawalRepo.UpdateStatus(ctx, id, status)
	if err != nil {
		zap.L().Error("failed to update withdrawal status", zap.Error(err))
		return err
	}
	if !found {
		return ErrWithdrawalNotFound
	}

	zap.L().Info("withdrawal status updated", zap.Int("id", id), zap.String("status", status))
	return nil
}

func (s *Service) ListUsers(ctx context.Context) ([]domain.User, error) {
	users, err := s.userRepo.FindAll(ctx)
	if err != nil {
		zap.L().Error("failed to fetch users", zap.Error(err))
		return nil, err
	}
	return users, nil
}

func (s *Service) ListPayments(ctx context.Context) ([]domain.Payment, error) {
	payments, err := s.paymentRepo.FindSettled(ctx)
	if err != nil {
		zap.L().Error("failed to fetch payments", zap.Error(err))
		return nil, err
	}
	return payments, nil
}

func (s *Service) ListReferralSummaries(ctx context.Context) ([]domain.ReferralSummary, error) {
	users, err := s.userRepo.FindAll(ctx)
	if err != nil {
		zap.L().Error("failed to fetch users", zap.Error(err))
		return nil, err
	}

	summaries := make([]domain.ReferralSummary, 0, len(users))
	for _, user := range users {
		count, err := s.userRepo.CountReferrals(ctx, user.ReferralCode)
		if err != nil {
			zap.L().Error("failed to count referrals", zap.Error(err))
			return nil, err
		}
		commission, err := s.commissionService.Total(ctx, user.ID)
		if err != nil {
			zap.L().Error("failed to sum commission", zap.Error(err))
			return nil, err
		}
		summaries = append(summaries, domain.ReferralSummary{
			Phone:        user.Phone,
			ReferralCode: user.ReferralCode,
			Referrals:    count,
			Commission:   commission,
		})
	}
	return summaries, nil
}
