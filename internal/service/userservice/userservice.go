package userservice

import (
	"context"
	"errors"

	"github.com/goalux/goalux/internal/domain"
	"go.uber.org/zap"
)

type UserRepo interface {
	FindByPhone(ctx context.Context, phone string) (*domain.User, error)
}

type CommissionService interface {
	Total(ctx context.Context, userID int) (float64, error)
}

type Service struct {
	userRepo          UserRepo
	commissionService CommissionService
}

func New(userRepo UserRepo, commissionService CommissionService) *Service {
	return &Service{
		userRepo:          userRepo,
		commissionService: commissionService,
	}
}

var ErrUserNotFound = errors.New("user not found")

// Dashboard returns the account together with its credited commission total.
func (s *Service) Dashboard(ctx context.Context, phone string) (*domain.User, float64, error) {
	user, err := s.userRepo.FindByPhone(ctx, phone)
	if err != nil {
		zap.L().Error("failed to get user", zap.Error(err))
		return nil, 0, err
	}
	if user == nil {
		return nil, 0, ErrUserNotFound
	}

	commission, err := s.commissionService.Total(ctx, user.ID)
	if err != nil {
		zap.L().Error("failed to get commission total", zap.Error(err))
		return nil, 0, err
	}

	return user, commission, nil
}
