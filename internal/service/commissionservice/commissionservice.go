package commissionservice

import (
	"context"
	"time"

	"github.com/goalux/goalux/internal/domain"
	"go.uber.org/zap"
)

type UserRepo interface {
	FindByReferralCode(ctx context.Context, code string) (*domain.User, error)
	CreditWallet(ctx context.Context, userID int, amount float64) error
}

type LedgerRepo interface {
	Create(ctx context.Context, commission *domain.Commission) (*domain.Commission, error)
	TotalByUserID(ctx context.Context, userID int) (float64, error)
}

type Service struct {
	userRepo   UserRepo
	ledgerRepo LedgerRepo
}

func New(userRepo UserRepo, ledgerRepo LedgerRepo) *Service {
	return &Service{
		userRepo:   userRepo,
		ledgerRepo: ledgerRepo,
	}
}

// PaymentAmount is the flat membership fee commissions are computed against.
const PaymentAmount = 100.0

// commissionRates holds the payout fraction per ancestor depth. Depth 0 is
// the direct referrer; nothing is paid past depth 9.
var commissionRates = [...]float64{0.25, 0.15, 0.10, 0.08, 0.06, 0.05, 0.04, 0.03, 0.02, 0.01}

// Distribute walks the upline starting at the account owning referralCode and
// credits each ancestor PaymentAmount*rate[depth]. Each credit is persisted
// on its own and mirrored into the ledger. The walk stops at ten levels, at
// the end of the chain, on a repeated referral code (upline data may be
// cyclic) or on a lookup failure. Failures end the walk without surfacing an
// error: paying nobody is a valid outcome.
func (s *Service) Distribute(ctx context.Context, referralCode string, sourceUserID int) {
	current, err := s.userRepo.FindByReferralCode(ctx, referralCode)
	if err != nil {
		zap.L().Error("commission walk aborted on referrer lookup", zap.Error(err))
		return
	}

	visited := make(map[string]struct{})
	for depth := 0; current != nil && depth < len(commissionRates); depth++ {
		if _, seen := visited[current.ReferralCode]; seen {
			zap.L().Warn("referral chain cycle detected, stopping walk",
				zap.String("referral_code", current.ReferralCode), zap.Int("depth", depth))
			return
		}
		visited[current.ReferralCode] = struct{}{}

		amount := PaymentAmount * commissionRates[depth]
		if err := s.userRepo.CreditWallet(ctx, current.ID, amount); err != nil {
			zap.L().Error("commission credit failed, stopping walk",
				zap.Int("user_id", current.ID), zap.Int("depth", depth), zap.Error(err))
			return
		}
		if _, err := s.ledgerRepo.Create(ctx, &domain.Commission{
			UserID:       current.ID,
			SourceUserID: sourceUserID,
			Level:        depth,
			Amount:       amount,
			CreatedAt:    time.Now(),
		}); err != nil {
			zap.L().Error("commission ledger write failed",
				zap.Int("user_id", current.ID), zap.Int("depth", depth), zap.Error(err))
		}

		next, err := s.userRepo.FindByReferralCode(ctx, current.ReferredBy)
		if err != nil {
			zap.L().Error("commission walk aborted on upline lookup",
				zap.String("code", current.ReferredBy), zap.Error(err))
			return
		}
		current = next
	}
}

// Total reports the commission actually credited to the account, summed from
// the ledger rather than re-estimated from chain length.
func (s *Service) Total(ctx context.Context, userID int) (float64, error) {
	total, err := s.ledgerRepo.TotalByUserID(ctx, userID)
	if err != nil {
		zap.L().Error("failed to sum commissions", zap.Error(err))
		return 0, err
	}
	return total, nil
}
