package authservice

import (
	"context"
	"crypto/rand"
	"errors"
	"math/big"
	"time"

	"github.com/goalux/goalux/internal/domain"
	"github.com/goalux/goalux/pkg/auth"
	"go.uber.org/zap"
)

type UserRepo interface {
	FindByPhone(ctx context.Context, phone string) (*domain.User, error)
	FindByReferralCode(ctx context.Context, code string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}

type CommissionService interface {
	Distribute(ctx context.Context, referralCode string, sourceUserID int)
}

type Service struct {
	userRepo          UserRepo
	commissionService CommissionService
	hashService       auth.HashServiceInterface
	jwtService        auth.JWTServiceInterface
}

func New(userRepo UserRepo, commissionService CommissionService, hashService auth.HashServiceInterface, jwtService auth.JWTServiceInterface) *Service {
	return &Service{
		userRepo:          userRepo,
		commissionService: commissionService,
		hashService:       hashService,
		jwtService:        jwtService,
	}
}

var (
	ErrPhoneAlreadyRegistered = errors.New("phone number already registered")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrCodeGeneration         = errors.New("can't generate unique referral code")
)

const (
	codePrefix      = "GOALUX"
	codeSuffixLen   = 6
	codeMaxAttempts = 5
	codeAlphabet    = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

func (s *Service) Register(ctx context.Context, phone, password, referral string) (*domain.User, error) {
	existingUser, err := s.userRepo.FindByPhone(ctx, phone)
	if err != nil {
		zap.L().Error("can't find user: ", zap.Error(err))
		return nil, err
	}
	if existingUser != nil {
		zap.L().Info("phone already registered", zap.String("phone", phone))
		return nil, ErrPhoneAlreadyRegistered
	}

	hashedPassword, err := s.hashService.HashPassword(password)
	if err != nil {
		zap.L().Error("can't hash password: ", zap.Error(err))
		return nil, err
	}

	referrer, err := s.userRepo.FindByReferralCode(ctx, referral)
	if err != nil {
		zap.L().Error("can't resolve referrer: ", zap.Error(err))
		return nil, err
	}

	code, err := s.generateReferralCode(ctx)
	if err != nil {
		zap.L().Error("can't generate referral code: ", zap.Error(err))
		return nil, err
	}

	user := &domain.User{
		Phone:        phone,
		PasswordHash: hashedPassword,
		ReferredBy:   referral,
		ReferralCode: code,
	}
	newUser, err := s.userRepo.Create(ctx, user)
	if err != nil {
		zap.L().Error("can't create user: ", zap.Error(err))
		return nil, err
	}

	if referrer != nil {
		s.commissionService.Distribute(ctx, referrer.ReferralCode, newUser.ID)
	}

	zap.L().Info("user successfully registered", zap.String("phone", phone))
	return newUser, nil
}

func (s *Service) Authenticate(ctx context.Context, phone, password string) (*domain.User, error) {
	user, err := s.userRepo.FindByPhone(ctx, phone)
	if err != nil || user == nil {
		zap.L().Info("authentication failed", zap.String("phone", phone))
		return nil, ErrInvalidCredentials
	}
	if ok := s.hashService.ComparePassword(user.PasswordHash, password); !ok {
		zap.L().Info("authentication failed", zap.String("phone", phone))
		return nil, ErrInvalidCredentials
	}
	zap.L().Info("user successfully authenticated", zap.String("phone", phone))
	return user, nil
}

func (s *Service) GenerateToken(user *domain.User) (string, error) {
	expirationTime := time.Now().Add(auth.TokenTTL)

	token, err := s.jwtService.GenerateJWT(user.Phone, user.Role, expirationTime)
	if err != nil {
		zap.L().Error("can't generate token: ", zap.Error(err))
		return "", err
	}
	return token, nil
}

// generateReferralCode draws random codes until one is free. Random suffixes
// can collide, so generation retries against the store instead of trusting
// the draw.
func (s *Service) generateReferralCode(ctx context.Context) (string, error) {
	for attempt := 0; attempt < codeMaxAttempts; attempt++ {
		suffix := make([]byte, codeSuffixLen)
		for i := range suffix {
			n, err := rand.Int(rand.Reader, big.NewInt(int64(len(codeAlphabet))))
			if err != nil {
				return "", err
			}
			suffix[i] = codeAlphabet[n.Int64()]
		}
		code := codePrefix + string(suffix)

		taken, err := s.userRepo.FindByReferralCode(ctx, code)
		if err != nil {
			return "", err
		}
		if taken == nil {
			return code, nil
		}
	}
	return "", ErrCodeGeneration
}
