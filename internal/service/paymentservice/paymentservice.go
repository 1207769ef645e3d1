package paymentservice

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/goalux/goalux/internal/domain"
	"github.com/goalux/goalux/internal/dto"
	"github.com/goalux/goalux/internal/gateway"
	"go.uber.org/zap"
)

type PaymentRepo interface {
	Create(ctx context.Context, payment *domain.Payment) (*domain.Payment, error)
	FindByOrderID(ctx context.Context, orderID string) (*domain.Payment, error)
	UpdateStatus(ctx context.Context, paymentID int, status, txnID string) error
}

type UserRepo interface {
	FindByPhone(ctx context.Context, phone string) (*domain.User, error)
	MarkPaid(ctx context.Context, userID int, amount float64) error
}

type Gateway interface {
	BuildPaymentParams(orderID, custID, amount string) (*dto.PayResponseDTO, error)
	VerifyCallback(cb *dto.CallbackRequestDTO) bool
}

type Service struct {
	paymentRepo PaymentRepo
	userRepo    UserRepo
	gateway     Gateway
}

func New(paymentRepo PaymentRepo, userRepo UserRepo, gw Gateway) *Service {
	return &Service{
		paymentRepo: paymentRepo,
		userRepo:    userRepo,
		gateway:     gw,
	}
}

// PaymentAmount is the fixed one-time membership fee.
const PaymentAmount = 100.0

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrPaymentNotFound  = errors.New("payment not found")
	ErrInvalidSignature = errors.New("invalid callback signature")
	ErrPaymentFailed    = errors.New("payment failed")
)

func (s *Service) InitiatePayment(ctx context.Context, phone string) (*dto.PayResponseDTO, error) {
	user, err := s.userRepo.FindByPhone(ctx, phone)
	if err != nil {
		zap.L().Error("can't find user: ", zap.Error(err))
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	orderID := fmt.Sprintf("ORDER%d", time.Now().UnixMilli())
	payment := &domain.Payment{
		UserID:    user.ID,
		Phone:     phone,
		OrderID:   orderID,
		Amount:    PaymentAmount,
		Status:    domain.PaymentInitiated,
		CreatedAt: time.Now(),
	}
	if _, err := s.paymentRepo.Create(ctx, payment); err != nil {
		zap.L().Error("can't save payment: ", zap.Error(err))
		return nil, err
	}

	amount := strconv.FormatFloat(PaymentAmount, 'f', -1, 64)
	params, err := s.gateway.BuildPaymentParams(orderID, phone, amount)
	if err != nil {
		zap.L().Error("can't build payment params: ", zap.Error(err))
		return nil, err
	}

	zap.L().Info("payment initiated", zap.String("order_id", orderID), zap.String("phone", phone))
	return params, nil
}

// HandleCallback settles an order from a gateway callback. The signature is
// verified before anything is mutated.
func (s *Service) HandleCallback(ctx context.Context, cb *dto.CallbackRequestDTO) error {
	if !s.gateway.VerifyCallback(cb) {
		zap.L().Warn("callback with bad signature rejected", zap.String("order_id", cb.OrderID))
		return ErrInvalidSignature
	}

	if err := s.Confirm(ctx, cb.OrderID, cb.Status, cb.TxnID); err != nil {
		return err
	}
	if cb.Status != gateway.TxnSuccess {
		return ErrPaymentFailed
	}
	return nil
}

// Confirm applies a final gateway verdict to an order. Settling an order
// that is no longer INITIATED is a no-op, so the callback handler and the
// reconciliation poller cannot double-credit.
func (s *Service) Confirm(ctx context.Context, orderID, gatewayStatus, txnID string) error {
	payment, err := s.paymentRepo.FindByOrderID(ctx, orderID)
	if err != nil {
		zap.L().Error("can't find payment: ", zap.Error(err))
		return err
	}
	if payment == nil {
		return ErrPaymentNotFound
	}
	if payment.Status != domain.PaymentInitiated {
		return nil
	}

	if gatewayStatus != gateway.TxnSuccess {
		if err := s.paymentRepo.UpdateStatus(ctx, payment.ID, domain.PaymentFailed, txnID); err != nil {
			zap.L().Error("can't mark payment failed: ", zap.Error(err))
			return err
		}
		zap.L().Info("payment failed", zap.String("order_id", orderID))
		return nil
	}

	if err := s.paymentRepo.UpdateStatus(ctx, payment.ID, domain.PaymentSuccess, txnID); err != nil {
		zap.L().Error("can't mark payment settled: ", zap.Error(err))
		return err
	}
	if err := s.userRepo.MarkPaid(ctx, payment.UserID, payment.Amount); err != nil {
		zap.L().Error("can't credit membership payment: ", zap.Error(err))
		return err
	}

	zap.L().Info("payment settled", zap.String("order_id", orderID), zap.String("phone", payment.Phone))
	return nil
}
