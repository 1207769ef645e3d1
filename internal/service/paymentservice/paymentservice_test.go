package paymentservice

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/goalux/goalux/internal/domain"
	"github.com/goalux/goalux/internal/dto"
	"github.com/goalux/goalux/internal/gateway"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"
)

func NewMock(t *testing.T) (*Service, *MockPaymentRepo, *MockUserRepo, *MockGateway) {
	ctrl := gomock.NewController(t)
	paymentRepo := NewMockPaymentRepo(ctrl)
	userRepo := NewMockUserRepo(ctrl)
	gw := NewMockGateway(ctrl)

	service := New(paymentRepo, userRepo, gw)
	defer ctrl.Finish()
	return service, paymentRepo, userRepo, gw
}

func TestInitiatePayment(t *testing.T) {
	service, paymentRepo, userRepo, gw := NewMock(t)
	ctx := context.Background()

	tests := []struct {
		name          string
		phone         string
		prepareMock   func()
		expectedError error
	}{
		{
			name:  "Successful initiation",
			phone: "9876543210",
			prepareMock: func() {
				userRepo.EXPECT().FindByPhone(ctx, "9876543210").Return(&domain.User{ID: 1, Phone: "9876543210"}, nil)
				paymentRepo.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(func(ctx context.Context, p *domain.Payment) (*domain.Payment, error) {
					assert.True(t, strings.HasPrefix(p.OrderID, "ORDER"))
					assert.Equal(t, PaymentAmount, p.Amount)
					assert.Equal(t, domain.PaymentInitiated, p.Status)
					p.ID = 7
					return p, nil
				})
				gw.EXPECT().BuildPaymentParams(gomock.Any(), "9876543210", "100").Return(&dto.PayResponseDTO{
					MID:       "test-mid",
					TxnAmount: "100",
				}, nil)
			},
			expectedError: nil,
		},
		{
			name:  "Unknown user",
			phone: "1111111111",
			prepareMock: func() {
				userRepo.EXPECT().FindByPhone(ctx, "1111111111").Return(nil, nil)
			},
			expectedError: ErrUserNotFound,
		},
		{
			name:  "User lookup error",
			phone: "9876543210",
			prepareMock: func() {
				userRepo.EXPECT().FindByPhone(ctx, "9876543210").Return(nil, errors.New("database error"))
			},
			expectedError: errors.New("database error"),
		},
		{
			name:  "Payment save error",
			phone: "9876543210",
			prepareMock: func() {
				userRepo.EXPECT().FindByPhone(ctx, "9876543210").Return(&domain.User{ID: 1, Phone: "9876543210"}, nil)
				paymentRepo.EXPECT().Create(ctx, gomock.Any()).Return(nil, errors.New("database error"))
			},
			expectedError: errors.New("database error"),
		},
		{
			name:  "Gateway params error",
			phone: "9876543210",
			prepareMock: func() {
				userRepo.EXPECT().FindByPhone(ctx, "9876543210").Return(&domain.User{ID: 1, Phone: "9876543210"}, nil)
				paymentRepo.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(func(ctx context.Context, p *domain.Payment) (*domain.Payment, error) {
					p.ID = 7
					return p, nil
				})
				gw.EXPECT().BuildPaymentParams(gomock.Any(), "9876543210", "100").Return(nil, errors.New("checksum error"))
			},
			expectedError: errors.New("checksum error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			params, err := service.InitiatePayment(ctx, tt.phone)
			if tt.expectedError != nil {
				assert.EqualError(t, err, tt.expectedError.Error())
				assert.Nil(t, params)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, "100", params.TxnAmount)
			}
		})
	}
}

func TestHandleCallback(t *testing.T) {
	service, paymentRepo, userRepo, gw := NewMock(t)
	ctx := context.Background()

	cb := func(status string) *dto.CallbackRequestDTO {
		return &dto.CallbackRequestDTO{
			Status:       status,
			TxnID:        "TXN123",
			OrderID:      "ORDER1700000000000",
			ChecksumHash: "hash",
		}
	}

	tests := []struct {
		name          string
		cb            *dto.CallbackRequestDTO
		prepareMock   func(cb *dto.CallbackRequestDTO)
		expectedError error
	}{
		{
			name: "Successful settlement",
			cb:   cb(gateway.TxnSuccess),
			prepareMock: func(cb *dto.CallbackRequestDTO) {
				gw.EXPECT().VerifyCallback(cb).Return(true)
				paymentRepo.EXPECT().FindByOrderID(ctx, "ORDER1700000000000").Return(&domain.Payment{
					ID:     7,
					UserID: 1,
					Amount: 100.0,
					Status: domain.PaymentInitiated,
				}, nil)
				paymentRepo.EXPECT().UpdateStatus(ctx, 7, domain.PaymentSuccess, "TXN123").Return(nil)
				userRepo.EXPECT().MarkPaid(ctx, 1, 100.0).Return(nil)
			},
			expectedError: nil,
		},
		{
			name: "Bad signature",
			cb:   cb(gateway.TxnSuccess),
			prepareMock: func(cb *dto.CallbackRequestDTO) {
				gw.EXPECT().VerifyCallback(cb).Return(false)
			},
			expectedError: ErrInvalidSignature,
		},
		{
			name: "Failed transaction marks payment failed",
			cb:   cb(gateway.TxnFailure),
			prepareMock: func(cb *dto.CallbackRequestDTO) {
				gw.EXPECT().VerifyCallback(cb).Return(true)
				paymentRepo.EXPECT().FindByOrderID(ctx, "ORDER1700000000000").Return(&domain.Payment{
					ID:     7,
					UserID: 1,
					Amount: 100.0,
					Status: domain.PaymentInitiated,
				}, nil)
				paymentRepo.EXPECT().UpdateStatus(ctx, 7, domain.PaymentFailed, "TXN123").Return(nil)
			},
			expectedError: ErrPaymentFailed,
		},
		{
			name: "Unknown order",
			cb:   cb(gateway.TxnSuccess),
			prepareMock: func(cb *dto.CallbackRequestDTO) {
				gw.EXPECT().VerifyCallback(cb).Return(true)
				paymentRepo.EXPECT().FindByOrderID(ctx, "ORDER1700000000000").Return(nil, nil)
			},
			expectedError: ErrPaymentNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock(tt.cb)
			err := service.HandleCallback(ctx, tt.cb)
			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfirm(t *testing.T) {
	service, paymentRepo, userRepo, _ := NewMock(t)
	ctx := context.Background()

	tests := []struct {
		name          string
		gatewayStatus string
		prepareMock   func()
		expectedError error
	}{
		{
			name:          "Settles initiated payment",
			gatewayStatus: gateway.TxnSuccess,
			prepareMock: func() {
				paymentRepo.EXPECT().FindByOrderID(ctx, "ORDER1700000000000").Return(&domain.Payment{
					ID:     7,
					UserID: 1,
					Amount: 100.0,
					Status: domain.PaymentInitiated,
				}, nil)
				paymentRepo.EXPECT().UpdateStatus(ctx, 7, domain.PaymentSuccess, "TXN123").Return(nil)
				userRepo.EXPECT().MarkPaid(ctx, 1, 100.0).Return(nil)
			},
			expectedError: nil,
		},
		{
			name:          "Already settled is a no-op",
			gatewayStatus: gateway.TxnSuccess,
			prepareMock: func() {
				paymentRepo.EXPECT().FindByOrderID(ctx, "ORDER1700000000000").Return(&domain.Payment{
					ID:     7,
					UserID: 1,
					Amount: 100.0,
					Status: domain.PaymentSuccess,
				}, nil)
			},
			expectedError: nil,
		},
		{
			name:          "Failure verdict is recorded without credit",
			gatewayStatus: gateway.TxnFailure,
			prepareMock: func() {
				paymentRepo.EXPECT().FindByOrderID(ctx, "ORDER1700000000000").Return(&domain.Payment{
					ID:     7,
					UserID: 1,
					Amount: 100.0,
					Status: domain.PaymentInitiated,
				}, nil)
				paymentRepo.EXPECT().UpdateStatus(ctx, 7, domain.PaymentFailed, "TXN123").Return(nil)
			},
			expectedError: nil,
		},
		{
			name:          "Status update error",
			gatewayStatus: gateway.TxnSuccess,
			prepareMock: func() {
				paymentRepo.EXPECT().FindByOrderID(ctx, "ORDER1700000000000").Return(&domain.Payment{
					ID:     7,
					UserID: 1,
					Amount: 100.0,
					Status: domain.PaymentInitiated,
				}, nil)
				paymentRepo.EXPECT().UpdateStatus(ctx, 7, domain.PaymentSuccess, "TXN123").Return(errors.New("database error"))
			},
			expectedError: errors.New("database error"),
		},
		{
			name:          "Wallet credit error",
			gatewayStatus: gateway.TxnSuccess,
			prepareMock: func() {
				paymentRepo.EXPECT().FindByOrderID(ctx, "ORDER1700000000000").Return(&domain.Payment{
					ID:     7,
					UserID: 1,
					Amount: 100.0,
					Status: domain.PaymentInitiated,
				}, nil)
				paymentRepo.EXPECT().UpdateStatus(ctx, 7, domain.PaymentSuccess, "TXN123").Return(nil)
				userRepo.EXPECT().MarkPaid(ctx, 1, 100.0).Return(errors.New("database error"))
			},
			expectedError: errors.New("database error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			err := service.Confirm(ctx, "ORDER1700000000000", tt.gatewayStatus, "TXN123")
			if tt.expectedError != nil {
				assert.EqualError(t, err, tt.expectedError.Error())
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
