package adminservice

import (
	"context"
	"errors"
	"testing"

	"github.com/goalux/goalux/internal/domain"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"
)

func NewMock(t *testing.T) (*Service, *MockUserRepo, *MockPaymentRepo, *MockWithdrawalRepo, *MockCommissionService) {
	ctrl := gomock.NewController(t)
	userRepo := NewMockUserRepo(ctrl)
	paymentRepo := NewMockPaymentRepo(ctrl)
	withdrawalRepo := NewMockWithdrawalRepo(ctrl)
	commissionService := NewMockCommissionService(ctrl)

	service := New(userRepo, paymentRepo, withdrawalRepo, commissionService)
	defer ctrl.Finish()
	return service, userRepo, paymentRepo, withdrawalRepo, commissionService
}

func TestListWithdrawals(t *testing.T) {
	service, _, _, withdrawalRepo, _ := NewMock(t)
	ctx := context.Background()

	expected := []domain.Withdrawal{{ID: 3, Phone: "9876543210", Amount: 150.0, Status: domain.WithdrawalPending}}
	withdrawalRepo.EXPECT().FindAll(ctx).Return(expected, nil)

	withdrawals, err := service.ListWithdrawals(ctx)
	assert.NoError(t, err)
	assert.Equal(t, expected, withdrawals)

	withdrawalRepo.EXPECT().FindAll(ctx).Return(nil, errors.New("database error"))
	_, err = service.ListWithdrawals(ctx)
	assert.Error(t, err)
}

func TestListPendingWithdrawals(t *testing.T) {
	service, _, _, withdrawalRepo, _ := NewMock(t)
	ctx := context.Background()

	expected := []domain.Withdrawal{{ID: 3, Status: domain.WithdrawalPending}}
	withdrawalRepo.EXPECT().FindByStatus(ctx, domain.WithdrawalPending).Return(expected, nil)

	withdrawals, err := service.ListPendingWithdrawals(ctx)
	assert.NoError(t, err)
	assert.Equal(t, expected, withdrawals)
}

func TestUpdateWithdrawalStatus(t *testing.T) {
	service, _, _, withdrawalRepo, _ := NewMock(t)
	ctx := context.Background()

	tests := []struct {
		name          string
		id            int
		status        string
		prepareMock   func()
		expectedError error
	}{
		{
			name:   "Approve",
			id:     3,
			status: domain.WithdrawalApproved,
			prepareMock: func() {
				withdrawalRepo.EXPECT().UpdateStatus(ctx, 3, domain.WithdrawalApproved).Return(true, nil)
			},
			expectedError: nil,
		},
		{
			name:   "Reject",
			id:     3,
			status: domain.WithdrawalRejected,
			prepareMock: func() {
				withdrawalRepo.EXPECT().UpdateStatus(ctx, 3, domain.WithdrawalRejected).Return(true, nil)
			},
			expectedError: nil,
		},
		{
			name:          "Invalid status",
			id:            3,
			status:        "Paid",
			prepareMock:   func() {},
			expectedError: ErrInvalidStatus,
		},
		{
			name:   "Unknown id",
			id:     99,
			status: domain.WithdrawalApproved,
			prepareMock: func() {
				withdrawalRepo.EXPECT().UpdateStatus(ctx, 99, domain.WithdrawalApproved).Return(false, nil)
			},
			expectedError: ErrWithdrawalNotFound,
		},
		{
			name:   "Database error",
			id:     3,
			status: domain.WithdrawalApproved,
			prepareMock: func() {
				withdrawalRepo.EXPECT().UpdateStatus(ctx, 3, domain.WithdrawalApproved).Return(false, errors.New("database error"))
			},
			expectedError: errors.New("database error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			err := service.UpdateWithdrawalStatus(ctx, tt.id, tt.status)
			if tt.expectedError != nil {
				assert.EqualError(t, err, tt.expectedError.Error())
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestListUsers(t *testing.T) {
	service, userRepo, _, _, _ := NewMock(t)
	ctx := context.Background()

	expected := []domain.User{{ID: 1, Phone: "9876543210"}}
	userRepo.EXPECT().FindAll(ctx).Return(expected, nil)

	users, err := service.ListUsers(ctx)
	assert.NoError(t, err)
	assert.Equal(t, expected, users)
}

func TestListPayments(t *testing.T) {
	service, _, paymentRepo, _, _ := NewMock(t)
	ctx := context.Background()

	expected := []domain.Payment{{ID: 7, Status: domain.PaymentSuccess}}
	paymentRepo.EXPECT().FindSettled(ctx).Return(expected, nil)

	payments, err := service.ListPayments(ctx)
	assert.NoError(t, err)
	assert.Equal(t, expected, payments)
}

func TestListReferralSummaries(t *testing.T) {
	service, userRepo, _, _, commissionService := NewMock(t)
	ctx := context.Background()

	tests := []struct {
		name          string
		prepareMock   func()
		expected      []domain.ReferralSummary
		expectedError error
	}{
		{
			name: "Summaries per user",
			prepareMock: func() {
				userRepo.EXPECT().FindAll(ctx).Return([]domain.User{
					{ID: 1, Phone: "9876543210", ReferralCode: "GOALUXAB12CD"},
					{ID: 2, Phone: "9876543211", ReferralCode: "GOALUXEF34GH"},
				}, nil)
				userRepo.EXPECT().CountReferrals(ctx, "GOALUXAB12CD").Return(3, nil)
				commissionService.EXPECT().Total(ctx, 1).Return(40.0, nil)
				userRepo.EXPECT().CountReferrals(ctx, "GOALUXEF34GH").Return(0, nil)
				commissionService.EXPECT().Total(ctx, 2).Return(0.0, nil)
			},
			expected: []domain.ReferralSummary{
				{Phone: "9876543210", ReferralCode: "GOALUXAB12CD", Referrals: 3, Commission: 40.0},
				{Phone: "9876543211", ReferralCode: "GOALUXEF34GH", Referrals: 0, Commission: 0},
			},
			expectedError: nil,
		},
		{
			name: "Count error aborts",
			prepareMock: func() {
				userRepo.EXPECT().FindAll(ctx).Return([]domain.User{
					{ID: 1, Phone: "9876543210", ReferralCode: "GOALUXAB12CD"},
				}, nil)
				userRepo.EXPECT().CountReferrals(ctx, "GOALUXAB12CD").Return(0, errors.New("database error"))
			},
			expected:      nil,
			expectedError: errors.New("database error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			summaries, err := service.ListReferralSummaries(ctx)
			assert.Equal(t, tt.expected, summaries)
			if tt.expectedError != nil {
				assert.EqualError(t, err, tt.expectedError.Error())
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
