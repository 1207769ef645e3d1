package withdrawal

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	withdrawalservice "github.com/goalux/goalux/internal/service/withdrawalservice"
	"github.com/goalux/goalux/pkg/auth"
	"github.com/goalux/goalux/pkg/utils"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"
)

func NewMock(t *testing.T) (*WithdrawalHandler, *MockService) {
	ctrl := gomock.NewController(t)
	service := NewMockService(ctrl)
	handler := New(service)
	defer ctrl.Finish()
	return handler, service
}

func TestWithdrawHandler(t *testing.T) {
	handler, service := NewMock(t)

	tests := []struct {
		name          string
		body          string
		prepareMock   func()
		expectedCode  int
		expectedError string
	}{
		{
			name: "Successful request",
			body: `{"upiId":"alice@upi","amount":150}`,
			prepareMock: func() {
				service.EXPECT().RequestWithdrawal(gomock.Any(), "9876543210", "alice@upi", 150.0).Return(nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name:          "Invalid request body",
			body:          `{invalid json`,
			prepareMock:   func() {},
			expectedCode:  http.StatusBadRequest,
			expectedError: "Invalid request body",
		},
		{
			name:          "Missing UPI id",
			body:          `{"amount":150}`,
			prepareMock:   func() {},
			expectedCode:  http.StatusBadRequest,
			expectedError: "UPI id and a positive amount are required",
		},
		{
			name:          "Non-positive amount",
			body:          `{"upiId":"alice@upi","amount":0}`,
			prepareMock:   func() {},
			expectedCode:  http.StatusBadRequest,
			expectedError: "UPI id and a positive amount are required",
		},
		{
			name:          "Malformed UPI id",
			body:          `{"upiId":"not a upi","amount":150}`,
			prepareMock:   func() {},
			expectedCode:  http.StatusBadRequest,
			expectedError: "Invalid UPI id",
		},
		{
			name: "Insufficient balance",
			body: `{"upiId":"alice@upi","amount":5000}`,
			prepareMock: func() {
				service.EXPECT().RequestWithdrawal(gomock.Any(), "9876543210", "alice@upi", 5000.0).
					Return(withdrawalservice.ErrInsufficientBalance)
			},
			expectedCode:  http.StatusBadRequest,
			expectedError: withdrawalservice.ErrInsufficientBalance.Error(),
		},
		{
			name: "Membership unpaid",
			body: `{"upiId":"alice@upi","amount":150}`,
			prepareMock: func() {
				service.EXPECT().RequestWithdrawal(gomock.Any(), "9876543210", "alice@upi", 150.0).
					Return(withdrawalservice.ErrMembershipUnpaid)
			},
			expectedCode:  http.StatusBadRequest,
			expectedError: withdrawalservice.ErrMembershipUnpaid.Error(),
		},
		{
			name: "User not found",
			body: `{"upiId":"alice@upi","amount":150}`,
			prepareMock: func() {
				service.EXPECT().RequestWithdrawal(gomock.Any(), "9876543210", "alice@upi", 150.0).
					Return(withdrawalservice.ErrUserNotFound)
			},
			expectedCode:  http.StatusNotFound,
			expectedError: withdrawalservice.ErrUserNotFound.Error(),
		},
		{
			name: "Internal error",
			body: `{"upiId":"alice@upi","amount":150}`,
			prepareMock: func() {
				service.EXPECT().RequestWithdrawal(gomock.Any(), "9876543210", "alice@upi", 150.0).
					Return(errors.New("database error"))
			},
			expectedCode:  http.StatusInternalServerError,
			expectedError: "Internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			req := httptest.NewRequest("POST", "/withdraw", bytes.NewReader([]byte(tt.body)))
			req = req.WithContext(context.WithValue(req.Context(), auth.PhoneKey, "9876543210"))
			rr := httptest.NewRecorder()

			handler.Withdraw(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)

			if tt.expectedError != "" {
				var resp utils.Response
				err := json.NewDecoder(rr.Body).Decode(&resp)
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedError, resp.Message)
			} else {
				var resp struct {
					Message string `json:"message"`
				}
				err := json.NewDecoder(rr.Body).Decode(&resp)
				assert.NoError(t, err)
				assert.Equal(t, "Withdrawal request submitted", resp.Message)
			}
		})
	}
}
