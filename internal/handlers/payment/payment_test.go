package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goalux/goalux/internal/dto"
	paymentservice "github.com/goalux/goalux/internal/service/paymentservice"
	"github.com/goalux/goalux/pkg/auth"
	"github.com/goalux/goalux/pkg/utils"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"
)

func NewMock(t *testing.T) (*PaymentHandler, *MockService) {
	ctrl := gomock.NewController(t)
	service := NewMockService(ctrl)
	handler := New(service)
	defer ctrl.Finish()
	return handler, service
}

func TestPayHandler(t *testing.T) {
	handler, service := NewMock(t)

	tests := []struct {
		name          string
		prepareMock   func()
		expectedCode  int
		expectedError string
	}{
		{
			name: "Payment initiated",
			prepareMock: func() {
				service.EXPECT().InitiatePayment(gomock.Any(), "9876543210").Return(&dto.PayResponseDTO{
					MID:          "test-mid",
					OrderID:      "ORDER1700000000000",
					TxnAmount:    "100",
					ChecksumHash: "hash",
				}, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name: "User not found",
			prepareMock: func() {
				service.EXPECT().InitiatePayment(gomock.Any(), "9876543210").Return(nil, paymentservice.ErrUserNotFound)
			},
			expectedCode:  http.StatusNotFound,
			expectedError: paymentservice.ErrUserNotFound.Error(),
		},
		{
			name: "Internal error",
			prepareMock: func() {
				service.EXPECT().InitiatePayment(gomock.Any(), "9876543210").Return(nil, errors.New("database error"))
			},
			expectedCode:  http.StatusInternalServerError,
			expectedError: "Internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			req := httptest.NewRequest("POST", "/pay", nil)
			req = req.WithContext(context.WithValue(req.Context(), auth.PhoneKey, "9876543210"))
			rr := httptest.NewRecorder()

			handler.Pay(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)

			if tt.expectedError != "" {
				var resp utils.Response
				err := json.NewDecoder(rr.Body).Decode(&resp)
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedError, resp.Message)
			} else {
				var resp dto.PayResponseDTO
				err := json.NewDecoder(rr.Body).Decode(&resp)
				assert.NoError(t, err)
				assert.Equal(t, "ORDER1700000000000", resp.OrderID)
				assert.NotEmpty(t, resp.ChecksumHash)
			}
		})
	}
}

func TestCallbackHandler(t *testing.T) {
	handler, service := NewMock(t)

	body := `{"STATUS":"TXN_SUCCESS","TXNID":"TXN123","ORDERID":"ORDER1700000000000","CUST_ID":"9876543210","CHECKSUMHASH":"hash"}`

	tests := []struct {
		name          string
		body          string
		prepareMock   func()
		expectedCode  int
		expectedError string
	}{
		{
			name: "Successful settlement",
			body: body,
			prepareMock: func() {
				service.EXPECT().HandleCallback(gomock.Any(), gomock.Any()).Return(nil)
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
			name: "Invalid signature",
			body: body,
			prepareMock: func() {
				service.EXPECT().HandleCallback(gomock.Any(), gomock.Any()).Return(paymentservice.ErrInvalidSignature)
			},
			expectedCode:  http.StatusUnauthorized,
			expectedError: paymentservice.ErrInvalidSignature.Error(),
		},
		{
			name: "Payment failed",
			body: body,
			prepareMock: func() {
				service.EXPECT().HandleCallback(gomock.Any(), gomock.Any()).Return(paymentservice.ErrPaymentFailed)
			},
			expectedCode:  http.StatusBadRequest,
			expectedError: paymentservice.ErrPaymentFailed.Error(),
		},
		{
			name: "Unknown order",
			body: body,
			prepareMock: func() {
				service.EXPECT().HandleCallback(gomock.Any(), gomock.Any()).Return(paymentservice.ErrPaymentNotFound)
			},
			expectedCode:  http.StatusNotFound,
			expectedError: paymentservice.ErrPaymentNotFound.Error(),
		},
		{
			name: "Internal error",
			body: body,
			prepareMock: func() {
				service.EXPECT().HandleCallback(gomock.Any(), gomock.Any()).Return(errors.New("database error"))
			},
			expectedCode:  http.StatusInternalServerError,
			expectedError: "Internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			req := httptest.NewRequest("POST", "/callback", bytes.NewReader([]byte(tt.body)))
			rr := httptest.NewRecorder()

			handler.Callback(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)

			if tt.expectedError != "" {
				var resp utils.Response
				err := json.NewDecoder(rr.Body).Decode(&resp)
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedError, resp.Message)
			} else {
				var resp dto.CallbackResponseDTO
				err := json.NewDecoder(rr.Body).Decode(&resp)
				assert.NoError(t, err)
				assert.Equal(t, "ORDER1700000000000", resp.OrderID)
				assert.Equal(t, "Success", resp.Status)
			}
		})
	}
}
