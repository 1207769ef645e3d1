package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goalux/goalux/internal/domain"
	authservice "github.com/goalux/goalux/internal/service/authservice"
	"github.com/goalux/goalux/pkg/utils"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"
)

func NewMock(t *testing.T) (*AuthHandler, *MockService) {
	ctrl := gomock.NewController(t)
	service := NewMockService(ctrl)
	handler := New(service)
	defer ctrl.Finish()
	return handler, service
}

func TestRegisterHandler(t *testing.T) {
	handler, service := NewMock(t)

	tests := []struct {
		name          string
		body          string
		prepareMock   func()
		expectedCode  int
		expectedError string
	}{
		{
			name: "Successful registration",
			body: `{"phone":"9876543210","password":"password123","referCode":"GOALUXAB12CD"}`,
			prepareMock: func() {
				service.EXPECT().Register(context.Background(), "9876543210", "password123", "GOALUXAB12CD").Return(&domain.User{
					ID:           1,
					Phone:        "9876543210",
					ReferralCode: "GOALUXEF34GH",
				}, nil)
			},
			expectedCode:  http.StatusCreated,
			expectedError: "",
		},
		{
			name:          "Invalid request body",
			body:          `{invalid json`,
			prepareMock:   func() {},
			expectedCode:  http.StatusBadRequest,
			expectedError: "Invalid request body",
		},
		{
			name:          "Missing referral code",
			body:          `{"phone":"9876543210","password":"password123"}`,
			prepareMock:   func() {},
			expectedCode:  http.StatusBadRequest,
			expectedError: "Phone, password and referral code are required",
		},
		{
			name:          "Invalid phone number",
			body:          `{"phone":"not-a-phone","password":"password123","referCode":"GOALUXAB12CD"}`,
			prepareMock:   func() {},
			expectedCode:  http.StatusBadRequest,
			expectedError: "Invalid phone number",
		},
		{
			name: "Phone already registered",
			body: `{"phone":"9876543210","password":"password123","referCode":"GOALUXAB12CD"}`,
			prepareMock: func() {
				service.EXPECT().Register(context.Background(), "9876543210", "password123", "GOALUXAB12CD").
					Return(nil, authservice.ErrPhoneAlreadyRegistered)
			},
			expectedCode:  http.StatusBadRequest,
			expectedError: authservice.ErrPhoneAlreadyRegistered.Error(),
		},
		{
			name: "Internal error",
			body: `{"phone":"9876543210","password":"password123","referCode":"GOALUXAB12CD"}`,
			prepareMock: func() {
				service.EXPECT().Register(context.Background(), "9876543210", "password123", "GOALUXAB12CD").
					Return(nil, errors.New("database error"))
			},
			expectedCode:  http.StatusInternalServerError,
			expectedError: "Internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			req := httptest.NewRequest("POST", "/register", bytes.NewReader([]byte(tt.body)))
			rr := httptest.NewRecorder()

			handler.Register(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)

			if tt.expectedError != "" {
				var resp utils.Response
				err := json.NewDecoder(rr.Body).Decode(&resp)
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedError, resp.Message)
			}
		})
	}
}

func TestLoginHandler(t *testing.T) {
	handler, service := NewMock(t)

	user := &domain.User{
		ID:           1,
		Phone:        "9876543210",
		ReferralCode: "GOALUXAB12CD",
	}

	tests := []struct {
		name          string
		body          string
		prepareMock   func()
		expectedCode  int
		expectedError string
		expectedToken string
	}{
		{
			name: "Successful login",
			body: `{"phone":"9876543210","password":"password123"}`,
			prepareMock: func() {
				service.EXPECT().Authenticate(context.Background(), "9876543210", "password123").Return(user, nil)
				service.EXPECT().GenerateToken(user).Return("some-jwt-token", nil)
			},
			expectedCode:  http.StatusOK,
			expectedToken: "some-jwt-token",
		},
		{
			name:          "Invalid request body",
			body:          `{invalid json`,
			prepareMock:   func() {},
			expectedCode:  http.StatusBadRequest,
			expectedError: "Invalid request body",
		},
		{
			name: "Invalid credentials",
			body: `{"phone":"9876543210","password":"wrong"}`,
			prepareMock: func() {
				service.EXPECT().Authenticate(context.Background(), "9876543210", "wrong").
					Return(nil, authservice.ErrInvalidCredentials)
			},
			expectedCode:  http.StatusUnauthorized,
			expectedError: "Invalid credentials",
		},
		{
			name: "Error generating token",
			body: `{"phone":"9876543210","password":"password123"}`,
			prepareMock: func() {
				service.EXPECT().Authenticate(context.Background(), "9876543210", "password123").Return(user, nil)
				service.EXPECT().GenerateToken(user).Return("", errors.New("signing error"))
			},
			expectedCode:  http.StatusInternalServerError,
			expectedError: "Error generating token",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			req := httptest.NewRequest("POST", "/login", bytes.NewReader([]byte(tt.body)))
			rr := httptest.NewRecorder()

			handler.Login(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)

			if tt.expectedError != "" {
				var resp utils.Response
				err := json.NewDecoder(rr.Body).Decode(&resp)
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedError, resp.Message)
			}
			if tt.expectedToken != "" {
				var resp struct {
					Token        string `json:"token"`
					ReferralCode string `json:"referralCode"`
				}
				err := json.NewDecoder(rr.Body).Decode(&resp)
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedToken, resp.Token)
				assert.Equal(t, "GOALUXAB12CD", resp.ReferralCode)
			}
		})
	}
}
