package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	adminhandlers "github.com/goalux/goalux/internal/handlers/admin"
	authhandlers "github.com/goalux/goalux/internal/handlers/auth"
	paymenthandlers "github.com/goalux/goalux/internal/handlers/payment"
	userhandlers "github.com/goalux/goalux/internal/handlers/user"
	withdrawalhandlers "github.com/goalux/goalux/internal/handlers/withdrawal"
	"github.com/goalux/goalux/internal/service"
	"github.com/goalux/goalux/pkg/auth"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"
)

func TestNew(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	services := &service.Services{
		AuthService:       authhandlers.NewMockService(ctrl),
		UserService:       userhandlers.NewMockService(ctrl),
		PaymentService:    paymenthandlers.NewMockService(ctrl),
		WithdrawalService: withdrawalhandlers.NewMockService(ctrl),
		AdminService:      adminhandlers.NewMockService(ctrl),
	}
	jwtService := auth.NewMockJWTServiceInterface(ctrl)

	h := New(services, jwtService)

	assert.NotNil(t, h.AuthHandler)
	assert.NotNil(t, h.UserHandler)
	assert.NotNil(t, h.PaymentHandler)
	assert.NotNil(t, h.WithdrawalHandler)
	assert.NotNil(t, h.AdminHandler)
}

func TestInitRoutes(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	authHandler := NewMockAuthHandler(ctrl)
	userHandler := NewMockUserHandler(ctrl)
	paymentHandler := NewMockPaymentHandler(ctrl)
	withdrawalHandler := NewMockWithdrawalHandler(ctrl)
	adminHandler := NewMockAdminHandler(ctrl)
	jwtService := auth.NewMockJWTServiceInterface(ctrl)

	h := &Handlers{
		AuthHandler:       authHandler,
		UserHandler:       userHandler,
		PaymentHandler:    paymentHandler,
		WithdrawalHandler: withdrawalHandler,
		AdminHandler:      adminHandler,
		jwtService:        jwtService,
	}

	router := chi.NewRouter()
	h.InitRoutes(router)
	server := httptest.NewServer(router)
	defer server.Close()

	ok := func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }

	tests := []struct {
		name         string
		method       string
		path         string
		token        string
		role         string
		prepareMock  func()
		expectedCode int
	}{
		{
			name:         "Register is public",
			method:       "POST",
			path:         "/register",
			prepareMock:  func() { authHandler.EXPECT().Register(gomock.Any(), gomock.Any()).Do(ok) },
			expectedCode: http.StatusOK,
		},
		{
			name:         "Login is public",
			method:       "POST",
			path:         "/login",
			prepareMock:  func() { authHandler.EXPECT().Login(gomock.Any(), gomock.Any()).Do(ok) },
			expectedCode: http.StatusOK,
		},
		{
			name:         "Callback is public",
			method:       "POST",
			path:         "/callback",
			prepareMock:  func() { paymentHandler.EXPECT().Callback(gomock.Any(), gomock.Any()).Do(ok) },
			expectedCode: http.StatusOK,
		},
		{
			name:         "Dashboard requires a token",
			method:       "GET",
			path:         "/user/9876543210",
			prepareMock:  func() {},
			expectedCode: http.StatusUnauthorized,
		},
		{
			name:   "Dashboard with a member token",
			method: "GET",
			path:   "/user/9876543210",
			token:  "member-token",
			role:   "member",
			prepareMock: func() {
				userHandler.EXPECT().Dashboard(gomock.Any(), gomock.Any()).Do(ok)
			},
			expectedCode: http.StatusOK,
		},
		{
			name:   "Pay with a member token",
			method: "POST",
			path:   "/pay",
			token:  "member-token",
			role:   "member",
			prepareMock: func() {
				paymentHandler.EXPECT().Pay(gomock.Any(), gomock.Any()).Do(ok)
			},
			expectedCode: http.StatusOK,
		},
		{
			name:   "Withdraw with a member token",
			method: "POST",
			path:   "/withdraw",
			token:  "member-token",
			role:   "member",
			prepareMock: func() {
				withdrawalHandler.EXPECT().Withdraw(gomock.Any(), gomock.Any()).Do(ok)
			},
			expectedCode: http.StatusOK,
		},
		{
			name:         "Admin route rejects a member token",
			method:       "GET",
			path:         "/admin/withdrawals",
			token:        "member-token",
			role:         "member",
			prepareMock:  func() {},
			expectedCode: http.StatusForbidden,
		},
		{
			name:   "Admin route accepts an admin token",
			method: "GET",
			path:   "/admin/withdrawals",
			token:  "admin-token",
			role:   "admin",
			prepareMock: func() {
				adminHandler.EXPECT().ListWithdrawals(gomock.Any(), gomock.Any()).Do(ok)
			},
			expectedCode: http.StatusOK,
		},
		{
			name:   "Admin withdrawal update routes by id",
			method: "PUT",
			path:   "/admin/withdrawal/1",
			token:  "admin-token",
			role:   "admin",
			prepareMock: func() {
				adminHandler.EXPECT().UpdateWithdrawal(gomock.Any(), gomock.Any()).Do(ok)
			},
			expectedCode: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			if tt.token != "" {
				jwtService.EXPECT().ValidateToken(tt.token).Return(&auth.Claims{
					Phone: "9876543210",
					Role:  tt.role,
				}, nil)
			}

			req, err := http.NewRequest(tt.method, server.URL+tt.path, nil)
			assert.NoError(t, err)
			if tt.token != "" {
				req.Header.Set("Authorization", "Bearer "+tt.token)
			}

			resp, err := http.DefaultClient.Do(req)
			assert.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tt.expectedCode, resp.StatusCode)
		})
	}
}
