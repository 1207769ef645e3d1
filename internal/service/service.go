package service

import (
	adminhandlers "github.com/goalux/goalux/internal/handlers/admin"
	authhandlers "github.com/goalux/goalux/internal/handlers/auth"
	paymenthandlers "github.com/goalux/goalux/internal/handlers/payment"
	userhandlers "github.com/goalux/goalux/internal/handlers/user"
	withdrawalhandlers "github.com/goalux/goalux/internal/handlers/withdrawal"

	pkgauth "github.com/goalux/goalux/pkg/auth"

	"github.com/goalux/goalux/internal/gateway"
	"github.com/goalux/goalux/internal/pg"
	"github.com/goalux/goalux/internal/repo"
	adminservice "github.com/goalux/goalux/internal/service/adminservice"
	authservice "github.com/goalux/goalux/internal/service/authservice"
	commissionservice "github.com/goalux/goalux/internal/service/commissionservice"
	paymentservice "github.com/goalux/goalux/internal/service/paymentservice"
	userservice "github.com/goalux/goalux/internal/service/userservice"
	withdrawalservice "github.com/goalux/goalux/internal/service/withdrawalservice"
)

type Services struct {
	AuthService       authhandlers.Service
	UserService       userhandlers.Service
	PaymentService    paymenthandlers.Service
	WithdrawalService withdrawalhandlers.Service
	AdminService      adminhandlers.Service

	// PaymentSettler is the idempotent settlement entry shared with the
	// gateway reconciliation poller.
	PaymentSettler gateway.Settler
}

func New(repos *repo.Repositories, txManager pg.TXManager, gw paymentservice.Gateway, jwtService pkgauth.JWTServiceInterface) *Services {
	commissionService := commissionservice.New(repos.UserRepo, repos.CommissionRepo)
	authService := authservice.New(repos.UserRepo, commissionService, &pkgauth.HashService{}, jwtService)
	userService := userservice.New(repos.UserRepo, commissionService)
	paymentService := paymentservice.New(repos.PaymentRepo, repos.UserRepo, gw)
	withdrawalService := withdrawalservice.New(repos.UserRepo, repos.WithdrawalRepo, txManager)
	adminService := adminservice.New(repos.UserRepo, repos.PaymentRepo, repos.WithdrawalRepo, commissionService)

	return &Services{
		AuthService:       authService,
		UserService:       userService,
		PaymentService:    paymentService,
		WithdrawalService: withdrawalService,
		AdminService:      adminService,
		PaymentSettler:    paymentService,
	}
}
