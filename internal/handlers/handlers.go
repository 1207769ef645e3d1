package handlers

import (
	"net/http"

	_ "github.com/goalux/goalux/docs"
	adminhandlers "github.com/goalux/goalux/internal/handlers/admin"
	authhandlers "github.com/goalux/goalux/internal/handlers/auth"
	paymenthandlers "github.com/goalux/goalux/internal/handlers/payment"
	userhandlers "github.com/goalux/goalux/internal/handlers/user"
	withdrawalhandlers "github.com/goalux/goalux/internal/handlers/withdrawal"
	"github.com/goalux/goalux/internal/service"
	"github.com/goalux/goalux/pkg/auth"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type AuthHandler interface {
	Register(w http.ResponseWriter, r *http.Request)
	Login(w http.ResponseWriter, r *http.Request)
}

type UserHandler interface {
	Dashboard(w http.ResponseWriter, r *http.Request)
}

type PaymentHandler interface {
	Pay(w http.ResponseWriter, r *http.Request)
	Callback(w http.ResponseWriter, r *http.Request)
}

type WithdrawalHandler interface {
	Withdraw(w http.ResponseWriter, r *http.Request)
}

type AdminHandler interface {
	ListWithdrawals(w http.ResponseWriter, r *http.Request)
	ListPendingWithdrawals(w http.ResponseWriter, r *http.Request)
	UpdateWithdrawal(w http.ResponseWriter, r *http.Request)
	ListUsers(w http.ResponseWriter, r *http.Request)
	ListPayments(w http.ResponseWriter, r *http.Request)
	ListReferrals(w http.ResponseWriter, r *http.Request)
}

type Handlers struct {
	AuthHandler       AuthHandler
	UserHandler       UserHandler
	PaymentHandler    PaymentHandler
	WithdrawalHandler WithdrawalHandler
	AdminHandler      AdminHandler

	jwtService auth.JWTServiceInterface
}

func New(s *service.Services, jwtService auth.JWTServiceInterface) *Handlers {
	return &Handlers{
		AuthHandler:       authhandlers.New(s.AuthService),
		UserHandler:       userhandlers.New(s.UserService),
		PaymentHandler:    paymenthandlers.New(s.PaymentService),
		WithdrawalHandler: withdrawalhandlers.New(s.WithdrawalService),
		AdminHandler:      adminhandlers.New(s.AdminService),
		jwtService:        jwtService,
	}
}

func (h *Handlers) InitRoutes(r chi.Router) chi.Router {
	r.Use(
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
	)
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("doc.json"),
	))

	r.Post("/register", h.AuthHandler.Register)
	r.Post("/login", h.AuthHandler.Login)
	// Invoked by the gateway, authenticated by its checksum instead of a token.
	r.Post("/callback", h.PaymentHandler.Callback)

	r.Group(func(r chi.Router) {
		r.Use(auth.Middleware(h.jwtService))
		r.Get("/user/{phone}", h.UserHandler.Dashboard)
		r.Post("/pay", h.PaymentHandler.Pay)
		r.Post("/withdraw", h.WithdrawalHandler.Withdraw)

		r.Route("/admin", func(r chi.Router) {
			r.Use(auth.AdminOnly)
			r.Get("/withdrawals", h.AdminHandler.ListWithdrawals)
			r.Get("/new-withdrawals", h.AdminHandler.ListPendingWithdrawals)
			r.Put("/withdrawal/{id}", h.AdminHandler.UpdateWithdrawal)
			r.Get("/users", h.AdminHandler.ListUsers)
			r.Get("/payments", h.AdminHandler.ListPayments)
			r.Get("/referrals", h.AdminHandler.ListReferrals)
		})
	})

	return r
}
