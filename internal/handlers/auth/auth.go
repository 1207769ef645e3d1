package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/goalux/goalux/internal/domain"
	"github.com/goalux/goalux/internal/dto"
	authservice "github.com/goalux/goalux/internal/service/authservice"
	"github.com/goalux/goalux/pkg/utils"
	"github.com/goalux/goalux/pkg/validate"
)

type Service interface {
	Register(ctx context.Context, phone, password, referral string) (*domain.User, error)
	Authenticate(ctx context.Context, phone, password string) (*domain.User, error)
	GenerateToken(user *domain.User) (string, error)
}

type AuthHandler struct {
	authService Service
}

func New(authService Service) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Register godoc
//
//	@Summary		Register a new member
//	@Description	Create an account with phone, password and the referrer's code
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.RegisterRequestDTO	true	"Register request body"
//	@Success		201		{object}	dto.RegisterResponseDTO
//	@Failure		400		{object}	utils.Response	"Missing fields or phone already registered"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequestDTO
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Phone == "" || req.Password == "" || req.Referral == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Phone, password and referral code are required")
		return
	}
	if !validate.IsPhone(req.Phone) {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid phone number")
		return
	}

	user, err := h.authService.Register(r.Context(), req.Phone, req.Password, req.Referral)
	if err != nil {
		switch {
		case errors.Is(err, authservice.ErrPhoneAlreadyRegistered):
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, dto.RegisterResponseDTO{
		Message:      "Registration successful",
		ReferralCode: user.ReferralCode,
	})
}

// Login godoc
//
//	@Summary		Authenticate member
//	@Description	Log in with phone and password and get a bearer token
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.LoginRequestDTO	true	"Login request body"
//	@Success		200		{object}	dto.LoginResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid request body"
//	@Failure		401		{object}	utils.Response	"Invalid credentials"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequestDTO
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.authService.Authenticate(r.Context(), req.Phone, req.Password)
	if err != nil {
		// Same answer for unknown phone and wrong password.
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	token, err := h.authService.GenerateToken(user)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error generating token")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, dto.LoginResponseDTO{
		Message:      "Login successful",
		Token:        token,
		ReferralCode: user.ReferralCode,
	})
}
