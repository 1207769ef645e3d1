package user

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/goalux/goalux/internal/domain"
	"github.com/goalux/goalux/internal/dto"
	userservice "github.com/goalux/goalux/internal/service/userservice"
	"github.com/goalux/goalux/pkg/utils"
)

type Service interface {
	Dashboard(ctx context.Context, phone string) (*domain.User, float64, error)
}

type UserHandler struct {
	userService Service
}

func New(userService Service) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// Dashboard godoc
//
//	@Summary		Get member dashboard
//	@Description	Wallet balance, credited referral commission and payment state for an account
//	@Tags			User
//	@Security		BearerAuth
//	@Produce		json
//	@Param			phone	path		string	true	"Account phone number"
//	@Success		200		{object}	dto.DashboardResponseDTO
//	@Failure		401		{object}	utils.Response	"User not authorized"
//	@Failure		404		{object}	utils.Response	"User not found"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/user/{phone} [get]
func (h *UserHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	phone := chi.URLParam(r, "phone")

	user, commission, err := h.userService.Dashboard(r.Context(), phone)
	if err != nil {
		switch {
		case errors.Is(err, userservice.ErrUserNotFound):
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, dto.DashboardResponseDTO{
		Wallet:             user.Wallet,
		ReferralCommission: commission,
		HasPaid:            user.HasPaid,
	})
}
