package withdrawal

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/goalux/goalux/internal/dto"
	withdrawalservice "github.com/goalux/goalux/internal/service/withdrawalservice"
	"github.com/goalux/goalux/pkg/auth"
	"github.com/goalux/goalux/pkg/utils"
	"github.com/goalux/goalux/pkg/validate"
)

type Service interface {
	RequestWithdrawal(ctx context.Context, phone, upiID string, amount float64) error
}

type WithdrawalHandler struct {
	withdrawalService Service
}

func New(withdrawalService Service) *WithdrawalHandler {
	return &WithdrawalHandler{
		withdrawalService: withdrawalService,
	}
}

// Withdraw godoc
//
//	@Summary		Request funds withdrawal
//	@Description	Create a pending withdrawal request and debit the wallet
//	@Tags			Withdrawal
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.WithdrawRequestDTO	true	"Withdrawal request payload"
//	@Success		200		{object}	dto.WithdrawResponseDTO
//	@Failure		400		{object}	utils.Response	"Insufficient balance or membership unpaid"
//	@Failure		401		{object}	utils.Response	"User not authorized"
//	@Failure		404		{object}	utils.Response	"User not found"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/withdraw [post]
func (h *WithdrawalHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	phone := r.Context().Value(auth.PhoneKey).(string)

	var req dto.WithdrawRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.UPIID == "" || req.Amount <= 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "UPI id and a positive amount are required")
		return
	}
	if !validate.IsUPI(req.UPIID) {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid UPI id")
		return
	}

	err := h.withdrawalService.RequestWithdrawal(r.Context(), phone, req.UPIID, req.Amount)
	if err != nil {
		switch {
		case errors.Is(err, withdrawalservice.ErrInsufficientBalance),
			errors.Is(err, withdrawalservice.ErrMembershipUnpaid):
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, withdrawalservice.ErrUserNotFound):
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, dto.WithdrawResponseDTO{
		Message: "Withdrawal request submitted",
	})
}
