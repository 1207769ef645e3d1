package admin

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/goalux/goalux/internal/domain"
	"github.com/goalux/goalux/internal/dto"
	adminservice "github.com/goalux/goalux/internal/service/adminservice"
	"github.com/goalux/goalux/pkg/utils"
)

type Service interface {
	ListWithdrawals(ctx context.Context) ([]domain.Withdrawal, error)
	ListPendingWithdrawals(ctx context.Context) ([]domain.Withdrawal, error)
	UpdateWithdrawalStatus(ctx context.Context, id int, status string) error
	ListUsers(ctx context.Context) ([]domain.User, error)
	ListPayments(ctx context.Context) ([]domain.Payment, error)
	ListReferralSummaries(ctx context.Context) ([]domain.ReferralSummary, error)
}

type AdminHandler struct {
	adminService Service
}

func New(adminService Service) *AdminHandler {
	return &AdminHandler{
		adminService: adminService,
	}
}

// ListWithdrawals godoc
//
//	@Summary		List all withdrawal requests
//	@Tags			Admin
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{array}		dto.WithdrawalDTO
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		403	{object}	utils.Response	"Admin role required"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/admin/withdrawals [get]
func (h *AdminHandler) ListWithdrawals(w http.ResponseWriter, r *http.Request) {
	withdrawals, err := h.adminService.ListWithdrawals(r.Context())
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch withdrawals")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, toWithdrawalDTOs(withdrawals))
}

// ListPendingWithdrawals godoc
//
//	@Summary		List pending withdrawal requests
//	@Tags			Admin
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{array}		dto.WithdrawalDTO
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		403	{object}	utils.Response	"Admin role required"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/admin/new-withdrawals [get]
func (h *AdminHandler) ListPendingWithdrawals(w http.ResponseWriter, r *http.Request) {
	withdrawals, err := h.adminService.ListPendingWithdrawals(r.Context())
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch withdrawals")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, toWithdrawalDTOs(withdrawals))
}

// UpdateWithdrawal godoc
//
//	@Summary		Approve or reject a withdrawal request
//	@Tags			Admin
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int								true	"Withdrawal id"
//	@Param			request	body		dto.UpdateWithdrawalRequestDTO	true	"New status"
//	@Success		200		{object}	utils.Response
//	@Failure		400		{object}	utils.Response	"Invalid id or status"
//	@Failure		401		{object}	utils.Response	"User not authorized"
//	@Failure		403		{object}	utils.Response	"Admin role required"
//	@Failure		404		{object}	utils.Response	"Withdrawal not found"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/admin/withdrawal/{id} [put]
func (h *AdminHandler) UpdateWithdrawal(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid withdrawal id")
		return
	}

	var req dto.UpdateWithdrawalRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	err = h.adminService.UpdateWithdrawalStatus(r.Context(), id, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, adminservice.ErrInvalidStatus):
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, adminservice.ErrWithdrawalNotFound):
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.Response{Message: "Status updated"})
}

// ListUsers godoc
//
//	@Summary		List users
//	@Description	All accounts, redacted to public fields
//	@Tags			Admin
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{array}		dto.AdminUserDTO
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		403	{object}	utils.Response	"Admin role required"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/admin/users [get]
func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.adminService.ListUsers(r.Context())
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch users")
		return
	}

	response := make([]dto.AdminUserDTO, len(users))
	for i, user := range users {
		response[i] = dto.AdminUserDTO{
			Phone:        user.Phone,
			ReferralCode: user.ReferralCode,
			Wallet:       user.Wallet,
			HasPaid:      user.HasPaid,
		}
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

// ListPayments godoc
//
//	@Summary		List settled payments
//	@Tags			Admin
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{array}		dto.AdminPaymentDTO
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		403	{object}	utils.Response	"Admin role required"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/admin/payments [get]
func (h *AdminHandler) ListPayments(w http.ResponseWriter, r *http.Request) {
	payments, err := h.adminService.ListPayments(r.Context())
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch payments")
		return
	}

	response := make([]dto.AdminPaymentDTO, len(payments))
	for i, payment := range payments {
		response[i] = dto.AdminPaymentDTO{
			Phone:   payment.Phone,
			OrderID: payment.OrderID,
			Amount:  payment.Amount,
			Status:  payment.Status,
		}
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

// ListReferrals godoc
//
//	@Summary		List referral summaries
//	@Description	Per account: public code, direct referral count and credited commission
//	@Tags			Admin
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{array}		dto.AdminReferralDTO
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		403	{object}	utils.Response	"Admin role required"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/admin/referrals [get]
func (h *AdminHandler) ListReferrals(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.adminService.ListReferralSummaries(r.Context())
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch referrals")
		return
	}

	response := make([]dto.AdminReferralDTO, len(summaries))
	for i, summary := range summaries {
		response[i] = dto.AdminReferralDTO{
			Phone:              summary.Phone,
			ReferralCode:       summary.ReferralCode,
			Referrals:          summary.Referrals,
			ReferralCommission: summary.Commission,
		}
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

func toWithdrawalDTOs(withdrawals []domain.Withdrawal) []dto.WithdrawalDTO {
	response := make([]dto.WithdrawalDTO, len(withdrawals))
	for i, wd := range withdrawals {
		response[i] = dto.WithdrawalDTO{
			ID:        wd.ID,
			Phone:     wd.Phone,
			UPIID:     wd.UPIID,
			Amount:    wd.Amount,
			Status:    wd.Status,
			CreatedAt: wd.CreatedAt,
		}
	}
	return response
}
