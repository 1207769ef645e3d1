package payment

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/goalux/goalux/internal/dto"
	paymentservice "github.com/goalux/goalux/internal/service/paymentservice"
	"github.com/goalux/goalux/pkg/auth"
	"github.com/goalux/goalux/pkg/utils"
)

type Service interface {
	InitiatePayment(ctx context.Context, phone string) (*dto.PayResponseDTO, error)
	HandleCallback(ctx context.Context, cb *dto.CallbackRequestDTO) error
}

type PaymentHandler struct {
	paymentService Service
}

func New(paymentService Service) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
	}
}

// Pay godoc
//
//	@Summary		Initiate membership payment
//	@Description	Create a payment order for the fixed membership fee and return the signed gateway redirect payload
//	@Tags			Payment
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	dto.PayResponseDTO
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		404	{object}	utils.Response	"User not found"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/pay [post]
func (h *PaymentHandler) Pay(w http.ResponseWriter, r *http.Request) {
	phone := r.Context().Value(auth.PhoneKey).(string)

	params, err := h.paymentService.InitiatePayment(r.Context(), phone)
	if err != nil {
		switch {
		case errors.Is(err, paymentservice.ErrUserNotFound):
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, params)
}

// Callback godoc
//
//	@Summary		Payment gateway callback
//	@Description	Settle a payment order from the gateway's signed callback
//	@Tags			Payment
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.CallbackRequestDTO	true	"Gateway callback payload"
//	@Success		200		{object}	dto.CallbackResponseDTO
//	@Failure		400		{object}	utils.Response	"Payment failed"
//	@Failure		401		{object}	utils.Response	"Invalid callback signature"
//	@Failure		404		{object}	utils.Response	"Unknown payment order"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/callback [post]
func (h *PaymentHandler) Callback(w http.ResponseWriter, r *http.Request) {
	var cb dto.CallbackRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&cb); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	err := h.paymentService.HandleCallback(r.Context(), &cb)
	if err != nil {
		switch {
		case errors.Is(err, paymentservice.ErrInvalidSignature):
			utils.RespondWithError(w, http.StatusUnauthorized, err.Error())
		case errors.Is(err, paymentservice.ErrPaymentFailed):
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, paymentservice.ErrPaymentNotFound):
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, dto.CallbackResponseDTO{
		Message: "Payment successful",
		OrderID: cb.OrderID,
		Status:  "Success",
		Phone:   cb.CustID,
	})
}
