package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/naufal/go-antar/internal/models"
	"github.com/naufal/go-antar/internal/service"
	"github.com/naufal/go-antar/pkg/utils"
)

type PaymentHandler struct {
	paymentService service.PaymentService
	validate       *validator.Validate
}

func NewPaymentHandler(paymentService service.PaymentService) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
		validate:       validator.New(),
	}
}

func (h *PaymentHandler) RegisterRoutes(r chi.Router) {
	r.Post("/payments/qris", h.ProcessQrisPayment)
}

// POST /v1/payments/qris
func (h *PaymentHandler) ProcessQrisPayment(w http.ResponseWriter, r *http.Request) {
	var req models.ProcessQrisPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		utils.ValidationFailed(w, err.Error())
		return
	}

	order, err := h.paymentService.ProcessQrisPayment(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	utils.Success(w, http.StatusOK, order)
}
