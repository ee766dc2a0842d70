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

type SubscriptionHandler struct {
	subscriptionService service.SubscriptionService
	validate            *validator.Validate
}

func NewSubscriptionHandler(subscriptionService service.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{
		subscriptionService: subscriptionService,
		validate:            validator.New(),
	}
}

func (h *SubscriptionHandler) RegisterRoutes(r chi.Router) {
	r.Post("/subscriptions", h.CreateSubscription)
}

// POST /v1/subscriptions
func (h *SubscriptionHandler) CreateSubscription(w http.ResponseWriter, r *http.Request) {
	var req models.CreateSubscriptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		utils.ValidationFailed(w, err.Error())
		return
	}

	sub, err := h.subscriptionService.CreateSubscription(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	utils.Created(w, sub)
}
