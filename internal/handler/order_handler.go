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

type OrderHandler struct {
	orderService service.OrderService
	bidService   service.BidService
	validate     *validator.Validate
}

func NewOrderHandler(orderService service.OrderService, bidService service.BidService) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		bidService:   bidService,
		validate:     validator.New(),
	}
}

func (h *OrderHandler) RegisterRoutes(r chi.Router) {
	r.Post("/orders", h.CreateOrder)
	r.Get("/orders/{id}", h.GetOrder)
	r.Post("/orders/{id}/status", h.UpdateStatus)
	r.Post("/orders/{id}/accept", h.AcceptBid)
	r.Post("/orders/{id}/bids", h.CreateBid)
	r.Get("/orders/{id}/bids", h.GetOrderBids)
}

// POST /v1/orders
func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req models.CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		utils.ValidationFailed(w, err.Error())
		return
	}

	order, err := h.orderService.CreateOrder(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	utils.Created(w, order)
}

// GET /v1/orders/{id}
func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		utils.BadRequest(w, "order id is required")
		return
	}

	order, err := h.orderService.GetOrder(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}

	utils.Success(w, http.StatusOK, order)
}

// POST /v1/orders/{id}/status
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		utils.BadRequest(w, "order id is required")
		return
	}

	var req models.UpdateOrderStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		utils.ValidationFailed(w, err.Error())
		return
	}

	order, err := h.orderService.UpdateStatus(r.Context(), id, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	utils.Success(w, http.StatusOK, order)
}

// POST /v1/orders/{id}/accept
func (h *OrderHandler) AcceptBid(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		utils.BadRequest(w, "order id is required")
		return
	}

	var req models.AcceptBidRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		utils.ValidationFailed(w, err.Error())
		return
	}

	order, err := h.orderService.AcceptBid(r.Context(), id, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	utils.Success(w, http.StatusOK, order)
}

// POST /v1/orders/{id}/bids
func (h *OrderHandler) CreateBid(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		utils.BadRequest(w, "order id is required")
		return
	}

	var req models.CreateDriverBidRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		utils.ValidationFailed(w, err.Error())
		return
	}

	bid, err := h.bidService.CreateBid(r.Context(), id, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	utils.Created(w, bid)
}

// GET /v1/orders/{id}/bids
func (h *OrderHandler) GetOrderBids(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		utils.BadRequest(w, "order id is required")
		return
	}

	bids, err := h.bidService.GetOrderBids(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}

	utils.Success(w, http.StatusOK, bids)
}
