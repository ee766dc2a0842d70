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

type UserHandler struct {
	userService  service.UserService
	orderService service.OrderService
	validate     *validator.Validate
}

func NewUserHandler(userService service.UserService, orderService service.OrderService) *UserHandler {
	return &UserHandler{
		userService:  userService,
		orderService: orderService,
		validate:     validator.New(),
	}
}

func (h *UserHandler) RegisterRoutes(r chi.Router) {
	r.Post("/users", h.Register)
	r.Get("/users/{id}", h.GetUser)
	r.Get("/users/{id}/orders", h.GetUserOrders)
}

// POST /v1/users
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		utils.ValidationFailed(w, err.Error())
		return
	}

	user, err := h.userService.Register(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	utils.Created(w, user.ToResponse())
}

// GET /v1/users/{id}
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		utils.BadRequest(w, "user id is required")
		return
	}

	user, err := h.userService.GetUser(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}

	utils.Success(w, http.StatusOK, user.ToResponse())
}

// GET /v1/users/{id}/orders?role=passenger|driver
func (h *UserHandler) GetUserOrders(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		utils.BadRequest(w, "user id is required")
		return
	}

	role := r.URL.Query().Get("role")

	orders, err := h.orderService.GetUserOrders(r.Context(), id, role)
	if err != nil {
		handleError(w, err)
		return
	}

	utils.Success(w, http.StatusOK, orders)
}
