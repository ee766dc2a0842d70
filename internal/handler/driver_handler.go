package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/naufal/go-antar/internal/models"
	"github.com/naufal/go-antar/internal/service"
	"github.com/naufal/go-antar/pkg/utils"
)

type DriverHandler struct {
	driverService   service.DriverService
	matchingService service.MatchingService
	validate        *validator.Validate
}

func NewDriverHandler(driverService service.DriverService, matchingService service.MatchingService) *DriverHandler {
	return &DriverHandler{
		driverService:   driverService,
		matchingService: matchingService,
		validate:        validator.New(),
	}
}

func (h *DriverHandler) RegisterRoutes(r chi.Router) {
	r.Post("/drivers", h.CreateProfile)
	r.Get("/drivers/nearby", h.NearbyDrivers)
	r.Get("/drivers/{id}", h.GetProfile)
	r.Post("/drivers/{id}/location", h.UpdateLocation)
	r.Get("/drivers/{id}/orders", h.AvailableOrders)
}

// POST /v1/drivers
func (h *DriverHandler) CreateProfile(w http.ResponseWriter, r *http.Request) {
	var req models.CreateDriverProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		utils.ValidationFailed(w, err.Error())
		return
	}

	profile, err := h.driverService.CreateProfile(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	utils.Created(w, profile)
}

// GET /v1/drivers/{id}
func (h *DriverHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		utils.BadRequest(w, "driver id is required")
		return
	}

	profile, err := h.driverService.GetProfile(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}

	utils.Success(w, http.StatusOK, profile)
}

// POST /v1/drivers/{id}/location
func (h *DriverHandler) UpdateLocation(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		utils.BadRequest(w, "driver id is required")
		return
	}

	var req models.UpdateDriverLocationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		utils.ValidationFailed(w, err.Error())
		return
	}

	profile, err := h.driverService.UpdateLocation(r.Context(), id, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	utils.Success(w, http.StatusOK, profile)
}

// GET /v1/drivers/nearby?lat=&lng=&radius_km=
func (h *DriverHandler) NearbyDrivers(w http.ResponseWriter, r *http.Request) {
	lat, err := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
	if err != nil {
		utils.ValidationFailed(w, "lat must be a number")
		return
	}
	lng, err := strconv.ParseFloat(r.URL.Query().Get("lng"), 64)
	if err != nil {
		utils.ValidationFailed(w, "lng must be a number")
		return
	}

	radiusKm := service.DefaultNearbyRadiusKm
	if raw := r.URL.Query().Get("radius_km"); raw != "" {
		radiusKm, err = strconv.ParseFloat(raw, 64)
		if err != nil || radiusKm <= 0 {
			utils.ValidationFailed(w, "radius_km must be a positive number")
			return
		}
	}

	req := models.NearbyDriversRequest{Latitude: lat, Longitude: lng, RadiusKm: radiusKm}
	if err := h.validate.Struct(req); err != nil {
		utils.ValidationFailed(w, err.Error())
		return
	}

	drivers, err := h.matchingService.NearbyDrivers(r.Context(), lat, lng, radiusKm)
	if err != nil {
		handleError(w, err)
		return
	}

	utils.Success(w, http.StatusOK, drivers)
}

// GET /v1/drivers/{id}/orders
func (h *DriverHandler) AvailableOrders(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		utils.BadRequest(w, "driver id is required")
		return
	}

	orders, err := h.matchingService.AvailableOrders(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}

	utils.Success(w, http.StatusOK, orders)
}
