package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	logrus "github.com/sirupsen/logrus"

	"parkdesk/internal/db"
	"parkdesk/internal/entities"
	"parkdesk/internal/pricing"
	"parkdesk/internal/service"
)

type VehicleHandler struct {
	Service    *service.ParkingService
	Calculator *pricing.Calculator
}

func NewVehicleHandler(svc *service.ParkingService, calculator *pricing.Calculator) *VehicleHandler {
	return &VehicleHandler{Service: svc, Calculator: calculator}
}

func (h *VehicleHandler) ListVehicles(w http.ResponseWriter, r *http.Request) {
	vehicles, err := h.Service.All()
	if err != nil {
		logrus.Errorf("Listing vehicles: %v", err)
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}

	responses := make([]entities.VehicleResponse, 0, len(vehicles))
	for _, vehicle := range vehicles {
		responses = append(responses, toVehicleResponse(vehicle))
	}
	writeJSON(w, http.StatusOK, responses)
}

func (h *VehicleHandler) RegisterVehicle(w http.ResponseWriter, r *http.Request) {
	var req entities.VehicleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	res, err := h.Service.Create(req)
	if err != nil {
		logrus.Errorf("Registering vehicle: %v", err)
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}
	writeResult(w, res, http.StatusCreated)
}

func (h *VehicleHandler) GetVehicle(w http.ResponseWriter, r *http.Request) {
	id, ok := vehicleID(w, r)
	if !ok {
		return
	}

	vehicle, err := h.Service.Find(id)
	if err != nil {
		logrus.Errorf("Loading vehicle %d: %v", id, err)
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}
	if vehicle == nil {
		http.Error(w, "Vehicle not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, toVehicleResponse(*vehicle))
}

func (h *VehicleHandler) UpdateVehicle(w http.ResponseWriter, r *http.Request) {
	id, ok := vehicleID(w, r)
	if !ok {
		return
	}

	var req entities.VehicleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	res, err := h.Service.Update(id, req)
	if err != nil {
		logrus.Errorf("Updating vehicle %d: %v", id, err)
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}
	writeResult(w, res, http.StatusOK)
}

func (h *VehicleHandler) DeleteVehicle(w http.ResponseWriter, r *http.Request) {
	id, ok := vehicleID(w, r)
	if !ok {
		return
	}

	res, err := h.Service.Delete(id)
	if err != nil {
		logrus.Errorf("Deleting vehicle %d: %v", id, err)
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}
	writeResult(w, res, http.StatusOK)
}

func (h *VehicleHandler) CheckInVehicle(w http.ResponseWriter, r *http.Request) {
	id, ok := vehicleID(w, r)
	if !ok {
		return
	}

	res, err := h.Service.CheckIn(id)
	if err != nil {
		logrus.Errorf("Check-in for vehicle %d: %v", id, err)
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}
	writeResult(w, res, http.StatusOK)
}

func (h *VehicleHandler) CheckOutVehicle(w http.ResponseWriter, r *http.Request) {
	id, ok := vehicleID(w, r)
	if !ok {
		return
	}

	res, err := h.Service.CheckOut(id)
	if err != nil {
		logrus.Errorf("Check-out for vehicle %d: %v", id, err)
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}
	writeResult(w, res, http.StatusOK)
}

func (h *VehicleHandler) ListRates(w http.ResponseWriter, r *http.Request) {
	types := h.Calculator.SupportedTypes()
	rates := make([]entities.RateResponse, 0, len(types))
	for _, vehicleType := range types {
		rates = append(rates, entities.RateResponse{
			VehicleType: vehicleType,
			HourlyRate:  h.Calculator.HourlyRate(vehicleType),
		})
	}
	writeJSON(w, http.StatusOK, rates)
}

func vehicleID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func toVehicleResponse(vehicle db.Vehicle) entities.VehicleResponse {
	return entities.VehicleResponse{
		ID:          vehicle.ID,
		Plate:       vehicle.Plate,
		VehicleType: vehicle.VehicleType,
		BaseRate:    vehicle.BaseRate,
		Amount:      vehicle.Amount,
		Checkin:     vehicle.Checkin,
		Checkout:    vehicle.Checkout,
		Status:      vehicle.Status(),
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// writeResult maps a domain result onto a status code: not-found and
// state-conflict failures are told apart by their messages, anything
// else failing is a validation problem.
func writeResult(w http.ResponseWriter, res entities.Result, okStatus int) {
	status := okStatus
	if !res.OK {
		status = http.StatusUnprocessableEntity
		if len(res.Errors) == 1 {
			switch res.Errors[0] {
			case service.MsgVehicleNotFound:
				status = http.StatusNotFound
			case service.MsgAlreadyCheckedIn, service.MsgMissingCheckin, service.MsgAlreadyCheckedOut:
				status = http.StatusConflict
			}
		}
	}
	writeJSON(w, status, res)
}
