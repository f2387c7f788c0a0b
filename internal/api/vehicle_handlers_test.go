package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parkdesk/internal/db"
	"parkdesk/internal/entities"
	"parkdesk/internal/pricing"
	"parkdesk/internal/service"
	"parkdesk/internal/validation"
)

type memoryRepo struct {
	vehicles map[int]db.Vehicle
	nextID   int
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{vehicles: map[int]db.Vehicle{}, nextID: 1}
}

func (r *memoryRepo) All() ([]db.Vehicle, error) {
	ids := make([]int, 0, len(r.vehicles))
	for id := range r.vehicles {
		ids = append(ids, id)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(ids)))
	vehicles := make([]db.Vehicle, 0, len(ids))
	for _, id := range ids {
		vehicles = append(vehicles, r.vehicles[id])
	}
	return vehicles, nil
}

func (r *memoryRepo) Find(id int) (*db.Vehicle, error) {
	vehicle, ok := r.vehicles[id]
	if !ok {
		return nil, nil
	}
	return &vehicle, nil
}

func (r *memoryRepo) Create(v db.Vehicle) (db.Vehicle, error) {
	created := v.WithID(r.nextID)
	r.vehicles[created.ID] = created
	r.nextID++
	return created, nil
}

func (r *memoryRepo) Update(v db.Vehicle) error {
	r.vehicles[v.ID] = v
	return nil
}

func (r *memoryRepo) Delete(id int) error {
	delete(r.vehicles, id)
	return nil
}

func newTestRouter(repo service.VehicleRepository) *mux.Router {
	calculator := pricing.NewCalculator()
	parkingSvc := service.NewParkingService(repo, validation.NewVehicleValidator(), calculator, time.UTC)
	reportSvc := service.NewReportService(repo)

	vehicleHandler := NewVehicleHandler(parkingSvc, calculator)
	reportHandler := NewReportHandler(reportSvc)

	r := mux.NewRouter()
	r.HandleFunc("/api/vehicles", vehicleHandler.ListVehicles).Methods("GET")
	r.HandleFunc("/api/vehicles", vehicleHandler.RegisterVehicle).Methods("POST")
	r.HandleFunc("/api/vehicles/{id}", vehicleHandler.GetVehicle).Methods("GET")
	r.HandleFunc("/api/vehicles/{id}", vehicleHandler.UpdateVehicle).Methods("PUT")
	r.HandleFunc("/api/vehicles/{id}", vehicleHandler.DeleteVehicle).Methods("DELETE")
	r.HandleFunc("/api/vehicles/{id}/checkin", vehicleHandler.CheckInVehicle).Methods("POST")
	r.HandleFunc("/api/vehicles/{id}/checkout", vehicleHandler.CheckOutVehicle).Methods("POST")
	r.HandleFunc("/api/rates", vehicleHandler.ListRates).Methods("GET")
	r.HandleFunc("/api/report", reportHandler.GenerateReport).Methods("GET")
	return r
}

func doJSON(t *testing.T, router *mux.Router, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestRegisterVehicle(t *testing.T) {
	router := newTestRouter(newMemoryRepo())

	rec := doJSON(t, router, "POST", "/api/vehicles", entities.VehicleRequest{Plate: "abc1234", VehicleType: "car"})
	require.Equal(t, http.StatusCreated, rec.Code)

	var res entities.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.True(t, res.OK)
	assert.Equal(t, 1, res.ID)
}

func TestRegisterVehicleValidationFailure(t *testing.T) {
	router := newTestRouter(newMemoryRepo())

	rec := doJSON(t, router, "POST", "/api/vehicles", entities.VehicleRequest{Plate: "AB123", VehicleType: "bus"})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var res entities.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.False(t, res.OK)
	assert.Len(t, res.Errors, 2)
}

func TestCheckInUnknownVehicleReturns404(t *testing.T) {
	router := newTestRouter(newMemoryRepo())

	rec := doJSON(t, router, "POST", "/api/vehicles/42/checkin", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSessionFlow(t *testing.T) {
	repo := newMemoryRepo()
	router := newTestRouter(repo)

	rec := doJSON(t, router, "POST", "/api/vehicles", entities.VehicleRequest{Plate: "ABC1D23", VehicleType: "motorcycle"})
	require.Equal(t, http.StatusCreated, rec.Code)
	var created entities.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	base := fmt.Sprintf("/api/vehicles/%d", created.ID)

	rec = doJSON(t, router, "POST", base+"/checkin", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	// A second check-in is a state conflict.
	rec = doJSON(t, router, "POST", base+"/checkin", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = doJSON(t, router, "POST", base+"/checkout", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var checkout entities.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &checkout))
	assert.True(t, checkout.OK)
	assert.Equal(t, 3.0, checkout.Amount, "sub-hour stay bills one motorcycle hour")

	rec = doJSON(t, router, "GET", base, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var vehicle entities.VehicleResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &vehicle))
	assert.Equal(t, db.StatusCompleted, vehicle.Status)
	assert.Equal(t, 3.0, vehicle.Amount)
}

func TestCheckOutBeforeCheckInReturns409(t *testing.T) {
	repo := newMemoryRepo()
	router := newTestRouter(repo)

	rec := doJSON(t, router, "POST", "/api/vehicles", entities.VehicleRequest{Plate: "ABC1234", VehicleType: "truck"})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, router, "POST", "/api/vehicles/1/checkout", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	var res entities.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, []string{service.MsgMissingCheckin}, res.Errors)
}

func TestListVehiclesIncludesDerivedStatus(t *testing.T) {
	repo := newMemoryRepo()
	repo.Create(db.Vehicle{Plate: "AAA1111", VehicleType: "car", Checkin: "2024-01-01T10:00:00-03:00"})
	router := newTestRouter(repo)

	rec := doJSON(t, router, "GET", "/api/vehicles", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var vehicles []entities.VehicleResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &vehicles))
	require.Len(t, vehicles, 1)
	assert.Equal(t, db.StatusParked, vehicles[0].Status)
}

func TestListRates(t *testing.T) {
	router := newTestRouter(newMemoryRepo())

	rec := doJSON(t, router, "GET", "/api/rates", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var rates []entities.RateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rates))
	require.Len(t, rates, 3)
	assert.Equal(t, entities.RateResponse{VehicleType: "car", HourlyRate: 5.0}, rates[0])
}

func TestReportEndpoint(t *testing.T) {
	repo := newMemoryRepo()
	repo.Create(db.Vehicle{Plate: "AAA1111", VehicleType: "car", Amount: 15.0, Checkin: "2024-01-01T10:00:00-03:00", Checkout: "2024-01-01T13:00:00-03:00"})
	repo.Create(db.Vehicle{Plate: "BBB2222", VehicleType: "truck"})
	router := newTestRouter(repo)

	rec := doJSON(t, router, "GET", "/api/report", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var report entities.Report
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.Equal(t, 2, report.TotalVehicles)
	assert.Equal(t, 15.0, report.TotalRevenue)
	assert.Equal(t, 1, report.ByType["car"].Count)
}

func TestUpdateAndDeleteEndpoints(t *testing.T) {
	repo := newMemoryRepo()
	repo.Create(db.Vehicle{Plate: "AAA1111", VehicleType: "car"})
	router := newTestRouter(repo)

	rec := doJSON(t, router, "PUT", "/api/vehicles/1", entities.VehicleRequest{
		Plate:       "AAA1111",
		VehicleType: "car",
		Checkin:     "2024-01-01T10:00:00-03:00",
		Checkout:    "2024-01-01T12:30:00-03:00",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 15.0, repo.vehicles[1].Amount)

	rec = doJSON(t, router, "DELETE", "/api/vehicles/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, repo.vehicles)

	rec = doJSON(t, router, "DELETE", "/api/vehicles/1", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, router, "DELETE", "/api/vehicles/nope", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
