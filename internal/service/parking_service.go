package service

import (
	"fmt"
	"strings"
	"time"

	"parkdesk/internal/db"
	"parkdesk/internal/entities"
	"parkdesk/internal/metrics"
	"parkdesk/internal/pricing"
	"parkdesk/internal/validation"
)

// Messages carried in failed results. Callers that need to tell a
// not-found from a state conflict compare against these.
const (
	MsgVehicleNotFound   = "Vehicle not found."
	MsgAlreadyCheckedIn  = "Vehicle already has a check-in recorded."
	MsgMissingCheckin    = "Vehicle has no check-in recorded. Check in first."
	MsgAlreadyCheckedOut = "Vehicle already has a check-out recorded."
)

// VehicleRepository is the storage contract the services depend on.
// All lists most-recent-id first; Find returns nil for a missing id.
type VehicleRepository interface {
	All() ([]db.Vehicle, error)
	Find(id int) (*db.Vehicle, error)
	Create(v db.Vehicle) (db.Vehicle, error)
	Update(v db.Vehicle) error
	Delete(id int) error
}

// ParkingService owns the session state machine: a vehicle is
// registered with no timestamps, CheckIn stamps the arrival, CheckOut
// stamps the departure and bills the session. Each operation is a
// single read-then-write on one row with no locking, so two concurrent
// writers on the same id are last-write-wins.
type ParkingService struct {
	Repo       VehicleRepository
	validator  *validation.VehicleValidator
	calculator *pricing.Calculator
	location   *time.Location
}

func NewParkingService(repo VehicleRepository, validator *validation.VehicleValidator, calculator *pricing.Calculator, location *time.Location) *ParkingService {
	return &ParkingService{
		Repo:       repo,
		validator:  validator,
		calculator: calculator,
		location:   location,
	}
}

// Create registers a vehicle awaiting check-in. Timestamps are not
// accepted here; the session starts empty with a zero amount.
func (s *ParkingService) Create(input entities.VehicleRequest) (entities.Result, error) {
	if errs := s.validator.Validate(input, false); len(errs) > 0 {
		return entities.Result{Errors: errs}, nil
	}

	vehicle := db.Vehicle{
		Plate:       normalizePlate(input.Plate),
		VehicleType: normalizeVehicleType(input.VehicleType),
	}

	created, err := s.Repo.Create(vehicle)
	if err != nil {
		return entities.Result{}, fmt.Errorf("creating vehicle: %w", err)
	}

	metrics.RegistrationsTotal.Inc()
	return entities.Result{OK: true, ID: created.ID}, nil
}

func (s *ParkingService) All() ([]db.Vehicle, error) {
	return s.Repo.All()
}

func (s *ParkingService) Find(id int) (*db.Vehicle, error) {
	return s.Repo.Find(id)
}

// CheckIn stamps the arrival time. A second check-in is rejected, it
// never silently overwrites the recorded arrival.
func (s *ParkingService) CheckIn(id int) (entities.Result, error) {
	vehicle, err := s.Repo.Find(id)
	if err != nil {
		return entities.Result{}, fmt.Errorf("loading vehicle %d: %w", id, err)
	}
	if vehicle == nil {
		return entities.Result{Errors: []string{MsgVehicleNotFound}}, nil
	}
	if vehicle.HasCheckin() {
		return entities.Result{Errors: []string{MsgAlreadyCheckedIn}}, nil
	}

	updated := *vehicle
	updated.Checkin = s.now().Format(time.RFC3339)
	if err := s.Repo.Update(updated); err != nil {
		return entities.Result{}, fmt.Errorf("storing check-in for vehicle %d: %w", id, err)
	}

	metrics.CheckinsTotal.Inc()
	return entities.Result{OK: true}, nil
}

// CheckOut stamps the departure, computes the fee from the stored
// check-in and persists it. Requires a prior check-in and rejects a
// second check-out; a completed session stays read-only.
func (s *ParkingService) CheckOut(id int) (entities.Result, error) {
	vehicle, err := s.Repo.Find(id)
	if err != nil {
		return entities.Result{}, fmt.Errorf("loading vehicle %d: %w", id, err)
	}
	if vehicle == nil {
		return entities.Result{Errors: []string{MsgVehicleNotFound}}, nil
	}
	if !vehicle.HasCheckin() {
		return entities.Result{Errors: []string{MsgMissingCheckin}}, nil
	}
	if vehicle.HasCheckout() {
		return entities.Result{Errors: []string{MsgAlreadyCheckedOut}}, nil
	}

	checkout := s.now().Format(time.RFC3339)
	amount := s.calculator.Calculate(vehicle.VehicleType, vehicle.Checkin, checkout)

	updated := *vehicle
	updated.Checkout = checkout
	updated.Amount = amount
	if err := s.Repo.Update(updated); err != nil {
		return entities.Result{}, fmt.Errorf("storing check-out for vehicle %d: %w", id, err)
	}

	metrics.CheckoutsTotal.Inc()
	metrics.RevenueTotal.Add(amount)
	return entities.Result{OK: true, Amount: amount}, nil
}

// Update is the administrative correction path: it replaces the whole
// record, recomputes the fee from the supplied dates and deliberately
// skips the state-machine guards so the operator can fix mistakes.
func (s *ParkingService) Update(id int, input entities.VehicleRequest) (entities.Result, error) {
	existing, err := s.Repo.Find(id)
	if err != nil {
		return entities.Result{}, fmt.Errorf("loading vehicle %d: %w", id, err)
	}
	if existing == nil {
		return entities.Result{Errors: []string{MsgVehicleNotFound}}, nil
	}

	if errs := s.validator.Validate(input, true); len(errs) > 0 {
		return entities.Result{Errors: errs}, nil
	}

	vehicleType := normalizeVehicleType(input.VehicleType)
	amount := s.calculator.Calculate(vehicleType, input.Checkin, input.Checkout)

	updated := db.Vehicle{
		ID:          id,
		Plate:       normalizePlate(input.Plate),
		VehicleType: vehicleType,
		Amount:      amount,
		Checkin:     input.Checkin,
		Checkout:    input.Checkout,
	}
	if err := s.Repo.Update(updated); err != nil {
		return entities.Result{}, fmt.Errorf("updating vehicle %d: %w", id, err)
	}

	return entities.Result{OK: true}, nil
}

func (s *ParkingService) Delete(id int) (entities.Result, error) {
	existing, err := s.Repo.Find(id)
	if err != nil {
		return entities.Result{}, fmt.Errorf("loading vehicle %d: %w", id, err)
	}
	if existing == nil {
		return entities.Result{Errors: []string{MsgVehicleNotFound}}, nil
	}

	if err := s.Repo.Delete(id); err != nil {
		return entities.Result{}, fmt.Errorf("deleting vehicle %d: %w", id, err)
	}
	return entities.Result{OK: true}, nil
}

// now fixes the stamping timezone so stored timestamps stay consistent
// regardless of the server clock's zone.
func (s *ParkingService) now() time.Time {
	return time.Now().In(s.location)
}

func normalizePlate(plate string) string {
	return strings.ToUpper(strings.TrimSpace(plate))
}

func normalizeVehicleType(vehicleType string) string {
	return strings.ToLower(strings.TrimSpace(vehicleType))
}
