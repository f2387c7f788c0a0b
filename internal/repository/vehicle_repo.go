package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"parkdesk/internal/db"
)

type VehicleRepository struct {
	DB *sql.DB
}

func NewVehicleRepository(database *sql.DB) *VehicleRepository {
	return &VehicleRepository{DB: database}
}

// All returns every vehicle, most recently registered first.
func (r *VehicleRepository) All() ([]db.Vehicle, error) {
	query := `
		SELECT id, plate, vehicle_type, base_rate, amount, checkin, checkout
		FROM vehicles
		ORDER BY id DESC`

	rows, err := r.DB.Query(query)
	if err != nil {
		return nil, fmt.Errorf("error querying vehicles: %w", err)
	}
	defer rows.Close()

	var vehicles []db.Vehicle
	for rows.Next() {
		var v db.Vehicle
		if err := rows.Scan(&v.ID, &v.Plate, &v.VehicleType, &v.BaseRate, &v.Amount, &v.Checkin, &v.Checkout); err != nil {
			return nil, fmt.Errorf("error scanning vehicle row: %w", err)
		}
		vehicles = append(vehicles, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating vehicle rows: %w", err)
	}
	return vehicles, nil
}

// Find returns nil without an error when the id does not exist.
func (r *VehicleRepository) Find(id int) (*db.Vehicle, error) {
	var v db.Vehicle
	query := `
		SELECT id, plate, vehicle_type, base_rate, amount, checkin, checkout
		FROM vehicles WHERE id = $1`
	err := r.DB.QueryRow(query, id).Scan(&v.ID, &v.Plate, &v.VehicleType, &v.BaseRate, &v.Amount, &v.Checkin, &v.Checkout)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error querying vehicle %d: %w", id, err)
	}
	return &v, nil
}

// Create persists the vehicle and returns a copy carrying the id the
// database assigned.
func (r *VehicleRepository) Create(v db.Vehicle) (db.Vehicle, error) {
	query := `
		INSERT INTO vehicles (plate, vehicle_type, base_rate, amount, checkin, checkout)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	var id int
	err := r.DB.QueryRow(query, v.Plate, v.VehicleType, v.BaseRate, v.Amount, v.Checkin, v.Checkout).Scan(&id)
	if err != nil {
		return db.Vehicle{}, fmt.Errorf("error inserting vehicle: %w", err)
	}
	return v.WithID(id), nil
}

func (r *VehicleRepository) Update(v db.Vehicle) error {
	if v.ID == 0 {
		return errors.New("vehicle id is required for update")
	}
	query := `
		UPDATE vehicles
		SET plate = $1, vehicle_type = $2, base_rate = $3, amount = $4, checkin = $5, checkout = $6
		WHERE id = $7`
	if _, err := r.DB.Exec(query, v.Plate, v.VehicleType, v.BaseRate, v.Amount, v.Checkin, v.Checkout, v.ID); err != nil {
		return fmt.Errorf("error updating vehicle %d: %w", v.ID, err)
	}
	return nil
}

func (r *VehicleRepository) Delete(id int) error {
	if _, err := r.DB.Exec(`DELETE FROM vehicles WHERE id = $1`, id); err != nil {
		return fmt.Errorf("error deleting vehicle %d: %w", id, err)
	}
	return nil
}
