package entities

// VehicleRequest is the raw front-desk input for registering or
// correcting a vehicle. Timestamps are only required on update.
type VehicleRequest struct {
	Plate       string `json:"plate"`
	VehicleType string `json:"vehicle_type"`
	Checkin     string `json:"checkin,omitempty"`
	Checkout    string `json:"checkout,omitempty"`
}

type VehicleResponse struct {
	ID          int     `json:"id"`
	Plate       string  `json:"plate"`
	VehicleType string  `json:"vehicle_type"`
	BaseRate    float64 `json:"base_rate"`
	Amount      float64 `json:"amount"`
	Checkin     string  `json:"checkin,omitempty"`
	Checkout    string  `json:"checkout,omitempty"`
	Status      string  `json:"status"`
}

type RateResponse struct {
	VehicleType string  `json:"vehicle_type"`
	HourlyRate  float64 `json:"hourly_rate"`
}
