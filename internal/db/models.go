package db

// Session status values. Never stored: always derived from which
// timestamps are present so the table cannot disagree with itself.
const (
	StatusAwaitingCheckin = "awaiting_checkin"
	StatusParked          = "parked"
	StatusCompleted       = "completed"
)

// Vehicle is one parking session. Checkin and Checkout hold RFC 3339
// timestamps; the empty string means the event has not happened yet.
type Vehicle struct {
	ID          int
	Plate       string
	VehicleType string
	BaseRate    float64
	Amount      float64
	Checkin     string
	Checkout    string
}

func (v Vehicle) HasCheckin() bool {
	return v.Checkin != ""
}

func (v Vehicle) HasCheckout() bool {
	return v.Checkout != ""
}

// Status derives the session state from timestamp presence.
func (v Vehicle) Status() string {
	switch {
	case v.HasCheckout():
		return StatusCompleted
	case v.HasCheckin():
		return StatusParked
	default:
		return StatusAwaitingCheckin
	}
}

// WithID returns a copy carrying the identity assigned by storage.
func (v Vehicle) WithID(id int) Vehicle {
	v.ID = id
	return v
}
