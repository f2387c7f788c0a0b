package pricing

import (
	"math"
	"time"
)

// Hourly rates per vehicle type, in currency units.
const (
	carHourlyRate        = 5.0
	motorcycleHourlyRate = 3.0
	truckHourlyRate      = 10.0
)

// Policy prices the parking session of one vehicle type. Calculate
// takes the check-in and check-out timestamps as RFC 3339 strings and
// returns the fee; a timestamp that does not parse yields a zero fee
// instead of an error, since malformed input is rejected upstream by
// the validator.
type Policy interface {
	Calculate(checkin, checkout string) float64
	HourlyRate() float64
}

type CarPolicy struct{}

func (CarPolicy) Calculate(checkin, checkout string) float64 {
	return chargeableHours(checkin, checkout) * carHourlyRate
}

func (CarPolicy) HourlyRate() float64 { return carHourlyRate }

type MotorcyclePolicy struct{}

func (MotorcyclePolicy) Calculate(checkin, checkout string) float64 {
	return chargeableHours(checkin, checkout) * motorcycleHourlyRate
}

func (MotorcyclePolicy) HourlyRate() float64 { return motorcycleHourlyRate }

type TruckPolicy struct{}

func (TruckPolicy) Calculate(checkin, checkout string) float64 {
	return chargeableHours(checkin, checkout) * truckHourlyRate
}

func (TruckPolicy) HourlyRate() float64 { return truckHourlyRate }

// chargeableHours rounds the elapsed time up to whole hours: any
// started hour bills as a full one, so 61 minutes is 2 hours and a
// single second is 1 hour.
func chargeableHours(checkin, checkout string) float64 {
	in, err := time.Parse(time.RFC3339, checkin)
	if err != nil {
		return 0
	}
	out, err := time.Parse(time.RFC3339, checkout)
	if err != nil {
		return 0
	}
	return math.Ceil(out.Sub(in).Hours())
}
