package pricing

import (
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
)

// Calculator dispatches a billing request to the policy of the given
// vehicle type.
type Calculator struct {
	policies map[string]Policy
}

func NewCalculator() *Calculator {
	return &Calculator{policies: map[string]Policy{
		"car":        CarPolicy{},
		"motorcycle": MotorcyclePolicy{},
		"truck":      TruckPolicy{},
	}}
}

// Calculate returns the fee for the session, never negative. A vehicle
// type without a policy charges zero; the validator keeps such types
// out of storage, so reaching that branch means validation was
// bypassed and it is logged as unexpected.
func (c *Calculator) Calculate(vehicleType, checkin, checkout string) float64 {
	policy, ok := c.policies[strings.ToLower(vehicleType)]
	if !ok {
		logrus.Warnf("no rate policy for vehicle type %q, charging zero", vehicleType)
		return 0
	}
	amount := policy.Calculate(checkin, checkout)
	if amount < 0 {
		return 0
	}
	return amount
}

// HourlyRate exposes the configured rate for display. Unknown types
// report zero.
func (c *Calculator) HourlyRate(vehicleType string) float64 {
	policy, ok := c.policies[strings.ToLower(vehicleType)]
	if !ok {
		return 0
	}
	return policy.HourlyRate()
}

func (c *Calculator) SupportedTypes() []string {
	types := make([]string, 0, len(c.policies))
	for key := range c.policies {
		types = append(types, key)
	}
	sort.Strings(types)
	return types
}
