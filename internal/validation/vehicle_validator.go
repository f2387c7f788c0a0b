package validation

import (
	"regexp"
	"strings"
	"time"

	"parkdesk/internal/entities"
)

// Plate grammars, matched after trimming, uppercasing and stripping
// hyphens: the legacy Brazilian format (LLLNNNN) and the Mercosul
// format (LLLNLNN).
var (
	legacyPlate   = regexp.MustCompile(`^[A-Z]{3}[0-9]{4}$`)
	mercosulPlate = regexp.MustCompile(`^[A-Z]{3}[0-9][A-Z][0-9]{2}$`)
)

var allowedTypes = map[string]bool{
	"car":        true,
	"motorcycle": true,
	"truck":      true,
}

// Accepted timestamp layouts: RFC 3339 first, then the zoneless
// datetime-local value HTML forms submit.
const localDateTimeLayout = "2006-01-02T15:04"

// VehicleValidator is the single gate for malformed front-desk input.
// Validate accumulates every failure instead of stopping at the first.
type VehicleValidator struct{}

func NewVehicleValidator() *VehicleValidator {
	return &VehicleValidator{}
}

func (v *VehicleValidator) Validate(input entities.VehicleRequest, requireDates bool) []string {
	var errs []string

	plate := strings.ToUpper(strings.TrimSpace(input.Plate))
	bare := strings.ReplaceAll(plate, "-", "")
	if plate == "" || !(legacyPlate.MatchString(bare) || mercosulPlate.MatchString(bare)) {
		errs = append(errs, "Invalid plate. Use the LLLNLNN (Mercosul) or LLLNNNN (legacy) format.")
	}

	vehicleType := strings.ToLower(strings.TrimSpace(input.VehicleType))
	if !allowedTypes[vehicleType] {
		errs = append(errs, "Invalid vehicle type.")
	}

	if requireDates {
		checkin, errIn := ParseTimestamp(input.Checkin)
		if errIn != nil {
			errs = append(errs, "Invalid check-in date/time (use ISO 8601 or the datetime-local format).")
		}
		checkout, errOut := ParseTimestamp(input.Checkout)
		if errOut != nil {
			errs = append(errs, "Invalid check-out date/time (use ISO 8601 or the datetime-local format).")
		}
		if errIn == nil && errOut == nil && !checkout.After(checkin) {
			errs = append(errs, "Check-out date/time must be after the check-in date/time.")
		}
	}

	return errs
}

// ParseTimestamp accepts an offset-aware RFC 3339 timestamp, falling
// back to the local datetime layout without an offset.
func ParseTimestamp(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse(localDateTimeLayout, value)
}
