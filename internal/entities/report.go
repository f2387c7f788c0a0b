package entities

type TypeReport struct {
	Count   int     `json:"count"`
	Revenue float64 `json:"revenue"`
}

// Report aggregates every stored session. Vehicles still parked
// contribute zero revenue; vehicle types outside the known three are
// counted in the totals but get no bucket of their own.
type Report struct {
	TotalVehicles int                   `json:"total_vehicles"`
	TotalRevenue  float64               `json:"total_revenue"`
	ByType        map[string]TypeReport `json:"by_type"`
}
