package entities

// Result is the outcome of a mutating parking operation. Callers must
// branch on OK before trusting ID or Amount; on failure Errors carries
// one or more human-readable messages.
type Result struct {
	OK     bool     `json:"ok"`
	ID     int      `json:"id,omitempty"`
	Amount float64  `json:"amount,omitempty"`
	Errors []string `json:"errors,omitempty"`
}
