package types

// Health statuses reported by the health endpoint.
const (
	HealthStatusUp   = "up"
	HealthStatusDown = "down"
)

// HealthComponent describes one dependency's health.
type HealthComponent struct {
	Status  string `json:"status"`
	Details string `json:"details,omitempty"`
}

// HealthCheck is the health endpoint payload. OK stays true as long as the
// service can answer; Status reflects dependency health.
type HealthCheck struct {
	OK         bool                       `json:"ok"`
	Status     string                     `json:"status"`
	Components map[string]HealthComponent `json:"components,omitempty"`
	Version    string                     `json:"version,omitempty"`
	Timestamp  string                     `json:"timestamp"`
}
