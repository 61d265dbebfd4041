// models/api_models.go
package models

import "time"

// RefreshResponse is the body returned by POST /countries/refresh.
type RefreshResponse struct {
	Message         string    `json:"message"`
	TotalCountries  int       `json:"total_countries"`
	Created         int       `json:"created"`
	Updated         int       `json:"updated"`
	LastRefreshedAt time.Time `json:"last_refreshed_at"`
}

// StatusResponse is the body returned by GET /status.
type StatusResponse struct {
	TotalCountries  int64      `json:"total_countries"`
	LastRefreshedAt *time.Time `json:"last_refreshed_at"`
}

// HealthResponse is the body returned by GET /health.
type HealthResponse struct {
	Name        string `json:"name"`
	Version     string `json:"version"`
	Description string `json:"description"`
}

// ErrorResponse is the shared error envelope: {"error": ..., "details": ...}.
// Details is omitted when empty.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
