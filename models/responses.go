package models

// LoginResponse is returned by a successful login.
type LoginResponse struct {
	User UserSummary `json:"user"`
	TokenPair
}

// MessageResponse carries a single human-readable confirmation.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the body of every failed request. Error is always safe
// to show to the client.
type ErrorResponse struct {
	Error string `json:"error"`
}

// HealthResponse is returned by GET /healthz.
type HealthResponse struct {
	Status string `json:"status"`
}
