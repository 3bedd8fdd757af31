// Package api defines the shared HTTP response envelopes used by all handlers.
package api

// ErrorResponse is the standard error payload.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse is the standard success payload for operations
// that return no resource body.
type MessageResponse struct {
	Message string `json:"message"`
}

// TokenResponse is returned on successful login.
type TokenResponse struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refresh_token"`
}

// CreatedResponse is returned when a new resource has been created.
type CreatedResponse struct {
	ID      uint   `json:"id"`
	Message string `json:"message"`
}
