package models

// ErrorResponse is the JSON error body written at the API boundary
type ErrorResponse struct {
	Error string `json:"error"`
}
