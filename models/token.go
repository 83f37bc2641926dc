package models

// TokenResponse is returned when a token is issued for an email
type TokenResponse struct {
	Token string `json:"token"`
}

// MessageResponse is a generic success message body
type MessageResponse struct {
	Message string `json:"message"`
}
