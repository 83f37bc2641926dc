package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/rafaelcosta/card-bin-api/api"
	"github.com/rafaelcosta/card-bin-api/config"
	"github.com/rafaelcosta/card-bin-api/databases"
	"github.com/rafaelcosta/card-bin-api/models"
)

// Token exported for testing purposes
type Token struct {
	DB      databases.TokenDatabase
	Auth    *api.TokenAuthority
	Metrics *api.Metrics
}

type tokenRequest struct {
	Email string `json:"email"`
}

// readTokenRequest authorizes the shared admin secret and decodes the email
// from the body. It writes the error response itself and returns false when
// the request must not proceed.
func (t Token) readTokenRequest(w http.ResponseWriter, r *http.Request) (string, bool) {
	w.Header().Set("Content-Type", "application/json")

	if !t.Auth.CheckAdminSecret(api.BearerToken(r)) {
		zap.S().Errorw("bad admin secret", "url", r.URL)
		w.WriteHeader(http.StatusForbidden)
		_ = json.NewEncoder(w).Encode(models.ErrorResponse{Error: "unauthorized"})
		return "", false
	}

	var req tokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return "", false
	}
	email := strings.TrimSpace(req.Email)
	if email == "" {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(models.ErrorResponse{Error: "email is required"})
		return "", false
	}
	return email, true
}

// CreateTokenHandler issues a signed token for an email and persists it.
// Re-issuing for an existing email overwrites the prior record.
func (t Token) CreateTokenHandler(w http.ResponseWriter, r *http.Request) {
	email, ok := t.readTokenRequest(w, r)
	if !ok {
		return
	}

	token, err := t.Auth.Issue(email)
	if err != nil {
		config.ErrorStatus("failed to sign token", http.StatusInternalServerError, w, err)
		return
	}

	t.DB.Set(email, token)
	t.Metrics.TokensIssued.Inc()
	zap.S().Infow("token issued", "email", email)

	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(models.TokenResponse{Token: token})
}

// DeleteTokenHandler removes the stored token for an email. Deleting an
// email with no token is still a success.
func (t Token) DeleteTokenHandler(w http.ResponseWriter, r *http.Request) {
	email, ok := t.readTokenRequest(w, r)
	if !ok {
		return
	}

	t.DB.Delete(email)
	t.Metrics.TokensRevoked.Inc()
	zap.S().Infow("token deleted", "email", email)

	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(models.MessageResponse{Message: "Token deleted successfully"})
}
