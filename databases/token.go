package databases

import (
	"encoding/json"
	"os"
	"sync"

	"go.uber.org/zap"
)

// TokenDatabase contains the methods to use with the token store
type TokenDatabase interface {
	Load() error
	Get(email string) (string, bool)
	Set(email, token string)
	Delete(email string)
	Count() int
}

type tokenDatabase struct {
	mu     sync.Mutex
	path   string
	tokens map[string]string
}

// NewTokenDatabase initializes a new token store backed by the JSON file at path
func NewTokenDatabase(path string) TokenDatabase {
	return &tokenDatabase{
		path:   path,
		tokens: map[string]string{},
	}
}

// Load reads the persisted email->token map. A missing file is not an
// error: the store starts empty and the file is created on the spot.
func (t *tokenDatabase) Load() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	data, err := os.ReadFile(t.path)
	if os.IsNotExist(err) {
		t.save()
		return nil
	}
	if err != nil {
		return err
	}
	return json.Unmarshal(data, &t.tokens)
}

func (t *tokenDatabase) Get(email string) (string, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	token, ok := t.tokens[email]
	return token, ok
}

// Set stores the current token for an email, overwriting any prior one,
// and rewrites the whole file. The in-memory map stays authoritative when
// the write fails.
func (t *tokenDatabase) Set(email, token string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.tokens[email] = token
	t.save()
}

// Delete removes the token for an email. Deleting an absent email is a no-op.
func (t *tokenDatabase) Delete(email string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.tokens, email)
	t.save()
}

func (t *tokenDatabase) Count() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.tokens)
}

// save rewrites the full persisted copy. Callers must hold t.mu.
func (t *tokenDatabase) save() {
	data, err := json.MarshalIndent(t.tokens, "", "  ")
	if err != nil {
		zap.S().Errorw("failed to marshal token store", "error", err)
		return
	}
	if err := os.WriteFile(t.path, data, 0644); err != nil {
		zap.S().Errorw("failed to persist token store",
			"path", t.path,
			"error", err)
	}
}
