package databases_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rafaelcosta/card-bin-api/databases"
)

func TestTokenDatabase_LoadCreatesMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tokens.json")

	db := databases.NewTokenDatabase(path)
	err := db.Load()
	require.NoError(t, err)
	assert.Equal(t, 0, db.Count())

	_, err = os.Stat(path)
	assert.NoError(t, err, "load should create the file when it does not exist")
}

func TestTokenDatabase_SetPersistsAndReloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tokens.json")

	db := databases.NewTokenDatabase(path)
	require.NoError(t, db.Load())

	db.Set("user@example.com", "token-one")
	db.Set("other@example.com", "token-two")

	// a fresh store reading the same file sees both records
	reloaded := databases.NewTokenDatabase(path)
	require.NoError(t, reloaded.Load())

	token, ok := reloaded.Get("user@example.com")
	assert.True(t, ok)
	assert.Equal(t, "token-one", token)
	assert.Equal(t, 2, reloaded.Count())
}

func TestTokenDatabase_SetOverwritesPriorToken(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tokens.json")

	db := databases.NewTokenDatabase(path)
	require.NoError(t, db.Load())

	db.Set("user@example.com", "old")
	db.Set("user@example.com", "new")

	token, ok := db.Get("user@example.com")
	assert.True(t, ok)
	assert.Equal(t, "new", token)
	assert.Equal(t, 1, db.Count())
}

func TestTokenDatabase_DeleteIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tokens.json")

	db := databases.NewTokenDatabase(path)
	require.NoError(t, db.Load())

	db.Set("user@example.com", "token-one")
	db.Delete("user@example.com")
	db.Delete("user@example.com") // absent email, still a no-op

	_, ok := db.Get("user@example.com")
	assert.False(t, ok)
	assert.Equal(t, 0, db.Count())
}

func TestTokenDatabase_FileMirrorsMap(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tokens.json")

	db := databases.NewTokenDatabase(path)
	require.NoError(t, db.Load())
	db.Set("user@example.com", "token-one")

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var persisted map[string]string
	require.NoError(t, json.Unmarshal(data, &persisted))
	assert.Equal(t, map[string]string{"user@example.com": "token-one"}, persisted)
}

func TestTokenDatabase_LoadSurfacesCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tokens.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	db := databases.NewTokenDatabase(path)
	err := db.Load()
	assert.Error(t, err)
}
