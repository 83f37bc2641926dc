package config

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	os.Setenv("ADMIN_SECRET", "tokenauth")
	os.Setenv("PORT", "3000")
	conf := New()

	assert.NotEmpty(t, conf)
	assert.Equal(t, "tokenauth", conf.AdminSecret)
	assert.Equal(t, DefaultMaxRequestsPerDay, conf.MaxRequestsPerDay)
	assert.Equal(t, "tokens.json", conf.TokenFilePath)
	assert.Equal(t, DefaultBinlistURL, conf.BinlistURL)
}

func TestNewMaxRequestsOverride(t *testing.T) {
	os.Setenv("MAX_REQUESTS_PER_DAY", "25")
	defer os.Unsetenv("MAX_REQUESTS_PER_DAY")
	conf := New()

	assert.Equal(t, 25, conf.MaxRequestsPerDay)
}

func TestNewMaxRequestsInvalidFallsBack(t *testing.T) {
	os.Setenv("MAX_REQUESTS_PER_DAY", "lots")
	defer os.Unsetenv("MAX_REQUESTS_PER_DAY")
	conf := New()

	assert.Equal(t, DefaultMaxRequestsPerDay, conf.MaxRequestsPerDay)
}

func TestErrorStatus(t *testing.T) {

	ErrorStatus("error it borked", http.StatusBadRequest, httptest.NewRecorder(), errors.New("bad request"))
	assert.True(t, true)
}

func TestSetLoggerSetsDevelopmentLogger(t *testing.T) {
	l, err := setLogger("development")
	assert.NoError(t, err)
	assert.True(t, l.Core().Enabled(1))
}

func TestSetLoggerSetsProductionLogger(t *testing.T) {
	l, err := setLogger("production")
	assert.NoError(t, err)
	assert.True(t, l.Core().Enabled(2))
}

func TestSetLoggerSetsLocalLogger(t *testing.T) {
	l, err := setLogger("local")
	assert.NoError(t, err)
	assert.True(t, l.Core().Enabled(0))
}
