package config

import (
	"fmt"
	"net/http"
	"os"
	"strconv"

	"go.uber.org/zap"
)

// DefaultMaxRequestsPerDay is the daily lookup ceiling applied per token
// when MAX_REQUESTS_PER_DAY is unset.
const DefaultMaxRequestsPerDay = 500

// DefaultBinlistURL is the public CSV dump of BIN prefixes fetched at startup.
const DefaultBinlistURL = "https://raw.githubusercontent.com/iannuttall/binlist-data/master/binlist-data.csv"

// Config holds the project config values
type Config struct {
	Port              string
	BaseUrl           string
	AdminSecret       string
	TokenFilePath     string
	BinlistURL        string
	MaxRequestsPerDay int
}

// New sets up all config related services
func New() *Config {

	//setup zap logger and replace default logger
	logger, err := setLogger(os.Getenv("APP_ENV"))
	if err != nil {
		logger = zap.NewExample()
	}
	defer logger.Sync()
	_ = zap.ReplaceGlobals(logger)

	maxPerDay := DefaultMaxRequestsPerDay
	if v := os.Getenv("MAX_REQUESTS_PER_DAY"); v != "" {
		if n, convErr := strconv.Atoi(v); convErr == nil && n > 0 {
			maxPerDay = n
		} else {
			zap.S().Warnw("ignoring invalid MAX_REQUESTS_PER_DAY", "value", v)
		}
	}

	tokenFile := os.Getenv("TOKEN_FILE_PATH")
	if tokenFile == "" {
		tokenFile = "tokens.json"
	}

	binlistURL := os.Getenv("BINLIST_URL")
	if binlistURL == "" {
		binlistURL = DefaultBinlistURL
	}

	return &Config{
		Port:              os.Getenv("PORT"),
		BaseUrl:           os.Getenv("BASE_URL"),
		AdminSecret:       os.Getenv("ADMIN_SECRET"),
		TokenFilePath:     tokenFile,
		BinlistURL:        binlistURL,
		MaxRequestsPerDay: maxPerDay,
	}

}

func setLogger(env string) (*zap.Logger, error) {
	switch env {
	case "production":
		return zap.NewProduction()
	case "development":
		return zap.NewDevelopment()
	default:
		return zap.NewExample(), nil
	}
}

// ErrorStatus is a useful function that will log, write http headers and body for a
// give message, status code and err
func ErrorStatus(message string, httpStatusCode int, w http.ResponseWriter, err error) {
	zap.S().With(err).Error(message)
	w.WriteHeader(httpStatusCode)
	w.Write([]byte(fmt.Sprintf(`{"error": "%s, %v"}`, message, err)))
}
