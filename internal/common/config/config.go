package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/influmatch/backend/internal/common/constants"
	commonerrors "github.com/influmatch/backend/internal/common/errors"
)

// AuthConfig is resolved once at startup. A missing DB_URL or
// ACCESS_TOKEN_SECRET aborts the process before any listener starts.
type AuthConfig struct {
	HTTPPort       string
	DatabaseURL    string
	DatabaseSchema string
	TokenSecret    string
	AccessTokenTTL time.Duration
	BcryptCost     int
	RequestTimeout time.Duration
}

func LoadAuthConfig() (AuthConfig, error) {
	tokenSecret, err := mustEnv("ACCESS_TOKEN_SECRET")
	if err != nil {
		return AuthConfig{}, err
	}

	if err := validateTokenSecret(tokenSecret); err != nil {
		return AuthConfig{}, err
	}

	databaseURL, err := mustEnv("DB_URL")
	if err != nil {
		return AuthConfig{}, err
	}

	return AuthConfig{
		HTTPPort:       getEnv("AUTH_HTTP_PORT", constants.DefaultAuthHTTPPort),
		DatabaseURL:    databaseURL,
		DatabaseSchema: getEnv("DB_NAME", constants.DefaultDatabaseSchema),
		TokenSecret:    tokenSecret,
		AccessTokenTTL: getDurationEnv("ACCESS_TOKEN_TTL", constants.DefaultAccessTokenTTL),
		BcryptCost:     getIntEnv("BCRYPT_COST", constants.DefaultBcryptCost),
		RequestTimeout: getDurationEnv("AUTH_REQUEST_TIMEOUT", constants.DefaultAuthRequestTimeout),
	}, nil
}

func validateTokenSecret(secret string) error {
	if len(secret) < constants.TokenSecretMinLength {
		return commonerrors.ErrInvalidTokenSecret.WithCause(
			fmt.Errorf("got %d bytes", len(secret)))
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func mustEnv(key string) (string, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return "", commonerrors.ErrMissingRequiredEnv.WithCause(fmt.Errorf("%s", key))
	}
	return v, nil
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

func getIntEnv(key string, fallback int) int {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return i
}
