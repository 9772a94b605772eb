package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// FromEnv reads configuration from environment variables. Unset variables leave fields
// empty so the result can be layered with MergeWithDefaults.
//
//	DATABASE_URL, REDIS_URL, OFFER_OUTPUT_DIR, OFFER_FORMAT, OFFER_TEMPLATE, OFFER_CURRENCY,
//	OFFER_MAX_CONCURRENCY, OFFER_PRINT_TIMEOUT, PORT
func FromEnv() (*Config, error) {
	cfg := &Config{
		DatabaseURL: strings.TrimSpace(os.Getenv("DATABASE_URL")),
		RedisURL:    strings.TrimSpace(os.Getenv("REDIS_URL")),
		OutputDir:   strings.TrimSpace(os.Getenv("OFFER_OUTPUT_DIR")),
		Format:      strings.ToLower(strings.TrimSpace(os.Getenv("OFFER_FORMAT"))),
		Template:    strings.TrimSpace(os.Getenv("OFFER_TEMPLATE")),
		Currency:    strings.TrimSpace(os.Getenv("OFFER_CURRENCY")),
	}

	ints := []struct {
		name string
		dst  *int
	}{
		{"OFFER_MAX_CONCURRENCY", &cfg.MaxConcurrency},
		{"OFFER_PRINT_TIMEOUT", &cfg.PrintTimeoutSeconds},
		{"PORT", &cfg.Port},
	}
	for _, v := range ints {
		raw := strings.TrimSpace(os.Getenv(v.name))
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %v", v.name, err)
		}
		*v.dst = n
	}

	return cfg, nil
}

// Resolve layers a config file (optional), the environment and the defaults, in that order
// of precedence, and validates the result
func Resolve(path string) (Config, error) {
	file := &Config{}
	if path != "" {
		loaded, err := LoadConfig(path)
		if err != nil {
			return Config{}, err
		}
		file = loaded
	}

	env, err := FromEnv()
	if err != nil {
		return Config{}, err
	}

	merged := file.MergeWithDefaults(env.MergeWithDefaults(Defaults()))
	if err := merged.Validate(); err != nil {
		return Config{}, err
	}
	return merged, nil
}
