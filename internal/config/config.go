package config

import (
	"fmt"
	"log"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	defaultHTTPAddr         = ":8080"
	defaultAPIBaseURL       = "http://127.0.0.1:8000/"
	defaultAPITimeout       = "30s"
	defaultStorageURL       = "file:hotelindigo.db"
	defaultStorageNamespace = "default"
	defaultTableBlock       = "120m"
	defaultSalonBlock       = "360m"
	defaultCodeMinLength    = "6"
	defaultRoomTaxRate      = "0.16"
	defaultKafkaTopic       = "hotelindigo.events"
	defaultOTelStdout       = "false"
)

type Config struct {
	AppEnv           string
	HTTPAddr         string
	APIBaseURL       string
	APITimeout       time.Duration
	StorageURL       string
	StorageNamespace string
	TableBlock       time.Duration
	SalonBlock       time.Duration
	CodeMinLength    int
	RoomTaxRate      decimal.Decimal
	Location         *time.Location
	KafkaBroker      string
	KafkaTopic       string
	OTelStdout       bool
	// CORSOrigins are allowed in addition to the local dev servers.
	CORSOrigins []string
}

func Load() (*Config, error) {
	cfg := &Config{}
	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = strings.TrimSpace(os.Getenv("ENV"))
	}
	if appEnv == "" {
		appEnv = "dev"
	}
	cfg.AppEnv = strings.ToLower(appEnv)

	cfg.HTTPAddr = strings.TrimSpace(getEnv("HTTP_ADDR", defaultHTTPAddr))
	cfg.APIBaseURL = normalizeBaseURL(getEnv("API_BASE_URL", defaultAPIBaseURL))
	cfg.StorageURL = strings.TrimSpace(getEnv("STORAGE_URL", defaultStorageURL))
	cfg.StorageNamespace = strings.TrimSpace(getEnv("STORAGE_NAMESPACE", defaultStorageNamespace))
	cfg.KafkaBroker = strings.TrimSpace(os.Getenv("KAFKA_BROKER"))
	cfg.KafkaTopic = strings.TrimSpace(getEnv("KAFKA_TOPIC", defaultKafkaTopic))
	cfg.OTelStdout = parseBoolEnv("OTEL_STDOUT", defaultOTelStdout)
	cfg.CORSOrigins = parseListEnv("CORS_ALLOWED_ORIGINS")

	var err error
	cfg.APITimeout, err = parseDurationEnv("API_TIMEOUT", defaultAPITimeout)
	if err != nil {
		return nil, err
	}
	cfg.TableBlock, err = parseDurationEnv("TABLE_BLOCK", defaultTableBlock)
	if err != nil {
		return nil, err
	}
	cfg.SalonBlock, err = parseDurationEnv("SALON_BLOCK", defaultSalonBlock)
	if err != nil {
		return nil, err
	}

	raw := strings.TrimSpace(getEnv("VERIFY_CODE_MIN_LENGTH", defaultCodeMinLength))
	cfg.CodeMinLength, err = strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid VERIFY_CODE_MIN_LENGTH value %q: %w", raw, err)
	}

	raw = strings.TrimSpace(getEnv("ROOM_TAX_RATE", defaultRoomTaxRate))
	cfg.RoomTaxRate, err = decimal.NewFromString(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid ROOM_TAX_RATE value %q: %w", raw, err)
	}

	cfg.Location = time.Local
	if tz := strings.TrimSpace(os.Getenv("TIMEZONE")); tz != "" {
		cfg.Location, err = time.LoadLocation(tz)
		if err != nil {
			return nil, fmt.Errorf("invalid TIMEZONE value %q: %w", tz, err)
		}
	}

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	log.Printf("config: env=%s api=%s storage_namespace=%s table_block=%s salon_block=%s",
		cfg.AppEnv, cfg.APIBaseURL, cfg.StorageNamespace, cfg.TableBlock, cfg.SalonBlock)

	return cfg, nil
}

// namespaces end up in redis keys and scan patterns, so no separators or globs
var namespacePattern = regexp.MustCompile(`^[A-Za-z0-9._-]{1,64}$`)

func validateConfig(cfg *Config) error {
	if cfg.APITimeout <= 0 {
		return fmt.Errorf("API_TIMEOUT must be > 0")
	}
	if cfg.TableBlock <= 0 || cfg.TableBlock%time.Minute != 0 {
		return fmt.Errorf("TABLE_BLOCK must be a positive whole number of minutes")
	}
	if cfg.SalonBlock <= 0 || cfg.SalonBlock%time.Minute != 0 {
		return fmt.Errorf("SALON_BLOCK must be a positive whole number of minutes")
	}
	if cfg.CodeMinLength < 1 {
		return fmt.Errorf("VERIFY_CODE_MIN_LENGTH must be >= 1")
	}
	if cfg.RoomTaxRate.IsNegative() {
		return fmt.Errorf("ROOM_TAX_RATE must be >= 0")
	}
	if cfg.StorageURL == "" {
		return fmt.Errorf("STORAGE_URL must not be empty")
	}
	if !namespacePattern.MatchString(cfg.StorageNamespace) {
		return fmt.Errorf("STORAGE_NAMESPACE must be 1-64 letters, digits, '.', '_' or '-'")
	}
	if !strings.HasPrefix(cfg.APIBaseURL, "http://") && !strings.HasPrefix(cfg.APIBaseURL, "https://") {
		return fmt.Errorf("API_BASE_URL must be an http(s) URL")
	}

	if isProdLike(cfg.AppEnv) {
		if cfg.StorageURL == "memory" {
			return fmt.Errorf("in prod/release STORAGE_URL must be durable")
		}
		if !strings.HasPrefix(cfg.APIBaseURL, "https://") {
			return fmt.Errorf("in prod/release API_BASE_URL must use https")
		}
	}

	return nil
}

// normalizeBaseURL keeps the base at the domain root with a trailing slash so
// that request paths never produce /api/api/.
func normalizeBaseURL(raw string) string {
	u := strings.TrimSpace(raw)
	u = strings.TrimSuffix(u, "/")
	u = strings.TrimSuffix(u, "/api")
	return u + "/"
}

func isProdLike(env string) bool {
	env = strings.ToLower(strings.TrimSpace(env))
	return env == "prod" || env == "production" || env == "release"
}

func parseDurationEnv(name, fallback string) (time.Duration, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return d, nil
}

func parseBoolEnv(name, fallback string) bool {
	value := strings.ToLower(strings.TrimSpace(getEnv(name, fallback)))
	return value == "1" || value == "true" || value == "yes" || value == "on"
}

// parseListEnv reads a comma separated list, e.g.
// CORS_ALLOWED_ORIGINS=https://app.com,https://admin.app.com
func parseListEnv(name string) []string {
	var out []string
	for _, v := range strings.Split(os.Getenv(name), ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func getEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
