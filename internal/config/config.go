package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Scheme selects how incoming init data is verified.
type Scheme string

const (
	SchemeStandard   Scheme = "standard"
	SchemeThirdParty Scheme = "third_party"
	SchemeSignature  Scheme = "signature"
)

type Config struct {
	AppPort string

	BotToken        string
	ThirdPartyToken string
	BotID           int64
	Scheme          Scheme
	TestEnvironment bool
	MaxAge          time.Duration

	JWTSecret string
	JWTTTL    time.Duration

	DatabaseURL string

	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	AuthRateLimit  int
	AuthRateWindow time.Duration

	AllowedOrigin string
	LogLevel      string
	LogJSON       bool
}

// Загрузка конфига из env (.env подхватывается, если есть)
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		AppPort:         getenv("APP_PORT", "8080"),
		BotToken:        os.Getenv("BOT_TOKEN"),
		ThirdPartyToken: os.Getenv("THIRD_PARTY_TOKEN"),
		Scheme:          Scheme(getenv("INIT_DATA_SCHEME", string(SchemeStandard))),
		TestEnvironment: os.Getenv("TELEGRAM_TEST_ENV") == "true",
		JWTSecret:       os.Getenv("JWT_SECRET"),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		RedisAddr:       os.Getenv("REDIS_ADDR"),
		RedisPassword:   os.Getenv("REDIS_PASSWORD"),
		AllowedOrigin:   os.Getenv("ALLOWED_ORIGIN"),
		LogLevel:        getenv("LOG_LEVEL", "info"),
		LogJSON:         os.Getenv("LOG_JSON") == "true",
	}

	var err error
	if cfg.MaxAge, err = seconds("INIT_DATA_MAX_AGE", 86400); err != nil {
		return nil, err
	}
	if cfg.JWTTTL, err = seconds("JWT_TTL", 86400); err != nil {
		return nil, err
	}
	if cfg.AuthRateWindow, err = seconds("AUTH_RATE_WINDOW_SECONDS", 60); err != nil {
		return nil, err
	}
	if cfg.AuthRateLimit, err = integer("AUTH_RATE_LIMIT", 5); err != nil {
		return nil, err
	}
	if cfg.RedisDB, err = integer("REDIS_DB", 0); err != nil {
		return nil, err
	}
	if v := os.Getenv("BOT_ID"); v != "" {
		if cfg.BotID, err = strconv.ParseInt(v, 10, 64); err != nil {
			return nil, fmt.Errorf("BOT_ID: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the credentials the selected scheme needs are present.
func (c *Config) Validate() error {
	var errs []error

	if c.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is not set"))
	}

	switch c.Scheme {
	case SchemeStandard:
		if c.BotToken == "" {
			errs = append(errs, errors.New("BOT_TOKEN is not set"))
		}
	case SchemeThirdParty:
		if c.BotToken == "" {
			errs = append(errs, errors.New("BOT_TOKEN is not set"))
		}
		if c.ThirdPartyToken == "" {
			errs = append(errs, errors.New("THIRD_PARTY_TOKEN is not set"))
		}
	case SchemeSignature:
		if c.BotID == 0 {
			errs = append(errs, errors.New("BOT_ID is not set"))
		}
	default:
		errs = append(errs, fmt.Errorf("INIT_DATA_SCHEME %q is not one of standard, third_party, signature", c.Scheme))
	}

	return errors.Join(errs...)
}

func getenv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func integer(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%s: expected a non-negative integer, got %q", key, v)
	}
	return n, nil
}

func seconds(key string, def int) (time.Duration, error) {
	n, err := integer(key, def)
	if err != nil {
		return 0, err
	}
	return time.Duration(n) * time.Second, nil
}
