package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	App      AppConfig
	AI       AIConfig
	Jobs     JobsConfig
	Resume   ResumeConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Storage  StorageConfig
	Events   EventsConfig
	Auth     AuthConfig
}

type AppConfig struct {
	AppName     string
	Environment string
	HTTPPort    string
	WSPort      string
	CORSOrigins []string
}

type AIConfig struct {
	APIKey  string
	Model   string
	Timeout time.Duration
}

// Enabled reports whether a provider key is configured. Without one the
// AI-backed features answer from fallback data only.
func (c AIConfig) Enabled() bool {
	return c.APIKey != ""
}

type JobsConfig struct {
	AppID        string
	AppKey       string
	Country      string
	BaseURL      string
	Timeout      time.Duration
	PageSize     int
	WarmQueries  string
	WarmSchedule string
}

func (c JobsConfig) Enabled() bool {
	return c.AppID != "" && c.AppKey != ""
}

type ResumeConfig struct {
	MaxBytes int64
}

type DatabaseConfig struct {
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string

	ConnectTimeout  time.Duration
	PoolMaxConns    int32
	PoolMinConns    int32
	MaxConnLifetime time.Duration
}

func (c DatabaseConfig) Enabled() bool {
	return c.DBHost != ""
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

type StorageConfig struct {
	Bucket    string
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
}

func (c StorageConfig) Enabled() bool {
	return c.Bucket != ""
}

type EventsConfig struct {
	AMQPURL  string
	Exchange string
}

type AuthConfig struct {
	JWTSecret string
}

const (
	defaultAIModel        = "gemini-2.5-flash"
	defaultJobsBaseURL    = "https://api.adzuna.com/v1/api/jobs"
	defaultWarmSchedule   = "@every 6h"
	defaultResumeMaxBytes = 5 << 20
)

var (
	errMissingRequiredEnv = errors.New("missing required environment variables")
	errInvalidEnv         = errors.New("invalid environment variables")
)

func Load() (Config, error) {
	cfg := Config{}

	var missing []string
	var invalid []string
	req := func(key string) string {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			missing = append(missing, key)
		}
		return v
	}
	opt := func(key string) string {
		return strings.TrimSpace(os.Getenv(key))
	}
	optDefault := func(key, def string) string {
		if v := opt(key); v != "" {
			return v
		}
		return def
	}
	optInt := func(key string, def int) int {
		raw := opt(key)
		if raw == "" {
			return def
		}
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			invalid = append(invalid, key)
			return def
		}
		return v
	}
	optDuration := func(key string, def time.Duration) time.Duration {
		raw := opt(key)
		if raw == "" {
			return def
		}
		d, err := time.ParseDuration(raw)
		if err != nil || d <= 0 {
			invalid = append(invalid, key)
			return def
		}
		return d
	}

	cfg.App = AppConfig{
		AppName:     req("APP_NAME"),
		Environment: req("APP_ENV"),
		HTTPPort:    req("HTTP_PORT"),
		WSPort:      opt("WS_PORT"),
		CORSOrigins: splitList(optDefault("CORS_ORIGINS", "*")),
	}

	cfg.AI = AIConfig{
		APIKey:  opt("AI_API_KEY"),
		Model:   optDefault("AI_MODEL", defaultAIModel),
		Timeout: optDuration("AI_TIMEOUT", 30*time.Second),
	}

	cfg.Jobs = JobsConfig{
		AppID:        opt("JOBS_API_APP_ID"),
		AppKey:       opt("JOBS_API_APP_KEY"),
		Country:      optDefault("JOBS_API_COUNTRY", "us"),
		BaseURL:      strings.TrimRight(optDefault("JOBS_API_BASE_URL", defaultJobsBaseURL), "/"),
		Timeout:      optDuration("JOBS_API_TIMEOUT", 10*time.Second),
		PageSize:     optInt("JOBS_PAGE_SIZE", 10),
		WarmQueries:  opt("JOBS_WARM_QUERIES"),
		WarmSchedule: optDefault("JOBS_WARM_SCHEDULE", defaultWarmSchedule),
	}

	cfg.Resume = ResumeConfig{
		MaxBytes: int64(optInt("RESUME_MAX_BYTES", defaultResumeMaxBytes)),
	}

	cfg.Database = DatabaseConfig{
		DBHost:          opt("DB_HOST"),
		DBPort:          optDefault("DB_PORT", "5432"),
		DBName:          opt("DB_NAME"),
		DBUser:          opt("DB_USER"),
		DBPassword:      opt("DB_PASSWORD"),
		DBSSLMode:       optDefault("DB_SSL_MODE", "disable"),
		ConnectTimeout:  optDuration("DB_CONNECT_TIMEOUT", 5*time.Second),
		PoolMaxConns:    int32(optInt("DB_POOL_MAX_CONNS", 10)),
		PoolMinConns:    int32(optInt("DB_POOL_MIN_CONNS", 0)),
		MaxConnLifetime: optDuration("DB_POOL_MAX_CONN_LIFETIME", time.Hour),
	}
	if cfg.Database.Enabled() {
		if cfg.Database.DBName == "" {
			missing = append(missing, "DB_NAME")
		}
		if cfg.Database.DBUser == "" {
			missing = append(missing, "DB_USER")
		}
	}

	cfg.Redis = RedisConfig{
		Addr:     opt("REDIS_ADDR"),
		Password: opt("REDIS_PASSWORD"),
		DB:       optInt("REDIS_DB", 0),
		TTL:      time.Duration(optInt("REDIS_TTL", 600)) * time.Second,
	}

	cfg.Storage = StorageConfig{
		Bucket:    opt("STORAGE_BUCKET"),
		Endpoint:  opt("STORAGE_ENDPOINT"),
		Region:    optDefault("STORAGE_REGION", "auto"),
		AccessKey: opt("STORAGE_ACCESS_KEY"),
		SecretKey: opt("STORAGE_SECRET_KEY"),
	}
	if cfg.Storage.Enabled() && (cfg.Storage.AccessKey == "" || cfg.Storage.SecretKey == "") {
		missing = append(missing, "STORAGE_ACCESS_KEY/STORAGE_SECRET_KEY")
	}

	cfg.Events = EventsConfig{
		AMQPURL:  opt("AMQP_URL"),
		Exchange: optDefault("AMQP_EXCHANGE", "resume_events"),
	}

	cfg.Auth = AuthConfig{
		JWTSecret: opt("AUTH_JWT_SECRET"),
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errInvalidEnv, strings.Join(invalid, ", "))
	}

	return cfg, nil
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}
