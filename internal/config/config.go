package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/liigadoku/liigadoku-api/internal/platform/logging"
)

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv                     string
	ServiceName                string
	ServiceVersion             string
	HTTPAddr                   string
	DBURL                      string
	DBDisablePreparedBinary    bool
	SeedFile                   string
	CacheEnabled               bool
	CacheTTL                   time.Duration
	CORSAllowedOrigins         []string
	ReadTimeout                time.Duration
	WriteTimeout               time.Duration
	PprofEnabled               bool
	PprofAddr                  string
	UptraceEnabled             bool
	UptraceDSN                 string
	PyroscopeEnabled           bool
	PyroscopeServerAddress     string
	PyroscopeAppName           string
	PyroscopeAuthToken         string
	PyroscopeBasicAuthUser     string
	PyroscopeBasicAuthPassword string
	PyroscopeUploadRate        time.Duration
	LiigaBaseURL               string
	LiigaTimeout               time.Duration
	LiigaBatchInterval         time.Duration
	LiigaStartSeason           int
	LiigaEndSeason             int
	AnswerThreshold            int
	GenerationMaxAttempts      int
	SyncPoolSize               int
	LogLevel                   logging.Level
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	uptraceEnabled, err := strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	uptraceDSN := strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if uptraceEnabled && uptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}

	pprofEnabled, err := strconv.ParseBool(getEnv("PPROF_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PPROF_ENABLED: %w", err)
	}
	pprofAddr := strings.TrimSpace(getEnv("PPROF_ADDR", ":6060"))
	if pprofEnabled && pprofAddr == "" {
		return Config{}, fmt.Errorf("PPROF_ADDR is required when PPROF_ENABLED=true")
	}

	pyroscopeEnabled, err := strconv.ParseBool(getEnv("PYROSCOPE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_ENABLED: %w", err)
	}
	pyroscopeServerAddress := strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	if pyroscopeEnabled && pyroscopeServerAddress == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	pyroscopeUploadRate, err := time.ParseDuration(getEnv("PYROSCOPE_UPLOAD_RATE", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_UPLOAD_RATE: %w", err)
	}
	if pyroscopeUploadRate <= 0 {
		return Config{}, fmt.Errorf("PYROSCOPE_UPLOAD_RATE must be > 0")
	}

	cacheEnabled, err := strconv.ParseBool(getEnv("CACHE_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_ENABLED: %w", err)
	}
	cacheTTL, err := time.ParseDuration(getEnv("CACHE_TTL", "60s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_TTL: %w", err)
	}
	if cacheTTL <= 0 {
		return Config{}, fmt.Errorf("CACHE_TTL must be > 0")
	}

	readTimeout, err := time.ParseDuration(getEnv("APP_READ_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_READ_TIMEOUT: %w", err)
	}
	writeTimeout, err := time.ParseDuration(getEnv("APP_WRITE_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_WRITE_TIMEOUT: %w", err)
	}

	dbDisablePreparedBinary, err := strconv.ParseBool(getEnv("DB_DISABLE_PREPARED_BINARY_RESULT", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse DB_DISABLE_PREPARED_BINARY_RESULT: %w", err)
	}

	liigaTimeout, err := time.ParseDuration(getEnv("LIIGA_TIMEOUT", "30s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse LIIGA_TIMEOUT: %w", err)
	}
	if liigaTimeout <= 0 {
		return Config{}, fmt.Errorf("LIIGA_TIMEOUT must be > 0")
	}
	liigaBatchInterval, err := time.ParseDuration(getEnv("LIIGA_BATCH_INTERVAL", "1s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse LIIGA_BATCH_INTERVAL: %w", err)
	}
	if liigaBatchInterval <= 0 {
		return Config{}, fmt.Errorf("LIIGA_BATCH_INTERVAL must be > 0")
	}
	liigaStartSeason, err := getEnvAsInt("LIIGA_START_SEASON", 1975)
	if err != nil {
		return Config{}, fmt.Errorf("parse LIIGA_START_SEASON: %w", err)
	}
	liigaEndSeason, err := getEnvAsInt("LIIGA_END_SEASON", time.Now().Year())
	if err != nil {
		return Config{}, fmt.Errorf("parse LIIGA_END_SEASON: %w", err)
	}
	if liigaStartSeason > liigaEndSeason {
		return Config{}, fmt.Errorf("LIIGA_START_SEASON must be <= LIIGA_END_SEASON")
	}

	answerThreshold, err := getEnvAsInt("ANSWER_THRESHOLD", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse ANSWER_THRESHOLD: %w", err)
	}
	if answerThreshold < 1 {
		return Config{}, fmt.Errorf("ANSWER_THRESHOLD must be >= 1")
	}
	generationMaxAttempts, err := getEnvAsInt("GENERATION_MAX_ATTEMPTS", 100)
	if err != nil {
		return Config{}, fmt.Errorf("parse GENERATION_MAX_ATTEMPTS: %w", err)
	}
	if generationMaxAttempts < 1 {
		return Config{}, fmt.Errorf("GENERATION_MAX_ATTEMPTS must be >= 1")
	}
	syncPoolSize, err := getEnvAsInt("SYNC_POOL_SIZE", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse SYNC_POOL_SIZE: %w", err)
	}
	if syncPoolSize < 1 {
		return Config{}, fmt.Errorf("SYNC_POOL_SIZE must be >= 1")
	}

	cfg := Config{
		AppEnv:                  appEnv,
		ServiceName:             getEnv("APP_SERVICE_NAME", "liigadoku-api"),
		ServiceVersion:          getEnv("APP_SERVICE_VERSION", "dev"),
		HTTPAddr:                getEnv("APP_HTTP_ADDR", ":8080"),
		DBURL:                   strings.TrimSpace(getEnv("DB_URL", "")),
		DBDisablePreparedBinary: dbDisablePreparedBinary,
		SeedFile:                strings.TrimSpace(getEnv("SEED_FILE", "")),
		CacheEnabled:            cacheEnabled,
		CacheTTL:                cacheTTL,
		CORSAllowedOrigins:      splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		ReadTimeout:             readTimeout,
		WriteTimeout:            writeTimeout,
		PprofEnabled:            pprofEnabled,
		PprofAddr:               pprofAddr,
		UptraceEnabled:          uptraceEnabled,
		UptraceDSN:              uptraceDSN,
		PyroscopeEnabled:        pyroscopeEnabled,
		PyroscopeServerAddress:  pyroscopeServerAddress,
		PyroscopeAuthToken:      strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", "")),
		PyroscopeBasicAuthUser:  strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_USER", "")),
		PyroscopeBasicAuthPassword: strings.TrimSpace(
			getEnv("PYROSCOPE_BASIC_AUTH_PASSWORD", ""),
		),
		PyroscopeUploadRate:   pyroscopeUploadRate,
		LiigaBaseURL:          strings.TrimSpace(getEnv("LIIGA_BASE_URL", "https://liiga.fi/api/v1")),
		LiigaTimeout:          liigaTimeout,
		LiigaBatchInterval:    liigaBatchInterval,
		LiigaStartSeason:      liigaStartSeason,
		LiigaEndSeason:        liigaEndSeason,
		AnswerThreshold:       answerThreshold,
		GenerationMaxAttempts: generationMaxAttempts,
		SyncPoolSize:          syncPoolSize,
		LogLevel:              parseLogLevel(getEnv("APP_LOG_LEVEL", "info")),
	}
	cfg.PyroscopeAppName = strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName))
	if cfg.PyroscopeEnabled && cfg.PyroscopeAppName == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_APP_NAME cannot be empty when PYROSCOPE_ENABLED=true")
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		return Config{}, fmt.Errorf("CORS_ALLOWED_ORIGINS cannot be empty")
	}

	return cfg, nil
}

func parseLogLevel(v string) logging.Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug":
		return logging.LevelDebug
	case "warn", "warning":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}

	return out
}
