package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Database    DatabaseConfig
	Redis       RedisConfig
	JWT         JWTConfig
	CORS        CORSConfig
	Log         LogConfig
	Performance PerformanceConfig
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type JWTConfig struct {
	Secret     string
	Expiration time.Duration
	Issuer     string
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// PerformanceConfig carries the scoring policy and period arithmetic settings.
// Weights and thresholds are deliberately configuration, not constants: the
// 50/40/10 preset ships as default ("balanced" policy).
type PerformanceConfig struct {
	Timezone string

	RealizationWeight float64
	QuickWeight       float64
	VolumeWeight      float64
	VolumeNorm        int

	// Business-hour ceilings for a resolution to count as quick, per tier.
	QuickEasyHours   float64
	QuickMediumHours float64
	QuickHardHours   float64

	// Wall-clock ceiling used by the ranking tier scores.
	RankingQuickThreshold time.Duration

	// Caching applies to the sub-category point table only; computed
	// metrics are always recomputed per request.
	PointTableCacheEnabled bool
	PointTableCacheTTL     time.Duration
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.Database = DatabaseConfig{
		Host:         v.GetString("DB_HOST"),
		Port:         v.GetInt("DB_PORT"),
		User:         v.GetString("DB_USER"),
		Password:     v.GetString("DB_PASSWORD"),
		Name:         v.GetString("DB_NAME"),
		SSLMode:      v.GetString("DB_SSL_MODE"),
		MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
	}

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.JWT = JWTConfig{
		Secret:     v.GetString("JWT_SECRET"),
		Expiration: parseDuration(v.GetString("JWT_EXPIRATION"), 24*time.Hour),
		Issuer:     v.GetString("JWT_ISSUER"),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Performance = PerformanceConfig{
		Timezone:               v.GetString("PERF_TIMEZONE"),
		RealizationWeight:      v.GetFloat64("PERF_REALIZATION_WEIGHT"),
		QuickWeight:            v.GetFloat64("PERF_QUICK_WEIGHT"),
		VolumeWeight:           v.GetFloat64("PERF_VOLUME_WEIGHT"),
		VolumeNorm:             v.GetInt("PERF_VOLUME_NORM"),
		QuickEasyHours:         v.GetFloat64("PERF_QUICK_EASY_HOURS"),
		QuickMediumHours:       v.GetFloat64("PERF_QUICK_MEDIUM_HOURS"),
		QuickHardHours:         v.GetFloat64("PERF_QUICK_HARD_HOURS"),
		RankingQuickThreshold:  parseDuration(v.GetString("PERF_RANKING_QUICK_THRESHOLD"), 24*time.Hour),
		PointTableCacheEnabled: v.GetBool("PERF_POINT_TABLE_CACHE"),
		PointTableCacheTTL:     parseDuration(v.GetString("PERF_POINT_TABLE_CACHE_TTL"), time.Hour),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "helpdesk")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("JWT_SECRET", "dev_secret")
	v.SetDefault("JWT_EXPIRATION", "24h")
	v.SetDefault("JWT_ISSUER", "perf-api")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("PERF_TIMEZONE", "UTC")
	v.SetDefault("PERF_REALIZATION_WEIGHT", 0.5)
	v.SetDefault("PERF_QUICK_WEIGHT", 0.4)
	v.SetDefault("PERF_VOLUME_WEIGHT", 0.1)
	v.SetDefault("PERF_VOLUME_NORM", 100)
	v.SetDefault("PERF_QUICK_EASY_HOURS", 6.0)
	v.SetDefault("PERF_QUICK_MEDIUM_HOURS", 18.0)
	v.SetDefault("PERF_QUICK_HARD_HOURS", 24.0)
	v.SetDefault("PERF_RANKING_QUICK_THRESHOLD", "24h")
	v.SetDefault("PERF_POINT_TABLE_CACHE", false)
	v.SetDefault("PERF_POINT_TABLE_CACHE_TTL", "1h")
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
