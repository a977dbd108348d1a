package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env  string `validate:"oneof=development production test"`
	Port int    `validate:"min=1,max=65535"`

	Mongo   MongoConfig
	Redis   RedisConfig
	Cache   CacheConfig
	CORS    CORSConfig
	Log     LogConfig
	Metrics MetricsConfig
	Records RecordsConfig
}

// MongoConfig locates the document store and the two record collections.
type MongoConfig struct {
	URI               string `validate:"required"`
	Database          string `validate:"required"`
	StudentCollection string `validate:"required"`
	TeacherCollection string `validate:"required,nefield=StudentCollection"`
	ConnectTimeout    time.Duration
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// CacheConfig toggles the list-all read-through cache.
type CacheConfig struct {
	Enabled bool
	TTL     time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string `validate:"oneof=json console"`
}

type MetricsConfig struct {
	Enabled bool
}

// RecordsConfig holds behaviour switches for the record endpoints.
type RecordsConfig struct {
	// CoerceUpdateParams converts identifier-valued update filter params to ObjectIDs.
	CoerceUpdateParams bool
}

// Load reads configuration from the environment and an optional .env file.
func Load() (*Config, error) {
	return LoadWith(viper.New())
}

// LoadWith reads configuration into the given viper instance, which may already
// carry bound command line flags.
func LoadWith(v *viper.Viper) (*Config, error) {
	_ = godotenv.Load()

	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	// An explicit config file that does not exist surfaces as a path error, not
	// as ConfigFileNotFoundError.
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")

	cfg.Mongo = MongoConfig{
		URI:               v.GetString("MONGO_URI"),
		Database:          v.GetString("MONGO_DATABASE"),
		StudentCollection: v.GetString("MONGO_STUDENT_COLLECTION"),
		TeacherCollection: v.GetString("MONGO_TEACHER_COLLECTION"),
		ConnectTimeout:    parseDuration(v.GetString("MONGO_CONNECT_TIMEOUT"), 10*time.Second),
	}

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.Cache = CacheConfig{
		Enabled: v.GetBool("CACHE_ENABLED"),
		TTL:     parseDuration(v.GetString("CACHE_TTL"), time.Minute),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Metrics = MetricsConfig{Enabled: v.GetBool("METRICS_ENABLED")}

	cfg.Records = RecordsConfig{CoerceUpdateParams: v.GetBool("RECORDS_COERCE_UPDATE_PARAMS")}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8000)

	v.SetDefault("MONGO_URI", "mongodb://localhost:27017")
	v.SetDefault("MONGO_DATABASE", "mi-attendance-database")
	v.SetDefault("MONGO_STUDENT_COLLECTION", "students")
	v.SetDefault("MONGO_TEACHER_COLLECTION", "teachers")
	v.SetDefault("MONGO_CONNECT_TIMEOUT", "10s")

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("CACHE_ENABLED", false)
	v.SetDefault("CACHE_TTL", "1m")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("METRICS_ENABLED", true)
	v.SetDefault("RECORDS_COERCE_UPDATE_PARAMS", true)
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
