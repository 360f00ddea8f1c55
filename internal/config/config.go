package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/spf13/viper"
)

const defaultDatasetURL = "https://data.transportation.gov/resource/ugux-y9xm.json?$limit=200000"

type Config struct {
	Server   ServerConfig
	Redis    RedisConfig
	Dataset  DatasetConfig
	Milepost MilepostConfig
	Session  SessionConfig
	Log      LogConfig
	Worker   WorkerConfig
}

type ServerConfig struct {
	Host        string
	Port        int
	Env         string
	CORSOrigins string
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Password string
	DB       int
}

// DatasetConfig - upstream crossing inventory and its caches
type DatasetConfig struct {
	URL            string
	RequestTimeout time.Duration
	// CacheTTL is how long the raw payload stays in Redis. Zero disables the Redis layer.
	CacheTTL time.Duration
	// MemoryTTL is how long the in-process catalog serves a snapshot. Zero means every refetch hits the repository.
	MemoryTTL time.Duration
}

// MilepostConfig holds the default tunables of the rail line pipeline.
type MilepostConfig struct {
	MaxNearbyPoints        int
	MaxDistanceMiles       float64
	MilepostGapThreshold   float64
	SegmentGapThreshold    float64
	SpatialProximityMeters float64
	MaxPointsPerLine       int
	RefetchDistanceMeters  float64
	KeepUnprojectedLines   bool
}

type SessionConfig struct {
	CacheSize int
	TTL       time.Duration
}

type LogConfig struct {
	Level string
}

type WorkerConfig struct {
	Enabled         bool
	RefreshInterval time.Duration
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("API_HOST", "0.0.0.0")
	v.SetDefault("API_PORT", 8080)
	v.SetDefault("API_ENV", "development")
	v.SetDefault("API_CORS_ORIGINS", "*")

	v.SetDefault("LOG_LEVEL", "info")

	v.SetDefault("REDIS_ENABLED", false)
	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("DATASET_URL", defaultDatasetURL)
	v.SetDefault("DATASET_REQUEST_TIMEOUT", 60) // seconds
	v.SetDefault("DATASET_CACHE_TTL", 3600)     // seconds
	v.SetDefault("DATASET_MEMORY_TTL", 600)     // seconds

	v.SetDefault("MILEPOST_MAX_NEARBY_POINTS", 1000)
	v.SetDefault("MILEPOST_MAX_DISTANCE_MILES", 10.0)
	v.SetDefault("MILEPOST_GAP_THRESHOLD", 1.0)
	v.SetDefault("MILEPOST_SEGMENT_GAP_THRESHOLD", 2.0)
	v.SetDefault("MILEPOST_SPATIAL_PROXIMITY_METERS", 1609.34*1.4)
	v.SetDefault("MILEPOST_MAX_POINTS_PER_LINE", 2)
	v.SetDefault("MILEPOST_REFETCH_DISTANCE_METERS", 8000.0)
	v.SetDefault("MILEPOST_KEEP_UNPROJECTED_LINES", false)

	v.SetDefault("SESSION_CACHE_SIZE", 10000)
	v.SetDefault("SESSION_TTL", 3600) // seconds

	v.SetDefault("WORKER_ENABLED", false)
	v.SetDefault("WORKER_REFRESH_INTERVAL", 900) // seconds
}

// Load reads .env (if present) and the environment.
func Load() (*Config, error) {
	return load(".env")
}

func load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetConfigFile(path)
	v.SetConfigType("env")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Host:        v.GetString("API_HOST"),
			Port:        v.GetInt("API_PORT"),
			Env:         v.GetString("API_ENV"),
			CORSOrigins: v.GetString("API_CORS_ORIGINS"),
		},
		Redis: RedisConfig{
			Enabled:  v.GetBool("REDIS_ENABLED"),
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetInt("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		Dataset: DatasetConfig{
			URL:            v.GetString("DATASET_URL"),
			RequestTimeout: time.Duration(v.GetInt("DATASET_REQUEST_TIMEOUT")) * time.Second,
			CacheTTL:       time.Duration(v.GetInt("DATASET_CACHE_TTL")) * time.Second,
			MemoryTTL:      time.Duration(v.GetInt("DATASET_MEMORY_TTL")) * time.Second,
		},
		Milepost: MilepostConfig{
			MaxNearbyPoints:        v.GetInt("MILEPOST_MAX_NEARBY_POINTS"),
			MaxDistanceMiles:       v.GetFloat64("MILEPOST_MAX_DISTANCE_MILES"),
			MilepostGapThreshold:   v.GetFloat64("MILEPOST_GAP_THRESHOLD"),
			SegmentGapThreshold:    v.GetFloat64("MILEPOST_SEGMENT_GAP_THRESHOLD"),
			SpatialProximityMeters: v.GetFloat64("MILEPOST_SPATIAL_PROXIMITY_METERS"),
			MaxPointsPerLine:       v.GetInt("MILEPOST_MAX_POINTS_PER_LINE"),
			RefetchDistanceMeters:  v.GetFloat64("MILEPOST_REFETCH_DISTANCE_METERS"),
			KeepUnprojectedLines:   v.GetBool("MILEPOST_KEEP_UNPROJECTED_LINES"),
		},
		Session: SessionConfig{
			CacheSize: v.GetInt("SESSION_CACHE_SIZE"),
			TTL:       time.Duration(v.GetInt("SESSION_TTL")) * time.Second,
		},
		Log: LogConfig{
			Level: v.GetString("LOG_LEVEL"),
		},
		Worker: WorkerConfig{
			Enabled:         v.GetBool("WORKER_ENABLED"),
			RefreshInterval: time.Duration(v.GetInt("WORKER_REFRESH_INTERVAL")) * time.Second,
		},
	}

	if cfg.Milepost.MaxPointsPerLine < 2 {
		cfg.Milepost.MaxPointsPerLine = 2
	}
	if cfg.Session.CacheSize <= 0 {
		cfg.Session.CacheSize = 10000
	}
	if cfg.Worker.RefreshInterval <= 0 {
		cfg.Worker.RefreshInterval = 15 * time.Minute
	}

	return cfg, nil
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}
