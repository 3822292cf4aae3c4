package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server            ServerConfig
	Database          DatabaseConfig
	Redis             RedisConfig
	Cache             CacheConfig
	Log               LogConfig
	Routing           RoutingConfig
	Mapbox            MapboxConfig
	Google            GoogleConfig
	Worker            WorkerConfig
	Tracing           TracingConfig
	ReferenceDataPath string
}

type ServerConfig struct {
	Host string
	Port int
	Env  string
	// CORSOrigins is a comma separated allow list; empty allows any origin.
	CORSOrigins string
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxConns        int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// CacheConfig controls the route duration cache.
type CacheConfig struct {
	// Backend is the persistent store for route entries: "postgres" or "redis".
	Backend string
	// RouteTTL is the age after which an entry is stale and must be refreshed.
	RouteTTL time.Duration
	// MemoryEntries is the size of the in-process LRU in front of the backend.
	// Zero disables it.
	MemoryEntries int
}

type LogConfig struct {
	Level string
}

// RoutingConfig selects the routing provider per travel mode.
type RoutingConfig struct {
	DrivingProvider string
	TransitProvider string
	LookupTimeout   time.Duration
	RateLimitRPS    float64
	RateLimitBurst  int
}

type MapboxConfig struct {
	AccessToken    string
	BaseURL        string
	DrivingProfile string
	RequestTimeout int // seconds
}

type GoogleConfig struct {
	APIKey         string
	BaseURL        string
	RequestTimeout int // seconds
	MaxRetries     int
}

type WorkerConfig struct {
	Enabled           bool
	ConsumerGroup     string
	StreamReadTimeout time.Duration
	MaxRetries        int
	BatchSize         int
}

type TracingConfig struct {
	OTLPEndpoint string
	ServiceName  string
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// .env is optional, plain environment variables are enough
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: v.GetString("API_HOST"),
			Port: v.GetInt("API_PORT"),
			Env:  v.GetString("API_ENV"),

			CORSOrigins: v.GetString("CORS_ALLOWED_ORIGINS"),
		},
		Database: DatabaseConfig{
			Host:            v.GetString("DB_HOST"),
			Port:            v.GetInt("DB_PORT"),
			User:            v.GetString("DB_USER"),
			Password:        v.GetString("DB_PASSWORD"),
			DBName:          v.GetString("DB_NAME"),
			SSLMode:         v.GetString("DB_SSLMODE"),
			MaxConns:        v.GetInt("DB_MAX_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: time.Duration(v.GetInt("DB_CONN_MAX_LIFETIME")) * time.Second,
			ConnMaxIdleTime: time.Duration(v.GetInt("DB_CONN_MAX_IDLE_TIME")) * time.Second,
		},
		Redis: RedisConfig{
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetInt("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		Cache: CacheConfig{
			Backend:       strings.ToLower(v.GetString("ROUTE_CACHE_BACKEND")),
			RouteTTL:      time.Duration(v.GetInt("ROUTE_CACHE_TTL_HOURS")) * time.Hour,
			MemoryEntries: v.GetInt("ROUTE_CACHE_MEMORY_ENTRIES"),
		},
		Log: LogConfig{
			Level: v.GetString("LOG_LEVEL"),
		},
		Routing: RoutingConfig{
			DrivingProvider: strings.ToLower(v.GetString("ROUTING_DRIVING_PROVIDER")),
			TransitProvider: strings.ToLower(v.GetString("ROUTING_TRANSIT_PROVIDER")),
			LookupTimeout:   time.Duration(v.GetInt("ROUTING_LOOKUP_TIMEOUT_MS")) * time.Millisecond,
			RateLimitRPS:    v.GetFloat64("ROUTING_RATE_LIMIT_RPS"),
			RateLimitBurst:  v.GetInt("ROUTING_RATE_LIMIT_BURST"),
		},
		Mapbox: MapboxConfig{
			AccessToken:    v.GetString("MAPBOX_ACCESS_TOKEN"),
			BaseURL:        v.GetString("MAPBOX_BASE_URL"),
			DrivingProfile: v.GetString("MAPBOX_DRIVING_PROFILE"),
			RequestTimeout: v.GetInt("MAPBOX_REQUEST_TIMEOUT"),
		},
		Google: GoogleConfig{
			APIKey:         v.GetString("GOOGLE_MAPS_API_KEY"),
			BaseURL:        v.GetString("GOOGLE_MAPS_BASE_URL"),
			RequestTimeout: v.GetInt("GOOGLE_MAPS_REQUEST_TIMEOUT"),
			MaxRetries:     v.GetInt("GOOGLE_MAPS_MAX_RETRIES"),
		},
		Worker: WorkerConfig{
			Enabled:           v.GetBool("WORKER_ENABLED"),
			ConsumerGroup:     v.GetString("WORKER_CONSUMER_GROUP"),
			StreamReadTimeout: time.Duration(v.GetInt("WORKER_STREAM_READ_TIMEOUT")) * time.Millisecond,
			MaxRetries:        v.GetInt("WORKER_MAX_RETRIES"),
			BatchSize:         v.GetInt("WORKER_BATCH_SIZE"),
		},
		Tracing: TracingConfig{
			OTLPEndpoint: v.GetString("OTLP_ENDPOINT"),
			ServiceName:  v.GetString("OTEL_SERVICE_NAME"),
		},
		ReferenceDataPath: v.GetString("REFERENCE_DATA_PATH"),
	}

	cfg.applyDefaults()

	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Cache.Backend == "" {
		c.Cache.Backend = "postgres"
	}
	if c.Cache.RouteTTL == 0 {
		c.Cache.RouteTTL = 30 * 24 * time.Hour
	}
	if c.Routing.DrivingProvider == "" {
		c.Routing.DrivingProvider = "mapbox"
	}
	if c.Routing.TransitProvider == "" {
		c.Routing.TransitProvider = "google"
	}
	if c.Routing.LookupTimeout == 0 {
		c.Routing.LookupTimeout = 10 * time.Second
	}
	if c.Routing.RateLimitRPS == 0 {
		c.Routing.RateLimitRPS = 5
	}
	if c.Routing.RateLimitBurst == 0 {
		c.Routing.RateLimitBurst = 1
	}
	if c.Mapbox.BaseURL == "" {
		c.Mapbox.BaseURL = "https://api.mapbox.com"
	}
	if c.Mapbox.DrivingProfile == "" {
		c.Mapbox.DrivingProfile = "mapbox/driving"
	}
	if c.Mapbox.RequestTimeout == 0 {
		c.Mapbox.RequestTimeout = 30
	}
	if c.Google.BaseURL == "" {
		c.Google.BaseURL = "https://maps.googleapis.com"
	}
	if c.Google.RequestTimeout == 0 {
		c.Google.RequestTimeout = 30
	}
	if c.Google.MaxRetries == 0 {
		c.Google.MaxRetries = 3
	}
	if c.Worker.ConsumerGroup == "" {
		c.Worker.ConsumerGroup = "route-warm-workers"
	}
	if c.Worker.StreamReadTimeout == 0 {
		c.Worker.StreamReadTimeout = 5000 * time.Millisecond
	}
	if c.Worker.MaxRetries == 0 {
		c.Worker.MaxRetries = 3
	}
	if c.Worker.BatchSize == 0 {
		c.Worker.BatchSize = 20
	}
	if c.Tracing.ServiceName == "" {
		c.Tracing.ServiceName = "carbon-emission-calc"
	}
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
		c.Database.SSLMode,
	)
}

func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}
