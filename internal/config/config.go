package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Cache     CacheConfig
	Log       LogConfig
	Mapbox    MapboxConfig
	Places    PlacesConfig
	Discovery DiscoveryConfig
	Worker    WorkerConfig
}

type ServerConfig struct {
	Host string
	Port int
	Env  string
}

type DatabaseConfig struct {
	// Enabled=false означает работу на встроенном справочнике без PostgreSQL
	Enabled         bool
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

type CacheConfig struct {
	GeocodeCacheTTL time.Duration
}

type LogConfig struct {
	Level string
}

type MapboxConfig struct {
	AccessToken    string
	BaseURL        string
	RequestTimeout int
}

type PlacesConfig struct {
	APIKey         string
	BaseURL        string
	RequestTimeout int
}

type DiscoveryConfig struct {
	DefaultRadiusMeters int
	DefaultResultLimit  int
	PerKeywordLimit     int
	MaxConcurrentSearch int
	SearchTimeout       time.Duration
	MatrixTimeout       time.Duration
	DedupDistanceMeters float64
	OverfetchMultiplier int
}

type WorkerConfig struct {
	Enabled           bool
	ConsumerGroup     string
	StreamReadTimeout time.Duration
	MaxRetries        int
}

func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: viper.GetString("API_HOST"),
			Port: viper.GetInt("API_PORT"),
			Env:  viper.GetString("API_ENV"),
		},
		Database: DatabaseConfig{
			Enabled:         viper.GetBool("DB_ENABLED"),
			Host:            viper.GetString("DB_HOST"),
			Port:            viper.GetInt("DB_PORT"),
			User:            viper.GetString("DB_USER"),
			Password:        viper.GetString("DB_PASSWORD"),
			DBName:          viper.GetString("DB_NAME"),
			SSLMode:         viper.GetString("DB_SSLMODE"),
			MaxConns:        viper.GetInt("DB_MAX_CONNS"),
			MaxIdleConns:    viper.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: time.Duration(viper.GetInt("DB_CONN_MAX_LIFETIME")) * time.Second,
			ConnMaxIdleTime: time.Duration(viper.GetInt("DB_CONN_MAX_IDLE_TIME")) * time.Second,
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetInt("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Cache: CacheConfig{
			GeocodeCacheTTL: time.Duration(viper.GetInt("GEOCODE_CACHE_TTL")) * time.Second,
		},
		Log: LogConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
		Mapbox: MapboxConfig{
			AccessToken:    viper.GetString("MAPBOX_ACCESS_TOKEN"),
			BaseURL:        viper.GetString("MAPBOX_BASE_URL"),
			RequestTimeout: viper.GetInt("MAPBOX_REQUEST_TIMEOUT"),
		},
		Places: PlacesConfig{
			APIKey:         viper.GetString("PLACES_API_KEY"),
			BaseURL:        viper.GetString("PLACES_BASE_URL"),
			RequestTimeout: viper.GetInt("PLACES_REQUEST_TIMEOUT"),
		},
		Discovery: DiscoveryConfig{
			DefaultRadiusMeters: viper.GetInt("DISCOVERY_DEFAULT_RADIUS"),
			DefaultResultLimit:  viper.GetInt("DISCOVERY_DEFAULT_LIMIT"),
			PerKeywordLimit:     viper.GetInt("DISCOVERY_PER_KEYWORD_LIMIT"),
			MaxConcurrentSearch: viper.GetInt("DISCOVERY_MAX_CONCURRENT_SEARCH"),
			SearchTimeout:       time.Duration(viper.GetInt("DISCOVERY_SEARCH_TIMEOUT")) * time.Millisecond,
			MatrixTimeout:       time.Duration(viper.GetInt("DISCOVERY_MATRIX_TIMEOUT")) * time.Millisecond,
			DedupDistanceMeters: viper.GetFloat64("DISCOVERY_DEDUP_DISTANCE"),
			OverfetchMultiplier: viper.GetInt("DISCOVERY_OVERFETCH_MULTIPLIER"),
		},
		Worker: WorkerConfig{
			Enabled:           viper.GetBool("WORKER_ENABLED"),
			ConsumerGroup:     viper.GetString("WORKER_CONSUMER_GROUP"),
			StreamReadTimeout: time.Duration(viper.GetInt("WORKER_STREAM_READ_TIMEOUT")) * time.Millisecond,
			MaxRetries:        viper.GetInt("WORKER_MAX_RETRIES"),
		},
	}

	// Set default values if not provided
	if cfg.Mapbox.BaseURL == "" {
		cfg.Mapbox.BaseURL = "https://api.mapbox.com"
	}
	if cfg.Mapbox.RequestTimeout == 0 {
		cfg.Mapbox.RequestTimeout = 10
	}
	if cfg.Places.BaseURL == "" {
		cfg.Places.BaseURL = "https://maps.googleapis.com/maps/api/place"
	}
	if cfg.Places.RequestTimeout == 0 {
		cfg.Places.RequestTimeout = 10
	}
	if cfg.Cache.GeocodeCacheTTL == 0 {
		cfg.Cache.GeocodeCacheTTL = 24 * time.Hour
	}
	if cfg.Discovery.DefaultRadiusMeters == 0 {
		cfg.Discovery.DefaultRadiusMeters = 800
	}
	if cfg.Discovery.DefaultResultLimit == 0 {
		cfg.Discovery.DefaultResultLimit = 3
	}
	if cfg.Discovery.PerKeywordLimit == 0 {
		cfg.Discovery.PerKeywordLimit = 5
	}
	if cfg.Discovery.MaxConcurrentSearch == 0 {
		cfg.Discovery.MaxConcurrentSearch = 8
	}
	if cfg.Discovery.SearchTimeout == 0 {
		cfg.Discovery.SearchTimeout = 3000 * time.Millisecond
	}
	if cfg.Discovery.MatrixTimeout == 0 {
		cfg.Discovery.MatrixTimeout = 5000 * time.Millisecond
	}
	if cfg.Discovery.DedupDistanceMeters == 0 {
		cfg.Discovery.DedupDistanceMeters = 100
	}
	if cfg.Discovery.OverfetchMultiplier == 0 {
		cfg.Discovery.OverfetchMultiplier = 3
	}
	if cfg.Worker.ConsumerGroup == "" {
		cfg.Worker.ConsumerGroup = "facility-discovery-workers"
	}
	if cfg.Worker.StreamReadTimeout == 0 {
		cfg.Worker.StreamReadTimeout = 5000 * time.Millisecond
	}
	if cfg.Worker.MaxRetries == 0 {
		cfg.Worker.MaxRetries = 3
	}

	return cfg, nil
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
