package config

import (
	"fmt"
	"time"
)

type Config struct {
	App         AppConfig         `mapstructure:"app"`
	Database    DatabaseConfig    `mapstructure:"database"`
	Extractor   ExtractorConfig   `mapstructure:"extractor"`
	Categorizer CategorizerConfig `mapstructure:"categorizer"`
	Model       ModelConfig       `mapstructure:"model"`
	API         APIConfig         `mapstructure:"api"`
	WebSocket   WebSocketConfig   `mapstructure:"websocket"`
	Prometheus  PrometheusConfig  `mapstructure:"prometheus"`
	Events      EventsConfig      `mapstructure:"events"`
}

type AppConfig struct {
	Name            string        `mapstructure:"name"`
	Mode            string        `mapstructure:"mode"`
	LogLevel        string        `mapstructure:"log_level"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type DatabaseConfig struct {
	Host             string        `mapstructure:"host"`
	Port             int           `mapstructure:"port"`
	Name             string        `mapstructure:"name"`
	User             string        `mapstructure:"user"`
	Password         string        `mapstructure:"password"`
	MaxConnections   int           `mapstructure:"max_connections"`
	SSLMode          string        `mapstructure:"ssl_mode"`
	ConnMaxLifetime  time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime  time.Duration `mapstructure:"conn_max_idle_time"`
	PingTimeout      time.Duration `mapstructure:"ping_timeout"`
	MigrationTimeout time.Duration `mapstructure:"migration_timeout"`
}

func (d DatabaseConfig) DSN() string {
	sslMode := d.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, sslMode,
	)
}

// ExtractorConfig tunes the feature-extraction pipeline.
type ExtractorConfig struct {
	LookbackWindow      time.Duration `mapstructure:"lookback_window"`
	SessionGapMinutes   float64       `mapstructure:"session_gap_minutes"`
	IdleThresholdMin    float64       `mapstructure:"idle_threshold_minutes"`
	FocusSessionMinutes float64       `mapstructure:"focus_session_minutes"`
	NightStartHour      int           `mapstructure:"night_start_hour"`
	NightEndHour        int           `mapstructure:"night_end_hour"`
}

// CategoryRule maps a category label to the keywords that select it.
// Rules are evaluated in order; the first match wins.
type CategoryRule struct {
	Category string   `mapstructure:"category"`
	Keywords []string `mapstructure:"keywords"`
}

// CategorizerConfig overrides the built-in keyword lists when set, so the
// app taxonomy can be updated without redeploying logic.
type CategorizerConfig struct {
	Rules []CategoryRule `mapstructure:"rules"`
}

type ModelConfig struct {
	Dir     string `mapstructure:"dir"` // optional override for embedded coefficients
	Version string `mapstructure:"version"`
}

type APIConfig struct {
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
	RateLimit    int           `mapstructure:"rate_limit"`
	JWTSecret    string        `mapstructure:"jwt_secret"`
	JWTDuration  time.Duration `mapstructure:"jwt_duration"`
	JWTIssuer    string        `mapstructure:"jwt_issuer"`
	DefaultLimit int           `mapstructure:"default_limit"`
	MaxLimit     int           `mapstructure:"max_limit"`
	CORS         CORSConfig    `mapstructure:"cors"`
}

type CORSConfig struct {
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
	AllowedMethods   []string `mapstructure:"allowed_methods"`
	AllowedHeaders   []string `mapstructure:"allowed_headers"`
	ExposedHeaders   []string `mapstructure:"exposed_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
}

type WebSocketConfig struct {
	MaxConnections  int           `mapstructure:"max_connections"`
	PingInterval    time.Duration `mapstructure:"ping_interval"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	PongTimeout     time.Duration `mapstructure:"pong_timeout"`
	MaxMessageSize  int64         `mapstructure:"max_message_size"`
	BroadcastBuffer int           `mapstructure:"broadcast_buffer"`
	ClientBuffer    int           `mapstructure:"client_buffer"`
}

type PrometheusConfig struct {
	Enabled bool `mapstructure:"enabled"`
	Port    int  `mapstructure:"port"`
}

type EventsConfig struct {
	BufferSize int `mapstructure:"buffer_size"`
}
