package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strings"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"github.com/xxxsen/common/logger"

	"github.com/xxxsen/edule/internal/model"
)

const (
	GatePublic  = "public"
	GateToken   = "token"
	GateStudent = "student"
	GateTutor   = "tutor"
)

const (
	defaultPort          = 5000
	defaultJWTTTLMinutes = 60
	defaultDatabase      = "edule"
	defaultServerAPI     = "1"
	noServerAPI          = "none"
)

type Config struct {
	Port               int              `json:"port" env:"PORT"`
	JWTSecret          string           `json:"jwt_secret" env:"ACCESS_TOKEN"`
	JWTTTLMinutes      int              `json:"jwt_ttl_minutes" env:"JWT_TTL_MINUTES"`
	CORSAllowedOrigins []string         `json:"cors_allowed_origins" env:"CORS_ALLOWED_ORIGINS" envSeparator:","`
	LogLevel           string           `json:"-" env:"LOG_LEVEL"`
	LogConfig          logger.LogConfig `json:"log_config"`
	Mongo              MongoConfig      `json:"mongo"`
	Routes             RoutesConfig     `json:"routes"`
}

type MongoConfig struct {
	URI      string `json:"uri" env:"MONGO_URI"`
	User     string `json:"user" env:"DB_USER"`
	Password string `json:"password" env:"DB_PASS"`
	Host     string `json:"host" env:"DB_HOST"`
	Database string `json:"database" env:"DB_NAME"`
	// ServerAPIVersion pins the stable API version; "none" leaves it unset.
	ServerAPIVersion string `json:"server_api_version" env:"DB_SERVER_API"`
	TimeoutSeconds   int    `json:"timeout_seconds" env:"DB_TIMEOUT_SECONDS"`
	EnsureIndexes    bool   `json:"ensure_indexes" env:"DB_ENSURE_INDEXES"`
}

// RoutesConfig decides which gate guards each route and which profile fields
// an update may touch.
type RoutesConfig struct {
	// Gates maps "METHOD /pattern" to one of public, token, student, tutor.
	// Routes not listed keep their default gate.
	Gates               map[string]string `json:"gates"`
	ProfileUpdateFields []string          `json:"profile_update_fields" env:"PROFILE_UPDATE_FIELDS" envSeparator:","`
}

// ConnectionURI returns the explicit URI, or builds an SRV URI from the
// user, password and cluster host.
func (c MongoConfig) ConnectionURI() string {
	if c.URI != "" {
		return c.URI
	}
	u := url.URL{
		Scheme:   "mongodb+srv",
		User:     url.UserPassword(c.User, c.Password),
		Host:     c.Host,
		Path:     "/",
		RawQuery: "retryWrites=true&w=majority",
	}
	return u.String()
}

func (c MongoConfig) UseServerAPI() bool {
	return c.ServerAPIVersion != noServerAPI
}

// LoadEnvFile loads KEY=VALUE pairs into the process environment. A missing
// file is not an error.
func LoadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load env file: %w", err)
	}
	return nil
}

// Load reads the optional JSON file at path, overlays environment variables
// and validates the result.
func Load(path string) (*Config, error) {
	var cfg Config
	if path != "" {
		file, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()
		if err := json.NewDecoder(file).Decode(&cfg); err != nil {
			return nil, fmt.Errorf("decode config: %w", err)
		}
	}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.applyDefaults(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (cfg *Config) applyDefaults() error {
	if cfg.JWTSecret == "" {
		return fmt.Errorf("jwt_secret is required")
	}
	if cfg.Mongo.URI == "" && cfg.Mongo.Host == "" {
		return fmt.Errorf("mongo.uri or mongo.host is required")
	}
	if cfg.Mongo.URI == "" && (cfg.Mongo.User == "" || cfg.Mongo.Password == "") {
		return fmt.Errorf("mongo.user and mongo.password are required with mongo.host")
	}
	if cfg.Port == 0 {
		cfg.Port = defaultPort
	}
	if cfg.JWTTTLMinutes <= 0 {
		cfg.JWTTTLMinutes = defaultJWTTTLMinutes
	}
	if cfg.Mongo.Database == "" {
		cfg.Mongo.Database = defaultDatabase
	}
	if cfg.Mongo.ServerAPIVersion == "" {
		cfg.Mongo.ServerAPIVersion = defaultServerAPI
	}
	if cfg.LogLevel != "" {
		cfg.LogConfig.Level = cfg.LogLevel
	}
	if cfg.LogConfig.Level == "" {
		cfg.LogConfig.Level = "info"
	}
	origins := cfg.CORSAllowedOrigins[:0]
	for _, origin := range cfg.CORSAllowedOrigins {
		if trimmed := strings.TrimSpace(origin); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	cfg.CORSAllowedOrigins = origins

	if len(cfg.Routes.ProfileUpdateFields) == 0 {
		cfg.Routes.ProfileUpdateFields = append([]string(nil), model.ProfileFields...)
	}
	for i, field := range cfg.Routes.ProfileUpdateFields {
		field = strings.TrimSpace(field)
		if !model.IsProfileField(field) {
			return fmt.Errorf("routes.profile_update_fields: %q is not an updatable profile field", field)
		}
		cfg.Routes.ProfileUpdateFields[i] = field
	}
	for route, gate := range cfg.Routes.Gates {
		if !IsGate(gate) {
			return fmt.Errorf("routes.gates[%q]: unknown gate %q", route, gate)
		}
	}
	return nil
}

func IsGate(gate string) bool {
	switch gate {
	case GatePublic, GateToken, GateStudent, GateTutor:
		return true
	}
	return false
}
