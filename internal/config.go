package internal

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	Server        ServerConfig        `mapstructure:"http_server" envPrefix:"HTTP_"`
	Database      DatabaseConfig      `mapstructure:"database" envPrefix:"DB_"`
	Security      SecurityConfig      `mapstructure:"security" envPrefix:"SECURITY_"`
	Observability ObservabilityConfig `mapstructure:"observability"`
	Seed          SeedConfig          `mapstructure:"seed" envPrefix:"SEED_"`
}

type ServerConfig struct {
	Port              int           `mapstructure:"port" env:"PORT" envDefault:"8080" validate:"min=1,max=65535"`
	BaseURL           string        `mapstructure:"base_url" env:"BASE_URL"`
	AllowedOrigins    string        `mapstructure:"allowed_origins" env:"ALLOWED_ORIGINS"`
	OpenAPIPath       string        `mapstructure:"openapi_path" env:"OPENAPI_PATH" envDefault:"./api/openapi.yml"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout" env:"READ_HEADER_TIMEOUT" envDefault:"5s"`
	ReadTimeout       time.Duration `mapstructure:"read_timeout" env:"READ_TIMEOUT" envDefault:"15s"`
	IdleTimeout       time.Duration `mapstructure:"idle_timeout" env:"IDLE_TIMEOUT" envDefault:"60s"`
	WriteTimeout      time.Duration `mapstructure:"write_timeout" env:"WRITE_TIMEOUT" envDefault:"30s"`
}

type DatabaseConfig struct {
	MaxOpenConns    int           `mapstructure:"max_open_conns" env:"MAX_OPEN_CONNS" envDefault:"10" validate:"required,min=1"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns" env:"MAX_IDLE_CONNS" envDefault:"5" validate:"required,min=1"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime" env:"CONN_MAX_LIFETIME" envDefault:"30m" validate:"required,min=1m"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time" env:"CONN_MAX_IDLE_TIME" envDefault:"5m" validate:"required,min=1m"`
	Source          string        `mapstructure:"source" env:"SOURCE" validate:"required"`
}

type SecurityConfig struct {
	TokenSecret          string        `mapstructure:"token_secret" env:"TOKEN_SECRET" validate:"omitempty,min=32"`
	OperatorPasswordHash string        `mapstructure:"operator_password_hash" env:"OPERATOR_PASSWORD_HASH"`
	AccessTokenDuration  time.Duration `mapstructure:"access_token_duration" env:"ACCESS_TOKEN_DURATION" envDefault:"15m" validate:"required,min=1m,max=24h"`
}

type ObservabilityConfig struct {
	Metrics MetricsConfig `mapstructure:"metrics" envPrefix:"METRICS_"`
	Logging LoggingConfig `mapstructure:"logging" envPrefix:"LOG_"`
}

type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled" env:"ENABLED" envDefault:"false"`
	Path    string `mapstructure:"path" env:"PATH" envDefault:"/metrics" validate:"required_if=Enabled true"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level" env:"LEVEL" envDefault:"info" validate:"required,oneof=debug info warn error"`
	Format string `mapstructure:"format" env:"FORMAT" envDefault:"text" validate:"required,oneof=json text"`
}

// SeedConfig holds the defaults for the seed command; flags override them.
type SeedConfig struct {
	Employees   int   `mapstructure:"employees" env:"EMPLOYEES" envDefault:"60000" validate:"min=1"`
	Departments int   `mapstructure:"departments" env:"DEPARTMENTS" envDefault:"25" validate:"min=1"`
	Levels      int   `mapstructure:"levels" env:"LEVELS" envDefault:"5" validate:"min=1"`
	Roles       int   `mapstructure:"roles" env:"ROLES" envDefault:"10" validate:"min=1"`
	Seed        int64 `mapstructure:"seed" env:"SEED" envDefault:"42"`
	BatchSize   int   `mapstructure:"batch_size" env:"BATCH_SIZE" envDefault:"5000" validate:"min=1"`
}

var configValidator = validator.New()

// LoadConfigFromEnv reads the configuration from the process environment,
// after merging any .env files that exist in the working directory.
func LoadConfigFromEnv(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, file := range envFiles {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", file, err)
		}
	}

	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: "APP_"}); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}

// ----------------- VALIDATION -----------------

func (c *Config) Validate() error {
	var errs []string

	if err := configValidator.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				errs = append(errs, fmt.Sprintf("%s failed on %q", fe.Namespace(), fe.Tag()))
			}
		} else {
			errs = append(errs, err.Error())
		}
	}

	if err := c.Server.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("server config: %v", err))
	}

	if err := c.Database.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("database config: %v", err))
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}

	return nil
}

func (c *ServerConfig) Validate() error {
	if c.AllowedOrigins != "" {
		origins := strings.Split(c.AllowedOrigins, ",")
		for _, origin := range origins {
			origin = strings.TrimSpace(origin)
			if origin == "*" {
				continue
			}
			if _, err := url.Parse(origin); err != nil {
				return fmt.Errorf("invalid allowed origin %s: %w", origin, err)
			}
		}
	}
	if c.ReadTimeout < c.ReadHeaderTimeout {
		return errors.New("read_timeout must be >= read_header_timeout")
	}
	return nil
}

func (c *DatabaseConfig) Validate() error {
	if c.MaxIdleConns > c.MaxOpenConns {
		return errors.New("max_idle_conns cannot be greater than max_open_conns")
	}
	return nil
}

func (c *DatabaseConfig) GetDSN() string {
	return c.Source
}
