package config

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server struct {
		Port         string `yaml:"port" env:"SERVER_PORT"`
		Mode         string `yaml:"mode" env:"SERVER_MODE"`
		ClientOrigin string `yaml:"client_origin" env:"CLIENT_ORIGIN"`
	} `yaml:"server"`

	Database struct {
		// URL, when set, wins over the discrete fields. When neither the URL
		// nor a host is configured the application runs on the in-memory store.
		URL             string `yaml:"url" env:"DATABASE_URL"`
		Host            string `yaml:"host" env:"DB_HOST"`
		Port            string `yaml:"port" env:"DB_PORT"`
		User            string `yaml:"user" env:"DB_USER"`
		Password        string `yaml:"password" env:"DB_PASSWORD"`
		DBName          string `yaml:"dbname" env:"DB_NAME"`
		SSLMode         string `yaml:"sslmode" env:"DB_SSLMODE"`
		MaxIdleConns    int    `yaml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS"`
		MaxOpenConns    int    `yaml:"max_open_conns" env:"DB_MAX_OPEN_CONNS"`
		ConnMaxLifetime string `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME"`
	} `yaml:"database"`

	Session struct {
		Secret   string `yaml:"secret" env:"SESSION_SECRET"`
		RedisURL string `yaml:"redis_url" env:"REDIS_URL"`
		TTL      string `yaml:"ttl" env:"SESSION_TTL"`
	} `yaml:"session"`

	JWT struct {
		Secret     string `yaml:"secret" env:"JWT_SECRET"`
		Expiration string `yaml:"expiration" env:"JWT_EXPIRATION"`
		Issuer     string `yaml:"issuer" env:"JWT_ISSUER"`
	} `yaml:"jwt"`

	SMTP struct {
		Host     string `yaml:"host" env:"SMTP_HOST"`
		Port     int    `yaml:"port" env:"SMTP_PORT"`
		User     string `yaml:"user" env:"SMTP_USER"`
		Password string `yaml:"password" env:"SMTP_PASS"`
		From     string `yaml:"from" env:"SMTP_FROM"`
	} `yaml:"smtp"`

	Twilio struct {
		AccountSID  string `yaml:"account_sid" env:"TWILIO_ACCOUNT_SID"`
		AuthToken   string `yaml:"auth_token" env:"TWILIO_AUTH_TOKEN"`
		PhoneNumber string `yaml:"phone_number" env:"TWILIO_PHONE_NUMBER"`
	} `yaml:"twilio"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT"`
	} `yaml:"logging"`
}

// LoadConfig loads configuration from an optional .env file, a YAML file and
// environment variables, in increasing order of precedence.
func LoadConfig(configPath string) (*Config, error) {
	// .env is optional; absence is not an error
	_ = godotenv.Load()

	config := &Config{}
	setDefaults(config)

	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(file, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := loadFromEnv(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// setDefaults sets default values for the configuration
func setDefaults(config *Config) {
	config.Server.Port = "5000"
	config.Server.Mode = "development"

	config.Database.Port = "5432"
	config.Database.User = "postgres"
	config.Database.Password = "postgres"
	config.Database.DBName = "enroll"
	config.Database.SSLMode = "disable"
	config.Database.MaxIdleConns = 5
	config.Database.MaxOpenConns = 20
	config.Database.ConnMaxLifetime = "1h"

	config.Session.TTL = "24h"

	config.JWT.Expiration = "24h"
	config.JWT.Issuer = "enroll.campusflow"

	config.SMTP.Port = 587

	config.Logging.Level = "info"
	config.Logging.Format = "json"
}

// loadFromEnv overrides configuration fields from env: tags
func loadFromEnv(config *Config) error {
	if err := processStruct(reflect.ValueOf(config).Elem()); err != nil {
		return err
	}
	// PORT is the conventional platform variable; SERVER_PORT wins when
	// both are set.
	if _, ok := os.LookupEnv("SERVER_PORT"); !ok {
		if port, ok := os.LookupEnv("PORT"); ok && port != "" {
			config.Server.Port = port
		}
	}
	return nil
}

// processStruct walks a struct value and applies env overrides recursively
func processStruct(v reflect.Value) error {
	t := v.Type()
	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		if field.Kind() == reflect.Struct {
			if err := processStruct(field); err != nil {
				return err
			}
			continue
		}

		envName := t.Field(i).Tag.Get("env")
		if envName == "" {
			continue
		}
		envValue, ok := os.LookupEnv(envName)
		if !ok {
			continue
		}

		switch field.Kind() {
		case reflect.String:
			field.SetString(envValue)
		case reflect.Int:
			n, err := strconv.Atoi(envValue)
			if err != nil {
				return fmt.Errorf("invalid integer for %s: %w", envName, err)
			}
			field.SetInt(int64(n))
		case reflect.Bool:
			b, err := strconv.ParseBool(envValue)
			if err != nil {
				return fmt.Errorf("invalid boolean for %s: %w", envName, err)
			}
			field.SetBool(b)
		default:
			return fmt.Errorf("unsupported field kind for %s", envName)
		}
	}
	return nil
}

// validateConfig ensures the configuration is usable
func validateConfig(config *Config) error {
	if config.JWT.Secret == "" {
		return fmt.Errorf("JWT secret is required")
	}
	if config.Session.Secret == "" {
		return fmt.Errorf("session secret is required")
	}
	if _, err := time.ParseDuration(config.JWT.Expiration); err != nil {
		return fmt.Errorf("invalid JWT expiration format: %w", err)
	}
	if _, err := time.ParseDuration(config.Session.TTL); err != nil {
		return fmt.Errorf("invalid session TTL format: %w", err)
	}
	return nil
}

// DatabaseDSN returns the postgres connection string, or "" when the
// application should fall back to the in-memory store.
func (c *Config) DatabaseDSN() string {
	if c.Database.URL != "" {
		return c.Database.URL
	}
	if c.Database.Host == "" {
		return ""
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.DBName,
		c.Database.SSLMode,
	)
}

// IsProduction reports whether the server runs in production mode
func (c *Config) IsProduction() bool {
	return c.Server.Mode == "production"
}

// SessionTTL returns the parsed session lifetime
func (c *Config) SessionTTL() time.Duration {
	d, err := time.ParseDuration(c.Session.TTL)
	if err != nil {
		return 24 * time.Hour
	}
	return d
}

// JWTExpiration returns the parsed bearer token lifetime
func (c *Config) JWTExpiration() time.Duration {
	d, err := time.ParseDuration(c.JWT.Expiration)
	if err != nil {
		return 24 * time.Hour
	}
	return d
}
