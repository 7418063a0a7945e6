package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	StoreFile  = "file"
	StoreMongo = "mongo"
)

type Config struct {
	DataDir      string
	TrainsFile   string
	BookingsFile string

	Store           string
	MongoConnString string
	MongoDatabase   string

	ListenAddr           string
	Sign                 string
	OperatorLogin        string
	OperatorPasswordHash string
	TokenTTL             time.Duration

	LogLevel  string
	LogOutput []string
}

// Load reads an optional .env file, letting environment variables override it.
func Load() (*Config, error) {
	return LoadWithPath(".env")
}

func LoadWithPath(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("env")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.AutomaticEnv()
	setDefaults(v)

	cfg := &Config{
		DataDir:      v.GetString("DATA_DIR"),
		TrainsFile:   v.GetString("TRAINS_FILE"),
		BookingsFile: v.GetString("BOOKINGS_FILE"),

		Store:           strings.ToLower(v.GetString("STORE")),
		MongoConnString: v.GetString("MONGODB_CONNSTRING"),
		MongoDatabase:   v.GetString("MONGODB_DATABASE"),

		ListenAddr:           v.GetString("LISTEN_ADDR"),
		Sign:                 v.GetString("SIGN"),
		OperatorLogin:        v.GetString("OPERATOR_LOGIN"),
		OperatorPasswordHash: v.GetString("OPERATOR_PASSWORD_HASH"),
		TokenTTL:             v.GetDuration("TOKEN_TTL"),

		LogLevel:  v.GetString("LOG_LEVEL"),
		LogOutput: strings.Split(v.GetString("LOG_OUTPUT"), ","),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("DATA_DIR", ".")
	v.SetDefault("TRAINS_FILE", "trains.csv")
	v.SetDefault("BOOKINGS_FILE", "bookings.csv")

	v.SetDefault("STORE", StoreFile)
	v.SetDefault("MONGODB_DATABASE", "reservation-desk")

	v.SetDefault("LISTEN_ADDR", ":8080")
	v.SetDefault("OPERATOR_LOGIN", "operator")
	v.SetDefault("TOKEN_TTL", "8h")

	v.SetDefault("LOG_LEVEL", "warn")
	v.SetDefault("LOG_OUTPUT", "stderr")
}

func (c *Config) Validate() error {
	switch c.Store {
	case StoreFile:
		if c.TrainsFile == "" || c.BookingsFile == "" {
			return errors.New("TRAINS_FILE and BOOKINGS_FILE must not be empty")
		}
	case StoreMongo:
		if c.MongoConnString == "" {
			return errors.New("MONGODB_CONNSTRING is required when STORE=mongo")
		}
	default:
		return fmt.Errorf("unknown STORE %q, expected %q or %q", c.Store, StoreFile, StoreMongo)
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("TOKEN_TTL must be positive, got %s", c.TokenTTL)
	}
	return nil
}

// ValidateServer checks the settings only the HTTP API needs.
func (c *Config) ValidateServer() error {
	if c.Sign == "" {
		return errors.New("SIGN is required to issue operator tokens")
	}
	if c.OperatorPasswordHash == "" {
		return errors.New("OPERATOR_PASSWORD_HASH is required for operator login")
	}
	return nil
}
