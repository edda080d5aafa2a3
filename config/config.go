package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"github.com/mantas/appointments/internal/logger"
)

// MinSecretLength is the smallest HS256 key accepted, in bytes.
const MinSecretLength = 32

type ServerConfig struct {
	Port string `yaml:"port"`
	Mode string `yaml:"mode"`
}

type DBConfig struct {
	Driver   string `yaml:"driver"`
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	// Path is the SQLite file, ":memory:" for a throwaway database.
	Path string `yaml:"path"`
}

type JWTConfig struct {
	Secret       string `yaml:"secret"`
	ExpirationMs int64  `yaml:"expiration_ms"`
}

func (c JWTConfig) TTL() time.Duration {
	return time.Duration(c.ExpirationMs) * time.Millisecond
}

type PasswordConfig struct {
	BcryptCost int `yaml:"bcrypt_cost"`
}

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	DB       DBConfig       `yaml:"db"`
	JWT      JWTConfig      `yaml:"jwt"`
	Password PasswordConfig `yaml:"password"`
	Log      logger.Config  `yaml:"log"`
}

func Load(env string) (*Config, error) {
	return LoadFrom(filepath.Join("config", "envs"), env)
}

// LoadFrom reads <dir>/<env>.yaml, then applies environment overrides.
// A .env file in the working directory is loaded first when present.
func LoadFrom(dir, env string) (*Config, error) {
	if env == "" {
		env = "local"
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	f, err := os.Open(filepath.Join(dir, env+".yaml"))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	cfg := defaults()
	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode %s config: %w", env, err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func defaults() Config {
	return Config{
		Server:   ServerConfig{Port: "8080", Mode: "debug"},
		DB:       DBConfig{Driver: "postgres", Port: "5432"},
		JWT:      JWTConfig{ExpirationMs: 86_400_000},
		Password: PasswordConfig{BcryptCost: bcrypt.DefaultCost},
		Log:      logger.Config{Level: "info", Format: "json"},
	}
}

func (c *Config) applyEnv() error {
	str := map[string]*string{
		"SERVER_PORT": &c.Server.Port,
		"SERVER_MODE": &c.Server.Mode,
		"DB_DRIVER":   &c.DB.Driver,
		"DB_HOST":     &c.DB.Host,
		"DB_PORT":     &c.DB.Port,
		"DB_USER":     &c.DB.User,
		"DB_PASSWORD": &c.DB.Password,
		"DB_NAME":     &c.DB.Name,
		"DB_PATH":     &c.DB.Path,
		"API_SECRET":  &c.JWT.Secret,
		"LOG_LEVEL":   &c.Log.Level,
		"LOG_FORMAT":  &c.Log.Format,
	}
	for key, dst := range str {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}

	if v := os.Getenv("JWT_EXPIRATION_MS"); v != "" {
		ms, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("JWT_EXPIRATION_MS: %w", err)
		}
		c.JWT.ExpirationMs = ms
	}
	if v := os.Getenv("BCRYPT_COST"); v != "" {
		cost, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("BCRYPT_COST: %w", err)
		}
		c.Password.BcryptCost = cost
	}
	return nil
}

func (c *Config) Validate() error {
	var errs []error
	if len(c.JWT.Secret) < MinSecretLength {
		errs = append(errs, fmt.Errorf("jwt.secret must be at least %d bytes", MinSecretLength))
	}
	if c.JWT.ExpirationMs <= 0 {
		errs = append(errs, errors.New("jwt.expiration_ms must be positive"))
	}
	switch c.DB.Driver {
	case "postgres", "sqlite":
	default:
		errs = append(errs, fmt.Errorf("db.driver must be postgres or sqlite (got: %q)", c.DB.Driver))
	}
	if c.Password.BcryptCost < bcrypt.MinCost || c.Password.BcryptCost > bcrypt.MaxCost {
		errs = append(errs, fmt.Errorf("password.bcrypt_cost must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost))
	}
	if c.Server.Port == "" {
		errs = append(errs, errors.New("server.port is required"))
	}
	return errors.Join(errs...)
}
