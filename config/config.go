package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds every process-wide setting. It is loaded once at startup and
// handed to constructors by value; nothing reads viper after LoadConfig returns.
type Config struct {
	Server struct {
		Port string `mapstructure:"port"`
	} `mapstructure:"server"`
	JWT    JWTConfig    `mapstructure:"jwt"`
	Cookie CookieConfig `mapstructure:"cookie"`
}

// JWTConfig configures the token service.
type JWTConfig struct {
	SecretKey string        `mapstructure:"secret_key"`
	ExpiresIn time.Duration `mapstructure:"expires_in"`
}

// CookieConfig configures the signed session cookie.
type CookieConfig struct {
	Name       string `mapstructure:"name"`
	SigningKey string `mapstructure:"signing_key"`
}

// LoadConfig reads config.yml from the given path, with environment variables
// taking precedence (e.g. JWT_SECRET_KEY overrides jwt.secret_key).
func LoadConfig(path string) (Config, error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yml")

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Unmarshal only sees env values for keys viper already knows about, so
	// every key is bound explicitly. This keeps the file optional: a container
	// can run on environment variables alone.
	for key, env := range map[string]string{
		"server.port":        "SERVER_PORT",
		"jwt.secret_key":     "JWT_SECRET_KEY",
		"jwt.expires_in":     "JWT_EXPIRES_IN",
		"cookie.name":        "COOKIE_NAME",
		"cookie.signing_key": "COOKIE_SIGNING_KEY",
	} {
		if err := viper.BindEnv(key, env); err != nil {
			return Config{}, fmt.Errorf("binding %s: %w", key, err)
		}
	}

	viper.SetDefault("server.port", "5000")
	viper.SetDefault("jwt.expires_in", "168h")
	viper.SetDefault("cookie.name", "auth_token")

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		// A missing file is fine as long as the environment provides the secrets.
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// validate rejects startup misconfiguration. Missing secrets are fatal here,
// never a per-request error.
func (c Config) validate() error {
	var errs []string

	if strings.TrimSpace(c.JWT.SecretKey) == "" {
		errs = append(errs, "jwt.secret_key is required")
	}
	if c.JWT.ExpiresIn <= 0 {
		errs = append(errs, "jwt.expires_in must be a positive duration")
	}
	if strings.TrimSpace(c.Cookie.Name) == "" {
		errs = append(errs, "cookie.name is required")
	}
	if strings.TrimSpace(c.Cookie.SigningKey) == "" {
		errs = append(errs, "cookie.signing_key is required")
	}

	if len(errs) > 0 {
		return errors.New("invalid configuration: " + strings.Join(errs, ", "))
	}
	return nil
}
