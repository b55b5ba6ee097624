package config

import (
	"errors"
	"time"

	"github.com/spf13/viper"
)

const (
	DefaultListenAddr     = ":3000"
	DefaultBackendURL     = "http://localhost:5000"
	DefaultBackendTimeout = 30 * time.Second
	DefaultCookieName     = "storefront_session"
	DefaultSessionMaxAge  = 7 * 24 * time.Hour
)

// BackendConfig points at the external identity backend. The backend is the
// system of record for users and OTP validity; this process only relays to it.
type BackendConfig struct {
	URL     string        `yaml:"url"`
	Timeout time.Duration `yaml:"timeout"`
}

type GoogleOAuthConfig struct {
	ClientID     string `yaml:"clientId"`
	ClientSecret string `yaml:"clientSecret"`
	CallbackURL  string `yaml:"callbackUrl"`
}

type SessionConfig struct {
	CookieName     string        `yaml:"cookieName"`
	CookieSecure   bool          `yaml:"cookieSecure"`
	CookieHttpOnly bool          `yaml:"cookieHttpOnly"`
	MaxAge         time.Duration `yaml:"maxAge"`
}

type TelegramConfig struct {
	BotToken string `yaml:"botToken"`
	ChatID   string `yaml:"chatId"`
}

type RedisConfig struct {
	URL string `yaml:"url"`
}

type Config struct {
	Debug      bool              `yaml:"debug"`
	ListenAddr string            `yaml:"address"`
	Backend    BackendConfig     `yaml:"backend"`
	Google     GoogleOAuthConfig `yaml:"google"`
	Session    SessionConfig     `yaml:"session"`
	Telegram   TelegramConfig    `yaml:"telegram"`
	Redis      RedisConfig       `yaml:"redis"`
	JWTSecret  string            `yaml:"jwtSecret"`
}

func (c *Config) Sanitize() error {
	if c.ListenAddr == "" {
		c.ListenAddr = DefaultListenAddr
	}
	if c.Backend.URL == "" {
		c.Backend.URL = DefaultBackendURL
	}
	if c.Backend.Timeout == 0 {
		c.Backend.Timeout = DefaultBackendTimeout
	}
	if c.Session.CookieName == "" {
		c.Session.CookieName = DefaultCookieName
	}
	if c.Session.MaxAge == 0 {
		c.Session.MaxAge = DefaultSessionMaxAge
	}
	if c.JWTSecret == "" {
		return errors.New("jwtSecret is required")
	}
	return nil
}

func LoadConfig(filename string) (*Config, error) {
	viper.SetConfigFile(filename)
	viper.SetConfigType("yaml")

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	if err := config.Sanitize(); err != nil {
		return nil, err
	}
	return &config, nil
}
