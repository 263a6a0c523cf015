package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
)

const (
	DefaultConfigPath       = "config.toml"
	DefaultHTTPAddr         = ":8080"
	DefaultPGHost           = "127.0.0.1"
	DefaultPGPort           = 5432
	DefaultPGUser           = "postgres"
	DefaultPGDatabase       = "shopbot"
	DefaultPGSSLMode        = "disable"
	DefaultCompletionModel  = "llama-3.3-70b-versatile"
	DefaultGroqBaseURL      = "https://api.groq.com/openai/v1"
	DefaultFTPPort          = 21
	DefaultMaxProductImages = 10
	DefaultMaxCategoryImage = 1
	DefaultPendingTTL       = "6h"
	DefaultCompletionWait   = "60s"
)

type Config struct {
	Log        LogConfig        `toml:"log"`
	Server     ServerConfig     `toml:"server"`
	Telegram   TelegramConfig   `toml:"telegram"`
	Completion CompletionConfig `toml:"completion"`
	Postgres   PostgresConfig   `toml:"postgres"`
	FTP        FTPConfig        `toml:"ftp"`
	Media      MediaConfig      `toml:"media"`
}

type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

type ServerConfig struct {
	Addr string `toml:"addr"`
}

type TelegramConfig struct {
	BotToken string  `toml:"bot_token" validate:"required"`
	AdminIDs []int64 `toml:"admin_ids"`
}

// CompletionConfig selects the language-model provider. Client is either
// "openai" (any OpenAI-compatible endpoint, Groq included) or "anthropic".
type CompletionConfig struct {
	Client  string `toml:"client" validate:"oneof=openai anthropic"`
	APIKey  string `toml:"api_key" validate:"required"`
	Model   string `toml:"model"`
	BaseURL string `toml:"base_url"`
	Timeout string `toml:"timeout"`
}

func (c CompletionConfig) TimeoutDuration() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil || d <= 0 {
		d, _ = time.ParseDuration(DefaultCompletionWait)
	}
	return d
}

type PostgresConfig struct {
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	User     string `toml:"user"`
	Password string `toml:"password"`
	Database string `toml:"database"`
	SSLMode  string `toml:"sslmode"`
}

func (c PostgresConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}

type FTPConfig struct {
	Host     string `toml:"host" validate:"required"`
	Port     int    `toml:"port"`
	User     string `toml:"user" validate:"required"`
	Password string `toml:"password" validate:"required"`
	BasePath string `toml:"base_path"`
	BaseURL  string `toml:"base_url" validate:"required,url"`
}

func (c FTPConfig) Addr() string {
	port := c.Port
	if port == 0 {
		port = DefaultFTPPort
	}
	return fmt.Sprintf("%s:%d", c.Host, port)
}

type MediaConfig struct {
	MaxProductImages  int    `toml:"max_product_images" validate:"gte=1"`
	MaxCategoryImages int    `toml:"max_category_images" validate:"gte=1"`
	PendingTTL        string `toml:"pending_ttl"`
}

func (c MediaConfig) PendingTTLDuration() time.Duration {
	d, err := time.ParseDuration(c.PendingTTL)
	if err != nil || d <= 0 {
		d, _ = time.ParseDuration(DefaultPendingTTL)
	}
	return d
}

func Load(path string) (Config, error) {
	cfg := Config{
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Server: ServerConfig{
			Addr: DefaultHTTPAddr,
		},
		Completion: CompletionConfig{
			Client:  "openai",
			Model:   DefaultCompletionModel,
			BaseURL: DefaultGroqBaseURL,
			Timeout: DefaultCompletionWait,
		},
		Postgres: PostgresConfig{
			Host:     DefaultPGHost,
			Port:     DefaultPGPort,
			User:     DefaultPGUser,
			Database: DefaultPGDatabase,
			SSLMode:  DefaultPGSSLMode,
		},
		FTP: FTPConfig{
			Port:     DefaultFTPPort,
			BasePath: "/shop/product/",
		},
		Media: MediaConfig{
			MaxProductImages:  DefaultMaxProductImages,
			MaxCategoryImages: DefaultMaxCategoryImage,
			PendingTTL:        DefaultPendingTTL,
		},
	}

	if path == "" {
		path = DefaultConfigPath
	}

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// Validate reports missing or malformed settings before startup.
func (c Config) Validate() error {
	v := validator.New()
	if err := v.Struct(c); err != nil {
		return fmt.Errorf("config validation: %w", err)
	}
	return nil
}
