package internal

import (
	"fmt"
	"log/slog"
	"path/filepath"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// DefaultPIN is the fallback access PIN when none is configured.
const DefaultPIN = "1234"

// Config represents the application configuration.
type Config struct {
	App  ApplicationConfig `yaml:"app"`
	Data DataConfig        `yaml:"data"`
	Auth AuthConfig        `yaml:"auth"`
	AI   AIConfig          `yaml:"ai"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.App.Validate(); err != nil {
		return err
	}
	if err := c.Data.Validate(); err != nil {
		return err
	}
	if err := c.Auth.Validate(); err != nil {
		return err
	}
	return c.AI.Validate()
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	LogLevel slog.Level `yaml:"log_level"`
	HTTP     HTTPConfig `yaml:"http"`
}

// Validate validates the application configuration.
func (c *ApplicationConfig) Validate() error {
	return c.HTTP.Validate()
}

// HTTPConfig holds HTTP server configuration.
type HTTPConfig struct {
	Port int `yaml:"port"`
}

// Address returns HTTP server address.
func (c *HTTPConfig) Address() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Validate validates the HTTP configuration.
func (c *HTTPConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Port, validation.Required, validation.Min(1), validation.Max(65535)),
	)
}

// DataConfig holds the data directory layout. The three collection
// files and the photo directory all live under Path.
type DataConfig struct {
	Path string `yaml:"path"`
}

// Validate validates the data configuration.
func (c *DataConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
	)
}

// MemoriesFile returns the path of the memories collection file.
func (c *DataConfig) MemoriesFile() string { return filepath.Join(c.Path, "memories.json") }

// FamilyFile returns the path of the family collection file.
func (c *DataConfig) FamilyFile() string { return filepath.Join(c.Path, "family.json") }

// FoodLogFile returns the path of the food log collection file.
func (c *DataConfig) FoodLogFile() string { return filepath.Join(c.Path, "food_log.json") }

// PhotoDir returns the directory for uploaded family photos.
func (c *DataConfig) PhotoDir() string { return filepath.Join(c.Path, "family_photos") }

// AuthConfig holds the access PIN.
//
// The PIN is a shared static secret compared in plaintext. An empty
// value (e.g. APP_PIN unset) normalizes to DefaultPIN for backward
// compatibility with the original data directory setup.
type AuthConfig struct {
	PIN string `yaml:"pin"`
}

// Validate normalizes an empty PIN to the default.
func (c *AuthConfig) Validate() error {
	if c.PIN == "" {
		c.PIN = DefaultPIN
	}
	return nil
}

// AIConfig holds the completion/speech backend configuration.
//
// APIKey empty disables the assistant endpoints: CRUD keeps working and
// assistant routes return a service-unavailable message.
type AIConfig struct {
	Model   string `yaml:"model"`
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url"`
}

// Enabled returns true when an API key is configured.
func (c *AIConfig) Enabled() bool { return c.APIKey != "" }

// Validate validates the AI configuration.
func (c *AIConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Model, validation.Required),
	)
}

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	return &Config{
		App: ApplicationConfig{
			LogLevel: slog.LevelInfo,
			HTTP: HTTPConfig{
				Port: 8080,
			},
		},
		Data: DataConfig{
			Path: "./data",
		},
		Auth: AuthConfig{
			PIN: DefaultPIN,
		},
		AI: AIConfig{
			Model: "gpt-4",
		},
	}
}
