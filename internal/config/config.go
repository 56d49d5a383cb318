// Package config loads the CLI and server settings from a JSON file, the
// environment and built-in defaults.
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/resumeace/internal/llm"
	"github.com/jonathan/resumeace/internal/types"
)

// Environment variables read by ApplyEnv
const (
	EnvAPIKey    = "GEMINI_API_KEY"
	EnvStorePath = "RESUMEACE_STORE"
)

const (
	DefaultStorePath = "~/.resumeace/resumeace.db"
	DefaultExportDir = "."
	DefaultPort      = 8080
)

// Config is the merged configuration. Every field is optional in the file.
type Config struct {
	StorePath string `json:"store_path,omitempty"` // sqlite file; "" or ":memory:" keeps documents in memory
	ExportDir string `json:"export_dir,omitempty"`

	DefaultMode   string `json:"default_mode,omitempty" validate:"omitempty,mode"`
	LaTeXTemplate string `json:"latex_template,omitempty" validate:"omitempty,file"`

	APIKey          string  `json:"api_key,omitempty"`
	Model           string  `json:"model,omitempty"` // overrides the model of every tier
	Temperature     float32 `json:"temperature,omitempty" validate:"gte=0,lte=2"`
	MaxOutputTokens int32   `json:"max_output_tokens,omitempty" validate:"gte=0"`
	UseBrowser      bool    `json:"use_browser,omitempty"` // render job postings in headless Chrome

	Port int `json:"port,omitempty" validate:"gte=0,lte=65535"`

	Verbose bool `json:"verbose,omitempty"`
}

// Error reports an invalid config field by its JSON name
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("config error: '%s' %s", e.Field, e.Message)
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		return name
	})
	_ = v.RegisterValidation("mode", func(fl validator.FieldLevel) bool {
		_, err := types.ParseMode(fl.Field().String())
		return err == nil
	})
	return v
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		StorePath:       DefaultStorePath,
		ExportDir:       DefaultExportDir,
		DefaultMode:     string(types.ModeResume),
		Temperature:     llm.DefaultTemperature,
		MaxOutputTokens: llm.DefaultMaxOutputTokens,
		Port:            DefaultPort,
	}
}

// LoadConfig reads a JSON config file. Relative paths resolve against the
// working directory and unknown keys are rejected.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}
	path, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve config path: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	var cfg Config
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}
	return &cfg, nil
}

// ApplyEnv fills unset fields from the environment
func (c *Config) ApplyEnv() {
	if c.APIKey == "" {
		c.APIKey = os.Getenv(EnvAPIKey)
	}
	if c.StorePath == "" {
		c.StorePath = os.Getenv(EnvStorePath)
	}
}

// Validate checks value ranges and that a configured template file exists.
// Missing values are not errors.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	fe := fieldErrs[0]
	return &Error{Field: fe.Field(), Message: describe(fe)}
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "mode":
		return fmt.Sprintf("unknown mode %q (want resume or cover-letter)", fe.Value())
	case "file":
		return fmt.Sprintf("template file not found: %v", fe.Value())
	case "gte", "lte":
		switch fe.Field() {
		case "temperature":
			return "must be between 0 and 2"
		case "port":
			return "must be between 0 and 65535"
		}
		return "must be non-negative"
	}
	return fmt.Sprintf("failed the %s check", fe.Tag())
}

// MergeWithDefaults returns a copy with zero fields taken from defaults.
// Booleans are left alone: false cannot be told apart from unset.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	out := *c
	fill(&out.StorePath, defaults.StorePath)
	fill(&out.ExportDir, defaults.ExportDir)
	fill(&out.DefaultMode, defaults.DefaultMode)
	fill(&out.LaTeXTemplate, defaults.LaTeXTemplate)
	fill(&out.APIKey, defaults.APIKey)
	fill(&out.Model, defaults.Model)
	fill(&out.Temperature, defaults.Temperature)
	fill(&out.MaxOutputTokens, defaults.MaxOutputTokens)
	fill(&out.Port, defaults.Port)
	return out
}

func fill[T comparable](field *T, def T) {
	var zero T
	if *field == zero {
		*field = def
	}
}

// Mode returns the parsed default mode, falling back to the resume
func (c *Config) Mode() types.Mode {
	if m, err := types.ParseMode(c.DefaultMode); err == nil {
		return m
	}
	return types.ModeResume
}

// LLMConfig builds the model client configuration
func (c *Config) LLMConfig() *llm.Config {
	cfg := llm.DefaultConfig().WithGeneration(c.Temperature, c.MaxOutputTokens)
	if c.Model != "" {
		cfg = cfg.WithModels(c.Model)
	}
	return cfg
}
