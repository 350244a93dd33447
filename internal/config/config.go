// Package config loads the ytbench.yaml settings file and the API
// credential required by the generation and evaluation stages.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// ErrMissingCredential is returned when the generation API key is absent
// from the environment. It is a fatal configuration error at stage start,
// not a per-call fault.
var ErrMissingCredential = errors.New("GOOGLE_API_KEY is not set")

// DefaultConfigFile is the settings file looked up in the working directory.
const DefaultConfigFile = "ytbench.yaml"

// CredentialEnvVar names the environment variable holding the API key.
const CredentialEnvVar = "GOOGLE_API_KEY"

// Settings is the ytbench.yaml file contents.
type Settings struct {
	Models struct {
		Generation string `yaml:"generation"`
		Evaluation string `yaml:"evaluation"`
	} `yaml:"models"`

	Prompts struct {
		Count int `yaml:"count"`
	} `yaml:"prompts"`

	Evaluation struct {
		MaxAttempts     int     `yaml:"max_attempts"`
		MinWords        int     `yaml:"min_words"`
		AcceptThreshold float64 `yaml:"accept_threshold"`
		Parallel        bool    `yaml:"parallel"`
	} `yaml:"evaluation"`

	Engine struct {
		Type    string         `yaml:"type"`
		Options map[string]any `yaml:"options,omitempty"`
	} `yaml:"engine"`

	Dirs struct {
		Raw     string `yaml:"raw"`
		Prompts string `yaml:"prompts"`
		Outputs string `yaml:"outputs"`
		Dataset string `yaml:"dataset"`
	} `yaml:"dirs"`
}

// Default returns settings with all defaults applied.
func Default() *Settings {
	s := &Settings{}
	s.applyDefaults()
	return s
}

func (s *Settings) applyDefaults() {
	if s.Models.Generation == "" {
		s.Models.Generation = "gemini-2.5-flash"
	}
	if s.Models.Evaluation == "" {
		s.Models.Evaluation = s.Models.Generation
	}
	if s.Prompts.Count == 0 {
		s.Prompts.Count = 4
	}
	if s.Evaluation.MaxAttempts == 0 {
		s.Evaluation.MaxAttempts = 3
	}
	if s.Evaluation.MinWords == 0 {
		s.Evaluation.MinWords = 30
	}
	if s.Evaluation.AcceptThreshold == 0 {
		s.Evaluation.AcceptThreshold = 3.0
	}
	if s.Engine.Type == "" {
		s.Engine.Type = "gemini"
	}
	if s.Dirs.Raw == "" {
		s.Dirs.Raw = "data/raw"
	}
	if s.Dirs.Prompts == "" {
		s.Dirs.Prompts = "prompts"
	}
	if s.Dirs.Outputs == "" {
		s.Dirs.Outputs = "models_outputs"
	}
	if s.Dirs.Dataset == "" {
		s.Dirs.Dataset = "dataset"
	}
}

// Validate checks settings ranges.
func (s *Settings) Validate() error {
	if s.Prompts.Count < 3 || s.Prompts.Count > 5 {
		return fmt.Errorf("prompts.count must be between 3 and 5, got %d", s.Prompts.Count)
	}
	if s.Evaluation.MaxAttempts < 1 {
		return fmt.Errorf("evaluation.max_attempts must be at least 1, got %d", s.Evaluation.MaxAttempts)
	}
	if s.Evaluation.AcceptThreshold < 1 || s.Evaluation.AcceptThreshold > 5 {
		return fmt.Errorf("evaluation.accept_threshold must be within [1, 5], got %g", s.Evaluation.AcceptThreshold)
	}
	return nil
}

// Load reads a settings file. A missing file yields defaults, so the tool
// works in an unconfigured directory.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var s Settings
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	s.applyDefaults()

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Save writes the settings file.
func (s *Settings) Save(path string) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Credential loads .env from the working directory when present and returns
// the generation API key from the environment.
func Credential() (string, error) {
	_ = godotenv.Load() //nolint:errcheck // .env is optional

	key := os.Getenv(CredentialEnvVar)
	if key == "" {
		return "", ErrMissingCredential
	}
	return key, nil
}
