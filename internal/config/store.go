package config

import (
	"fmt"
	"strings"

	"github.com/Rorical/QuickAct/internal/models"
)

// Overrides come from flags or QUICKACT_* environment variables.
// Non-empty fields win over the profile on disk.
type Overrides struct {
	Profile string
	APIKey  string
	Model   string
	BaseURL string
}

// Store is the read-through settings store: every RequestSettings call
// re-reads the config file so edits made by `quickact profile edit` in
// another terminal apply to the next dispatch.
type Store struct {
	path      string
	overrides Overrides
}

func NewStore(overrides Overrides) (*Store, error) {
	path, err := getConfigPath()
	if err != nil {
		return nil, fmt.Errorf("failed to get config path: %w", err)
	}
	return NewStoreAt(path, overrides), nil
}

func NewStoreAt(path string, overrides Overrides) *Store {
	return &Store{path: path, overrides: overrides}
}

func (s *Store) Path() string {
	return s.path
}

// Load returns the current config with the profile override applied.
func (s *Store) Load() (*Config, error) {
	cfg, err := LoadConfigFrom(s.path)
	if err != nil {
		return nil, err
	}
	if s.overrides.Profile != "" {
		if err := cfg.Use(s.overrides.Profile); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// RequestSettings takes a fresh snapshot of the active profile.
func (s *Store) RequestSettings() (models.RequestSettings, error) {
	cfg, err := s.Load()
	if err != nil {
		return models.RequestSettings{}, err
	}
	return s.settingsFrom(cfg.Current()), nil
}

func (s *Store) settingsFrom(p Profile) models.RequestSettings {
	settings := models.RequestSettings{
		APIKey:           strings.TrimSpace(p.APIKey),
		BaseURL:          p.BaseURL,
		ModelID:          strings.TrimSpace(p.Model),
		MaxTokens:        ClampMaxTokens(p.MaxTokens),
		AutoCloseEnabled: p.AutoClose,
		DefaultTone:      NormalizeTone(p.DefaultTone),
	}
	if s.overrides.APIKey != "" {
		settings.APIKey = s.overrides.APIKey
	}
	if s.overrides.Model != "" {
		settings.ModelID = s.overrides.Model
	}
	if s.overrides.BaseURL != "" {
		settings.BaseURL = s.overrides.BaseURL
	}
	if settings.BaseURL == "" {
		settings.BaseURL = DefaultBaseURL
	}
	return settings
}

// SetModel stores model on the overridden profile, or the active one. The
// active profile on disk is left unchanged.
func (s *Store) SetModel(model string) (string, error) {
	cfg, err := LoadConfigFrom(s.path)
	if err != nil {
		return "", err
	}
	name := cfg.ActiveProfile
	if s.overrides.Profile != "" {
		name = s.overrides.Profile
	}
	p, exists := cfg.Profiles[name]
	if !exists {
		return "", fmt.Errorf("profile '%s' does not exist", name)
	}
	p.Model = model
	cfg.SetProfile(name, p)
	if err := cfg.Save(); err != nil {
		return "", fmt.Errorf("failed to save config: %w", err)
	}
	return name, nil
}
