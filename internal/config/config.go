package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Rorical/QuickAct/internal/models"
)

const (
	DefaultBaseURL   = "https://openrouter.ai/api/v1"
	DefaultKeyPrefix = "sk-or-v1-"

	DefaultMaxTokens = 2000
	MinMaxTokens     = 1000
	MaxMaxTokens     = 10000

	defaultProfileName = "default"
)

type Profile struct {
	APIKey      string `json:"api_key"`
	BaseURL     string `json:"base_url,omitempty"`
	Model       string `json:"model"`
	MaxTokens   int    `json:"max_tokens,omitempty"`
	DefaultTone string `json:"default_tone,omitempty"`
	AutoClose   bool   `json:"auto_close"`
}

type Config struct {
	Profiles       map[string]Profile `json:"profiles"`
	ActiveProfile  string             `json:"active_profile"`
	currentProfile *Profile
	path           string
}

func LoadConfig() (*Config, error) {
	configPath, err := getConfigPath()
	if err != nil {
		return nil, fmt.Errorf("failed to get config path: %w", err)
	}
	return LoadConfigFrom(configPath)
}

// LoadConfigFrom loads (or creates) the config file at configPath.
func LoadConfigFrom(configPath string) (*Config, error) {
	// Ensure config directory exists
	if err := ensureConfigDir(configPath); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	config, err := loadConfigFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	config.path = configPath

	if err := config.setCurrentProfile(); err != nil {
		return nil, fmt.Errorf("failed to set current profile: %w", err)
	}

	return config, nil
}

func (c *Config) IsValid() bool {
	return c.currentProfile != nil && c.currentProfile.APIKey != ""
}

func (c *Config) Current() Profile {
	if c.currentProfile == nil {
		return Profile{}
	}
	return *c.currentProfile
}

func (c *Config) GetAPIKey() string {
	return c.Current().APIKey
}

func (c *Config) GetModel() string {
	return c.Current().Model
}

func (c *Config) GetBaseURL() string {
	if base := c.Current().BaseURL; base != "" {
		return base
	}
	return DefaultBaseURL
}

// Path returns the file the config was loaded from.
func (c *Config) Path() string {
	return c.path
}

// Dir returns the directory holding the config file (and the log file).
func (c *Config) Dir() string {
	return filepath.Dir(c.path)
}

// Use switches the active profile, failing if it does not exist.
func (c *Config) Use(name string) error {
	if _, exists := c.Profiles[name]; !exists {
		return fmt.Errorf("profile '%s' does not exist", name)
	}
	c.ActiveProfile = name
	return c.setCurrentProfile()
}

// SetProfile stores p under name, refreshing the current profile if needed.
func (c *Config) SetProfile(name string, p Profile) {
	if c.Profiles == nil {
		c.Profiles = make(map[string]Profile)
	}
	c.Profiles[name] = p
	if name == c.ActiveProfile {
		_ = c.setCurrentProfile()
	}
}

func getConfigPath() (string, error) {
	var configDir string

	// Use QUICKACT_HOME if set, otherwise use user's home directory
	if home := os.Getenv("QUICKACT_HOME"); home != "" {
		configDir = home
	} else {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		configDir = homeDir
	}

	return filepath.Join(configDir, ".quickact", "config.json"), nil
}

func ensureConfigDir(configPath string) error {
	configDir := filepath.Dir(configPath)
	return os.MkdirAll(configDir, 0755)
}

func loadConfigFile(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return createDefaultConfig(configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, err
	}

	return &config, nil
}

func defaultProfile() Profile {
	return Profile{
		BaseURL:     DefaultBaseURL,
		MaxTokens:   DefaultMaxTokens,
		DefaultTone: string(models.DefaultTone),
	}
}

func createDefaultConfig(configPath string) (*Config, error) {
	config := &Config{
		Profiles: map[string]Profile{
			defaultProfileName: defaultProfile(),
		},
		ActiveProfile: defaultProfileName,
	}

	if err := saveConfig(config, configPath); err != nil {
		return nil, err
	}

	return config, nil
}

func saveConfig(config *Config, configPath string) error {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0600)
}

func (c *Config) Save() error {
	if c.path == "" {
		configPath, err := getConfigPath()
		if err != nil {
			return fmt.Errorf("failed to get config path: %w", err)
		}
		c.path = configPath
	}

	return saveConfig(c, c.path)
}

// Delete removes a profile. Deleting the active profile activates another one,
// and deleting the last profile recreates the default.
func (c *Config) Delete(name string) error {
	if _, exists := c.Profiles[name]; !exists {
		return fmt.Errorf("profile '%s' does not exist", name)
	}
	delete(c.Profiles, name)

	if c.ActiveProfile == name {
		c.ActiveProfile = ""
		for other := range c.Profiles {
			c.ActiveProfile = other
			break
		}
		if c.ActiveProfile == "" {
			c.ActiveProfile = defaultProfileName
			c.Profiles[defaultProfileName] = defaultProfile()
		}
	}
	return c.setCurrentProfile()
}

func (c *Config) setCurrentProfile() error {
	if len(c.Profiles) == 0 {
		return fmt.Errorf("no profiles defined")
	}

	profile, exists := c.Profiles[c.ActiveProfile]
	if !exists {
		// If active profile doesn't exist, try to use the first available profile
		for name, p := range c.Profiles {
			c.ActiveProfile = name
			profile = p
			exists = true
			break
		}
	}

	if !exists {
		return fmt.Errorf("no valid profiles found")
	}

	c.currentProfile = &profile
	return nil
}

// ClampMaxTokens keeps the token budget in [MinMaxTokens, MaxMaxTokens];
// zero or negative means "unset" and yields the default.
func ClampMaxTokens(n int) int {
	switch {
	case n <= 0:
		return DefaultMaxTokens
	case n < MinMaxTokens:
		return MinMaxTokens
	case n > MaxMaxTokens:
		return MaxMaxTokens
	default:
		return n
	}
}

// NormalizeTone maps unknown or empty tones to the default.
func NormalizeTone(s string) models.Tone {
	t, err := models.ParseTone(s)
	if err != nil {
		return models.DefaultTone
	}
	return t
}

// ValidateAPIKey checks a key against the provider prefix.
func ValidateAPIKey(key, prefix string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return fmt.Errorf("API key is empty")
	}
	if prefix != "" && !strings.HasPrefix(key, prefix) {
		return fmt.Errorf("API key should start with %q", prefix)
	}
	return nil
}
