package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rorical/QuickAct/internal/models"
)

func tempConfigPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), ".quickact", "config.json")
}

func TestLoadConfigCreatesDefault(t *testing.T) {
	path := tempConfigPath(t)

	cfg, err := LoadConfigFrom(path)
	require.NoError(t, err)

	assert.Equal(t, "default", cfg.ActiveProfile)
	assert.False(t, cfg.IsValid())
	assert.Equal(t, DefaultBaseURL, cfg.GetBaseURL())
	assert.Equal(t, DefaultMaxTokens, cfg.Current().MaxTokens)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestLoadConfigUsesQuickActHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("QUICKACT_HOME", home)

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".quickact", "config.json"), cfg.Path())
	assert.Equal(t, filepath.Join(home, ".quickact"), cfg.Dir())
}

func TestSaveAndReload(t *testing.T) {
	path := tempConfigPath(t)
	cfg, err := LoadConfigFrom(path)
	require.NoError(t, err)

	cfg.SetProfile("work", Profile{APIKey: "sk-or-v1-abc", Model: "openai/gpt-4o-mini", AutoClose: true})
	require.NoError(t, cfg.Use("work"))
	require.NoError(t, cfg.Save())

	reloaded, err := LoadConfigFrom(path)
	require.NoError(t, err)
	assert.Equal(t, "work", reloaded.ActiveProfile)
	assert.True(t, reloaded.IsValid())
	assert.Equal(t, "openai/gpt-4o-mini", reloaded.GetModel())
	assert.True(t, reloaded.Current().AutoClose)
}

func TestUseUnknownProfile(t *testing.T) {
	cfg, err := LoadConfigFrom(tempConfigPath(t))
	require.NoError(t, err)

	err = cfg.Use("missing")
	require.Error(t, err)
	assert.Equal(t, "default", cfg.ActiveProfile)
}

func TestMissingActiveProfileFallsBack(t *testing.T) {
	path := tempConfigPath(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	data := `{"profiles":{"only":{"api_key":"sk-or-v1-x","model":"m"}},"active_profile":"gone"}`
	require.NoError(t, os.WriteFile(path, []byte(data), 0600))

	cfg, err := LoadConfigFrom(path)
	require.NoError(t, err)
	assert.Equal(t, "only", cfg.ActiveProfile)
	assert.Equal(t, "m", cfg.GetModel())
}

func TestDeleteProfile(t *testing.T) {
	cfg, err := LoadConfigFrom(tempConfigPath(t))
	require.NoError(t, err)

	cfg.SetProfile("work", Profile{Model: "x"})
	require.NoError(t, cfg.Use("work"))
	require.NoError(t, cfg.Delete("work"))
	assert.Equal(t, "default", cfg.ActiveProfile)

	require.NoError(t, cfg.Delete("default"))
	assert.Equal(t, "default", cfg.ActiveProfile)
	assert.Contains(t, cfg.Profiles, "default")

	assert.Error(t, cfg.Delete("nope"))
}

func TestClampMaxTokens(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{0, DefaultMaxTokens},
		{-5, DefaultMaxTokens},
		{10, MinMaxTokens},
		{1500, 1500},
		{50000, MaxMaxTokens},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ClampMaxTokens(tt.in), "ClampMaxTokens(%d)", tt.in)
	}
}

func TestValidateAPIKey(t *testing.T) {
	assert.NoError(t, ValidateAPIKey("sk-or-v1-123", DefaultKeyPrefix))
	assert.Error(t, ValidateAPIKey("", DefaultKeyPrefix))
	assert.Error(t, ValidateAPIKey("bad-key", DefaultKeyPrefix))
	assert.NoError(t, ValidateAPIKey("anything", ""))
}

func TestStoreRequestSettingsIsReadThrough(t *testing.T) {
	path := tempConfigPath(t)
	store := NewStoreAt(path, Overrides{})

	settings, err := store.RequestSettings()
	require.NoError(t, err)
	assert.Empty(t, settings.APIKey)
	assert.Equal(t, models.Professional, settings.DefaultTone)

	cfg, err := LoadConfigFrom(path)
	require.NoError(t, err)
	cfg.SetProfile("default", Profile{
		APIKey:      " sk-or-v1-key ",
		Model:       "google/gemini-2.0-flash-exp:free",
		MaxTokens:   99999,
		DefaultTone: "concise",
		AutoClose:   true,
	})
	require.NoError(t, cfg.Save())

	settings, err = store.RequestSettings()
	require.NoError(t, err)
	assert.Equal(t, "sk-or-v1-key", settings.APIKey)
	assert.Equal(t, "google/gemini-2.0-flash-exp:free", settings.ModelID)
	assert.Equal(t, MaxMaxTokens, settings.MaxTokens)
	assert.Equal(t, models.Concise, settings.DefaultTone)
	assert.True(t, settings.AutoCloseEnabled)
	assert.Equal(t, DefaultBaseURL, settings.BaseURL)
}

func TestStoreOverrides(t *testing.T) {
	path := tempConfigPath(t)
	cfg, err := LoadConfigFrom(path)
	require.NoError(t, err)
	cfg.SetProfile("alt", Profile{APIKey: "sk-or-v1-alt", Model: "alt-model", DefaultTone: "shouty"})
	require.NoError(t, cfg.Save())

	store := NewStoreAt(path, Overrides{Profile: "alt", Model: "flag-model", BaseURL: "http://localhost:1234/v1"})
	settings, err := store.RequestSettings()
	require.NoError(t, err)
	assert.Equal(t, "sk-or-v1-alt", settings.APIKey)
	assert.Equal(t, "flag-model", settings.ModelID)
	assert.Equal(t, "http://localhost:1234/v1", settings.BaseURL)
	assert.Equal(t, models.DefaultTone, settings.DefaultTone)

	_, err = NewStoreAt(path, Overrides{Profile: "missing"}).RequestSettings()
	assert.Error(t, err)
}

func TestStoreSetModel(t *testing.T) {
	path := tempConfigPath(t)
	cfg, err := LoadConfigFrom(path)
	require.NoError(t, err)
	cfg.SetProfile("work", Profile{APIKey: "sk-or-v1-work"})
	require.NoError(t, cfg.Save())

	name, err := NewStoreAt(path, Overrides{}).SetModel("openai/gpt-4o-mini")
	require.NoError(t, err)
	assert.Equal(t, "default", name)

	name, err = NewStoreAt(path, Overrides{Profile: "work"}).SetModel("google/gemini-2.0-flash-001")
	require.NoError(t, err)
	assert.Equal(t, "work", name)

	reloaded, err := LoadConfigFrom(path)
	require.NoError(t, err)
	assert.Equal(t, "default", reloaded.ActiveProfile)
	assert.Equal(t, "openai/gpt-4o-mini", reloaded.Profiles["default"].Model)
	assert.Equal(t, "google/gemini-2.0-flash-001", reloaded.Profiles["work"].Model)

	_, err = NewStoreAt(path, Overrides{Profile: "missing"}).SetModel("x")
	assert.Error(t, err)
}
