package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// LinkConfig selects the serial link backend. SerialDevice takes
// precedence when set; otherwise the named MIDI ports are used.
type LinkConfig struct {
	SerialDevice string `json:"serialDevice,omitempty"`
	MIDIIn       string `json:"midiIn,omitempty"`
	MIDIOut      string `json:"midiOut,omitempty"`
}

// TimingConfig overrides the debounce and animation windows, in ms.
// Zero values mean "use the firmware default".
type TimingConfig struct {
	DebounceMS           int `json:"debounceMs,omitempty"`
	AutoRepeatDelayMS    int `json:"autoRepeatDelayMs,omitempty"`
	AutoRepeatIntervalMS int `json:"autoRepeatIntervalMs,omitempty"`
	FadePeriodMS         int `json:"fadePeriodMs,omitempty"`
}

// Config is the main configuration structure.
type Config struct {
	Link      LinkConfig   `json:"link,omitempty"`
	Timing    TimingConfig `json:"timing,omitempty"`
	StorePath string       `json:"storePath,omitempty"`
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{}
}

// ConfigDir returns the config directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "midihub"), nil
}

// ConfigPath returns the full path to config.json.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads the config from disk, or returns defaults if not found.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save writes the config to disk.
func (c *Config) Save() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	path, err := ConfigPath()
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Store returns the byte-store path, defaulting to eeprom.bin in the
// config directory.
func (c *Config) Store() string {
	if c.StorePath != "" {
		return c.StorePath
	}
	dir, err := ConfigDir()
	if err != nil {
		return "eeprom.bin"
	}
	os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "eeprom.bin")
}
