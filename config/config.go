package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all settings for one run of the bin checker
type Config struct {
	Site struct {
		BaseURL      string `yaml:"base_url"`
		EntryPath    string `yaml:"entry_path"`
		PostcodePath string `yaml:"postcode_path"`
		// Marker is a phrase expected on the entry page; its absence means the
		// server returned a blocking page instead of the real form
		Marker         string `yaml:"marker"`
		TrackingCookie struct {
			Name  string `yaml:"name"`
			Value string `yaml:"value"`
		} `yaml:"tracking_cookie"`
	} `yaml:"site"`

	Postcode     string   `yaml:"postcode"`
	AddressMatch string   `yaml:"address_match"`
	WatchFor     []string `yaml:"watch_for"`

	RunWindow struct {
		Hour    int `yaml:"hour"`
		Minutes int `yaml:"minutes"`
	} `yaml:"run_window"`
	Timezone string `yaml:"timezone"`

	AllowInsecureFallback bool   `yaml:"allow_insecure_fallback"`
	DebugDir              string `yaml:"debug_dir"`

	// Telegram credentials come from the environment only, never the file
	Telegram struct {
		BotToken string `yaml:"-"`
		ChatID   string `yaml:"-"`
	} `yaml:"-"`
}

// LoadConfig loads configuration from a YAML file and applies environment
// overrides. A missing file is not an error; defaults are used.
func LoadConfig(path string) (*Config, error) {
	cfg := GetDefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			applyEnv(cfg)
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyEnv(cfg)
	return cfg, nil
}

// GetDefaultConfig returns a configuration with the Northumberland defaults
func GetDefaultConfig() *Config {
	cfg := &Config{}
	cfg.Site.BaseURL = "https://bincollection.northumberland.gov.uk"
	cfg.Site.EntryPath = "/"
	cfg.Site.PostcodePath = "/postcode"
	cfg.Site.Marker = "Find your bin collection day"
	cfg.Site.TrackingCookie.Name = "x-bni-ja"
	cfg.Site.TrackingCookie.Value = "1707374704"
	cfg.Postcode = "NE18 0QP"
	cfg.AddressMatch = "The Bastle"
	cfg.WatchFor = []string{"General"}
	cfg.RunWindow.Hour = 19
	cfg.RunWindow.Minutes = 15
	cfg.Timezone = "Europe/London"
	cfg.AllowInsecureFallback = true
	return cfg
}

// Watched reports whether a bin type is on the watch list
func (c *Config) Watched(binType string) bool {
	for _, w := range c.WatchFor {
		if w == binType {
			return true
		}
	}
	return false
}

func applyEnv(cfg *Config) {
	cfg.Telegram.BotToken = os.Getenv("TELEGRAM_BOT_TOKEN")
	cfg.Telegram.ChatID = os.Getenv("TELEGRAM_CHAT_ID")

	if v, ok := os.LookupEnv("ALLOW_INSECURE_FALLBACK"); ok {
		cfg.AllowInsecureFallback = envBool(v)
	}
}

// ForceTestMessage reports whether the operator asked for a test notification
// regardless of bin day (FORCE_TEST_MESSAGE=1/true/yes)
func ForceTestMessage() bool {
	return envBool(os.Getenv("FORCE_TEST_MESSAGE"))
}

func envBool(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes":
		return true
	}
	return false
}
